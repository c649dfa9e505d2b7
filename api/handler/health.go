package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/clanwatch/backend/api/transport"
	"github.com/clanwatch/backend/internal/infrastructure/monitor"
	"github.com/clanwatch/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// Check reports per-replica storage health. A degraded store (some
// replica's last operation failed) returns 503 so alerting catches
// partial replication, even though writes are still succeeding overall.
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"storage":   status,
	}

	if status.Degraded {
		h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("DEGRADED", "storage replicas unhealthy", payload))
		return
	}
	h.respondSuccess(ctx, http.StatusOK, payload)
}

// Package monitor keeps the last known outcome of every storage replica.
// The replicated backend reports per-replica write/load results here;
// partial replication never reaches callers as an error, so this is the
// surface operations tooling watches for silent data-loss risk.
package monitor

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/clanwatch/backend/domain"
)

type Monitor struct {
	mu       sync.RWMutex
	replicas map[string]*ReplicaStatus
	order    []string
	logger   *zap.Logger
}

func New(logger *zap.Logger, replicaNames ...string) *Monitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Monitor{
		replicas: make(map[string]*ReplicaStatus, len(replicaNames)),
		logger:   logger,
	}
	for _, name := range replicaNames {
		m.track(name)
	}
	return m
}

// ObserveWrite records the outcome of one replica's write attempt.
func (m *Monitor) ObserveWrite(replica string, err error) {
	m.observe(replica, "write", err)
}

// ObserveLoad records the outcome of one replica's load attempt.
func (m *Monitor) ObserveLoad(replica string, err error) {
	m.observe(replica, "load", err)
}

// IsHealthy reports whether every tracked replica's last operation
// succeeded. Replicas without any observation yet count as healthy.
func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, status := range m.replicas {
		if !status.Healthy {
			return false
		}
	}
	return true
}

// GetStatus returns a point-in-time copy of all replica states in
// configuration order.
func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := Status{Replicas: make([]ReplicaStatus, 0, len(m.order))}
	for _, name := range m.order {
		status := *m.replicas[name]
		out.Replicas = append(out.Replicas, status)
		if !status.Healthy {
			out.Degraded = true
		}
	}
	return out
}

func (m *Monitor) observe(replica, operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status := m.track(replica)
	status.LastOperation = operation
	status.LastChecked = time.Now().UTC()
	// A replica without a snapshot answered; empty is not broken.
	if err != nil && !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		status.Healthy = false
		status.LastError = err.Error()
		m.logger.Debug("replica unhealthy",
			zap.String("replica", replica),
			zap.String("operation", operation),
			zap.Error(err))
		return
	}
	status.Healthy = true
	status.LastError = ""
}

// track must be called with the write lock held (or before the monitor
// is shared).
func (m *Monitor) track(name string) *ReplicaStatus {
	if status, ok := m.replicas[name]; ok {
		return status
	}
	status := &ReplicaStatus{Name: name, Healthy: true}
	m.replicas[name] = status
	m.order = append(m.order, name)
	return status
}

package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/pkg/httpcontext"
	"github.com/clanwatch/backend/storage"
	"github.com/clanwatch/backend/usecase/stats"
)

func newTestHandler(t *testing.T) (*ClanHandler, *stats.UseCase) {
	t.Helper()
	uc := stats.New(storage.NewMemoryBackend(), zap.NewNop())
	h := NewClanHandler(uc, httpcontext.NewAdapter(time.Second), zap.NewNop())
	return h, uc
}

func seasonCtx(tag, season string) *fasthttp.RequestCtx {
	ctx := &fasthttp.RequestCtx{}
	ctx.SetUserValue("tag", tag)
	if season != "" {
		ctx.SetUserValue("season", season)
	}
	return ctx
}

func decodeEnvelope(t *testing.T, ctx *fasthttp.RequestCtx) map[string]json.RawMessage {
	t.Helper()
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(ctx.Response.Body(), &envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return envelope
}

func TestClanHandler_Register(t *testing.T) {
	h, uc := newTestHandler(t)

	// Tags arrive percent-encoded from the router.
	ctx := seasonCtx("%23CLAN", "")
	h.Register(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("status: got %d, body %s", got, ctx.Response.Body())
	}
	season := domain.Season{Year: 2024, Month: 3}
	if err := uc.SetPlayerName("#CLAN", season, "#ALICE", "Alice"); err != nil {
		t.Fatalf("clan must be registered after the request: %v", err)
	}
}

func TestClanHandler_Register_InvalidTag(t *testing.T) {
	h, _ := newTestHandler(t)

	ctx := seasonCtx("CLAN", "")
	h.Register(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusBadRequest {
		t.Fatalf("status: got %d, body %s", got, ctx.Response.Body())
	}
}

func TestClanHandler_Summary(t *testing.T) {
	h, uc := newTestHandler(t)
	season := domain.Season{Year: 2024, Month: 3}

	uc.RegisterClan("#CLAN")
	if err := uc.SetPlayerName("#CLAN", season, "#ALICE", "Alice"); err != nil {
		t.Fatalf("set name: %v", err)
	}
	start := 50
	if err := uc.SetGamesScore("#CLAN", season, "#ALICE", domain.PlayerGamesStats{StartScore: &start, EndScore: 120}); err != nil {
		t.Fatalf("set games: %v", err)
	}

	ctx := seasonCtx("%23CLAN", "2024-03")
	h.Summary(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusOK {
		t.Fatalf("status: got %d, body %s", got, ctx.Response.Body())
	}

	envelope := decodeEnvelope(t, ctx)
	var data map[domain.PlayerTag]domain.PlayerSummary
	if err := json.Unmarshal(envelope["data"], &data); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
	if got := data["#ALICE"]; got.GamesScore != 70 {
		t.Fatalf("summary mismatch: %+v", got)
	}
}

func TestClanHandler_Summary_UnknownSeason(t *testing.T) {
	h, uc := newTestHandler(t)
	uc.RegisterClan("#CLAN")

	ctx := seasonCtx("%23CLAN", "2024-03")
	h.Summary(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusNotFound {
		t.Fatalf("status: got %d, body %s", got, ctx.Response.Body())
	}
}

func TestClanHandler_RecordWar(t *testing.T) {
	h, uc := newTestHandler(t)
	uc.RegisterClan("#CLAN")

	body, err := json.Marshal(domain.WarStats{
		StartTime: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC),
		Members: map[domain.PlayerTag]*domain.MemberWarStats{
			"#ALICE": {Attacks: []domain.WarAttack{{Stars: 3, Destruction: 100, Duration: 60}}},
		},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	ctx := seasonCtx("%23CLAN", "2024-03")
	ctx.Request.SetBody(body)
	h.RecordWar(ctx)

	if got := ctx.Response.StatusCode(); got != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", got, ctx.Response.Body())
	}

	bundle, err := uc.SeasonStats("#CLAN", domain.Season{Year: 2024, Month: 3})
	if err != nil {
		t.Fatalf("season stats: %v", err)
	}
	if len(bundle.Wars) != 1 {
		t.Fatalf("expected 1 recorded war, got %d", len(bundle.Wars))
	}
}

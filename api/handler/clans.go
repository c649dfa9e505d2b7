package handler

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/clanwatch/backend/domain"
	"github.com/clanwatch/backend/pkg/httpcontext"
	"github.com/clanwatch/backend/usecase/stats"
)

type ClanHandler struct {
	baseHandler
	stats *stats.UseCase
}

func NewClanHandler(uc *stats.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ClanHandler {
	return &ClanHandler{
		baseHandler: newBaseHandler(adapter, logger),
		stats:       uc,
	}
}

// Register makes a clan known to the aggregate. Idempotent, so PUT.
func (h *ClanHandler) Register(ctx *fasthttp.RequestCtx) {
	tag, err := clanTagParam(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.stats.RegisterClan(tag)
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"tag": tag.String()})
}

// SeasonStats returns the raw stats bundle for one clan season.
func (h *ClanHandler) SeasonStats(ctx *fasthttp.RequestCtx) {
	tag, season, err := seasonParams(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	bundle, err := h.stats.SeasonStats(tag, season)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, bundle)
}

// Summary returns the per-member season summary.
func (h *ClanHandler) Summary(ctx *fasthttp.RequestCtx) {
	tag, season, err := seasonParams(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	summary, err := h.stats.Summary(tag, season)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, summary)
}

// RecordWar ingests one war's stats for the season.
func (h *ClanHandler) RecordWar(ctx *fasthttp.RequestCtx) {
	tag, season, err := seasonParams(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	var war domain.WarStats
	if err := json.Unmarshal(ctx.PostBody(), &war); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeValidation, "invalid war payload", err))
		return
	}
	if err := h.stats.RecordWar(tag, season, &war); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

// RecordRaid ingests one raid weekend's stats for the season.
func (h *ClanHandler) RecordRaid(ctx *fasthttp.RequestCtx) {
	tag, season, err := seasonParams(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	var raid domain.RaidWeekendStats
	if err := json.Unmarshal(ctx.PostBody(), &raid); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeValidation, "invalid raid payload", err))
		return
	}
	if err := h.stats.RecordRaidWeekend(tag, season, &raid); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, nil)
}

type memberPayload struct {
	Tag   domain.PlayerTag         `json:"tag"`
	Name  string                   `json:"name"`
	Games *domain.PlayerGamesStats `json:"games,omitempty"`
}

// UpsertMember records a member's display name and, optionally, their
// clan-games score. Names define the member universe of Summary.
func (h *ClanHandler) UpsertMember(ctx *fasthttp.RequestCtx) {
	tag, season, err := seasonParams(ctx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	var member memberPayload
	if err := json.Unmarshal(ctx.PostBody(), &member); err != nil {
		h.respondError(ctx, domain.WrapError(domain.ErrCodeValidation, "invalid member payload", err))
		return
	}
	if member.Tag == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeValidation, "member tag is required"))
		return
	}
	if member.Name == "" {
		h.respondError(ctx, domain.NewError(domain.ErrCodeValidation, "member name is required"))
		return
	}
	if err := h.stats.SetPlayerName(tag, season, member.Tag, member.Name); err != nil {
		h.respondError(ctx, err)
		return
	}
	if member.Games != nil {
		if err := h.stats.SetGamesScore(tag, season, member.Tag, *member.Games); err != nil {
			h.respondError(ctx, err)
			return
		}
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

// Snapshot forces an immediate save of the whole aggregate.
func (h *ClanHandler) Snapshot(ctx *fasthttp.RequestCtx) {
	reqCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.stats.Save(reqCtx); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, nil)
}

func clanTagParam(ctx *fasthttp.RequestCtx) (domain.ClanTag, error) {
	raw, _ := ctx.UserValue("tag").(string)
	// Tags arrive percent-encoded ("#" is not valid in a path segment).
	if decoded, err := url.PathUnescape(raw); err == nil {
		raw = decoded
	}
	return domain.ParseClanTag(raw)
}

func seasonParams(ctx *fasthttp.RequestCtx) (domain.ClanTag, domain.Season, error) {
	tag, err := clanTagParam(ctx)
	if err != nil {
		return "", domain.Season{}, err
	}
	rawSeason, _ := ctx.UserValue("season").(string)
	season, err := domain.ParseSeason(rawSeason)
	if err != nil {
		return "", domain.Season{}, err
	}
	return tag, season, nil
}

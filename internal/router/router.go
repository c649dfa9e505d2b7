package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/clanwatch/backend/api/handler"
)

type Handlers struct {
	Clan   *apiHandler.ClanHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.PUT("/api/v1/clans/{tag}", handlers.Clan.Register)
	r.GET("/api/v1/clans/{tag}/seasons/{season}", handlers.Clan.SeasonStats)
	r.GET("/api/v1/clans/{tag}/seasons/{season}/summary", handlers.Clan.Summary)
	r.POST("/api/v1/clans/{tag}/seasons/{season}/wars", handlers.Clan.RecordWar)
	r.POST("/api/v1/clans/{tag}/seasons/{season}/raids", handlers.Clan.RecordRaid)
	r.POST("/api/v1/clans/{tag}/seasons/{season}/members", handlers.Clan.UpsertMember)

	r.POST("/api/v1/snapshot", handlers.Clan.Snapshot)

	return r
}

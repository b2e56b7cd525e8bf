package http

import (
	"time"

	"rps_referee/internal/config"
	"rps_referee/internal/http/handlers"
	"rps_referee/internal/http/middleware"
	"rps_referee/internal/service"
	"rps_referee/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the tool API, the read-only game views, the round
// feed and the operational endpoints. Tool routes take agent tokens; game
// lifecycle and audit routes take operator tokens. tokens may be nil to
// leave both open.
func RegisterRoutes(r *gin.Engine, referee *service.Referee, hub *ws.Hub, tokens *service.AgentTokens, cfg *config.Config, version string) {
	h := handlers.NewHandler(referee)

	var redisPing handlers.Pinger
	if middleware.RedisEnabled() {
		redisPing = middleware.PingRedis
	}
	healthHandler := handlers.NewHealthHandler(referee.Snapshot, redisPing, version)

	// Health checks (no rate limiting)
	r.GET("/health", healthHandler.Health)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/ws", ws.HandleWS(hub, cfg.AllowedOrigin))

	api := r.Group("/api/v1")
	api.GET("/state", h.State)
	api.GET("/history", h.History)
	api.GET("/rules", h.Rules)

	operator := api.Group("", middleware.OperatorAuth(tokens))
	operator.POST("/game/new", h.NewGame)
	operator.GET("/audit", h.Audit)

	chain := []gin.HandlerFunc{middleware.AgentAuth(tokens)}
	if cfg.ToolRateLimit > 0 {
		window := time.Duration(cfg.ToolRateWindow) * time.Second
		if window <= 0 {
			window = time.Minute
		}
		chain = append(chain, middleware.RateLimit(cfg.ToolRateLimit, window))
	}
	tools := api.Group("/tools", chain...)
	tools.POST("/validate_move", h.ValidateMove)
	tools.POST("/resolve_round", h.ResolveRound)
	tools.POST("/update_game_state", h.UpdateGameState)
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rps_referee/internal/config"
	httpServer "rps_referee/internal/http"
	"rps_referee/internal/http/middleware"
	"rps_referee/internal/logger"
	"rps_referee/internal/service"
	"rps_referee/internal/ws"

	"github.com/gin-gonic/gin"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", "error", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	if cfg.GoogleAPIKey == "" {
		logger.Warn("GOOGLE_API_KEY not set; the agent front end will not be able to reach the model")
	}

	referee, err := service.NewRefereeFromConfig(cfg)
	if err != nil {
		logger.Fatal("create referee", "error", err)
	}

	hub := ws.NewHub(referee.Snapshot)
	referee.Subscribe(hub)
	defer hub.Close()

	var tokens *service.AgentTokens
	if cfg.AgentJWTSecret != "" {
		if tokens, err = service.NewAgentTokens(cfg.AgentJWTSecret, 0); err != nil {
			logger.Fatal("agent tokens", "error", err)
		}
	} else {
		logger.Warn("AGENT_JWT_SECRET not set; tool routes are unauthenticated")
	}

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer middleware.CloseRedis()

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Metrics())

	// CORS for a browser front end on a different domain
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && (cfg.AllowedOrigin == "" || origin == cfg.AllowedOrigin) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	httpServer.RegisterRoutes(r, referee, hub, tokens, cfg, version)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort, "version", version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

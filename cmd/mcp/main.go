// Command mcp serves the referee tools to an agent over stdio.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"rps_referee/internal/config"
	"rps_referee/internal/logger"
	"rps_referee/internal/mcpserver"
	"rps_referee/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.InitWithWriter(os.Stderr, "info", false)
		logger.Fatal("load config", "error", err)
	}
	// stdout carries the protocol
	logger.InitWithWriter(os.Stderr, cfg.LogLevel, cfg.LogJSON)

	referee, err := service.NewRefereeFromConfig(cfg)
	if err != nil {
		logger.Fatal("create referee", "error", err)
	}

	server, err := mcpserver.New(referee)
	if err != nil {
		logger.Fatal("create mcp server", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("mcp server ready", "game_id", referee.Snapshot().GameID)
	if err := server.Serve(ctx); err != nil {
		logger.Fatal("mcp server stopped", "error", err)
	}
}

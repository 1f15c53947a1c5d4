package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/vancomm/minefield/internal/app"
	"github.com/vancomm/minefield/internal/config"
	"github.com/vancomm/minefield/internal/logging"
	"github.com/vancomm/minefield/internal/mines"
)

func main() {
	logger := logging.NewSlog(os.Stderr, config.Development())

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	if err := logging.SetupLogrus(mines.Log, cfg.Development, cfg.LogFile); err != nil {
		logger.Error("failed to set up field logging", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer cancel()

	logger.Info("starting up",
		slog.Bool("development", cfg.Development),
		slog.String("default game", cfg.Game.Seed()),
	)

	a := app.New(logger, cfg)

	if err := a.Start(ctx); err != nil {
		logger.Error("failed to start server", slog.Any("error", err))
		os.Exit(1)
	}
}

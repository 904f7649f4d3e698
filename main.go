package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/scar796/nutrio/internal/bot"
	"github.com/scar796/nutrio/internal/catalog"
	"github.com/scar796/nutrio/internal/config"
	"github.com/scar796/nutrio/internal/database"
	"github.com/scar796/nutrio/internal/repository"
	"github.com/scar796/nutrio/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	profileRepo := repository.NewProfileRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	index := catalog.New()

	nutrioBot, err := bot.New(cfg, index, profileRepo, streakRepo, historyRepo, cartRepo, ratingRepo)
	if err != nil {
		slog.Error("creating bot", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go nutrioBot.SweepSessions(ctx)

	go func() {
		srv := server.New(cfg, index, profileRepo)
		if err := srv.Start(); err != nil {
			slog.Error("status server error", "error", err)
		}
	}()

	if err := nutrioBot.Run(ctx); err != nil && ctx.Err() == nil {
		slog.Error("bot error", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}

func setupLogging(level string) {
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(level)); err != nil {
		logLevel = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

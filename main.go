package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/bot"
	"github.com/vidstat/statbot/pkg/config"
	"github.com/vidstat/statbot/pkg/database"
	"github.com/vidstat/statbot/pkg/llm"
	"github.com/vidstat/statbot/pkg/logging"
	"github.com/vidstat/statbot/pkg/repositories"
	"github.com/vidstat/statbot/pkg/schema"
	"github.com/vidstat/statbot/pkg/translator"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.ValidateBot(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting statbot",
		zap.String("env", cfg.Env),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model))

	db, err := database.NewConnection(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database",
			zap.String("error", logging.SanitizeError(err)))
	}
	defer db.Close()

	if err := database.RunMigrations(&cfg.Database, logger); err != nil {
		logger.Fatal("failed to run migrations",
			zap.String("error", logging.SanitizeError(err)))
	}

	client, err := llm.NewClient(&llm.Config{
		Provider:    cfg.LLM.Provider,
		Endpoint:    cfg.LLM.Endpoint,
		Model:       cfg.LLM.Model,
		APIKey:      cfg.LLM.APIKey,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
	}, logger)
	if err != nil {
		logger.Fatal("failed to create completion client", zap.Error(err))
	}

	trans := translator.New(client, schema.Default(), translator.Config{
		RequestTimeout: cfg.LLM.RequestTimeout(),
		MaxInFlight:    cfg.LLM.MaxInFlight,
	}, logger)

	stats := repositories.NewStatsRepository(db.Pool, cfg.Database.QueryTimeout(), logger)
	answerer := bot.NewAnswerer(trans, stats, logger)

	b, err := bot.New(&cfg.Telegram, answerer, logger)
	if err != nil {
		logger.Fatal("failed to create bot", zap.Error(err))
	}

	if err := b.Run(ctx); err != nil {
		logger.Fatal("bot stopped with error", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

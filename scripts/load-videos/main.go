// load-videos imports a JSON export of videos and snapshots into the
// statistics database. Imports are upserts; pass -reset to wipe both tables
// and start clean.
//
// Usage:
//
//	go run scripts/load-videos/main.go [-config config.yaml] [-file data/videos.json] [-reset]
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/vidstat/statbot/pkg/config"
	"github.com/vidstat/statbot/pkg/database"
	"github.com/vidstat/statbot/pkg/loader"
	"github.com/vidstat/statbot/pkg/logging"
	"github.com/vidstat/statbot/pkg/repositories"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	filePath := flag.String("file", "", "JSON export to import (defaults to loader.path from config)")
	reset := flag.Bool("reset", false, "delete all existing videos and snapshots before importing")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	path := *filePath
	if path == "" {
		path = cfg.Loader.Path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

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

	ingest := repositories.NewIngestRepository(db.Pool, logger)

	if *reset {
		logger.Warn("reset requested, deleting existing data")
		if err := ingest.DeleteAll(ctx); err != nil {
			logger.Fatal("failed to clear tables",
				zap.String("error", logging.SanitizeError(err)))
		}
	}

	stats, err := loader.New(ingest, logger).LoadFile(ctx, path)
	if err != nil {
		logger.Fatal("import failed",
			zap.String("file", path),
			zap.String("error", logging.SanitizeError(err)))
	}

	logger.Info("import complete",
		zap.String("file", path),
		zap.Int("videos", stats.Videos),
		zap.Int("snapshots", stats.Snapshots),
		zap.Int("errors", stats.Errors))

	if stats.Errors > 0 {
		os.Exit(1)
	}
}

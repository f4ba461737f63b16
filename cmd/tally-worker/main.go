package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"tally/internal/config"
	"tally/internal/events"
	"tally/internal/kv"
	gsheet "tally/internal/sheets/google"
	"tally/internal/worker"
)

func main() {
	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting tally-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, cleanup, err := openBackend(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", "error", err, "backend", cfg.Backend)
		os.Exit(1)
	}
	defer cleanup()

	// Spreadsheet mirror (optional)
	var mirror *worker.Mirror
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		mirror = worker.NewMirror(store, sheetsClient)
		logger.Info("Google Sheets mirror enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets mirror disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	// Change-feed consumption requires both a broker and a mirror target.
	if mirror != nil && cfg.AMQPURL != "" {
		amqpClient, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		go func() {
			err := amqpClient.Consume(ctx, func(ev *events.LedgerEvent) error {
				return mirror.HandleEvent(ctx, ev)
			})
			if err != nil && err != context.Canceled {
				logger.Error("Event consumption failed", "error", err)
			}
			stop()
		}()
	} else {
		logger.Info("Skipping change-feed consumption",
			"amqp_configured", cfg.AMQPURL != "",
			"mirror_available", mirror != nil)
	}

	// Scheduled CSV snapshots
	snapshotter := worker.NewSnapshotter(store, cfg.SnapshotDir)
	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.SnapshotSchedule, func() {
		if err := snapshotter.WriteSnapshot(ctx); err != nil {
			logger.Error("Snapshot failed", "error", err)
		}
	})
	if err != nil {
		logger.Error("Failed to schedule snapshots", "error", err, "schedule", cfg.SnapshotSchedule)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()
	logger.Info("Snapshot schedule active", "schedule", cfg.SnapshotSchedule, "dir", cfg.SnapshotDir)

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Give in-flight handlers a moment to finish.
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}

func openBackend(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Backend {
	case "mongo":
		store, err := kv.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			store.Close(closeCtx)
		}
		return store, cleanup, nil
	case "memory":
		return kv.NewMemoryStore(), func() {}, nil
	default:
		store, err := kv.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

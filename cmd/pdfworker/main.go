// Command pdfworker runs the document-processing worker: it polls the job
// queue and executes Bates numbering, confidentiality stamping, PII wash
// scanning, and text extraction jobs.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/config"
	"github.com/matterdocs/pdfpro/pkg/handler"
	"github.com/matterdocs/pdfpro/pkg/pdf"
	"github.com/matterdocs/pdfpro/pkg/storage"
	"github.com/matterdocs/pdfpro/pkg/worker"
)

func main() {
	cfg := config.Load()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	}))
	slog.SetDefault(log)

	db, err := gorm.Open(sqlite.Open(cfg.DatabasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := storage.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	blobs := blob.NewLocalStore(cfg.UploadsDir)
	engine := pdf.NewEngine()
	dispatcher := handler.NewDefaultDispatcher(store, blobs, engine)

	sweeper, err := worker.NewSweeper(store, cfg.SweepSchedule, cfg.StaleAfter, log)
	if err != nil {
		log.Error("invalid sweep schedule", "schedule", cfg.SweepSchedule, "error", err)
		os.Exit(1)
	}
	sweeper.Start()
	defer sweeper.Stop()

	poller := worker.NewPoller(store, dispatcher,
		worker.WithInterval(cfg.PollInterval),
		worker.WithLogger(log),
	)

	log.Info("pdfworker started",
		"db", cfg.DatabasePath,
		"uploads", cfg.UploadsDir,
		"poll_interval", cfg.PollInterval,
	)
	if err := poller.Start(ctx); err != nil && ctx.Err() == nil {
		log.Error("poller stopped", "error", err)
		os.Exit(1)
	}
	log.Info("pdfworker stopped")
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

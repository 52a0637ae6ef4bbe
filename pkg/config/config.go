// Package config loads worker settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the worker's runtime settings.
type Config struct {
	// DatabasePath is the SQLite database file backing the job queue and
	// document metadata.
	DatabasePath string

	// UploadsDir is the root under which source and derived PDF bytes
	// live.
	UploadsDir string

	// PollInterval is how often the scheduler looks for a queued job.
	PollInterval time.Duration

	// StaleAfter is how long a job may sit in running before the sweeper
	// declares it orphaned and fails it.
	StaleAfter time.Duration

	// SweepSchedule is the cron expression driving the stale-job sweep.
	SweepSchedule string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// Load reads configuration from the environment. A .env file in the
// working directory is read first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DatabasePath:  getEnv("PDFPRO_DB_PATH", "pdfpro.db"),
		UploadsDir:    getEnv("PDFPRO_UPLOADS_DIR", "."),
		PollInterval:  getEnvAsDuration("PDFPRO_POLL_INTERVAL", 3*time.Second),
		StaleAfter:    getEnvAsDuration("PDFPRO_STALE_AFTER", 30*time.Minute),
		SweepSchedule: getEnv("PDFPRO_SWEEP_SCHEDULE", "@every 1m"),
		LogLevel:      getEnv("PDFPRO_LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

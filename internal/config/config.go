package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string
	DevMode  bool

	ImportWorkerCount int
	ImportQueueSize   int

	ReviewQueueLimit int

	// Spaced-repetition policy. The defaults mirror classical SM-2 plus the
	// product thresholds for promoting items to learned/mastered.
	SRSDefaultEase     float64
	SRSMinEase         float64
	SRSLearnedReps     int
	SRSLearnedEase     float64
	SRSMasteredReps    int
	SRSMasteredEase    float64
	SRSMaxIntervalDays int

	DigestHourUTC   int
	AttemptTTLHours int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:linguaflash.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),
		DevMode:  envBoolOr("DEV_MODE", false),

		ImportWorkerCount: envIntOr("IMPORT_WORKER_COUNT", 2),
		ImportQueueSize:   envIntOr("IMPORT_QUEUE_SIZE", 32),

		ReviewQueueLimit: envIntOr("REVIEW_QUEUE_LIMIT", 20),

		SRSDefaultEase:     envFloatOr("SRS_DEFAULT_EASE", 2.5),
		SRSMinEase:         envFloatOr("SRS_MIN_EASE", 1.3),
		SRSLearnedReps:     envIntOr("SRS_LEARNED_REPS", 3),
		SRSLearnedEase:     envFloatOr("SRS_LEARNED_EASE", 2.5),
		SRSMasteredReps:    envIntOr("SRS_MASTERED_REPS", 5),
		SRSMasteredEase:    envFloatOr("SRS_MASTERED_EASE", 3.0),
		SRSMaxIntervalDays: envIntOr("SRS_MAX_INTERVAL_DAYS", 365),

		DigestHourUTC:   envIntOr("DIGEST_HOUR_UTC", 6),
		AttemptTTLHours: envIntOr("ATTEMPT_TTL_HOURS", 24),
	}
}

// Validate checks the configuration for values that would prevent the
// service from starting correctly.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.ImportWorkerCount <= 0 {
		return fmt.Errorf("IMPORT_WORKER_COUNT must be positive, got %d", c.ImportWorkerCount)
	}
	if c.ImportQueueSize <= 0 {
		return fmt.Errorf("IMPORT_QUEUE_SIZE must be positive, got %d", c.ImportQueueSize)
	}
	if c.ReviewQueueLimit <= 0 {
		return fmt.Errorf("REVIEW_QUEUE_LIMIT must be positive, got %d", c.ReviewQueueLimit)
	}
	if c.SRSMinEase <= 0 {
		return fmt.Errorf("SRS_MIN_EASE must be positive, got %v", c.SRSMinEase)
	}
	if c.SRSDefaultEase < c.SRSMinEase {
		return fmt.Errorf("SRS_DEFAULT_EASE (%v) cannot be below SRS_MIN_EASE (%v)", c.SRSDefaultEase, c.SRSMinEase)
	}
	if c.SRSMaxIntervalDays < 1 {
		return fmt.Errorf("SRS_MAX_INTERVAL_DAYS must be at least 1, got %d", c.SRSMaxIntervalDays)
	}
	if c.DigestHourUTC < 0 || c.DigestHourUTC > 23 {
		return fmt.Errorf("DIGEST_HOUR_UTC must be between 0 and 23, got %d", c.DigestHourUTC)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}

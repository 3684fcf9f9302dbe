package config_test

import (
	"testing"

	"github.com/linguaflash/linguaflash/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	return config.Config{
		Addr:               ":8080",
		DBPath:             "test.db",
		LogLevel:           "INFO",
		ImportWorkerCount:  2,
		ImportQueueSize:    32,
		ReviewQueueLimit:   20,
		SRSDefaultEase:     2.5,
		SRSMinEase:         1.3,
		SRSLearnedReps:     3,
		SRSLearnedEase:     2.5,
		SRSMasteredReps:    5,
		SRSMasteredEase:    3.0,
		SRSMaxIntervalDays: 365,
		DigestHourUTC:      6,
		AttemptTTLHours:    24,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	err := validConfig().Validate()
	assert.NoError(t, err)
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_DefaultEaseBelowMin(t *testing.T) {
	cfg := validConfig()
	cfg.SRSDefaultEase = 1.0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "SRS_DEFAULT_EASE")
}

func TestValidate_DigestHourOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		hour int
	}{
		{name: "negative hour", hour: -1},
		{name: "hour too high", hour: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.DigestHourUTC = tt.hour

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "DIGEST_HOUR_UTC")
		})
	}
}

func TestValidate_WorkerSettings(t *testing.T) {
	cfg := validConfig()
	cfg.ImportWorkerCount = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORT_WORKER_COUNT")

	cfg = validConfig()
	cfg.ImportQueueSize = -1

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "IMPORT_QUEUE_SIZE")
}

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2.5, cfg.SRSDefaultEase)
	assert.Equal(t, 1.3, cfg.SRSMinEase)
	assert.Equal(t, 365, cfg.SRSMaxIntervalDays)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("SRS_MASTERED_EASE", "3.5")
	t.Setenv("REVIEW_QUEUE_LIMIT", "50")

	cfg := config.Load()

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, 3.5, cfg.SRSMasteredEase)
	assert.Equal(t, 50, cfg.ReviewQueueLimit)
}

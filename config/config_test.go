package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Addr)
	assert.Equal(t, "data/database.db", cfg.DatabasePath)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.ChatModel)
	assert.Equal(t, "memory", cfg.SessionDriver)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.RateLimitDelay)
	assert.Equal(t, 100, cfg.DailyLimit)
	assert.Equal(t, 6, cfg.HistorySize)
	assert.Equal(t, 15*time.Second, cfg.RemoteTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ADDR", ":8080")
	t.Setenv("SESSION_DRIVER", "bolt")
	t.Setenv("RATE_LIMIT_DELAY", "250ms")
	t.Setenv("DAILY_LIMIT", "5")
	t.Setenv("LOG_FORMAT", "console")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "bolt", cfg.SessionDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimitDelay)
	assert.Equal(t, 5, cfg.DailyLimit)
	assert.Equal(t, "console", cfg.Log().Format)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("DAILY_LIMIT", "lots")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load()
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.SessionDriver = "etcd"
	assert.ErrorContains(t, cfg.Validate(), "SESSION_DRIVER")

	cfg = base()
	cfg.SessionDriver = "redis"
	assert.ErrorContains(t, cfg.Validate(), "REDIS_URL")

	cfg = base()
	cfg.FreshnessProvider = "gemini"
	assert.ErrorContains(t, cfg.Validate(), "GEMINI_API_KEY")

	cfg = base()
	cfg.FreshnessProvider = "openai"
	assert.ErrorContains(t, cfg.Validate(), "FRESHNESS_PROVIDER")

	cfg = base()
	cfg.HistorySize = 0
	cfg.DailyLimit = -1
	err := cfg.Validate()
	assert.ErrorContains(t, err, "HISTORY_SIZE")
	assert.ErrorContains(t, err, "DAILY_LIMIT")
}

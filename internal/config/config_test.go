package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "DATA_DIR", "ALLOWED_ORIGINS", "REDIS_URL", "POSTGRES_URL", "CLICKHOUSE_URL", "CACHE_TTL"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data/matches", cfg.DataDir)
	assert.Equal(t, "Solo", cfg.DefaultGameMode)
	assert.Equal(t, "Erangel", cfg.DefaultMapName)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("FLUSH_INTERVAL", "not-a-duration")
	t.Setenv("WORKER_COUNT", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, time.Second, cfg.FlushInterval, "invalid durations fall back to the default")
	assert.Equal(t, 2, cfg.WorkerCount, "invalid ints fall back to the default")
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load()
	require.Error(t, err)
}

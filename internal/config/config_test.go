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

	assert.Equal(t, "queues-service", cfg.App.Name)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 5*time.Minute, cfg.Cache.CountsTTL())
	assert.Equal(t, 60, cfg.Auth.TokenTTLMinutes)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CACHE_COUNTS_TTL_SECONDS", "30")
	t.Setenv("POSTGRES_MAX_CONNS", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9090", cfg.App.Addr())
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 30*time.Second, cfg.Cache.CountsTTL())
	assert.Equal(t, int32(25), cfg.Postgres.MaxConns)
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "nope")

	_, err := Load()
	assert.Error(t, err)
}

func TestInvalidIntFallsBack(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "many")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int32(10), cfg.Postgres.MaxConns)
}

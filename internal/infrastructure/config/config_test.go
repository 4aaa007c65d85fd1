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

	assert.Equal(t, "shopsync-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "shopsync", cfg.Database.DBName)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)

	assert.Equal(t, 24*time.Hour, cfg.JWT.TokenExpiration)
	assert.Equal(t, "shopsync-backend", cfg.JWT.Issuer)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 250, cfg.Shopify.PageSize)
	assert.Equal(t, "2024-10", cfg.Shopify.APIVersion)

	assert.Equal(t, 15*time.Minute, cfg.Scheduler.SyncInterval)
	assert.Equal(t, time.Minute, cfg.Scheduler.CheckInterval)
	assert.Equal(t, time.Hour, cfg.Scheduler.SyncLease)

	assert.Equal(t, 24*time.Hour, cfg.Webhook.DedupTTL)
	assert.Equal(t, int64(1<<20), cfg.Webhook.MaxPayloadSize)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SHOPSYNC_APP_PORT", "9090")
	t.Setenv("SHOPSYNC_DATABASE_HOST", "db.internal")
	t.Setenv("SHOPSYNC_DATABASE_PASSWORD", "hunter2")
	t.Setenv("SHOPSYNC_LOG_LEVEL", "debug")
	t.Setenv("SHOPSYNC_SHOPIFY_PAGE_SIZE", "50")
	t.Setenv("SHOPSYNC_SCHEDULER_SYNC_INTERVAL", "5m")
	t.Setenv("SHOPSYNC_WEBHOOK_DEDUP_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50, cfg.Shopify.PageSize)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.SyncInterval)
	assert.True(t, cfg.Webhook.DedupEnabled)
}

func TestLoadRejectsInvalidPageSize(t *testing.T) {
	t.Setenv("SHOPSYNC_SHOPIFY_PAGE_SIZE", "500")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsIdleOverOpenConns(t *testing.T) {
	t.Setenv("SHOPSYNC_DATABASE_MAX_OPEN_CONNS", "5")
	t.Setenv("SHOPSYNC_DATABASE_MAX_IDLE_CONNS", "10")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadProductionValidation(t *testing.T) {
	production := func(t *testing.T) {
		t.Setenv("SHOPSYNC_APP_ENV", "production")
		t.Setenv("SHOPSYNC_JWT_SECRET", "a-production-secret-of-32-chars!!!!!")
		t.Setenv("SHOPSYNC_DATABASE_PASSWORD", "hunter2")
		t.Setenv("SHOPSYNC_DATABASE_SSLMODE", "require")
		t.Setenv("SHOPSYNC_WEBHOOK_SECRET", "whsec_production")
	}

	t.Run("passes with full settings", func(t *testing.T) {
		production(t)
		_, err := Load()
		assert.NoError(t, err)
	})

	t.Run("requires jwt secret", func(t *testing.T) {
		production(t)
		t.Setenv("SHOPSYNC_JWT_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects short jwt secret", func(t *testing.T) {
		production(t)
		t.Setenv("SHOPSYNC_JWT_SECRET", "too-short")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects sslmode disable", func(t *testing.T) {
		production(t)
		t.Setenv("SHOPSYNC_DATABASE_SSLMODE", "disable")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("requires webhook secret", func(t *testing.T) {
		production(t)
		t.Setenv("SHOPSYNC_WEBHOOK_SECRET", "")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "shopsync",
		SSLMode:  "disable",
	}

	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "localhost:5432")
	assert.Contains(t, dsn, "sslmode=disable")
	// special characters must be escaped, not passed through
	assert.NotContains(t, dsn, "p@ss/word")
}

func TestRedisAddr(t *testing.T) {
	r := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", r.Addr())
}

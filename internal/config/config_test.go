package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "timerift", cfg.Name)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "data/timerift.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "time_rift_guardian_save", cfg.Storage.ProgressKey)
	assert.Equal(t, 15.0, cfg.Game.BaseTime)
	assert.Equal(t, 100, cfg.Game.BaseScore)
	assert.Equal(t, 10, cfg.Game.TimeBonusRate)
	assert.Equal(t, 0.15, cfg.Game.ComboBonusRate)
	assert.Equal(t, 3, cfg.Game.InitialHealth)
	assert.Equal(t, 25, cfg.Game.XPPerCorrect)
	assert.Equal(t, 100, cfg.Game.MaxLevel)
	assert.Equal(t, 100*time.Millisecond, cfg.Game.TickInterval)
	assert.Equal(t, 0.1, cfg.Game.TickStep)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendRedis)
	t.Setenv("GAME_INITIAL_HEALTH", "5")
	t.Setenv("EVENTS_REDIS_CHANNEL", "rift:events")

	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Game.InitialHealth)
	assert.True(t, cfg.UsesRedis())
}

func TestLoadRejectsBadBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "floppy")
	_, err := Load(context.Background())
	assert.Error(t, err)
}

func TestPostgresBackendNeedsCredentials(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendPostgres)
	_, err := Load(context.Background())
	assert.Error(t, err)

	t.Setenv("PG_USER", "rift")
	t.Setenv("PG_DATABASE", "rift")
	cfg, err := Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, cfg.Postgres.DSN(), "dbname=rift")
	assert.NotContains(t, cfg.Postgres.URL(), "pool_max_conns")
}

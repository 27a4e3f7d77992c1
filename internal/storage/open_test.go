package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/timerift/internal/config"
)

func TestOpenMemory(t *testing.T) {
	cfg := &config.App{Storage: config.Storage{Backend: config.BackendMemory}}
	kv, closeFn, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &Memory{}, kv)
}

func TestOpenRedis(t *testing.T) {
	client, mr := setupTestRedis(t)
	cfg := &config.App{
		Storage: config.Storage{Backend: config.BackendRedis},
		Redis:   config.Redis{KeyPrefix: "rift"},
	}

	kv, closeFn, err := Open(context.Background(), cfg, client)
	require.NoError(t, err)
	defer closeFn()

	require.NoError(t, kv.Set(context.Background(), "save", []byte("{}")))
	assert.True(t, mr.Exists("rift:save"))

	_, _, err = Open(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	cfg := &config.App{Storage: config.Storage{Backend: "sqlite"}}
	_, closeFn, err := Open(context.Background(), cfg, nil)
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestOpenSQLiteByDefault(t *testing.T) {
	cfg := &config.App{Storage: config.Storage{SQLitePath: filepath.Join(t.TempDir(), "rift.db")}}
	kv, closeFn, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &SQLite{}, kv)
}

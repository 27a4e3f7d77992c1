package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteGetSet(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "rift.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(ctx, "save")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "save", []byte(`{"xp":10}`)))
	require.NoError(t, kv.Set(ctx, "save", []byte(`{"xp":400}`)))

	got, err := kv.Get(ctx, "save")
	require.NoError(t, err)
	assert.Equal(t, `{"xp":400}`, string(got))
	assert.NoError(t, kv.Ping(ctx))
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rift.db")

	first, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "time_rift_guardian_save", []byte(`{"level":3}`)))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(ctx, path)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "time_rift_guardian_save")
	require.NoError(t, err)
	assert.Equal(t, `{"level":3}`, string(got))
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := OpenSQLite(context.Background(), "")
	assert.Error(t, err)
}

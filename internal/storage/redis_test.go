package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisGetSet(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()
	kv := NewRedis(client, "timerift")

	_, err := kv.Get(ctx, "save")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "save", []byte(`{"xp":400}`)))

	raw, err := mr.Get("timerift:save")
	require.NoError(t, err)
	assert.Equal(t, `{"xp":400}`, raw)
	assert.Zero(t, mr.TTL("timerift:save"), "saves never expire")

	got, err := kv.Get(ctx, "save")
	require.NoError(t, err)
	assert.Equal(t, `{"xp":400}`, string(got))
	assert.NoError(t, kv.Ping(ctx))
}

func TestRedisUnavailable(t *testing.T) {
	client, mr := setupTestRedis(t)
	kv := NewRedis(client, "")
	mr.Close()

	_, err := kv.Get(context.Background(), "save")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/gokatarajesh/timerift/internal/config"
)

// Open selects the progress backend named by cfg.Storage.Backend. The returned close
// func releases whatever the backend opened itself; a shared redis client is left alone.
func Open(ctx context.Context, cfg *config.App, client *redis.Client) (KV, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendSQLite, "":
		db, err := OpenSQLite(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		return db, func() { _ = db.Close() }, nil

	case config.BackendMemory:
		return NewMemory(), noop, nil

	case config.BackendRedis:
		if client == nil {
			return nil, noop, errors.New("redis backend requires a redis client")
		}
		return NewRedis(client, cfg.Redis.KeyPrefix), noop, nil

	case config.BackendPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, noop, fmt.Errorf("ping postgres: %w", err)
		}
		return NewPostgres(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	getValueSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertSQL   = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
)

// pgStore is the subset of *pgxpool.Pool used here.
type pgStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Postgres persists values in the kv_store table created by db/migrations.
type Postgres struct {
	store pgStore
}

var _ KV = (*Postgres)(nil)

func NewPostgres(store pgStore) *Postgres {
	return &Postgres{store: store}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.store.QueryRow(ctx, getValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get: %w", err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte) error {
	if _, err := p.store.Exec(ctx, upsertSQL, key, value); err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.store.Ping(ctx)
}

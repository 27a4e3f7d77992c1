package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPgStore struct {
	mock.Mock
}

func (m *mockPgStore) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	a := m.Called(ctx, sql, args)
	return pgconn.NewCommandTag("INSERT 0 1"), a.Error(0)
}

func (m *mockPgStore) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return m.Called(ctx, sql, args).Get(0).(pgx.Row)
}

func (m *mockPgStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fakeRow struct {
	value []byte
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*[]byte)) = r.value
	return nil
}

func TestPostgresGet(t *testing.T) {
	store := new(mockPgStore)
	kv := NewPostgres(store)

	store.On("QueryRow", mock.Anything, getValueSQL, []any{"save"}).Return(fakeRow{value: []byte(`{"level":2}`)}).Once()
	got, err := kv.Get(context.Background(), "save")
	require.NoError(t, err)
	assert.Equal(t, `{"level":2}`, string(got))

	store.On("QueryRow", mock.Anything, getValueSQL, []any{"missing"}).Return(fakeRow{err: pgx.ErrNoRows}).Once()
	_, err = kv.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	store.AssertExpectations(t)
}

func TestPostgresSet(t *testing.T) {
	store := new(mockPgStore)
	kv := NewPostgres(store)
	value := []byte(`{"xp":10}`)

	store.On("Exec", mock.Anything, upsertSQL, []any{"save", value}).Return(nil).Once()
	assert.NoError(t, kv.Set(context.Background(), "save", value))

	store.On("Exec", mock.Anything, upsertSQL, []any{"save", value}).Return(errors.New("conn reset")).Once()
	assert.Error(t, kv.Set(context.Background(), "save", value))

	store.AssertExpectations(t)
}

package distlock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestRedisLock_MutualExclusion(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	a := NewRedisLock(client, "import:contacts.csv", time.Minute)
	b := NewRedisLock(client, "import:contacts.csv", time.Minute)

	ok, err := a.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second holder must not acquire")

	// b does not own the key, so its release is a no-op
	require.NoError(t, b.Release(ctx))
	ok, _ = b.Acquire(ctx)
	assert.False(t, ok)

	require.NoError(t, a.Release(ctx))
	ok, err = b.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLock_ExpiresAfterTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	ctx := context.Background()

	a := NewRedisLock(client, "k", time.Second)
	ok, _ := a.Acquire(ctx)
	require.True(t, ok)

	mr.FastForward(2 * time.Second)

	b := NewRedisLock(client, "k", time.Second)
	ok, err := b.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Error(t, a.Extend(ctx, time.Minute), "expired owner cannot extend")
}

func TestRun_ReturnsErrNotAcquired(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()

	held := NewRedisLock(client, "busy", time.Minute)
	ok, _ := held.Acquire(ctx)
	require.True(t, ok)

	called := false
	err := Run(ctx, NewRedisLock(client, "busy", time.Minute), func(context.Context) error {
		called = true
		return nil
	})
	assert.True(t, errors.Is(err, ErrNotAcquired))
	assert.False(t, called)
}

func TestRun_ReleasesAfterFn(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx := context.Background()
	factory := NewFactory(client, nil)

	err := Run(ctx, factory("job", time.Minute), func(context.Context) error { return nil })
	require.NoError(t, err)

	ok, err := factory("job", time.Minute).Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPGAdvisoryLock_AcquireRelease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := NewPGAdvisoryLock(db, "import:contacts.csv")

	mock.ExpectQuery("SELECT pg_try_advisory_lock").
		WithArgs(l.lockID).
		WillReturnRows(sqlmock.NewRows([]string{"pg_try_advisory_lock"}).AddRow(true))
	mock.ExpectExec("SELECT pg_advisory_unlock").
		WithArgs(l.lockID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := l.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, l.Release(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

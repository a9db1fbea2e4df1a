package redisquota

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boostify/outreach/internal/service/quota"
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

func TestStore_GetMissing(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := NewStore(client)

	_, err := s.Get(context.Background(), "u1", "2026-03-14")
	assert.ErrorIs(t, err, quota.ErrNotFound)
}

func TestStore_ReserveUpToLimit(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := NewStore(client)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		q, ok, err := s.Reserve(ctx, "u1", "2026-03-14", 3)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, i, q.EmailsSent)
		assert.Equal(t, 3, q.DailyLimit)
	}

	q, ok, err := s.Reserve(ctx, "u1", "2026-03-14", 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 3, q.EmailsSent)

	assert.Equal(t, "3", mr.HGet("outreach:quota:u1:2026-03-14", "sent"))

	// a new day is a new key
	q, ok, err = s.Reserve(ctx, "u1", "2026-03-15", 3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, q.EmailsSent)
}

func TestStore_StoredLimitWins(t *testing.T) {
	client, mr := setupTestRedis(t)
	s := NewStore(client)
	mr.HSet("outreach:quota:u1:2026-03-14", "sent", "4", "limit", "5")

	q, ok, err := s.Reserve(context.Background(), "u1", "2026-03-14", 20)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 5, q.EmailsSent)
	assert.Equal(t, 5, q.DailyLimit)

	_, ok, err = s.Reserve(context.Background(), "u1", "2026-03-14", 20)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ReleaseFloorsAtZero(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := NewStore(client)
	ctx := context.Background()

	_, _, err := s.Reserve(ctx, "u1", "2026-03-14", 20)
	require.NoError(t, err)

	require.NoError(t, s.Release(ctx, "u1", "2026-03-14"))
	require.NoError(t, s.Release(ctx, "u1", "2026-03-14"))
	require.NoError(t, s.Release(ctx, "u2", "2026-03-14"))

	q, err := s.Get(ctx, "u1", "2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 0, q.EmailsSent)
}

func TestStore_ConcurrentReserve(t *testing.T) {
	client, _ := setupTestRedis(t)
	s := NewStore(client)
	ctx := context.Background()

	var granted int64
	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := s.Reserve(ctx, "u1", "2026-03-14", 20)
			if err == nil && ok {
				atomic.AddInt64(&granted, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(20), granted)
	q, err := s.Get(ctx, "u1", "2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, 20, q.EmailsSent)
}

func TestStore_WorksBehindQuotaService(t *testing.T) {
	client, _ := setupTestRedis(t)
	svc := quota.NewService(NewStore(client), 2)
	ctx := context.Background()

	r, ok, err := svc.Reserve(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)

	st, err := svc.Remaining(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Remaining)

	require.NoError(t, svc.Release(ctx, r))
	st, err = svc.Remaining(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 2, st.Remaining)
	assert.Equal(t, 0, st.Sent)
}

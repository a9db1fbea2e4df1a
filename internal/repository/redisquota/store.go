// Package redisquota keeps daily send quotas in Redis hashes. It is the
// alternative to the Postgres store for deployments that already run Redis.
package redisquota

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/boostify/outreach/internal/domain"
	"github.com/boostify/outreach/internal/service/quota"
)

// Each record is a hash with fields sent and limit. Keys carry the date, so
// a new day starts from an absent key. Keys are kept for reporting.
var reserveScript = redis.NewScript(`
	local sent = redis.call("HGET", KEYS[1], "sent")
	if not sent then
		redis.call("HSET", KEYS[1], "sent", 1, "limit", ARGV[1])
		return {1, tonumber(ARGV[1]), 1}
	end
	sent = tonumber(sent)
	local limit = tonumber(redis.call("HGET", KEYS[1], "limit"))
	if sent >= limit then
		return {sent, limit, 0}
	end
	sent = redis.call("HINCRBY", KEYS[1], "sent", 1)
	return {sent, limit, 1}
`)

var releaseScript = redis.NewScript(`
	local sent = tonumber(redis.call("HGET", KEYS[1], "sent") or "0")
	if sent > 0 then
		return redis.call("HINCRBY", KEYS[1], "sent", -1)
	end
	return 0
`)

// Store implements quota.Store on Redis.
type Store struct {
	client *redis.Client
}

// NewStore creates a Redis-backed quota store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func key(userID, date string) string {
	return fmt.Sprintf("outreach:quota:%s:%s", userID, date)
}

func (s *Store) Get(ctx context.Context, userID, date string) (*domain.DailyQuota, error) {
	vals, err := s.client.HGetAll(ctx, key(userID, date)).Result()
	if err != nil {
		return nil, fmt.Errorf("get quota: %w", err)
	}
	if len(vals) == 0 {
		return nil, quota.ErrNotFound
	}
	sent, err := strconv.Atoi(vals["sent"])
	if err != nil {
		return nil, fmt.Errorf("get quota: bad sent field: %w", err)
	}
	limit, err := strconv.Atoi(vals["limit"])
	if err != nil {
		return nil, fmt.Errorf("get quota: bad limit field: %w", err)
	}
	return &domain.DailyQuota{UserID: userID, Date: date, EmailsSent: sent, DailyLimit: limit}, nil
}

func (s *Store) Reserve(ctx context.Context, userID, date string, defaultLimit int) (*domain.DailyQuota, bool, error) {
	if defaultLimit <= 0 {
		return nil, false, nil
	}
	res, err := reserveScript.Run(ctx, s.client, []string{key(userID, date)}, defaultLimit).Int64Slice()
	if err != nil {
		return nil, false, fmt.Errorf("reserve quota: %w", err)
	}
	if len(res) != 3 {
		return nil, false, fmt.Errorf("reserve quota: unexpected reply %v", res)
	}
	q := &domain.DailyQuota{
		UserID:     userID,
		Date:       date,
		EmailsSent: int(res[0]),
		DailyLimit: int(res[1]),
	}
	return q, res[2] == 1, nil
}

func (s *Store) Release(ctx context.Context, userID, date string) error {
	if err := releaseScript.Run(ctx, s.client, []string{key(userID, date)}).Err(); err != nil {
		return fmt.Errorf("release quota: %w", err)
	}
	return nil
}

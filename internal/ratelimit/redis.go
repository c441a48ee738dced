package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// admitScript is the redis-side counterpart of MemoryStore.Admit: one
// ZSET per client key holding request timestamps, purged and counted
// before a conditional append, all inside a single script evaluation.
const admitScript = `
local key = KEYS[1]
local window_ms = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local now_ms = tonumber(ARGV[3])
local member = ARGV[4]

redis.call('ZREMRANGEBYSCORE', key, '-inf', now_ms - window_ms)
if redis.call('ZCARD', key) >= limit then
	return 0
end
redis.call('ZADD', key, now_ms, member)
redis.call('PEXPIRE', key, window_ms)
return 1
`

// RedisStore backs the sliding window with a redis ZSET per key, for
// deployments where several instances must share one window.
type RedisStore struct {
	rdb    *redis.Client
	script *redis.Script
	limit  int
	window time.Duration
	prefix string
}

// NewRedisStore creates a redis-backed store. It pings the server once
// so a misconfigured address fails at startup, not on the first request.
func NewRedisStore(rdb *redis.Client, limit int, window time.Duration) (*RedisStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{
		rdb:    rdb,
		script: redis.NewScript(admitScript),
		limit:  limit,
		window: window,
		prefix: "vidgate:window:",
	}, nil
}

// Admit implements Store.
func (s *RedisStore) Admit(ctx context.Context, key string, now time.Time) (bool, error) {
	nowMs := now.UnixMilli()
	// Unique member so concurrent requests in the same millisecond all count.
	member := fmt.Sprintf("%d:%s", now.UnixNano(), key)

	res, err := s.script.Run(ctx, s.rdb,
		[]string{s.prefix + key},
		s.window.Milliseconds(), s.limit, nowMs, member,
	).Int()
	if err != nil {
		return false, fmt.Errorf("redis admit: %w", err)
	}
	return res == 1, nil
}

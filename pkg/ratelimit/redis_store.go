package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const DefaultKeyPrefix = "rl:contact:"

// Sliding window over a sorted set scored by unix milliseconds.
// KEYS[1] = rate limit key
// ARGV[1] = max count allowed
// ARGV[2] = window size in milliseconds
// ARGV[3] = current timestamp in milliseconds
// ARGV[4] = unique member for this attempt
// Returns: {allowed (1|0), count after the check, oldest score or 0}
var admitScript = goredis.NewScript(`
local key = KEYS[1]
local limit = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

-- Drop entries that left the window
redis.call('ZREMRANGEBYSCORE', key, '-inf', now - window)

local count = redis.call('ZCARD', key)
local allowed = 0
if count < limit then
    redis.call('ZADD', key, now, ARGV[4])
    redis.call('PEXPIRE', key, window)
    count = count + 1
    allowed = 1
end

local oldest = 0
local first = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
if first[2] then
    oldest = tonumber(first[2])
end
return {allowed, count, oldest}
`)

// RedisStore shares rate-limit state between instances. Admit runs as a
// single Lua script, so concurrent checks for one key cannot over-admit.
type RedisStore struct {
	client goredis.UniversalClient
	prefix string
}

// NewRedisStore namespaces every key under prefix. Keys expire one window
// after their latest admitted attempt.
func NewRedisStore(client goredis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Admit(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (Decision, error) {
	nowMs := now.UnixMilli()
	member := strconv.FormatInt(nowMs, 10) + "-" + uuid.NewString()

	result, err := admitScript.Run(ctx, s.client, []string{s.prefix + key},
		limit, window.Milliseconds(), nowMs, member).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: redis admit: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 3 {
		return Decision{}, fmt.Errorf("ratelimit: unexpected redis result %T", result)
	}
	allowed, _ := arr[0].(int64)
	count, _ := arr[1].(int64)
	oldestMs, _ := arr[2].(int64)

	d := Decision{
		Allowed:   allowed == 1,
		Limit:     limit,
		Remaining: limit - int(count),
	}
	if d.Remaining < 0 || !d.Allowed {
		d.Remaining = 0
	}
	if oldestMs > 0 {
		d.ResetAt = time.UnixMilli(oldestMs).Add(window)
	}
	return d, nil
}

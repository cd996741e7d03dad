package ratelimit

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Lua script for atomic increment with TTL set on first increment.
// KEYS[1] = counter key
// ARGV[1] = TTL in seconds
// Returns: {current_count, ttl_remaining}
const rateLimitLuaScript = `
local count = redis.call('INCR', KEYS[1])
if count == 1 then
    redis.call('EXPIRE', KEYS[1], ARGV[1])
end
local ttl = redis.call('TTL', KEYS[1])
return {count, ttl}
`

// RedisLimiter is the networked backend. Counters are shared across
// instances and expire automatically with the window.
type RedisLimiter struct {
	client    *goredis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

func NewRedisLimiter(client *goredis.Client, limit int, window time.Duration, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		limit:     limit,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

// Check increments the identifier's counter atomically. Unlike the
// in-process backend the counter keeps counting rejected attempts; the
// admit decision is count <= limit either way.
func (l *RedisLimiter) Check(ctx context.Context, identifier string) (Decision, error) {
	key := l.keyPrefix + identifier
	ttlSeconds := int(l.window.Seconds())

	result, err := l.client.Eval(ctx, rateLimitLuaScript, []string{key}, ttlSeconds).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("redis rate limit eval failed: %w", err)
	}

	arr, ok := result.([]interface{})
	if !ok || len(arr) < 2 {
		return Decision{}, fmt.Errorf("unexpected redis result format")
	}

	count, _ := arr[0].(int64)
	ttl, _ := arr[1].(int64)
	resetAt := time.Now().Add(time.Duration(ttl) * time.Second)

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Admitted:  int(count) <= l.limit,
		Count:     int(count),
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

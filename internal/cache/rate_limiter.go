package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RateLimitResult describes the state of a caller's current window.
type RateLimitResult struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetIn   time.Duration
}

// RedisRateLimiter is a fixed-window counter keyed by caller, shared across instances.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{client: client, limit: limit, window: window}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string) (RateLimitResult, error) {
	redisKey := keyPrefix + "ratelimit:" + key

	var incr *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		ttl = pipe.PTTL(ctx, redisKey)
		return nil
	})
	if err != nil {
		return RateLimitResult{}, fmt.Errorf("rate limit check failed: %w", err)
	}

	resetIn := ttl.Val()
	if resetIn < 0 {
		// first hit in this window
		if err := l.client.PExpire(ctx, redisKey, l.window).Err(); err != nil {
			return RateLimitResult{}, fmt.Errorf("rate limit expiry failed: %w", err)
		}
		resetIn = l.window
	}

	count := int(incr.Val())
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}

	return RateLimitResult{
		Allowed:   count <= l.limit,
		Limit:     l.limit,
		Remaining: remaining,
		ResetIn:   resetIn,
	}, nil
}

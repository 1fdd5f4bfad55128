package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiterFixedWindow(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisRateLimiter(client, 2, time.Minute)
	ctx := context.Background()

	first, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 2, first.Limit)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, time.Minute, first.ResetIn)
	assert.Equal(t, time.Minute, mr.TTL("quiz-service:ratelimit:10.0.0.1"))

	mr.FastForward(20 * time.Second)

	second, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)
	assert.Equal(t, 40*time.Second, second.ResetIn)

	third, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)

	other, err := limiter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
	assert.Equal(t, 1, other.Remaining)

	mr.FastForward(40 * time.Second)

	reset, err := limiter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, reset.Allowed)
	assert.Equal(t, 1, reset.Remaining)
	assert.Equal(t, time.Minute, reset.ResetIn)
}

func TestRateLimiterStoreDown(t *testing.T) {
	mr, client := newTestRedis(t)
	limiter := NewRedisRateLimiter(client, 2, time.Minute)
	mr.Close()

	_, err := limiter.Allow(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}

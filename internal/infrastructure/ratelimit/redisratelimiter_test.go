package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	client.FlushDB(ctx)

	t.Cleanup(func() {
		client.FlushDB(ctx)
		client.Close()
	})

	return client
}

func TestRedisRateLimiter_MinuteWindow(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 5}

	for i := 0; i < 5; i++ {
		allowed, err := limiter.Allow(ctx, "caller-minute", config)
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, err := limiter.Allow(ctx, "caller-minute", config)
	require.NoError(t, err)
	assert.False(t, allowed, "6th request should be refused")
}

func TestRedisRateLimiter_TightestWindowWins(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{
		RequestsPerMinute: 2,
		RequestsPerHour:   100,
		RequestsPerDay:    1000,
	}

	for i := 0; i < 2; i++ {
		allowed, err := limiter.Allow(ctx, "caller-multi", config)
		require.NoError(t, err)
		assert.True(t, allowed)
	}

	allowed, err := limiter.Allow(ctx, "caller-multi", config)
	require.NoError(t, err)
	assert.False(t, allowed, "minute window should refuse before hour/day")
}

func TestRedisRateLimiter_KeysAreIndependent(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "caller-a", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "caller-a", config)
	require.NoError(t, err)
	assert.False(t, allowed, "caller-a should be refused")

	allowed, err = limiter.Allow(ctx, "caller-b", config)
	require.NoError(t, err)
	assert.True(t, allowed, "caller-b should be unaffected")
}

func TestRedisRateLimiter_UsedCountsWindow(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 10}

	used, err := limiter.Used(ctx, "caller-used", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(0), used)

	for i := 0; i < 3; i++ {
		_, err := limiter.Allow(ctx, "caller-used", config)
		require.NoError(t, err)
	}

	used, err = limiter.Used(ctx, "caller-used", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(3), used)
}

func TestRedisRateLimiter_ResetRestoresAdmission(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()
	config := RateLimitConfig{RequestsPerMinute: 1}

	allowed, err := limiter.Allow(ctx, "caller-reset", config)
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "caller-reset", config)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "caller-reset"))

	allowed, err = limiter.Allow(ctx, "caller-reset", config)
	require.NoError(t, err)
	assert.True(t, allowed, "should be allowed again after reset")
}

func TestRedisRateLimiter_ZeroCeilingsAllowEverything(t *testing.T) {
	limiter := NewRedisRateLimiter(setupTestRedis(t))
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "caller-zero", RateLimitConfig{})
	require.NoError(t, err)
	assert.True(t, allowed)
}

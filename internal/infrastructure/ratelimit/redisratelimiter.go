package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// window pairs a span with its configured ceiling; the name keys the redis
// sorted set so minute/hour/day counters stay separate.
type window struct {
	name  string
	span  time.Duration
	limit int
}

// RedisRateLimiter tracks request timestamps in one redis sorted set per
// (key, window) and admits a request only when every configured window
// still has room.
type RedisRateLimiter struct {
	client *redis.Client
}

func NewRedisRateLimiter(client *redis.Client) RateLimiter {
	return &RedisRateLimiter{client: client}
}

func (l *RedisRateLimiter) Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error) {
	now := time.Now()

	for _, w := range configuredWindows(config) {
		ok, err := l.admit(ctx, key, w, now)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}

	return true, nil
}

// admit trims expired entries, counts what is left, and records the new
// request in one pipeline. The request is written even when refused so a
// hammering client keeps its window full.
func (l *RedisRateLimiter) admit(ctx context.Context, key string, w window, now time.Time) (bool, error) {
	redisKey := keyPrefix + key + ":" + w.name
	cutoff := strconv.FormatInt(now.Add(-w.span).UnixNano(), 10)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	count := pipe.ZCard(ctx, redisKey)
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	pipe.Expire(ctx, redisKey, w.span+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit window check: %w", err)
	}

	return count.Val() < int64(w.limit), nil
}

func (l *RedisRateLimiter) Used(ctx context.Context, key string, span time.Duration) (int64, error) {
	redisKey := l.windowKey(key, span)
	cutoff := strconv.FormatInt(time.Now().Add(-span).UnixNano(), 10)

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, redisKey, "0", cutoff)
	count := pipe.ZCard(ctx, redisKey)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate limit usage read: %w", err)
	}

	return count.Val(), nil
}

func (l *RedisRateLimiter) Reset(ctx context.Context, key string) error {
	iter := l.client.Scan(ctx, 0, keyPrefix+key+":*", 0).Iterator()
	for iter.Next(ctx) {
		if err := l.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("clear rate limit key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan rate limit keys: %w", err)
	}

	return nil
}

func configuredWindows(config RateLimitConfig) []window {
	all := []window{
		{name: "minute", span: time.Minute, limit: config.RequestsPerMinute},
		{name: "hour", span: time.Hour, limit: config.RequestsPerHour},
		{name: "day", span: 24 * time.Hour, limit: config.RequestsPerDay},
	}

	var active []window
	for _, w := range all {
		if w.limit > 0 {
			active = append(active, w)
		}
	}
	return active
}

func windowName(span time.Duration) string {
	switch {
	case span <= time.Minute:
		return "minute"
	case span <= time.Hour:
		return "hour"
	default:
		return "day"
	}
}

func (l *RedisRateLimiter) windowKey(key string, span time.Duration) string {
	return keyPrefix + key + ":" + windowName(span)
}

package ratelimit

import (
	"context"
	"time"
)

// RateLimitConfig is the transport-level request ceiling per identity,
// independent of the daily business quotas. A zero ceiling disables that
// window.
type RateLimitConfig struct {
	RequestsPerMinute int
	RequestsPerHour   int
	RequestsPerDay    int
}

type RateLimiter interface {
	// Allow records one request for key and reports whether it fits
	// within every configured window.
	Allow(ctx context.Context, key string, config RateLimitConfig) (bool, error)
	// Used returns how many requests key has made inside the trailing
	// window, without recording a new one.
	Used(ctx context.Context, key string, window time.Duration) (int64, error)
	// Reset clears all windows for key.
	Reset(ctx context.Context, key string) error
}

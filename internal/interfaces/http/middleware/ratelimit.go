package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"remedia/internal/infrastructure/ratelimit"
	"remedia/internal/shared/config"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// RateLimit applies transport-level request ceilings per caller,
// keyed by authenticated user when present, client IP otherwise. A nil
// limiter (redis disabled) disables the middleware.
func RateLimit(limiter ratelimit.RateLimiter, cfg config.RateLimitConfig, log logger.Interface) gin.HandlerFunc {
	limitConfig := ratelimit.RateLimitConfig{
		RequestsPerMinute: cfg.RequestsPerMinute,
		RequestsPerHour:   cfg.RequestsPerHour,
		RequestsPerDay:    cfg.RequestsPerDay,
	}

	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := c.ClientIP()
		if userID := c.GetString(ContextKeyUserID); userID != "" {
			key = "user:" + userID
		}

		ctx := c.Request.Context()
		allowed, err := limiter.Allow(ctx, key, limitConfig)
		if err != nil {
			// Limiter outage must not take the API down with it.
			log.Warnw("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if limitConfig.RequestsPerMinute > 0 {
			setRateLimitHeaders(c, limiter, key, limitConfig.RequestsPerMinute, log)
		}

		if !allowed {
			c.Header("Retry-After", "60")
			utils.ErrorResponse(c, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			c.Abort()
			return
		}

		c.Next()
	}
}

func setRateLimitHeaders(c *gin.Context, limiter ratelimit.RateLimiter, key string, limit int, log logger.Interface) {
	used, err := limiter.Used(c.Request.Context(), key, time.Minute)
	if err != nil {
		log.Warnw("failed to read rate limit usage", "error", err, "key", key)
		used = int64(limit)
	}

	remaining := int64(limit) - used
	if remaining < 0 {
		remaining = 0
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
	c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10))
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"remedia/internal/infrastructure/ratelimit"
	"remedia/internal/shared/config"
	"remedia/internal/shared/logger"
)

type mockRateLimiter struct {
	mock.Mock
}

func (m *mockRateLimiter) Allow(ctx context.Context, key string, cfg ratelimit.RateLimitConfig) (bool, error) {
	args := m.Called(ctx, key, cfg)
	return args.Bool(0), args.Error(1)
}

func (m *mockRateLimiter) Used(ctx context.Context, key string, window time.Duration) (int64, error) {
	args := m.Called(ctx, key, window)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRateLimiter) Reset(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func newRateLimitTestEngine(limiter ratelimit.RateLimiter, callerUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if callerUserID != "" {
			c.Set(ContextKeyUserID, callerUserID)
		}
	})
	engine.Use(RateLimit(limiter, config.RateLimitConfig{RequestsPerMinute: 10}, logger.NewLogger()))
	engine.GET("/api/usage/check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func TestRateLimit_NilLimiterPassesThrough(t *testing.T) {
	engine := newRateLimitTestEngine(nil, "")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit_AllowedRequestCarriesHeaders(t *testing.T) {
	limiter := new(mockRateLimiter)
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	limiter.On("Used", mock.Anything, mock.Anything, time.Minute).Return(int64(3), nil)

	engine := newRateLimitTestEngine(limiter, "")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "7", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimit_RefusedRequestGets429(t *testing.T) {
	limiter := new(mockRateLimiter)
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	limiter.On("Used", mock.Anything, mock.Anything, time.Minute).Return(int64(10), nil)

	engine := newRateLimitTestEngine(limiter, "")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimit_LimiterOutageAllowsRequest(t *testing.T) {
	limiter := new(mockRateLimiter)
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("connection refused"))

	engine := newRateLimitTestEngine(limiter, "")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	limiter.AssertNotCalled(t, "Used", mock.Anything, mock.Anything, mock.Anything)
}

func TestRateLimit_AuthenticatedCallerKeyedByUser(t *testing.T) {
	limiter := new(mockRateLimiter)
	limiter.On("Allow", mock.Anything, "user:u-1", mock.Anything).Return(true, nil)
	limiter.On("Used", mock.Anything, "user:u-1", time.Minute).Return(int64(0), nil)

	engine := newRateLimitTestEngine(limiter, "u-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	limiter.AssertExpectations(t)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"remedia/internal/application/quota/usecases"
	"remedia/internal/domain/quota"
	"remedia/internal/domain/trust"
	"remedia/internal/interfaces/http/middleware"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

func newUsageTestEngine(tracker usecases.QuotaTracker, callerUserID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewLogger()
	handler := NewUsageHandler(tracker, trust.NewOwnershipAuthorizer(log), log)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if callerUserID != "" {
			c.Set(middleware.ContextKeyUserID, callerUserID)
		}
	})
	engine.GET("/api/usage/summary", handler.Summary)
	engine.GET("/api/usage/history", handler.History)
	engine.GET("/api/usage/check", handler.Check)
	return engine
}

func TestUsageCheck_SetsHeaders(t *testing.T) {
	tracker := new(mockQuotaTracker)
	freePlan := quota.ResolvedPlan{Tier: quota.PlanTierFree}

	tracker.On("CanPerform", mock.Anything, "session:"+testSession, "", quota.UsageTypeExports).
		Return(&usecases.CheckResult{Allowed: false, CurrentUsage: 1, Limit: 1, Plan: freePlan}, nil)

	engine := newUsageTestEngine(tracker, "")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check?type=exports&session_id="+testSession, nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get(utils.UsageCurrentHeader))
	assert.Equal(t, "1", w.Header().Get(utils.UsageLimitHeader))
	assert.Equal(t, "free", w.Header().Get(utils.UsagePlanHeader))

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["allowed"])
}

func TestUsageCheck_UnknownTypeRejected(t *testing.T) {
	tracker := new(mockQuotaTracker)
	engine := newUsageTestEngine(tracker, "u-1")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/check?type=downloads", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, errors.CodeInvalidInput, resp.Error.Code)
}

func TestUsageSummary_ReturnsSnapshot(t *testing.T) {
	tracker := new(mockQuotaTracker)

	tracker.On("Summary", mock.Anything, "user:u-1", "u-1").
		Return(&usecases.UsageSummary{
			Plan: "free (trial)",
			Trialing: true,
			Searches: usecases.UsageEntry{Used: 2, Limit: quota.Unlimited, IsWithinLimit: true},
		}, nil)

	engine := newUsageTestEngine(tracker, "u-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/summary", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "free (trial)", data["plan"])
	assert.Equal(t, true, data["trialing"])
}

func TestUsageHistory_DefaultWindow(t *testing.T) {
	tracker := new(mockQuotaTracker)

	tracker.On("History", mock.Anything, "user:u-1", 30).
		Return([]usecases.HistoryDay{}, nil)
	tracker.On("Aggregate", mock.Anything, "user:u-1", 30).
		Return(&usecases.AggregateResult{Days: 30}, nil)

	engine := newUsageTestEngine(tracker, "u-1")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/history", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	tracker.AssertExpectations(t)
}

func TestUsageHistory_BadDays(t *testing.T) {
	tracker := new(mockQuotaTracker)
	engine := newUsageTestEngine(tracker, "u-1")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/history?days=zero", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsage_AnonymousWithoutSessionRejected(t *testing.T) {
	tracker := new(mockQuotaTracker)
	engine := newUsageTestEngine(tracker, "")

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usage/summary", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

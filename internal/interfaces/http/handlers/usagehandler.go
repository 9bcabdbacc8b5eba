package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"remedia/internal/application/quota/usecases"
	"remedia/internal/domain/quota"
	"remedia/internal/domain/trust"
	"remedia/internal/interfaces/http/middleware"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

const (
	defaultHistoryDays = 30
	maxHistoryDays     = 365
)

// UsageHandler serves read-only usage introspection: today's summary,
// the history window, and the lightweight pre-flight check.
type UsageHandler struct {
	quotaTracker usecases.QuotaTracker
	authorizer   *trust.OwnershipAuthorizer
	logger       logger.Interface
}

func NewUsageHandler(quotaTracker usecases.QuotaTracker, authorizer *trust.OwnershipAuthorizer, logger logger.Interface) *UsageHandler {
	return &UsageHandler{
		quotaTracker: quotaTracker,
		authorizer:   authorizer,
		logger:       logger,
	}
}

func (h *UsageHandler) Summary(c *gin.Context) {
	identity, ok := h.resolveIdentity(c)
	if !ok {
		return
	}

	summary, err := h.quotaTracker.Summary(c.Request.Context(), identity.Key(), identity.UserID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, summary)
}

func (h *UsageHandler) History(c *gin.Context) {
	identity, ok := h.resolveIdentity(c)
	if !ok {
		return
	}

	days, err := parseDays(c.Query("days"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	history, err := h.quotaTracker.History(c.Request.Context(), identity.Key(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	aggregate, err := h.quotaTracker.Aggregate(c.Request.Context(), identity.Key(), days)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.OKResponse(c, gin.H{
		"history":   history,
		"aggregate": aggregate,
	})
}

// Check is the pre-flight quota probe. The verdict also rides response
// headers so clients polling before a big action can skip body parsing.
func (h *UsageHandler) Check(c *gin.Context) {
	identity, ok := h.resolveIdentity(c)
	if !ok {
		return
	}

	usageType, err := quota.NewUsageType(c.Query("type"))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewInvalidInput(err.Error()))
		return
	}

	check, err := h.quotaTracker.CanPerform(c.Request.Context(), identity.Key(), identity.UserID, usageType)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetUsageHeaders(c, check.CurrentUsage, check.Limit, check.Plan.String())
	utils.OKResponse(c, gin.H{
		"allowed":    check.Allowed,
		"usage_type": usageType.String(),
		"current":    check.CurrentUsage,
		"limit":      check.Limit,
		"plan":       check.Plan.String(),
	})
}

// resolveIdentity maps the caller plus optional user_id/session_id query
// params to a single identity, writing the error response on failure.
func (h *UsageHandler) resolveIdentity(c *gin.Context) (trust.Identity, bool) {
	callerUserID := c.GetString(middleware.ContextKeyUserID)

	identity, err := h.authorizer.VerifyRequestedIdentity(callerUserID, c.Query("user_id"), c.Query("session_id"))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return trust.Identity{}, false
	}
	if identity.IsZero() {
		if callerUserID == "" {
			utils.ErrorResponseWithError(c, errors.NewInvalidInput("user_id or session_id is required"))
			return trust.Identity{}, false
		}
		identity = trust.NewUserIdentity(callerUserID)
	}
	return identity, true
}

func parseDays(raw string) (int, error) {
	if raw == "" {
		return defaultHistoryDays, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 0, errors.NewInvalidInput("days must be a positive integer")
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	return days, nil
}

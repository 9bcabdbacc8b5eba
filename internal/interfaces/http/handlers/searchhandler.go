package handlers

import (
	"github.com/gin-gonic/gin"

	"remedia/internal/application/quota/usecases"
	"remedia/internal/domain/quota"
	"remedia/internal/domain/trust"
	"remedia/internal/interfaces/http/middleware"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// SearchHandler serves the quota-gated actions: searches, AI searches,
// exports, and comparisons. Every action follows the same admission
// sequence: resolve identity, check the ceiling at the current count,
// consume one unit, then do the work.
type SearchHandler struct {
	quotaTracker usecases.QuotaTracker
	authorizer   *trust.OwnershipAuthorizer
	logger       logger.Interface
}

func NewSearchHandler(quotaTracker usecases.QuotaTracker, authorizer *trust.OwnershipAuthorizer, logger logger.Interface) *SearchHandler {
	return &SearchHandler{
		quotaTracker: quotaTracker,
		authorizer:   authorizer,
		logger:       logger,
	}
}

type SearchRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Query     string `json:"query" binding:"required"`
}

type ExportRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Format    string `json:"format" binding:"omitempty,oneof=csv pdf json"`
}

type CompareRequest struct {
	UserID    string   `json:"user_id"`
	SessionID string   `json:"session_id"`
	RemedyIDs []string `json:"remedy_ids" binding:"required,min=2"`
}

func (h *SearchHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid search request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("invalid request body"))
		return
	}

	h.performGated(c, req.UserID, req.SessionID, quota.UsageTypeSearches, gin.H{
		"query":   req.Query,
		"results": []gin.H{},
	})
}

func (h *SearchHandler) AISearch(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid AI search request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("invalid request body"))
		return
	}

	h.performGated(c, req.UserID, req.SessionID, quota.UsageTypeAISearches, gin.H{
		"query":   req.Query,
		"answer":  "",
		"results": []gin.H{},
	})
}

func (h *SearchHandler) Export(c *gin.Context) {
	var req ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid export request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("invalid request body"))
		return
	}

	format := req.Format
	if format == "" {
		format = "csv"
	}
	h.performGated(c, req.UserID, req.SessionID, quota.UsageTypeExports, gin.H{
		"format": format,
		"status": "queued",
	})
}

func (h *SearchHandler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid compare request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInvalidInput("invalid request body"))
		return
	}

	h.performGated(c, req.UserID, req.SessionID, quota.UsageTypeComparisons, gin.H{
		"remedy_ids": req.RemedyIDs,
		"comparison": gin.H{},
	})
}

// performGated runs the shared admission sequence and, when admitted,
// responds with data plus the post-increment usage headers.
func (h *SearchHandler) performGated(c *gin.Context, requestedUserID, requestedSessionID string, usageType quota.UsageType, data gin.H) {
	callerUserID := c.GetString(middleware.ContextKeyUserID)

	identity, err := h.authorizer.VerifyRequestedIdentity(callerUserID, requestedUserID, requestedSessionID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if identity.IsZero() {
		// Fall back to the caller's own authenticated identity before
		// giving up.
		if callerUserID == "" {
			utils.ErrorResponseWithError(c, errors.NewInvalidInput("user_id or session_id is required"))
			return
		}
		identity = trust.NewUserIdentity(callerUserID)
	}

	ctx := c.Request.Context()
	check, err := h.quotaTracker.CanPerform(ctx, identity.Key(), identity.UserID, usageType)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !check.Allowed {
		utils.SetUsageHeaders(c, check.CurrentUsage, check.Limit, check.Plan.String())
		utils.ErrorResponseWithError(c, errors.NewLimitExceeded(
			"daily limit reached for "+usageType.String(),
			gin.H{
				"usage_type": usageType.String(),
				"current":    check.CurrentUsage,
				"limit":      check.Limit,
				"plan":       check.Plan.String(),
			},
		))
		return
	}

	result, err := h.quotaTracker.Increment(ctx, identity.Key(), identity.UserID, usageType, 1)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SetUsageHeaders(c, result.NewCount, result.Limit, result.Plan.String())
	utils.OKResponse(c, data)
}

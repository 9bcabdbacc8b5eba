package utils

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"remedia/internal/shared/errors"
)

// APIResponse represents the standard API response envelope.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo carries the machine-readable error code and message.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Usage response headers for quota existence checks.
const (
	UsageCurrentHeader = "X-Usage-Current"
	UsageLimitHeader   = "X-Usage-Limit"
	UsagePlanHeader    = "X-Usage-Plan"
)

// SuccessResponse sends a successful response with custom status code.
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// OKResponse sends a 200 response with data.
func OKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

// ErrorResponse sends an error response with an explicit code and message.
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	})
}

// ErrorResponseWithError sends an error response derived from an AppError.
// Non-AppError values map to a generic 500 without leaking internals.
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		c.JSON(appErr.Status, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Code:    appErr.Code,
				Message: appErr.Message,
				Details: appErr.Details,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Code:    errors.CodeInternal,
			Message: "internal server error occurred",
		},
	})
}

// SetUsageHeaders attaches the lightweight quota-check headers.
func SetUsageHeaders(c *gin.Context, current, limit int, plan string) {
	c.Header(UsageCurrentHeader, strconv.Itoa(current))
	c.Header(UsageLimitHeader, strconv.Itoa(limit))
	c.Header(UsagePlanHeader, plan)
}

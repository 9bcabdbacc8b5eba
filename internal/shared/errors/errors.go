// Package errors provides application-level error types carrying stable
// machine-readable codes and HTTP status mappings.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Machine-readable error codes surfaced to clients. These are part of the
// external contract and must not change between releases.
const (
	CodeCSRFValidationFailed = "CSRF_VALIDATION_FAILED"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeLimitExceeded        = "LIMIT_EXCEEDED"
	CodeMaintenance          = "MAINTENANCE"
	CodeInternal             = "INTERNAL_ERROR"
)

// AppError represents an application error with a machine code and HTTP status.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewCSRFValidationFailed creates the dedicated CSRF rejection error.
// It is a 403 distinct from ownership FORBIDDEN via its code.
func NewCSRFValidationFailed() *AppError {
	return &AppError{
		Code:    CodeCSRFValidationFailed,
		Message: "CSRF token validation failed",
		Status:  http.StatusForbidden,
	}
}

// NewUnauthorized creates an authentication-state error (no identity where
// one is required).
func NewUnauthorized(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewForbidden creates an authorization error (identity present but mismatched).
func NewForbidden(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// NewInvalidInput creates a client-input error (malformed identifiers,
// missing required fields). Never retried, surfaced verbatim.
func NewInvalidInput(message string) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// NewLimitExceeded creates a quota-exceeded error. Details should carry the
// current usage, limit, and plan so clients can render an upgrade prompt
// without a follow-up call.
func NewLimitExceeded(message string, details any) *AppError {
	return &AppError{
		Code:    CodeLimitExceeded,
		Message: message,
		Status:  http.StatusTooManyRequests,
		Details: details,
	}
}

// NewMaintenance creates the maintenance short-circuit error.
func NewMaintenance() *AppError {
	return &AppError{
		Code:    CodeMaintenance,
		Message: "service temporarily unavailable for maintenance",
		Status:  http.StatusServiceUnavailable,
	}
}

// NewInternal creates an internal error.
func NewInternal(message string) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// IsAppError checks if the error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

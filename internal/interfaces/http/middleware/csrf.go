package middleware

import (
	"github.com/gin-gonic/gin"

	"remedia/internal/domain/trust"
	"remedia/internal/shared/config"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// CSRF returns a middleware that validates anti-forgery tokens using the
// Double Submit Cookie pattern: mutating requests (POST, PUT, DELETE,
// PATCH) must carry matching csrf_token cookie and X-CSRF-Token header
// values. Safe methods and configured exempt prefixes pass through.
//
// All rejection paths share one response body so a probing client cannot
// tell a missing cookie from a mismatched pair.
func CSRF(gateConfig config.GateConfig, log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !trust.RequiresValidation(c.Request.Method) {
			c.Next()
			return
		}

		if trust.SkipPath(c.Request.URL.Path, gateConfig.CSRFExemptPrefixes) {
			c.Next()
			return
		}

		cookieToken, _ := c.Cookie(utils.CSRFTokenCookie)
		headerToken := c.GetHeader(utils.CSRFTokenHeader)

		if !trust.ValidateToken(cookieToken, headerToken) {
			log.Warnw("CSRF validation failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
				"has_cookie", cookieToken != "",
				"has_header", headerToken != "",
			)
			appErr := errors.NewCSRFValidationFailed()
			utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		c.Next()
	}
}

// EnsureCSRFCookie issues a fresh anti-forgery cookie when the request
// carries none. It runs after CSRF validation, so issuing never rescues
// the request that triggered it.
func EnsureCSRFCookie(cookieConfig config.CookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(utils.CSRFTokenCookie); err != nil || token == "" {
			utils.SetCSRFCookie(c, cookieConfig)
		}
		c.Next()
	}
}

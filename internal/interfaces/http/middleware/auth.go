package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"remedia/internal/infrastructure/auth"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/logger"
	"remedia/internal/shared/utils"
)

// Context keys set by the auth middleware and read by handlers.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			appErr := errors.NewUnauthorized("missing authorization token")
			utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			appErr := errors.NewUnauthorized("invalid or expired token")
			utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		if claims.TokenType != auth.TokenTypeAccess {
			appErr := errors.NewUnauthorized("invalid token type")
			utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUserEmail, claims.Email)

		c.Next()
	}
}

// OptionalAuth populates the caller identity when a valid token is
// present but never rejects. Anonymous requests proceed unidentified and
// fall back to session-based identity downstream.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Verify(token)
		if err == nil && claims.TokenType == auth.TokenTypeAccess {
			c.Set(ContextKeyUserID, claims.UserID)
			c.Set(ContextKeyUserEmail, claims.Email)
		}

		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if token := utils.GetTokenFromCookie(c, utils.AccessTokenCookie); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

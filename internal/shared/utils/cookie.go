package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"remedia/internal/domain/trust"
	"remedia/internal/shared/config"
)

const (
	AccessTokenCookie = "access_token"
	CSRFTokenCookie   = "csrf_token"
	CSRFTokenHeader   = "X-CSRF-Token"

	// CSRFCookieMaxAge is 24 hours; the token is re-issued whenever a
	// request arrives without an existing cookie.
	CSRFCookieMaxAge = 86400
)

// GetTokenFromCookie retrieves a token value from the named cookie.
func GetTokenFromCookie(c *gin.Context, cookieName string) string {
	token, err := c.Cookie(cookieName)
	if err != nil || token == "" {
		return ""
	}
	return token
}

// SetCSRFCookie generates a fresh anti-forgery token and sets it as a
// non-HttpOnly cookie readable by frontend script for the Double Submit
// Cookie pattern. SameSite defaults to Strict for this cookie.
func SetCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig) string {
	token := trust.GenerateToken()

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		CSRFTokenCookie,
		token,
		CSRFCookieMaxAge,
		"/",
		cookieConfig.Domain,
		cookieConfig.Secure,
		false, // HttpOnly=false so frontend JS can read it
	)
	return token
}

// ClearCSRFCookie removes the anti-forgery cookie.
func ClearCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(
		CSRFTokenCookie,
		"",
		-1,
		"/",
		cookieConfig.Domain,
		cookieConfig.Secure,
		false,
	)
}

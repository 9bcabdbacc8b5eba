package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remedia/internal/shared/config"
	"remedia/internal/shared/logger"
)

// BlockBots rejects requests whose User-Agent contains any configured
// fragment, case-insensitively. Blocked requests get a bare 403 with no
// body; crawlers don't deserve a JSON envelope.
func BlockBots(gateConfig config.GateConfig, log logger.Interface) gin.HandlerFunc {
	fragments := make([]string, 0, len(gateConfig.BlockedUserAgents))
	for _, f := range gateConfig.BlockedUserAgents {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			fragments = append(fragments, f)
		}
	}

	return func(c *gin.Context) {
		if len(fragments) == 0 {
			c.Next()
			return
		}

		userAgent := strings.ToLower(c.Request.UserAgent())
		for _, fragment := range fragments {
			if strings.Contains(userAgent, fragment) {
				log.Infow("blocked bot request",
					"user_agent", c.Request.UserAgent(),
					"path", c.Request.URL.Path,
					"client_ip", c.ClientIP(),
				)
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}

		c.Next()
	}
}

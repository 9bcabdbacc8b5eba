package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remedia/internal/shared/config"
	"remedia/internal/shared/errors"
	"remedia/internal/shared/utils"
)

// Maintenance short-circuits all traffic while maintenance mode is on,
// except for allow-listed paths (health checks, the maintenance page
// itself). API requests get a JSON 503; page requests get redirected so
// browsers land on something readable.
func Maintenance(gateConfig config.GateConfig) gin.HandlerFunc {
	maintenancePage := gateConfig.MaintenancePage
	if maintenancePage == "" {
		maintenancePage = "/maintenance"
	}

	return func(c *gin.Context) {
		if !gateConfig.MaintenanceMode {
			c.Next()
			return
		}

		path := c.Request.URL.Path
		if path == maintenancePage {
			c.Next()
			return
		}
		for _, allowed := range gateConfig.MaintenanceAllowPaths {
			if path == allowed || (strings.HasSuffix(allowed, "/") && strings.HasPrefix(path, allowed)) {
				c.Next()
				return
			}
		}

		if strings.HasPrefix(path, "/api/") {
			appErr := errors.NewMaintenance()
			utils.ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
			c.Abort()
			return
		}

		c.Redirect(http.StatusFound, maintenancePage)
		c.Abort()
	}
}

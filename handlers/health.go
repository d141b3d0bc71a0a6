package handlers

import (
	"net/http"

	"handyhelp/utils"

	"github.com/gin-gonic/gin"
)

// RootHandler handles GET /.
func RootHandler(c *gin.Context) {
	c.String(http.StatusOK, "Hello, World!")
}

// HealthHandler handles GET /health with the last snapshot from the health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}

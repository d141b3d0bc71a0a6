package handlers

import (
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err as {key: message}. Store errors show fallback instead of their cause.
func respondError(c *gin.Context, err error, key, fallback string) {
	status := utils.StatusFor(err)
	if status >= 500 {
		getLogger(c).Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, gin.H{key: utils.PublicMessage(err, fallback)})
}

package handlers

import (
	"net/http"

	"handyhelp/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NotificationHandler serves the user's notification feed.
type NotificationHandler struct {
	Service notification.NotificationService
}

func NewNotificationHandler(s notification.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: s}
}

// ListNotificationsHandler handles GET /api/notifications/:userId. Failures are
// reported as plain text with the underlying message.
func (h *NotificationHandler) ListNotificationsHandler(c *gin.Context) {
	userID := c.Param("userId")
	views, err := h.Service.ListForUser(c.Request.Context(), userID)
	if err != nil {
		getLogger(c).Error("Failed to list notifications", zap.String("userId", userID), zap.Error(err))
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, views)
}

package handlers

import (
	"net/http"

	"handyhelp/models"
	"handyhelp/services/handyman"
	"handyhelp/services/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler encapsulates the account review operations.
type AdminHandler struct {
	UserService     user.UserService
	HandymanService handyman.HandymanService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(us user.UserService, hs handyman.HandymanService) *AdminHandler {
	return &AdminHandler{
		UserService:     us,
		HandymanService: hs,
	}
}

// SetHandymanStatusHandler handles PATCH /admin/handymen/:id/status.
func (ah *AdminHandler) SetHandymanStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	id := c.Param("id")
	if err := ah.HandymanService.SetHandymanStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "error", "Failed to update handyman status")
		return
	}
	zap.L().Info("Admin updated handyman status", zap.String("id", id), zap.String("status", req.Status))
	c.JSON(http.StatusOK, gin.H{"message": "Handyman status updated", "status": req.Status})
}

// SetUserStatusHandler handles PATCH /admin/users/:id/status.
func (ah *AdminHandler) SetUserStatusHandler(c *gin.Context) {
	var req models.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status is required"})
		return
	}
	id := c.Param("id")
	if err := ah.UserService.SetUserStatus(c.Request.Context(), id, req.Status); err != nil {
		respondError(c, err, "error", "Failed to update user status")
		return
	}
	zap.L().Info("Admin updated user status", zap.String("id", id), zap.String("status", req.Status))
	c.JSON(http.StatusOK, gin.H{"message": "User status updated", "status": req.Status})
}

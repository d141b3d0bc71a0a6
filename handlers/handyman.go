package handlers

import (
	"net/http"

	"handyhelp/models"
	"handyhelp/services/handyman"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandymanHandler serves handyman registration, login and the public listing.
type HandymanHandler struct {
	Service handyman.HandymanService
}

func NewHandymanHandler(s handyman.HandymanService) *HandymanHandler {
	return &HandymanHandler{Service: s}
}

// RegisterHandymanHandler handles POST /register-handyman. Responses are plain text.
func (h *HandymanHandler) RegisterHandymanHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.HandymanRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid handyman registration payload", zap.Error(err))
		c.String(http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.Service.RegisterHandyman(c.Request.Context(), req); err != nil {
		c.String(utils.StatusFor(err), utils.PublicMessage(err, "Error registering handyman"))
		return
	}
	c.String(http.StatusCreated, "Handyman registered successfully")
}

// AuthenticateHandymanHandler handles POST /login-handyman.
func (h *HandymanHandler) AuthenticateHandymanHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username or password"})
		return
	}

	resp, err := h.Service.AuthenticateHandyman(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "message", "Server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListProfilesHandler handles GET /profiles.
func (h *HandymanHandler) ListProfilesHandler(c *gin.Context) {
	profiles, err := h.Service.ListVerifiedHandymen(c.Request.Context())
	if err != nil {
		respondError(c, err, "message", "Server error")
		return
	}
	c.JSON(http.StatusOK, profiles)
}

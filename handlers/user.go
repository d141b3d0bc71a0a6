package handlers

import (
	"net/http"

	"handyhelp/models"
	"handyhelp/services/user"
	"handyhelp/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler serves customer registration and login.
type UserHandler struct {
	UserService user.UserService
}

func NewUserHandler(us user.UserService) *UserHandler {
	return &UserHandler{UserService: us}
}

// RegisterUserHandler handles POST /register. Responses are plain text.
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.UserRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid registration payload", zap.Error(err))
		c.String(http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if _, err := h.UserService.RegisterUser(c.Request.Context(), req); err != nil {
		c.String(utils.StatusFor(err), utils.PublicMessage(err, "Error registering user"))
		return
	}
	c.String(http.StatusCreated, "User registered successfully")
}

// AuthenticateUserHandler handles POST /login-user.
func (h *UserHandler) AuthenticateUserHandler(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid username or password"})
		return
	}

	resp, err := h.UserService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "message", "Server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

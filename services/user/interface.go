package user

import (
	"context"
	"time"

	userRepo "handyhelp/database/repository/user"
	"handyhelp/models"
)

// UserService covers registration and authentication of customer accounts.
type UserService interface {
	RegisterUser(ctx context.Context, req models.UserRegistrationRequest) (*models.User, error)
	AuthenticateUser(ctx context.Context, username, password string) (*AuthResponse, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	SetUserStatus(ctx context.Context, userID string, status string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo     userRepo.UserRepository
	TokenTTL time.Duration
}

// AuthResponse contains the session token and the public profile.
type AuthResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

package handyman

import (
	"context"
	"time"

	handymanRepo "handyhelp/database/repository/handyman"
	"handyhelp/models"
)

// HandymanService covers registration, authentication and public listing of handymen.
type HandymanService interface {
	RegisterHandyman(ctx context.Context, req models.HandymanRegistrationRequest) (*models.Handyman, error)
	AuthenticateHandyman(ctx context.Context, username, password string) (*AuthResponse, error)
	ListVerifiedHandymen(ctx context.Context) ([]models.Handyman, error)
	GetHandymanByID(ctx context.Context, id string) (*models.Handyman, error)
	SetHandymanStatus(ctx context.Context, id string, status string) error
}

// DefaultHandymanService is the production implementation. Cache may be nil.
type DefaultHandymanService struct {
	Repo     handymanRepo.HandymanRepository
	Cache    ProfileCache
	TokenTTL time.Duration
}

// AuthResponse contains the session token and the public profile.
type AuthResponse struct {
	Token    string                 `json:"token"`
	Handyman models.HandymanProfile `json:"handyman"`
}

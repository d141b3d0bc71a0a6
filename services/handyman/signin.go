package handyman

import (
	"context"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for both unknown usernames and wrong passwords.
var ErrInvalidCredentials = utils.AuthError("Invalid username or password")

// AuthenticateHandyman checks the credentials and issues a session token.
func (s *DefaultHandymanService) AuthenticateHandyman(ctx context.Context, username, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()
	logger.Debug("Login attempt", zap.String("username", username))

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	rec, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("AuthenticateHandyman: failed to fetch handyman", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}
	if rec == nil || !utils.CheckPassword(rec.PasswordHash, password) {
		logger.Warn("Login failed", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(rec.ID.Hex(), models.KindHandyman, s.TokenTTL)
	if err != nil {
		logger.Error("AuthenticateHandyman: failed to sign token", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}

	logger.Info("Login successful", zap.String("username", username), zap.String("handymanId", rec.ID.Hex()))
	return &AuthResponse{Token: token, Handyman: rec.Profile()}, nil
}

// GetHandymanByID returns the handyman without the password hash.
func (s *DefaultHandymanService) GetHandymanByID(ctx context.Context, id string) (*models.Handyman, error) {
	h, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, database.LookupError("handyman", id, err)
	}
	return h, nil
}

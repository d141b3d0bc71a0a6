package user

import (
	"context"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// AuthenticateUser checks the credentials and issues a session token.
func (s *DefaultUserService) AuthenticateUser(ctx context.Context, username, password string) (*AuthResponse, error) {
	logger := utils.GetLogger()

	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	userRec, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		logger.Error("AuthenticateUser: failed to fetch user", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}
	if userRec == nil {
		logger.Debug("AuthenticateUser: unknown username", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if !utils.CheckPassword(userRec.PasswordHash, password) {
		logger.Debug("AuthenticateUser: password mismatch", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID.Hex(), models.KindUser, s.TokenTTL)
	if err != nil {
		logger.Error("AuthenticateUser: failed to sign token", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}

	logger.Info("User logged in", zap.String("username", username), zap.String("id", userRec.ID.Hex()))
	return &AuthResponse{Token: token, User: userRec.Profile()}, nil
}

// GetUserByID returns the user without the password hash.
func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, database.LookupError("user", userID, err)
	}
	return u, nil
}

// SetUserStatus is used by the admin process to verify or reject accounts.
func (s *DefaultUserService) SetUserStatus(ctx context.Context, userID string, status string) error {
	parsed, err := models.ParseAccountStatus(status, models.KindUser)
	if err != nil {
		return utils.ValidationError("%v", err)
	}
	if err := s.Repo.UpdateStatus(ctx, userID, parsed); err != nil {
		return database.LookupError("user", userID, err)
	}
	utils.GetLogger().Info("User status updated", zap.String("id", userID), zap.String("status", string(parsed)))
	return nil
}

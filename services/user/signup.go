package user

import (
	"context"
	"errors"
	"strings"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterUser validates the request, hashes the password and stores a pending account.
func (s *DefaultUserService) RegisterUser(ctx context.Context, req models.UserRegistrationRequest) (*models.User, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Username) == "" || req.Password == "" ||
		strings.TrimSpace(req.DateOfBirth) == "" || strings.TrimSpace(req.Contact) == "" ||
		!req.DataPrivacyConsent {
		return nil, ErrMissingFields
	}

	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, utils.ValidationError("Validation error: dateOfBirth: %v", err)
	}

	available, err := s.Repo.IsUsernameAvailable(ctx, req.Username)
	if err != nil {
		logger.Error("RegisterUser: availability check failed", zap.Error(err))
		return nil, utils.StoreError("Error registering user", err)
	}
	if !available {
		return nil, utils.ValidationError("Validation error: username %q is already taken", req.Username)
	}

	hashed, err := utils.HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		logger.Error("RegisterUser: failed to hash password", zap.Error(err))
		return nil, utils.StoreError("Error registering user", err)
	}

	images := req.Images
	if images == nil {
		images = []string{}
	}
	u := &models.User{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Username:           req.Username,
		PasswordHash:       hashed,
		DateOfBirth:        dob,
		Contact:            req.Contact,
		Address:            req.Address,
		Images:             images,
		DataPrivacyConsent: req.DataPrivacyConsent,
		Status:             models.AccountPending,
	}

	if err := s.Repo.Create(ctx, u); err != nil {
		// Two concurrent registrations can both pass the availability check; the unique index decides.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.ValidationError("Validation error: username %q is already taken", req.Username)
		}
		logger.Error("RegisterUser: failed to create user", zap.Error(err))
		return nil, utils.StoreError("Error registering user", err)
	}

	logger.Info("User registered", zap.String("username", u.Username), zap.String("id", u.ID.Hex()))
	return u, nil
}

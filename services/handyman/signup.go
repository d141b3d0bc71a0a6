package handyman

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

// ErrMissingFields is returned when a required registration field is absent.
var ErrMissingFields = utils.ValidationError("Missing required fields")

// RegisterHandyman validates the request and stores a pending handyman account.
func (s *DefaultHandymanService) RegisterHandyman(ctx context.Context, req models.HandymanRegistrationRequest) (*models.Handyman, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" ||
		strings.TrimSpace(req.Username) == "" || req.Password == "" ||
		strings.TrimSpace(req.DateOfBirth) == "" || strings.TrimSpace(req.Contact) == "" ||
		strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingFields
	}
	specialization := cleanList(req.Specialization)
	if len(specialization) == 0 {
		return nil, utils.ValidationError("Validation error: specialization must list at least one category")
	}

	dob, err := utils.ParseDate(req.DateOfBirth)
	if err != nil {
		return nil, utils.ValidationError("Validation error: dateOfBirth: %v", err)
	}

	available, err := s.Repo.IsUsernameAvailable(ctx, req.Username)
	if err != nil {
		logger.Error("RegisterHandyman: availability check failed", zap.Error(err))
		return nil, utils.StoreError("Error registering handyman", err)
	}
	if !available {
		return nil, utils.ValidationError("Validation error: username %q is already taken", req.Username)
	}

	hashed, err := utils.HashPassword(req.Password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, err
	}
	if err != nil {
		logger.Error("RegisterHandyman: failed to hash password", zap.Error(err))
		return nil, utils.StoreError("Error registering handyman", err)
	}

	h := &models.Handyman{
		FirstName:          req.FirstName,
		LastName:           req.LastName,
		Username:           req.Username,
		PasswordHash:       hashed,
		DateOfBirth:        dob,
		Contact:            req.Contact,
		Address:            req.Address,
		Specialization:     specialization,
		IDImages:           nonNil(req.IDImages),
		CertificatesImages: nonNil(req.CertificatesImages),
		DataPrivacyConsent: req.DataPrivacyConsent,
		Status:             models.AccountPending,
	}

	if err := s.Repo.Create(ctx, h); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.ValidationError("Validation error: username %q is already taken", req.Username)
		}
		logger.Error("RegisterHandyman: failed to create handyman", zap.Error(err))
		return nil, utils.StoreError("Error registering handyman", err)
	}

	logger.Info("Handyman registered", zap.String("username", h.Username), zap.String("id", h.ID.Hex()))
	return h, nil
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

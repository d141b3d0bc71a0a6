package user

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"handyhelp/config"
	"handyhelp/database/repository/memstore"
	"handyhelp/models"
	"handyhelp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) (*DefaultUserService, *memstore.Store) {
	t.Helper()
	utils.Logger = zap.NewNop()
	config.AppConfig.JWTSecret = "test-secret"
	store := memstore.New()
	return &DefaultUserService{Repo: store.Users(), TokenTTL: time.Hour}, store
}

func validRegistration(username string) models.UserRegistrationRequest {
	return models.UserRegistrationRequest{
		FirstName:          "Ana",
		LastName:           "Reyes",
		Username:           username,
		Password:           "pa55word",
		DateOfBirth:        "1990-04-12",
		Contact:            "09171234567",
		Address:            "12 Mabini St",
		DataPrivacyConsent: true,
	}
}

func TestRegisterUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, validRegistration("ana"))
	require.NoError(t, err)
	assert.Equal(t, models.AccountPending, u.Status)
	assert.NotEqual(t, "pa55word", u.PasswordHash)
	assert.NotNil(t, u.Images)
	assert.Equal(t, 1990, u.DateOfBirth.Year())
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	first, err := svc.RegisterUser(ctx, validRegistration("ana"))
	require.NoError(t, err)

	second := validRegistration("ana")
	second.FirstName = "Other"
	_, err = svc.RegisterUser(ctx, second)
	require.Error(t, err)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	stored, err := store.Users().GetByID(ctx, first.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Ana", stored.FirstName)
}

func TestRegisterUserValidation(t *testing.T) {
	svc, store := newTestService(t)

	tests := []struct {
		name   string
		mutate func(*models.UserRegistrationRequest)
		msg    string
	}{
		{"missing first name", func(r *models.UserRegistrationRequest) { r.FirstName = "" }, "Missing required fields"},
		{"missing password", func(r *models.UserRegistrationRequest) { r.Password = "" }, "Missing required fields"},
		{"missing contact", func(r *models.UserRegistrationRequest) { r.Contact = " " }, "Missing required fields"},
		{"no consent", func(r *models.UserRegistrationRequest) { r.DataPrivacyConsent = false }, "Missing required fields"},
		{"bad date", func(r *models.UserRegistrationRequest) { r.DateOfBirth = "12/04/1990" }, "Validation error: dateOfBirth"},
		{"password too long", func(r *models.UserRegistrationRequest) { r.Password = strings.Repeat("p", 73) }, "at most 72 bytes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegistration("ana")
			tt.mutate(&req)
			_, err := svc.RegisterUser(context.Background(), req)
			require.Error(t, err)
			assert.Equal(t, utils.KindValidation, utils.KindOf(err))
			assert.Contains(t, utils.PublicMessage(err, ""), tt.msg)
		})
	}
	assert.Equal(t, 0, store.Calls("users.Create"))
}

func TestAuthenticateUser(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, validRegistration("ana"))
	require.NoError(t, err)

	resp, err := svc.AuthenticateUser(ctx, "ana", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), resp.User.ID)
	assert.Equal(t, "ana", resp.User.Username)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID.Hex(), claims.Subject)
	assert.Equal(t, models.KindUser, claims.Kind)
}

func TestAuthenticateUserSameErrorForUnknownAndWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, validRegistration("ana"))
	require.NoError(t, err)

	_, wrongPassword := svc.AuthenticateUser(ctx, "ana", "nope")
	_, unknownUser := svc.AuthenticateUser(ctx, "nobody", "pa55word")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.True(t, errors.Is(wrongPassword, ErrInvalidCredentials))
	assert.True(t, errors.Is(unknownUser, ErrInvalidCredentials))
}

func TestAuthenticateUserStoreFailure(t *testing.T) {
	svc, store := newTestService(t)
	store.FailOn("users.GetByUsername", 1, errors.New("timeout"))

	_, err := svc.AuthenticateUser(context.Background(), "ana", "pa55word")
	require.Error(t, err)
	assert.Equal(t, utils.KindStore, utils.KindOf(err))
}

func TestSetUserStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	u, err := svc.RegisterUser(ctx, validRegistration("ana"))
	require.NoError(t, err)

	require.NoError(t, svc.SetUserStatus(ctx, u.ID.Hex(), "verified"))
	got, err := svc.GetUserByID(ctx, u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.AccountVerified, got.Status)

	err = svc.SetUserStatus(ctx, u.ID.Hex(), "suspended")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	err = svc.SetUserStatus(ctx, "64b7f0c2a1b2c3d4e5f60718", "verified")
	assert.Equal(t, utils.KindNotFound, utils.KindOf(err))

	_, err = svc.GetUserByID(ctx, "not-an-id")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

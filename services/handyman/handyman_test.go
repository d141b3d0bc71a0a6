package handyman

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

// memoryCache is a ProfileCache that keeps the list in a field.
type memoryCache struct {
	profiles    []models.Handyman
	present     bool
	gen         int64
	readErr     error
	reads       int
	invalidates int
	// beforeSet runs once at the start of the next SetProfiles.
	beforeSet func()
}

func (c *memoryCache) GetProfiles(context.Context) ([]models.Handyman, bool, error) {
	c.reads++
	if c.readErr != nil {
		return nil, false, c.readErr
	}
	return c.profiles, c.present, nil
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	return c.gen, nil
}

func (c *memoryCache) SetProfiles(_ context.Context, gen int64, p []models.Handyman) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	if gen != c.gen {
		return nil
	}
	c.profiles, c.present = p, true
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.invalidates++
	c.gen++
	c.profiles, c.present = nil, false
	return nil
}

func newTestService(t *testing.T, cache ProfileCache) (*DefaultHandymanService, *memstore.Store) {
	t.Helper()
	utils.Logger = zap.NewNop()
	config.AppConfig.JWTSecret = "test-secret"
	store := memstore.New()
	return &DefaultHandymanService{Repo: store.Handymen(), Cache: cache, TokenTTL: time.Hour}, store
}

func validRegistration(username string) models.HandymanRegistrationRequest {
	return models.HandymanRegistrationRequest{
		FirstName:      "Jun",
		LastName:       "Cruz",
		Username:       username,
		Password:       "toolbox",
		DateOfBirth:    "1985-09-30",
		Contact:        "09181112222",
		Address:        "4 Rizal Ave",
		Specialization: []string{"plumbing"},
	}
}

func TestRegisterHandymanDefaults(t *testing.T) {
	svc, _ := newTestService(t, nil)

	h, err := svc.RegisterHandyman(context.Background(), validRegistration("jun"))
	require.NoError(t, err)
	assert.Equal(t, models.AccountPending, h.Status)
	assert.False(t, h.DataPrivacyConsent)
	assert.Equal(t, []string{}, h.IDImages)
	assert.Equal(t, []string{}, h.CertificatesImages)
}

func TestRegisterHandymanValidation(t *testing.T) {
	svc, store := newTestService(t, nil)
	ctx := context.Background()

	noAddress := validRegistration("a")
	noAddress.Address = ""
	_, err := svc.RegisterHandyman(ctx, noAddress)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	noSpecialization := validRegistration("b")
	noSpecialization.Specialization = []string{" "}
	_, err = svc.RegisterHandyman(ctx, noSpecialization)
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))

	longPassword := validRegistration("c")
	longPassword.Password = strings.Repeat("p", 73)
	_, err = svc.RegisterHandyman(ctx, longPassword)
	assert.Equal(t, 400, utils.StatusFor(err))

	assert.Equal(t, 0, store.Calls("handymen.Create"))

	_, err = svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)
	_, err = svc.RegisterHandyman(ctx, validRegistration("jun"))
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}

func TestVerifiedListingFollowsStatus(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)
	id := h.ID.Hex()

	listed := func() []models.Handyman {
		out, err := svc.ListVerifiedHandymen(ctx)
		require.NoError(t, err)
		return out
	}

	assert.Empty(t, listed(), "pending handymen are not listed")

	require.NoError(t, svc.SetHandymanStatus(ctx, id, "verified"))
	got := listed()
	require.Len(t, got, 1)
	assert.Equal(t, id, got[0].ID.Hex())
	assert.Empty(t, got[0].PasswordHash)

	require.NoError(t, svc.SetHandymanStatus(ctx, id, "suspended"))
	assert.Empty(t, listed())

	require.NoError(t, svc.SetHandymanStatus(ctx, id, "verified"))
	require.NoError(t, svc.SetHandymanStatus(ctx, id, "rejected"))
	assert.Empty(t, listed())
}

func TestVerifiedListingUsesCache(t *testing.T) {
	cache := &memoryCache{}
	svc, store := newTestService(t, cache)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)
	require.NoError(t, svc.SetHandymanStatus(ctx, h.ID.Hex(), "verified"))
	assert.Equal(t, 1, cache.invalidates)

	first, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	second, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.Calls("handymen.ListByStatus"))

	require.NoError(t, svc.SetHandymanStatus(ctx, h.ID.Hex(), "suspended"))
	assert.Equal(t, 2, cache.invalidates)
	after, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	assert.Empty(t, after)
	assert.Equal(t, 2, store.Calls("handymen.ListByStatus"))
}

func TestStatusChangeDuringListingIsNotCached(t *testing.T) {
	cache := &memoryCache{}
	svc, _ := newTestService(t, cache)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)
	require.NoError(t, svc.SetHandymanStatus(ctx, h.ID.Hex(), "verified"))

	// The handyman is suspended after the listing read the store but before it cached the result.
	cache.beforeSet = func() {
		require.NoError(t, svc.SetHandymanStatus(ctx, h.ID.Hex(), "suspended"))
	}
	stale, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	assert.Len(t, stale, 1)
	assert.False(t, cache.present)

	fresh, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	assert.Empty(t, fresh)
}

func TestVerifiedListingSurvivesCacheOutage(t *testing.T) {
	cache := &memoryCache{readErr: errors.New("redis down")}
	svc, store := newTestService(t, cache)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)
	require.NoError(t, store.Handymen().UpdateStatus(ctx, h.ID.Hex(), models.AccountVerified))

	got, err := svc.ListVerifiedHandymen(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestAuthenticateHandyman(t *testing.T) {
	svc, _ := newTestService(t, nil)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)

	resp, err := svc.AuthenticateHandyman(ctx, "jun", "toolbox")
	require.NoError(t, err)
	assert.Equal(t, h.ID.Hex(), resp.Handyman.ID)
	assert.Equal(t, []string{"plumbing"}, resp.Handyman.Specialization)

	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, models.KindHandyman, claims.Kind)

	_, wrong := svc.AuthenticateHandyman(ctx, "jun", "hammer")
	_, unknown := svc.AuthenticateHandyman(ctx, "ghost", "toolbox")
	assert.Equal(t, wrong, unknown)
	assert.Equal(t, utils.KindAuth, utils.KindOf(wrong))
}

func TestSetHandymanStatusRejectsUnknownStatus(t *testing.T) {
	cache := &memoryCache{}
	svc, _ := newTestService(t, cache)
	ctx := context.Background()

	h, err := svc.RegisterHandyman(ctx, validRegistration("jun"))
	require.NoError(t, err)

	err = svc.SetHandymanStatus(ctx, h.ID.Hex(), "archived")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
	assert.Equal(t, 0, cache.invalidates)
}

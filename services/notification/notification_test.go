package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"handyhelp/database/repository/memstore"
	"handyhelp/models"
	"handyhelp/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestListForUser(t *testing.T) {
	utils.Logger = zap.NewNop()
	store := memstore.New()
	svc := NewDefaultNotificationService(store.Notifications(), store.Handymen())
	ctx := context.Background()

	h := &models.Handyman{FirstName: "Jun", LastName: "Cruz", Username: "jun"}
	require.NoError(t, store.Handymen().Create(ctx, h))

	sent := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, svc.Record(ctx, &models.Notification{
		HandymanID: h.ID.Hex(), UserID: "u1", Content: utils.AcceptedNotification, DateSent: sent,
	}))
	require.NoError(t, svc.Record(ctx, &models.Notification{
		HandymanID: "64b7f0c2a1b2c3d4e5f60718", UserID: "u1", Content: utils.DeclinedNotification,
	}))
	require.NoError(t, svc.Record(ctx, &models.Notification{
		HandymanID: h.ID.Hex(), UserID: "someone-else", Content: "other",
	}))

	views, err := svc.ListForUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, utils.AcceptedNotification, views[0].Title)
	assert.Equal(t, "Jun Cruz Accepted your booking!", views[0].Description)
	assert.Equal(t, sent, views[0].Date)

	// The second notification's handyman no longer exists.
	assert.Equal(t, utils.DeclinedNotification, views[1].Title)
	assert.Equal(t, utils.DeclinedNotification, views[1].Description)
	assert.False(t, views[1].Date.IsZero())
}

func TestListForUserEmpty(t *testing.T) {
	utils.Logger = zap.NewNop()
	store := memstore.New()
	svc := NewDefaultNotificationService(store.Notifications(), store.Handymen())

	views, err := svc.ListForUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}

func TestListForUserStoreFailureKeepsMessage(t *testing.T) {
	utils.Logger = zap.NewNop()
	store := memstore.New()
	store.FailOn("notifications.ListByUser", 1, errors.New("socket closed"))
	svc := NewDefaultNotificationService(store.Notifications(), store.Handymen())

	_, err := svc.ListForUser(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, utils.KindStore, utils.KindOf(err))
	assert.Contains(t, err.Error(), "socket closed")
}

package notificationRepo

import (
	"context"

	"handyhelp/models"
)

// NotificationRepository defines methods for notification data access. Records are append-only.
type NotificationRepository interface {
	// Insert appends a notification. Inserting an id that already exists yields database.ErrDuplicate.
	Insert(ctx context.Context, n *models.Notification) error
	// ListByUser returns the user's notifications, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
}

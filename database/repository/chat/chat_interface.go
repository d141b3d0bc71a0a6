package chatRepo

import (
	"context"

	"handyhelp/models"
)

// ChatRepository defines methods for chat message data access. Messages are append-only.
type ChatRepository interface {
	// Insert appends a message. Inserting an id that already exists yields database.ErrDuplicate.
	Insert(ctx context.Context, msg *models.ChatMessage) error
	// ListByHandyman returns every message addressed to or sent by the handyman, oldest first.
	ListByHandyman(ctx context.Context, handymanID string) ([]models.ChatMessage, error)
	// ListByUser returns every message addressed to or sent by the user, oldest first.
	ListByUser(ctx context.Context, userID string) ([]models.ChatMessage, error)
	// ListByBooking returns the thread of one booking, oldest first.
	ListByBooking(ctx context.Context, bookingID string) ([]models.ChatMessage, error)
}

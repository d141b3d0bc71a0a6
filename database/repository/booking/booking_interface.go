package bookingRepo

import (
	"context"
	"errors"

	"handyhelp/models"
)

// ErrStatusMismatch is returned by TransitionStatus when the booking is not in the expected state.
var ErrStatusMismatch = errors.New("booking status does not match expected state")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByHandymanAndStatus returns the handyman's bookings in the given state, oldest first.
	ListByHandymanAndStatus(ctx context.Context, handymanID string, status models.BookingStatus) ([]models.Booking, error)
	// TransitionStatus moves the booking from one state to another in a single
	// conditional write and records workflowID as the workflow that made the move.
	// It fails with ErrStatusMismatch if the booking is not in from.
	TransitionStatus(ctx context.Context, id string, from, to models.BookingStatus, workflowID string) error
}

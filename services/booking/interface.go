package booking

import (
	"context"
	"time"

	bookingRepo "handyhelp/database/repository/booking"
	chatRepo "handyhelp/database/repository/chat"
	userRepo "handyhelp/database/repository/user"
	workflowRepo "handyhelp/database/repository/workflow"
	"handyhelp/models"
	"handyhelp/services/notification"
)

// BookingService handles the booking lifecycle and the side effects of accept and decline.
type BookingService interface {
	CreateBooking(ctx context.Context, p models.Principal, req models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ListRequestedForHandyman(ctx context.Context, handymanID string) ([]models.RequestedProfile, error)
	AcceptBooking(ctx context.Context, p models.Principal, req models.AcceptBookingRequest) error
	DeclineBooking(ctx context.Context, p models.Principal, req models.DeclineBookingRequest) error
	// ResumeWorkflow continues an interrupted accept or decline.
	ResumeWorkflow(ctx context.Context, workflowID string) error
}

// ResumeEnqueuer schedules a background retry of a failed workflow.
type ResumeEnqueuer interface {
	EnqueueResume(ctx context.Context, wf *models.BookingWorkflow) error
}

// DefaultBookingService is the production implementation. Resumes may be nil,
// in which case failed workflows are only resumed by a client retry.
type DefaultBookingService struct {
	Bookings      bookingRepo.BookingRepository
	Users         userRepo.UserRepository
	Chats         chatRepo.ChatRepository
	Notifications notification.NotificationService
	Workflows     workflowRepo.WorkflowRepository
	Resumes       ResumeEnqueuer
	EnforceAuth   bool
	Clock         func() time.Time
}

func (s *DefaultBookingService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

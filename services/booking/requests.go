package booking

import (
	"context"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// DefaultProfileImage stands in for a requester without profile images.
const DefaultProfileImage = "default_image.png"

// CreateBooking stores a new booking in the requested state. The parties are
// not checked for existence.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, p models.Principal, req models.BookingRequest) (*models.Booking, error) {
	logger := utils.GetLogger()

	if err := utils.Authorize(p, s.EnforceAuth, models.KindUser, req.UserID); err != nil {
		return nil, err
	}

	b := &models.Booking{
		UserID:         req.UserID,
		HandymanID:     req.HandymanID,
		ServiceDetails: req.ServiceDetails,
		UrgentRequest:  req.UrgentRequest,
		Images:         req.Images,
		Status:         models.BookingRequested,
	}
	if b.Images == nil {
		b.Images = []string{}
	}
	if req.DateOfService != "" {
		d, err := utils.ParseDate(req.DateOfService)
		if err != nil {
			return nil, utils.ValidationError("Validation error: dateOfService: %v", err)
		}
		b.DateOfService = d
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		logger.Error("CreateBooking: failed to save booking", zap.Error(err))
		return nil, utils.StoreError("Error saving booking request", err)
	}

	logger.Info("Booking requested",
		zap.String("bookingId", b.ID.Hex()),
		zap.String("userId", b.UserID),
		zap.String("handymanId", b.HandymanID))
	return b, nil
}

// GetBooking returns a single booking.
func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, database.LookupError("booking", id, err)
	}
	return b, nil
}

// ListRequestedForHandyman joins the handyman's open requests with the requesting
// users. Bookings whose user no longer exists are skipped.
func (s *DefaultBookingService) ListRequestedForHandyman(ctx context.Context, handymanID string) ([]models.RequestedProfile, error) {
	logger := utils.GetLogger()

	if handymanID == "" {
		return nil, utils.ValidationError("handymanId is required")
	}

	bookings, err := s.Bookings.ListByHandymanAndStatus(ctx, handymanID, models.BookingRequested)
	if err != nil {
		logger.Error("ListRequestedForHandyman: failed to fetch bookings", zap.String("handymanId", handymanID), zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}

	ids := make([]string, 0, len(bookings))
	for _, b := range bookings {
		ids = append(ids, b.UserID)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("ListRequestedForHandyman: failed to resolve users", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}

	profiles := make([]models.RequestedProfile, 0, len(bookings))
	for _, b := range bookings {
		u, ok := users[b.UserID]
		if !ok {
			logger.Warn("ListRequestedForHandyman: skipping booking with missing user",
				zap.String("bookingId", b.ID.Hex()), zap.String("userId", b.UserID))
			continue
		}
		images := u.Images
		if images == nil {
			images = []string{DefaultProfileImage}
		}
		serviceImages := b.Images
		if serviceImages == nil {
			serviceImages = []string{}
		}
		profiles = append(profiles, models.RequestedProfile{
			BookingID:      b.ID.Hex(),
			UserID:         u.ID.Hex(),
			Name:           u.Name().Full(),
			Address:        u.Address,
			Contact:        u.Contact,
			ServiceDetails: b.ServiceDetails,
			DateOfService:  utils.FormatLongDate(b.DateOfService),
			UrgentRequest:  b.UrgentRequest,
			ServiceImages:  serviceImages,
			Images:         images,
		})
	}
	return profiles, nil
}

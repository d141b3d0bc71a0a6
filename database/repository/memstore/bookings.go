package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"handyhelp/database"
	bookingRepo "handyhelp/database/repository/booking"
	"handyhelp/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepo implements bookingRepo.BookingRepository.
type BookingRepo struct{ s *Store }

func (r *BookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("bookings.Create"); err != nil {
		return err
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	stamp(&b.CreatedAt, &b.UpdatedAt)
	c := *b
	r.s.bookings = append(r.s.bookings, &c)
	return nil
}

func (r *BookingRepo) find(id string) (*models.Booking, error) {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	for _, b := range r.s.bookings {
		if b.ID == oid {
			return b, nil
		}
	}
	return nil, fmt.Errorf("booking %s: %w", id, database.ErrNotFound)
}

func (r *BookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("bookings.GetByID"); err != nil {
		return nil, err
	}
	b, err := r.find(id)
	if err != nil {
		return nil, err
	}
	c := *b
	return &c, nil
}

func (r *BookingRepo) ListByHandymanAndStatus(_ context.Context, handymanID string, status models.BookingStatus) ([]models.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("bookings.ListByHandymanAndStatus"); err != nil {
		return nil, err
	}
	out := []models.Booking{}
	for _, b := range r.s.bookings {
		if b.HandymanID == handymanID && b.Status == status {
			out = append(out, *b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *BookingRepo) TransitionStatus(_ context.Context, id string, from, to models.BookingStatus, workflowID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("bookings.TransitionStatus"); err != nil {
		return err
	}
	b, err := r.find(id)
	if err != nil {
		return err
	}
	if b.Status != from {
		return fmt.Errorf("booking %s %s -> %s: %w", id, from, to, bookingRepo.ErrStatusMismatch)
	}
	b.Status = to
	b.WorkflowID = workflowID
	b.UpdatedAt = time.Now()
	return nil
}

// SetBookingStatus overwrites a status directly, bypassing the transition check.
func (s *Store) SetBookingStatus(id string, status models.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := (&BookingRepo{s}).find(id)
	if err != nil {
		return err
	}
	b.Status = status
	return nil
}

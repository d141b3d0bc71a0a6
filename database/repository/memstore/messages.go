package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"handyhelp/database"
	"handyhelp/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatRepo implements chatRepo.ChatRepository.
type ChatRepo struct{ s *Store }

func (r *ChatRepo) Insert(_ context.Context, msg *models.ChatMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("chats.Insert"); err != nil {
		return err
	}
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	for _, m := range r.s.chats {
		if m.ID == msg.ID {
			return fmt.Errorf("chat %s: %w", msg.ID.Hex(), database.ErrDuplicate)
		}
	}
	if msg.DateSent.IsZero() {
		msg.DateSent = time.Now()
	}
	c := *msg
	r.s.chats = append(r.s.chats, &c)
	return nil
}

func (r *ChatRepo) ListByHandyman(_ context.Context, handymanID string) ([]models.ChatMessage, error) {
	return r.list("chats.ListByHandyman", func(m *models.ChatMessage) bool { return m.HandymanID == handymanID })
}

func (r *ChatRepo) ListByUser(_ context.Context, userID string) ([]models.ChatMessage, error) {
	return r.list("chats.ListByUser", func(m *models.ChatMessage) bool { return m.UserID == userID })
}

func (r *ChatRepo) ListByBooking(_ context.Context, bookingID string) ([]models.ChatMessage, error) {
	return r.list("chats.ListByBooking", func(m *models.ChatMessage) bool { return m.BookingID == bookingID })
}

func (r *ChatRepo) list(op string, match func(*models.ChatMessage) bool) ([]models.ChatMessage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter(op); err != nil {
		return nil, err
	}
	out := []models.ChatMessage{}
	for _, m := range r.s.chats {
		if match(m) {
			out = append(out, *m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateSent.Before(out[j].DateSent) })
	return out, nil
}

// NotificationRepo implements notificationRepo.NotificationRepository.
type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Insert(_ context.Context, n *models.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("notifications.Insert"); err != nil {
		return err
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	for _, existing := range r.s.notifications {
		if existing.ID == n.ID {
			return fmt.Errorf("notification %s: %w", n.ID.Hex(), database.ErrDuplicate)
		}
	}
	if n.DateSent.IsZero() {
		n.DateSent = time.Now()
	}
	c := *n
	r.s.notifications = append(r.s.notifications, &c)
	return nil
}

func (r *NotificationRepo) ListByUser(_ context.Context, userID string) ([]models.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.enter("notifications.ListByUser"); err != nil {
		return nil, err
	}
	out := []models.Notification{}
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

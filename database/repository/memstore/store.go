// Package memstore keeps every repository in process memory. It backs the
// service and handler tests and supports injecting failures per operation.
package memstore

import (
	"fmt"
	"sync"
	"time"

	bookingRepo "handyhelp/database/repository/booking"
	chatRepo "handyhelp/database/repository/chat"
	handymanRepo "handyhelp/database/repository/handyman"
	notificationRepo "handyhelp/database/repository/notification"
	userRepo "handyhelp/database/repository/user"
	workflowRepo "handyhelp/database/repository/workflow"
	"handyhelp/models"
)

// Store holds the collections. The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	users         []*models.User
	handymen      []*models.Handyman
	bookings      []*models.Booking
	chats         []*models.ChatMessage
	notifications []*models.Notification
	workflows     []*models.BookingWorkflow

	failures map[string]*failure
	calls    map[string]int
}

type failure struct {
	remaining int
	err       error
}

func New() *Store {
	return &Store{
		failures: make(map[string]*failure),
		calls:    make(map[string]int),
	}
}

// FailOn makes the next times calls of op return err. A negative times fails forever.
// Operation names look like "chats.Insert" or "bookings.TransitionStatus".
func (s *Store) FailOn(op string, times int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = &failure{remaining: times, err: err}
}

// ClearFailures removes every injected failure.
func (s *Store) ClearFailures() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = make(map[string]*failure)
}

// Calls reports how many times op was invoked, failed calls included.
func (s *Store) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

// enter records the call and returns the injected failure, if any. Callers hold s.mu.
func (s *Store) enter(op string) error {
	s.calls[op]++
	f, ok := s.failures[op]
	if !ok || f.remaining == 0 {
		return nil
	}
	if f.remaining > 0 {
		f.remaining--
	}
	return fmt.Errorf("%s: %w", op, f.err)
}

func (s *Store) Users() userRepo.UserRepository { return &UserRepo{s} }

func (s *Store) Handymen() handymanRepo.HandymanRepository { return &HandymanRepo{s} }

func (s *Store) Bookings() bookingRepo.BookingRepository { return &BookingRepo{s} }

func (s *Store) Chats() chatRepo.ChatRepository { return &ChatRepo{s} }

func (s *Store) Notifications() notificationRepo.NotificationRepository {
	return &NotificationRepo{s}
}

func (s *Store) Workflows() workflowRepo.WorkflowRepository { return &WorkflowRepo{s} }

// AllChats returns a copy of every stored chat message in insertion order.
func (s *Store) AllChats() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, 0, len(s.chats))
	for _, m := range s.chats {
		out = append(out, *m)
	}
	return out
}

// AllNotifications returns a copy of every stored notification in insertion order.
func (s *Store) AllNotifications() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, *n)
	}
	return out
}

// AllWorkflows returns a copy of every stored workflow in insertion order.
func (s *Store) AllWorkflows() []models.BookingWorkflow {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.BookingWorkflow, 0, len(s.workflows))
	for _, wf := range s.workflows {
		out = append(out, copyWorkflow(wf))
	}
	return out
}

func copyWorkflow(wf *models.BookingWorkflow) models.BookingWorkflow {
	c := *wf
	c.Steps = append([]models.WorkflowStep(nil), wf.Steps...)
	c.Completed = append([]models.WorkflowStep(nil), wf.Completed...)
	return c
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	*created = now
	*updated = now
}

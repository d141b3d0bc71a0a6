package messaging

import (
	"context"
	"time"

	chatRepo "handyhelp/database/repository/chat"
	handymanRepo "handyhelp/database/repository/handyman"
	userRepo "handyhelp/database/repository/user"
	"handyhelp/models"
	"handyhelp/utils"
)

var (
	// ErrNoMessages is returned by the inbox views when the party has no messages.
	ErrNoMessages = utils.NotFoundError("No messages found")
	// ErrMissingFields is returned when a message lacks one of its four required fields.
	ErrMissingFields = utils.ValidationError("Missing required fields")
)

// MessagingService stores booking chat messages and builds inbox and conversation views.
type MessagingService interface {
	SendMessage(ctx context.Context, p models.Principal, req models.SendMessageRequest, sender models.ChatSender) (*models.ChatMessage, error)
	HandymanInbox(ctx context.Context, handymanID string) ([]models.InboxRow, error)
	UserInbox(ctx context.Context, userID string) ([]models.InboxRow, error)
	// Conversation returns the booking thread as seen by the given party kind.
	Conversation(ctx context.Context, bookingID string, view models.PartyKind) ([]models.ConversationMessage, error)
}

// DefaultMessagingService is the production implementation.
type DefaultMessagingService struct {
	Chats       chatRepo.ChatRepository
	Users       userRepo.UserRepository
	Handymen    handymanRepo.HandymanRepository
	EnforceAuth bool
	Clock       func() time.Time
}

func (s *DefaultMessagingService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

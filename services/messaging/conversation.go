package messaging

import (
	"context"

	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// Conversation returns every message of the booking, oldest first. The handyman
// view carries the user's name and the user view carries the handyman's name;
// the name is omitted when that party no longer exists.
func (s *DefaultMessagingService) Conversation(ctx context.Context, bookingID string, view models.PartyKind) ([]models.ConversationMessage, error) {
	logger := utils.GetLogger()

	msgs, err := s.Chats.ListByBooking(ctx, bookingID)
	if err != nil {
		logger.Error("Conversation: failed to fetch messages", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, utils.StoreError("Error fetching conversation", err)
	}

	names, err := s.resolveOtherParty(ctx, msgs, view)
	if err != nil {
		logger.Error("Conversation: failed to resolve names", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, utils.StoreError("Error fetching conversation", err)
	}

	out := make([]models.ConversationMessage, 0, len(msgs))
	for _, m := range msgs {
		cm := models.ConversationMessage{
			ID:         m.ID,
			BookingID:  m.BookingID,
			HandymanID: m.HandymanID,
			UserID:     m.UserID,
			Sender:     m.Sender,
			Contents:   m.Contents,
			DateSent:   m.DateSent,
		}
		if view == models.KindHandyman {
			if n, ok := names[m.UserID]; ok {
				cm.UserDetails = &n
			}
		} else if n, ok := names[m.HandymanID]; ok {
			cm.HandymanDetails = &n
		}
		out = append(out, cm)
	}
	return out, nil
}

func (s *DefaultMessagingService) resolveOtherParty(ctx context.Context, msgs []models.ChatMessage, view models.PartyKind) (map[string]models.PartyName, error) {
	names := make(map[string]models.PartyName)
	if len(msgs) == 0 {
		return names, nil
	}
	ids := make([]string, 0, len(msgs))
	if view == models.KindHandyman {
		for _, m := range msgs {
			ids = append(ids, m.UserID)
		}
		users, err := s.Users.GetByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for id, u := range users {
			names[id] = u.Name()
		}
		return names, nil
	}

	for _, m := range msgs {
		ids = append(ids, m.HandymanID)
	}
	handymen, err := s.Handymen.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for id, h := range handymen {
		names[id] = h.Name()
	}
	return names, nil
}

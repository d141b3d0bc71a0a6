package messaging

import (
	"context"
	"strings"

	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// SendMessage appends a message to a booking thread. The sender tag comes from
// the route, never from the body.
func (s *DefaultMessagingService) SendMessage(ctx context.Context, p models.Principal, req models.SendMessageRequest, sender models.ChatSender) (*models.ChatMessage, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(req.Contents) == "" || req.HandymanID == "" || req.UserID == "" || req.BookingID == "" {
		return nil, ErrMissingFields
	}

	kind, id := models.KindUser, req.UserID
	if sender == models.SenderHandyman {
		kind, id = models.KindHandyman, req.HandymanID
	}
	if err := utils.Authorize(p, s.EnforceAuth, kind, id); err != nil {
		return nil, err
	}

	msg := &models.ChatMessage{
		BookingID:  req.BookingID,
		HandymanID: req.HandymanID,
		UserID:     req.UserID,
		Sender:     sender,
		Contents:   req.Contents,
		DateSent:   s.now(),
	}
	if err := s.Chats.Insert(ctx, msg); err != nil {
		logger.Error("SendMessage: failed to store message", zap.String("bookingId", req.BookingID), zap.Error(err))
		return nil, utils.StoreError("Failed to send message", err)
	}

	logger.Debug("Message sent",
		zap.String("bookingId", msg.BookingID),
		zap.String("sender", string(sender)),
		zap.String("messageId", msg.ID.Hex()))
	return msg, nil
}

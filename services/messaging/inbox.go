package messaging

import (
	"context"
	"sort"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// HandymanInbox summarizes the handyman's threads, one row per (user, booking).
func (s *DefaultMessagingService) HandymanInbox(ctx context.Context, handymanID string) ([]models.InboxRow, error) {
	if err := checkPartyID("handymanId", handymanID); err != nil {
		return nil, err
	}
	msgs, err := s.Chats.ListByHandyman(ctx, handymanID)
	if err != nil {
		utils.GetLogger().Error("HandymanInbox: failed to fetch messages", zap.String("handymanId", handymanID), zap.Error(err))
		return nil, utils.StoreError("Error fetching messages", err)
	}

	rows := groupThreads(msgs, func(m models.ChatMessage) string { return m.UserID })
	if len(rows) == 0 {
		return nil, ErrNoMessages
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	users, err := s.Users.GetByIDs(ctx, ids)
	if err != nil {
		utils.GetLogger().Error("HandymanInbox: failed to resolve users", zap.Error(err))
		return nil, utils.StoreError("Error fetching messages", err)
	}
	for i := range rows {
		if u, ok := users[rows[i].UserID]; ok {
			rows[i].UserFirstName, rows[i].UserLastName = u.FirstName, u.LastName
		}
	}
	return rows, nil
}

// UserInbox summarizes the user's threads, one row per (handyman, booking).
// The handyman's name is reported in the userFirstName/userLastName fields.
func (s *DefaultMessagingService) UserInbox(ctx context.Context, userID string) ([]models.InboxRow, error) {
	if err := checkPartyID("userId", userID); err != nil {
		return nil, err
	}
	msgs, err := s.Chats.ListByUser(ctx, userID)
	if err != nil {
		utils.GetLogger().Error("UserInbox: failed to fetch messages", zap.String("userId", userID), zap.Error(err))
		return nil, utils.StoreError("Error fetching messages", err)
	}

	rows := groupThreads(msgs, func(m models.ChatMessage) string { return m.HandymanID })
	if len(rows) == 0 {
		return nil, ErrNoMessages
	}

	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.HandymanID)
	}
	handymen, err := s.Handymen.GetByIDs(ctx, ids)
	if err != nil {
		utils.GetLogger().Error("UserInbox: failed to resolve handymen", zap.Error(err))
		return nil, utils.StoreError("Error fetching messages", err)
	}
	for i := range rows {
		if h, ok := handymen[rows[i].HandymanID]; ok {
			rows[i].UserFirstName, rows[i].UserLastName = h.FirstName, h.LastName
		}
	}
	return rows, nil
}

func checkPartyID(field, id string) error {
	if id == "" {
		return utils.ValidationError("%s is required", field)
	}
	if !database.IsValidID(id) {
		return utils.ValidationError("Invalid %s format", field)
	}
	return nil
}

type threadKey struct {
	other   string
	booking string
}

// groupThreads keeps the newest message of each (other party, booking) thread.
// msgs must be sorted oldest first. Rows come back newest first.
func groupThreads(msgs []models.ChatMessage, other func(models.ChatMessage) string) []models.InboxRow {
	index := make(map[threadKey]int)
	var rows []models.InboxRow
	for _, m := range msgs {
		row := models.InboxRow{
			UserID:      m.UserID,
			HandymanID:  m.HandymanID,
			BookingID:   m.BookingID,
			LastMessage: utils.Truncate(m.Contents, utils.InboxPreviewLength),
			DateSent:    m.DateSent,
		}
		key := threadKey{other: other(m), booking: m.BookingID}
		if i, ok := index[key]; ok {
			rows[i] = row
			continue
		}
		index[key] = len(rows)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DateSent.After(rows[j].DateSent)
	})
	return rows
}

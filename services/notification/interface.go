package notification

import (
	"context"
	"time"

	handymanRepo "handyhelp/database/repository/handyman"
	notificationRepo "handyhelp/database/repository/notification"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// NotificationService records handyman-to-user notifications and renders them for the user.
type NotificationService interface {
	Record(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID string) ([]models.NotificationView, error)
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Repo     notificationRepo.NotificationRepository
	Handymen handymanRepo.HandymanRepository
	Clock    func() time.Time
}

func NewDefaultNotificationService(repo notificationRepo.NotificationRepository, handymen handymanRepo.HandymanRepository) *DefaultNotificationService {
	return &DefaultNotificationService{Repo: repo, Handymen: handymen, Clock: time.Now}
}

// Record appends a notification. DateSent defaults to now.
func (s *DefaultNotificationService) Record(ctx context.Context, n *models.Notification) error {
	if n.DateSent.IsZero() {
		n.DateSent = s.now()
	}
	if err := s.Repo.Insert(ctx, n); err != nil {
		return err
	}
	utils.GetLogger().Debug("Notification recorded",
		zap.String("userId", n.UserID), zap.String("handymanId", n.HandymanID))
	return nil
}

// ListForUser renders the user's notifications. The description is prefixed with
// the sending handyman's name when that handyman still exists.
func (s *DefaultNotificationService) ListForUser(ctx context.Context, userID string) ([]models.NotificationView, error) {
	logger := utils.GetLogger()

	rows, err := s.Repo.ListByUser(ctx, userID)
	if err != nil {
		logger.Error("ListForUser: failed to fetch notifications", zap.String("userId", userID), zap.Error(err))
		return nil, utils.StoreError(err.Error(), err)
	}

	ids := make([]string, 0, len(rows))
	for _, n := range rows {
		ids = append(ids, n.HandymanID)
	}
	handymen, err := s.Handymen.GetByIDs(ctx, ids)
	if err != nil {
		logger.Error("ListForUser: failed to resolve handymen", zap.Error(err))
		return nil, utils.StoreError(err.Error(), err)
	}

	views := make([]models.NotificationView, 0, len(rows))
	for _, n := range rows {
		description := n.Content
		if h, ok := handymen[n.HandymanID]; ok {
			description = h.Name().Full() + " " + n.Content
		} else {
			logger.Warn("ListForUser: notification references a missing handyman",
				zap.String("notificationId", n.ID.Hex()), zap.String("handymanId", n.HandymanID))
		}
		views = append(views, models.NotificationView{
			Title:       n.Content,
			Description: description,
			Date:        n.DateSent,
		})
	}
	return views, nil
}

func (s *DefaultNotificationService) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

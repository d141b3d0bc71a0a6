package handyman

import (
	"context"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.uber.org/zap"
)

// ListVerifiedHandymen returns the publicly listable handymen. A cache failure
// is logged and the list is read from the store.
func (s *DefaultHandymanService) ListVerifiedHandymen(ctx context.Context) ([]models.Handyman, error) {
	logger := utils.GetLogger()

	var gen int64
	cacheable := false
	if s.Cache != nil {
		profiles, ok, err := s.Cache.GetProfiles(ctx)
		switch {
		case err != nil:
			logger.Warn("ListVerifiedHandymen: cache read failed", zap.Error(err))
		case ok:
			return profiles, nil
		default:
			if gen, err = s.Cache.Generation(ctx); err != nil {
				logger.Warn("ListVerifiedHandymen: cache generation read failed", zap.Error(err))
			} else {
				cacheable = true
			}
		}
	}

	profiles, err := s.Repo.ListByStatus(ctx, models.AccountVerified)
	if err != nil {
		logger.Error("ListVerifiedHandymen: failed to list handymen", zap.Error(err))
		return nil, utils.StoreError("Server error", err)
	}

	if cacheable {
		if err := s.Cache.SetProfiles(ctx, gen, profiles); err != nil {
			logger.Warn("ListVerifiedHandymen: cache write failed", zap.Error(err))
		}
	}
	return profiles, nil
}

// SetHandymanStatus is used by the admin process and drops the cached public list.
func (s *DefaultHandymanService) SetHandymanStatus(ctx context.Context, id string, status string) error {
	parsed, err := models.ParseAccountStatus(status, models.KindHandyman)
	if err != nil {
		return utils.ValidationError("%v", err)
	}
	if err := s.Repo.UpdateStatus(ctx, id, parsed); err != nil {
		return database.LookupError("handyman", id, err)
	}
	if s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			utils.GetLogger().Warn("SetHandymanStatus: cache invalidation failed", zap.Error(err))
		}
	}
	utils.GetLogger().Info("Handyman status updated", zap.String("id", id), zap.String("status", string(parsed)))
	return nil
}

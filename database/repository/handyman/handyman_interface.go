package handymanRepo

import (
	"context"

	"handyhelp/models"
)

// HandymanRepository defines methods for handyman data access.
type HandymanRepository interface {
	// Create inserts a new handyman record. A taken username yields database.ErrDuplicate.
	Create(ctx context.Context, handyman *models.Handyman) error
	// GetByID retrieves a handyman by its hex ObjectID, without the password hash.
	GetByID(ctx context.Context, id string) (*models.Handyman, error)
	// GetByUsername retrieves a handyman by username, including the password hash.
	// It returns nil, nil when no handyman matches.
	GetByUsername(ctx context.Context, username string) (*models.Handyman, error)
	// IsUsernameAvailable reports whether no handyman holds the username.
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	// GetByIDs resolves many loose references at once, keyed by hex id.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.Handyman, error)
	// ListByStatus returns every handyman with the given account status.
	ListByStatus(ctx context.Context, status models.AccountStatus) ([]models.Handyman, error)
	// UpdateStatus sets the account status.
	UpdateStatus(ctx context.Context, id string, status models.AccountStatus) error
}

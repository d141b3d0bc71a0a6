package userRepo

import (
	"context"

	"handyhelp/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record. A taken username yields database.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its hex ObjectID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByUsername retrieves a user by username, including the password hash.
	// It returns nil, nil when no user matches.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// IsUsernameAvailable reports whether no user holds the username.
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	// GetByIDs resolves many loose references at once, keyed by hex id.
	// Ids without a matching document are absent from the result.
	GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
	// UpdateStatus sets the account status.
	UpdateStatus(ctx context.Context, id string, status models.AccountStatus) error
	// GetByIDWithProjection retrieves a user by id with a projection; nil returns the full document.
	GetByIDWithProjection(ctx context.Context, id string, projection bson.M) (*models.User, error)
}

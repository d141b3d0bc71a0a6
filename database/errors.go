package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"handyhelp/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a lookup matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a write violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
	// ErrInvalidID is returned when an identifier is not a hex ObjectID.
	ErrInvalidID = errors.New("invalid object id")
)

// DefaultTimeout bounds single-document operations.
const DefaultTimeout = 5 * time.Second

// WithTimeout derives a bounded context for one store call.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, d)
}

// ObjectIDFromHex parses a hex identifier, wrapping ErrInvalidID on failure.
func ObjectIDFromHex(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// IsValidID reports whether id is a well-formed ObjectID.
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

// ObjectIDsFromHex parses the valid ids and silently drops malformed ones,
// since loose references may hold arbitrary strings.
func ObjectIDsFromHex(ids []string) []primitive.ObjectID {
	seen := make(map[string]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if oid, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, oid)
		}
	}
	return out
}

// Classify maps driver errors to the package sentinels.
func Classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

// LookupError classifies a repository failure for an entity lookup:
// malformed ids are validation errors, misses are not-found, the rest are store errors.
func LookupError(entity, id string, err error) error {
	switch {
	case errors.Is(err, ErrInvalidID):
		return utils.ValidationError("Invalid %s id format", entity)
	case errors.Is(err, ErrNotFound):
		return utils.NotFoundError("%s %s not found", entity, id)
	}
	return utils.StoreError("Server error", err)
}

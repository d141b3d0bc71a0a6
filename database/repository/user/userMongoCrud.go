package userRepo

import (
	"context"
	"fmt"
	"time"

	"handyhelp/database"
	"handyhelp/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", database.Classify(err))
	}
	return nil
}

// UpdateStatus sets the account status of a user.
func (r *MongoUserRepo) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) error {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"accounts_status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}

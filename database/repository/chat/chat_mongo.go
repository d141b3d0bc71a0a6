package chatRepo

import (
	"context"
	"fmt"
	"time"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the chats collection.
const CollectionName = "chats"

// MongoChatRepo implements ChatRepository using MongoDB.
type MongoChatRepo struct {
	coll *mongo.Collection
}

// NewMongoChatRepo creates a new ChatRepository backed by MongoDB.
func NewMongoChatRepo(db *mongo.Database) ChatRepository {
	repo := &MongoChatRepo{coll: db.Collection(CollectionName)}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create chat indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoChatRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "date_sent", Value: 1}}},
		{Keys: bson.D{{Key: "handyman_id", Value: 1}, {Key: "date_sent", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date_sent", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Insert appends a message, defaulting its id and timestamp.
func (r *MongoChatRepo) Insert(ctx context.Context, msg *models.ChatMessage) error {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}
	if msg.DateSent.IsZero() {
		msg.DateSent = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, msg); err != nil {
		return fmt.Errorf("failed to save chat message: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoChatRepo) ListByHandyman(ctx context.Context, handymanID string) ([]models.ChatMessage, error) {
	return r.list(ctx, bson.M{"handyman_id": handymanID})
}

func (r *MongoChatRepo) ListByUser(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *MongoChatRepo) ListByBooking(ctx context.Context, bookingID string) ([]models.ChatMessage, error) {
	return r.list(ctx, bson.M{"booking_id": bookingID})
}

// list sorts by date_sent, then _id so that messages stored in the same
// millisecond keep their insertion order.
func (r *MongoChatRepo) list(ctx context.Context, filter bson.M) ([]models.ChatMessage, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date_sent", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve chat messages: %w", err)
	}
	defer cursor.Close(ctx)

	messages := []models.ChatMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode chat messages: %w", err)
	}
	return messages, nil
}

package handymanRepo

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

// CollectionName is the handymen collection.
const CollectionName = "handymen"

var safeProjection = bson.M{"password": 0}

// MongoHandymanRepo implements HandymanRepository using MongoDB.
type MongoHandymanRepo struct {
	coll *mongo.Collection
}

// NewMongoHandymanRepo creates a new HandymanRepository backed by MongoDB.
func NewMongoHandymanRepo(db *mongo.Database) HandymanRepository {
	repo := &MongoHandymanRepo{coll: db.Collection(CollectionName)}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create handyman indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoHandymanRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "accounts_status", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new handyman document.
func (r *MongoHandymanRepo) Create(ctx context.Context, h *models.Handyman) error {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	now := time.Now()
	h.CreatedAt = now
	h.UpdatedAt = now
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	if _, err := r.coll.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("failed to create handyman: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoHandymanRepo) GetByID(ctx context.Context, id string) (*models.Handyman, error) {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	var h models.Handyman
	opts := options.FindOne().SetProjection(safeProjection)
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&h); err != nil {
		return nil, fmt.Errorf("failed to fetch handyman with id %s: %w", id, database.Classify(err))
	}
	return &h, nil
}

func (r *MongoHandymanRepo) GetByUsername(ctx context.Context, username string) (*models.Handyman, error) {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	var h models.Handyman
	if err := r.coll.FindOne(ctx, bson.M{"username": username}).Decode(&h); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch handyman %s: %w", username, err)
	}
	return &h, nil
}

func (r *MongoHandymanRepo) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check username availability: %w", err)
	}
	return n == 0, nil
}

func (r *MongoHandymanRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*models.Handyman, error) {
	out := make(map[string]*models.Handyman)
	oids := database.ObjectIDsFromHex(ids)
	if len(oids) == 0 {
		return out, nil
	}
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	handymen, err := r.find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, err
	}
	for i := range handymen {
		out[handymen[i].ID.Hex()] = &handymen[i]
	}
	return out, nil
}

func (r *MongoHandymanRepo) ListByStatus(ctx context.Context, status models.AccountStatus) ([]models.Handyman, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return r.find(ctx, bson.M{"accounts_status": status})
}

func (r *MongoHandymanRepo) UpdateStatus(ctx context.Context, id string, status models.AccountStatus) error {
	oid, err := database.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"accounts_status": status, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update handyman with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("handyman with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoHandymanRepo) find(ctx context.Context, filter bson.M) ([]models.Handyman, error) {
	cursor, err := r.coll.Find(ctx, filter, options.Find().SetProjection(safeProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve handymen: %w", err)
	}
	defer cursor.Close(ctx)

	handymen := []models.Handyman{}
	if err := cursor.All(ctx, &handymen); err != nil {
		return nil, fmt.Errorf("failed to decode handymen: %w", err)
	}
	return handymen, nil
}

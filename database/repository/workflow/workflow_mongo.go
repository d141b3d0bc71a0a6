package workflowRepo

import (
	"context"
	"fmt"
	"time"

	"handyhelp/database"
	"handyhelp/models"
	"handyhelp/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// CollectionName is the booking workflows collection.
const CollectionName = "booking_workflows"

// MongoWorkflowRepo implements WorkflowRepository using MongoDB.
type MongoWorkflowRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkflowRepo creates a new WorkflowRepository backed by MongoDB.
func NewMongoWorkflowRepo(db *mongo.Database) WorkflowRepository {
	repo := &MongoWorkflowRepo{coll: db.Collection(CollectionName)}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := repo.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "target", Value: 1}, {Key: "state", Value: 1}},
	})
	if err != nil {
		utils.GetLogger().Warn("failed to create workflow indexes", zap.Error(err))
	}
	return repo
}

func (r *MongoWorkflowRepo) Create(ctx context.Context, wf *models.BookingWorkflow) error {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	now := time.Now()
	wf.CreatedAt = now
	wf.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, wf); err != nil {
		return fmt.Errorf("failed to create workflow: %w", database.Classify(err))
	}
	return nil
}

func (r *MongoWorkflowRepo) Get(ctx context.Context, id string) (*models.BookingWorkflow, error) {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	var wf models.BookingWorkflow
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&wf); err != nil {
		return nil, fmt.Errorf("failed to fetch workflow %s: %w", id, database.Classify(err))
	}
	return &wf, nil
}

func (r *MongoWorkflowRepo) FindOpen(ctx context.Context, bookingID string, target models.BookingStatus) (*models.BookingWorkflow, error) {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	filter := bson.M{
		"bookingId": bookingID,
		"target":    target,
		"state":     bson.M{"$in": []models.WorkflowState{models.WorkflowRunning, models.WorkflowFailed}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var wf models.BookingWorkflow
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&wf); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up open workflow for booking %s: %w", bookingID, err)
	}
	return &wf, nil
}

func (r *MongoWorkflowRepo) BeginAttempt(ctx context.Context, id string) error {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{"state": models.WorkflowRunning, "updatedAt": time.Now()},
		"$inc": bson.M{"attempts": 1},
	})
}

func (r *MongoWorkflowRepo) MarkStep(ctx context.Context, id string, step models.WorkflowStep) error {
	return r.update(ctx, id, bson.M{
		"$addToSet": bson.M{"completed": step},
		"$set":      bson.M{"updatedAt": time.Now()},
	})
}

func (r *MongoWorkflowRepo) Finish(ctx context.Context, id string, state models.WorkflowState, lastErr string) error {
	return r.update(ctx, id, bson.M{
		"$set": bson.M{"state": state, "lastError": lastErr, "updatedAt": time.Now()},
	})
}

func (r *MongoWorkflowRepo) update(ctx context.Context, id string, update bson.M) error {
	ctx, cancel := database.WithTimeout(ctx, database.DefaultTimeout)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update workflow %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("workflow %s: %w", id, database.ErrNotFound)
	}
	return nil
}

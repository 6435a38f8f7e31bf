package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/activity"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type activityRepository struct {
	oneWashes *mongo.Collection
	jobs      *mongo.Collection
}

func NewActivityRepository(db *database.MongoDB) activity.ActivityRepository {
	return &activityRepository{
		oneWashes: db.Collection(database.OneWashCollection),
		jobs:      db.Collection(database.JobCollection),
	}
}

func (r *activityRepository) OneWashTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	filter := bson.M{
		"tenant_id":  tenantID,
		"worker_id":  workerID,
		"is_deleted": bson.M{"$ne": true},
		"created_at": bson.M{"$gte": from, "$lt": to},
	}
	times, err := timestamps(ctx, r.oneWashes, filter, "created_at")
	if err != nil {
		return nil, fmt.Errorf("failed to list one-off washes: %w", err)
	}
	return times, nil
}

func (r *activityRepository) CompletedJobTimes(ctx context.Context, tenantID, workerID string, from, to time.Time) ([]time.Time, error) {
	filter := bson.M{
		"tenant_id":      tenantID,
		"worker_id":      workerID,
		"status":         activity.JobStatusCompleted,
		"is_deleted":     bson.M{"$ne": true},
		"completed_date": bson.M{"$gte": from, "$lt": to},
	}
	times, err := timestamps(ctx, r.jobs, filter, "completed_date")
	if err != nil {
		return nil, fmt.Errorf("failed to list completed jobs: %w", err)
	}
	return times, nil
}

// timestamps projects field out of every document matching filter.
func timestamps(ctx context.Context, c *mongo.Collection, filter bson.M, field string) ([]time.Time, error) {
	opts := options.Find().SetProjection(bson.M{field: 1, "_id": 0})
	cursor, err := c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var times []time.Time
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		if dt, ok := doc[field].(primitive.DateTime); ok {
			times = append(times, dt.Time())
		}
	}
	return times, cursor.Err()
}

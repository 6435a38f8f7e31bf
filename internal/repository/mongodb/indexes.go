package mongodb

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the repositories rely on. At most one
// active settings version per tenant is enforced by a partial unique index.
func EnsureIndexes(ctx context.Context, db *database.MongoDB) error {
	indexes := map[string][]mongo.IndexModel{
		database.SettingsCollection: {
			{
				Keys: bson.D{{Key: "tenant_id", Value: 1}},
				Options: options.Index().
					SetName("uk_salary_settings_active").
					SetUnique(true).
					SetPartialFilterExpression(bson.M{"is_active": true}),
			},
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "version", Value: -1}},
				Options: options.Index().SetName("uk_salary_settings_version").SetUnique(true),
			},
		},
		database.SlipCollection: {
			{
				Keys: bson.D{
					{Key: "tenant_id", Value: 1}, {Key: "worker_id", Value: 1},
					{Key: "month", Value: 1}, {Key: "year", Value: 1},
				},
				Options: options.Index().SetName("uk_salary_slips_period").SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "tenant_id", Value: 1}, {Key: "year", Value: 1}, {Key: "month", Value: 1}},
				Options: options.Index().SetName("idx_salary_slips_period"),
			},
		},
		database.WorkerCollection: {
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "is_active", Value: 1}}},
		},
		database.OneWashCollection: {
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "worker_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		database.JobCollection: {
			{Keys: bson.D{{Key: "tenant_id", Value: 1}, {Key: "worker_id", Value: 1}, {Key: "completed_date", Value: 1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}
	return nil
}

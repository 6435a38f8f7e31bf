package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/worker"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type workerRepository struct {
	collection *mongo.Collection
}

func NewWorkerRepository(db *database.MongoDB) worker.WorkerRepository {
	return &workerRepository{collection: db.Collection(database.WorkerCollection)}
}

func (r *workerRepository) GetByID(ctx context.Context, tenantID, id string) (worker.Worker, error) {
	var doc workerDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "tenant_id": tenantID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *workerRepository) ListActive(ctx context.Context, tenantID string) ([]worker.Worker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tenant_id": tenantID, "is_active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []workerDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}

	workers := make([]worker.Worker, 0, len(docs))
	for _, doc := range docs {
		workers = append(workers, doc.toDomain())
	}
	return workers, nil
}

func (r *workerRepository) ListTenants(ctx context.Context) ([]string, error) {
	values, err := r.collection.Distinct(ctx, "tenant_id", bson.M{"is_active": true})
	if err != nil {
		return nil, fmt.Errorf("failed to list tenants: %w", err)
	}

	tenants := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			tenants = append(tenants, id)
		}
	}
	return tenants, nil
}

package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/washpay-backend/internal/domain/salary"
	"github.com/cmlabs-hris/washpay-backend/internal/pkg/database"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type slipRepository struct {
	collection *mongo.Collection
}

func NewSlipRepository(db *database.MongoDB) salary.SlipRepository {
	return &slipRepository{collection: db.Collection(database.SlipCollection)}
}

func periodFilter(tenantID, workerID string, month, year int) bson.M {
	return bson.M{"tenant_id": tenantID, "worker_id": workerID, "month": month, "year": year}
}

func (r *slipRepository) GetByPeriod(ctx context.Context, tenantID, workerID string, month, year int) (salary.Slip, error) {
	var doc slipDocument
	err := r.collection.FindOne(ctx, periodFilter(tenantID, workerID, month, year)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return salary.Slip{}, salary.ErrSlipNotFound
		}
		return salary.Slip{}, fmt.Errorf("failed to get salary slip: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *slipRepository) Upsert(ctx context.Context, slip salary.Slip) (salary.Slip, error) {
	now := time.Now().UTC()
	doc := toSlipDocument(slip)
	// identity and creation time are only written on insert
	doc.ID = ""
	doc.CreatedAt = time.Time{}
	doc.UpdatedAt = now

	update := bson.M{
		"$set":         doc,
		"$setOnInsert": bson.M{"_id": uuid.New().String(), "created_at": now},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	filter := periodFilter(slip.TenantID, slip.WorkerID, slip.Month, slip.Year)

	var saved slipDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent save inserted the key first; this write now updates it
		err = r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved)
	}
	if err != nil {
		return salary.Slip{}, fmt.Errorf("failed to upsert salary slip: %w", err)
	}
	return saved.toDomain(), nil
}

func (r *slipRepository) ListByPeriod(ctx context.Context, tenantID string, month, year int) ([]salary.Slip, error) {
	opts := options.Find().SetSort(bson.D{{Key: "worker_name", Value: 1}, {Key: "worker_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tenant_id": tenantID, "month": month, "year": year}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary slips: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []slipDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode salary slips: %w", err)
	}

	slips := make([]salary.Slip, 0, len(docs))
	for _, doc := range docs {
		slips = append(slips, doc.toDomain())
	}
	return slips, nil
}

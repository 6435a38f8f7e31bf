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

type settingsRepository struct {
	collection *mongo.Collection
}

func NewSettingsRepository(db *database.MongoDB) salary.SettingsRepository {
	return &settingsRepository{collection: db.Collection(database.SettingsCollection)}
}

func (r *settingsRepository) GetActive(ctx context.Context, tenantID string) (salary.Settings, error) {
	var doc settingsDocument
	err := r.collection.FindOne(ctx, bson.M{"tenant_id": tenantID, "is_active": true}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return salary.Settings{}, salary.ErrSettingsNotFound
		}
		return salary.Settings{}, fmt.Errorf("failed to get salary settings: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *settingsRepository) CreateActive(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	s.IsActive = true
	created, err := r.insert(ctx, s)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return salary.Settings{}, salary.ErrActiveSettingsExists
		}
		return salary.Settings{}, fmt.Errorf("failed to create salary settings: %w", err)
	}
	return created, nil
}

func (r *settingsRepository) UpdateActive(ctx context.Context, s salary.Settings, categories ...salary.Category) (salary.Settings, error) {
	set := bson.M{
		"last_modified_by": s.LastModifiedBy,
		"updated_at":       time.Now().UTC(),
	}
	for _, c := range categories {
		field, ok := settingsField[c]
		if !ok {
			return salary.Settings{}, fmt.Errorf("%w: %q", salary.ErrInvalidCategory, c)
		}
		block, err := s.Category(c)
		if err != nil {
			return salary.Settings{}, err
		}
		set[field] = block
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	filter := bson.M{"_id": s.ID, "tenant_id": s.TenantID, "is_active": true}

	var doc settingsDocument
	err := r.collection.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return salary.Settings{}, salary.ErrSettingsNotFound
		}
		return salary.Settings{}, fmt.Errorf("failed to update salary settings: %w", err)
	}
	return doc.toDomain(), nil
}

// Reset runs its steps in sequence. The partial unique index rejects a
// second active version if two resets interleave.
func (r *settingsRepository) Reset(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	var latest settingsDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "version", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"tenant_id": s.TenantID}, opts).Decode(&latest)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return salary.Settings{}, fmt.Errorf("failed to read settings version: %w", err)
	}

	_, err = r.collection.UpdateMany(ctx,
		bson.M{"tenant_id": s.TenantID, "is_active": true},
		bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return salary.Settings{}, fmt.Errorf("failed to deactivate salary settings: %w", err)
	}

	s.Version = latest.Version + 1
	s.IsActive = true
	created, err := r.insert(ctx, s)
	if err != nil {
		return salary.Settings{}, fmt.Errorf("failed to insert salary settings: %w", err)
	}
	return created, nil
}

func (r *settingsRepository) insert(ctx context.Context, s salary.Settings) (salary.Settings, error) {
	now := time.Now().UTC()
	s.ID = uuid.New().String()
	s.CreatedAt = now
	s.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, toSettingsDocument(s)); err != nil {
		return salary.Settings{}, err
	}
	return s, nil
}

package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// AngpauConfigRepository implements repositories.AngpauConfigRepository.
// The collection holds a single document: the current default card table.
type AngpauConfigRepository struct {
	collection *mongo.Collection
}

// NewAngpauConfigRepository creates a new AngpauConfigRepository
func NewAngpauConfigRepository(db *mongo.Database) repositories.AngpauConfigRepository {
	return &AngpauConfigRepository{collection: db.Collection("angpau_configs")}
}

// Get returns the stored default card table
func (r *AngpauConfigRepository) Get(ctx context.Context) (*models.AngpauConfig, error) {
	var config models.AngpauConfig
	err := r.collection.FindOne(ctx, bson.M{}).Decode(&config)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// Upsert replaces the default card table, creating it on first save
func (r *AngpauConfigRepository) Upsert(ctx context.Context, cards []models.CardConfig) error {
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"cardConfigs": cards, "updatedAt": now},
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID().Hex(), "createdAt": now},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{}, update, opts)
	return err
}

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

// DailyRotationRepository implements repositories.DailyRotationRepository
type DailyRotationRepository struct {
	collection *mongo.Collection
}

// NewDailyRotationRepository creates a new DailyRotationRepository. The
// unique index on date is what turns a duplicate concurrent populate into
// a detectable conflict instead of a second record.
func NewDailyRotationRepository(db *mongo.Database) repositories.DailyRotationRepository {
	r := &DailyRotationRepository{collection: db.Collection("daily_rotation")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return r
}

// Create inserts the rotation record for a date
func (r *DailyRotationRepository) Create(ctx context.Context, rotation *models.DailyRotation) error {
	rotation.ID = primitive.NewObjectID().Hex()
	rotation.CreatedAt = time.Now()
	rotation.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, rotation)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repositories.ErrDuplicateDate
		}
		return err
	}
	return nil
}

// FindByDate finds the rotation record for a YYYY-MM-DD date key
func (r *DailyRotationRepository) FindByDate(ctx context.Context, date string) (*models.DailyRotation, error) {
	var rotation models.DailyRotation
	err := r.collection.FindOne(ctx, bson.M{"date": date}).Decode(&rotation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &rotation, nil
}

// DeleteByDate removes the rotation record for a date, if any
func (r *DailyRotationRepository) DeleteByDate(ctx context.Context, date string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"date": date})
	return err
}

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

// GameRepository implements repositories.GameRepository
type GameRepository struct {
	collection *mongo.Collection
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *mongo.Database) repositories.GameRepository {
	return &GameRepository{collection: db.Collection("games")}
}

// Create creates a new catalog game. Ids are stored as hex strings so the
// repository interface stays storage-agnostic.
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	game.ID = primitive.NewObjectID().Hex()
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, game)
	return err
}

// FindByID finds a game by id
func (r *GameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&game)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &game, nil
}

// FindAll finds all catalog games, newest first
func (r *GameRepository) FindAll(ctx context.Context) ([]*models.Game, error) {
	return r.find(ctx, bson.M{})
}

// FindActive finds the games eligible for the daily rotation
func (r *GameRepository) FindActive(ctx context.Context) ([]*models.Game, error) {
	return r.find(ctx, bson.M{"active": true})
}

func (r *GameRepository) find(ctx context.Context, filter bson.M) ([]*models.Game, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var games []*models.Game
	if err := cursor.All(ctx, &games); err != nil {
		return nil, err
	}
	if games == nil {
		games = []*models.Game{}
	}
	return games, nil
}

// Update updates a game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	game.UpdatedAt = time.Now()
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": game.ID}, game)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a game by id
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

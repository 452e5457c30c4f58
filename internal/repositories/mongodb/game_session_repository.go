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

// GameSessionRepository implements repositories.GameSessionRepository
type GameSessionRepository struct {
	collection *mongo.Collection
}

// NewGameSessionRepository creates a new GameSessionRepository and ensures
// the unique index on sessionId.
func NewGameSessionRepository(db *mongo.Database) repositories.GameSessionRepository {
	r := &GameSessionRepository{collection: db.Collection("game_sessions")}
	_, _ = r.collection.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys:    bson.D{{Key: "sessionId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return r
}

// Create creates a new game session
func (r *GameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	session.ID = primitive.NewObjectID().Hex()
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, session)
	return err
}

// FindBySessionID finds a session by its external sessionId token
func (r *GameSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	var session models.GameSession
	err := r.collection.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// FindAll finds all sessions, newest first
func (r *GameSessionRepository) FindAll(ctx context.Context) ([]*models.GameSession, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*models.GameSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if sessions == nil {
		sessions = []*models.GameSession{}
	}
	return sessions, nil
}

// SetActive toggles a session's active flag
func (r *GameSessionRepository) SetActive(ctx context.Context, sessionID string, active bool) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"sessionId": sessionID},
		bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Claim performs the single-play state transition as one conditional
// update. Only a document that is still active and unplayed matches the
// filter, so concurrent claimers on the same sessionId cannot both win.
func (r *GameSessionRepository) Claim(ctx context.Context, sessionID, result string) (repositories.ClaimStatus, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"sessionId": sessionID, "isActive": true, "playCount": 0},
		bson.M{"$set": bson.M{"playCount": 1, "result": result, "updatedAt": time.Now()}},
	)
	if err != nil {
		return repositories.ClaimNotFound, err
	}
	if res.ModifiedCount == 1 {
		return repositories.ClaimOK, nil
	}

	// No document matched: read back to tell the caller why.
	session, err := r.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return repositories.ClaimNotFound, nil
		}
		return repositories.ClaimNotFound, err
	}
	if session.PlayCount > 0 {
		return repositories.ClaimAlreadyPlayed, nil
	}
	return repositories.ClaimInactive, nil
}

package repositories

import (
	"context"
	"errors"

	"github.com/luckytaj/angpau-backend/internal/models"
)

// Store-level sentinel errors. Implementations map their driver errors
// (mongo.ErrNoDocuments, gorm.ErrRecordNotFound, duplicate-key failures)
// onto these so services never see driver types.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateDate = errors.New("rotation record already exists for date")
)

// ClaimStatus is the outcome of the conditional claim update.
type ClaimStatus int

const (
	ClaimOK ClaimStatus = iota
	ClaimAlreadyPlayed
	ClaimNotFound
	ClaimInactive
)

// GameSessionRepository defines the interface for game session data operations.
//
// Claim is the single-play linchpin: it must transition
// playCount 0 -> 1 and set the result in one conditional write keyed on
// "isActive && playCount == 0", so that of any number of concurrent
// callers racing on one sessionId exactly one observes ClaimOK.
type GameSessionRepository interface {
	Create(ctx context.Context, session *models.GameSession) error
	FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error)
	FindAll(ctx context.Context) ([]*models.GameSession, error)
	SetActive(ctx context.Context, sessionID string, active bool) error
	Claim(ctx context.Context, sessionID, result string) (ClaimStatus, error)
}

// DailyRotationRepository defines the interface for daily rotation records.
// Create must fail with ErrDuplicateDate when a record for the same date
// already exists (unique constraint on date).
type DailyRotationRepository interface {
	Create(ctx context.Context, rotation *models.DailyRotation) error
	FindByDate(ctx context.Context, date string) (*models.DailyRotation, error)
	DeleteByDate(ctx context.Context, date string) error
}

// GameRepository defines the interface for the game catalog.
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	FindByID(ctx context.Context, id string) (*models.Game, error)
	FindAll(ctx context.Context) ([]*models.Game, error)
	FindActive(ctx context.Context) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id string) error
}

// WinnerRepository defines the interface for the curated winner feed.
type WinnerRepository interface {
	Create(ctx context.Context, winner *models.Winner) error
	FindByID(ctx context.Context, id string) (*models.Winner, error)
	FindAll(ctx context.Context) ([]*models.Winner, error)
	FindActive(ctx context.Context, limit int) ([]*models.Winner, error)
	Update(ctx context.Context, winner *models.Winner) error
	Delete(ctx context.Context, id string) error
}

// AngpauConfigRepository defines the interface for the default card table.
type AngpauConfigRepository interface {
	Get(ctx context.Context) (*models.AngpauConfig, error)
	Upsert(ctx context.Context, cards []models.CardConfig) error
}

// AdminUserRepository defines the interface for admin accounts.
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
}

package services

import (
	"context"

	"github.com/luckytaj/angpau-backend/internal/models"
)

// Notifier pushes realtime events to clients watching a session room.
// Delivery is best-effort: a failed or absent listener never affects the
// persisted outcome.
type Notifier interface {
	BroadcastPlayed(sessionID, result string)
}

// GameSessionService defines the interface for the angpau game lifecycle
type GameSessionService interface {
	// GetConfig retrieves the default card table, falling back to the
	// built-in defaults when none has been saved
	GetConfig(ctx context.Context) ([]models.CardConfig, error)

	// SaveConfig validates and replaces the default card table
	SaveConfig(ctx context.Context, cards []models.CardConfig) error

	// GenerateLink creates a single-use session with a snapshot of the
	// given card table (or the stored default when cards is empty)
	GenerateLink(ctx context.Context, cards []models.CardConfig, createdBy string) (*models.GameSession, error)

	// GetSession retrieves a session for display. It returns
	// models.ErrSessionNotFound, models.ErrSessionInactive or a
	// *models.SessionAlreadyPlayedError for consumed sessions
	GetSession(ctx context.Context, sessionID string) (*models.GameSession, error)

	// Play draws a prize and consumes the session. Exactly one caller
	// per session ever receives a fresh PlayResult; replays get a
	// *models.SessionAlreadyPlayedError carrying the persisted result
	Play(ctx context.Context, sessionID string) (*models.PlayResult, error)

	// ListSessions retrieves all sessions for the admin dashboard
	ListSessions(ctx context.Context) ([]*models.GameSession, error)

	// SetActive enables or disables a session
	SetActive(ctx context.Context, sessionID string, active bool) error
}

// DailyRotationService defines the interface for the daily game rotation
type DailyRotationService interface {
	// GetOrSelect returns the rotation for date, selecting and caching
	// one on first access
	GetOrSelect(ctx context.Context, date string) (*models.DailyRotation, error)

	// ForceRefresh discards any cached rotation for date and selects a
	// new one
	ForceRefresh(ctx context.Context, date string) (*models.DailyRotation, error)

	// Today returns the current date key in the configured timezone
	Today() string
}

// GameService defines the interface for the game catalog
type GameService interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id string) (*models.Game, error)
	GetAll(ctx context.Context) ([]*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id string) error
}

// WinnerService defines the interface for the curated winner feed
type WinnerService interface {
	Create(ctx context.Context, winner *models.Winner) error
	GetByID(ctx context.Context, id string) (*models.Winner, error)
	GetAll(ctx context.Context) ([]*models.Winner, error)
	GetActiveFeed(ctx context.Context, limit int) ([]*models.Winner, error)
	Update(ctx context.Context, winner *models.Winner) error
	Delete(ctx context.Context, id string) error
}

// AuthService defines the interface for admin authentication
type AuthService interface {
	// Login verifies credentials and returns a signed JWT
	Login(ctx context.Context, req *models.LoginRequest) (string, error)

	// EnsureDefaultAdmin creates the bootstrap admin account when no
	// account with the configured email exists yet
	EnsureDefaultAdmin(ctx context.Context) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/prize"
	"github.com/luckytaj/angpau-backend/internal/repositories"
	"github.com/luckytaj/angpau-backend/internal/utils"
)

// Compile-time check to ensure GameSessionServiceImpl implements GameSessionService
var _ GameSessionService = (*GameSessionServiceImpl)(nil)

// GameSessionServiceImpl handles the angpau play-once business logic
type GameSessionServiceImpl struct {
	sessionRepo repositories.GameSessionRepository
	configRepo  repositories.AngpauConfigRepository
	notifier    Notifier
	rng         prize.Rand
}

// NewGameSessionService creates a new GameSessionServiceImpl. notifier may
// be nil when no realtime hub is attached.
func NewGameSessionService(
	sessionRepo repositories.GameSessionRepository,
	configRepo repositories.AngpauConfigRepository,
	notifier Notifier,
	rng prize.Rand,
) *GameSessionServiceImpl {
	return &GameSessionServiceImpl{
		sessionRepo: sessionRepo,
		configRepo:  configRepo,
		notifier:    notifier,
		rng:         rng,
	}
}

// GetConfig retrieves the default card table
func (s *GameSessionServiceImpl) GetConfig(ctx context.Context) ([]models.CardConfig, error) {
	config, err := s.configRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.DefaultCardConfigs(), nil
		}
		slog.Error("Failed to fetch card configuration", "error", err)
		return nil, fmt.Errorf("failed to fetch card configuration: %w", err)
	}
	return config.CardConfigs, nil
}

// SaveConfig validates and replaces the default card table
func (s *GameSessionServiceImpl) SaveConfig(ctx context.Context, cards []models.CardConfig) error {
	if _, err := prize.NewTable(cards); err != nil {
		return err
	}
	if err := s.configRepo.Upsert(ctx, cards); err != nil {
		slog.Error("Failed to save card configuration", "error", err)
		return fmt.Errorf("failed to save card configuration: %w", err)
	}
	slog.Info("Card configuration updated", "cards", len(cards))
	return nil
}

// GenerateLink creates a single-use session. The card table is
// snapshotted on the session so later config edits never change the odds
// of an already-issued link.
func (s *GameSessionServiceImpl) GenerateLink(ctx context.Context, cards []models.CardConfig, createdBy string) (*models.GameSession, error) {
	if len(cards) == 0 {
		stored, err := s.GetConfig(ctx)
		if err != nil {
			return nil, err
		}
		cards = stored
	}

	table, err := prize.NewTable(cards)
	if err != nil {
		return nil, err
	}

	sessionID, err := utils.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	session := &models.GameSession{
		SessionID:   sessionID,
		CardConfigs: table.Cards(),
		CreatedBy:   createdBy,
		IsActive:    true,
		PlayCount:   0,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		slog.Error("Failed to create game session", "error", err)
		return nil, fmt.Errorf("failed to create game session: %w", err)
	}

	slog.Info("Game session created", "sessionId", session.SessionID, "createdBy", createdBy)
	return session, nil
}

// GetSession retrieves a session for display
func (s *GameSessionServiceImpl) GetSession(ctx context.Context, sessionID string) (*models.GameSession, error) {
	session, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		slog.Error("Failed to fetch game session", "error", err, "sessionId", sessionID)
		return nil, fmt.Errorf("failed to fetch game session: %w", err)
	}
	if !session.IsActive {
		return nil, models.ErrSessionInactive
	}
	if session.PlayCount > 0 {
		return nil, &models.SessionAlreadyPlayedError{SessionID: sessionID, Result: session.Result}
	}
	return session, nil
}

// Play draws a prize and consumes the session. The draw happens before
// the claim, but only the caller whose conditional claim succeeds keeps
// its drawn result; everyone else is handed the persisted one.
func (s *GameSessionServiceImpl) Play(ctx context.Context, sessionID string) (*models.PlayResult, error) {
	session, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.ErrSessionNotFound
		}
		slog.Error("Failed to fetch game session", "error", err, "sessionId", sessionID)
		return nil, fmt.Errorf("failed to fetch game session: %w", err)
	}

	table, err := prize.NewTable(session.CardConfigs)
	if err != nil {
		slog.Error("Stored session has unusable card table", "error", err, "sessionId", sessionID)
		return nil, err
	}
	result := prize.Draw(table, s.rng)

	status, err := s.sessionRepo.Claim(ctx, sessionID, result)
	if err != nil {
		slog.Error("Failed to claim game session", "error", err, "sessionId", sessionID)
		return nil, fmt.Errorf("failed to claim game session: %w", err)
	}

	switch status {
	case repositories.ClaimOK:
		slog.Info("Game session played", "sessionId", sessionID, "result", result)
		if s.notifier != nil {
			s.notifier.BroadcastPlayed(sessionID, result)
		}
		return &models.PlayResult{SessionID: sessionID, Result: result, PlayedAt: time.Now()}, nil
	case repositories.ClaimAlreadyPlayed:
		// A concurrent caller (or an earlier play) won the claim. The
		// persisted result is authoritative, not the one drawn above.
		persisted, err := s.sessionRepo.FindBySessionID(ctx, sessionID)
		if err != nil {
			slog.Error("Failed to re-read played session", "error", err, "sessionId", sessionID)
			return nil, fmt.Errorf("failed to re-read played session: %w", err)
		}
		return nil, &models.SessionAlreadyPlayedError{SessionID: sessionID, Result: persisted.Result}
	case repositories.ClaimNotFound:
		return nil, models.ErrSessionNotFound
	default:
		return nil, models.ErrSessionInactive
	}
}

// ListSessions retrieves all sessions for the admin dashboard
func (s *GameSessionServiceImpl) ListSessions(ctx context.Context) ([]*models.GameSession, error) {
	sessions, err := s.sessionRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list game sessions", "error", err)
		return nil, fmt.Errorf("failed to list game sessions: %w", err)
	}
	return sessions, nil
}

// SetActive enables or disables a session
func (s *GameSessionServiceImpl) SetActive(ctx context.Context, sessionID string, active bool) error {
	err := s.sessionRepo.SetActive(ctx, sessionID, active)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.ErrSessionNotFound
		}
		slog.Error("Failed to update session state", "error", err, "sessionId", sessionID)
		return fmt.Errorf("failed to update session state: %w", err)
	}
	slog.Info("Game session state changed", "sessionId", sessionID, "active", active)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// Compile-time check to ensure GameServiceImpl implements GameService
var _ GameService = (*GameServiceImpl)(nil)

// GameServiceImpl handles the game catalog behind the daily rotation
type GameServiceImpl struct {
	gameRepo repositories.GameRepository
}

// NewGameService creates a new GameServiceImpl
func NewGameService(gameRepo repositories.GameRepository) *GameServiceImpl {
	return &GameServiceImpl{gameRepo: gameRepo}
}

// Create adds a game to the catalog
func (s *GameServiceImpl) Create(ctx context.Context, game *models.Game) error {
	if err := s.gameRepo.Create(ctx, game); err != nil {
		slog.Error("Failed to create game", "error", err, "title", game.Title)
		return fmt.Errorf("failed to create game: %w", err)
	}
	slog.Info("Game created", "id", game.ID, "title", game.Title)
	return nil
}

// GetByID retrieves a game by id
func (s *GameServiceImpl) GetByID(ctx context.Context, id string) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		slog.Error("Failed to fetch game", "error", err, "id", id)
		return nil, fmt.Errorf("failed to fetch game: %w", err)
	}
	return game, nil
}

// GetAll retrieves the full catalog
func (s *GameServiceImpl) GetAll(ctx context.Context) ([]*models.Game, error) {
	games, err := s.gameRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list games", "error", err)
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	return games, nil
}

// Update updates a catalog game
func (s *GameServiceImpl) Update(ctx context.Context, game *models.Game) error {
	if err := s.gameRepo.Update(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		slog.Error("Failed to update game", "error", err, "id", game.ID)
		return fmt.Errorf("failed to update game: %w", err)
	}
	return nil
}

// Delete removes a game from the catalog
func (s *GameServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		slog.Error("Failed to delete game", "error", err, "id", id)
		return fmt.Errorf("failed to delete game: %w", err)
	}
	slog.Info("Game deleted", "id", id)
	return nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/exp/slog"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// Compile-time check to ensure WinnerServiceImpl implements WinnerService
var _ WinnerService = (*WinnerServiceImpl)(nil)

// defaultFeedLimit caps the public winner feed when no limit is given
const defaultFeedLimit = 10

// WinnerServiceImpl handles the curated winner feed shown on the site
type WinnerServiceImpl struct {
	winnerRepo repositories.WinnerRepository
}

// NewWinnerService creates a new WinnerServiceImpl
func NewWinnerService(winnerRepo repositories.WinnerRepository) *WinnerServiceImpl {
	return &WinnerServiceImpl{winnerRepo: winnerRepo}
}

// Create adds a winner feed entry
func (s *WinnerServiceImpl) Create(ctx context.Context, winner *models.Winner) error {
	if err := s.winnerRepo.Create(ctx, winner); err != nil {
		slog.Error("Failed to create winner entry", "error", err, "username", winner.Username)
		return fmt.Errorf("failed to create winner entry: %w", err)
	}
	return nil
}

// GetByID retrieves a winner entry by id
func (s *WinnerServiceImpl) GetByID(ctx context.Context, id string) (*models.Winner, error) {
	winner, err := s.winnerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		slog.Error("Failed to fetch winner entry", "error", err, "id", id)
		return nil, fmt.Errorf("failed to fetch winner entry: %w", err)
	}
	return winner, nil
}

// GetAll retrieves every winner entry for the admin dashboard
func (s *WinnerServiceImpl) GetAll(ctx context.Context) ([]*models.Winner, error) {
	winners, err := s.winnerRepo.FindAll(ctx)
	if err != nil {
		slog.Error("Failed to list winner entries", "error", err)
		return nil, fmt.Errorf("failed to list winner entries: %w", err)
	}
	return winners, nil
}

// GetActiveFeed retrieves the latest active entries for the public feed
func (s *WinnerServiceImpl) GetActiveFeed(ctx context.Context, limit int) ([]*models.Winner, error) {
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	winners, err := s.winnerRepo.FindActive(ctx, limit)
	if err != nil {
		slog.Error("Failed to fetch winner feed", "error", err)
		return nil, fmt.Errorf("failed to fetch winner feed: %w", err)
	}
	return winners, nil
}

// Update updates a winner entry
func (s *WinnerServiceImpl) Update(ctx context.Context, winner *models.Winner) error {
	if err := s.winnerRepo.Update(ctx, winner); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		slog.Error("Failed to update winner entry", "error", err, "id", winner.ID)
		return fmt.Errorf("failed to update winner entry: %w", err)
	}
	return nil
}

// Delete removes a winner entry
func (s *WinnerServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.winnerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return err
		}
		slog.Error("Failed to delete winner entry", "error", err, "id", id)
		return fmt.Errorf("failed to delete winner entry: %w", err)
	}
	return nil
}

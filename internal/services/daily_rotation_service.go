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
)

// Compile-time check to ensure DailyRotationServiceImpl implements DailyRotationService
var _ DailyRotationService = (*DailyRotationServiceImpl)(nil)

// DailyRotationServiceImpl caches one random game selection per calendar
// day. The unique date index on the rotation collection is the
// serialization point: concurrent first readers race on the insert and
// the losers re-read the winner's record.
type DailyRotationServiceImpl struct {
	rotationRepo repositories.DailyRotationRepository
	gameRepo     repositories.GameRepository
	gamesPerDay  int
	location     *time.Location
	rng          prize.Rand
}

// NewDailyRotationService creates a new DailyRotationServiceImpl
func NewDailyRotationService(
	rotationRepo repositories.DailyRotationRepository,
	gameRepo repositories.GameRepository,
	gamesPerDay int,
	location *time.Location,
	rng prize.Rand,
) *DailyRotationServiceImpl {
	if gamesPerDay <= 0 {
		gamesPerDay = 3
	}
	if location == nil {
		location = time.UTC
	}
	return &DailyRotationServiceImpl{
		rotationRepo: rotationRepo,
		gameRepo:     gameRepo,
		gamesPerDay:  gamesPerDay,
		location:     location,
		rng:          rng,
	}
}

// Today returns the current date key in the configured timezone
func (s *DailyRotationServiceImpl) Today() string {
	return time.Now().In(s.location).Format("2006-01-02")
}

// GetOrSelect returns the rotation for date, selecting and caching one on
// first access. Repeated calls for the same date return the same games.
func (s *DailyRotationServiceImpl) GetOrSelect(ctx context.Context, date string) (*models.DailyRotation, error) {
	rotation, err := s.rotationRepo.FindByDate(ctx, date)
	if err == nil {
		return rotation, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to fetch daily rotation", "error", err, "date", date)
		return nil, fmt.Errorf("failed to fetch daily rotation: %w", err)
	}
	return s.selectAndStore(ctx, date)
}

// ForceRefresh discards any cached rotation for date and selects a new one
func (s *DailyRotationServiceImpl) ForceRefresh(ctx context.Context, date string) (*models.DailyRotation, error) {
	if err := s.rotationRepo.DeleteByDate(ctx, date); err != nil && !errors.Is(err, repositories.ErrNotFound) {
		slog.Error("Failed to discard daily rotation", "error", err, "date", date)
		return nil, fmt.Errorf("failed to discard daily rotation: %w", err)
	}
	rotation, err := s.selectAndStore(ctx, date)
	if err != nil {
		return nil, err
	}
	slog.Info("Daily rotation refreshed", "date", date, "games", len(rotation.SelectedGames))
	return rotation, nil
}

func (s *DailyRotationServiceImpl) selectAndStore(ctx context.Context, date string) (*models.DailyRotation, error) {
	games, err := s.gameRepo.FindActive(ctx)
	if err != nil {
		slog.Error("Failed to fetch active games", "error", err, "date", date)
		return nil, fmt.Errorf("failed to fetch active games: %w", err)
	}

	now := time.Now()
	if len(games) == 0 {
		// Nothing to pick from. Serve an empty rotation without caching
		// it so games added later the same day still get selected.
		slog.Warn("No active games available for rotation", "date", date)
		return &models.DailyRotation{
			Date:          date,
			SelectedGames: []models.RotationGame{},
			RefreshedAt:   now,
		}, nil
	}

	rotation := &models.DailyRotation{
		Date:          date,
		SelectedGames: s.pick(games),
		RefreshedAt:   now,
	}
	if err := s.rotationRepo.Create(ctx, rotation); err != nil {
		if errors.Is(err, repositories.ErrDuplicateDate) {
			// Lost the insert race; the stored record wins.
			return s.rotationRepo.FindByDate(ctx, date)
		}
		slog.Error("Failed to store daily rotation", "error", err, "date", date)
		return nil, fmt.Errorf("failed to store daily rotation: %w", err)
	}
	return rotation, nil
}

// pick selects up to gamesPerDay games uniformly without replacement
func (s *DailyRotationServiceImpl) pick(games []*models.Game) []models.RotationGame {
	pool := make([]*models.Game, len(games))
	copy(pool, games)

	count := s.gamesPerDay
	if count > len(pool) {
		count = len(pool)
	}

	selected := make([]models.RotationGame, 0, count)
	for i := 0; i < count; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		selected = append(selected, models.RotationGame{
			GameID:    pool[i].ID,
			Title:     pool[i].Title,
			Image:     pool[i].Image,
			RecentWin: pool[i].RecentWin,
		})
	}
	return selected
}

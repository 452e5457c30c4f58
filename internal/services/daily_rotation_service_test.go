package services

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/prize"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// fakeRotationRepo is an in-memory DailyRotationRepository enforcing the
// unique date constraint.
type fakeRotationRepo struct {
	mu      sync.Mutex
	byDate  map[string]*models.DailyRotation
	creates int
	// missNextFind makes the next FindByDate miss even when a record
	// exists, simulating another instance inserting mid-flight.
	missNextFind bool
}

func newFakeRotationRepo() *fakeRotationRepo {
	return &fakeRotationRepo{byDate: make(map[string]*models.DailyRotation)}
}

func (f *fakeRotationRepo) Create(ctx context.Context, rotation *models.DailyRotation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.byDate[rotation.Date]; ok {
		return repositories.ErrDuplicateDate
	}
	clone := *rotation
	f.byDate[rotation.Date] = &clone
	return nil
}

func (f *fakeRotationRepo) FindByDate(ctx context.Context, date string) (*models.DailyRotation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.missNextFind {
		f.missNextFind = false
		return nil, repositories.ErrNotFound
	}
	r, ok := f.byDate[date]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRotationRepo) DeleteByDate(ctx context.Context, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byDate[date]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.byDate, date)
	return nil
}

// fakeGameRepo serves a fixed catalog.
type fakeGameRepo struct {
	mu    sync.Mutex
	games []*models.Game
}

func (f *fakeGameRepo) Create(ctx context.Context, game *models.Game) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.games = append(f.games, game)
	return nil
}

func (f *fakeGameRepo) FindByID(ctx context.Context, id string) (*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, g := range f.games {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeGameRepo) FindAll(ctx context.Context) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*models.Game(nil), f.games...), nil
}

func (f *fakeGameRepo) FindActive(ctx context.Context) ([]*models.Game, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var active []*models.Game
	for _, g := range f.games {
		if g.Active {
			active = append(active, g)
		}
	}
	return active, nil
}

func (f *fakeGameRepo) Update(ctx context.Context, game *models.Game) error { return nil }
func (f *fakeGameRepo) Delete(ctx context.Context, id string) error         { return nil }

func catalog(n int, active bool) []*models.Game {
	games := make([]*models.Game, 0, n)
	for i := 0; i < n; i++ {
		games = append(games, &models.Game{
			ID:     string(rune('a' + i)),
			Title:  "Game " + string(rune('A'+i)),
			Image:  "img",
			Active: active,
		})
	}
	return games
}

func newRotationService(rotRepo *fakeRotationRepo, gameRepo *fakeGameRepo, perDay int) *DailyRotationServiceImpl {
	return NewDailyRotationService(rotRepo, gameRepo, perDay, time.UTC, prize.NewLockedRand(7))
}

func TestGetOrSelectIsStableForADate(t *testing.T) {
	rotRepo := newFakeRotationRepo()
	gameRepo := &fakeGameRepo{games: catalog(6, true)}
	svc := newRotationService(rotRepo, gameRepo, 3)

	first, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	require.Len(t, first.SelectedGames, 3)

	for i := 0; i < 5; i++ {
		again, err := svc.GetOrSelect(context.Background(), "2026-08-28")
		require.NoError(t, err)
		assert.Equal(t, first.SelectedGames, again.SelectedGames)
	}
	assert.Equal(t, 1, rotRepo.creates)
}

func TestSelectionDrawsDistinctActiveGames(t *testing.T) {
	rotRepo := newFakeRotationRepo()
	gameRepo := &fakeGameRepo{games: append(catalog(5, true), catalog(3, false)...)}
	svc := newRotationService(rotRepo, gameRepo, 3)

	rotation, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	require.Len(t, rotation.SelectedGames, 3)

	seen := make(map[string]bool)
	for _, g := range rotation.SelectedGames {
		assert.False(t, seen[g.GameID], "game %s selected twice", g.GameID)
		seen[g.GameID] = true
	}
}

func TestSelectionCapsAtCatalogSize(t *testing.T) {
	svc := newRotationService(newFakeRotationRepo(), &fakeGameRepo{games: catalog(2, true)}, 3)

	rotation, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, rotation.SelectedGames, 2)
}

func TestEmptyCatalogIsNotCached(t *testing.T) {
	rotRepo := newFakeRotationRepo()
	gameRepo := &fakeGameRepo{}
	svc := newRotationService(rotRepo, gameRepo, 3)

	rotation, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Empty(t, rotation.SelectedGames)
	assert.Equal(t, 0, rotRepo.creates)

	// Games added later the same day still get picked up.
	require.NoError(t, gameRepo.Create(context.Background(), &models.Game{ID: "g1", Title: "Late", Active: true}))
	rotation, err = svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, rotation.SelectedGames, 1)
}

func TestLostInsertRaceReturnsStoredRotation(t *testing.T) {
	rotRepo := newFakeRotationRepo()
	stored := &models.DailyRotation{
		Date:          "2026-08-28",
		SelectedGames: []models.RotationGame{{GameID: "winner", Title: "Winner"}},
	}
	svc := newRotationService(rotRepo, &fakeGameRepo{games: catalog(4, true)}, 3)

	// Another instance stores its selection between our FindByDate miss
	// and our insert; the duplicate-key failure resolves to a re-read.
	require.NoError(t, rotRepo.Create(context.Background(), stored))
	rotRepo.missNextFind = true

	rotation, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, stored.SelectedGames, rotation.SelectedGames)
}

func TestForceRefreshReplacesRotation(t *testing.T) {
	rotRepo := newFakeRotationRepo()
	gameRepo := &fakeGameRepo{games: catalog(10, true)}
	svc := newRotationService(rotRepo, gameRepo, 3)

	first, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)

	// Refresh until the draw differs; with 10 games the odds of five
	// identical selections in a row are negligible.
	changed := false
	for i := 0; i < 5 && !changed; i++ {
		refreshed, err := svc.ForceRefresh(context.Background(), "2026-08-28")
		require.NoError(t, err)
		require.Len(t, refreshed.SelectedGames, 3)
		if !assert.ObjectsAreEqual(first.SelectedGames, refreshed.SelectedGames) {
			changed = true
		}
	}
	assert.True(t, changed)

	stored, err := rotRepo.FindByDate(context.Background(), "2026-08-28")
	require.NoError(t, err)
	latest, err := svc.GetOrSelect(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, stored.SelectedGames, latest.SelectedGames)
}

func TestForceRefreshOnMissingDate(t *testing.T) {
	svc := newRotationService(newFakeRotationRepo(), &fakeGameRepo{games: catalog(4, true)}, 3)

	rotation, err := svc.ForceRefresh(context.Background(), "2026-08-28")
	require.NoError(t, err)
	assert.Len(t, rotation.SelectedGames, 3)
}

func TestTodayUsesDateKeyFormat(t *testing.T) {
	svc := newRotationService(newFakeRotationRepo(), &fakeGameRepo{}, 3)
	assert.Regexp(t, regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`), svc.Today())
}

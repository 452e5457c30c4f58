package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/prize"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// fakeSessionRepo is an in-memory GameSessionRepository whose Claim
// mirrors the stores' conditional update under a mutex.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.GameSession
	claimErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*models.GameSession)}
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *models.GameSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *s
	f.sessions[s.SessionID] = &clone
	return nil
}

func (f *fakeSessionRepo) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (f *fakeSessionRepo) FindAll(ctx context.Context) ([]*models.GameSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.GameSession, 0, len(f.sessions))
	for _, s := range f.sessions {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (f *fakeSessionRepo) SetActive(ctx context.Context, sessionID string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ErrNotFound
	}
	s.IsActive = active
	return nil
}

func (f *fakeSessionRepo) Claim(ctx context.Context, sessionID, result string) (repositories.ClaimStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.claimErr != nil {
		return repositories.ClaimNotFound, f.claimErr
	}
	s, ok := f.sessions[sessionID]
	if !ok {
		return repositories.ClaimNotFound, nil
	}
	if s.PlayCount > 0 {
		return repositories.ClaimAlreadyPlayed, nil
	}
	if !s.IsActive {
		return repositories.ClaimInactive, nil
	}
	s.PlayCount = 1
	s.Result = result
	return repositories.ClaimOK, nil
}

// fakeConfigRepo is an in-memory AngpauConfigRepository.
type fakeConfigRepo struct {
	mu    sync.Mutex
	cards []models.CardConfig
}

func (f *fakeConfigRepo) Get(ctx context.Context) (*models.AngpauConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cards == nil {
		return nil, repositories.ErrNotFound
	}
	return &models.AngpauConfig{CardConfigs: f.cards}, nil
}

func (f *fakeConfigRepo) Upsert(ctx context.Context, cards []models.CardConfig) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = cards
	return nil
}

// recordingNotifier counts broadcasts per session.
type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) BroadcastPlayed(sessionID, result string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, sessionID+"="+result)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.events)
}

func testCards() []models.CardConfig {
	return []models.CardConfig{
		{Amount: "₹8", Probability: 70},
		{Amount: "₹50", Probability: 20},
		{Amount: "₹100", Probability: 10},
	}
}

func newTestService(repo *fakeSessionRepo, cfg *fakeConfigRepo, notifier Notifier) *GameSessionServiceImpl {
	return NewGameSessionService(repo, cfg, notifier, prize.NewLockedRand(1))
}

func seedSession(t *testing.T, repo *fakeSessionRepo, sessionID string, active bool) {
	t.Helper()
	err := repo.Create(context.Background(), &models.GameSession{
		SessionID:   sessionID,
		CardConfigs: testCards(),
		IsActive:    active,
	})
	require.NoError(t, err)
}

func TestPlayConsumesSessionAndBroadcastsOnce(t *testing.T) {
	repo := newFakeSessionRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, &fakeConfigRepo{}, notifier)
	seedSession(t, repo, "s1", true)

	result, err := svc.Play(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "s1", result.SessionID)
	assert.Contains(t, []string{"₹8", "₹50", "₹100"}, result.Result)
	assert.Equal(t, 1, notifier.count())

	stored, err := repo.FindBySessionID(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, stored.PlayCount)
	assert.Equal(t, result.Result, stored.Result)
}

func TestPlayUnknownSession(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), &fakeConfigRepo{}, nil)

	_, err := svc.Play(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestPlayInactiveSession(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeConfigRepo{}, nil)
	seedSession(t, repo, "s1", false)

	_, err := svc.Play(context.Background(), "s1")
	assert.ErrorIs(t, err, models.ErrSessionInactive)
}

func TestReplayReturnsPersistedResult(t *testing.T) {
	repo := newFakeSessionRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, &fakeConfigRepo{}, notifier)
	seedSession(t, repo, "s1", true)

	first, err := svc.Play(context.Background(), "s1")
	require.NoError(t, err)

	_, err = svc.Play(context.Background(), "s1")
	played, ok := models.AsAlreadyPlayed(err)
	require.True(t, ok)
	assert.Equal(t, first.Result, played.Result)

	// The replay must not announce the session a second time.
	assert.Equal(t, 1, notifier.count())
}

func TestConcurrentPlaysWinExactlyOnce(t *testing.T) {
	repo := newFakeSessionRepo()
	notifier := &recordingNotifier{}
	svc := newTestService(repo, &fakeConfigRepo{}, notifier)
	seedSession(t, repo, "s1", true)

	const players = 16
	results := make(chan string, players)
	replays := make(chan string, players)

	var wg sync.WaitGroup
	for i := 0; i < players; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := svc.Play(context.Background(), "s1")
			if err == nil {
				results <- result.Result
				return
			}
			played, ok := models.AsAlreadyPlayed(err)
			if !ok {
				t.Errorf("unexpected play error: %v", err)
				return
			}
			replays <- played.Result
		}()
	}
	wg.Wait()
	close(results)
	close(replays)

	require.Len(t, results, 1)
	winner := <-results
	assert.Len(t, replays, players-1)
	for replay := range replays {
		assert.Equal(t, winner, replay)
	}
	assert.Equal(t, 1, notifier.count())
}

func TestPlayClaimStoreError(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.claimErr = errors.New("connection reset")
	svc := newTestService(repo, &fakeConfigRepo{}, nil)
	seedSession(t, repo, "s1", true)

	_, err := svc.Play(context.Background(), "s1")
	require.Error(t, err)
	_, ok := models.AsAlreadyPlayed(err)
	assert.False(t, ok)
}

func TestGetSessionStates(t *testing.T) {
	repo := newFakeSessionRepo()
	svc := newTestService(repo, &fakeConfigRepo{}, nil)
	seedSession(t, repo, "fresh", true)
	seedSession(t, repo, "disabled", false)

	session, err := svc.GetSession(context.Background(), "fresh")
	require.NoError(t, err)
	assert.True(t, session.Playable())

	_, err = svc.GetSession(context.Background(), "disabled")
	assert.ErrorIs(t, err, models.ErrSessionInactive)

	_, err = svc.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = svc.Play(context.Background(), "fresh")
	require.NoError(t, err)
	_, err = svc.GetSession(context.Background(), "fresh")
	_, ok := models.AsAlreadyPlayed(err)
	assert.True(t, ok)
}

func TestGenerateLinkSnapshotsCards(t *testing.T) {
	repo := newFakeSessionRepo()
	cfgRepo := &fakeConfigRepo{}
	svc := newTestService(repo, cfgRepo, nil)

	session, err := svc.GenerateLink(context.Background(), testCards(), "admin@luckytaj.com")
	require.NoError(t, err)
	assert.Len(t, session.SessionID, 32)
	assert.True(t, session.IsActive)
	assert.Equal(t, testCards(), session.CardConfigs)

	// Editing the default table later must not affect the issued session.
	require.NoError(t, cfgRepo.Upsert(context.Background(), []models.CardConfig{{Amount: "₹1", Probability: 1}}))
	stored, err := repo.FindBySessionID(context.Background(), session.SessionID)
	require.NoError(t, err)
	assert.Equal(t, testCards(), stored.CardConfigs)
}

func TestGenerateLinkFallsBackToStoredConfig(t *testing.T) {
	repo := newFakeSessionRepo()
	cfgRepo := &fakeConfigRepo{cards: testCards()}
	svc := newTestService(repo, cfgRepo, nil)

	session, err := svc.GenerateLink(context.Background(), nil, "admin@luckytaj.com")
	require.NoError(t, err)
	assert.Equal(t, testCards(), session.CardConfigs)
}

func TestGenerateLinkRejectsBadTable(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), &fakeConfigRepo{}, nil)

	_, err := svc.GenerateLink(context.Background(), []models.CardConfig{{Amount: "₹8", Probability: -1}}, "admin")
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)
}

func TestGetConfigFallsBackToDefaults(t *testing.T) {
	svc := newTestService(newFakeSessionRepo(), &fakeConfigRepo{}, nil)

	cards, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCardConfigs(), cards)
}

func TestSaveConfigValidates(t *testing.T) {
	cfgRepo := &fakeConfigRepo{}
	svc := newTestService(newFakeSessionRepo(), cfgRepo, nil)

	err := svc.SaveConfig(context.Background(), nil)
	assert.ErrorIs(t, err, models.ErrInvalidConfiguration)

	require.NoError(t, svc.SaveConfig(context.Background(), testCards()))
	cards, err := svc.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCards(), cards)
}

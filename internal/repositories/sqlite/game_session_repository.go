package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// GameSessionRepository implements repositories.GameSessionRepository on SQLite
type GameSessionRepository struct {
	db *gorm.DB
}

// NewGameSessionRepository creates a new GameSessionRepository
func NewGameSessionRepository(db *gorm.DB) repositories.GameSessionRepository {
	return &GameSessionRepository{db: db}
}

func sessionToRow(s *models.GameSession) (*gameSessionRow, error) {
	cards, err := json.Marshal(s.CardConfigs)
	if err != nil {
		return nil, err
	}
	return &gameSessionRow{
		SessionID:   s.SessionID,
		CardConfigs: string(cards),
		CreatedBy:   s.CreatedBy,
		IsActive:    s.IsActive,
		PlayCount:   s.PlayCount,
		Result:      s.Result,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func rowToSession(row *gameSessionRow) (*models.GameSession, error) {
	var cards []models.CardConfig
	if row.CardConfigs != "" {
		if err := json.Unmarshal([]byte(row.CardConfigs), &cards); err != nil {
			return nil, err
		}
	}
	return &models.GameSession{
		ID:          strconv.FormatUint(uint64(row.ID), 10),
		SessionID:   row.SessionID,
		CardConfigs: cards,
		CreatedBy:   row.CreatedBy,
		IsActive:    row.IsActive,
		PlayCount:   row.PlayCount,
		Result:      row.Result,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Create creates a new game session
func (r *GameSessionRepository) Create(ctx context.Context, session *models.GameSession) error {
	session.CreatedAt = time.Now()
	session.UpdatedAt = time.Now()
	row, err := sessionToRow(session)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	session.ID = strconv.FormatUint(uint64(row.ID), 10)
	return nil
}

// FindBySessionID finds a session by its external sessionId token
func (r *GameSessionRepository) FindBySessionID(ctx context.Context, sessionID string) (*models.GameSession, error) {
	var row gameSessionRow
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return rowToSession(&row)
}

// FindAll finds all sessions, newest first
func (r *GameSessionRepository) FindAll(ctx context.Context) ([]*models.GameSession, error) {
	var rows []gameSessionRow
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	sessions := make([]*models.GameSession, 0, len(rows))
	for i := range rows {
		session, err := rowToSession(&rows[i])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// SetActive toggles a session's active flag
func (r *GameSessionRepository) SetActive(ctx context.Context, sessionID string, active bool) error {
	res := r.db.WithContext(ctx).Model(&gameSessionRow{}).
		Where("session_id = ?", sessionID).
		Updates(map[string]interface{}{"is_active": active, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Claim performs the single-play transition as a guarded UPDATE checking
// the affected-row count, so two racers on one link cannot both win.
func (r *GameSessionRepository) Claim(ctx context.Context, sessionID, result string) (repositories.ClaimStatus, error) {
	res := r.db.WithContext(ctx).Model(&gameSessionRow{}).
		Where("session_id = ? AND is_active = ? AND play_count = 0", sessionID, true).
		Updates(map[string]interface{}{"play_count": 1, "result": result, "updated_at": time.Now()})
	if res.Error != nil {
		return repositories.ClaimNotFound, res.Error
	}
	if res.RowsAffected == 1 {
		return repositories.ClaimOK, nil
	}

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

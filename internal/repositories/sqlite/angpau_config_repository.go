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

// AngpauConfigRepository implements repositories.AngpauConfigRepository on
// SQLite. The table holds a single row: the current default card table.
type AngpauConfigRepository struct {
	db *gorm.DB
}

// NewAngpauConfigRepository creates a new AngpauConfigRepository
func NewAngpauConfigRepository(db *gorm.DB) repositories.AngpauConfigRepository {
	return &AngpauConfigRepository{db: db}
}

// Get returns the stored default card table
func (r *AngpauConfigRepository) Get(ctx context.Context) (*models.AngpauConfig, error) {
	var row angpauConfigRow
	err := r.db.WithContext(ctx).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	var cards []models.CardConfig
	if row.CardConfigs != "" {
		if err := json.Unmarshal([]byte(row.CardConfigs), &cards); err != nil {
			return nil, err
		}
	}
	return &models.AngpauConfig{
		ID:          strconv.FormatUint(uint64(row.ID), 10),
		CardConfigs: cards,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}

// Upsert replaces the default card table, creating it on first save
func (r *AngpauConfigRepository) Upsert(ctx context.Context, cards []models.CardConfig) error {
	encoded, err := json.Marshal(cards)
	if err != nil {
		return err
	}
	now := time.Now()

	var row angpauConfigRow
	err = r.db.WithContext(ctx).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&angpauConfigRow{
			CardConfigs: string(encoded),
			CreatedAt:   now,
			UpdatedAt:   now,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Model(&row).
		Updates(map[string]interface{}{"card_configs": string(encoded), "updated_at": now}).Error
}

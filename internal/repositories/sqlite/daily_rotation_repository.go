package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// DailyRotationRepository implements repositories.DailyRotationRepository on SQLite
type DailyRotationRepository struct {
	db *gorm.DB
}

// NewDailyRotationRepository creates a new DailyRotationRepository
func NewDailyRotationRepository(db *gorm.DB) repositories.DailyRotationRepository {
	return &DailyRotationRepository{db: db}
}

// Create inserts the rotation record for a date. The unique index on date
// turns a duplicate concurrent populate into ErrDuplicateDate.
func (r *DailyRotationRepository) Create(ctx context.Context, rotation *models.DailyRotation) error {
	rotation.CreatedAt = time.Now()
	rotation.UpdatedAt = time.Now()
	games, err := json.Marshal(rotation.SelectedGames)
	if err != nil {
		return err
	}
	row := &dailyRotationRow{
		Date:          rotation.Date,
		SelectedGames: string(games),
		RefreshedAt:   rotation.RefreshedAt,
		CreatedAt:     rotation.CreatedAt,
		UpdatedAt:     rotation.UpdatedAt,
	}
	err = r.db.WithContext(ctx).Create(row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return repositories.ErrDuplicateDate
		}
		return err
	}
	rotation.ID = strconv.FormatUint(uint64(row.ID), 10)
	return nil
}

// FindByDate finds the rotation record for a YYYY-MM-DD date key
func (r *DailyRotationRepository) FindByDate(ctx context.Context, date string) (*models.DailyRotation, error) {
	var row dailyRotationRow
	err := r.db.WithContext(ctx).Where("date = ?", date).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	var games []models.RotationGame
	if row.SelectedGames != "" {
		if err := json.Unmarshal([]byte(row.SelectedGames), &games); err != nil {
			return nil, err
		}
	}
	return &models.DailyRotation{
		ID:            strconv.FormatUint(uint64(row.ID), 10),
		Date:          row.Date,
		SelectedGames: games,
		RefreshedAt:   row.RefreshedAt,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}

// DeleteByDate removes the rotation record for a date, if any
func (r *DailyRotationRepository) DeleteByDate(ctx context.Context, date string) error {
	return r.db.WithContext(ctx).Where("date = ?", date).Delete(&dailyRotationRow{}).Error
}

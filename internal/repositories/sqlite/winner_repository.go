package sqlite

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/luckytaj/angpau-backend/internal/models"
	"github.com/luckytaj/angpau-backend/internal/repositories"
)

// WinnerRepository implements repositories.WinnerRepository on SQLite
type WinnerRepository struct {
	db *gorm.DB
}

// NewWinnerRepository creates a new WinnerRepository
func NewWinnerRepository(db *gorm.DB) repositories.WinnerRepository {
	return &WinnerRepository{db: db}
}

func winnerToRow(w *models.Winner) *winnerRow {
	return &winnerRow{
		Username:   w.Username,
		Game:       w.Game,
		BetAmount:  w.BetAmount,
		WinAmount:  w.WinAmount,
		Multiplier: w.Multiplier,
		Quote:      w.Quote,
		Avatar:     w.Avatar,
		Active:     w.Active,
		CreatedBy:  w.CreatedBy,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func rowToWinner(row *winnerRow) *models.Winner {
	return &models.Winner{
		ID:         strconv.FormatUint(uint64(row.ID), 10),
		Username:   row.Username,
		Game:       row.Game,
		BetAmount:  row.BetAmount,
		WinAmount:  row.WinAmount,
		Multiplier: row.Multiplier,
		Quote:      row.Quote,
		Avatar:     row.Avatar,
		Active:     row.Active,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

// Create creates a new winner feed entry
func (r *WinnerRepository) Create(ctx context.Context, winner *models.Winner) error {
	winner.CreatedAt = time.Now()
	winner.UpdatedAt = time.Now()
	row := winnerToRow(winner)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	winner.ID = strconv.FormatUint(uint64(row.ID), 10)
	return nil
}

// FindByID finds a winner by id
func (r *WinnerRepository) FindByID(ctx context.Context, id string) (*models.Winner, error) {
	rowID, err := parseRowID(id)
	if err != nil {
		return nil, err
	}
	var row winnerRow
	if err := r.db.WithContext(ctx).First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return rowToWinner(&row), nil
}

// FindAll finds all winner entries, newest first
func (r *WinnerRepository) FindAll(ctx context.Context) ([]*models.Winner, error) {
	return r.find(ctx, nil, 0)
}

// FindActive finds the latest active entries for the public feed
func (r *WinnerRepository) FindActive(ctx context.Context, limit int) ([]*models.Winner, error) {
	active := true
	return r.find(ctx, &active, limit)
}

func (r *WinnerRepository) find(ctx context.Context, active *bool, limit int) ([]*models.Winner, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	var rows []winnerRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	winners := make([]*models.Winner, 0, len(rows))
	for i := range rows {
		winners = append(winners, rowToWinner(&rows[i]))
	}
	return winners, nil
}

// Update updates a winner entry
func (r *WinnerRepository) Update(ctx context.Context, winner *models.Winner) error {
	rowID, err := parseRowID(winner.ID)
	if err != nil {
		return err
	}
	winner.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&winnerRow{}).Where("id = ?", rowID).
		Updates(map[string]interface{}{
			"username":   winner.Username,
			"game":       winner.Game,
			"bet_amount": winner.BetAmount,
			"win_amount": winner.WinAmount,
			"multiplier": winner.Multiplier,
			"quote":      winner.Quote,
			"avatar":     winner.Avatar,
			"active":     winner.Active,
			"updated_at": winner.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a winner entry by id
func (r *WinnerRepository) Delete(ctx context.Context, id string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&winnerRow{}, rowID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

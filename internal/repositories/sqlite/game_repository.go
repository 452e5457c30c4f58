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

// GameRepository implements repositories.GameRepository on SQLite
type GameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new GameRepository
func NewGameRepository(db *gorm.DB) repositories.GameRepository {
	return &GameRepository{db: db}
}

func gameToRow(g *models.Game) (*gameRow, error) {
	row := &gameRow{
		Title:     g.Title,
		Image:     g.Image,
		Active:    g.Active,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
	if g.RecentWin != nil {
		win, err := json.Marshal(g.RecentWin)
		if err != nil {
			return nil, err
		}
		row.RecentWin = string(win)
	}
	return row, nil
}

func rowToGame(row *gameRow) (*models.Game, error) {
	game := &models.Game{
		ID:        strconv.FormatUint(uint64(row.ID), 10),
		Title:     row.Title,
		Image:     row.Image,
		Active:    row.Active,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.RecentWin != "" {
		var win models.RecentWin
		if err := json.Unmarshal([]byte(row.RecentWin), &win); err != nil {
			return nil, err
		}
		game.RecentWin = &win
	}
	return game, nil
}

func parseRowID(id string) (uint, error) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, repositories.ErrNotFound
	}
	return uint(n), nil
}

// Create creates a new catalog game
func (r *GameRepository) Create(ctx context.Context, game *models.Game) error {
	game.CreatedAt = time.Now()
	game.UpdatedAt = time.Now()
	row, err := gameToRow(game)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return err
	}
	game.ID = strconv.FormatUint(uint64(row.ID), 10)
	return nil
}

// FindByID finds a game by id
func (r *GameRepository) FindByID(ctx context.Context, id string) (*models.Game, error) {
	rowID, err := parseRowID(id)
	if err != nil {
		return nil, err
	}
	var row gameRow
	if err := r.db.WithContext(ctx).First(&row, rowID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		return nil, err
	}
	return rowToGame(&row)
}

// FindAll finds all catalog games, newest first
func (r *GameRepository) FindAll(ctx context.Context) ([]*models.Game, error) {
	return r.find(ctx, nil)
}

// FindActive finds the games eligible for the daily rotation
func (r *GameRepository) FindActive(ctx context.Context) ([]*models.Game, error) {
	active := true
	return r.find(ctx, &active)
}

func (r *GameRepository) find(ctx context.Context, active *bool) ([]*models.Game, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if active != nil {
		query = query.Where("active = ?", *active)
	}
	var rows []gameRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	games := make([]*models.Game, 0, len(rows))
	for i := range rows {
		game, err := rowToGame(&rows[i])
		if err != nil {
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// Update updates a game
func (r *GameRepository) Update(ctx context.Context, game *models.Game) error {
	rowID, err := parseRowID(game.ID)
	if err != nil {
		return err
	}
	game.UpdatedAt = time.Now()
	row, err := gameToRow(game)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&gameRow{}).Where("id = ?", rowID).
		Updates(map[string]interface{}{
			"title":      row.Title,
			"image":      row.Image,
			"active":     row.Active,
			"recent_win": row.RecentWin,
			"updated_at": row.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// Delete deletes a game by id
func (r *GameRepository) Delete(ctx context.Context, id string) error {
	rowID, err := parseRowID(id)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Delete(&gameRow{}, rowID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

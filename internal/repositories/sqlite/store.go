// Package sqlite is the file-backed alternative to the MongoDB
// repositories, selected via Storage.Driver at startup. Rows keep nested
// structures (card tables, selected games) JSON-encoded, matching the
// layout the admin tooling expects.
package sqlite

import (
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open opens (creating if needed) the SQLite database and migrates the
// schema.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&gameSessionRow{},
		&dailyRotationRow{},
		&gameRow{},
		&winnerRow{},
		&angpauConfigRow{},
		&adminUserRow{},
	); err != nil {
		return nil, err
	}
	return db, nil
}

type gameSessionRow struct {
	ID          uint   `gorm:"primaryKey"`
	SessionID   string `gorm:"uniqueIndex;size:64"`
	CardConfigs string // JSON-encoded []models.CardConfig
	CreatedBy   string
	IsActive    bool
	PlayCount   int
	Result      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (gameSessionRow) TableName() string { return "game_sessions" }

type dailyRotationRow struct {
	ID            uint   `gorm:"primaryKey"`
	Date          string `gorm:"uniqueIndex;size:10"`
	SelectedGames string // JSON-encoded []models.RotationGame
	RefreshedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (dailyRotationRow) TableName() string { return "daily_rotation" }

type gameRow struct {
	ID        uint `gorm:"primaryKey"`
	Title     string
	Image     string
	Active    bool
	RecentWin string // JSON-encoded *models.RecentWin, empty when unset
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gameRow) TableName() string { return "games" }

type winnerRow struct {
	ID         uint `gorm:"primaryKey"`
	Username   string
	Game       string
	BetAmount  float64
	WinAmount  float64
	Multiplier string
	Quote      string
	Avatar     string
	Active     bool
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (winnerRow) TableName() string { return "winners" }

type angpauConfigRow struct {
	ID          uint   `gorm:"primaryKey"`
	CardConfigs string // JSON-encoded []models.CardConfig
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (angpauConfigRow) TableName() string { return "angpau_configs" }

type adminUserRow struct {
	ID        uint   `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex"`
	Password  string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (adminUserRow) TableName() string { return "admin_users" }

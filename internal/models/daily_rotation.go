package models

import (
	"time"
)

// RecentWin is denormalized display data shown on a rotation entry.
type RecentWin struct {
	Amount  string `bson:"amount,omitempty" json:"amount,omitempty"`
	Player  string `bson:"player,omitempty" json:"player,omitempty"`
	Comment string `bson:"comment,omitempty" json:"comment,omitempty"`
}

// RotationGame is one catalog entry selected into a day's rotation.
type RotationGame struct {
	GameID    string     `bson:"gameId" json:"gameId"`
	Title     string     `bson:"title" json:"title"`
	Image     string     `bson:"image" json:"image"`
	RecentWin *RecentWin `bson:"recentWin,omitempty" json:"recentWin,omitempty"`
}

// DailyRotation is the cached random game selection for one calendar day.
// Date is a YYYY-MM-DD key in the site timezone and is unique per record;
// past dates are never rewritten.
type DailyRotation struct {
	ID            string         `bson:"_id,omitempty" json:"id,omitempty"`
	Date          string         `bson:"date" json:"date"`
	SelectedGames []RotationGame `bson:"selectedGames" json:"selectedGames"`
	RefreshedAt   time.Time      `bson:"refreshedAt" json:"refreshedAt"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

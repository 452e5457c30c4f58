package models

import (
	"time"
)

// Game is a catalog entry eligible for the daily rotation.
type Game struct {
	ID        string     `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string     `bson:"title" json:"title"`
	Image     string     `bson:"image" json:"image"`
	Active    bool       `bson:"active" json:"active"`
	RecentWin *RecentWin `bson:"recentWin,omitempty" json:"recentWin,omitempty"`
	CreatedAt time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt" json:"updatedAt"`
}

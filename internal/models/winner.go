package models

import (
	"time"
)

// Winner is a curated entry for the player-facing live winner feed.
type Winner struct {
	ID         string    `bson:"_id,omitempty" json:"id,omitempty"`
	Username   string    `bson:"username" json:"username"`
	Game       string    `bson:"game" json:"game"`
	BetAmount  float64   `bson:"betAmount" json:"betAmount"`
	WinAmount  float64   `bson:"winAmount" json:"winAmount"`
	Multiplier string    `bson:"multiplier" json:"multiplier"`
	Quote      string    `bson:"quote" json:"quote"`
	Avatar     string    `bson:"avatar" json:"avatar"`
	Active     bool      `bson:"active" json:"active"`
	CreatedBy  string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updatedAt"`
}

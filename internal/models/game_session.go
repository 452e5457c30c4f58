package models

import (
	"time"
)

// GameSession is a single-use play opportunity issued as a shareable link.
// The card table is snapshotted at creation. PlayCount is 0 or 1: the
// transition to 1 happens through the store's conditional claim update,
// never through a plain save.
type GameSession struct {
	ID          string       `bson:"_id,omitempty" json:"id,omitempty"`
	SessionID   string       `bson:"sessionId" json:"sessionId"`
	CardConfigs []CardConfig `bson:"cardConfigs" json:"cardConfigs"`
	CreatedBy   string       `bson:"createdBy" json:"createdBy"`
	IsActive    bool         `bson:"isActive" json:"isActive"`
	PlayCount   int          `bson:"playCount" json:"playCount"`
	Result      string       `bson:"result,omitempty" json:"result,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Playable reports whether the session can still be played.
func (s *GameSession) Playable() bool {
	return s.IsActive && s.PlayCount == 0
}

// PlayResult is the outcome of a successful play.
type PlayResult struct {
	SessionID string    `json:"sessionId"`
	Result    string    `json:"result"`
	PlayedAt  time.Time `json:"playedAt"`
}

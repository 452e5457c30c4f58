package models

import (
	"time"
)

// CardConfig is a single prize card: a display amount and the relative
// weight with which it is drawn. A zero probability is allowed; an
// all-zero table falls back to a uniform draw.
type CardConfig struct {
	Amount      string  `bson:"amount" json:"amount" binding:"required"`
	Probability float64 `bson:"probability" json:"probability"`
}

// AngpauConfig is the admin-editable default card table used for sessions
// that are not bound to a generated link. Editing it never changes the
// snapshot stored on already-issued sessions.
type AngpauConfig struct {
	ID          string       `bson:"_id,omitempty" json:"id,omitempty"`
	CardConfigs []CardConfig `bson:"cardConfigs" json:"cardConfigs"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// DefaultCardConfigs is served when no config has been saved yet.
func DefaultCardConfigs() []CardConfig {
	return []CardConfig{
		{Amount: "₹8", Probability: 0},
		{Amount: "₹50", Probability: 0},
		{Amount: "₹100", Probability: 0},
		{Amount: "₹300", Probability: 0},
		{Amount: "₹1000", Probability: 0},
		{Amount: "₹3000", Probability: 0},
		{Amount: "₹800", Probability: 0},
		{Amount: "₹5000", Probability: 0},
		{Amount: "₹2000", Probability: 0},
		{Amount: "₹1500", Probability: 0},
	}
}

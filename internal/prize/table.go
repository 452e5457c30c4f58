package prize

import (
	"fmt"

	"github.com/luckytaj/angpau-backend/internal/models"
)

// Table is an immutable probability table over prize card amounts. Order
// matters: the cumulative scan in Draw walks cards in their original
// order, which also fixes the deterministic tie behavior.
type Table struct {
	cards []models.CardConfig
	total float64
}

// NewTable validates and snapshots a card list. Weights must be
// non-negative; an all-zero table is valid and draws uniformly.
func NewTable(cards []models.CardConfig) (*Table, error) {
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: table must have at least one card", models.ErrInvalidConfiguration)
	}
	total := 0.0
	for i, c := range cards {
		if c.Amount == "" {
			return nil, fmt.Errorf("%w: card %d has no amount", models.ErrInvalidConfiguration, i+1)
		}
		if c.Probability < 0 {
			return nil, fmt.Errorf("%w: card %d has negative probability", models.ErrInvalidConfiguration, i+1)
		}
		total += c.Probability
	}
	snapshot := make([]models.CardConfig, len(cards))
	copy(snapshot, cards)
	return &Table{cards: snapshot, total: total}, nil
}

// Cards returns a copy of the card list in original order.
func (t *Table) Cards() []models.CardConfig {
	out := make([]models.CardConfig, len(t.cards))
	copy(out, t.cards)
	return out
}

// Len returns the number of cards.
func (t *Table) Len() int { return len(t.cards) }

// TotalWeight returns the sum of all card probabilities.
func (t *Table) TotalWeight() float64 { return t.total }

package prize

import (
	"math/rand"
	"sync"
)

// Rand is the random source injected into Draw. *math/rand.Rand satisfies
// it; tests pass seeded or stubbed sources.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Draw selects one card amount from the table using a single uniform
// sample. If the total weight is zero every card is equally likely, so a
// misconfigured all-zero table still produces a result. Otherwise card i
// wins with probability weight[i]/total.
func Draw(t *Table, rng Rand) string {
	if t.total <= 0 {
		return t.cards[rng.Intn(len(t.cards))].Amount
	}
	r := rng.Float64() * t.total
	cumulative := 0.0
	for _, c := range t.cards {
		cumulative += c.Probability
		if cumulative > r {
			return c.Amount
		}
	}
	// Floating-point accumulation can leave cumulative fractionally below
	// r on the last card; the last card is the answer in that case.
	return t.cards[len(t.cards)-1].Amount
}

// lockedRand wraps *rand.Rand for concurrent callers. math/rand sources
// are not safe for concurrent use, and the session service draws from
// many request goroutines.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewLockedRand returns a concurrency-safe Rand seeded with seed.
func NewLockedRand(seed int64) Rand {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))}
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

package prize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckytaj/angpau-backend/internal/models"
)

// stubRand returns a fixed fraction from Float64.
type stubRand struct{ f float64 }

func (s stubRand) Float64() float64 { return s.f }
func (s stubRand) Intn(n int) int   { return 0 }

func mustTable(t *testing.T, cards []models.CardConfig) *Table {
	t.Helper()
	table, err := NewTable(cards)
	require.NoError(t, err)
	return table
}

func TestDraw_SingleCardAlwaysWins(t *testing.T) {
	table := mustTable(t, []models.CardConfig{{Amount: "A", Probability: 1}})
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.Equal(t, "A", Draw(table, rng))
	}
}

func TestDraw_DistributionConverges(t *testing.T) {
	table := mustTable(t, []models.CardConfig{
		{Amount: "₹8", Probability: 70},
		{Amount: "₹50", Probability: 20},
		{Amount: "₹100", Probability: 8},
		{Amount: "₹300", Probability: 2},
	})
	rng := rand.New(rand.NewSource(42))

	const rounds = 100_000
	counts := map[string]int{}
	for i := 0; i < rounds; i++ {
		counts[Draw(table, rng)]++
	}

	want := map[string]float64{"₹8": 0.70, "₹50": 0.20, "₹100": 0.08, "₹300": 0.02}
	for amount, p := range want {
		got := float64(counts[amount]) / rounds
		assert.InDeltaf(t, p, got, 0.015, "amount %s frequency %.4f want ~%.2f", amount, got, p)
	}
}

func TestDraw_ZeroWeightFallbackIsUniform(t *testing.T) {
	table := mustTable(t, []models.CardConfig{
		{Amount: "A", Probability: 0},
		{Amount: "B", Probability: 0},
		{Amount: "C", Probability: 0},
	})
	rng := rand.New(rand.NewSource(7))

	const rounds = 3000
	counts := map[string]int{}
	for i := 0; i < rounds; i++ {
		counts[Draw(table, rng)]++
	}
	for _, amount := range []string{"A", "B", "C"} {
		assert.InDeltaf(t, 1000, counts[amount], 120, "amount %s count %d want ~1000", amount, counts[amount])
	}
}

func TestDraw_ZeroWeightCardNeverDrawnWhenOthersWeighted(t *testing.T) {
	table := mustTable(t, []models.CardConfig{
		{Amount: "never", Probability: 0},
		{Amount: "always", Probability: 5},
	})
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		assert.Equal(t, "always", Draw(table, rng))
	}
}

func TestDraw_LastCardFallbackOnRounding(t *testing.T) {
	// A sample right at the top of the range must still land on the last
	// card even when accumulated weights round below r.
	table := mustTable(t, []models.CardConfig{
		{Amount: "A", Probability: 0.1},
		{Amount: "B", Probability: 0.1},
		{Amount: "C", Probability: 0.1},
	})
	got := Draw(table, stubRand{f: 0.9999999999999999})
	assert.Equal(t, "C", got)
}

func TestDraw_BoundarySampleZero(t *testing.T) {
	table := mustTable(t, []models.CardConfig{
		{Amount: "A", Probability: 1},
		{Amount: "B", Probability: 1},
	})
	assert.Equal(t, "A", Draw(table, stubRand{f: 0}))
}

func TestNewLockedRand_Concurrent(t *testing.T) {
	rng := NewLockedRand(1)
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				f := rng.Float64()
				assert.GreaterOrEqual(t, f, 0.0)
				assert.Less(t, f, 1.0)
				n := rng.Intn(10)
				assert.GreaterOrEqual(t, n, 0)
				assert.Less(t, n, 10)
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

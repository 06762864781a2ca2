package backtest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonteCarloR_Deterministic(t *testing.T) {
	rs := []float64{3, -1, -1, 2, -1, 3, -1}

	first := MonteCarloR(rs, 10_000.0, 0.01, 200, rand.New(rand.NewSource(1)))
	second := MonteCarloR(rs, 10_000.0, 0.01, 200, rand.New(rand.NewSource(1)))

	assert.Equal(t, first, second)
}

// Identical R-multiples make the shuffle irrelevant: every iteration compounds
// to the same final capital with no drawdown.
func TestMonteCarloR_UniformRs(t *testing.T) {
	results := MonteCarloR([]float64{1, 1, 1}, 10_000.0, 0.01, 50, rand.New(rand.NewSource(7)))

	require.Len(t, results, 50)
	expected := 10_000.0 * 1.01 * 1.01 * 1.01
	for _, r := range results {
		assert.InDelta(t, expected, r.FinalCapital, 1e-6)
		assert.Zero(t, r.MaxDrawdown)
	}
}

func TestMonteCarloR_SingleLoss(t *testing.T) {
	results := MonteCarloR([]float64{-1}, 10_000.0, 0.01, 10, rand.New(rand.NewSource(7)))

	for _, r := range results {
		assert.InDelta(t, 9_900.0, r.FinalCapital, 1e-9)
		assert.InDelta(t, 0.01, r.MaxDrawdown, 1e-9)
	}
}

func TestSummarizeMonteCarlo(t *testing.T) {
	results := []MonteCarloResult{
		{FinalCapital: 9_000, MaxDrawdown: 0.30},
		{FinalCapital: 10_500, MaxDrawdown: 0.10},
		{FinalCapital: 12_000, MaxDrawdown: 0.05},
	}

	summary := SummarizeMonteCarlo(results)

	assert.LessOrEqual(t, summary.CapitalP5, summary.CapitalMedian)
	assert.LessOrEqual(t, summary.CapitalMedian, summary.CapitalP95)
	assert.InDelta(t, 10_500.0, summary.CapitalMedian, 1e-9)
	assert.InDelta(t, 10.0, summary.DrawdownMedianPct, 1e-9)
	assert.InDelta(t, 30.0, summary.DrawdownWorstPct, 1e-9)
}

func TestSummarizeMonteCarlo_Empty(t *testing.T) {
	assert.Equal(t, MonteCarloSummary{}, SummarizeMonteCarlo(nil))
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	assert.InDelta(t, 1.0, percentile(sorted, 0), 1e-9)
	assert.InDelta(t, 3.0, percentile(sorted, 50), 1e-9)
	assert.InDelta(t, 5.0, percentile(sorted, 100), 1e-9)
	assert.InDelta(t, 1.2, percentile(sorted, 5), 1e-9)
	assert.InDelta(t, 42.0, percentile([]float64{42}, 95), 1e-9)
}

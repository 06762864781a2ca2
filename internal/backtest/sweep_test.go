package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ibexquant/swing-backtest/internal/strategy"
)

func sweepTestConfig() SweepConfig {
	return SweepConfig{
		InitialCapital: 10_000.0,
		RiskPct:        0.03,
		MinBars:        2,
	}
}

// mockFactory hands each job a fresh one-shot entry strategy.
func mockFactory(job SweepJob) strategy.Strategy {
	return &mockStrategy{enterOn: 0, entry: 100, stop: 95}
}

func TestRunSweep(t *testing.T) {
	jobs := []SweepJob{
		// 60 shares at risk 300: +3R -> +900 -> +9%, approved.
		{Symbol: "WIN", Series: seriesFromRanges([][2]float64{{101, 99}, {106, 101}, {116, 108}})},
		// -1R -> -300 -> -3%, rejected.
		{Symbol: "LOSS", Series: seriesFromRanges([][2]float64{{101, 99}, {101, 94}})},
		// One bar of history, below MinBars.
		{Symbol: "SHORT", Series: seriesFromRanges([][2]float64{{101, 99}})},
	}

	result := RunSweep(jobs, 2, sweepTestConfig(), mockFactory)

	require.Len(t, result.Instruments, 3)
	assert.Equal(t, "LOSS", result.Instruments[0].Symbol)
	assert.Equal(t, "SHORT", result.Instruments[1].Symbol)
	assert.Equal(t, "WIN", result.Instruments[2].Symbol)

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "SHORT", result.Excluded[0].Symbol)
	assert.Equal(t, "insufficient history", result.Excluded[0].ExcludeReason)

	require.Len(t, result.Approved, 1)
	assert.Equal(t, "WIN", result.Approved[0].Symbol)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, "LOSS", result.Rejected[0].Symbol)
	assert.Empty(t, result.Neutral)

	// One trade per traded instrument, one terminal equity sample each,
	// both in symbol order.
	require.Len(t, result.Trades, 2)
	assert.Equal(t, []float64{9_700.0, 10_900.0}, result.EquitySamples)

	assert.Equal(t, 2, result.Summary.Trades)
	assert.InDelta(t, 50.0, result.Summary.WinRatePct, 1e-9)
	assert.InDelta(t, 1.0, result.Summary.ExpectancyR, 1e-9)
}

// Worker scheduling must not leak into the aggregate: repeated sweeps over
// the same jobs agree exactly.
func TestRunSweep_Deterministic(t *testing.T) {
	jobs := []SweepJob{
		{Symbol: "AAA", Series: seriesFromRanges([][2]float64{{101, 99}, {116, 108}})},
		{Symbol: "BBB", Series: seriesFromRanges([][2]float64{{101, 99}, {101, 94}})},
		{Symbol: "CCC", Series: seriesFromRanges([][2]float64{{101, 99}, {120, 90}})},
		{Symbol: "DDD", Series: seriesFromRanges([][2]float64{{101, 99}, {102, 100}})},
	}

	first := RunSweep(jobs, 4, sweepTestConfig(), mockFactory)
	second := RunSweep(jobs, 4, sweepTestConfig(), mockFactory)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.EquitySamples, second.EquitySamples)
}

func TestRunSweep_VolatilityFloor(t *testing.T) {
	config := sweepTestConfig()
	config.MinVolatilityPct = 5.0

	jobs := []SweepJob{
		{Symbol: "FLAT", Series: flatBars(10, 100.0)},
	}

	result := RunSweep(jobs, 1, config, mockFactory)

	require.Len(t, result.Excluded, 1)
	assert.Equal(t, "volatility below floor", result.Excluded[0].ExcludeReason)
	assert.Empty(t, result.Trades)
	assert.Zero(t, result.Summary.Trades)
}

func TestSweepResult_Rs(t *testing.T) {
	jobs := []SweepJob{
		{Symbol: "WIN", Series: seriesFromRanges([][2]float64{{101, 99}, {116, 108}})},
		{Symbol: "LOSS", Series: seriesFromRanges([][2]float64{{101, 99}, {101, 94}})},
	}

	result := RunSweep(jobs, 2, sweepTestConfig(), mockFactory)

	require.Len(t, result.Trades, 2)
	rs := result.Rs()
	assert.InDelta(t, -1.0, rs[0], 1e-9) // LOSS sorts first
	assert.InDelta(t, 3.0, rs[1], 1e-9)
}

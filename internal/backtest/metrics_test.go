package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedTrade(t *testing.T, exit float64) *Trade {
	t.Helper()
	trade, err := NewTrade(100.0, 95.0, 10, time.Now())
	require.NoError(t, err)
	trade.Close(exit, time.Now(), ExitTarget)
	return trade
}

func TestCalculateSummary(t *testing.T) {
	trades := []*Trade{
		closedTrade(t, 115.0), // +3R
		closedTrade(t, 95.0),  // -1R
		closedTrade(t, 110.0), // +2R
		closedTrade(t, 95.0),  // -1R
	}
	equity := []float64{10_000, 10_150, 10_100, 10_200}

	summary := CalculateSummary(trades, equity)

	assert.Equal(t, 4, summary.Trades)
	assert.InDelta(t, 50.0, summary.WinRatePct, 1e-9)
	assert.InDelta(t, 0.75, summary.ExpectancyR, 1e-9) // (3-1+2-1)/4
	assert.InDelta(t, 50.0/10_150.0*100, summary.MaxDrawdownPct, 1e-9)
}

func TestCalculateSummary_Empty(t *testing.T) {
	summary := CalculateSummary(nil, nil)

	assert.Zero(t, summary.Trades)
	assert.Zero(t, summary.WinRatePct)
	assert.Zero(t, summary.ExpectancyR)
	assert.Zero(t, summary.MaxDrawdownPct)
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		equity []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single sample", []float64{10_000}, 0},
		{"monotone rising", []float64{100, 110, 125, 140}, 0},
		{"single dip", []float64{100, 120, 90, 130}, 0.25},
		{"deepest of two dips", []float64{100, 80, 120, 60}, 0.5},
		{"flat", []float64{100, 100, 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MaxDrawdown(tt.equity), 1e-9)
		})
	}
}

// The drawdown ignores losses recovered before the sequence's running peak:
// order matters.
func TestMaxDrawdown_OrderSensitive(t *testing.T) {
	assert.InDelta(t, 0.5, MaxDrawdown([]float64{100, 50, 100}), 1e-9)
	assert.InDelta(t, 0.0, MaxDrawdown([]float64{50, 100, 100}), 1e-9)
}

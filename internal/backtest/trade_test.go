package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrade(t *testing.T) {
	entryTime := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	trade, err := NewTrade(100.0, 95.0, 20, entryTime)

	require.NoError(t, err)
	assert.Equal(t, 100.0, trade.EntryPrice)
	assert.Equal(t, 95.0, trade.StopPrice)
	assert.Equal(t, 20, trade.Size)
	assert.Equal(t, 5.0, trade.Risk)
	assert.True(t, trade.Open)
	assert.Zero(t, trade.Result)
	assert.Zero(t, trade.R)
}

func TestNewTrade_InvalidRisk(t *testing.T) {
	tests := []struct {
		name  string
		entry float64
		stop  float64
	}{
		{"stop above entry", 100.0, 105.0},
		{"stop equals entry", 100.0, 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trade, err := NewTrade(tt.entry, tt.stop, 10, time.Now())

			assert.Nil(t, trade)
			assert.ErrorIs(t, err, ErrInvalidRisk)
		})
	}
}

func TestTrade_Close(t *testing.T) {
	entryTime := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	exitTime := entryTime.AddDate(0, 0, 14)

	trade, err := NewTrade(100.0, 95.0, 20, entryTime)
	require.NoError(t, err)

	trade.Close(115.0, exitTime, ExitTarget)

	assert.False(t, trade.Open)
	assert.Equal(t, 115.0, trade.ExitPrice)
	assert.Equal(t, exitTime, trade.ExitTime)
	assert.Equal(t, ExitTarget, trade.ExitReason)
	assert.InDelta(t, 300.0, trade.Result, 1e-9) // (115-100)*20
	assert.InDelta(t, 3.0, trade.R, 1e-9)        // (115-100)/5
}

func TestTrade_Close_LosingTrade(t *testing.T) {
	trade, err := NewTrade(100.0, 95.0, 10, time.Now())
	require.NoError(t, err)

	trade.Close(95.0, time.Now(), ExitStop)

	assert.InDelta(t, -50.0, trade.Result, 1e-9)
	assert.InDelta(t, -1.0, trade.R, 1e-9)
}

// Closing twice must only mutate state on the first call.
func TestTrade_Close_Idempotent(t *testing.T) {
	trade, err := NewTrade(100.0, 95.0, 10, time.Now())
	require.NoError(t, err)

	first := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	trade.Close(110.0, first, ExitTarget)

	trade.Close(90.0, first.AddDate(0, 0, 1), ExitStop)

	assert.Equal(t, 110.0, trade.ExitPrice)
	assert.Equal(t, first, trade.ExitTime)
	assert.Equal(t, ExitTarget, trade.ExitReason)
	assert.InDelta(t, 100.0, trade.Result, 1e-9)
	assert.InDelta(t, 2.0, trade.R, 1e-9)
}

// R must round-trip from entry, stop, exit and size.
func TestTrade_RConsistency(t *testing.T) {
	tests := []struct {
		entry float64
		stop  float64
		exit  float64
		size  int
	}{
		{100.0, 95.0, 115.0, 20},
		{50.0, 49.0, 48.5, 100},
		{10.0, 9.5, 10.0, 1},
		{200.0, 180.0, 260.0, 5},
	}

	for _, tt := range tests {
		trade, err := NewTrade(tt.entry, tt.stop, tt.size, time.Now())
		require.NoError(t, err)

		trade.Close(tt.exit, time.Now(), ExitTarget)

		assert.InDelta(t, trade.Result/(trade.Risk*float64(tt.size)), trade.R, 1e-9)
	}
}

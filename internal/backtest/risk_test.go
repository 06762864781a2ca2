package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRiskManager_PositionSize(t *testing.T) {
	rm := NewRiskManager(10_000.0, 0.01)

	// Budget 100, risk per share 5 -> 20 shares.
	assert.Equal(t, 20, rm.PositionSize(100.0, 95.0))
}

func TestRiskManager_PositionSize_Floors(t *testing.T) {
	rm := NewRiskManager(10_000.0, 0.01)

	// Budget 100, risk per share 3 -> 33.33 floors to 33.
	assert.Equal(t, 33, rm.PositionSize(100.0, 97.0))
}

func TestRiskManager_PositionSize_MinimumOne(t *testing.T) {
	rm := NewRiskManager(1_000.0, 0.01)

	// Budget 10, risk per share 50: fractional size clamps up to 1.
	assert.Equal(t, 1, rm.PositionSize(500.0, 450.0))
}

func TestRiskManager_PositionSize_InvalidRisk(t *testing.T) {
	rm := NewRiskManager(10_000.0, 0.01)

	assert.Equal(t, 0, rm.PositionSize(100.0, 100.0))
	assert.Equal(t, 0, rm.PositionSize(100.0, 105.0))
}

// For any valid entry/stop pair the sizer never returns zero.
func TestRiskManager_PositionSize_AlwaysTradable(t *testing.T) {
	rm := NewRiskManager(500.0, 0.005)

	pairs := []struct{ entry, stop float64 }{
		{10.0, 9.9},
		{100.0, 95.0},
		{2_000.0, 1_500.0},
	}

	for _, p := range pairs {
		assert.GreaterOrEqual(t, rm.PositionSize(p.entry, p.stop), 1)
	}
}

package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPosition(t *testing.T) *Position {
	t.Helper()
	pos, err := NewPosition(100.0, 95.0, 20, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return pos
}

func TestNewPosition(t *testing.T) {
	pos := newTestPosition(t)

	assert.Equal(t, StateAlive, pos.Update(101.0, 99.0))
	assert.Equal(t, 115.0, pos.TargetPrice())
	assert.False(t, pos.BreakEvenArmed())
}

func TestNewPosition_InvalidRisk(t *testing.T) {
	pos, err := NewPosition(100.0, 100.0, 20, time.Now())

	assert.Nil(t, pos)
	assert.ErrorIs(t, err, ErrInvalidRisk)
}

// High reaching +1R moves the stop to entry on the same bar.
func TestPosition_BreakEvenArm(t *testing.T) {
	pos := newTestPosition(t)

	state := pos.Update(106.0, 101.0)

	assert.Equal(t, StateAlive, state)
	assert.True(t, pos.BreakEvenArmed())
	assert.Equal(t, 100.0, pos.Trade.StopPrice)
}

// Once armed the stop never moves back below entry.
func TestPosition_BreakEvenMonotonic(t *testing.T) {
	pos := newTestPosition(t)

	pos.Update(106.0, 101.0)
	pos.Update(104.0, 100.5)
	pos.Update(107.0, 102.0)

	assert.Equal(t, 100.0, pos.Trade.StopPrice)
	assert.True(t, pos.BreakEvenArmed())
}

// Entry 100, stop 95: a bar high of 106 arms break-even, a later
// high of 116 crosses the 115 target and closes at +3R.
func TestPosition_BreakEvenThenTarget(t *testing.T) {
	pos := newTestPosition(t)

	state := pos.Update(106.0, 101.0)
	require.Equal(t, StateAlive, state)
	require.Equal(t, 100.0, pos.Trade.StopPrice)

	state = pos.Update(116.0, 108.0)

	assert.Equal(t, StateTarget, state)
	assert.Equal(t, 115.0, pos.TargetPrice())
}

// A low through the stop before break-even ever arms exits at the
// original stop.
func TestPosition_StopBeforeBreakEven(t *testing.T) {
	pos := newTestPosition(t)

	state := pos.Update(101.0, 94.0)

	assert.Equal(t, StateStop, state)
	assert.Equal(t, 95.0, pos.Trade.StopPrice)
}

// A bar wide enough to touch both levels resolves to the target.
func TestPosition_TargetWinsSameBar(t *testing.T) {
	pos := newTestPosition(t)

	state := pos.Update(120.0, 90.0)

	assert.Equal(t, StateTarget, state)
}

func TestPosition_StopAfterBreakEven(t *testing.T) {
	pos := newTestPosition(t)

	require.Equal(t, StateAlive, pos.Update(106.0, 101.0))

	state := pos.Update(104.0, 99.0)

	assert.Equal(t, StateStop, state)
	assert.Equal(t, 100.0, pos.Trade.StopPrice)
}

// Updates after a terminal state are ignored.
func TestPosition_ClosedGuard(t *testing.T) {
	pos := newTestPosition(t)
	pos.Trade.Close(115.0, time.Now(), ExitTarget)

	state := pos.Update(90.0, 80.0)

	assert.Equal(t, StateClosed, state)
	assert.Equal(t, 115.0, pos.Trade.ExitPrice)
}

func TestPositionState_String(t *testing.T) {
	assert.Equal(t, "ALIVE", StateAlive.String())
	assert.Equal(t, "TARGET", StateTarget.String())
	assert.Equal(t, "STOP", StateStop.String())
	assert.Equal(t, "CLOSED", StateClosed.String())
}

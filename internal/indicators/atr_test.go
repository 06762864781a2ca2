package indicators

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ibexquant/swing-backtest/pkg/types"
)

func bar(high, low, close float64, day int) types.Bar {
	return types.Bar{
		Open:      close,
		High:      high,
		Low:       low,
		Close:     close,
		Volume:    1_000,
		Timestamp: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
	}
}

func TestATR_Calculate(t *testing.T) {
	atr := NewATR(3)

	series := types.Series{
		bar(102, 98, 100, 0),  // TR 4 (first bar: high-low)
		bar(104, 100, 103, 1), // TR max(4, |104-100|, |100-100|) = 4
		bar(110, 104, 108, 2), // TR max(6, |110-103|, |104-103|) = 7
		bar(109, 105, 106, 3), // TR max(4, |109-108|, |105-108|) = 4
	}

	// Last 3 true ranges: 4, 7, 4.
	assert.InDelta(t, 5.0, atr.Calculate(series), 1e-9)
}

// With less history than the period the whole series is averaged, so the
// value is usable from the very first bar.
func TestATR_Calculate_ShortSeries(t *testing.T) {
	atr := NewATR(14)

	series := types.Series{bar(102, 98, 100, 0)}
	assert.InDelta(t, 4.0, atr.Calculate(series), 1e-9)

	series = append(series, bar(106, 100, 104, 1))
	assert.InDelta(t, 5.0, atr.Calculate(series), 1e-9) // (4 + 6) / 2
}

// A gap beyond the bar's own range must widen the true range.
func TestATR_Calculate_Gap(t *testing.T) {
	atr := NewATR(14)

	series := types.Series{
		bar(102, 98, 100, 0),
		bar(112, 110, 111, 1), // gap up: TR = |112-100| = 12
	}

	assert.InDelta(t, 8.0, atr.Calculate(series), 1e-9) // (4 + 12) / 2
}

func TestATR_Calculate_Empty(t *testing.T) {
	assert.Zero(t, NewATR(14).Calculate(nil))
}

func TestATR_Period(t *testing.T) {
	assert.Equal(t, 14, NewATR(14).Period())
}

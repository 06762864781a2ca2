package indicators

import (
	"math"

	"github.com/ibexquant/swing-backtest/pkg/types"
)

// ATR is the Average True Range, the volatility measure used to scale
// slippage in the execution model.
type ATR struct {
	period int
}

// NewATR creates an ATR over the given lookback period.
func NewATR(period int) *ATR {
	return &ATR{period: period}
}

// Calculate returns the mean true range over the last period bars. With
// fewer bars than the period it falls back to the mean over the whole
// series, so the value is usable from the first bar and never fails; the
// engine depends on a positive volatility estimate for every entry and exit.
func (a *ATR) Calculate(series types.Series) float64 {
	if len(series) == 0 {
		return 0
	}

	ranges := make([]float64, len(series))
	for i, bar := range series {
		if i == 0 {
			ranges[i] = bar.High - bar.Low
			continue
		}
		ranges[i] = trueRange(bar, series[i-1].Close)
	}

	window := ranges
	if len(ranges) >= a.period {
		window = ranges[len(ranges)-a.period:]
	}

	sum := 0.0
	for _, r := range window {
		sum += r
	}
	return sum / float64(len(window))
}

// Period returns the configured lookback.
func (a *ATR) Period() int {
	return a.period
}

// trueRange is max(high-low, |high-prevClose|, |low-prevClose|).
func trueRange(bar types.Bar, prevClose float64) float64 {
	hl := bar.High - bar.Low
	hc := math.Abs(bar.High - prevClose)
	lc := math.Abs(bar.Low - prevClose)
	return math.Max(hl, math.Max(hc, lc))
}

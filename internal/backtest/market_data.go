package backtest

import "github.com/ibexquant/swing-backtest/pkg/types"

// MarketData exposes a historical series as a forward-only, growing-window
// iteration: step i yields the sub-series of bars 0..i, so a strategy
// evaluated at step i can never see future bars. The iteration is finite and
// non-restartable.
type MarketData struct {
	series types.Series
	cursor int
}

// NewMarketData wraps a validated, time-ascending series. Length and
// monotonicity checks belong to the data-loading layer; the engine assumes a
// clean series.
func NewMarketData(series types.Series) *MarketData {
	return &MarketData{series: series, cursor: -1}
}

// Next advances to the following bar and returns its index and the prefix of
// the series up to and including it. The prefix shares the backing array of
// the full series; bars are immutable so callers may not modify it. Returns
// false once the series is exhausted.
func (md *MarketData) Next() (int, types.Series, bool) {
	if md.cursor+1 >= len(md.series) {
		return 0, nil, false
	}
	md.cursor++
	return md.cursor, md.series[:md.cursor+1], true
}

// IsLastBar reports whether the most recently yielded bar is the final one.
// A strategy adapter uses it to tell backtest mode (evaluate every bar) from
// production mode (evaluate only the live bar).
func (md *MarketData) IsLastBar() bool {
	return md.cursor >= 0 && md.cursor == len(md.series)-1
}

// Len returns the total number of bars.
func (md *MarketData) Len() int {
	return len(md.series)
}

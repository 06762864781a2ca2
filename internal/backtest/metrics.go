package backtest

// Summary is the flat performance record reduced from a closed-trade log and
// a sequence of equity samples. It is what external layers serialize.
type Summary struct {
	Trades         int     `json:"trades"`
	WinRatePct     float64 `json:"winrate"`
	ExpectancyR    float64 `json:"expectancy_R"`
	MaxDrawdownPct float64 `json:"max_drawdown_pct"`
}

// CalculateSummary reduces trades and equity samples into the summary record.
// Pure: no mutation, no I/O. An empty trade log yields zeroed fields.
func CalculateSummary(trades []*Trade, equity []float64) Summary {
	s := Summary{Trades: len(trades)}

	if len(trades) > 0 {
		wins := 0
		sumR := 0.0
		for _, t := range trades {
			if t.R > 0 {
				wins++
			}
			sumR += t.R
		}
		s.WinRatePct = float64(wins) / float64(len(trades)) * 100
		s.ExpectancyR = sumR / float64(len(trades))
	}

	s.MaxDrawdownPct = MaxDrawdown(equity) * 100

	return s
}

// MaxDrawdown is the largest peak-to-trough decline over the samples in
// given order, as a fraction of the peak. Zero for empty or monotonically
// rising sequences.
func MaxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return 0
	}

	peak := equity[0]
	maxDD := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak > 0 {
			if dd := (peak - e) / peak; dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

package backtest

import "math"

// RiskManager sizes positions under a fixed-fractional rule: every trade
// risks a fixed percentage of a reference capital budget. The budget is a
// configuration value, not the portfolio's live capital.
type RiskManager struct {
	Capital float64
	RiskPct float64
}

// NewRiskManager returns a sizer risking riskPct of capital per trade.
func NewRiskManager(capital, riskPct float64) RiskManager {
	return RiskManager{Capital: capital, RiskPct: riskPct}
}

// PositionSize computes the share count for a trade between entry and stop.
// A non-positive risk distance returns 0, meaning "do not open". Otherwise
// the size is floor(budget / risk-per-share), clamped to a minimum of 1 so
// small accounts still take trades. The clamp can exceed the nominal risk
// budget on wide stops; that trade-off is deliberate.
func (rm RiskManager) PositionSize(entry, stop float64) int {
	riskPerShare := entry - stop
	if riskPerShare <= 0 {
		return 0
	}

	budget := rm.Capital * rm.RiskPct
	size := int(math.Floor(budget / riskPerShare))
	if size < 1 {
		return 1
	}
	return size
}

package backtest

import "time"

// Portfolio owns the account capital, the single open position slot, the
// closed-trade log and the equity samples of one backtest run.
//
// Capital changes only when a trade closes. The equity curve is appended only
// through MarkToMarket, which the engine calls once at the end of a run: each
// run contributes exactly one terminal equity sample, so drawdown computed
// across samples is a cross-instrument proxy, not an intrarun drawdown.
type Portfolio struct {
	Capital        float64
	InitialCapital float64

	Position *Position

	// Trades holds closed trades in close order, append-only.
	Trades []*Trade

	EquityCurve []float64
}

// NewPortfolio starts a portfolio with the given capital and no position.
func NewPortfolio(initialCapital float64) *Portfolio {
	return &Portfolio{
		Capital:        initialCapital,
		InitialCapital: initialCapital,
	}
}

// HasPosition reports whether the single position slot is occupied.
func (p *Portfolio) HasPosition() bool {
	return p.Position != nil
}

// OpenPosition fills the position slot. The caller must guarantee the slot
// was empty; the engine only opens when no position is held.
func (p *Portfolio) OpenPosition(pos *Position) {
	p.Position = pos
}

// ClosePosition settles the open position at the given exit fill, books the
// result into capital, appends the trade to the log and clears the slot.
func (p *Portfolio) ClosePosition(exitPrice float64, exitTime time.Time, reason ExitReason) {
	trade := p.Position.Trade

	trade.Close(exitPrice, exitTime, reason)

	p.Capital += trade.Result
	p.Trades = append(p.Trades, trade)
	p.Position = nil
}

// MarkToMarket appends the current capital to the equity curve.
func (p *Portfolio) MarkToMarket() {
	p.EquityCurve = append(p.EquityCurve, p.Capital)
}

// Return is the total return of the run relative to starting capital.
func (p *Portfolio) Return() float64 {
	if p.InitialCapital == 0 {
		return 0
	}
	return (p.Capital - p.InitialCapital) / p.InitialCapital
}

package backtest

import "time"

// PositionState is the outcome of evaluating a position against one bar.
type PositionState int

const (
	// StateAlive means the position survived the bar.
	StateAlive PositionState = iota
	// StateTarget means the bar's high reached the profit target.
	StateTarget
	// StateStop means the bar's low reached the active stop.
	StateStop
	// StateClosed means the underlying trade had already settled.
	StateClosed
)

func (s PositionState) String() string {
	switch s {
	case StateAlive:
		return "ALIVE"
	case StateTarget:
		return "TARGET"
	case StateStop:
		return "STOP"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Risk multiples for the exit rules: the stop moves to entry once price gains
// one initial risk unit, and the position exits at three.
const (
	breakEvenR = 1.0
	targetR    = 3.0
)

// Position wraps exactly one open trade and decides, bar by bar, whether it
// survives, arms break-even, hits target, or stops out.
type Position struct {
	Trade *Trade

	// risk mirrors Trade.Risk so the target level stays anchored to the
	// initial stop even after break-even moves the live stop.
	risk           float64
	breakEvenArmed bool
}

// NewPosition opens a position around a freshly created trade.
func NewPosition(entry, stop float64, size int, entryTime time.Time) (*Position, error) {
	trade, err := NewTrade(entry, stop, size, entryTime)
	if err != nil {
		return nil, err
	}
	return &Position{Trade: trade, risk: trade.Risk}, nil
}

// Update evaluates the position against one bar's high/low range. Checks run
// in a fixed order: closed guard, break-even arming, target, stop. Break-even
// uses the same bar's high that the target check sees, so a bar that clears
// +1R moves the stop to entry before the stop check below.
//
// A bar whose high reaches the target while its low would also have tagged
// the pre-move stop resolves to TARGET. That is an optimistic fill bias
// inherent to single-bar OHLC simulation; no intrabar path is modeled.
func (p *Position) Update(high, low float64) PositionState {
	if !p.Trade.Open {
		return StateClosed
	}

	if !p.breakEvenArmed && high >= p.Trade.EntryPrice+breakEvenR*p.risk {
		p.Trade.StopPrice = p.Trade.EntryPrice
		p.breakEvenArmed = true
	}

	if high >= p.Trade.EntryPrice+targetR*p.risk {
		return StateTarget
	}

	if low <= p.Trade.StopPrice {
		return StateStop
	}

	return StateAlive
}

// TargetPrice is the analytic exit level for a TARGET exit. Execution costs
// are applied to this level, not to the bar high that touched it.
func (p *Position) TargetPrice() float64 {
	return p.Trade.EntryPrice + targetR*p.risk
}

// BreakEvenArmed reports whether the stop has been moved to entry.
func (p *Position) BreakEvenArmed() bool {
	return p.breakEvenArmed
}

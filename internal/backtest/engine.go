package backtest

import (
	"time"

	"github.com/ibexquant/swing-backtest/internal/indicators"
	"github.com/ibexquant/swing-backtest/internal/strategy"
	"github.com/ibexquant/swing-backtest/pkg/types"
)

const atrPeriod = 14

// BacktestEngine replays a historical series bar by bar through a strategy,
// managing at most one open position, routing theoretical prices through the
// execution model and sizing entries with the risk manager.
//
// The engine is single-threaded and deterministic: bars are processed in
// chronological order and a run either completes over the full range or not
// at all. Run one engine per instrument; engines share no state.
type BacktestEngine struct {
	data      *MarketData
	strategy  strategy.Strategy
	execution ExecutionModel
	risk      RiskManager
	portfolio *Portfolio
	atr       *indicators.ATR
}

// NewBacktestEngine wires an engine around one instrument's collaborators.
func NewBacktestEngine(
	data *MarketData,
	strat strategy.Strategy,
	execution ExecutionModel,
	risk RiskManager,
	portfolio *Portfolio,
) *BacktestEngine {
	return &BacktestEngine{
		data:      data,
		strategy:  strat,
		execution: execution,
		risk:      risk,
		portfolio: portfolio,
		atr:       indicators.NewATR(atrPeriod),
	}
}

// Run replays every bar. Each step first manages the open position, then (if
// the slot is free) evaluates the strategy for an entry. After the final bar
// the portfolio is marked to market exactly once, so the equity curve holds
// one terminal sample for the run.
func (e *BacktestEngine) Run() {
	for {
		_, history, ok := e.data.Next()
		if !ok {
			break
		}

		bar := history.Last()

		if e.portfolio.HasPosition() {
			e.managePosition(history, bar)
		}

		if !e.portfolio.HasPosition() {
			decision := e.strategy.Evaluate(history, false)
			if decision.Action == strategy.ActionEnter {
				e.enter(history, decision, bar.Timestamp)
			}
		}
	}

	e.portfolio.MarkToMarket()
}

// enter opens a position from an entry decision. A decision whose stop sits
// at or above the slipped entry fill can legitimately come out of strategy
// edge cases; it is skipped, never fatal. A zero size likewise skips.
func (e *BacktestEngine) enter(history types.Series, decision strategy.Decision, entryTime time.Time) {
	atr := e.atr.Calculate(history)

	entryFill := e.execution.Enter(decision.Entry, atr)

	size := e.risk.PositionSize(entryFill, decision.Stop)
	if size <= 0 {
		return
	}

	pos, err := NewPosition(entryFill, decision.Stop, size, entryTime)
	if err != nil {
		// Only ErrInvalidRisk can come out of NewPosition; skip the bar.
		return
	}

	e.portfolio.OpenPosition(pos)
}

// managePosition runs the per-bar state machine and settles exits. A STOP
// exits at the active stop level, a TARGET at the analytic +3R level; both
// theoretical prices are run through the execution model.
func (e *BacktestEngine) managePosition(history types.Series, bar types.Bar) {
	pos := e.portfolio.Position

	state := pos.Update(bar.High, bar.Low)
	if state != StateStop && state != StateTarget {
		return
	}

	var theoretical float64
	var reason ExitReason
	if state == StateStop {
		theoretical = pos.Trade.StopPrice
		reason = ExitStop
	} else {
		theoretical = pos.TargetPrice()
		reason = ExitTarget
	}

	exitFill := e.execution.Exit(theoretical, e.atr.Calculate(history))
	e.portfolio.ClosePosition(exitFill, bar.Timestamp, reason)
}

package backtest

import (
	"sort"

	"github.com/ibexquant/swing-backtest/internal/monitoring"
)

// Return thresholds for classifying instruments in a sweep report.
const (
	approvedReturnPct = 2.0
	rejectedReturnPct = -2.0
)

// SweepResult aggregates a whole multi-instrument sweep.
//
// EquitySamples holds one terminal capital sample per traded instrument, in
// symbol order. That is the single aggregation convention of this engine:
// the drawdown computed over it is a cross-instrument proxy, not an
// intrabacktest drawdown.
type SweepResult struct {
	Instruments   []InstrumentResult
	Trades        []*Trade
	EquitySamples []float64
	Summary       Summary

	// Classification by per-instrument return, for the executive report.
	Approved []InstrumentResult
	Neutral  []InstrumentResult
	Rejected []InstrumentResult
	Excluded []InstrumentResult
}

// RunSweep pushes every job through the pool and aggregates the results.
// Results arrive in completion order; aggregation re-sorts by symbol so a
// sweep is deterministic regardless of worker scheduling.
func RunSweep(jobs []SweepJob, workers int, config SweepConfig, factory StrategyFactory) SweepResult {
	pool := NewWorkerPool(workers, len(jobs), config, factory)
	pool.Start()

	go func() {
		for _, job := range jobs {
			if err := pool.Submit(job); err != nil {
				return
			}
		}
	}()

	collected := make([]InstrumentResult, 0, len(jobs))
	for i := 0; i < len(jobs); i++ {
		collected = append(collected, <-pool.Results())
	}
	pool.Stop()

	sort.Slice(collected, func(a, b int) bool {
		return collected[a].Symbol < collected[b].Symbol
	})

	result := SweepResult{Instruments: collected}

	for _, inst := range collected {
		if inst.Excluded {
			result.Excluded = append(result.Excluded, inst)
			continue
		}
		if len(inst.Trades) == 0 {
			continue
		}

		result.Trades = append(result.Trades, inst.Trades...)
		result.EquitySamples = append(result.EquitySamples, inst.FinalEquity)

		switch {
		case inst.ReturnPct >= approvedReturnPct:
			result.Approved = append(result.Approved, inst)
		case inst.ReturnPct < rejectedReturnPct:
			result.Rejected = append(result.Rejected, inst)
		default:
			result.Neutral = append(result.Neutral, inst)
		}
	}

	result.Summary = CalculateSummary(result.Trades, result.EquitySamples)

	monitoring.RecordSweep()

	return result
}

// Rs extracts the R-multiples of the aggregated trade log, in order.
func (r SweepResult) Rs() []float64 {
	rs := make([]float64, len(r.Trades))
	for i, t := range r.Trades {
		rs[i] = t.R
	}
	return rs
}

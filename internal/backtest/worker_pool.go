package backtest

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/ibexquant/swing-backtest/internal/indicators"
	"github.com/ibexquant/swing-backtest/internal/monitoring"
	"github.com/ibexquant/swing-backtest/internal/strategy"
	"github.com/ibexquant/swing-backtest/pkg/types"
)

// SweepConfig carries the per-instrument run parameters of a multi-instrument
// sweep. Every job gets a fresh engine built from these values.
type SweepConfig struct {
	InitialCapital float64
	RiskPct        float64

	CommissionPct  float64
	SlippageATRPct float64
	SlippageMinPct float64

	// MinBars is the minimum history required before an engine is built.
	MinBars int

	// MinVolatilityPct excludes instruments whose close-price coefficient of
	// variation sits below it. Zero disables the filter.
	MinVolatilityPct float64
}

// SweepJob is one instrument to simulate.
type SweepJob struct {
	Symbol string
	Series types.Series
}

// InstrumentResult is the outcome of one instrument's run. Excluded
// instruments never had an engine built; ExcludeReason says why.
type InstrumentResult struct {
	Symbol        string
	Excluded      bool
	ExcludeReason string

	VolatilityPct float64
	Summary       Summary
	Trades        []*Trade
	FinalEquity   float64
	ReturnPct     float64
	Duration      time.Duration
}

// StrategyFactory builds a fresh strategy per job, so no strategy state leaks
// between instruments.
type StrategyFactory func(job SweepJob) strategy.Strategy

// WorkerPool runs instrument backtests in parallel. Instruments are
// independent: each job owns a fresh MarketData/Strategy/Portfolio/Engine
// quadruple, and results are collected on the caller's goroutine.
type WorkerPool struct {
	workerCount int
	jobQueue    chan SweepJob
	resultQueue chan InstrumentResult
	factory     StrategyFactory
	config      SweepConfig
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerPool creates a pool. A workerCount <= 0 uses the CPU count.
func NewWorkerPool(workerCount, jobBufferSize int, config SweepConfig, factory StrategyFactory) *WorkerPool {
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workerCount: workerCount,
		jobQueue:    make(chan SweepJob, jobBufferSize),
		resultQueue: make(chan InstrumentResult, jobBufferSize),
		factory:     factory,
		config:      config,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop closes the job queue, waits for in-flight jobs and closes the result
// queue.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// Submit queues one instrument.
func (wp *WorkerPool) Submit(job SweepJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the channel of completed instruments.
func (wp *WorkerPool) Results() <-chan InstrumentResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

// processJob applies the pre-engine filters and, when they pass, builds the
// instrument's quadruple and runs it to completion.
func (wp *WorkerPool) processJob(job SweepJob) InstrumentResult {
	start := time.Now()

	result := InstrumentResult{Symbol: job.Symbol}

	if len(job.Series) < wp.config.MinBars {
		result.Excluded = true
		result.ExcludeReason = "insufficient history"
		result.Duration = time.Since(start)
		return result
	}

	result.VolatilityPct = indicators.Volatility(job.Series.Closes())
	if wp.config.MinVolatilityPct > 0 && result.VolatilityPct < wp.config.MinVolatilityPct {
		result.Excluded = true
		result.ExcludeReason = "volatility below floor"
		result.Duration = time.Since(start)
		return result
	}

	portfolio := NewPortfolio(wp.config.InitialCapital)
	engine := NewBacktestEngine(
		NewMarketData(job.Series),
		wp.factory(job),
		NewExecutionModel(wp.config.CommissionPct, wp.config.SlippageATRPct, wp.config.SlippageMinPct),
		NewRiskManager(wp.config.InitialCapital, wp.config.RiskPct),
		portfolio,
	)
	engine.Run()

	result.Summary = CalculateSummary(portfolio.Trades, portfolio.EquityCurve)
	result.Trades = portfolio.Trades
	result.FinalEquity = portfolio.Capital
	result.ReturnPct = portfolio.Return() * 100
	result.Duration = time.Since(start)

	monitoring.RecordInstrument(job.Symbol)
	monitoring.RecordTrades(job.Symbol, len(portfolio.Trades))

	return result
}

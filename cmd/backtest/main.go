package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ibexquant/swing-backtest/internal/backtest"
	"github.com/ibexquant/swing-backtest/internal/history"
	"github.com/ibexquant/swing-backtest/internal/logger"
	"github.com/ibexquant/swing-backtest/internal/monitoring"
	"github.com/ibexquant/swing-backtest/internal/strategy"
	"github.com/ibexquant/swing-backtest/pkg/config"
	"github.com/ibexquant/swing-backtest/pkg/data"
	"github.com/ibexquant/swing-backtest/pkg/reporting"
)

const (
	AppName    = "Swing Backtest"
	AppVersion = "1.0.0"

	DefaultInitialCapital = 10_000.0
	DefaultRiskPct        = 0.01
	DefaultMinVolatility  = 8.0
)

func main() {
	flags := NewFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}
	if *flags.ShowHelp {
		flag.Usage()
		return
	}

	if err := flags.Validate(); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()
	loadEnvironment(*flags.EnvFile)

	cfg, err := loadConfiguration(flags)
	if err != nil {
		log.Fatalf("❌ Configuration error: %v", err)
	}

	if *flags.MetricsAddr != "" {
		go func() {
			if err := monitoring.Serve(*flags.MetricsAddr); err != nil {
				log.Printf("⚠️  Metrics endpoint stopped: %v", err)
			}
		}()
	}

	if *flags.DataFile != "" {
		runSingle(cfg, flags)
		return
	}

	runSweep(cfg, flags)
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// loadConfiguration reads the YAML config when given one and lets explicit
// command line flags override its values.
func loadConfiguration(flags *Flags) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if *flags.ConfigFile != "" {
		cfg, err = config.Load(*flags.ConfigFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = config.Default()
	}

	if *flags.InitialCapital != DefaultInitialCapital {
		cfg.Sweep.InitialCapital = *flags.InitialCapital
	}
	if *flags.RiskPct != DefaultRiskPct {
		cfg.Sweep.RiskPct = *flags.RiskPct
	}
	if *flags.MinVolatility != DefaultMinVolatility {
		cfg.Sweep.MinVolatilityPct = *flags.MinVolatility
	} else if cfg.Sweep.MinVolatilityPct == 0 {
		cfg.Sweep.MinVolatilityPct = DefaultMinVolatility
	}
	if *flags.Workers != 0 {
		cfg.Sweep.Workers = *flags.Workers
	}
	if *flags.DataRoot != "" {
		cfg.Data.Root = *flags.DataRoot
	}
	if *flags.HistoryDB != "" {
		cfg.History.DSN = *flags.HistoryDB
	}

	return cfg, nil
}

func sweepConfig(cfg *config.Config) backtest.SweepConfig {
	return backtest.SweepConfig{
		InitialCapital:   cfg.Sweep.InitialCapital,
		RiskPct:          cfg.Sweep.RiskPct,
		CommissionPct:    cfg.Execution.CommissionPct,
		SlippageATRPct:   cfg.Execution.SlippageATRPct,
		SlippageMinPct:   cfg.Execution.SlippageMinPct,
		MinBars:          cfg.Sweep.MinBars,
		MinVolatilityPct: cfg.Sweep.MinVolatilityPct,
	}
}

// runSingle backtests one CSV file and prints/writes the result.
func runSingle(cfg *config.Config, flags *Flags) {
	symbol := *flags.Symbol
	if symbol == "" {
		symbol = strings.TrimSuffix(filepath.Base(*flags.DataFile), filepath.Ext(*flags.DataFile))
	}

	provider := data.NewCSVProvider()
	series, err := provider.Load(*flags.DataFile)
	if err != nil {
		log.Fatalf("❌ Data error: %v", err)
	}
	if err := provider.Validate(series); err != nil {
		log.Fatalf("❌ Data validation error: %v", err)
	}
	if len(series) < cfg.Sweep.MinBars {
		log.Fatalf("❌ Insufficient history: %d bars, need %d", len(series), cfg.Sweep.MinBars)
	}

	log.Printf("📊 %s: %d bars loaded", symbol, len(series))

	result := backtest.RunSweep(
		[]backtest.SweepJob{{Symbol: symbol, Series: series}},
		1,
		sweepConfig(cfg),
		func(backtest.SweepJob) strategy.Strategy {
			return strategy.NewTrendFollow(cfg.Sweep.MinVolatilityPct)
		},
	)

	outputResult(result, cfg, flags)
}

// runSweep backtests the configured ticker universe in parallel.
func runSweep(cfg *config.Config, flags *Flags) {
	if len(cfg.Sweep.Tickers) == 0 {
		log.Fatalf("❌ No tickers configured; pass -config with a tickers list or -data for a single file")
	}

	runLog, err := logger.NewLogger("sweep")
	if err != nil {
		log.Fatalf("❌ Logger error: %v", err)
	}
	defer runLog.Close()

	provider := data.NewCSVProvider()
	jobs := make([]backtest.SweepJob, 0, len(cfg.Sweep.Tickers))

	for _, ticker := range cfg.Sweep.Tickers {
		path := filepath.Join(cfg.Data.Root, ticker+".csv")
		series, err := provider.Load(path)
		if err != nil {
			log.Printf("⚠️  %s: %v", ticker, err)
			runLog.Log(logger.LogLevelWarn, "%s: load failed: %v", ticker, err)
			continue
		}
		if err := provider.Validate(series); err != nil {
			log.Printf("⚠️  %s: %v", ticker, err)
			runLog.Log(logger.LogLevelWarn, "%s: validation failed: %v", ticker, err)
			continue
		}
		jobs = append(jobs, backtest.SweepJob{Symbol: ticker, Series: series})
	}

	if len(jobs) == 0 {
		log.Fatalf("❌ No loadable tickers under %s", cfg.Data.Root)
	}

	log.Printf("⏳ Sweeping %d instruments (%d configured)", len(jobs), len(cfg.Sweep.Tickers))

	result := backtest.RunSweep(jobs, cfg.Sweep.Workers, sweepConfig(cfg), func(backtest.SweepJob) strategy.Strategy {
		return strategy.NewTrendFollow(cfg.Sweep.MinVolatilityPct)
	})

	monitoring.SetLastExpectancy(result.Summary.ExpectancyR)

	for _, inst := range result.Instruments {
		if inst.Excluded {
			runLog.Result("%s excluded: %s", inst.Symbol, inst.ExcludeReason)
			continue
		}
		runLog.Result("%s: %d trades, %+.1f%% return", inst.Symbol, len(inst.Trades), inst.ReturnPct)
	}

	outputResult(result, cfg, flags)

	if *flags.MonteCarlo {
		runMonteCarlo(result, cfg)
	}

	saveAndCompare(result, cfg)
}

func runMonteCarlo(result backtest.SweepResult, cfg *config.Config) {
	rs := result.Rs()
	if len(rs) < cfg.MonteCarlo.MinTrades {
		log.Printf("⚠️  Monte Carlo skipped: %d trades, need %d", len(rs), cfg.MonteCarlo.MinTrades)
		return
	}

	seed := cfg.MonteCarlo.Seed
	if seed == 0 {
		seed = 1
	}
	rng := rand.New(rand.NewSource(seed))

	results := backtest.MonteCarloR(rs, cfg.Sweep.InitialCapital, cfg.Sweep.RiskPct, cfg.MonteCarlo.Iterations, rng)
	reporting.NewConsoleReporter().PrintMonteCarlo(backtest.SummarizeMonteCarlo(results), cfg.MonteCarlo.Iterations)
}

// saveAndCompare persists the sweep summary and diffs it against the
// previous one.
func saveAndCompare(result backtest.SweepResult, cfg *config.Config) {
	store, err := history.Open(cfg.History.DSN)
	if err != nil {
		log.Printf("⚠️  Run history unavailable: %v", err)
		return
	}
	defer store.Close()

	ctx := context.Background()

	previous, havePrevious, err := store.Latest(ctx)
	if err != nil {
		log.Printf("⚠️  Run history read failed: %v", err)
	}

	approved := make([]string, len(result.Approved))
	for i, inst := range result.Approved {
		approved[i] = inst.Symbol
	}

	finalCapital := cfg.Sweep.InitialCapital
	if n := len(result.EquitySamples); n > 0 {
		finalCapital = result.EquitySamples[n-1]
	}

	run := history.Run{
		CreatedAt:      time.Now().UTC(),
		Trades:         result.Summary.Trades,
		WinRatePct:     result.Summary.WinRatePct,
		ExpectancyR:    result.Summary.ExpectancyR,
		MaxDrawdownPct: result.Summary.MaxDrawdownPct,
		FinalCapital:   finalCapital,
		Approved:       approved,
		Config: map[string]any{
			"risk_pct":           cfg.Sweep.RiskPct,
			"min_volatility_pct": cfg.Sweep.MinVolatilityPct,
			"initial_capital":    cfg.Sweep.InitialCapital,
		},
	}

	if _, err := store.Save(ctx, run); err != nil {
		log.Printf("⚠️  Run history save failed: %v", err)
		return
	}
	log.Printf("💾 Run saved to %s", cfg.History.DSN)

	if havePrevious {
		reporting.NewConsoleReporter().PrintComparison(history.Compare(previous, run))
	}
}

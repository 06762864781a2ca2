package main

import (
	"flag"
	"fmt"
)

// Flags holds all command line flags for the backtest command.
type Flags struct {
	// Configuration
	ConfigFile *string
	DataFile   *string
	Symbol     *string
	DataRoot   *string

	// Account settings
	InitialCapital *float64
	RiskPct        *float64

	// Instrument filter
	MinVolatility *float64

	// Sweep options
	Workers *int

	// Analysis options
	MonteCarlo *bool

	// Output options
	Output     *string
	OutputFile *string
	HistoryDB  *string

	// Observability
	MetricsAddr *string

	EnvFile *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewFlags creates and registers all command line flags.
func NewFlags() *Flags {
	return &Flags{
		ConfigFile: flag.String("config", "", "Path to sweep configuration file (YAML)"),
		DataFile:   flag.String("data", "", "Path to a single historical data CSV"),
		Symbol:     flag.String("symbol", "", "Symbol for single-file runs"),
		DataRoot:   flag.String("data-root", "", "Directory with per-ticker CSV files"),

		InitialCapital: flag.Float64("balance", DefaultInitialCapital, "Initial capital"),
		RiskPct:        flag.Float64("risk", DefaultRiskPct, "Fraction of capital risked per trade (0.01 = 1%)"),

		MinVolatility: flag.Float64("min-volatility", DefaultMinVolatility, "Minimum close-price volatility %% to include an instrument (0 disables)"),

		Workers: flag.Int("workers", 0, "Sweep worker count (0 = CPU count)"),

		MonteCarlo: flag.Bool("montecarlo", false, "Run Monte Carlo resampling over the trade log"),

		Output:     flag.String("output", "console", "Output format (console, json, excel)"),
		OutputFile: flag.String("output-file", "", "Output file for json/excel formats"),
		HistoryDB:  flag.String("history-db", "", "SQLite file for run history (empty = config value)"),

		MetricsAddr: flag.String("metrics-addr", "", "Address for the Prometheus /metrics endpoint (empty = disabled)"),

		EnvFile: flag.String("env", ".env", "Environment file"),

		ShowVersion: flag.Bool("version", false, "Show version"),
		ShowHelp:    flag.Bool("help", false, "Show help"),
	}
}

// Validate rejects flag combinations the runner cannot act on.
func (f *Flags) Validate() error {
	switch *f.Output {
	case "console", "json", "excel":
	default:
		return fmt.Errorf("invalid output format %q (use console, json or excel)", *f.Output)
	}
	if *f.InitialCapital <= 0 {
		return fmt.Errorf("balance must be positive, got %.2f", *f.InitialCapital)
	}
	if *f.RiskPct <= 0 || *f.RiskPct >= 1 {
		return fmt.Errorf("risk must be in (0, 1), got %.4f", *f.RiskPct)
	}
	return nil
}

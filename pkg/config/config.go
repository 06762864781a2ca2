package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the full sweep configuration.
type Config struct {
	Sweep      SweepConfig      `yaml:"sweep"`
	Execution  ExecutionConfig  `yaml:"execution"`
	Data       DataConfig       `yaml:"data"`
	MonteCarlo MonteCarloConfig `yaml:"montecarlo"`
	History    HistoryConfig    `yaml:"history"`
}

// SweepConfig controls capital, risk and the instrument universe.
type SweepConfig struct {
	InitialCapital   float64  `yaml:"initial_capital"`
	RiskPct          float64  `yaml:"risk_pct"`
	MinVolatilityPct float64  `yaml:"min_volatility_pct"`
	MinBars          int      `yaml:"min_bars"`
	Workers          int      `yaml:"workers"`
	Tickers          []string `yaml:"tickers"`
}

// ExecutionConfig holds the execution-cost percentages.
type ExecutionConfig struct {
	CommissionPct  float64 `yaml:"commission_pct"`
	SlippageATRPct float64 `yaml:"slippage_atr_pct"`
	SlippageMinPct float64 `yaml:"slippage_min_pct"`
}

// DataConfig says where the per-ticker CSV files live.
type DataConfig struct {
	Root string `yaml:"root"`
}

// MonteCarloConfig controls the R-multiple resampling.
type MonteCarloConfig struct {
	Iterations int   `yaml:"iterations"`
	MinTrades  int   `yaml:"min_trades"`
	Seed       int64 `yaml:"seed"`
}

// HistoryConfig controls where run summaries are persisted.
type HistoryConfig struct {
	DSN string `yaml:"dsn"` // path to the SQLite file, or ":memory:"
}

// Load reads the YAML config and the .env file when present. Environment
// values override the YAML for the keys they correspond to.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a runnable configuration without a YAML file, for
// single-instrument CLI runs.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

// Validate rejects configurations the engine cannot run with.
func (c *Config) Validate() error {
	if c.Sweep.InitialCapital <= 0 {
		return fmt.Errorf("config: initial_capital must be positive, got %.2f", c.Sweep.InitialCapital)
	}
	if c.Sweep.RiskPct <= 0 || c.Sweep.RiskPct >= 1 {
		return fmt.Errorf("config: risk_pct must be in (0, 1), got %.4f", c.Sweep.RiskPct)
	}
	if c.Execution.CommissionPct < 0 || c.Execution.SlippageATRPct < 0 || c.Execution.SlippageMinPct < 0 {
		return fmt.Errorf("config: execution percentages must not be negative")
	}
	if c.Sweep.MinBars < 1 {
		return fmt.Errorf("config: min_bars must be at least 1, got %d", c.Sweep.MinBars)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BACKTEST_DATA_ROOT"); v != "" {
		cfg.Data.Root = v
	}
	if v := os.Getenv("BACKTEST_HISTORY_DSN"); v != "" {
		cfg.History.DSN = v
	}
	if v := os.Getenv("BACKTEST_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sweep.Workers = n
		}
	}
}

func setDefaults(cfg *Config) {
	if cfg.Sweep.InitialCapital <= 0 {
		cfg.Sweep.InitialCapital = 10_000
	}
	if cfg.Sweep.RiskPct <= 0 {
		cfg.Sweep.RiskPct = 0.01
	}
	if cfg.Sweep.MinBars <= 0 {
		cfg.Sweep.MinBars = 60
	}
	if cfg.Execution.CommissionPct == 0 && cfg.Execution.SlippageATRPct == 0 && cfg.Execution.SlippageMinPct == 0 {
		cfg.Execution.CommissionPct = 0.0005
		cfg.Execution.SlippageATRPct = 0.01
		cfg.Execution.SlippageMinPct = 0.0003
	}
	if cfg.Data.Root == "" {
		cfg.Data.Root = "data"
	}
	if cfg.MonteCarlo.Iterations <= 0 {
		cfg.MonteCarlo.Iterations = 10_000
	}
	if cfg.MonteCarlo.MinTrades <= 0 {
		cfg.MonteCarlo.MinTrades = 20
	}
	if cfg.History.DSN == "" {
		cfg.History.DSN = "backtests.db"
	}
}

package main

import (
	"log"
	"path/filepath"

	"github.com/ibexquant/swing-backtest/internal/backtest"
	"github.com/ibexquant/swing-backtest/pkg/config"
	"github.com/ibexquant/swing-backtest/pkg/reporting"
)

func defaultOutputPath(format string) string {
	switch format {
	case "json":
		return filepath.Join("results", "backtest.json")
	case "excel":
		return filepath.Join("results", "trades.xlsx")
	default:
		return ""
	}
}

// outputResult dispatches a sweep result to the selected output format. The
// console table is always printed; json/excel additionally write a file.
func outputResult(result backtest.SweepResult, cfg *config.Config, flags *Flags) {
	console := reporting.NewConsoleReporter()
	console.PrintSweep(result)

	path := *flags.OutputFile
	if path == "" {
		path = defaultOutputPath(*flags.Output)
	}

	switch *flags.Output {
	case "json":
		rec := reporting.BuildSweepRecord(result, cfg.Sweep.InitialCapital)
		if err := reporting.WriteJSON(rec, path); err != nil {
			log.Printf("⚠️  JSON output failed: %v", err)
			return
		}
		log.Printf("💾 Results written to %s", path)

	case "excel":
		finalCapital := cfg.Sweep.InitialCapital
		if n := len(result.EquitySamples); n > 0 {
			finalCapital = result.EquitySamples[n-1]
		}
		reporter := reporting.NewExcelReporter()
		if err := reporter.WriteTradesXLSX(result.Trades, result.Summary, cfg.Sweep.InitialCapital, finalCapital, path); err != nil {
			log.Printf("⚠️  Excel output failed: %v", err)
			return
		}
		log.Printf("💾 Trade workbook written to %s", path)
	}
}

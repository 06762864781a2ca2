package reporting

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ibexquant/swing-backtest/internal/backtest"
)

// Record is the serializable result of a run or sweep. The metrics fields
// mirror backtest.Summary; the rest is context for whoever consumes the file.
type Record struct {
	GeneratedAt    time.Time         `json:"generated_at"`
	Symbols        []string          `json:"symbols,omitempty"`
	InitialCapital float64           `json:"initial_capital"`
	FinalCapital   float64           `json:"final_capital"`
	Metrics        backtest.Summary  `json:"metrics"`
	Instruments    []InstrumentEntry `json:"instruments,omitempty"`
}

// InstrumentEntry is one instrument's line in a sweep record.
type InstrumentEntry struct {
	Symbol    string  `json:"symbol"`
	Trades    int     `json:"trades"`
	ReturnPct float64 `json:"return_pct"`
	Excluded  bool    `json:"excluded,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// BuildSweepRecord flattens a sweep result into a Record.
func BuildSweepRecord(result backtest.SweepResult, initialCapital float64) Record {
	rec := Record{
		GeneratedAt:    time.Now().UTC(),
		InitialCapital: initialCapital,
		Metrics:        result.Summary,
	}

	for _, inst := range result.Instruments {
		rec.Symbols = append(rec.Symbols, inst.Symbol)
		entry := InstrumentEntry{
			Symbol:   inst.Symbol,
			Excluded: inst.Excluded,
			Reason:   inst.ExcludeReason,
		}
		if !inst.Excluded {
			entry.Trades = len(inst.Trades)
			entry.ReturnPct = inst.ReturnPct
		}
		rec.Instruments = append(rec.Instruments, entry)
	}

	if n := len(result.EquitySamples); n > 0 {
		rec.FinalCapital = result.EquitySamples[n-1]
	} else {
		rec.FinalCapital = initialCapital
	}

	return rec
}

// WriteJSON writes a record to path, creating parent directories as needed.
func WriteJSON(rec Record, path string) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	return os.WriteFile(path, data, 0644)
}

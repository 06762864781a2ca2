package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/ibexquant/swing-backtest/pkg/types"
)

// CSVProvider implements Provider for OHLCV CSV files.
type CSVProvider struct {
	format ColumnMapping
}

// NewCSVProvider creates a provider for the default daily-equity format.
func NewCSVProvider() *CSVProvider {
	return &CSVProvider{format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a provider for a custom column layout.
func NewCSVProviderWithFormat(format ColumnMapping) *CSVProvider {
	return &CSVProvider{format: format}
}

// Name returns the provider name.
func (p *CSVProvider) Name() string {
	return "CSV Provider"
}

// Load reads a CSV file into a series. Malformed rows are logged and
// skipped; structural errors fail the load.
func (p *CSVProvider) Load(source string) (types.Series, error) {
	file, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", source, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("read header of %s: %w", source, err)
	}

	var series types.Series

	lineNum := 1
	for {
		record, err := reader.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("read %s line %d: %w", source, lineNum, err)
		}
		lineNum++

		if len(record) < p.format.MinColumns {
			log.Printf("⚠️ Insufficient columns at line %d (expected %d, got %d), skipping", lineNum, p.format.MinColumns, len(record))
			continue
		}

		timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
		if err != nil {
			log.Printf("⚠️ Invalid timestamp '%s' at line %d, skipping: %v", record[p.format.TimestampCol], lineNum, err)
			continue
		}

		bar, ok := p.parseBar(record, lineNum)
		if !ok {
			continue
		}
		bar.Timestamp = timestamp

		series = append(series, bar)
	}

	return series, nil
}

func (p *CSVProvider) parseBar(record []string, lineNum int) (types.Bar, bool) {
	var bar types.Bar

	open, err := strconv.ParseFloat(record[p.format.OpenCol], 64)
	if err != nil {
		log.Printf("⚠️ Invalid open price '%s' at line %d, skipping: %v", record[p.format.OpenCol], lineNum, err)
		return bar, false
	}

	high, err := strconv.ParseFloat(record[p.format.HighCol], 64)
	if err != nil {
		log.Printf("⚠️ Invalid high price '%s' at line %d, skipping: %v", record[p.format.HighCol], lineNum, err)
		return bar, false
	}

	low, err := strconv.ParseFloat(record[p.format.LowCol], 64)
	if err != nil {
		log.Printf("⚠️ Invalid low price '%s' at line %d, skipping: %v", record[p.format.LowCol], lineNum, err)
		return bar, false
	}

	closePrice, err := strconv.ParseFloat(record[p.format.CloseCol], 64)
	if err != nil {
		log.Printf("⚠️ Invalid close price '%s' at line %d, skipping: %v", record[p.format.CloseCol], lineNum, err)
		return bar, false
	}

	volume, err := strconv.ParseFloat(record[p.format.VolumeCol], 64)
	if err != nil {
		log.Printf("⚠️ Invalid volume '%s' at line %d, skipping: %v", record[p.format.VolumeCol], lineNum, err)
		return bar, false
	}

	bar = types.Bar{Open: open, High: high, Low: low, Close: closePrice, Volume: volume}

	if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
		log.Printf("⚠️ Invalid price data (negative or zero) at line %d, skipping", lineNum)
		return types.Bar{}, false
	}
	if bar.High < bar.Open || bar.High < bar.Close || bar.High < bar.Low {
		log.Printf("⚠️ High below other prices at line %d, skipping", lineNum)
		return types.Bar{}, false
	}
	if bar.Low > bar.Open || bar.Low > bar.Close {
		log.Printf("⚠️ Low above other prices at line %d, skipping", lineNum)
		return types.Bar{}, false
	}

	return bar, true
}

// Validate checks the integrity of a loaded series before it reaches an
// engine. The engine assumes a clean series and never re-validates per bar.
func (p *CSVProvider) Validate(series types.Series) error {
	if len(series) == 0 {
		return fmt.Errorf("no data provided")
	}

	for i, bar := range series {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}

		if bar.High < bar.Low {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) cannot be less than low (%.4f)",
				i, bar.High, bar.Low)
		}

		if bar.High < bar.Open || bar.High < bar.Close {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) must be >= open (%.4f) and close (%.4f)",
				i, bar.High, bar.Open, bar.Close)
		}

		if bar.Low > bar.Open || bar.Low > bar.Close {
			return fmt.Errorf("invalid price data at index %d: low (%.4f) must be <= open (%.4f) and close (%.4f)",
				i, bar.Low, bar.Open, bar.Close)
		}

		if i > 0 && !bar.Timestamp.After(series[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d: timestamps must be strictly ascending", i)
		}
	}

	return nil
}

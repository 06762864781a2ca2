package data

import (
	"time"

	"github.com/ibexquant/swing-backtest/pkg/types"
)

// Provider loads a historical series from some source. The engine never
// fetches data itself; a provider runs before any engine is constructed.
type Provider interface {
	// Load loads the series for the given source (a file path for CSV).
	Load(source string) (types.Series, error)

	// Validate checks the integrity of a loaded series: positive prices,
	// consistent high/low ranges, ascending timestamps.
	Validate(series types.Series) error

	// Name returns the provider name for log output.
	Name() string
}

// ColumnMapping defines the column positions and date layout of a CSV format.
type ColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches daily equity exports: Date,Open,High,Low,Close,Volume.
var DefaultCSVFormat = ColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02",
}

// FilterByDateRange keeps the bars inside [start, end].
func FilterByDateRange(series types.Series, start, end time.Time) types.Series {
	filtered := make(types.Series, 0, len(series))
	for _, bar := range series {
		if bar.Timestamp.Before(start) || bar.Timestamp.After(end) {
			continue
		}
		filtered = append(filtered, bar)
	}
	return filtered
}

// FilterTrailing keeps the bars inside the trailing period ending at the last
// bar's timestamp.
func FilterTrailing(series types.Series, period time.Duration) types.Series {
	if len(series) == 0 || period <= 0 {
		return series
	}
	cutoff := series[len(series)-1].Timestamp.Add(-period)
	return FilterByDateRange(series, cutoff, series[len(series)-1].Timestamp)
}

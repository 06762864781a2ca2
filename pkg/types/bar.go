package types

import "time"

// Bar is one OHLCV observation for a fixed period. Bars are immutable once
// produced by a data provider.
type Bar struct {
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
	Timestamp time.Time
}

// Series is a time-ascending sequence of bars with no duplicate timestamps.
type Series []Bar

// Last returns the most recent bar of the series.
func (s Series) Last() Bar {
	return s[len(s)-1]
}

// Closes extracts the close prices in series order.
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, b := range s {
		closes[i] = b.Close
	}
	return closes
}

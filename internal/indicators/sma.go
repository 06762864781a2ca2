package indicators

import "math"

// SMA returns the simple moving average of the last period values. The
// second return is false when there are not enough values.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}

	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

// Volatility is the coefficient of variation of the values, as a percentage.
// It is the instrument filter used by the sweep and the trend strategy: a
// series too quiet to move a stop's distance is not worth simulating.
func Volatility(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	if mean == 0 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return math.Sqrt(variance) / mean * 100
}

package backtest

import (
	"math/rand"
	"sort"
)

// MonteCarloResult is the outcome of one resampled trade sequence.
type MonteCarloResult struct {
	FinalCapital float64
	MaxDrawdown  float64
}

// MonteCarloSummary condenses a set of resampled runs into capital and
// drawdown percentiles.
type MonteCarloSummary struct {
	CapitalP5     float64
	CapitalMedian float64
	CapitalP95    float64

	DrawdownMedianPct float64
	DrawdownP95Pct    float64
	DrawdownWorstPct  float64
}

// MonteCarloR reruns the realized R-multiples in shuffled order, compounding
// a fixed fraction of the running capital per trade. Trade order is the only
// thing resampled; the R distribution itself is taken as given. Pass a seeded
// rng for reproducible sweeps.
func MonteCarloR(rs []float64, initialCapital, riskPct float64, iterations int, rng *rand.Rand) []MonteCarloResult {
	results := make([]MonteCarloResult, 0, iterations)
	shuffled := make([]float64, len(rs))

	for i := 0; i < iterations; i++ {
		copy(shuffled, rs)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		capital := initialCapital
		peak := capital
		maxDD := 0.0

		for _, r := range shuffled {
			capital += capital * riskPct * r

			if capital > peak {
				peak = capital
			}
			if peak > 0 {
				if dd := (peak - capital) / peak; dd > maxDD {
					maxDD = dd
				}
			}
		}

		results = append(results, MonteCarloResult{FinalCapital: capital, MaxDrawdown: maxDD})
	}

	return results
}

// SummarizeMonteCarlo reduces resampled runs to percentile bands.
func SummarizeMonteCarlo(results []MonteCarloResult) MonteCarloSummary {
	if len(results) == 0 {
		return MonteCarloSummary{}
	}

	capitals := make([]float64, len(results))
	drawdowns := make([]float64, len(results))
	for i, r := range results {
		capitals[i] = r.FinalCapital
		drawdowns[i] = r.MaxDrawdown
	}
	sort.Float64s(capitals)
	sort.Float64s(drawdowns)

	return MonteCarloSummary{
		CapitalP5:     percentile(capitals, 5),
		CapitalMedian: percentile(capitals, 50),
		CapitalP95:    percentile(capitals, 95),

		DrawdownMedianPct: percentile(drawdowns, 50) * 100,
		DrawdownP95Pct:    percentile(drawdowns, 95) * 100,
		DrawdownWorstPct:  drawdowns[len(drawdowns)-1] * 100,
	}
}

// percentile interpolates linearly over an already sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	pos := p / 100 * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

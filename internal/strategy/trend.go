package strategy

import (
	"github.com/ibexquant/swing-backtest/internal/indicators"
	"github.com/ibexquant/swing-backtest/pkg/types"
)

const (
	fastPeriod = 20
	slowPeriod = 50

	// stopDistancePct places the initial stop 2% below the entry close.
	stopDistancePct = 0.02

	// volatilityWindow is the minimum history before the volatility filter
	// has anything meaningful to say.
	volatilityWindow = 20
)

// TrendFollow is the reference long-only strategy: enter when the close sits
// above the 20-bar average and that sits above the 50-bar average, with the
// stop a fixed percentage below the close. Instruments whose close-price
// coefficient of variation is below MinVolatilityPct are filtered out bar by
// bar.
type TrendFollow struct {
	MinVolatilityPct float64
}

// NewTrendFollow creates the reference strategy with the given volatility
// floor. A floor of 0 disables the filter.
func NewTrendFollow(minVolatilityPct float64) *TrendFollow {
	return &TrendFollow{MinVolatilityPct: minVolatilityPct}
}

func (s *TrendFollow) Name() string {
	return "trend-follow"
}

// Evaluate implements Strategy.
func (s *TrendFollow) Evaluate(history types.Series, positionOpen bool) Decision {
	if positionOpen {
		return Wait()
	}
	if len(history) < slowPeriod {
		return Wait()
	}

	closes := history.Closes()

	if s.MinVolatilityPct > 0 && len(closes) >= volatilityWindow {
		if indicators.Volatility(closes) < s.MinVolatilityPct {
			return Wait()
		}
	}

	price := closes[len(closes)-1]
	fast, ok := indicators.SMA(closes, fastPeriod)
	if !ok {
		return Wait()
	}
	slow, ok := indicators.SMA(closes, slowPeriod)
	if !ok {
		return Wait()
	}

	if price > fast && fast > slow {
		return Enter(price, price*(1-stopDistancePct))
	}

	return Wait()
}

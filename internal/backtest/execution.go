package backtest

// ExecutionModel converts theoretical prices into realistic fills. Slippage
// scales with recent volatility (ATR) so costs rise during volatile breakouts
// and gaps, with a price-proportional floor so quiet low-ATR instruments never
// fill at zero cost. Commission is charged on the slipped price.
//
// The model is stateless: both methods are pure functions of their inputs and
// never fail. Validating the ATR is the caller's responsibility.
type ExecutionModel struct {
	CommissionPct  float64
	SlippageATRPct float64
	SlippageMinPct float64
}

// NewExecutionModel returns a model with the given cost percentages.
func NewExecutionModel(commissionPct, slippageATRPct, slippageMinPct float64) ExecutionModel {
	return ExecutionModel{
		CommissionPct:  commissionPct,
		SlippageATRPct: slippageATRPct,
		SlippageMinPct: slippageMinPct,
	}
}

// Enter simulates a buy fill. Slippage and commission both raise the
// effective cost, so the fill is always worse than the theoretical price.
func (m ExecutionModel) Enter(theoretical, atr float64) float64 {
	fill := theoretical + m.slippage(theoretical, atr)
	return fill + fill*m.CommissionPct
}

// Exit simulates a sell fill, symmetric to Enter but subtractive: the seller
// always receives less than the theoretical price.
func (m ExecutionModel) Exit(theoretical, atr float64) float64 {
	fill := theoretical - m.slippage(theoretical, atr)
	return fill - fill*m.CommissionPct
}

func (m ExecutionModel) slippage(price, atr float64) float64 {
	floor := price * m.SlippageMinPct
	scaled := atr * m.SlippageATRPct
	if scaled > floor {
		return scaled
	}
	return floor
}

package backtest

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRisk is returned when a trade would be created with a stop at or
// above its entry price. The engine treats it as "no trade this bar".
var ErrInvalidRisk = errors.New("invalid trade: non-positive risk")

// ExitReason records why a position left the market.
type ExitReason string

const (
	ExitStop   ExitReason = "STOP"
	ExitTarget ExitReason = "TARGET"
)

// Trade is one long round-trip. It is mutable only through Close, and only
// once; after that every field is frozen.
type Trade struct {
	EntryPrice float64
	StopPrice  float64
	Size       int
	EntryTime  time.Time

	ExitPrice  float64
	ExitTime   time.Time
	ExitReason ExitReason

	// Risk is the initial per-share risk distance (entry - stop). It is fixed
	// at creation and never recomputed, even after the stop moves.
	Risk float64

	// Result is the realized PnL in account currency, R the result expressed
	// in multiples of the initial risk. Both are set on Close.
	Result float64
	R      float64

	Open bool
}

// NewTrade creates an open trade. The stop must sit strictly below the entry;
// anything else is ErrInvalidRisk.
func NewTrade(entry, stop float64, size int, entryTime time.Time) (*Trade, error) {
	risk := entry - stop
	if risk <= 0 {
		return nil, fmt.Errorf("%w (entry=%.4f, stop=%.4f)", ErrInvalidRisk, entry, stop)
	}

	return &Trade{
		EntryPrice: entry,
		StopPrice:  stop,
		Size:       size,
		EntryTime:  entryTime,
		Risk:       risk,
		Open:       true,
	}, nil
}

// Close settles the trade at the given exit price. Closing an already closed
// trade is a no-op; a position may still be queried after its trade settled
// within the same bar pass.
func (t *Trade) Close(exitPrice float64, exitTime time.Time, reason ExitReason) {
	if !t.Open {
		return
	}

	t.ExitPrice = exitPrice
	t.ExitTime = exitTime
	t.ExitReason = reason

	t.Result = (exitPrice - t.EntryPrice) * float64(t.Size)
	t.R = (exitPrice - t.EntryPrice) / t.Risk

	t.Open = false
}

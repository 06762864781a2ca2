package strategy

import "github.com/ibexquant/swing-backtest/pkg/types"

// Action is the kind of decision a strategy can make for one bar.
type Action int

const (
	// ActionWait means no entry this bar.
	ActionWait Action = iota
	// ActionEnter means open a long position at Entry with a stop at Stop.
	ActionEnter
)

func (a Action) String() string {
	if a == ActionEnter {
		return "ENTER"
	}
	return "WAIT"
}

// Decision is a tagged entry decision. Entry and Stop are only meaningful for
// ActionEnter, and Stop must sit below Entry for the engine to honor it.
type Decision struct {
	Action Action
	Entry  float64
	Stop   float64
}

// Wait is the no-entry decision.
func Wait() Decision {
	return Decision{Action: ActionWait}
}

// Enter builds an entry decision at the given levels.
func Enter(entry, stop float64) Decision {
	return Decision{Action: ActionEnter, Entry: entry, Stop: stop}
}

// Strategy evaluates the bar history up to "now" and decides whether to
// enter. history is a forward-only prefix; implementations must not look past
// its final bar. A strategy must return Wait while a position is open.
type Strategy interface {
	Evaluate(history types.Series, positionOpen bool) Decision
	Name() string
}

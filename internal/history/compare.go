package history

// Diff is the movement between two consecutive runs.
type Diff struct {
	Previous Run
	Current  Run

	ExpectancyDelta float64
	WinRateDelta    float64

	// Approved-list churn: symbols that entered or left since the previous run.
	NewlyApproved []string
	Dropped       []string
}

// Compare diffs the current run against a previous one.
func Compare(previous, current Run) Diff {
	d := Diff{
		Previous:        previous,
		Current:         current,
		ExpectancyDelta: current.ExpectancyR - previous.ExpectancyR,
		WinRateDelta:    current.WinRatePct - previous.WinRatePct,
	}

	prevSet := make(map[string]bool, len(previous.Approved))
	for _, s := range previous.Approved {
		prevSet[s] = true
	}
	currSet := make(map[string]bool, len(current.Approved))
	for _, s := range current.Approved {
		currSet[s] = true
	}

	for _, s := range current.Approved {
		if !prevSet[s] {
			d.NewlyApproved = append(d.NewlyApproved, s)
		}
	}
	for _, s := range previous.Approved {
		if !currSet[s] {
			d.Dropped = append(d.Dropped, s)
		}
	}

	return d
}

// Package reminder holds the escalation tracker: the pure state machine
// that decides, for a deadline-bearing item, which reminder level is due.
//
// Each item category carries an ordered ladder of lead-time thresholds
// (descending). The persisted "last reminder level" is a monotonically
// advancing integer 0..len(ladder); level N corresponds to ladder[N-1].
// One invocation advances an item by at most one level: an item that
// crossed several thresholds while the process was down catches up over
// successive polls rather than flooding every missed level at once.
package reminder

import "time"

// Threshold ladders per category, largest lead time first.
var (
	AssignmentThresholds = []time.Duration{
		72 * time.Hour,
		48 * time.Hour,
		24 * time.Hour,
		8 * time.Hour,
		3 * time.Hour,
		1 * time.Hour,
		0,
	}
	ExamThresholds = []time.Duration{
		168 * time.Hour,
		72 * time.Hour,
		24 * time.Hour,
		3 * time.Hour,
	}
	TaskThresholds = []time.Duration{
		24 * time.Hour,
		2 * time.Hour,
	}
	TodoThresholds = []time.Duration{
		1 * time.Hour,
	}

	// SemesterStartThresholds drives the one-shot "semester starting"
	// alert, with the inter-semester break's end date as pseudo-deadline.
	SemesterStartThresholds = []time.Duration{
		168 * time.Hour,
	}
)

// QueryHorizon returns the outer fetch horizon for a ladder: the largest
// threshold. Items due further out can never be due a reminder, so the
// poll query is bounded by now+horizon.
func QueryHorizon(thresholds []time.Duration) time.Duration {
	if len(thresholds) == 0 {
		return 0
	}
	return thresholds[0]
}

// NextLevel computes the next reminder level due for an item, given the
// current time, its deadline, and the persisted last-fired level. It
// returns (level, true) when exactly one new level should fire, and
// (0, false) otherwise.
//
// It is a pure function: calling it again with the same inputs yields the
// same answer, and it never fires a level at or below lastLevel, so a
// persisted level can only grow. Once lastLevel covers the whole ladder
// the item is terminal.
func NextLevel(now, deadline time.Time, lastLevel int, thresholds []time.Duration) (int, bool) {
	for level := lastLevel + 1; level <= len(thresholds); level++ {
		threshold := thresholds[level-1]
		if !now.Before(deadline.Add(-threshold)) {
			return level, true
		}
	}
	return 0, false
}

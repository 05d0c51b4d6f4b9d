package anneal

import (
	"errors"
	"fmt"

	"github.com/TimothyStiles/repack/checks"
)

// ErrScheduleInvalid marks a temperature schedule that is not strictly
// positive and strictly decreasing.
var ErrScheduleInvalid = errors.New("invalid temperature schedule")

// Schedule is the ordered sequence of temperatures controlling acceptance
// over a run. Temperatures must be strictly positive and strictly
// decreasing; the final temperature is a positive floor, never exactly
// zero. A schedule of zero or one entries degenerates to an (almost)
// greedy search.
type Schedule []float64

// Validate returns ErrScheduleInvalid (wrapped) unless the schedule is
// strictly positive and strictly decreasing.
func (s Schedule) Validate() error {
	if !checks.IsStrictlyPositive(s) {
		return fmt.Errorf("%w: temperatures must be strictly positive", ErrScheduleInvalid)
	}
	if !checks.IsStrictlyDecreasing(s) {
		return fmt.Errorf("%w: temperatures must be strictly decreasing", ErrScheduleInvalid)
	}
	return nil
}

// Geometric builds the schedule initial, initial·alpha, initial·alpha², …
// down to (and including the first temperature at or below) final. alpha
// must be in (0, 1) and 0 < final ≤ initial.
func Geometric(initial, final, alpha float64) (Schedule, error) {
	if !(initial > 0) || !(final > 0) || final > initial {
		return nil, fmt.Errorf("%w: need 0 < final ≤ initial, got final=%v initial=%v",
			ErrScheduleInvalid, final, initial)
	}
	if !(alpha > 0) || alpha >= 1 {
		return nil, fmt.Errorf("%w: cooling factor must be in (0,1), got %v",
			ErrScheduleInvalid, alpha)
	}
	var s Schedule
	for t := initial; ; t *= alpha {
		s = append(s, t)
		if t <= final {
			return s, nil
		}
	}
}

package scheduler

import (
	"time"

	"github.com/renoplan/renoplan/internal/domain"
)

// horizonOrigin is an arbitrary fixed date used when only the relative plan
// length matters, not the calendar placement.
var horizonOrigin = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// Horizon returns the number of days from startDate to the latest scheduled
// end across all windows. An empty plan has a zero horizon.
func Horizon(windows map[string]Window, startDate time.Time) int {
	var latest time.Time
	for _, w := range windows {
		if w.End.After(latest) {
			latest = w.End
		}
	}
	if latest.IsZero() || !latest.After(startDate) {
		return 0
	}
	return int(latest.Sub(startDate).Hours() / 24)
}

// TotalDays is the longest path through the given task set: the plan horizon
// when scheduling from a fixed origin. Tasks can run in parallel, so this is
// the technically correct total-duration figure, not a sum of durations.
func TotalDays(tasks []*domain.Task, deps []domain.Dependency) (int, error) {
	windows, err := Schedule(tasks, deps, horizonOrigin)
	if err != nil {
		return 0, err
	}
	return Horizon(windows, horizonOrigin), nil
}

package schedule

import (
	"time"

	"github.com/orplan/orplan/internal/platform/apperr"
)

// View selects the granularity of the visible window.
type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

// Range is an inclusive window; End carries the final millisecond of the
// period.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// lastMillisecond of the day d.
func endOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 23, 59, 59, int(999*time.Millisecond), d.Location())
}

func startOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// ResolveRange computes the visible window around ref. Weeks run Monday
// through Sunday. The result is always valid and non-empty.
func ResolveRange(ref time.Time, view View) (Range, error) {
	switch view {
	case ViewDay:
		return Range{Start: startOfDay(ref), End: endOfDay(ref)}, nil
	case ViewWeek:
		offset := int(time.Monday - ref.Weekday())
		if ref.Weekday() == time.Sunday {
			offset = -6
		}
		start := startOfDay(ref.AddDate(0, 0, offset))
		return Range{Start: start, End: endOfDay(start.AddDate(0, 0, 6))}, nil
	case ViewMonth:
		y, m, _ := ref.Date()
		start := time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
		// Day 0 of the following month is the last day of this one.
		last := time.Date(y, m+1, 0, 0, 0, 0, 0, ref.Location())
		return Range{Start: start, End: endOfDay(last)}, nil
	default:
		return Range{}, apperr.Validation("unknown view: %s", view)
	}
}

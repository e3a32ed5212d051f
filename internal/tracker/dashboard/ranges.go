package dashboard

import (
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dates"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"
)

type Range string

const (
	RangeAll   Range = "all"
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
)

// ParseRange maps unknown values to RangeAll.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeWeek:
		return RangeWeek
	case RangeMonth:
		return RangeMonth
	default:
		return RangeAll
	}
}

// FilterForRange keeps the workouts in the range: week is today-6 at midnight through now,
// month is the current calendar month. Entries with unreadable dates only show up in RangeAll.
func FilterForRange(list []workouts.Workout, r Range, now time.Time, loc *time.Location) []workouts.Workout {
	filtered := make([]workouts.Workout, 0, len(list))
	switch r {
	case RangeWeek:
		start := dates.AddDays(dates.StartOfDay(now, loc), -6)
		for _, w := range list {
			d, err := dates.Parse(w.Date, loc)
			if err != nil {
				continue
			}
			if !d.Before(start) && !d.After(now) {
				filtered = append(filtered, w)
			}
		}
	case RangeMonth:
		localNow := now.In(loc)
		for _, w := range list {
			d, err := dates.Parse(w.Date, loc)
			if err != nil {
				continue
			}
			if d.Year() == localNow.Year() && d.Month() == localNow.Month() {
				filtered = append(filtered, w)
			}
		}
	default:
		filtered = append(filtered, list...)
	}
	return filtered
}

// countThisWeek counts workouts from Sunday midnight of the current week through now.
func countThisWeek(list []workouts.Workout, now time.Time, loc *time.Location) int {
	start := dates.StartOfWeek(now, loc)
	count := 0
	for _, w := range list {
		d, err := dates.Parse(w.Date, loc)
		if err != nil {
			continue
		}
		if !d.Before(start) && !d.After(now) {
			count++
		}
	}
	return count
}

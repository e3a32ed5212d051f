package dashboard

import (
	"sort"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dates"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"
)

type Streaks struct {
	Current int `json:"current"`
	Best    int `json:"best"`
}

// CalculateStreaks counts runs of consecutive calendar days with at least one workout.
// Current counts back from today and is 0 when today has no workout.
func CalculateStreaks(list []workouts.Workout, now time.Time, loc *time.Location) Streaks {
	daySet := make(map[string]bool, len(list))
	for _, w := range list {
		if d, ok := dates.Normalize(w.Date); ok {
			daySet[d] = true
		}
	}
	if len(daySet) == 0 {
		return Streaks{}
	}

	days := make([]string, 0, len(daySet))
	for d := range daySet {
		days = append(days, d)
	}
	sort.Strings(days)

	best, run := 1, 1
	prev, _ := dates.Parse(days[0], loc)
	for _, d := range days[1:] {
		curr, _ := dates.Parse(d, loc)
		if dates.DaysBetween(prev, curr) == 1 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
		prev = curr
	}

	current := 0
	cursor := dates.StartOfDay(now, loc)
	for daySet[dates.Format(cursor)] {
		current++
		cursor = dates.AddDays(cursor, -1)
	}

	return Streaks{
		Current: current,
		Best:    best,
	}
}

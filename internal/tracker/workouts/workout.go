package workouts

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dates"
)

var ErrWorkoutNotFound = errors.New("workout not found")

const (
	TypeStrength    = "Strength"
	TypeCardio      = "Cardio"
	TypeFlexibility = "Flexibility"
	TypeHIIT        = "HIIT"
	TypeSports      = "Sports"
	TypeOther       = "Other"

	// TypeAll in a filter matches every type.
	TypeAll = "All"
)

var Types = []string{
	TypeStrength,
	TypeCardio,
	TypeFlexibility,
	TypeHIIT,
	TypeSports,
	TypeOther,
}

const (
	msgRequiredFields = "Date, type, and exercise name are required."
	msgInvalidDate    = "Please enter a valid date."
	msgNegativeValues = "Values must be positive numbers."
)

// Workout is one log entry. WeightOrDuration is kilos for strength work and minutes for cardio.
type Workout struct {
	ID               string   `json:"id"`
	Date             string   `json:"date"`
	Type             string   `json:"type"`
	ExerciseName     string   `json:"exerciseName"`
	Sets             *int     `json:"sets"`
	Reps             *int     `json:"reps"`
	WeightOrDuration *float64 `json:"weightOrDuration"`
	Notes            string   `json:"notes"`
}

type View struct {
	Workout
	SetsReps string `json:"setsReps"`
}

func NewView(w Workout) View {
	return View{
		Workout:  w,
		SetsReps: SetsReps(w),
	}
}

// SetsReps renders "<sets> x <reps>", a missing or zero side shown as 0.
// With neither side set it renders a dash.
func SetsReps(w Workout) string {
	sets, reps := intOrZero(w.Sets), intOrZero(w.Reps)
	if sets == 0 && reps == 0 {
		return "–"
	}
	return strconv.Itoa(sets) + " x " + strconv.Itoa(reps)
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// normalize trims the text fields, normalizes the date and validates what the form requires.
func (w *Workout) normalize() error {
	w.Type = strings.TrimSpace(w.Type)
	w.ExerciseName = strings.TrimSpace(w.ExerciseName)
	w.Notes = strings.TrimSpace(w.Notes)

	if strings.TrimSpace(w.Date) == "" || w.Type == "" || w.ExerciseName == "" {
		return tracker.NewValidationError(msgRequiredFields)
	}
	date, ok := dates.Normalize(w.Date)
	if !ok {
		return tracker.NewValidationError(msgInvalidDate)
	}
	w.Date = date

	if (w.Sets != nil && *w.Sets < 0) || (w.Reps != nil && *w.Reps < 0) {
		return tracker.NewValidationError(msgNegativeValues)
	}
	if w.WeightOrDuration != nil {
		v := *w.WeightOrDuration
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return tracker.NewValidationError(msgNegativeValues)
		}
	}
	return nil
}

type ListParams struct {
	Type string
	From string
	To   string
}

func (p ListParams) matches(w Workout) bool {
	if p.Type != "" && p.Type != TypeAll && w.Type != p.Type {
		return false
	}
	if p.From != "" && w.Date < p.From {
		return false
	}
	if p.To != "" && w.Date > p.To {
		return false
	}
	return true
}

// Filter keeps the workouts matching params; From and To are inclusive.
func Filter(list []Workout, params ListParams) []Workout {
	filtered := make([]Workout, 0, len(list))
	for _, w := range list {
		if params.matches(w) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// SortByDateDesc orders newest first, keeping insertion order for equal dates.
func SortByDateDesc(list []Workout) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Date > list[j].Date
	})
}

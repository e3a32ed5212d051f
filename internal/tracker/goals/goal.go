package goals

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dates"
)

var ErrGoalNotFound = errors.New("goal not found")

const (
	msgRequiredFields = "Please fill in all required fields."
	msgInvalidValues  = "Values must be positive numbers."
	msgInvalidValue   = "Please enter a valid value."
	msgInvalidDate    = "Please enter a valid date."
)

type Goal struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	TargetValue  float64 `json:"targetValue"`
	CurrentValue float64 `json:"currentValue"`
	StartDate    string  `json:"startDate"`
	TargetDate   string  `json:"targetDate"`
	IsCompleted  bool    `json:"isCompleted"`
}

// AddRequest uses pointers so a missing number fails validation instead of reading as zero.
type AddRequest struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	TargetValue  *float64 `json:"targetValue"`
	CurrentValue *float64 `json:"currentValue"`
	StartDate    string   `json:"startDate"`
	TargetDate   string   `json:"targetDate"`
}

type ProgressRequest struct {
	CurrentValue *float64 `json:"currentValue"`
}

func validNumber(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0)
}

func (req AddRequest) toGoal() (Goal, error) {
	name := strings.TrimSpace(req.Name)
	category := strings.TrimSpace(req.Category)
	if name == "" || category == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.TargetDate) == "" {
		return Goal{}, tracker.NewValidationError(msgRequiredFields)
	}
	if !validNumber(req.TargetValue) || !validNumber(req.CurrentValue) ||
		*req.TargetValue <= 0 || *req.CurrentValue < 0 {
		return Goal{}, tracker.NewValidationError(msgInvalidValues)
	}
	startDate, ok := dates.Normalize(req.StartDate)
	if !ok {
		return Goal{}, tracker.NewValidationError(msgInvalidDate)
	}
	targetDate, ok := dates.Normalize(req.TargetDate)
	if !ok {
		return Goal{}, tracker.NewValidationError(msgInvalidDate)
	}
	return Goal{
		Name:         name,
		Category:     category,
		TargetValue:  *req.TargetValue,
		CurrentValue: *req.CurrentValue,
		StartDate:    startDate,
		TargetDate:   targetDate,
	}, nil
}

// Progress is round(current/target*100) clamped to [0, 100], and 0 for a non-positive target.
func Progress(g Goal) int {
	if g.TargetValue <= 0 {
		return 0
	}
	percent := math.Round(g.CurrentValue / g.TargetValue * 100)
	return int(math.Max(0, math.Min(100, percent)))
}

type View struct {
	Goal
	Progress    int    `json:"progress"`
	DaysLeft    *int   `json:"daysLeft"`
	StatusLabel string `json:"statusLabel"`
}

func NewView(g Goal, now time.Time, loc *time.Location) View {
	view := View{
		Goal:     g,
		Progress: Progress(g),
	}
	daysLeft, err := dates.DaysFromNow(g.TargetDate, now, loc)
	if err == nil {
		view.DaysLeft = &daysLeft
	}

	switch {
	case g.IsCompleted:
		view.StatusLabel = "Completed"
	case err == nil && daysLeft >= 0:
		view.StatusLabel = strconv.Itoa(daysLeft) + " days left"
	default:
		view.StatusLabel = "Past deadline"
	}
	return view
}

// SortForDisplay puts active goals first, then completed ones, each by ascending target date.
func SortForDisplay(list []Goal) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsCompleted != list[j].IsCompleted {
			return !list[i].IsCompleted
		}
		return list[i].TargetDate < list[j].TargetDate
	})
}

// ActiveGoal is the non-completed goal with the earliest target date.
func ActiveGoal(list []Goal) (Goal, bool) {
	var active Goal
	found := false
	for _, g := range list {
		if g.IsCompleted {
			continue
		}
		if !found || g.TargetDate < active.TargetDate {
			active = g
			found = true
		}
	}
	return active, found
}

func CompletedCount(list []Goal) int {
	count := 0
	for _, g := range list {
		if g.IsCompleted {
			count++
		}
	}
	return count
}

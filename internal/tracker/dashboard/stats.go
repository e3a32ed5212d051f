package dashboard

import (
	"math"
	"strconv"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"
)

const noActiveGoal = "No active goals"

type TypeCount struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	BarPercent float64 `json:"barPercent"`
}

type ActiveGoal struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Progress int    `json:"progress"`
}

type Stats struct {
	Range              Range                      `json:"range"`
	Greeting           string                     `json:"greeting"`
	WorkoutsThisWeek   int                        `json:"workoutsThisWeek"`
	TotalWorkouts      int                        `json:"totalWorkouts"`
	CurrentWeight      string                     `json:"currentWeight"`
	WorkoutsByType     []TypeCount                `json:"workoutsByType"`
	TopType            string                     `json:"topType"`
	TotalCardioMinutes int                        `json:"totalCardioMinutes"`
	TotalCardioLabel   string                     `json:"totalCardioLabel"`
	StrengthSets       int                        `json:"strengthSets"`
	StrengthReps       int                        `json:"strengthReps"`
	CurrentStreak      int                        `json:"currentStreak"`
	CurrentStreakLabel string                     `json:"currentStreakLabel"`
	BestStreak         int                        `json:"bestStreak"`
	BestStreakLabel    string                     `json:"bestStreakLabel"`
	ActiveGoal         ActiveGoal                 `json:"activeGoal"`
	NewAchievements    []achievements.Achievement `json:"newAchievements"`
}

type statsInput struct {
	Range    Range
	Workouts []workouts.Workout
	Goals    []goals.Goal
	Profile  profile.Profile
	Now      time.Time
	Loc      *time.Location
}

func dayLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// countByType keeps first-seen order; entries without a type are skipped.
func countByType(list []workouts.Workout) []TypeCount {
	index := make(map[string]int)
	var counts []TypeCount
	for _, w := range list {
		if w.Type == "" {
			continue
		}
		i, ok := index[w.Type]
		if !ok {
			i = len(counts)
			index[w.Type] = i
			counts = append(counts, TypeCount{Type: w.Type})
		}
		counts[i].Count++
	}

	maxCount := 0
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
	}
	for i := range counts {
		counts[i].BarPercent = float64(counts[i].Count) / float64(maxCount) * 100
	}
	if counts == nil {
		return []TypeCount{}
	}
	return counts
}

// topType is the first type reaching the maximal count.
func topType(counts []TypeCount) string {
	if len(counts) == 0 {
		return profile.Placeholder
	}
	top := counts[0]
	for _, c := range counts[1:] {
		if c.Count > top.Count {
			top = c
		}
	}
	return top.Type
}

func computeStats(in statsInput) Stats {
	filtered := FilterForRange(in.Workouts, in.Range, in.Now, in.Loc)
	counts := countByType(filtered)

	var cardioMinutes float64
	var sets, reps int
	for _, w := range filtered {
		switch w.Type {
		case workouts.TypeCardio:
			if w.WeightOrDuration != nil {
				cardioMinutes += *w.WeightOrDuration
			}
		case workouts.TypeStrength:
			setsOrOne := 1
			if w.Sets != nil && *w.Sets != 0 {
				sets += *w.Sets
				setsOrOne = *w.Sets
			}
			if w.Reps != nil {
				reps += *w.Reps * setsOrOne
			}
		}
	}
	cardioRounded := int(math.Round(cardioMinutes))

	streaks := CalculateStreaks(in.Workouts, in.Now, in.Loc)

	activeGoal := ActiveGoal{Name: noActiveGoal}
	if g, ok := goals.ActiveGoal(in.Goals); ok {
		activeGoal = ActiveGoal{
			ID:       g.ID,
			Name:     g.Name,
			Progress: goals.Progress(g),
		}
	}

	return Stats{
		Range:              in.Range,
		Greeting:           profile.Greeting(in.Profile.Name),
		WorkoutsThisWeek:   countThisWeek(in.Workouts, in.Now, in.Loc),
		TotalWorkouts:      len(filtered),
		CurrentWeight:      profile.CurrentWeightLabel(in.Profile),
		WorkoutsByType:     counts,
		TopType:            topType(counts),
		TotalCardioMinutes: cardioRounded,
		TotalCardioLabel:   strconv.Itoa(cardioRounded) + " min",
		StrengthSets:       sets,
		StrengthReps:       reps,
		CurrentStreak:      streaks.Current,
		CurrentStreakLabel: dayLabel(streaks.Current),
		BestStreak:         streaks.Best,
		BestStreakLabel:    dayLabel(streaks.Best),
		ActiveGoal:         activeGoal,
		NewAchievements:    []achievements.Achievement{},
	}
}

package achievements

// Summary is the all-time state the achievement predicates look at.
type Summary struct {
	TotalWorkouts  int `json:"totalWorkouts"`
	CompletedGoals int `json:"completedGoals"`
	CurrentStreak  int `json:"currentStreak"`
	BestStreak     int `json:"bestStreak"`
}

type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`

	condition func(s Summary) bool
}

func (a Achievement) Reached(s Summary) bool {
	return a.condition(s)
}

var catalog = []Achievement{
	{
		ID:          "firstWorkout",
		Title:       "First workout",
		Description: "You logged your very first workout. Nice start!",
		condition:   func(s Summary) bool { return s.TotalWorkouts >= 1 },
	},
	{
		ID:          "tenWorkouts",
		Title:       "10 workouts",
		Description: "You've logged 10 workouts. Consistency!",
		condition:   func(s Summary) bool { return s.TotalWorkouts >= 10 },
	},
	{
		ID:          "firstGoalCompleted",
		Title:       "Goal finisher",
		Description: "You completed your first goal.",
		condition:   func(s Summary) bool { return s.CompletedGoals >= 1 },
	},
	{
		ID:          "streak3",
		Title:       "3-day streak",
		Description: "Trained 3 days in a row.",
		condition:   func(s Summary) bool { return s.BestStreak >= 3 },
	},
	{
		ID:          "streak7",
		Title:       "7-day streak",
		Description: "A full week of training. Beast mode.",
		condition:   func(s Summary) bool { return s.BestStreak >= 7 },
	},
}

// Catalog returns the fixed badge list in display order.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}

func ByID(id string) (Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return Achievement{}, false
}

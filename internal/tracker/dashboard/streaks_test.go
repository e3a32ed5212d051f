package dashboard

import (
	"testing"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onDates(ds ...string) []workouts.Workout {
	list := make([]workouts.Workout, 0, len(ds))
	for i, d := range ds {
		list = append(list, workouts.Workout{ID: string(rune('a' + i)), Date: d, Type: workouts.TypeOther, ExerciseName: "x"})
	}
	return list
}

func TestCalculateStreaks(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, time.May, 10, 20, 0, 0, 0, loc)

	testCases := []struct {
		name string
		list []workouts.Workout
		want Streaks
	}{
		{name: "empty", list: nil, want: Streaks{Current: 0, Best: 0}},
		{name: "single today", list: onDates("2024-05-10"), want: Streaks{Current: 1, Best: 1}},
		{name: "single not today", list: onDates("2024-05-01"), want: Streaks{Current: 0, Best: 1}},
		{name: "today absent", list: onDates("2024-05-07", "2024-05-08", "2024-05-09"), want: Streaks{Current: 0, Best: 3}},
		{
			name: "ending today with duplicates",
			list: onDates("2024-05-08", "2024-05-09", "2024-05-09", "2024-05-10"),
			want: Streaks{Current: 3, Best: 3},
		},
		{
			name: "best run earlier",
			list: onDates("2024-04-01", "2024-04-02", "2024-04-03", "2024-04-04", "2024-05-09", "2024-05-10"),
			want: Streaks{Current: 2, Best: 4},
		},
		{
			name: "month boundary",
			list: onDates("2024-04-29", "2024-04-30", "2024-05-01"),
			want: Streaks{Current: 0, Best: 3},
		},
		{name: "unreadable dates ignored", list: onDates("garbage", "2024-05-10"), want: Streaks{Current: 1, Best: 1}},
		{name: "only unreadable", list: onDates("garbage"), want: Streaks{}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CalculateStreaks(tc.list, now, loc))
		})
	}
}

func TestCalculateStreaks_UsesConfiguredTimezone(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// 2024-05-10 20:00 UTC is already 2024-05-11 in Tokyo
	now := time.Date(2024, time.May, 10, 20, 0, 0, 0, time.UTC)
	list := onDates("2024-05-11")

	assert.Equal(t, Streaks{Current: 1, Best: 1}, CalculateStreaks(list, now, tokyo))
	assert.Equal(t, Streaks{Current: 0, Best: 1}, CalculateStreaks(list, now, time.UTC))
}

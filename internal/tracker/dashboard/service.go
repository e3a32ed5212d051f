package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type workoutsSource interface {
	All(ctx context.Context) []workouts.Workout
}

type goalsSource interface {
	All(ctx context.Context) []goals.Goal
}

type profileSource interface {
	Get(ctx context.Context) profile.View
}

type achievementsUnlocker interface {
	CheckAndUnlock(ctx context.Context, summary achievements.Summary) ([]achievements.Achievement, error)
}

type NewServiceParams struct {
	Workouts     workoutsSource
	Goals        goalsSource
	Profile      profileSource
	Achievements achievementsUnlocker
	Now          func() time.Time
	Location     *time.Location
}

// Service derives the dashboard and the all-time achievement summary from the stored lists.
type Service struct {
	workouts     workoutsSource
	goals        goalsSource
	profile      profileSource
	achievements achievementsUnlocker
	now          func() time.Time
	loc          *time.Location
}

func NewService(params NewServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		workouts:     params.Workouts,
		goals:        params.Goals,
		profile:      params.Profile,
		achievements: params.Achievements,
		now:          now,
		loc:          loc,
	}
}

func (s *Service) summary(allWorkouts []workouts.Workout, allGoals []goals.Goal) achievements.Summary {
	streaks := CalculateStreaks(allWorkouts, s.now(), s.loc)
	return achievements.Summary{
		TotalWorkouts:  len(allWorkouts),
		CompletedGoals: goals.CompletedCount(allGoals),
		CurrentStreak:  streaks.Current,
		BestStreak:     streaks.Best,
	}
}

// Summary is the all-time state that achievements are judged on.
func (s *Service) Summary(ctx context.Context) achievements.Summary {
	return s.summary(s.workouts.All(ctx), s.goals.All(ctx))
}

// EvaluateAchievements unlocks whatever the current all-time summary has earned.
func (s *Service) EvaluateAchievements(ctx context.Context) (_ []achievements.Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.achievements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	unlocked, err := s.achievements.CheckAndUnlock(ctx, s.Summary(ctx))
	if err != nil {
		return nil, fmt.Errorf("check achievements: %w", err)
	}
	span.SetAttributes(attribute.Int("achievements.unlocked", len(unlocked)))
	return unlocked, nil
}

// Dashboard computes the stats for r. Achievements are evaluated on the way, and a failure
// there is logged without failing the dashboard.
func (s *Service) Dashboard(ctx context.Context, r Range) Stats {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.dashboard.stats")
	defer span.End()
	span.SetAttributes(attribute.String("range", string(r)))

	allWorkouts := s.workouts.All(ctx)
	allGoals := s.goals.All(ctx)

	stats := computeStats(statsInput{
		Range:    r,
		Workouts: allWorkouts,
		Goals:    allGoals,
		Profile:  s.profile.Get(ctx).Profile,
		Now:      s.now(),
		Loc:      s.loc,
	})

	unlocked, err := s.achievements.CheckAndUnlock(ctx, s.summary(allWorkouts, allGoals))
	if err != nil {
		log.Errorf("dashboard: failed to check achievements: %s", err)
	} else if len(unlocked) > 0 {
		stats.NewAchievements = unlocked
	}

	return stats
}

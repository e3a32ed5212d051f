package mcp

import (
	"context"

	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dashboard"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"
)

type dashboardProvider interface {
	Dashboard(ctx context.Context, r dashboard.Range) dashboard.Stats
}

type workoutsLister interface {
	List(ctx context.Context, params workouts.ListParams) []workouts.View
}

type goalsLister interface {
	List(ctx context.Context) []goals.View
}

type profileProvider interface {
	Get(ctx context.Context) profile.View
}

type achievementsLister interface {
	Unlocked(ctx context.Context) []achievements.Achievement
}

// contextService is what the tool handlers read from. Used by Handler for testability.
type contextService interface {
	Dashboard(ctx context.Context, r dashboard.Range) dashboard.Stats
	ListWorkouts(ctx context.Context, params workouts.ListParams) []workouts.View
	ListGoals(ctx context.Context) []goals.View
	Profile(ctx context.Context) profile.View
	Achievements(ctx context.Context) achievements.ListResponse
}

type ContextServiceParams struct {
	Dashboard    dashboardProvider
	Workouts     workoutsLister
	Goals        goalsLister
	Profile      profileProvider
	Achievements achievementsLister
}

// ContextService exposes the tracker state to MCP clients, read-only.
type ContextService struct {
	dashboard    dashboardProvider
	workouts     workoutsLister
	goals        goalsLister
	profile      profileProvider
	achievements achievementsLister
}

func NewContextService(params ContextServiceParams) *ContextService {
	return &ContextService{
		dashboard:    params.Dashboard,
		workouts:     params.Workouts,
		goals:        params.Goals,
		profile:      params.Profile,
		achievements: params.Achievements,
	}
}

func (s *ContextService) Dashboard(ctx context.Context, r dashboard.Range) dashboard.Stats {
	return s.dashboard.Dashboard(ctx, r)
}

func (s *ContextService) ListWorkouts(ctx context.Context, params workouts.ListParams) []workouts.View {
	return s.workouts.List(ctx, params)
}

func (s *ContextService) ListGoals(ctx context.Context) []goals.View {
	return s.goals.List(ctx)
}

func (s *ContextService) Profile(ctx context.Context) profile.View {
	return s.profile.Get(ctx)
}

// Achievements returns the unlocked badges in catalog order, with the catalog size.
func (s *ContextService) Achievements(ctx context.Context) achievements.ListResponse {
	unlocked := s.achievements.Unlocked(ctx)
	return achievements.ListResponse{
		Achievements: unlocked,
		Total:        len(achievements.Catalog()),
		Unlocked:     len(unlocked),
	}
}

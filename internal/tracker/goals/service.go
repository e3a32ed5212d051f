package goals

import (
	"context"
	"fmt"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"

	"go.opentelemetry.io/otel/attribute"
)

type Service struct {
	repo *Repo
	now  func() time.Time
	loc  *time.Location
}

func NewService(repo *Repo, now func() time.Time, loc *time.Location) *Service {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		now:  now,
		loc:  loc,
	}
}

func (s *Service) Add(ctx context.Context, req AddRequest) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	g, err := req.toGoal()
	if err != nil {
		return View{}, err
	}
	added, err := s.repo.Add(ctx, g, s.now())
	if err != nil {
		return View{}, fmt.Errorf("add goal: %w", err)
	}
	span.SetAttributes(attribute.String("goal.id", added.ID))
	return NewView(added, s.now(), s.loc), nil
}

func (s *Service) UpdateProgress(ctx context.Context, id string, value *float64) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.progress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	if !validNumber(value) || *value < 0 {
		return View{}, tracker.NewValidationError(msgInvalidValue)
	}
	updated, err := s.repo.Modify(ctx, id, func(g *Goal) {
		g.CurrentValue = *value
	})
	if err != nil {
		return View{}, fmt.Errorf("update goal [%s] progress: %w", id, err)
	}
	return NewView(updated, s.now(), s.loc), nil
}

// Complete marks the goal done and fills its progress to the target.
func (s *Service) Complete(ctx context.Context, id string) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	updated, err := s.repo.Modify(ctx, id, func(g *Goal) {
		g.IsCompleted = true
		g.CurrentValue = g.TargetValue
	})
	if err != nil {
		return View{}, fmt.Errorf("complete goal [%s]: %w", id, err)
	}
	return NewView(updated, s.now(), s.loc), nil
}

func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete goal [%s]: %w", id, err)
	}
	return nil
}

// List returns every goal in display order.
func (s *Service) List(ctx context.Context) []View {
	list := s.repo.All(ctx)
	SortForDisplay(list)

	now := s.now()
	views := make([]View, 0, len(list))
	for _, g := range list {
		views = append(views, NewView(g, now, s.loc))
	}
	return views
}

func (s *Service) All(ctx context.Context) []Goal {
	return s.repo.All(ctx)
}

func (s *Service) ReplaceAll(ctx context.Context, list []Goal) error {
	return s.repo.ReplaceAll(ctx, list)
}

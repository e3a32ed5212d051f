package workouts

import (
	"context"
	"fmt"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

type Service struct {
	repo *Repo
	now  func() time.Time
}

func NewService(repo *Repo, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo: repo,
		now:  now,
	}
}

func (s *Service) Add(ctx context.Context, w Workout) (_ Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := w.normalize(); err != nil {
		return Workout{}, err
	}
	added, err := s.repo.Add(ctx, w, s.now())
	if err != nil {
		return Workout{}, fmt.Errorf("add workout: %w", err)
	}
	span.SetAttributes(attribute.String("workout.id", added.ID))
	return added, nil
}

func (s *Service) Update(ctx context.Context, id string, w Workout) (_ Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	if err := w.normalize(); err != nil {
		return Workout{}, err
	}
	w.ID = id
	if err := s.repo.Update(ctx, w); err != nil {
		return Workout{}, fmt.Errorf("update workout [%s]: %w", id, err)
	}
	return w, nil
}

func (s *Service) Delete(ctx context.Context, id string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete workout [%s]: %w", id, err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (Workout, error) {
	w, err := s.repo.Get(ctx, id)
	if err != nil {
		return Workout{}, fmt.Errorf("get workout [%s]: %w", id, err)
	}
	return w, nil
}

// List returns the filtered workouts, newest first.
func (s *Service) List(ctx context.Context, params ListParams) []View {
	_, span := tracing.GlobalTracer.Start(ctx, "service.workouts.list")
	defer span.End()

	filtered := Filter(s.repo.All(ctx), params)
	SortByDateDesc(filtered)

	views := make([]View, 0, len(filtered))
	for _, w := range filtered {
		views = append(views, NewView(w))
	}
	span.SetAttributes(attribute.Int("workouts.count", len(views)))
	return views
}

func (s *Service) All(ctx context.Context) []Workout {
	return s.repo.All(ctx)
}

func (s *Service) ReplaceAll(ctx context.Context, list []Workout) error {
	return s.repo.ReplaceAll(ctx, list)
}

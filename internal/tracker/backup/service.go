package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/profile"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	SourceHTTP   = "http"
	SourceWatch  = "watch"
	SourceCLI    = "cli"
	resultOK     = "ok"
	resultEmpty  = "empty"
	resultBad    = "invalid"
	resultFailed = "failed"
)

type profileRepo interface {
	Stored(ctx context.Context) *profile.Profile
	Save(ctx context.Context, p profile.Profile) error
}

type workoutsStore interface {
	All(ctx context.Context) []workouts.Workout
	ReplaceAll(ctx context.Context, list []workouts.Workout) error
}

type goalsStore interface {
	All(ctx context.Context) []goals.Goal
	ReplaceAll(ctx context.Context, list []goals.Goal) error
}

type achievementsStore interface {
	IDs(ctx context.Context) []string
	Replace(ctx context.Context, ids []string) error
}

type achievementsEvaluator interface {
	EvaluateAchievements(ctx context.Context) ([]achievements.Achievement, error)
}

type ImportResult struct {
	Message         string                     `json:"message"`
	Imported        []string                   `json:"imported"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
}

type NewServiceParams struct {
	Profile        profileRepo
	Workouts       workoutsStore
	Goals          goalsStore
	Achievements   achievementsStore
	Evaluator      achievementsEvaluator
	MetricsManager *metrics.Manager
}

type Service struct {
	profile        profileRepo
	workouts       workoutsStore
	goals          goalsStore
	achievements   achievementsStore
	evaluator      achievementsEvaluator
	metricsManager *metrics.Manager

	mutex sync.Mutex
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		profile:        params.Profile,
		workouts:       params.Workouts,
		goals:          params.Goals,
		achievements:   params.Achievements,
		evaluator:      params.Evaluator,
		metricsManager: params.MetricsManager,
	}
}

// Export renders the whole state as pretty-printed JSON.
func (s *Service) Export(ctx context.Context) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.backup.export")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	doc := Document{
		Profile:      s.profile.Stored(ctx),
		Workouts:     s.workouts.All(ctx),
		Goals:        s.goals.All(ctx),
		Achievements: s.achievements.IDs(ctx),
	}
	if doc.Workouts == nil {
		doc.Workouts = []workouts.Workout{}
	}
	if doc.Goals == nil {
		doc.Goals = []goals.Goal{}
	}
	if doc.Achievements == nil {
		doc.Achievements = []string{}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}
	span.SetAttributes(
		attribute.Int("backup.workouts", len(doc.Workouts)),
		attribute.Int("backup.goals", len(doc.Goals)),
	)
	return data, nil
}

// Import replaces each part present in text and re-evaluates achievements.
// Empty or malformed input returns ErrEmptyBackup / ErrInvalidBackup and leaves the state untouched.
func (s *Service) Import(ctx context.Context, source, text string) (_ ImportResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.backup.import")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("source", source))

	result := resultFailed
	defer func() {
		if err == nil {
			result = resultOK
		} else if errors.Is(err, ErrEmptyBackup) {
			result = resultEmpty
		} else if errors.Is(err, ErrInvalidBackup) {
			result = resultBad
		}
		if s.metricsManager != nil {
			s.metricsManager.CounterBackupImports.With(prometheus.Labels{"source": source, "result": result}).Inc()
		}
	}()

	p, err := parse(text)
	if err != nil {
		return ImportResult{}, err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if p.profile != nil {
		if err := s.profile.Save(ctx, *p.profile); err != nil {
			return ImportResult{}, fmt.Errorf("import profile: %w", err)
		}
	}
	if p.workouts != nil {
		if err := s.workouts.ReplaceAll(ctx, p.workouts); err != nil {
			return ImportResult{}, fmt.Errorf("import workouts: %w", err)
		}
	}
	if p.goals != nil {
		if err := s.goals.ReplaceAll(ctx, p.goals); err != nil {
			return ImportResult{}, fmt.Errorf("import goals: %w", err)
		}
	}
	if p.achievements != nil {
		if err := s.achievements.Replace(ctx, p.achievements); err != nil {
			return ImportResult{}, fmt.Errorf("import achievements: %w", err)
		}
	}

	newAchievements, evalErr := s.evaluator.EvaluateAchievements(ctx)
	if evalErr != nil {
		log.Errorf("backup import: failed to evaluate achievements: %s", evalErr)
	}
	if newAchievements == nil {
		newAchievements = []achievements.Achievement{}
	}

	parts := p.parts
	if parts == nil {
		parts = []string{}
	}
	log.Infof("backup imported from %s: %v", source, parts)

	return ImportResult{
		Message:         msgImported,
		Imported:        parts,
		NewAchievements: newAchievements,
	}, nil
}

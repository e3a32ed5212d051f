package achievements

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type Service struct {
	store          storage.Store
	metricsManager *metrics.Manager
	mutex          sync.Mutex
}

func NewService(store storage.Store, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		metricsManager: metricsManager,
	}
}

func (s *Service) unlockedIDs(ctx context.Context) []string {
	return storage.LoadJSON(ctx, s.store, storage.KeyAchievements, []string{})
}

// Unlocked lists the unlocked badges in catalog order.
func (s *Service) Unlocked(ctx context.Context) []Achievement {
	ids := s.unlockedIDs(ctx)
	unlocked := make([]Achievement, 0, len(ids))
	for _, a := range catalog {
		if slices.Contains(ids, a.ID) {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked
}

// CheckAndUnlock appends every catalog entry whose predicate now holds and that was
// not unlocked before. The set is written only when something new unlocked.
func (s *Service) CheckAndUnlock(ctx context.Context, summary Summary) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.achievements.check")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	ids, err := storage.LoadJSONForUpdate(ctx, s.store, storage.KeyAchievements, []string{})
	if err != nil {
		return nil, fmt.Errorf("load achievements: %w", err)
	}
	var newlyUnlocked []Achievement
	for _, a := range catalog {
		if slices.Contains(ids, a.ID) || !a.Reached(summary) {
			continue
		}
		ids = append(ids, a.ID)
		newlyUnlocked = append(newlyUnlocked, a)
	}

	if len(newlyUnlocked) == 0 {
		return nil, nil
	}

	if err := storage.SaveJSON(ctx, s.store, storage.KeyAchievements, ids); err != nil {
		return nil, fmt.Errorf("save achievements: %w", err)
	}

	for _, a := range newlyUnlocked {
		log.Infof("achievement unlocked: %s", a.Title)
		if s.metricsManager != nil {
			s.metricsManager.CounterAchievementsUnlocked.With(prometheus.Labels{"achievement": a.ID}).Inc()
		}
	}

	return newlyUnlocked, nil
}

// Replace overwrites the unlocked set, as a backup import does.
func (s *Service) Replace(ctx context.Context, ids []string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if ids == nil {
		ids = []string{}
	}
	if err := storage.SaveJSON(ctx, s.store, storage.KeyAchievements, ids); err != nil {
		return fmt.Errorf("replace achievements: %w", err)
	}
	return nil
}

// IDs returns the stored unlock set as is.
func (s *Service) IDs(ctx context.Context) []string {
	return s.unlockedIDs(ctx)
}

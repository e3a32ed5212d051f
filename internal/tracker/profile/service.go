package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
)

type OnboardingStatus struct {
	Required bool `json:"required"`
}

type OnboardingRequest struct {
	Name  string `json:"name"`
	Focus string `json:"focus"`
}

type Service struct {
	repo  *Repo
	mutex sync.Mutex
}

func NewService(repo *Repo) *Service {
	return &Service{
		repo: repo,
	}
}

func (s *Service) Get(ctx context.Context) View {
	_, span := tracing.GlobalTracer.Start(ctx, "service.profile.get")
	defer span.End()
	return NewView(s.repo.Get(ctx))
}

// Save overwrites the whole profile.
func (s *Service) Save(ctx context.Context, p Profile) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p.Name = strings.TrimSpace(p.Name)
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.repo.Save(ctx, p); err != nil {
		return View{}, fmt.Errorf("save profile: %w", err)
	}
	return NewView(p), nil
}

// OnboardingStatus reports whether the welcome flow still has to be shown.
// A profile that already has a name counts as onboarded and the flag is stored.
func (s *Service) OnboardingStatus(ctx context.Context) (_ OnboardingStatus, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.onboarding.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.repo.Onboarded(ctx) {
		return OnboardingStatus{Required: false}, nil
	}
	if s.repo.Get(ctx).Name != "" {
		if err := s.repo.SetOnboarded(ctx); err != nil {
			return OnboardingStatus{}, fmt.Errorf("set onboarded: %w", err)
		}
		log.Debug("profile has a name, onboarding marked as done")
		return OnboardingStatus{Required: false}, nil
	}
	return OnboardingStatus{Required: true}, nil
}

func (s *Service) CompleteOnboarding(ctx context.Context, req OnboardingRequest) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.onboarding.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	p, err := s.repo.GetForUpdate(ctx)
	if err != nil {
		return View{}, fmt.Errorf("get profile: %w", err)
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		p.Name = name
	}
	p.Focus = req.Focus

	if err := s.repo.Save(ctx, p); err != nil {
		return View{}, fmt.Errorf("save profile: %w", err)
	}
	if err := s.repo.SetOnboarded(ctx); err != nil {
		return View{}, fmt.Errorf("set onboarded: %w", err)
	}
	return NewView(p), nil
}

func (s *Service) SkipOnboarding(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.onboarding.skip")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := s.repo.SetOnboarded(ctx); err != nil {
		return fmt.Errorf("set onboarded: %w", err)
	}
	return nil
}

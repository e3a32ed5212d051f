package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
)

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type ThemeResponse struct {
	Theme string `json:"theme"`
}

type Service struct {
	store storage.Store
	mutex sync.Mutex
}

func NewService(store storage.Store) *Service {
	return &Service{
		store: store,
	}
}

// Theme returns the stored theme, light when unset or unknown.
func (s *Service) Theme(ctx context.Context) string {
	theme := storage.LoadJSON(ctx, s.store, storage.KeyTheme, ThemeLight)
	if theme != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (s *Service) SetTheme(ctx context.Context, theme string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.settings.theme.set")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if theme != ThemeLight && theme != ThemeDark {
		return tracker.NewValidationError("Theme must be light or dark.")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	if err := storage.SaveJSON(ctx, s.store, storage.KeyTheme, theme); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *Service) ToggleTheme(ctx context.Context) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.settings.theme.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	current, err := storage.LoadJSONForUpdate(ctx, s.store, storage.KeyTheme, ThemeLight)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	next := ThemeDark
	if current == ThemeDark {
		next = ThemeLight
	}
	if err := storage.SaveJSON(ctx, s.store, storage.KeyTheme, next); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return next, nil
}

package settings

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
	"github.com/purav-khanna/Fitness-Tracker/pkg"

	log "github.com/sirupsen/logrus"
)

type themeService interface {
	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, theme string) error
	ToggleTheme(ctx context.Context) (string, error)
}

type Handler struct {
	service themeService
}

func NewHandler(service themeService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.theme.get")
	defer span.End()

	pkg.WriteJSON(w, ThemeResponse{Theme: handler.service.Theme(ctx)}, http.StatusOK)
}

func (handler *Handler) HandleSetTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.theme.set")
	defer span.End()

	var req ThemeResponse
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("set theme, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid theme request", http.StatusBadRequest)
		return
	}

	if err := handler.service.SetTheme(ctx, req.Theme); err != nil {
		if tracker.WriteValidationError(w, err) {
			return
		}
		log.Errorf("failed to set theme [%s]: %s", req.Theme, err)
		http.Error(w, "failed to set theme", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, ThemeResponse{Theme: req.Theme}, http.StatusOK)
}

func (handler *Handler) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.settings.theme.toggle")
	defer span.End()

	theme, err := handler.service.ToggleTheme(ctx)
	if err != nil {
		log.Errorf("failed to toggle theme: %s", err)
		http.Error(w, "failed to toggle theme", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, ThemeResponse{Theme: theme}, http.StatusOK)
}

package achievements

import (
	"context"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/pkg"
)

type ListResponse struct {
	Achievements []Achievement `json:"achievements"`
	Total        int           `json:"total"`
	Unlocked     int           `json:"unlocked"`
}

type unlockedLister interface {
	Unlocked(ctx context.Context) []Achievement
}

type Handler struct {
	service unlockedLister
}

func NewHandler(service unlockedLister) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.achievements.list")
	defer span.End()

	unlocked := handler.service.Unlocked(ctx)
	pkg.WriteJSON(w, ListResponse{
		Achievements: unlocked,
		Total:        len(catalog),
		Unlocked:     len(unlocked),
	}, http.StatusOK)
}

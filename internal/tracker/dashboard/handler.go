package dashboard

import (
	"context"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/pkg"
)

type statsProvider interface {
	Dashboard(ctx context.Context, r Range) Stats
}

type Handler struct {
	service statsProvider
}

func NewHandler(service statsProvider) *Handler {
	return &Handler{
		service: service,
	}
}

// HandleDashboard serves /dashboard?range=all|week|month.
func (handler *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.dashboard")
	defer span.End()

	statsRange := ParseRange(r.URL.Query().Get("range"))
	pkg.WriteJSON(w, handler.service.Dashboard(ctx, statsRange), http.StatusOK)
}

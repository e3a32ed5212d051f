package goals

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=goals_test

type goalsService interface {
	Add(ctx context.Context, req AddRequest) (View, error)
	UpdateProgress(ctx context.Context, id string, value *float64) (View, error)
	Complete(ctx context.Context, id string) (View, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) []View
}

type achievementsChecker interface {
	EvaluateAchievements(ctx context.Context) ([]achievements.Achievement, error)
}

type MutationResponse struct {
	Goal            View                       `json:"goal"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
}

type DeleteResponse struct {
	DeletedID       string                     `json:"deletedId"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
}

type ListResponse struct {
	Goals []View `json:"goals"`
	Total int    `json:"total"`
}

type Handler struct {
	service        goalsService
	achievements   achievementsChecker
	metricsManager *metrics.Manager
}

func NewHandler(
	service goalsService,
	achievements achievementsChecker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		service:        service,
		achievements:   achievements,
		metricsManager: metricsManager,
	}
}

func (handler *Handler) newAchievements(ctx context.Context) []achievements.Achievement {
	unlocked, err := handler.achievements.EvaluateAchievements(ctx)
	if err != nil {
		log.Errorf("failed to evaluate achievements: %s", err)
		return []achievements.Achievement{}
	}
	if unlocked == nil {
		return []achievements.Achievement{}
	}
	return unlocked
}

func (handler *Handler) writeServiceError(w http.ResponseWriter, err error, op, id string) {
	if tracker.WriteValidationError(w, err) {
		return
	}
	if errors.Is(err, ErrGoalNotFound) {
		http.Error(w, "goal not found", http.StatusNotFound)
		return
	}
	log.Errorf("failed to %s goal [%s]: %s", op, id, err)
	http.Error(w, "failed to "+op+" goal", http.StatusInternalServerError)
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.add")
	defer span.End()

	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("add goal, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid goal", http.StatusBadRequest)
		return
	}

	added, err := handler.service.Add(ctx, req)
	if err != nil {
		handler.writeServiceError(w, err, "add", req.Name)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterGoalsAdded.Inc()
	}
	log.Debugf("goal added: %s [%s]", added.ID, added.Name)

	pkg.WriteJSON(w, MutationResponse{
		Goal:            added,
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusCreated)
}

func (handler *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.progress")
	defer span.End()

	id := mux.Vars(r)["id"]
	var req ProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("update goal progress, unmarshal json: %s", err)
		pkg.WriteMessage(w, msgInvalidValue, http.StatusBadRequest)
		return
	}

	updated, err := handler.service.UpdateProgress(ctx, id, req.CurrentValue)
	if err != nil {
		handler.writeServiceError(w, err, "update", id)
		return
	}

	pkg.WriteJSON(w, MutationResponse{
		Goal:            updated,
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusOK)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.complete")
	defer span.End()

	id := mux.Vars(r)["id"]
	completed, err := handler.service.Complete(ctx, id)
	if err != nil {
		handler.writeServiceError(w, err, "complete", id)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterGoalsCompleted.Inc()
	}
	log.Debugf("goal completed: %s [%s]", completed.ID, completed.Name)

	pkg.WriteJSON(w, MutationResponse{
		Goal:            completed,
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if err := handler.service.Delete(ctx, id); err != nil {
		handler.writeServiceError(w, err, "delete", id)
		return
	}

	pkg.WriteJSON(w, DeleteResponse{
		DeletedID:       id,
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.goals.list")
	defer span.End()

	list := handler.service.List(ctx)
	pkg.WriteJSON(w, ListResponse{
		Goals: list,
		Total: len(list),
	}, http.StatusOK)
}

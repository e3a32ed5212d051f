package workouts

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

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=workouts_test

type workoutsService interface {
	Add(ctx context.Context, w Workout) (Workout, error)
	Update(ctx context.Context, id string, w Workout) (Workout, error)
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (Workout, error)
	List(ctx context.Context, params ListParams) []View
}

type achievementsChecker interface {
	EvaluateAchievements(ctx context.Context) ([]achievements.Achievement, error)
}

type MutationResponse struct {
	Workout         View                       `json:"workout"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
}

type DeleteResponse struct {
	DeletedID       string                     `json:"deletedId"`
	NewAchievements []achievements.Achievement `json:"newAchievements"`
}

type ListResponse struct {
	Workouts []View `json:"workouts"`
	Total    int    `json:"total"`
}

type Handler struct {
	service        workoutsService
	achievements   achievementsChecker
	metricsManager *metrics.Manager
}

func NewHandler(
	service workoutsService,
	achievements achievementsChecker,
	metricsManager *metrics.Manager,
) *Handler {
	return &Handler{
		service:        service,
		achievements:   achievements,
		metricsManager: metricsManager,
	}
}

// newAchievements re-evaluates badges after a mutation. A failure here must not fail the mutation.
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

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.add")
	defer span.End()

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("add workout, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid workout", http.StatusBadRequest)
		return
	}

	added, err := handler.service.Add(ctx, workout)
	if err != nil {
		if tracker.WriteValidationError(w, err) {
			return
		}
		log.Errorf("failed to add workout [%s]: %s", workout.ExerciseName, err)
		http.Error(w, "failed to add workout", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterWorkoutsAdded.Inc()
	}
	log.Debugf("workout added: %s [%s]", added.ID, added.ExerciseName)

	pkg.WriteJSON(w, MutationResponse{
		Workout:         NewView(added),
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusCreated)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.update")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	var workout Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		log.Tracef("update workout, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid workout", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, id, workout)
	if err != nil {
		if tracker.WriteValidationError(w, err) {
			return
		}
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to update workout [%s]: %s", id, err)
		http.Error(w, "failed to update workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, MutationResponse{
		Workout:         NewView(updated),
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}

	if err := handler.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete workout [%s]: %s", id, err)
		http.Error(w, "failed to delete workout", http.StatusInternalServerError)
		return
	}

	log.Debugf("workout deleted: %s", id)
	pkg.WriteJSON(w, DeleteResponse{
		DeletedID:       id,
		NewAchievements: handler.newAchievements(ctx),
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	id := mux.Vars(r)["id"]
	workout, err := handler.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get workout [%s]: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, NewView(workout), http.StatusOK)
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.list")
	defer span.End()

	query := r.URL.Query()
	params := ListParams{
		Type: query.Get("type"),
		From: query.Get("from"),
		To:   query.Get("to"),
	}

	list := handler.service.List(ctx, params)
	pkg.WriteJSON(w, ListResponse{
		Workouts: list,
		Total:    len(list),
	}, http.StatusOK)
}

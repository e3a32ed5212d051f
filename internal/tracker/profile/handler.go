package profile

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/tracing"
	"github.com/purav-khanna/Fitness-Tracker/pkg"

	log "github.com/sirupsen/logrus"
)

type profileService interface {
	Get(ctx context.Context) View
	Save(ctx context.Context, p Profile) (View, error)
	OnboardingStatus(ctx context.Context) (OnboardingStatus, error)
	CompleteOnboarding(ctx context.Context, req OnboardingRequest) (View, error)
	SkipOnboarding(ctx context.Context) error
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	pkg.WriteJSON(w, handler.service.Get(ctx), http.StatusOK)
}

func (handler *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.save")
	defer span.End()

	var p Profile
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		log.Tracef("save profile, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid profile", http.StatusBadRequest)
		return
	}

	view, err := handler.service.Save(ctx, p)
	if err != nil {
		log.Errorf("failed to save profile: %s", err)
		http.Error(w, "failed to save profile", http.StatusInternalServerError)
		return
	}

	log.Debugf("profile saved for [%s]", view.Name)
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (handler *Handler) HandleOnboardingStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.onboarding.status")
	defer span.End()

	status, err := handler.service.OnboardingStatus(ctx)
	if err != nil {
		log.Errorf("failed to get onboarding status: %s", err)
		http.Error(w, "failed to get onboarding status", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, status, http.StatusOK)
}

func (handler *Handler) HandleCompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.onboarding.complete")
	defer span.End()

	var req OnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("complete onboarding, unmarshal json: %s", err)
		pkg.WriteMessage(w, "invalid onboarding request", http.StatusBadRequest)
		return
	}

	view, err := handler.service.CompleteOnboarding(ctx, req)
	if err != nil {
		log.Errorf("failed to complete onboarding: %s", err)
		http.Error(w, "failed to complete onboarding", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, view, http.StatusOK)
}

func (handler *Handler) HandleSkipOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.onboarding.skip")
	defer span.End()

	if err := handler.service.SkipOnboarding(ctx); err != nil {
		log.Errorf("failed to skip onboarding: %s", err)
		http.Error(w, "failed to skip onboarding", http.StatusInternalServerError)
		return
	}
	pkg.WriteJSON(w, OnboardingStatus{Required: false}, http.StatusOK)
}

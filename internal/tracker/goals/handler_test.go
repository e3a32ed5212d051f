package goals_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/purav-khanna/Fitness-Tracker/internal/telemetry/metrics"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/achievements"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_HandleAdd(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockgoalsService(ctrl)
	mockChecker := NewMockachievementsChecker(ctrl)
	metricsManager := metrics.NewTestManager()
	h := goals.NewHandler(mockService, mockChecker, metricsManager)

	mockService.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, req goals.AddRequest) (goals.View, error) {
			assert.Equal(t, "Lose 5kg", req.Name)
			require.NotNil(t, req.TargetValue)
			assert.Equal(t, float64(5), *req.TargetValue)
			return goals.View{Goal: goals.Goal{ID: "1", Name: req.Name}, StatusLabel: "10 days left"}, nil
		})
	mockChecker.EXPECT().EvaluateAchievements(gomock.Any()).Return(nil, nil)

	rr := httptest.NewRecorder()
	h.HandleAdd(rr, httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(
		`{"name":"Lose 5kg","category":"Weight","targetValue":5,"currentValue":0,"startDate":"2024-05-01","targetDate":"2024-06-01"}`,
	)))
	require.Equal(t, http.StatusCreated, rr.Code)

	var resp goals.MutationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "1", resp.Goal.ID)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterGoalsAdded))
}

func TestHandler_HandleAdd_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockgoalsService(ctrl)
	h := goals.NewHandler(mockService, NewMockachievementsChecker(ctrl), nil)

	mockService.EXPECT().
		Add(gomock.Any(), gomock.Any()).
		Return(goals.View{}, tracker.NewValidationError("Values must be positive numbers."))

	rr := httptest.NewRecorder()
	h.HandleAdd(rr, httptest.NewRequest(http.MethodPost, "/goals", strings.NewReader(`{"name":"x"}`)))
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Values must be positive numbers."}`, rr.Body.String())
}

func TestHandler_HandleComplete(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockgoalsService(ctrl)
	mockChecker := NewMockachievementsChecker(ctrl)
	metricsManager := metrics.NewTestManager()
	h := goals.NewHandler(mockService, mockChecker, metricsManager)

	finisher, _ := achievements.ByID("firstGoalCompleted")
	mockService.EXPECT().
		Complete(gomock.Any(), "7").
		Return(goals.View{Goal: goals.Goal{ID: "7", IsCompleted: true}, Progress: 100, StatusLabel: "Completed"}, nil)
	mockChecker.EXPECT().EvaluateAchievements(gomock.Any()).Return([]achievements.Achievement{finisher}, nil)

	req := mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/goals/7/complete", nil), map[string]string{"id": "7"})
	rr := httptest.NewRecorder()
	h.HandleComplete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp goals.MutationResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Completed", resp.Goal.StatusLabel)
	require.Len(t, resp.NewAchievements, 1)
	assert.Equal(t, "Goal finisher", resp.NewAchievements[0].Title)
	assert.Equal(t, float64(1), testutil.ToFloat64(metricsManager.CounterGoalsCompleted))

	mockService.EXPECT().Complete(gomock.Any(), "8").Return(goals.View{}, goals.ErrGoalNotFound)
	req = mux.SetURLVars(httptest.NewRequest(http.MethodPost, "/goals/8/complete", nil), map[string]string{"id": "8"})
	rr = httptest.NewRecorder()
	h.HandleComplete(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_HandleUpdateProgress(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockgoalsService(ctrl)
	mockChecker := NewMockachievementsChecker(ctrl)
	h := goals.NewHandler(mockService, mockChecker, nil)

	mockService.EXPECT().
		UpdateProgress(gomock.Any(), "3", gomock.Any()).
		DoAndReturn(func(_ any, _ string, value *float64) (goals.View, error) {
			require.NotNil(t, value)
			assert.Equal(t, 12.5, *value)
			return goals.View{Goal: goals.Goal{ID: "3", CurrentValue: *value}}, nil
		})
	mockChecker.EXPECT().EvaluateAchievements(gomock.Any()).Return(nil, nil)

	req := httptest.NewRequest(http.MethodPut, "/goals/3/progress", strings.NewReader(`{"currentValue":12.5}`))
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr := httptest.NewRecorder()
	h.HandleUpdateProgress(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodPut, "/goals/3/progress", strings.NewReader(`{"currentValue":"abc"}`))
	req = mux.SetURLVars(req, map[string]string{"id": "3"})
	rr = httptest.NewRecorder()
	h.HandleUpdateProgress(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"message":"Please enter a valid value."}`, rr.Body.String())
}

func TestHandler_HandleDeleteAndList(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockService := NewMockgoalsService(ctrl)
	mockChecker := NewMockachievementsChecker(ctrl)
	h := goals.NewHandler(mockService, mockChecker, nil)

	mockService.EXPECT().Delete(gomock.Any(), "2").Return(errors.New("disk gone"))
	req := mux.SetURLVars(httptest.NewRequest(http.MethodDelete, "/goals/2", nil), map[string]string{"id": "2"})
	rr := httptest.NewRecorder()
	h.HandleDelete(rr, req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	mockService.EXPECT().Delete(gomock.Any(), "2").Return(nil)
	mockChecker.EXPECT().EvaluateAchievements(gomock.Any()).Return(nil, nil)
	rr = httptest.NewRecorder()
	h.HandleDelete(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"deletedId":"2","newAchievements":[]}`, rr.Body.String())

	mockService.EXPECT().List(gomock.Any()).Return([]goals.View{{Goal: goals.Goal{ID: "1"}}, {Goal: goals.Goal{ID: "2"}}})
	rr = httptest.NewRecorder()
	h.HandleList(rr, httptest.NewRequest(http.MethodGet, "/goals", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp goals.ListResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
}

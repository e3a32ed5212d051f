package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/purav-khanna/Fitness-Tracker/internal/storage"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/backup"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/dashboard"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/goals"
	"github.com/purav-khanna/Fitness-Tracker/internal/tracker/workouts"

	"github.com/brianvoe/gofakeit/v6"
)

func (s *IntegrationTestSuite) doRequest(method, path string, body []byte) (int, []byte) {
	req, err := http.NewRequest(method, serverEndpoint+path, bytes.NewReader(body))
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, respBody
}

func (s *IntegrationTestSuite) TestWorkoutsPersisted() {
	faker := gofakeit.New(2024)
	today := time.Now().UTC().Format("2006-01-02")

	var ids []string
	for i := 0; i < 3; i++ {
		reqBody, err := json.Marshal(map[string]any{
			"date":             today,
			"type":             workouts.TypeStrength,
			"exerciseName":     faker.RandomString([]string{"Squat", "Bench Press", "Deadlift"}),
			"sets":             faker.Number(1, 5),
			"reps":             faker.Number(5, 12),
			"weightOrDuration": faker.Float64Range(20, 120),
			"notes":            faker.Sentence(4),
		})
		s.Require().NoError(err)

		status, respBody := s.doRequest(http.MethodPost, "/workouts", reqBody)
		s.Require().Equal(http.StatusCreated, status, string(respBody))

		var added workouts.MutationResponse
		s.Require().NoError(json.Unmarshal(respBody, &added))
		ids = append(ids, added.Workout.ID)
	}

	stored, ok := s.storedDocument(storage.KeyWorkouts)
	s.Require().True(ok)
	for _, id := range ids {
		s.Contains(stored, id)
	}

	status, respBody := s.doRequest(http.MethodGet, "/dashboard?range=week", nil)
	s.Require().Equal(http.StatusOK, status)
	var stats dashboard.Stats
	s.Require().NoError(json.Unmarshal(respBody, &stats))
	s.GreaterOrEqual(stats.TotalWorkouts, 3)
	s.GreaterOrEqual(stats.CurrentStreak, 1)

	status, _ = s.doRequest(http.MethodDelete, "/workouts/"+ids[0], nil)
	s.Require().Equal(http.StatusOK, status)
	stored, _ = s.storedDocument(storage.KeyWorkouts)
	s.NotContains(stored, ids[0])
}

func (s *IntegrationTestSuite) TestGoalCompletionUnlocksAchievement() {
	reqBody := []byte(`{"name":"Bench 100kg","category":"Strength","targetValue":100,"currentValue":90,"startDate":"2024-01-01","targetDate":"2099-12-31"}`)
	status, respBody := s.doRequest(http.MethodPost, "/goals", reqBody)
	s.Require().Equal(http.StatusCreated, status, string(respBody))

	var added goals.MutationResponse
	s.Require().NoError(json.Unmarshal(respBody, &added))
	s.Equal(90, added.Goal.Progress)

	status, respBody = s.doRequest(http.MethodPost, "/goals/"+added.Goal.ID+"/complete", nil)
	s.Require().Equal(http.StatusOK, status)
	var completed goals.MutationResponse
	s.Require().NoError(json.Unmarshal(respBody, &completed))
	s.Equal(100, completed.Goal.Progress)

	stored, ok := s.storedDocument(storage.KeyAchievements)
	s.Require().True(ok)
	s.Contains(stored, "firstGoalCompleted")
}

func (s *IntegrationTestSuite) TestBackupExportImport() {
	status, _ := s.doRequest(http.MethodPut, "/profile", []byte(`{"name":"Sam","height":"170","weight":"65"}`))
	s.Require().Equal(http.StatusOK, status)

	status, exported := s.doRequest(http.MethodGet, "/backup/export", nil)
	s.Require().Equal(http.StatusOK, status)

	status, respBody := s.doRequest(http.MethodPost, "/backup/import", exported)
	s.Require().Equal(http.StatusOK, status, string(respBody))
	var result backup.ImportResult
	s.Require().NoError(json.Unmarshal(respBody, &result))
	s.Equal("Data imported successfully.", result.Message)

	stored, ok := s.storedDocument(storage.KeyProfile)
	s.Require().True(ok)
	s.Contains(stored, `"Sam"`)
}

func (s *IntegrationTestSuite) TestImportRateLimited() {
	body := []byte(`{"goals":[]}`)
	var lastStatus int
	// the export/import test may already have used part of the quota
	for i := 0; i <= importAllowedPerMin; i++ {
		lastStatus, _ = s.doRequest(http.MethodPost, "/backup/import", body)
		if lastStatus == http.StatusTooManyRequests {
			break
		}
		s.Require().Equal(http.StatusOK, lastStatus, fmt.Sprintf("import %d", i))
	}
	s.Equal(http.StatusTooManyRequests, lastStatus)
}

func (s *IntegrationTestSuite) TestMetricsEndpoint() {
	resp, err := http.Get(fmt.Sprintf("http://%s:%s/metrics", serverHost, prometheusMetricsPort))
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.Contains(string(body), "pgxpool_")
}

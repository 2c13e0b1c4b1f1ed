// GMaxing Engine - Personalized Training Protocol Recommendations
// Copyright 2026 GMaxing Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/gmaxing/engine

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/gmaxing/engine/internal/catalog"
	"github.com/gmaxing/engine/internal/config"
	"github.com/gmaxing/engine/internal/feedback"
	"github.com/gmaxing/engine/internal/models"
	"github.com/gmaxing/engine/internal/recommend"
)

func newTestServer(t *testing.T) (*httptest.Server, *feedback.Store) {
	t.Helper()

	logger := zerolog.Nop()
	cat := catalog.NewWithDefaults(logger)
	store := feedback.NewStore(1000, logger)
	pers := feedback.NewPersonalization(store)
	neighbors := feedback.NewNeighbors(store, 10)

	engine, err := recommend.New(recommend.DefaultConfig(), cat, logger,
		recommend.WithFeedbackSource(store),
		recommend.WithPersonalization(pers),
		recommend.WithNeighbors(neighbors),
	)
	if err != nil {
		t.Fatalf("recommend.New: %v", err)
	}

	h := NewHandlers(engine, cat, store, pers, logger)
	srv := httptest.NewServer(NewRouter(h, config.Default().Server))
	t.Cleanup(srv.Close)
	return srv, store
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, models.APIResponse) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	var envelope models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return resp, envelope
}

func timeDaysAgo(days int) time.Time {
	return time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour)
}

func validContext() models.RecommendationContext {
	return models.RecommendationContext{
		Profile: models.UserProfile{
			ID:                   "user-1",
			FitnessLevel:         models.FitnessIntermediate,
			Goals:                []models.Goal{models.GoalGeneralFitness},
			Equipment:            []models.Equipment{models.EquipmentBarbell, models.EquipmentDumbbell, models.EquipmentBench},
			AvailableTimeMinutes: 90,
			WeeklyFrequency:      4,
		},
	}
}

func TestRecommendations(t *testing.T) {
	srv, _ := newTestServer(t)

	req := RecommendationRequest{RecommendationContext: validContext(), MaxResults: 3}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recommendations", req)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if env.Status != "success" {
		t.Fatalf("envelope status = %q, want success", env.Status)
	}

	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", env.Data)
	}
	recs, ok := data["recommendations"].([]interface{})
	if !ok {
		t.Fatalf("recommendations is %T, want array", data["recommendations"])
	}
	if len(recs) != 3 {
		t.Fatalf("len(recommendations) = %d, want 3", len(recs))
	}
	if data["count"].(float64) != 3 {
		t.Fatalf("count = %v, want 3", data["count"])
	}
}

func TestRecommendations_ValidationError(t *testing.T) {
	srv, _ := newTestServer(t)

	// Missing goals and fitness level.
	req := RecommendationRequest{
		RecommendationContext: models.RecommendationContext{
			Profile: models.UserProfile{ID: "user-1"},
		},
	}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/recommendations", req)

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != CodeValidationError {
		t.Fatalf("error = %+v, want code %s", env.Error, CodeValidationError)
	}
}

func TestRecommendations_MalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/recommendations", "application/json",
		bytes.NewReader([]byte(`{"profile": `)))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestProtocols(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/protocols", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		data := env.Data.(map[string]interface{})
		if data["count"].(float64) < 1 {
			t.Fatalf("count = %v, want at least 1", data["count"])
		}
	})

	t.Run("get known", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/protocols/gmx-foundation", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		data := env.Data.(map[string]interface{})
		if data["id"] != "gmx-foundation" {
			t.Fatalf("id = %v, want gmx-foundation", data["id"])
		}
	})

	t.Run("get unknown", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/protocols/nope", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
		if env.Error == nil || env.Error.Code != CodeNotFound {
			t.Fatalf("error = %+v, want code %s", env.Error, CodeNotFound)
		}
	})
}

func TestFeedbackRoundTrip(t *testing.T) {
	srv, store := newTestServer(t)

	fb := models.UserFeedback{
		UserID:        "user-1",
		ProtocolID:    "gmx-foundation",
		Rating:        5,
		Completed:     true,
		Effectiveness: 9,
		Difficulty:    6,
		Enjoyment:     8,
	}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/feedback", fb)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if env.Status != "success" {
		t.Fatalf("envelope status = %q, want success", env.Status)
	}
	if store.TotalFeedbacks() != 1 {
		t.Fatalf("TotalFeedbacks = %d, want 1", store.TotalFeedbacks())
	}

	// Aggregates are now queryable.
	resp, env = doJSON(t, http.MethodGet, srv.URL+"/api/v1/protocols/gmx-foundation/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics status = %d, want 200", resp.StatusCode)
	}
	data := env.Data.(map[string]interface{})
	if data["avg_rating"].(float64) != 5 {
		t.Fatalf("avg_rating = %v, want 5", data["avg_rating"])
	}
}

func TestFeedback_Rejected(t *testing.T) {
	srv, store := newTestServer(t)

	fb := models.UserFeedback{
		UserID:        "user-1",
		ProtocolID:    "gmx-foundation",
		Rating:        7, // out of range
		Effectiveness: 9,
		Difficulty:    6,
		Enjoyment:     8,
	}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/feedback", fb)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != CodeValidationError {
		t.Fatalf("error = %+v, want code %s", env.Error, CodeValidationError)
	}
	if store.TotalFeedbacks() != 0 {
		t.Fatalf("TotalFeedbacks = %d, want 0", store.TotalFeedbacks())
	}
}

func TestProtocolMetrics_NoFeedback(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/protocols/gmx-foundation/metrics", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != CodeNotFound {
		t.Fatalf("error = %+v, want code %s", env.Error, CodeNotFound)
	}
}

func TestSatisfaction(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("baseline", func(t *testing.T) {
		resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/u-new/satisfaction/gmx-foundation", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		data := env.Data.(map[string]interface{})
		if data["predicted_rating"].(float64) != 3.5 {
			t.Fatalf("predicted_rating = %v, want 3.5", data["predicted_rating"])
		}
	})

	t.Run("unknown protocol", func(t *testing.T) {
		resp, _ := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/u-new/satisfaction/nope", nil)
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("status = %d, want 404", resp.StatusCode)
		}
	})
}

func TestForecastEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := ForecastRequest{History: []float64{100, 110, 120, 130}, Horizon: 2}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/forecast", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data := env.Data.(map[string]interface{})
	points := data["forecast"].([]interface{})
	if len(points) != 2 {
		t.Fatalf("len(forecast) = %d, want 2", len(points))
	}
	first := points[0].(map[string]interface{})
	if first["predicted_value"].(float64) != 140 {
		t.Fatalf("first predicted_value = %v, want 140", first["predicted_value"])
	}
	if first["period"] != "t+1" {
		t.Fatalf("first period = %v, want t+1", first["period"])
	}
}

func TestForecastEndpoint_EmptyHistory(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/forecast", ForecastRequest{Horizon: 3})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if env.Error == nil || env.Error.Code != CodeValidationError {
		t.Fatalf("error = %+v, want code %s", env.Error, CodeValidationError)
	}
}

func TestChurnEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	req := ChurnRequest{
		Users: []models.UserActivity{
			{
				UserID:          "payer-gone",
				LastActiveAt:    timeDaysAgo(40),
				TotalSpent:      600,
				EngagementScore: 20,
				ProtocolsUsed:   2,
			},
			{
				UserID:          "active",
				LastActiveAt:    timeDaysAgo(1),
				TotalSpent:      600,
				EngagementScore: 90,
				ProtocolsUsed:   3,
			},
		},
	}
	resp, env := doJSON(t, http.MethodPost, srv.URL+"/api/v1/churn", req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data := env.Data.(map[string]interface{})
	if data["count"].(float64) != 1 {
		t.Fatalf("count = %v, want 1", data["count"])
	}
	entry := data["at_risk"].([]interface{})[0].(map[string]interface{})
	if entry["user_id"] != "payer-gone" {
		t.Fatalf("user_id = %v, want payer-gone", entry["user_id"])
	}
	if entry["risk_score"].(float64) != 80 {
		t.Fatalf("risk_score = %v, want 80", entry["risk_score"])
	}
}

func TestExportInsights(t *testing.T) {
	srv, store := newTestServer(t)

	if err := store.Record(models.UserFeedback{
		UserID: "user-1", ProtocolID: "gmx-foundation",
		Rating: 4, Completed: true, Effectiveness: 7, Difficulty: 5, Enjoyment: 6,
	}); err != nil {
		t.Fatalf("record: %v", err)
	}

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/api/v1/insights/export", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	data := env.Data.(map[string]interface{})
	if data["total_feedbacks"].(float64) != 1 {
		t.Fatalf("total_feedbacks = %v, want 1", data["total_feedbacks"])
	}
	if _, ok := data["model_weights"]; !ok {
		t.Fatal("export missing model_weights")
	}
}

func TestHealthProbes(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		resp, err := http.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d, want 200", path, resp.StatusCode)
		}
	}
}

func TestRequestIDPropagation(t *testing.T) {
	srv, _ := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/protocols", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()

	var env models.APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Metadata.RequestID != "trace-123" {
		t.Fatalf("request_id = %q, want trace-123", env.Metadata.RequestID)
	}
}

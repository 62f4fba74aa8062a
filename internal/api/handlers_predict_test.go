package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/astravine/mirelle/internal/predict"
)

func TestPredictRelaysResult(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.predictor.result = predict.Result{Prediction: 1, Probability: 0.82, Label: "PCOS likely"}

	response := env.postJSON(t, "/api/predict", map[string]any{
		"features": []float64{28, 24.5, 1, 0, 1, 0, 1, 0, 1},
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if prediction, _ := body["prediction"].(float64); prediction != 1 {
		t.Fatalf("expected prediction 1, got %v", body["prediction"])
	}
	if len(env.predictor.lastFeatures) != predict.FeatureCount {
		t.Fatalf("predictor saw %d features, want %d", len(env.predictor.lastFeatures), predict.FeatureCount)
	}
}

func TestPredictRejectsWrongFeatureCount(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.postJSON(t, "/api/predict", map[string]any{
		"features": []float64{1, 2, 3},
	})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if body["detail"] != "Invalid features array" {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

func TestPredictRelaysUpstreamRejection(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.predictor.err = &predict.UpstreamError{
		StatusCode: http.StatusUnprocessableEntity,
		Body:       []byte(`{"detail":"value out of range"}`),
	}

	response := env.postJSON(t, "/api/predict", map[string]any{
		"features": []float64{28, 24.5, 1, 0, 1, 0, 1, 0, 1},
	})
	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if body["detail"] != "value out of range" {
		t.Fatalf("expected relayed upstream body, got %v", body)
	}
}

func TestPredictReportsTransportFailure(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.predictor.err = errors.New("dial tcp: connection refused")

	response := env.postJSON(t, "/api/predict", map[string]any{
		"features": []float64{28, 24.5, 1, 0, 1, 0, 1, 0, 1},
	})
	if response.StatusCode != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if body["detail"] != "Failed to connect to the prediction server." {
		t.Fatalf("unexpected detail: %v", body["detail"])
	}
}

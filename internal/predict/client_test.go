package predict

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func nineFeatures() []float64 {
	return []float64{25, 70.5, 1, 0, 1, 32, 0, 1, 0}
}

func TestPredict(t *testing.T) {
	t.Parallel()

	var captured predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Result{Prediction: 1, Probability: 0.82, Label: "high risk"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Predict(context.Background(), nineFeatures())
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if result.Prediction != 1 || result.Label != "high risk" {
		t.Fatalf("unexpected result %+v", result)
	}
	if len(captured.Features) != FeatureCount {
		t.Fatalf("expected %d forwarded features, got %d", FeatureCount, len(captured.Features))
	}
}

func TestPredict_RejectsWrongFeatureCount(t *testing.T) {
	t.Parallel()

	client := NewClient("http://unused.invalid")
	if _, err := client.Predict(context.Background(), []float64{1, 2, 3}); !errors.Is(err, ErrInvalidFeatures) {
		t.Fatalf("expected ErrInvalidFeatures, got %v", err)
	}
}

func TestPredict_RelaysUpstreamClientError(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail":"bad vector"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Predict(context.Background(), nineFeatures())

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upstream.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", upstream.StatusCode)
	}
	if calls != 1 {
		t.Fatalf("expected no retry on 4xx, got %d calls", calls)
	}
}

func TestPredict_RetriesServerError(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Result{Prediction: 0})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Predict(context.Background(), nineFeatures())
	if err != nil {
		t.Fatalf("predict after retry: %v", err)
	}
	if result.Prediction != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
	if calls != 2 {
		t.Fatalf("expected one retry, got %d calls", calls)
	}
}

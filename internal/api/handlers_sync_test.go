package api

import (
	"net/http"
	"testing"
)

func TestSyncStatusReflectsQueue(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.get(t, "/api/sync/status")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if queued, _ := body["queued"].(float64); queued != 0 {
		t.Fatalf("expected empty queue, got %v", body["queued"])
	}
	if online, _ := body["online"].(bool); !online {
		t.Fatal("expected online true with a live database")
	}
}

func TestSyncStatusWhileStoreIsDown(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	if err := env.sqlClose(); err != nil {
		t.Fatalf("close database: %v", err)
	}

	response := env.postJSON(t, "/api/log", map[string]any{
		"userId":   "user-sync",
		"symptoms": []string{"fatigue"},
	})
	if response.StatusCode != http.StatusAccepted {
		t.Fatalf("expected status 202 while store is down, got %d", response.StatusCode)
	}

	status := env.get(t, "/api/sync/status")
	body := decodeBody(t, status)
	if queued, _ := body["queued"].(float64); queued != 1 {
		t.Fatalf("expected 1 queued entry, got %v", body["queued"])
	}
	if online, _ := body["online"].(bool); online {
		t.Fatal("expected online false with a closed database")
	}
}

func TestSyncDrainEmptyQueue(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.postJSON(t, "/api/sync/drain", map[string]any{})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if synced, _ := body["synced"].(float64); synced != 0 {
		t.Fatalf("expected 0 synced on empty queue, got %v", body["synced"])
	}
}

func TestLanguagesListsSupportedLocales(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.get(t, "/api/languages")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	languages, ok := body["languages"].([]any)
	if !ok || len(languages) < 3 {
		t.Fatalf("expected at least 3 languages, got %v", body["languages"])
	}
	if body["default"] != "en" {
		t.Fatalf("expected default en, got %v", body["default"])
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.get(t, "/healthz")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

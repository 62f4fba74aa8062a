package api

import (
	"net/http"
	"testing"

	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/models"
)

func TestChatRepliesAndLogsExtraction(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.gateway.chatResult = gemini.ChatResult{
		Reply: "That sounds rough, make sure to rest.",
		Extraction: models.SymptomRecord{
			Symptoms:  []string{"cramps", "fatigue"},
			PainLevel: intPointer(6),
		},
	}

	response := env.postJSON(t, "/api/chat", map[string]any{
		"userId":  "user-chat",
		"message": "I've had bad cramps all day and I'm exhausted",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	body := decodeBody(t, response)
	if body["reply"] != "That sounds rough, make sure to rest." {
		t.Fatalf("unexpected reply: %v", body["reply"])
	}

	entries, err := env.repos.Logs.ListRecentByUser("user-chat", 10)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected extraction to create 1 log entry, got %d", len(entries))
	}
	if !entries[0].Symptoms.Contains("cramps") {
		t.Fatalf("extracted log lost a tag: %v", entries[0].Symptoms.Tags())
	}
}

func TestChatSkipsLoggingEmptyExtraction(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.gateway.chatResult = gemini.ChatResult{Reply: "Hello! How are you feeling today?"}

	response := env.postJSON(t, "/api/chat", map[string]any{
		"userId":  "user-chat-2",
		"message": "hi",
	})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	entries, err := env.repos.Logs.ListRecentByUser("user-chat-2", 10)
	if err != nil {
		t.Fatalf("list entries: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no log entries for small talk, got %d", len(entries))
	}
}

func TestChatRequiresMessage(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	response := env.postJSON(t, "/api/chat", map[string]any{"userId": "user-chat-3"})
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
}

func TestChatReportsGenerationFailure(t *testing.T) {
	t.Parallel()

	env := newTestApp(t)
	env.gateway.chatErr = gemini.ErrEmptyResponse

	response := env.postJSON(t, "/api/chat", map[string]any{
		"userId":  "user-chat-4",
		"message": "hello",
	})
	if response.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected status 502, got %d", response.StatusCode)
	}
}

func intPointer(value int) *int { return &value }

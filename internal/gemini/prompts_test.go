package gemini

import (
	"strings"
	"testing"
	"time"

	"github.com/astravine/mirelle/internal/models"
)

func logOn(t *testing.T, day string, payload models.SymptomPayload) models.LogEntry {
	t.Helper()
	date, err := time.Parse("2006-01-02", day)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return models.LogEntry{UserID: "u1", LogDate: date, Symptoms: payload}
}

func TestSymptomSummary(t *testing.T) {
	t.Parallel()

	logs := []models.LogEntry{
		logOn(t, "2026-03-10", models.PayloadFromTags("mood_swings", "cramps")),
		logOn(t, "2026-03-09", models.PayloadFromTags("cramps", "hot_flashes")),
	}

	summary := SymptomSummary(logs)

	if summary != "mood swings, cramps, hot flashes" {
		t.Fatalf("unexpected summary %q", summary)
	}
}

func TestSymptomSummary_NoSymptoms(t *testing.T) {
	t.Parallel()

	if got := SymptomSummary(nil); got != "no specific symptoms documented" {
		t.Fatalf("unexpected empty summary %q", got)
	}
}

func TestFormatLogsForClinician(t *testing.T) {
	t.Parallel()

	mood := "anxious"
	pain := 6
	logs := []models.LogEntry{
		logOn(t, "2026-03-01", models.PayloadFromTags("cramps", "bloating")),
		logOn(t, "2026-03-02", models.PayloadFromRecord(models.SymptomRecord{
			Symptoms:  []string{"fatigue"},
			Mood:      &mood,
			PainLevel: &pain,
		})),
		logOn(t, "2026-03-03", models.SymptomPayload{}),
	}

	formatted := FormatLogsForClinician(logs)
	lines := strings.Split(formatted, "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Entry 1 [2026-03-01]: cramps, bloating" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "Symptoms: fatigue; Mood: anxious; Pain Level: 6/10") {
		t.Fatalf("unexpected structured line %q", lines[1])
	}
	if !strings.Contains(lines[2], "No specific symptoms recorded") {
		t.Fatalf("unexpected empty line %q", lines[2])
	}
}

func TestChatContextPromptIncludesProfileAndLogs(t *testing.T) {
	t.Parallel()

	logs := []models.LogEntry{
		logOn(t, "2026-03-10", models.PayloadFromTags("cramps")),
	}

	prompt := chatContextPrompt("Maya", "es", logs)

	if !strings.Contains(prompt, `The user's name is "Maya"`) {
		t.Fatalf("expected name note in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, "- Date: 2026-03-10, Symptoms: cramps") {
		t.Fatalf("expected log line in prompt:\n%s", prompt)
	}
}

func TestExtractionPromptListsKnownTags(t *testing.T) {
	t.Parallel()

	prompt := extractionPrompt("I have terrible cramps")

	if !strings.Contains(prompt, `"hirsutism"`) || !strings.Contains(prompt, `"period_start"`) {
		t.Fatalf("expected known tags in prompt:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"I have terrible cramps"`) {
		t.Fatalf("expected the patient message in prompt:\n%s", prompt)
	}
}

func TestCalendarPromptAnchorsOnWeekday(t *testing.T) {
	t.Parallel()

	start, err := time.Parse("2006-01-02", "2026-03-05")
	if err != nil {
		t.Fatalf("parse start day: %v", err)
	}

	prompt := calendarPrompt("Luteal (The Deep Work)", 19, start)

	if !strings.Contains(prompt, "starting from Thursday") {
		t.Fatalf("expected prompt to anchor on Thursday, got %q", prompt)
	}
	if !strings.Contains(prompt, "cycle day 19") || !strings.Contains(prompt, "Luteal (The Deep Work)") {
		t.Fatalf("expected prompt to carry cycle context, got %q", prompt)
	}
	if !strings.Contains(prompt, `"nutrition"`) {
		t.Fatalf("expected prompt to request a nutrition field, got %q", prompt)
	}
}

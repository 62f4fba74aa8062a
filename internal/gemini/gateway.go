package gemini

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/astravine/mirelle/internal/models"
)

// Gateway exposes the product-level generative operations on top of the raw
// client.
type Gateway struct {
	client *Client
}

func NewGateway(client *Client) *Gateway {
	return &Gateway{client: client}
}

type ChatInput struct {
	Message    string
	Language   string
	FirstName  string
	History    []Message
	RecentLogs []models.LogEntry
}

type ChatResult struct {
	Reply      string
	Extraction models.SymptomRecord
}

// Chat answers the user's message and, in parallel, runs the clinical
// extraction over it. A failed or malformed extraction degrades to an empty
// record; only the conversational call can fail the operation.
func (gateway *Gateway) Chat(ctx context.Context, input ChatInput) (ChatResult, error) {
	contextPrompt := chatContextPrompt(input.FirstName, input.Language, input.RecentLogs)
	history := append(seedHistory(contextPrompt, input.FirstName), input.History...)

	var (
		wait       sync.WaitGroup
		reply      string
		replyErr   error
		extraction models.SymptomRecord
	)

	wait.Add(2)
	go func() {
		defer wait.Done()
		reply, replyErr = gateway.client.Generate(ctx, ModelChat, history, input.Message)
	}()
	go func() {
		defer wait.Done()
		raw, err := gateway.client.Generate(ctx, ModelChat, nil, extractionPrompt(input.Message))
		if err != nil {
			return
		}
		extraction = ParseExtraction(raw)
	}()
	wait.Wait()

	if replyErr != nil {
		return ChatResult{}, replyErr
	}
	return ChatResult{Reply: reply, Extraction: extraction}, nil
}

// ParseExtraction decodes the extraction model's output, tolerating fences
// and surrounding prose. Anything unparseable yields an empty record.
func ParseExtraction(raw string) models.SymptomRecord {
	cleaned := SliceJSONObject(StripCodeFences(raw))
	var record models.SymptomRecord
	if err := json.Unmarshal([]byte(cleaned), &record); err != nil {
		return models.SymptomRecord{}
	}
	return record
}

// ScheduleDay is one row of the generated 7-day plan.
type ScheduleDay struct {
	Day     string `json:"day"`
	Focus   string `json:"focus"`
	TaskTip string `json:"taskTip"`
	Workout string `json:"workout"`
	Energy  string `json:"energy"`
}

// Schedule asks the lite model for a 7-day plan tuned to the cycle phase.
func (gateway *Gateway) Schedule(ctx context.Context, phase string, cycleDay int) ([]ScheduleDay, error) {
	raw, err := gateway.client.Generate(ctx, ModelLite, nil, schedulePrompt(phase, cycleDay))
	if err != nil {
		return nil, err
	}
	return ParseSchedule(raw)
}

// ParseSchedule decodes the schedule model's output after stripping fences
// and slicing down to the JSON array.
func ParseSchedule(raw string) ([]ScheduleDay, error) {
	cleaned := SliceJSONArray(StripCodeFences(raw))
	schedule := make([]ScheduleDay, 0, 7)
	if err := json.Unmarshal([]byte(cleaned), &schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CalendarDay is one row of the weekday-anchored wellness calendar. It is a
// richer shape than ScheduleDay: each row carries its date label and a
// nutrition focus.
type CalendarDay struct {
	Day       string `json:"day"`
	Date      string `json:"date"`
	Focus     string `json:"focus"`
	TaskTip   string `json:"taskTip"`
	Workout   string `json:"workout"`
	Nutrition string `json:"nutrition"`
	Energy    string `json:"energy"`
}

// Calendar asks the lite model for a 7-day wellness calendar anchored on the
// current weekday.
func (gateway *Gateway) Calendar(ctx context.Context, phase string, cycleDay int, startDay time.Time) ([]CalendarDay, error) {
	raw, err := gateway.client.Generate(ctx, ModelLite, nil, calendarPrompt(phase, cycleDay, startDay))
	if err != nil {
		return nil, err
	}
	return ParseCalendar(raw)
}

// ParseCalendar decodes the calendar model's output after stripping fences
// and slicing down to the JSON array.
func ParseCalendar(raw string) ([]CalendarDay, error) {
	cleaned := SliceJSONArray(StripCodeFences(raw))
	calendar := make([]CalendarDay, 0, 7)
	if err := json.Unmarshal([]byte(cleaned), &calendar); err != nil {
		return nil, err
	}
	return calendar, nil
}

// Report turns the last 30 days of logs into a SOAP note.
func (gateway *Gateway) Report(ctx context.Context, logs []models.LogEntry, now time.Time) (string, error) {
	return gateway.client.Generate(ctx, ModelChat, nil, reportPrompt(FormatLogsForClinician(logs), now))
}

// AccommodationEmail drafts the HR accommodation request from a symptom
// summary.
func (gateway *Gateway) AccommodationEmail(ctx context.Context, symptomSummary string) (string, error) {
	return gateway.client.Generate(ctx, ModelLite, nil, accommodationEmailPrompt(symptomSummary))
}

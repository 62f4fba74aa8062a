package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/astravine/mirelle/internal/db"
	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/i18n"
	"github.com/astravine/mirelle/internal/models"
	"github.com/astravine/mirelle/internal/offline"
	"github.com/astravine/mirelle/internal/predict"
)

// fakeGateway returns canned generative output and records what it was
// asked for.
type fakeGateway struct {
	chatResult   gemini.ChatResult
	chatErr      error
	schedule     []gemini.ScheduleDay
	scheduleErr  error
	calendar     []gemini.CalendarDay
	calendarErr  error
	report       string
	reportErr    error
	email        string
	emailErr     error
	lastPhase    string
	lastCycleDay int
	lastSummary  string
	reportLogs   []models.LogEntry
}

func (gateway *fakeGateway) Chat(_ context.Context, _ gemini.ChatInput) (gemini.ChatResult, error) {
	return gateway.chatResult, gateway.chatErr
}

func (gateway *fakeGateway) Schedule(_ context.Context, phase string, cycleDay int) ([]gemini.ScheduleDay, error) {
	gateway.lastPhase = phase
	gateway.lastCycleDay = cycleDay
	return gateway.schedule, gateway.scheduleErr
}

func (gateway *fakeGateway) Calendar(_ context.Context, phase string, cycleDay int, _ time.Time) ([]gemini.CalendarDay, error) {
	gateway.lastPhase = phase
	gateway.lastCycleDay = cycleDay
	return gateway.calendar, gateway.calendarErr
}

func (gateway *fakeGateway) Report(_ context.Context, logs []models.LogEntry, _ time.Time) (string, error) {
	gateway.reportLogs = logs
	return gateway.report, gateway.reportErr
}

func (gateway *fakeGateway) AccommodationEmail(_ context.Context, summary string) (string, error) {
	gateway.lastSummary = summary
	return gateway.email, gateway.emailErr
}

type fakePredictor struct {
	result       predict.Result
	err          error
	lastFeatures []float64
}

func (predictor *fakePredictor) Predict(_ context.Context, features []float64) (predict.Result, error) {
	predictor.lastFeatures = features
	if len(features) != predict.FeatureCount {
		return predict.Result{}, predict.ErrInvalidFeatures
	}
	return predictor.result, predictor.err
}

type testApp struct {
	app       *fiber.App
	database  *gorm.DB
	repos     *db.Repositories
	queue     *offline.Queue
	gateway   *fakeGateway
	predictor *fakePredictor
	sqlClose  func() error
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	tempDir := t.TempDir()
	database, err := db.OpenSQLite(filepath.Join(tempDir, "mirelle-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	i18nManager, err := i18n.NewManager("en")
	if err != nil {
		t.Fatalf("init i18n: %v", err)
	}

	repos := db.NewRepositories(database)
	storage, err := offline.NewFileStorage(filepath.Join(tempDir, "queue"))
	if err != nil {
		t.Fatalf("init offline storage: %v", err)
	}
	queue := offline.NewQueue(
		storage,
		offline.LogStoreFunc(func(_ context.Context, entry models.LogEntry) error {
			return repos.Logs.Create(&entry)
		}),
		offline.ProbeFunc(func() bool { return true }),
		nil,
	)

	gateway := &fakeGateway{}
	predictor := &fakePredictor{}
	handler := NewHandler(repos, queue, db.NewHealthProbe(database), gateway, predictor, i18nManager, time.UTC)

	app := fiber.New()
	RegisterRoutes(app, handler)

	return &testApp{
		app:       app,
		database:  database,
		repos:     repos,
		queue:     queue,
		gateway:   gateway,
		predictor: predictor,
		sqlClose:  sqlDB.Close,
	}
}

func (env *testApp) postJSON(t *testing.T, path string, body any) *http.Response {
	t.Helper()

	encoded, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request body: %v", err)
	}
	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(encoded))
	request.Header.Set("Content-Type", "application/json")

	response, err := env.app.Test(request, -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func (env *testApp) get(t *testing.T, path string) *http.Response {
	t.Helper()

	response, err := env.app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("request %s failed: %v", path, err)
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response) map[string]any {
	t.Helper()

	defer response.Body.Close()
	content, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatalf("decode response body %q: %v", content, err)
	}
	return decoded
}

func (env *testApp) seedLog(t *testing.T, userID string, date string, tags ...string) {
	t.Helper()

	logDate, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		t.Fatalf("parse seed date %q: %v", date, err)
	}
	entry := models.LogEntry{UserID: userID, LogDate: logDate, Symptoms: models.PayloadFromTags(tags...)}
	if err := env.repos.Logs.Create(&entry); err != nil {
		t.Fatalf("seed log entry: %v", err)
	}
}

package api

import (
	"context"
	"time"

	"github.com/astravine/mirelle/internal/db"
	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/i18n"
	"github.com/astravine/mirelle/internal/models"
	"github.com/astravine/mirelle/internal/offline"
	"github.com/astravine/mirelle/internal/predict"
)

// History windows per operation.
const (
	riskHistoryLimit  = 90
	phaseHistoryLimit = 30
	chatContextLimit  = 5
	reportWindowDays  = 30
	emailHistoryLimit = 14
)

// Gateway is the generative-content collaborator as the handlers see it.
type Gateway interface {
	Chat(ctx context.Context, input gemini.ChatInput) (gemini.ChatResult, error)
	Schedule(ctx context.Context, phase string, cycleDay int) ([]gemini.ScheduleDay, error)
	Calendar(ctx context.Context, phase string, cycleDay int, startDay time.Time) ([]gemini.CalendarDay, error)
	Report(ctx context.Context, logs []models.LogEntry, now time.Time) (string, error)
	AccommodationEmail(ctx context.Context, symptomSummary string) (string, error)
}

// Predictor is the remote-classifier collaborator.
type Predictor interface {
	Predict(ctx context.Context, features []float64) (predict.Result, error)
}

type Handler struct {
	repos     *db.Repositories
	queue     *offline.Queue
	probe     offline.Probe
	gateway   Gateway
	predictor Predictor
	i18n      *i18n.Manager
	location  *time.Location
	now       func() time.Time
}

type HandlerOption func(*Handler)

// WithClock overrides the handler's time source.
func WithClock(now func() time.Time) HandlerOption {
	return func(handler *Handler) { handler.now = now }
}

func NewHandler(
	repos *db.Repositories,
	queue *offline.Queue,
	probe offline.Probe,
	gateway Gateway,
	predictor Predictor,
	i18nManager *i18n.Manager,
	location *time.Location,
	options ...HandlerOption,
) *Handler {
	handler := &Handler{
		repos:     repos,
		queue:     queue,
		probe:     probe,
		gateway:   gateway,
		predictor: predictor,
		i18n:      i18nManager,
		location:  location,
		now:       time.Now,
	}
	for _, option := range options {
		option(handler)
	}
	return handler
}

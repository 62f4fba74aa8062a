package api

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/astravine/mirelle/internal/models"
	"github.com/astravine/mirelle/internal/services"
)

type submitLogRequest struct {
	UserID   string                `json:"userId"`
	Date     string                `json:"date"`
	Language string                `json:"language"`
	Symptoms models.SymptomPayload `json:"symptoms"`
}

// SubmitLog records a symptom log. When the store rejects the write the
// submission is buffered instead and the client is told it was queued.
func (handler *Handler) SubmitLog(c *fiber.Ctx) error {
	request := submitLogRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userID := request.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	logDate := handler.today()
	if request.Date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", request.Date, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		}
		logDate = parsed
	}

	language := handler.requestLanguage(c, request.Language)
	if err := handler.repos.Users.UpsertLanguage(userID, language); err != nil {
		log.Printf("submit log: upsert user %s: %v", userID, err)
	}

	entry := models.LogEntry{UserID: userID, LogDate: logDate, Symptoms: request.Symptoms}
	if err := handler.repos.Logs.Create(&entry); err != nil {
		log.Printf("submit log: store rejected entry for %s, buffering: %v", userID, err)
		if !handler.queue.Enqueue(entry) {
			return apiError(c, fiber.StatusInternalServerError, "Failed to save log")
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status":  "queued",
			"userId":  userID,
			"message": handler.i18n.Translate(language, "log.queued_offline"),
			"queued":  handler.queue.Count(),
		})
	}

	response := fiber.Map{"status": "logged", "userId": userID, "id": entry.ID}
	if alert := services.EvaluateSubmissionAlert(request.Symptoms.Tags()); alert != nil {
		record := models.Alert{UserID: userID, Severity: alert.Severity, Reason: alert.Reason}
		if err := handler.repos.Alerts.Create(&record); err != nil {
			log.Printf("submit log: persist alert for %s: %v", userID, err)
		}
		response["alert"] = fiber.Map{
			"severity": alert.Severity,
			"reason":   handler.i18n.Translate(language, alert.Key),
		}
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// today truncates the handler clock to a date in the configured location.
func (handler *Handler) today() time.Time {
	now := handler.now().In(handler.location)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, handler.location)
}

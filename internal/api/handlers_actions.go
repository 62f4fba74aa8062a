package api

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/services"
)

type actionRequest struct {
	UserID string `json:"userId"`
}

// Calendar generates the weekday-anchored 7-day wellness calendar. Unlike
// Schedule there is no cycle-day override; the estimate always comes from
// the logged period starts.
func (handler *Handler) Calendar(c *fiber.Ctx) error {
	request := actionRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.UserID == "" {
		return apiError(c, fiber.StatusBadRequest, "userId is required")
	}

	entries, err := handler.repos.Logs.ListRecentByUser(request.UserID, phaseHistoryLimit)
	if err != nil {
		log.Printf("calendar: fetch logs for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	now := handler.now().In(handler.location)
	estimate := services.EstimateCyclePhase(entries, 0, now)
	calendar, err := handler.gateway.Calendar(c.UserContext(), estimate.Phase, estimate.CycleDay, now)
	if err != nil {
		log.Printf("calendar: generate for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate calendar schedule")
	}

	return c.JSON(fiber.Map{
		"phase":    estimate.Phase,
		"cycleDay": estimate.CycleDay,
		"schedule": calendar,
	})
}

// Report drafts a clinician-ready SOAP note from the last 30 days of logs.
func (handler *Handler) Report(c *fiber.Ctx) error {
	request := actionRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.UserID == "" {
		return apiError(c, fiber.StatusBadRequest, "userId is required")
	}

	now := handler.now().In(handler.location)
	cutoff := handler.today().AddDate(0, 0, -reportWindowDays)
	entries, err := handler.repos.Logs.ListSinceByUser(request.UserID, cutoff)
	if err != nil {
		log.Printf("report: fetch logs for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	language := handler.requestLanguage(c, "")
	if len(entries) == 0 {
		return c.JSON(fiber.Map{
			"report":   handler.i18n.Translate(language, "report.insufficient_data"),
			"logCount": 0,
		})
	}

	report, err := handler.gateway.Report(c.UserContext(), entries, now)
	if err != nil {
		log.Printf("report: generate for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate report")
	}

	return c.JSON(fiber.Map{"report": report, "logCount": len(entries)})
}

// HREmail drafts a workplace accommodation request grounded in the user's
// recent symptoms, without exposing the raw logs.
func (handler *Handler) HREmail(c *fiber.Ctx) error {
	request := actionRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.UserID == "" {
		return apiError(c, fiber.StatusBadRequest, "userId is required")
	}

	entries, err := handler.repos.Logs.ListRecentByUser(request.UserID, emailHistoryLimit)
	if err != nil {
		log.Printf("hr email: fetch logs for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	email, err := handler.gateway.AccommodationEmail(c.UserContext(), gemini.SymptomSummary(entries))
	if err != nil {
		log.Printf("hr email: generate for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate email")
	}

	return c.JSON(fiber.Map{"email": email})
}

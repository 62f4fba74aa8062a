package api

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/astravine/mirelle/internal/services"
)

type scheduleRequest struct {
	UserID          string `json:"userId"`
	CurrentCycleDay int    `json:"currentCycleDay"`
}

// Schedule generates the phase-aware 7-day plan. An explicit cycle day in
// the request overrides the estimate derived from logged period starts.
func (handler *Handler) Schedule(c *fiber.Ctx) error {
	request := scheduleRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.UserID == "" {
		return apiError(c, fiber.StatusBadRequest, "userId is required")
	}

	entries, err := handler.repos.Logs.ListRecentByUser(request.UserID, phaseHistoryLimit)
	if err != nil {
		log.Printf("schedule: fetch logs for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	estimate := services.EstimateCyclePhase(entries, request.CurrentCycleDay, handler.now().In(handler.location))
	schedule, err := handler.gateway.Schedule(c.UserContext(), estimate.Phase, estimate.CycleDay)
	if err != nil {
		log.Printf("schedule: generate for %s: %v", request.UserID, err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate schedule")
	}

	return c.JSON(fiber.Map{
		"phase":    estimate.Phase,
		"cycleDay": estimate.CycleDay,
		"schedule": schedule,
	})
}

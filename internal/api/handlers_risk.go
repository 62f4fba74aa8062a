package api

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/astravine/mirelle/internal/services"
)

// GetPCOSRisk scores the user's last 90 log entries. A store failure is
// surfaced as an error rather than a misleading zero-risk answer.
func (handler *Handler) GetPCOSRisk(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return apiError(c, fiber.StatusBadRequest, "user_id is required")
	}

	entries, err := handler.repos.Logs.ListRecentByUser(userID, riskHistoryLimit)
	if err != nil {
		log.Printf("pcos risk: fetch logs for %s: %v", userID, err)
		return apiError(c, fiber.StatusInternalServerError, "Failed to fetch logs")
	}

	return c.JSON(services.AssessRisk(entries))
}

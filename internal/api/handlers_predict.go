package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/astravine/mirelle/internal/predict"
)

type predictRequest struct {
	Features []float64 `json:"features"`
}

// Predict relays the feature vector to the remote classifier. Upstream
// verdicts and upstream rejections both pass through unmodified; only a
// transport failure becomes this service's own error.
func (handler *Handler) Predict(c *fiber.Ctx) error {
	request := predictRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiDetail(c, fiber.StatusBadRequest, "Invalid features array")
	}

	result, err := handler.predictor.Predict(c.UserContext(), request.Features)
	if err != nil {
		if errors.Is(err, predict.ErrInvalidFeatures) {
			return apiDetail(c, fiber.StatusBadRequest, "Invalid features array")
		}
		upstream := &predict.UpstreamError{}
		if errors.As(err, &upstream) {
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(upstream.StatusCode).Send(upstream.Body)
		}
		log.Printf("predict: relay failed: %v", err)
		return apiDetail(c, fiber.StatusInternalServerError, "Failed to connect to the prediction server.")
	}

	return c.JSON(result)
}

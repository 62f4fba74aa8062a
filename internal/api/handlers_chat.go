package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/astravine/mirelle/internal/gemini"
	"github.com/astravine/mirelle/internal/models"
)

type chatRequest struct {
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	Language  string           `json:"language"`
	FirstName string           `json:"firstName"`
	History   []gemini.Message `json:"history"`
}

// Chat answers the user's message and silently logs whatever clinical
// details the extraction pass finds in it.
func (handler *Handler) Chat(c *fiber.Ctx) error {
	request := chatRequest{}
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if request.Message == "" {
		return apiError(c, fiber.StatusBadRequest, "message is required")
	}

	userID := request.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	language := handler.requestLanguage(c, request.Language)
	if err := handler.repos.Users.UpsertProfile(userID, language, request.FirstName); err != nil {
		log.Printf("chat: upsert user %s: %v", userID, err)
	}

	recent, err := handler.repos.Logs.ListRecentByUser(userID, chatContextLimit)
	if err != nil {
		log.Printf("chat: fetch context for %s: %v", userID, err)
		recent = nil
	}

	result, err := handler.gateway.Chat(c.UserContext(), gemini.ChatInput{
		Message:    request.Message,
		Language:   language,
		FirstName:  request.FirstName,
		History:    request.History,
		RecentLogs: recent,
	})
	if err != nil {
		log.Printf("chat: generate reply for %s: %v", userID, err)
		return apiError(c, fiber.StatusBadGateway, "Failed to generate a reply")
	}

	if result.Extraction.HasData() {
		entry := models.LogEntry{
			UserID:   userID,
			LogDate:  handler.today(),
			Symptoms: models.PayloadFromRecord(result.Extraction),
		}
		if err := handler.repos.Logs.Create(&entry); err != nil {
			log.Printf("chat: store extracted log for %s, buffering: %v", userID, err)
			handler.queue.Enqueue(entry)
		}
	}

	return c.JSON(fiber.Map{
		"reply":             result.Reply,
		"userId":            userID,
		"extractedSymptoms": result.Extraction,
	})
}

package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LanguageMiddleware)
	api.Get("/languages", handler.Languages)

	api.Post("/log", handler.SubmitLog)
	api.Get("/pcos-risk", handler.GetPCOSRisk)
	api.Post("/schedule", handler.Schedule)
	api.Post("/chat", handler.Chat)
	api.Post("/predict", handler.Predict)

	actions := api.Group("/actions")
	actions.Post("/calendar", handler.Calendar)
	actions.Post("/report", handler.Report)
	actions.Post("/hr-email", handler.HREmail)

	sync := api.Group("/sync")
	sync.Get("/status", handler.SyncStatus)
	sync.Post("/drain", handler.SyncDrain)
}

package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) SyncStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"queued": handler.queue.Count(),
		"online": handler.probe.Online(),
	})
}

// SyncDrain replays the offline buffer on demand. The background watcher
// does the same on reconnect; this endpoint exists for explicit retries.
func (handler *Handler) SyncDrain(c *fiber.Ctx) error {
	synced := handler.queue.Drain(c.UserContext())
	response := fiber.Map{"synced": synced}
	if synced > 0 {
		language := handler.requestLanguage(c, "")
		response["message"] = handler.i18n.Translatef(language, "sync.completed", synced)
	}
	return c.JSON(response)
}

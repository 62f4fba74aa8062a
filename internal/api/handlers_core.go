package api

import "github.com/gofiber/fiber/v2"

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) Languages(c *fiber.Ctx) error {
	languages := make([]fiber.Map, 0)
	for _, code := range handler.i18n.SupportedLanguages() {
		languages = append(languages, fiber.Map{
			"code": code,
			"name": handler.i18n.Translate(code, "language.name"),
		})
	}
	return c.JSON(fiber.Map{"languages": languages, "default": handler.i18n.DefaultLanguage()})
}

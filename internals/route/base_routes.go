package route

import (
	"github.com/gofiber/fiber/v2"
)

// BaseRoutes: endpoint dasar (root + healthcheck)
func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "courtclub-backend",
			"status":  "ok",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
}

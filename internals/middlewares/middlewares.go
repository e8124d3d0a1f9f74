package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"courtclub_backend/internals/middlewares/logger"
)

// SetupMiddlewares pasang middleware dasar (urutan penting: recovery paling luar)
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

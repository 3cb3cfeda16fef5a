package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"librarydesk_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain. Route groups add their own
// auth / rate-limit handlers on top of this.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMiddleware "labreserve_backend/internals/middlewares/logger"
)

// SetupMiddlewares wires the base middleware chain in order:
// recovery first so everything below is panic-safe.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMiddleware.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}

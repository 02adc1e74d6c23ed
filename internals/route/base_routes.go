// file: internals/route/base_routes.go
package route

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime = time.Now()

func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		sqlDB, err := db.DB()
		if err != nil {
			dbStatus = "unreachable"
		} else if err := sqlDB.PingContext(c.Context()); err != nil {
			dbStatus = "unreachable"
		}

		code := fiber.StatusOK
		if dbStatus != "ok" {
			code = fiber.StatusServiceUnavailable
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   dbStatus,
			"uptime":   time.Since(startTime).Round(time.Second).String(),
			"checked":  time.Now().Format(time.RFC3339),
			"database": dbStatus,
		})
	})
}

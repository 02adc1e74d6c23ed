// file: internals/route/index.go
package route

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	labRoute "labreserve_backend/internals/features/labs/route"
	"labreserve_backend/internals/features/reservations/repository"
	resvRoute "labreserve_backend/internals/features/reservations/route"
	"labreserve_backend/internals/features/reservations/service"
	"labreserve_backend/internals/mailer"
)

// SetupRoutes wires the storage adapter, the arbitration engine and the
// feature routes onto the app.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	validate := validator.New()
	store := repository.NewGormStore(db)
	engine := service.NewEngine(store, store, store, service.DefaultPolicy(), time.Now)
	mail := mailer.NewFromEnv()

	BaseRoutes(app, db)

	api := app.Group("/api")
	labRoute.LabRoutes(api, db, engine, validate)
	resvRoute.ReservationRoutes(api, engine, validate, mail)
}

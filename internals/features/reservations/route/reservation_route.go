// file: internals/features/reservations/route/reservation_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	resvController "labreserve_backend/internals/features/reservations/controller"
	"labreserve_backend/internals/features/reservations/service"
	"labreserve_backend/internals/mailer"
	"labreserve_backend/internals/middlewares"
)

func ReservationRoutes(api fiber.Router, engine *service.Engine, validate *validator.Validate, m *mailer.Mailer) {
	ctrl := resvController.NewReservationController(engine, validate, m)

	// submissions carry a tighter per-IP budget than reads
	api.Post("/reserve-lab", middlewares.SubmitRateLimiter(), ctrl.Submit)
	api.Get("/reservations/:email", ctrl.GetByEmail)
	api.Delete("/reservations/:id", ctrl.Cancel)

	admin := api.Group("/admin", middlewares.AdminRateLimiter())
	admin.Get("/reservations", ctrl.AdminList)
	admin.Post("/reservations/:id/approve", ctrl.Approve)
	admin.Post("/reservations/:id/reject", ctrl.Reject)
}

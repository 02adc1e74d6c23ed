// file: internals/features/labs/route/lab_route.go
package route

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	labController "labreserve_backend/internals/features/labs/controller"
	"labreserve_backend/internals/features/reservations/service"
)

func LabRoutes(api fiber.Router, db *gorm.DB, engine *service.Engine, validate *validator.Validate) {
	ctrl := labController.NewLabController(db, engine, validate)

	api.Get("/labs", ctrl.GetAll)
	api.Get("/labs/:lab_number/timetable", ctrl.GetTimetable)
	api.Post("/check-availability", ctrl.CheckAvailability)
	api.Post("/suggest-alternatives", ctrl.SuggestAlternatives)
}

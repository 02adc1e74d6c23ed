// file: internals/features/labs/controller/lab_controller.go
package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"labreserve_backend/internals/features/labs/dto"
	labModel "labreserve_backend/internals/features/labs/model"
	resvdto "labreserve_backend/internals/features/reservations/dto"
	"labreserve_backend/internals/features/reservations/service"
	helper "labreserve_backend/internals/helpers"
)

type LabController struct {
	DB       *gorm.DB
	Engine   *service.Engine
	Validate *validator.Validate
}

func NewLabController(db *gorm.DB, engine *service.Engine, validate *validator.Validate) *LabController {
	return &LabController{DB: db, Engine: engine, Validate: validate}
}

/* =======================================================
   GET /api/labs — active lab catalog
   ======================================================= */

func (ctrl *LabController) GetAll(c *fiber.Ctx) error {
	var rows []labModel.LabModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("lab_is_active = ?", true).
		Order("lab_number ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list labs: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch labs")
	}

	out := make([]dto.LabResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToLabResponse(m))
	}
	return helper.Success(c, "Labs fetched successfully", out)
}

/* =======================================================
   GET /api/labs/:lab_number/timetable?date=YYYY-MM-DD
   ======================================================= */

func (ctrl *LabController) GetTimetable(c *fiber.Ctx) error {
	labNumber := c.Params("lab_number")
	date := c.Query("date")
	if date == "" {
		return helper.Error(c, fiber.StatusBadRequest, "Query param date is required (YYYY-MM-DD)")
	}

	var rows []labModel.ScheduleBlockModel
	if err := ctrl.DB.WithContext(c.Context()).
		Where("schedule_block_lab_number = ? AND schedule_block_date = ?", labNumber, date).
		Order("schedule_block_start_time ASC").
		Find(&rows).Error; err != nil {
		log.Printf("[ERROR] list timetable: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	out := make([]dto.ScheduleBlockResponse, 0, len(rows))
	for _, m := range rows {
		out = append(out, dto.ToScheduleBlockResponse(m))
	}
	return helper.Success(c, "Timetable fetched successfully", out)
}

/* =======================================================
   POST /api/check-availability
   ======================================================= */

func (ctrl *LabController) CheckAvailability(c *fiber.Ctx) error {
	var req dto.CheckAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	start, end, ok := req.Window()
	if !ok {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", fiber.Map{
			"session": "either a session or both start_time and end_time are required",
		})
	}

	avail, err := ctrl.Engine.CheckAvailability(c.Context(), req.LabNumber, req.Date, start, end)
	if err != nil {
		return serviceError(c, err, "check availability")
	}

	return helper.Success(c, "Availability checked", dto.ToAvailabilityResponse(req.LabNumber, req.Date, start, end, avail))
}

/* =======================================================
   POST /api/suggest-alternatives
   ======================================================= */

func (ctrl *LabController) SuggestAlternatives(c *fiber.Ctx) error {
	var req dto.SuggestAlternativesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	alt, err := ctrl.Engine.Suggest(c.Context(), req.LabNumber, req.Date, req.StartTime, req.EndTime, req.NumParticipants)
	if err != nil {
		return serviceError(c, err, "suggest alternatives")
	}

	return helper.Success(c, "Alternatives fetched", resvdto.ToAlternativesResponse(&alt))
}

// serviceError maps engine errors onto the response envelope.
func serviceError(c *fiber.Ctx, err error, op string) error {
	var invalid *service.InvalidRequestError
	if errors.As(err, &invalid) {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", invalid.Fields)
	}
	if errors.Is(err, service.ErrNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Resource not found")
	}
	var persistence *service.PersistenceError
	if errors.As(err, &persistence) {
		log.Printf("[ERROR] %s: %v", op, err)
		return helper.Error(c, fiber.StatusServiceUnavailable, "Storage temporarily unavailable, please retry")
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
}

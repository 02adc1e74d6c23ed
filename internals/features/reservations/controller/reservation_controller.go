// file: internals/features/reservations/controller/reservation_controller.go
package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"labreserve_backend/internals/constants"
	"labreserve_backend/internals/features/reservations/dto"
	"labreserve_backend/internals/features/reservations/service"
	helper "labreserve_backend/internals/helpers"
	"labreserve_backend/internals/mailer"
)

type ReservationController struct {
	Engine   *service.Engine
	Validate *validator.Validate
	Mailer   *mailer.Mailer
}

func NewReservationController(engine *service.Engine, validate *validator.Validate, m *mailer.Mailer) *ReservationController {
	return &ReservationController{Engine: engine, Validate: validate, Mailer: m}
}

/* =======================================================
   POST /api/reserve-lab — the arbitration entry point
   ======================================================= */

func (ctrl *ReservationController) Submit(c *fiber.Ctx) error {
	var req dto.ReserveLabRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	out, err := ctrl.Engine.Admit(c.Context(), req.ToServiceRequest())
	if err != nil {
		return ctrl.serviceError(c, err, "admit reservation")
	}

	switch out.Decision {
	case service.DecisionApproved:
		ctrl.Mailer.SendApproval(req.UserEmail, req.LabNumber, req.Date, req.StartTime, req.EndTime, out.ReservationID)
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Reservation approved", dto.ReservationCreatedResponse{
			ReservationID: out.ReservationID,
			Status:        string(constants.StatusApproved),
			PriorityScore: out.Score.Total,
			Breakdown:     dto.ToBreakdownResponse(out.Score.Breakdown),
			Flags:         dto.FlagsToStrings(out.Score.Flags),
		})
	case service.DecisionPending:
		alternatives := dto.ToAlternativesResponse(out.Alternatives)
		ctrl.Mailer.SendPending(req.UserEmail, req.LabNumber, req.Date, req.StartTime, req.EndTime, alternatives)
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Reservation queued for manual review", dto.ReservationCreatedResponse{
			ReservationID: out.ReservationID,
			Status:        string(constants.StatusPending),
			PriorityScore: out.Score.Total,
			Breakdown:     dto.ToBreakdownResponse(out.Score.Breakdown),
			Flags:         dto.FlagsToStrings(out.Score.Flags),
			Alternatives:  alternatives,
		})
	default:
		// nothing was persisted; the payload explains the verdict
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Reservation rejected", dto.ToRejectedResponse(out))
	}
}

/* =======================================================
   GET /api/reservations/:email
   ======================================================= */

func (ctrl *ReservationController) GetByEmail(c *fiber.Ctx) error {
	email := strings.ToLower(strings.TrimSpace(c.Params("email")))
	if err := ctrl.Validate.Var(email, "required,email"); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid email address")
	}

	rows, err := ctrl.Engine.UserReservations(c.Context(), email)
	if err != nil {
		return ctrl.serviceError(c, err, "list user reservations")
	}
	return helper.Success(c, "Reservations fetched successfully", dto.ToReservationResponses(rows))
}

/* =======================================================
   DELETE /api/reservations/:id — cancellation
   ======================================================= */

func (ctrl *ReservationController) Cancel(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid reservation id")
	}

	r, err := ctrl.Engine.Cancel(c.Context(), id)
	if err != nil {
		return ctrl.serviceError(c, err, "cancel reservation")
	}

	ctrl.Mailer.SendCancellation(r.UserEmail, r.LabNumber, r.Date, r.StartTime, r.EndTime)
	return helper.Success(c, "Reservation cancelled", dto.ToReservationResponse(r))
}

/* =======================================================
   Admin: listing and manual review resolution
   ======================================================= */

// GET /api/admin/reservations?status=pending
func (ctrl *ReservationController) AdminList(c *fiber.Ctx) error {
	status := constants.ReservationStatus(strings.ToLower(strings.TrimSpace(c.Query("status"))))
	if status != "" && !status.Valid() {
		return helper.Error(c, fiber.StatusBadRequest, "Unknown status filter")
	}

	rows, err := ctrl.Engine.ReservationsByStatus(c.Context(), status)
	if err != nil {
		return ctrl.serviceError(c, err, "list reservations")
	}
	return helper.Success(c, "Reservations fetched successfully", dto.ToReservationResponses(rows))
}

// POST /api/admin/reservations/:id/approve
func (ctrl *ReservationController) Approve(c *fiber.Ctx) error {
	return ctrl.resolve(c, true)
}

// POST /api/admin/reservations/:id/reject
func (ctrl *ReservationController) Reject(c *fiber.Ctx) error {
	return ctrl.resolve(c, false)
}

func (ctrl *ReservationController) resolve(c *fiber.Ctx, approve bool) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid reservation id")
	}

	r, err := ctrl.Engine.Resolve(c.Context(), id, approve)
	if err != nil {
		var conflict *service.ConflictError
		if errors.As(err, &conflict) {
			return helper.ErrorWithDetails(c, fiber.StatusConflict, "Slot no longer available", fiber.Map{
				"conflict_reason":  string(conflict.Availability.Reason),
				"conflict_details": dto.ToConflictDetails(conflict.Availability),
			})
		}
		return ctrl.serviceError(c, err, "resolve reservation")
	}

	ctrl.Mailer.SendResolution(r.UserEmail, r.LabNumber, r.Date, r.StartTime, r.EndTime, approve)
	msg := "Reservation rejected after review"
	if approve {
		msg = "Reservation approved after review"
	}
	return helper.Success(c, msg, dto.ToReservationResponse(r))
}

/* =======================================================
   Error mapping
   ======================================================= */

func (ctrl *ReservationController) serviceError(c *fiber.Ctx, err error, op string) error {
	var invalid *service.InvalidRequestError
	if errors.As(err, &invalid) {
		return helper.ErrorWithDetails(c, fiber.StatusBadRequest, "Validation failed", invalid.Fields)
	}
	if errors.Is(err, service.ErrNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Reservation not found")
	}
	if errors.Is(err, service.ErrInvalidTransition) {
		return helper.Error(c, fiber.StatusConflict, err.Error())
	}
	var persistence *service.PersistenceError
	if errors.As(err, &persistence) {
		log.Printf("[ERROR] %s: %v", op, err)
		return helper.Error(c, fiber.StatusServiceUnavailable, "Storage temporarily unavailable, please retry")
	}
	log.Printf("[ERROR] %s: %v", op, err)
	return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
}

// file: internals/features/reservations/service/detector.go
package service

import (
	"context"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   Conflict detector — the hard occupancy gate. Pure read:
   the fixed timetable is checked first (it is authoritative
   and always wins the reported reason), then approved
   reservations on the same lab/date.
   ======================================================= */

type ConflictReason string

const (
	ReasonOccupiedByClass ConflictReason = "occupied_by_class"
	ReasonReserved        ConflictReason = "reserved"
)

type ClassConflict struct {
	Class       string
	Section     string
	Subject     string
	FacultyName string
}

type ReservationConflict struct {
	Purpose    constants.Purpose
	ReservedBy string
}

// Availability is a closed variant: exactly one of Class or Reservation
// is set when Available is false.
type Availability struct {
	Available   bool
	Reason      ConflictReason
	Class       *ClassConflict
	Reservation *ReservationConflict
}

// CheckAvailability validates the window and reports hard occupancy for
// [startTime, endTime) on labNumber/date.
func (e *Engine) CheckAvailability(ctx context.Context, labNumber, date, startTime, endTime string) (Availability, error) {
	fields := map[string]string{}
	if labNumber == "" {
		fields["lab_number"] = "required"
	}
	if !validDate(date) {
		fields["date"] = "must be YYYY-MM-DD"
	}
	if !validClock(startTime) {
		fields["start_time"] = "must be HH:MM"
	}
	if !validClock(endTime) {
		fields["end_time"] = "must be HH:MM"
	}
	if len(fields) == 0 && startTime >= endTime {
		fields["end_time"] = "must be after start_time"
	}
	if len(fields) > 0 {
		return Availability{}, &InvalidRequestError{Fields: fields}
	}

	if _, err := e.Labs.GetLab(ctx, labNumber); err != nil {
		if err == ErrNotFound {
			return Availability{}, &InvalidRequestError{Fields: map[string]string{"lab_number": "unknown lab"}}
		}
		return Availability{}, err
	}

	return e.checkWindow(ctx, labNumber, date, startTime, endTime)
}

// checkWindow is the inner scan used by the arbiter and the alternative
// finder; input is assumed valid.
func (e *Engine) checkWindow(ctx context.Context, labNumber, date, startTime, endTime string) (Availability, error) {
	blocks, err := e.Timetable.ListScheduleBlocks(ctx, labNumber, date)
	if err != nil {
		return Availability{}, err
	}
	for _, b := range blocks {
		bs, be := b.Window()
		if overlaps(startTime, endTime, bs, be) {
			return Availability{
				Available: false,
				Reason:    ReasonOccupiedByClass,
				Class: &ClassConflict{
					Class:       b.Class,
					Section:     b.Section,
					Subject:     b.Subject,
					FacultyName: b.FacultyName,
				},
			}, nil
		}
	}

	approved, err := e.Reservations.ListByLabDate(ctx, labNumber, date,
		[]constants.ReservationStatus{constants.StatusApproved})
	if err != nil {
		return Availability{}, err
	}
	for _, r := range approved {
		if overlaps(startTime, endTime, r.StartTime, r.EndTime) {
			return Availability{
				Available: false,
				Reason:    ReasonReserved,
				Reservation: &ReservationConflict{
					Purpose:    r.Purpose,
					ReservedBy: r.UserEmail,
				},
			}, nil
		}
	}

	return Availability{Available: true}, nil
}

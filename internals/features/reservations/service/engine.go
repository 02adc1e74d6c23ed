// file: internals/features/reservations/service/engine.go
package service

import (
	"context"
	"time"

	"labreserve_backend/internals/constants"
)

// Engine is the reservation arbitration engine: conflict detection,
// admission scoring, threshold decisions and alternative search over
// the abstract stores. The clock is injected so scoring and the 24h
// cancellation rule stay testable with fixed time.
type Engine struct {
	Labs         LabCatalog
	Timetable    TimetableReader
	Reservations ReservationStore
	Policy       Policy
	Now          func() time.Time

	locks *keyedMutex
}

func NewEngine(labs LabCatalog, timetable TimetableReader, reservations ReservationStore, policy Policy, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{
		Labs:         labs,
		Timetable:    timetable,
		Reservations: reservations,
		Policy:       policy,
		Now:          now,
		locks:        newKeyedMutex(),
	}
}

// UserReservations lists a user's reservations, newest first.
func (e *Engine) UserReservations(ctx context.Context, email string) ([]Reservation, error) {
	return e.Reservations.ListByUser(ctx, email)
}

// ReservationsByStatus backs the admin listing. An empty status lists
// everything.
func (e *Engine) ReservationsByStatus(ctx context.Context, status constants.ReservationStatus) ([]Reservation, error) {
	return e.Reservations.ListByStatus(ctx, status)
}

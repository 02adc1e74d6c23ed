// file: internals/features/reservations/service/types.go
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   Engine-side domain types. Plain structs, no GORM here:
   the engine talks to storage through the interfaces below
   so the arbitration pipeline stays a pure function of
   (request, store snapshot, clock).
   ======================================================= */

type Lab struct {
	LabNumber string
	Building  string
	Floor     int
	Capacity  int
	Equipment []string
}

type ScheduleBlock struct {
	LabNumber   string
	Date        string // "2006-01-02"
	Session     constants.Session
	Class       string
	Section     string
	Batch       string
	Subject     string
	FacultyName string
	StartTime   string // "HH:MM", falls back to the session window when empty
	EndTime     string
}

// Window returns the [start, end) range the block occupies.
func (b ScheduleBlock) Window() (string, string) {
	if b.StartTime != "" && b.EndTime != "" {
		return b.StartTime, b.EndTime
	}
	if w, ok := b.Session.Window(); ok {
		return w.Start, w.End
	}
	return b.StartTime, b.EndTime
}

type Reservation struct {
	ID              int64
	LabNumber       string
	Date            string // "2006-01-02"
	StartTime       string // "HH:MM", half-open [start, end)
	EndTime         string
	NumParticipants int
	Purpose         constants.Purpose
	Description     string
	UserEmail       string
	UserName        string
	Urgency         constants.Urgency
	Status          constants.ReservationStatus
	PriorityScore   float64
	CreatedAt       time.Time
}

// Request is a reservation submission before arbitration.
type Request struct {
	LabNumber       string
	Date            string
	StartTime       string
	EndTime         string
	NumParticipants int
	Purpose         constants.Purpose
	Description     string
	UserEmail       string
	UserName        string
	Urgency         constants.Urgency
}

/* =======================================================
   Store interfaces (implemented by the GORM repository,
   by in-memory fakes in tests)
   ======================================================= */

type LabCatalog interface {
	ListLabs(ctx context.Context) ([]Lab, error)
	GetLab(ctx context.Context, labNumber string) (Lab, error)
}

type TimetableReader interface {
	ListScheduleBlocks(ctx context.Context, labNumber, date string) ([]ScheduleBlock, error)
}

type ReservationStore interface {
	Insert(ctx context.Context, r *Reservation) error
	GetByID(ctx context.Context, id int64) (Reservation, error)
	ListByLabDate(ctx context.Context, labNumber, date string, statuses []constants.ReservationStatus) ([]Reservation, error)
	ListByUser(ctx context.Context, email string) ([]Reservation, error)
	ListByStatus(ctx context.Context, status constants.ReservationStatus) ([]Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status constants.ReservationStatus) error
}

/* =======================================================
   Error taxonomy
   ======================================================= */

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrConflict is the store-level guard: an insert collided with an
	// overlapping row despite the detector pass.
	ErrConflict = errors.New("conflicting reservation")
)

// InvalidRequestError carries field-level descriptions for malformed or
// semantically impossible input. Reported before any scoring.
type InvalidRequestError struct {
	Fields map[string]string
}

func (e *InvalidRequestError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	sort.Strings(parts)
	return "invalid request: " + strings.Join(parts, "; ")
}

// PersistenceError means the decision succeeded but the commit failed.
// Callers must be able to tell this apart from a rejection.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

/* =======================================================
   Time helpers. Wire times are zero-padded "HH:MM", so
   lexical comparison orders them correctly; parsing is
   only needed for validation and durations.
   ======================================================= */

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// overlaps reports interval overlap of two half-open [start, end) windows.
func overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

func validClock(s string) bool {
	_, err := time.Parse(timeLayout, s)
	return err == nil
}

// clockMinutes converts "HH:MM" to minutes since midnight.
// Callers validate the format first.
func clockMinutes(s string) int {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return 0
	}
	return t.Hour()*60 + t.Minute()
}

// startAt combines date and start time into a wall-clock instant in loc.
func startAt(date, start string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateLayout+" "+timeLayout, date+" "+start, loc)
}

func absMinutes(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

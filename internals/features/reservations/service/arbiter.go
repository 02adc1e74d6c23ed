// file: internals/features/reservations/service/arbiter.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   Arbitration state machine. Created → Approved | Pending |
   Rejected; only favorable decisions persist a reservation.
   The scan → decide → persist sequence runs under the
   per-(lab,date) lock so two concurrent admissions for the
   same slot cannot both pass the detector.
   ======================================================= */

type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionPending  Decision = "pending"
	DecisionRejected Decision = "rejected"
)

type Outcome struct {
	Decision      Decision
	ReservationID int64 // set for approved/pending
	Score         ScoreResult

	// Conflict is set when occupancy rejected the request outright
	// (scoring bypassed).
	Conflict *Availability

	Reason          string
	Recommendations string
	Alternatives    *Alternatives
}

// ConflictError reports a manual approval blocked by current occupancy.
type ConflictError struct {
	Availability Availability
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot no longer available (%s)", e.Availability.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// Admit arbitrates one reservation request.
func (e *Engine) Admit(ctx context.Context, req Request) (*Outcome, error) {
	now := e.Now()

	if err := e.validateRequest(req); err != nil {
		return nil, err
	}
	lab, err := e.Labs.GetLab(ctx, req.LabNumber)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &InvalidRequestError{Fields: map[string]string{"lab_number": "unknown lab"}}
		}
		return nil, err
	}

	key := slotKey(req.LabNumber, req.Date)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	// Hard gate: occupancy rejects outright, scoring is bypassed.
	avail, err := e.checkWindow(ctx, req.LabNumber, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if !avail.Available {
		return e.conflictOutcome(ctx, req, avail), nil
	}

	score := e.Policy.Score(req, lab.Capacity, now)

	switch {
	case score.Total >= e.Policy.ApproveThreshold:
		return e.persistOutcome(ctx, req, score, constants.StatusApproved, false)
	case score.Total >= e.Policy.PendingThreshold:
		return e.persistOutcome(ctx, req, score, constants.StatusPending, true)
	default:
		out := &Outcome{
			Decision:        DecisionRejected,
			Score:           score,
			Reason:          e.Policy.Verdict(score),
			Recommendations: RecommendationsFor(score.Flags),
		}
		out.Alternatives = e.suggestQuietly(ctx, req)
		return out, nil
	}
}

func (e *Engine) persistOutcome(ctx context.Context, req Request, score ScoreResult, status constants.ReservationStatus, withAlternatives bool) (*Outcome, error) {
	r := Reservation{
		LabNumber:       req.LabNumber,
		Date:            req.Date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		NumParticipants: req.NumParticipants,
		Purpose:         req.Purpose,
		Description:     req.Description,
		UserEmail:       req.UserEmail,
		UserName:        req.UserName,
		Urgency:         req.Urgency,
		Status:          status,
		PriorityScore:   score.Total, // set once, never recomputed
		CreatedAt:       e.Now(),
	}
	if err := e.Reservations.Insert(ctx, &r); err != nil {
		if errors.Is(err, ErrConflict) {
			// store-level overlap guard fired (e.g. a second replica
			// without this lock); report it as an occupancy rejection
			avail, cerr := e.checkWindow(ctx, req.LabNumber, req.Date, req.StartTime, req.EndTime)
			if cerr != nil || avail.Available {
				avail = Availability{Available: false, Reason: ReasonReserved}
			}
			return e.conflictOutcome(ctx, req, avail), nil
		}
		return nil, &PersistenceError{Op: "insert reservation", Err: err}
	}

	out := &Outcome{
		Decision:      Decision(status),
		ReservationID: r.ID,
		Score:         score,
	}
	if withAlternatives {
		// pending requesters get guaranteed fallbacks while they wait
		out.Alternatives = e.suggestQuietly(ctx, req)
	}
	return out, nil
}

func (e *Engine) conflictOutcome(ctx context.Context, req Request, avail Availability) *Outcome {
	out := &Outcome{
		Decision: DecisionRejected,
		Conflict: &avail,
	}
	switch avail.Reason {
	case ReasonOccupiedByClass:
		out.Reason = "The lab is occupied by a scheduled class at the requested time."
	default:
		out.Reason = "The lab is already reserved at the requested time."
	}
	out.Recommendations = "Pick one of the suggested alternative labs or time slots"
	out.Alternatives = e.suggestQuietly(ctx, req)
	return out
}

// suggestQuietly attaches alternatives on a best-effort basis: a failed
// lookup never changes an already-made decision.
func (e *Engine) suggestQuietly(ctx context.Context, req Request) *Alternatives {
	alt, err := e.Suggest(ctx, req.LabNumber, req.Date, req.StartTime, req.EndTime, req.NumParticipants)
	if err != nil {
		log.Printf("[WARN] alternative search failed: %v", err)
		return &Alternatives{Labs: []AlternativeLab{}, Times: []AlternativeTime{}}
	}
	return &alt
}

func (e *Engine) validateRequest(req Request) error {
	fields := map[string]string{}
	if strings.TrimSpace(req.LabNumber) == "" {
		fields["lab_number"] = "required"
	}
	if !validDate(req.Date) {
		fields["date"] = "must be YYYY-MM-DD"
	}
	if !validClock(req.StartTime) {
		fields["start_time"] = "must be HH:MM"
	}
	if !validClock(req.EndTime) {
		fields["end_time"] = "must be HH:MM"
	}
	if _, ok := fields["start_time"]; !ok {
		if _, bad := fields["end_time"]; !bad && req.StartTime >= req.EndTime {
			fields["end_time"] = "must be after start_time"
		}
	}
	if req.NumParticipants <= 0 {
		fields["num_participants"] = "must be positive"
	}
	if !req.Purpose.Valid() {
		fields["purpose"] = "unknown purpose"
	}
	if !req.Urgency.Valid() {
		fields["urgency"] = "unknown urgency"
	}
	if strings.TrimSpace(req.UserEmail) == "" {
		fields["user_email"] = "required"
	}
	if strings.TrimSpace(req.UserName) == "" {
		fields["user_name"] = "required"
	}
	if _, bad := fields["date"]; !bad {
		if _, badEnd := fields["end_time"]; !badEnd {
			end, err := startAt(req.Date, req.EndTime, e.Now().Location())
			if err != nil || !end.After(e.Now()) {
				fields["date"] = "session is in the past"
			}
		}
	}
	if len(fields) > 0 {
		return &InvalidRequestError{Fields: fields}
	}
	return nil
}

/* =======================================================
   Cancellation and manual review resolution
   ======================================================= */

// Cancel cancels a reservation by id, enforcing the cutoff rule:
// allowed only while now ≤ start − CancelCutoff. Cancelling an already
// cancelled reservation is an idempotent success.
func (e *Engine) Cancel(ctx context.Context, id int64) (Reservation, error) {
	r, err := e.Reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	key := slotKey(r.LabNumber, r.Date)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	// reload under the lock; a concurrent resolve may have moved it
	r, err = e.Reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	if r.Status == constants.StatusCancelled {
		return r, nil
	}
	if !r.Status.CanTransitionTo(constants.StatusCancelled) {
		return Reservation{}, fmt.Errorf("%w: %s → cancelled", ErrInvalidTransition, r.Status)
	}

	start, err := startAt(r.Date, r.StartTime, e.Now().Location())
	if err != nil {
		return Reservation{}, fmt.Errorf("corrupted reservation schedule: %w", err)
	}
	if e.Now().After(start.Add(-e.Policy.CancelCutoff)) {
		return Reservation{}, fmt.Errorf("%w: cancellation closes %s before the session starts",
			ErrInvalidTransition, e.Policy.CancelCutoff)
	}

	if err := e.Reservations.UpdateStatus(ctx, id, constants.StatusCancelled); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reservation{}, err
		}
		return Reservation{}, &PersistenceError{Op: "cancel reservation", Err: err}
	}
	r.Status = constants.StatusCancelled
	return r, nil
}

// Resolve settles a pending reservation after manual review. Approval
// re-checks occupancy under the slot lock; the timetable or an earlier
// approval may have claimed the window since submission.
func (e *Engine) Resolve(ctx context.Context, id int64, approve bool) (Reservation, error) {
	r, err := e.Reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	key := slotKey(r.LabNumber, r.Date)
	e.locks.Lock(key)
	defer e.locks.Unlock(key)

	r, err = e.Reservations.GetByID(ctx, id)
	if err != nil {
		return Reservation{}, err
	}

	target := constants.StatusRejected
	if approve {
		target = constants.StatusApproved
	}
	if r.Status == target {
		return r, nil
	}
	if !r.Status.CanTransitionTo(target) {
		return Reservation{}, fmt.Errorf("%w: %s → %s", ErrInvalidTransition, r.Status, target)
	}

	if approve {
		avail, err := e.checkWindow(ctx, r.LabNumber, r.Date, r.StartTime, r.EndTime)
		if err != nil {
			return Reservation{}, err
		}
		if !avail.Available {
			return Reservation{}, &ConflictError{Availability: avail}
		}
	}

	if err := e.Reservations.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Reservation{}, err
		}
		return Reservation{}, &PersistenceError{Op: "resolve reservation", Err: err}
	}
	r.Status = target
	return r, nil
}

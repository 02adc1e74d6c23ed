// file: internals/features/reservations/service/arbiter_test.go
package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"labreserve_backend/internals/constants"
)

func TestAdmitApproves(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)

	out, err := e.Admit(context.Background(), strongRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Decision != DecisionApproved {
		t.Fatalf("decision = %s, want approved (score %v)", out.Decision, out.Score.Total)
	}
	if out.ReservationID == 0 {
		t.Error("approved outcome must carry the persisted id")
	}

	r, err := store.GetByID(context.Background(), out.ReservationID)
	if err != nil {
		t.Fatalf("reservation not persisted: %v", err)
	}
	if r.Status != constants.StatusApproved {
		t.Errorf("persisted status = %s, want approved", r.Status)
	}
	if r.PriorityScore != out.Score.Total {
		t.Errorf("persisted score %v != outcome score %v", r.PriorityScore, out.Score.Total)
	}
}

func TestAdmitPendingWithAlternatives(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)

	// plausible but unremarkable: lands between the thresholds
	req := strongRequest()
	req.Purpose = constants.PurposeMeeting
	req.Description = "Monthly sync to plan the upcoming semester activities"
	req.UserEmail = "organizer@gmail.com"

	out, err := e.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Decision != DecisionPending {
		t.Fatalf("decision = %s, want pending (score %v)", out.Decision, out.Score.Total)
	}
	if out.Score.Total < e.Policy.PendingThreshold || out.Score.Total >= e.Policy.ApproveThreshold {
		t.Errorf("score %v not in the review band [%v, %v)",
			out.Score.Total, e.Policy.PendingThreshold, e.Policy.ApproveThreshold)
	}
	if out.Alternatives == nil {
		t.Error("pending outcomes must carry alternatives")
	}

	r, err := store.GetByID(context.Background(), out.ReservationID)
	if err != nil {
		t.Fatalf("reservation not persisted: %v", err)
	}
	if r.Status != constants.StatusPending {
		t.Errorf("persisted status = %s, want pending", r.Status)
	}
}

func TestAdmitRejectsWithoutPersisting(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)

	out, err := e.Admit(context.Background(), weakRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Decision != DecisionRejected {
		t.Fatalf("decision = %s, want rejected (score %v)", out.Decision, out.Score.Total)
	}
	if out.ReservationID != 0 {
		t.Error("rejected outcomes must not allocate an id")
	}
	if len(store.rows) != 0 {
		t.Errorf("rejection persisted %d rows", len(store.rows))
	}
	if out.Reason == "" || out.Recommendations == "" {
		t.Errorf("rejection must explain itself: reason=%q recommendations=%q",
			out.Reason, out.Recommendations)
	}
	if out.Alternatives == nil {
		t.Error("rejected outcomes must carry alternatives")
	}
}

func TestAdmitConflictBypassesScoring(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)

	// perfectly-scored request on a slot the timetable owns
	req := strongRequest()
	req.LabNumber = "E401"
	req.Date = "2025-10-15"

	out, err := e.Admit(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Decision != DecisionRejected {
		t.Fatalf("decision = %s, want rejected", out.Decision)
	}
	if out.Conflict == nil || out.Conflict.Reason != ReasonOccupiedByClass {
		t.Fatalf("conflict = %+v, want occupied_by_class", out.Conflict)
	}
	if out.Score.Total != 0 {
		t.Errorf("occupancy conflicts must not be scored, got %v", out.Score.Total)
	}
	if len(store.rows) != 0 {
		t.Errorf("conflict persisted %d rows", len(store.rows))
	}
}

func TestAdmitPersistenceFailureIsNotARejection(t *testing.T) {
	store := newMemStore()
	store.failNext = errors.New("connection reset")
	e := newTestEngine(store)

	out, err := e.Admit(context.Background(), strongRequest())
	if out != nil {
		t.Fatalf("no outcome expected on storage failure, got %+v", out)
	}
	var pe *PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("want PersistenceError, got %v", err)
	}
	var invalid *InvalidRequestError
	if errors.As(err, &invalid) {
		t.Error("storage failure must be distinguishable from invalid input")
	}
}

func TestAdmitStoreConflictBecomesRejection(t *testing.T) {
	// the store-level overlap guard fires even though the detector
	// passed (e.g. a second replica without this process lock)
	store := newMemStore()
	store.failNext = ErrConflict
	e := newTestEngine(store)

	out, err := e.Admit(context.Background(), strongRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Decision != DecisionRejected || out.Conflict == nil {
		t.Errorf("want conflict rejection, got %+v", out)
	}
}

func TestAdmitConcurrentSameSlotApprovesExactlyOne(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)

	const n = 16
	var wg sync.WaitGroup
	outcomes := make([]*Outcome, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := e.Admit(context.Background(), strongRequest())
			if err != nil {
				t.Errorf("admit %d: %v", i, err)
				return
			}
			outcomes[i] = out
		}(i)
	}
	wg.Wait()

	if got := store.countByStatus(constants.StatusApproved); got != 1 {
		t.Fatalf("approved rows = %d, want exactly 1", got)
	}
	approved, conflicted := 0, 0
	for _, out := range outcomes {
		if out == nil {
			continue
		}
		switch {
		case out.Decision == DecisionApproved:
			approved++
		case out.Conflict != nil:
			conflicted++
		}
	}
	if approved != 1 || conflicted != n-1 {
		t.Errorf("approved=%d conflicted=%d, want 1 and %d", approved, conflicted, n-1)
	}
}

func TestAdmitValidation(t *testing.T) {
	e := newTestEngine(newMemStore())

	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"past session", func(r *Request) { r.Date = "2025-09-30" }, "date"},
		{"zero participants", func(r *Request) { r.NumParticipants = 0 }, "num_participants"},
		{"bad purpose", func(r *Request) { r.Purpose = "party" }, "purpose"},
		{"bad urgency", func(r *Request) { r.Urgency = "asap" }, "urgency"},
		{"missing email", func(r *Request) { r.UserEmail = "" }, "user_email"},
		{"missing name", func(r *Request) { r.UserName = "  " }, "user_name"},
		{"inverted window", func(r *Request) { r.StartTime, r.EndTime = "11:00", "09:00" }, "end_time"},
		{"unknown lab", func(r *Request) { r.LabNumber = "Z999" }, "lab_number"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := strongRequest()
			tc.mutate(&req)
			_, err := e.Admit(context.Background(), req)
			var invalid *InvalidRequestError
			if !errors.As(err, &invalid) {
				t.Fatalf("want InvalidRequestError, got %v", err)
			}
			if _, ok := invalid.Fields[tc.field]; !ok {
				t.Errorf("fields %v should name %q", invalid.Fields, tc.field)
			}
		})
	}
}

/* ---------- cancellation ---------- */

func seedReservation(store *memStore, status constants.ReservationStatus, date, start, end string) int64 {
	store.mu.Lock()
	defer store.mu.Unlock()
	id := store.nextID
	store.nextID++
	store.rows[id] = Reservation{
		ID: id, LabNumber: "E402", Date: date,
		StartTime: start, EndTime: end,
		NumParticipants: 20, Purpose: constants.PurposeWorkshop,
		UserEmail: "club@vnrvjiet.ac.in", UserName: "Club",
		Urgency: constants.UrgencyNormal, Status: status,
	}
	return id
}

func TestCancelBeforeCutoff(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	id := seedReservation(store, constants.StatusApproved, "2025-10-08", "09:00", "11:00")

	r, err := e.Cancel(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != constants.StatusCancelled {
		t.Errorf("status = %s, want cancelled", r.Status)
	}

	// cancelling again is an idempotent success
	r, err = e.Cancel(context.Background(), id)
	if err != nil {
		t.Fatalf("second cancel: %v", err)
	}
	if r.Status != constants.StatusCancelled {
		t.Errorf("second cancel status = %s, want cancelled", r.Status)
	}
}

func TestCancelInsideCutoffRefused(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	// starts this evening, well inside the 24h window
	id := seedReservation(store, constants.StatusApproved, "2025-10-01", "18:00", "20:00")

	_, err := e.Cancel(context.Background(), id)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if r, _ := store.GetByID(context.Background(), id); r.Status != constants.StatusApproved {
		t.Errorf("refused cancel must not change status, got %s", r.Status)
	}
}

func TestCancelRejectedRefused(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	id := seedReservation(store, constants.StatusRejected, "2025-10-08", "09:00", "11:00")

	_, err := e.Cancel(context.Background(), id)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestCancelUnknownID(t *testing.T) {
	e := newTestEngine(newMemStore())
	_, err := e.Cancel(context.Background(), 404)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

/* ---------- manual review resolution ---------- */

func TestResolveApprove(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	id := seedReservation(store, constants.StatusPending, "2025-10-08", "09:00", "11:00")

	r, err := e.Resolve(context.Background(), id, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != constants.StatusApproved {
		t.Errorf("status = %s, want approved", r.Status)
	}

	// resolving to the same target again is idempotent
	if _, err := e.Resolve(context.Background(), id, true); err != nil {
		t.Errorf("repeat approve: %v", err)
	}
}

func TestResolveReject(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	id := seedReservation(store, constants.StatusPending, "2025-10-08", "09:00", "11:00")

	r, err := e.Resolve(context.Background(), id, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != constants.StatusRejected {
		t.Errorf("status = %s, want rejected", r.Status)
	}
}

func TestResolveApproveRechecksOccupancy(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	pending := seedReservation(store, constants.StatusPending, "2025-10-08", "09:00", "11:00")
	// the slot was claimed while the request sat in review
	seedReservation(store, constants.StatusApproved, "2025-10-08", "10:00", "12:00")

	_, err := e.Resolve(context.Background(), pending, true)
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if !errors.Is(err, ErrConflict) {
		t.Error("ConflictError must unwrap to ErrConflict")
	}
	if r, _ := store.GetByID(context.Background(), pending); r.Status != constants.StatusPending {
		t.Errorf("blocked approve must not change status, got %s", r.Status)
	}

	// rejecting the same reservation needs no occupancy check
	if _, err := e.Resolve(context.Background(), pending, false); err != nil {
		t.Errorf("reject after blocked approve: %v", err)
	}
}

func TestResolveApprovedToRejectedRefused(t *testing.T) {
	store := newMemStore()
	e := newTestEngine(store)
	id := seedReservation(store, constants.StatusApproved, "2025-10-08", "09:00", "11:00")

	_, err := e.Resolve(context.Background(), id, false)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

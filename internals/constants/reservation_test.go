// file: internals/constants/reservation_test.go
package constants

import "testing"

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, true},
		{StatusApproved, StatusCancelled, true},
		{StatusApproved, StatusRejected, false},
		{StatusApproved, StatusPending, false},
		{StatusRejected, StatusApproved, false},
		{StatusRejected, StatusCancelled, false},
		{StatusCancelled, StatusApproved, false},
		{StatusCancelled, StatusPending, false},
	}
	for _, tc := range tests {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s → %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestTerminalStatuses(t *testing.T) {
	for st, terminal := range map[ReservationStatus]bool{
		StatusPending:   false,
		StatusApproved:  false,
		StatusRejected:  true,
		StatusCancelled: true,
	} {
		if got := st.Terminal(); got != terminal {
			t.Errorf("%s.Terminal() = %v, want %v", st, got, terminal)
		}
	}
}

func TestSessionWindows(t *testing.T) {
	tests := []struct {
		session    Session
		start, end string
	}{
		{SessionMorning, "09:00", "12:00"},
		{SessionAfternoon, "13:00", "16:00"},
		{SessionEvening, "16:00", "19:00"},
	}
	for _, tc := range tests {
		w, ok := tc.session.Window()
		if !ok || w.Start != tc.start || w.End != tc.end {
			t.Errorf("%s window = %+v (%v), want %s-%s", tc.session, w, ok, tc.start, tc.end)
		}
	}

	if _, ok := Session("night").Window(); ok {
		t.Error("unknown session must not resolve a window")
	}
}

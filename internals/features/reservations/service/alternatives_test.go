// file: internals/features/reservations/service/alternatives_test.go
package service

import (
	"context"
	"errors"
	"testing"

	"labreserve_backend/internals/constants"
)

func TestSuggestAlternativeLabs(t *testing.T) {
	e := newTestEngine(newMemStore())

	alt, err := e.Suggest(context.Background(), "E401", "2025-10-15", "09:00", "11:00", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// CS-Lab3 (cap 10) is too small, E401 is the requested lab itself;
	// E202 and E402 remain, closest capacity fit first.
	if len(alt.Labs) != 2 {
		t.Fatalf("labs = %+v, want E202 and E402", alt.Labs)
	}
	if alt.Labs[0].LabNumber != "E202" || alt.Labs[1].LabNumber != "E402" {
		t.Errorf("lab order = [%s %s], want [E202 E402] (capacity ascending)",
			alt.Labs[0].LabNumber, alt.Labs[1].LabNumber)
	}
	if alt.Labs[0].Capacity != 30 || alt.Labs[0].Building != "Engineering Block" {
		t.Errorf("lab details lost in mapping: %+v", alt.Labs[0])
	}
}

func TestSuggestAlternativeTimes(t *testing.T) {
	e := newTestEngine(newMemStore())

	alt, err := e.Suggest(context.Background(), "E401", "2025-10-15", "09:00", "11:00", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// morning is blocked by the class; afternoon and evening are free,
	// ordered by proximity to the requested 09:00 start
	if len(alt.Times) != 2 {
		t.Fatalf("times = %+v, want afternoon and evening", alt.Times)
	}
	if alt.Times[0].Session != constants.SessionAfternoon || alt.Times[1].Session != constants.SessionEvening {
		t.Errorf("time order = [%s %s], want [afternoon evening]",
			alt.Times[0].Session, alt.Times[1].Session)
	}
	if alt.Times[0].StartTime != "13:00" || alt.Times[0].EndTime != "16:00" {
		t.Errorf("afternoon window = %s-%s, want 13:00-16:00",
			alt.Times[0].StartTime, alt.Times[0].EndTime)
	}
}

func TestSuggestSkipsRequestedWindowAndShortSessions(t *testing.T) {
	e := newTestEngine(newMemStore())

	// the request already is the morning window; it must never come back
	// as its own alternative
	alt, err := e.Suggest(context.Background(), "E402", "2025-10-15", "09:00", "12:00", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, tm := range alt.Times {
		if tm.Session == constants.SessionMorning {
			t.Errorf("requested window echoed back: %+v", tm)
		}
	}

	// a four-hour request fits no three-hour session
	alt, err = e.Suggest(context.Background(), "E402", "2025-10-15", "09:00", "13:00", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(alt.Times) != 0 {
		t.Errorf("times = %+v, want none (sessions too short)", alt.Times)
	}
}

func TestSuggestEmptyListsAreNotAnError(t *testing.T) {
	e := newTestEngine(newMemStore())

	// nothing on campus seats 500 people
	alt, err := e.Suggest(context.Background(), "E401", "2025-10-15", "09:00", "11:00", 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if alt.Labs == nil || alt.Times == nil {
		t.Error("lists must be empty, not nil, for stable JSON")
	}
	if len(alt.Labs) != 0 {
		t.Errorf("labs = %+v, want none", alt.Labs)
	}
}

func TestSuggestInvalidInput(t *testing.T) {
	e := newTestEngine(newMemStore())

	_, err := e.Suggest(context.Background(), "E401", "2025-10-15", "11:00", "09:00", 0)
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("want InvalidRequestError, got %v", err)
	}
	if _, ok := invalid.Fields["end_time"]; !ok {
		t.Errorf("fields %v should name end_time", invalid.Fields)
	}
	if _, ok := invalid.Fields["num_participants"]; !ok {
		t.Errorf("fields %v should name num_participants", invalid.Fields)
	}
}

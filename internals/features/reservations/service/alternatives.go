// file: internals/features/reservations/service/alternatives.go
package service

import (
	"context"
	"sort"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   Alternative finder — substitute labs at the same time and
   substitute session windows in the same lab. Pure read; one
   detector scan per candidate, bounded by catalog size plus
   the three canonical sessions.
   ======================================================= */

type AlternativeLab struct {
	LabNumber string
	Building  string
	Floor     int
	Capacity  int
	Equipment []string
}

type AlternativeTime struct {
	StartTime string
	EndTime   string
	Session   constants.Session
}

type Alternatives struct {
	Labs  []AlternativeLab
	Times []AlternativeTime
}

// Suggest searches for usable substitutes when a request cannot be
// granted as asked. Both lists may be empty; that is a reportable
// outcome, not an error.
func (e *Engine) Suggest(ctx context.Context, labNumber, date, startTime, endTime string, numParticipants int) (Alternatives, error) {
	fields := map[string]string{}
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
	if numParticipants <= 0 {
		fields["num_participants"] = "must be positive"
	}
	if len(fields) > 0 {
		return Alternatives{}, &InvalidRequestError{Fields: fields}
	}

	out := Alternatives{
		Labs:  []AlternativeLab{},
		Times: []AlternativeTime{},
	}

	labs, err := e.Labs.ListLabs(ctx)
	if err != nil {
		return Alternatives{}, err
	}
	for _, lab := range labs {
		if lab.LabNumber == labNumber || lab.Capacity < numParticipants {
			continue
		}
		avail, err := e.checkWindow(ctx, lab.LabNumber, date, startTime, endTime)
		if err != nil {
			return Alternatives{}, err
		}
		if avail.Available {
			out.Labs = append(out.Labs, AlternativeLab{
				LabNumber: lab.LabNumber,
				Building:  lab.Building,
				Floor:     lab.Floor,
				Capacity:  lab.Capacity,
				Equipment: lab.Equipment,
			})
		}
	}
	// closest-fit first, never a needlessly oversized room at the top
	sort.Slice(out.Labs, func(i, j int) bool {
		if out.Labs[i].Capacity != out.Labs[j].Capacity {
			return out.Labs[i].Capacity < out.Labs[j].Capacity
		}
		return out.Labs[i].LabNumber < out.Labs[j].LabNumber
	})

	wanted := clockMinutes(endTime) - clockMinutes(startTime)
	requestedStart := clockMinutes(startTime)
	for _, session := range constants.SessionOrder {
		w, _ := session.Window()
		if w.Start == startTime && w.End == endTime {
			// never recommend the originally requested window
			continue
		}
		if clockMinutes(w.End)-clockMinutes(w.Start) < wanted {
			continue
		}
		avail, err := e.checkWindow(ctx, labNumber, date, w.Start, w.End)
		if err != nil {
			return Alternatives{}, err
		}
		if avail.Available {
			out.Times = append(out.Times, AlternativeTime{
				StartTime: w.Start,
				EndTime:   w.End,
				Session:   session,
			})
		}
	}
	// chronological proximity to the requested start
	sort.SliceStable(out.Times, func(i, j int) bool {
		di := absMinutes(clockMinutes(out.Times[i].StartTime), requestedStart)
		dj := absMinutes(clockMinutes(out.Times[j].StartTime), requestedStart)
		return di < dj
	})

	return out, nil
}

// file: internals/features/reservations/service/fakes_test.go
package service

import (
	"context"
	"sync"
	"time"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   In-memory fakes backing the engine tests. The store is
   mutex-guarded so concurrency tests exercise real
   interleavings; failNext lets a test inject one storage
   failure at the commit step.
   ======================================================= */

type memCatalog struct {
	labs []Lab
}

func (c *memCatalog) ListLabs(ctx context.Context) ([]Lab, error) {
	out := make([]Lab, len(c.labs))
	copy(out, c.labs)
	return out, nil
}

func (c *memCatalog) GetLab(ctx context.Context, labNumber string) (Lab, error) {
	for _, l := range c.labs {
		if l.LabNumber == labNumber {
			return l, nil
		}
	}
	return Lab{}, ErrNotFound
}

type memTimetable struct {
	blocks []ScheduleBlock
}

func (t *memTimetable) ListScheduleBlocks(ctx context.Context, labNumber, date string) ([]ScheduleBlock, error) {
	var out []ScheduleBlock
	for _, b := range t.blocks {
		if b.LabNumber == labNumber && b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

type memStore struct {
	mu       sync.Mutex
	nextID   int64
	rows     map[int64]Reservation
	failNext error
}

func newMemStore() *memStore {
	return &memStore{nextID: 1, rows: make(map[int64]Reservation)}
}

func (s *memStore) Insert(ctx context.Context, r *Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	r.ID = s.nextID
	s.nextID++
	s.rows[r.ID] = *r
	return nil
}

func (s *memStore) GetByID(ctx context.Context, id int64) (Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return Reservation{}, ErrNotFound
	}
	return r, nil
}

func (s *memStore) ListByLabDate(ctx context.Context, labNumber, date string, statuses []constants.ReservationStatus) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reservation
	for _, r := range s.rows {
		if r.LabNumber != labNumber || r.Date != date {
			continue
		}
		if len(statuses) > 0 {
			match := false
			for _, st := range statuses {
				if r.Status == st {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *memStore) ListByUser(ctx context.Context, email string) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reservation
	for _, r := range s.rows {
		if r.UserEmail == email {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListByStatus(ctx context.Context, status constants.ReservationStatus) ([]Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Reservation
	for _, r := range s.rows {
		if status == "" || r.Status == status {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) UpdateStatus(ctx context.Context, id int64, status constants.ReservationStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return ErrNotFound
	}
	r.Status = status
	s.rows[id] = r
	return nil
}

func (s *memStore) countByStatus(status constants.ReservationStatus) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rows {
		if r.Status == status {
			n++
		}
	}
	return n
}

/* ---------- shared fixtures ---------- */

// testNow is the frozen clock every engine test runs against.
var testNow = time.Date(2025, 10, 1, 8, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func testCatalog() *memCatalog {
	return &memCatalog{labs: []Lab{
		{LabNumber: "CS-Lab3", Building: "CS Block", Floor: 2, Capacity: 10, Equipment: []string{"Computers"}},
		{LabNumber: "E202", Building: "Engineering Block", Floor: 2, Capacity: 30, Equipment: []string{"Computers"}},
		{LabNumber: "E401", Building: "Engineering Block", Floor: 4, Capacity: 60, Equipment: []string{"Computers", "Projector"}},
		{LabNumber: "E402", Building: "Engineering Block", Floor: 4, Capacity: 50, Equipment: []string{"Computers", "Projector"}},
	}}
}

func testTimetable() *memTimetable {
	return &memTimetable{blocks: []ScheduleBlock{
		{
			LabNumber:   "E401",
			Date:        "2025-10-15",
			Session:     constants.SessionMorning,
			Class:       "CSDS",
			Section:     "A",
			Batch:       "2022",
			Subject:     "Operating Systems",
			FacultyName: "Dr. Madhuri",
			StartTime:   "09:00",
			EndTime:     "11:00",
		},
	}}
}

func newTestEngine(store *memStore) *Engine {
	return NewEngine(testCatalog(), testTimetable(), store, DefaultPolicy(), fixedClock)
}

// strongRequest scores well above the approval threshold.
func strongRequest() Request {
	return Request{
		LabNumber:       "E402",
		Date:            "2025-10-08",
		StartTime:       "09:00",
		EndTime:         "11:00",
		NumParticipants: 40,
		Purpose:         constants.PurposeExam,
		Description:     "Mid-term examination for CS-301 Data Structures conducted by Dr. Madhuri",
		UserEmail:       "exam.cell@vnrvjiet.ac.in",
		UserName:        "Dr. Madhuri",
		Urgency:         constants.UrgencyNormal,
	}
}

// weakRequest trips every scoring flag and lands far below the pending
// threshold.
func weakRequest() Request {
	return Request{
		LabNumber:       "E401",
		Date:            "2025-10-01",
		StartTime:       "09:00",
		EndTime:         "11:00",
		NumParticipants: 5,
		Purpose:         constants.PurposeOther,
		Description:     "need lab",
		UserEmail:       "someone@gmail.com",
		UserName:        "Someone",
		Urgency:         constants.UrgencyHigh,
	}
}

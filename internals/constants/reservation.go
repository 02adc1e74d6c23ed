// file: internals/constants/reservation.go
package constants

/* =======================================================
   Session — canonical time-of-day windows for the timetable
   ======================================================= */

type Session string

const (
	SessionMorning   Session = "morning"
	SessionAfternoon Session = "afternoon"
	SessionEvening   Session = "evening"
)

// SessionWindow is the canonical [start, end) range of a session,
// "HH:MM" 24h. Reservations use finer-grained times; the timetable
// only knows these three windows.
type SessionWindow struct {
	Start string
	End   string
}

var sessionWindows = map[Session]SessionWindow{
	SessionMorning:   {Start: "09:00", End: "12:00"},
	SessionAfternoon: {Start: "13:00", End: "16:00"},
	SessionEvening:   {Start: "16:00", End: "19:00"},
}

// SessionOrder is the fixed evaluation order for alternative time search.
var SessionOrder = []Session{SessionMorning, SessionAfternoon, SessionEvening}

func (s Session) Valid() bool {
	_, ok := sessionWindows[s]
	return ok
}

func (s Session) Window() (SessionWindow, bool) {
	w, ok := sessionWindows[s]
	return w, ok
}

/* =======================================================
   Purpose
   ======================================================= */

type Purpose string

const (
	PurposeEmergency Purpose = "emergency"
	PurposeExam      Purpose = "exam"
	PurposeEvent     Purpose = "event"
	PurposeLecture   Purpose = "lecture"
	PurposeWorkshop  Purpose = "workshop"
	PurposeMeeting   Purpose = "meeting"
	PurposePractice  Purpose = "practice"
	PurposeOther     Purpose = "other"
)

var validPurposes = map[Purpose]bool{
	PurposeEmergency: true,
	PurposeExam:      true,
	PurposeEvent:     true,
	PurposeLecture:   true,
	PurposeWorkshop:  true,
	PurposeMeeting:   true,
	PurposePractice:  true,
	PurposeOther:     true,
}

func (p Purpose) Valid() bool { return validPurposes[p] }

/* =======================================================
   Urgency
   ======================================================= */

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyNormal Urgency = "normal"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

var validUrgencies = map[Urgency]bool{
	UrgencyLow:    true,
	UrgencyNormal: true,
	UrgencyMedium: true,
	UrgencyHigh:   true,
}

func (u Urgency) Valid() bool { return validUrgencies[u] }

/* =======================================================
   Reservation status
   ======================================================= */

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCancelled ReservationStatus = "cancelled"
)

var validStatuses = map[ReservationStatus]bool{
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusCancelled: true,
}

func (s ReservationStatus) Valid() bool { return validStatuses[s] }

// Terminal reports whether no further transition is allowed from s.
func (s ReservationStatus) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// CanTransitionTo enforces the status lifecycle:
// pending → approved|rejected|cancelled, approved → cancelled.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected || next == StatusCancelled
	case StatusApproved:
		return next == StatusCancelled
	default:
		return false
	}
}

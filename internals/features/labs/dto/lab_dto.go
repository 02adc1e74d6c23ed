// file: internals/features/labs/dto/lab_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"labreserve_backend/internals/constants"
	labModel "labreserve_backend/internals/features/labs/model"
	"labreserve_backend/internals/features/reservations/service"
)

/* =======================================================
   LAB CATALOG
   ======================================================= */

type LabResponse struct {
	LabNumber string   `json:"lab_number"`
	Building  string   `json:"building"`
	Floor     int      `json:"floor"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment"`
	IsActive  bool     `json:"is_active"`
}

func ToLabResponse(m labModel.LabModel) LabResponse {
	var equipment []string
	if len(m.LabEquipment) > 0 {
		_ = sonic.Unmarshal(m.LabEquipment, &equipment)
	}
	if equipment == nil {
		equipment = []string{}
	}
	return LabResponse{
		LabNumber: m.LabNumber,
		Building:  m.LabBuilding,
		Floor:     m.LabFloor,
		Capacity:  m.LabCapacity,
		Equipment: equipment,
		IsActive:  m.LabIsActive,
	}
}

/* =======================================================
   AVAILABILITY CHECK
   ======================================================= */

type CheckAvailabilityRequest struct {
	LabNumber string `json:"lab_number" validate:"required,max=20"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	// Either a named session or an explicit window.
	Session   string `json:"session" validate:"omitempty,oneof=morning afternoon evening"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

func (r *CheckAvailabilityRequest) Normalize() {
	r.LabNumber = strings.TrimSpace(r.LabNumber)
	r.Date = strings.TrimSpace(r.Date)
	r.Session = strings.ToLower(strings.TrimSpace(r.Session))
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
}

// Window resolves the effective [start, end) range: explicit times win,
// otherwise the named session's canonical window applies.
func (r CheckAvailabilityRequest) Window() (start, end string, ok bool) {
	if r.StartTime != "" && r.EndTime != "" {
		return r.StartTime, r.EndTime, true
	}
	if w, found := constants.Session(r.Session).Window(); found {
		return w.Start, w.End, true
	}
	return "", "", false
}

type AvailabilityDetailsResponse struct {
	Class       string `json:"class,omitempty"`
	Section     string `json:"section,omitempty"`
	Subject     string `json:"subject,omitempty"`
	FacultyName string `json:"faculty_name,omitempty"`
	Purpose     string `json:"purpose,omitempty"`
	ReservedBy  string `json:"reserved_by,omitempty"`
}

type AvailabilityResponse struct {
	Available bool                         `json:"available"`
	LabNumber string                       `json:"lab_number"`
	Date      string                       `json:"date"`
	StartTime string                       `json:"start_time"`
	EndTime   string                       `json:"end_time"`
	Reason    string                       `json:"reason,omitempty"`
	Details   *AvailabilityDetailsResponse `json:"details,omitempty"`
}

func ToAvailabilityResponse(labNumber, date, start, end string, a service.Availability) AvailabilityResponse {
	resp := AvailabilityResponse{
		Available: a.Available,
		LabNumber: labNumber,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	if a.Available {
		return resp
	}
	resp.Reason = string(a.Reason)
	switch {
	case a.Class != nil:
		resp.Details = &AvailabilityDetailsResponse{
			Class:       a.Class.Class,
			Section:     a.Class.Section,
			Subject:     a.Class.Subject,
			FacultyName: a.Class.FacultyName,
		}
	case a.Reservation != nil:
		resp.Details = &AvailabilityDetailsResponse{
			Purpose:    string(a.Reservation.Purpose),
			ReservedBy: a.Reservation.ReservedBy,
		}
	}
	return resp
}

/* =======================================================
   ALTERNATIVE SUGGESTION
   ======================================================= */

type SuggestAlternativesRequest struct {
	LabNumber       string `json:"lab_number" validate:"required,max=20"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	NumParticipants int    `json:"num_participants" validate:"required,min=1"`
}

func (r *SuggestAlternativesRequest) Normalize() {
	r.LabNumber = strings.TrimSpace(r.LabNumber)
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
}

/* =======================================================
   TIMETABLE (read-only listing for the frontend)
   ======================================================= */

type ScheduleBlockResponse struct {
	LabNumber   string `json:"lab_number"`
	Date        string `json:"date"`
	Session     string `json:"session"`
	Class       string `json:"class"`
	Section     string `json:"section"`
	Batch       string `json:"batch"`
	Subject     string `json:"subject"`
	FacultyName string `json:"faculty_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func ToScheduleBlockResponse(m labModel.ScheduleBlockModel) ScheduleBlockResponse {
	return ScheduleBlockResponse{
		LabNumber:   m.ScheduleBlockLabNumber,
		Date:        time.Time(m.ScheduleBlockDate).Format("2006-01-02"),
		Session:     m.ScheduleBlockSession,
		Class:       m.ScheduleBlockClass,
		Section:     m.ScheduleBlockSection,
		Batch:       m.ScheduleBlockBatch,
		Subject:     m.ScheduleBlockSubject,
		FacultyName: m.ScheduleBlockFacultyName,
		StartTime:   m.ScheduleBlockStartTime.HHMM(),
		EndTime:     m.ScheduleBlockEndTime.HHMM(),
	}
}

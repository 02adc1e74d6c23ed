// file: internals/features/reservations/dto/reservation_dto.go
package dto

import (
	"strings"

	"labreserve_backend/internals/constants"
	"labreserve_backend/internals/features/reservations/service"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type ReserveLabRequest struct {
	LabNumber       string `json:"lab_number" validate:"required,max=20"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	NumParticipants int    `json:"num_participants" validate:"required,min=1"`
	Purpose         string `json:"purpose" validate:"required,oneof=emergency exam event lecture workshop meeting practice other"`
	Description     string `json:"description" validate:"required"`
	UserEmail       string `json:"user_email" validate:"required,email"`
	UserName        string `json:"user_name" validate:"required,max=100"`
	Urgency         string `json:"urgency" validate:"omitempty,oneof=low normal medium high"`
}

func (r *ReserveLabRequest) Normalize() {
	r.LabNumber = strings.TrimSpace(r.LabNumber)
	r.Date = strings.TrimSpace(r.Date)
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.Purpose = strings.ToLower(strings.TrimSpace(r.Purpose))
	r.Description = strings.TrimSpace(r.Description)
	r.UserEmail = strings.ToLower(strings.TrimSpace(r.UserEmail))
	r.UserName = strings.TrimSpace(r.UserName)
	r.Urgency = strings.ToLower(strings.TrimSpace(r.Urgency))
	if r.Urgency == "" {
		r.Urgency = string(constants.UrgencyNormal)
	}
}

func (r ReserveLabRequest) ToServiceRequest() service.Request {
	return service.Request{
		LabNumber:       r.LabNumber,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		NumParticipants: r.NumParticipants,
		Purpose:         constants.Purpose(r.Purpose),
		Description:     r.Description,
		UserEmail:       r.UserEmail,
		UserName:        r.UserName,
		Urgency:         constants.Urgency(r.Urgency),
	}
}

/* =======================================================
   SCORING RESPONSE PARTS
   ======================================================= */

type BreakdownResponse struct {
	Capacity     float64 `json:"capacity"`
	Authenticity float64 `json:"authenticity"`
	Timing       float64 `json:"timing"`
}

type DetailedExplanationResponse struct {
	CapacityIssue     string `json:"capacity_issue,omitempty"`
	AuthenticityIssue string `json:"authenticity_issue,omitempty"`
	TimingIssue       string `json:"timing_issue,omitempty"`
}

func ToBreakdownResponse(b service.Breakdown) BreakdownResponse {
	return BreakdownResponse{
		Capacity:     b.Capacity,
		Authenticity: b.Authenticity,
		Timing:       b.Timing,
	}
}

func FlagsToStrings(flags []service.Flag) []string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, string(f))
	}
	return out
}

/* =======================================================
   ALTERNATIVES
   ======================================================= */

type AlternativeLabResponse struct {
	LabNumber string   `json:"lab_number"`
	Building  string   `json:"building"`
	Floor     int      `json:"floor"`
	Capacity  int      `json:"capacity"`
	Equipment []string `json:"equipment,omitempty"`
}

type AlternativeTimeResponse struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Session   string `json:"session"`
}

type AlternativesResponse struct {
	AlternativeLabs  []AlternativeLabResponse  `json:"alternative_labs"`
	AlternativeTimes []AlternativeTimeResponse `json:"alternative_times"`
}

func ToAlternativesResponse(a *service.Alternatives) *AlternativesResponse {
	if a == nil {
		return nil
	}
	out := &AlternativesResponse{
		AlternativeLabs:  make([]AlternativeLabResponse, 0, len(a.Labs)),
		AlternativeTimes: make([]AlternativeTimeResponse, 0, len(a.Times)),
	}
	for _, l := range a.Labs {
		out.AlternativeLabs = append(out.AlternativeLabs, AlternativeLabResponse{
			LabNumber: l.LabNumber,
			Building:  l.Building,
			Floor:     l.Floor,
			Capacity:  l.Capacity,
			Equipment: l.Equipment,
		})
	}
	for _, t := range a.Times {
		out.AlternativeTimes = append(out.AlternativeTimes, AlternativeTimeResponse{
			StartTime: t.StartTime,
			EndTime:   t.EndTime,
			Session:   string(t.Session),
		})
	}
	return out
}

/* =======================================================
   SUBMISSION OUTCOME
   ======================================================= */

type ReservationCreatedResponse struct {
	ReservationID int64                 `json:"reservation_id"`
	Status        string                `json:"status"`
	PriorityScore float64               `json:"priority_score"`
	Breakdown     BreakdownResponse     `json:"breakdown"`
	Flags         []string              `json:"flags"`
	Alternatives  *AlternativesResponse `json:"alternatives,omitempty"`
}

type ConflictDetailsResponse struct {
	// occupied_by_class
	Class       string `json:"class,omitempty"`
	Section     string `json:"section,omitempty"`
	Subject     string `json:"subject,omitempty"`
	FacultyName string `json:"faculty_name,omitempty"`
	// reserved
	Purpose    string `json:"purpose,omitempty"`
	ReservedBy string `json:"reserved_by,omitempty"`
}

type ReservationRejectedResponse struct {
	Rejected            bool                        `json:"rejected"`
	Score               float64                     `json:"score"`
	Breakdown           BreakdownResponse           `json:"breakdown"`
	Flags               []string                    `json:"flags"`
	Reason              string                      `json:"reason"`
	Recommendations     string                      `json:"recommendations"`
	DetailedExplanation DetailedExplanationResponse `json:"detailed_explanation"`
	ConflictReason      string                      `json:"conflict_reason,omitempty"`
	ConflictDetails     *ConflictDetailsResponse    `json:"conflict_details,omitempty"`
	Alternatives        *AlternativesResponse       `json:"alternatives"`
}

func ToRejectedResponse(out *service.Outcome) ReservationRejectedResponse {
	resp := ReservationRejectedResponse{
		Rejected:        true,
		Score:           out.Score.Total,
		Breakdown:       ToBreakdownResponse(out.Score.Breakdown),
		Flags:           FlagsToStrings(out.Score.Flags),
		Reason:          out.Reason,
		Recommendations: out.Recommendations,
		DetailedExplanation: DetailedExplanationResponse{
			CapacityIssue:     out.Score.CapacityIssue,
			AuthenticityIssue: out.Score.AuthenticityIssue,
			TimingIssue:       out.Score.TimingIssue,
		},
		Alternatives: ToAlternativesResponse(out.Alternatives),
	}
	if out.Conflict != nil {
		resp.ConflictReason = string(out.Conflict.Reason)
		resp.ConflictDetails = ToConflictDetails(*out.Conflict)
	}
	return resp
}

func ToConflictDetails(a service.Availability) *ConflictDetailsResponse {
	switch {
	case a.Class != nil:
		return &ConflictDetailsResponse{
			Class:       a.Class.Class,
			Section:     a.Class.Section,
			Subject:     a.Class.Subject,
			FacultyName: a.Class.FacultyName,
		}
	case a.Reservation != nil:
		return &ConflictDetailsResponse{
			Purpose:    string(a.Reservation.Purpose),
			ReservedBy: a.Reservation.ReservedBy,
		}
	default:
		return nil
	}
}

/* =======================================================
   LISTING
   ======================================================= */

type ReservationResponse struct {
	ReservationID   int64   `json:"reservation_id"`
	LabNumber       string  `json:"lab_number"`
	Date            string  `json:"date"`
	StartTime       string  `json:"start_time"`
	EndTime         string  `json:"end_time"`
	NumParticipants int     `json:"num_participants"`
	Purpose         string  `json:"purpose"`
	Description     string  `json:"description"`
	UserEmail       string  `json:"user_email"`
	UserName        string  `json:"user_name"`
	Urgency         string  `json:"urgency"`
	Status          string  `json:"status"`
	PriorityScore   float64 `json:"priority_score"`
	CreatedAt       string  `json:"created_at"`
}

func ToReservationResponse(r service.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID:   r.ID,
		LabNumber:       r.LabNumber,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		NumParticipants: r.NumParticipants,
		Purpose:         string(r.Purpose),
		Description:     r.Description,
		UserEmail:       r.UserEmail,
		UserName:        r.UserName,
		Urgency:         string(r.Urgency),
		Status:          string(r.Status),
		PriorityScore:   r.PriorityScore,
		CreatedAt:       r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ToReservationResponses(rows []service.Reservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, ToReservationResponse(r))
	}
	return out
}

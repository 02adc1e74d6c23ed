// file: internals/features/reservations/service/scorer.go
package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"labreserve_backend/internals/constants"
)

/* =======================================================
   Admission scorer — a deterministic, pure function of the
   request, the lab capacity, the policy and the injected
   clock. Three sub-scores (capacity 30, authenticity 35,
   timing 35) sum to a 0–100 total.
   ======================================================= */

type Flag string

const (
	FlagOverCapacity     Flag = "over_capacity"
	FlagLowUtilization   Flag = "low_utilization"
	FlagVagueDescription Flag = "vague_description"
	FlagGenericPurpose   Flag = "generic_purpose"
	FlagShortNotice      Flag = "short_notice"
	FlagUrgencyMismatch  Flag = "urgency_mismatch"
)

type Breakdown struct {
	Capacity     float64
	Authenticity float64
	Timing       float64
}

type ScoreResult struct {
	Total     float64
	Breakdown Breakdown
	Flags     []Flag

	// Populated only when the sub-score falls below IssueRatio × weight.
	CapacityIssue     string
	AuthenticityIssue string
	TimingIssue       string
}

func (r ScoreResult) HasFlag(f Flag) bool {
	for _, x := range r.Flags {
		if x == f {
			return true
		}
	}
	return false
}

// Description detail patterns: concrete specifics score, generic
// urgency claims do not.
var (
	courseCodeRe = regexp.MustCompile(`\b[a-z]{2,4}\s*-?\s*\d{2,4}\b|\bcourse\s+\w+`)
	honorificRe  = regexp.MustCompile(`\b(dr|prof|professor)\.?\s+[a-z]+`)
	timeWordRe   = regexp.MustCompile(`\b(\d{1,2}:\d{2}|am|pm|morning|afternoon|evening|monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	venueRe      = regexp.MustCompile(`\b(room|hall|auditorium|lab|building|block|floor)\s+[a-z0-9-]+\b`)

	institutionalEmailRe = regexp.MustCompile(`@[a-z0-9.-]*(\.edu(\.[a-z]{2})?|\.ac\.[a-z]{2}|university|college|institute)`)
	basicEmailRe         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// Score runs the full admission scoring for req against a lab capacity.
func (p Policy) Score(req Request, capacity int, now time.Time) ScoreResult {
	var res ScoreResult

	util := float64(req.NumParticipants) / float64(capacity)
	res.Breakdown.Capacity = p.scoreCapacity(util, &res)
	res.Breakdown.Authenticity = p.scoreAuthenticity(req, &res)
	res.Breakdown.Timing = p.scoreTiming(req, now, &res)

	total := res.Breakdown.Capacity + res.Breakdown.Authenticity + res.Breakdown.Timing
	if res.HasFlag(FlagOverCapacity) && total > p.OverCapacityCeiling {
		// capacity is a hard ceiling: an oversized request can never
		// outscore the rejection threshold
		total = p.OverCapacityCeiling
	}
	res.Total = round2(math.Min(100, math.Max(0, total)))

	p.fillIssues(util, &res)
	return res
}

/* ---------- capacity (0..CapacityWeight) ---------- */

func (p Policy) scoreCapacity(util float64, res *ScoreResult) float64 {
	w := p.CapacityWeight
	switch {
	case util > 1.0:
		res.Flags = append(res.Flags, FlagOverCapacity)
		return round2(0.15 * w)
	case util >= p.EfficientUtilMin:
		// 50–100% of the room: efficient use, full marks
		return w
	default:
		if util < p.WastefulUtilMax {
			res.Flags = append(res.Flags, FlagLowUtilization)
		}
		return round2(w * util / p.EfficientUtilMin)
	}
}

/* ---------- authenticity (0..AuthenticityWeight) ---------- */

func (p Policy) scoreAuthenticity(req Request, res *ScoreResult) float64 {
	desc := strings.ToLower(strings.TrimSpace(req.Description))
	descLen := len([]rune(desc))

	// Detail quality (0–15): specifics beat length alone.
	var detail float64
	if descLen < p.MinDescriptionLen {
		res.Flags = append(res.Flags, FlagVagueDescription)
	} else {
		detail = 8
		for _, re := range []*regexp.Regexp{courseCodeRe, honorificRe, timeWordRe, venueRe} {
			if re.MatchString(desc) {
				detail += 2.5
			}
		}
		detail = math.Min(15, detail)
	}

	// Institutional email (0–8).
	var email float64
	lowerMail := strings.ToLower(strings.TrimSpace(req.UserEmail))
	switch {
	case institutionalEmailRe.MatchString(lowerMail):
		email = 8
	case basicEmailRe.MatchString(lowerMail):
		email = 4
	}

	// Purpose/description consistency (0–12).
	var consistency float64
	if req.Purpose == constants.PurposeOther {
		if descLen < p.MinDescriptionLen {
			// "other" with nothing to elaborate it
			res.Flags = append(res.Flags, FlagGenericPurpose)
		} else {
			consistency = 6
		}
	} else {
		consistency = 7
		if strings.Contains(desc, string(req.Purpose)) {
			consistency = 12
		} else if (req.Purpose == constants.PurposeExam || req.Purpose == constants.PurposeLecture) &&
			courseCodeRe.MatchString(desc) {
			// exam/lecture naming a concrete course counts as consistent
			consistency = 12
		}
	}

	return round2(math.Min(p.AuthenticityWeight, detail+email+consistency))
}

/* ---------- timing (0..TimingWeight) ---------- */

func (p Policy) scoreTiming(req Request, now time.Time, res *ScoreResult) float64 {
	// Advance notice (0–20): booking ahead beats last-minute.
	var advance float64 = 2
	if start, err := startAt(req.Date, req.StartTime, now.Location()); err == nil {
		lead := start.Sub(now)
		switch {
		case lead < p.MinLeadTime:
			res.Flags = append(res.Flags, FlagShortNotice)
			advance = 2
		case lead < 24*time.Hour:
			advance = 8
		case lead < 72*time.Hour:
			advance = 14
		case lead < 14*24*time.Hour:
			advance = 18
		default:
			advance = 20
		}
	}

	// Urgency/purpose alignment (0–15).
	alignment, mismatch := urgencyAlignment(req.Urgency, req.Purpose)
	if mismatch {
		res.Flags = append(res.Flags, FlagUrgencyMismatch)
	}

	return round2(math.Min(p.TimingWeight, advance+alignment))
}

// urgencyAlignment scores how plausible the claimed urgency is for the
// purpose. high+emergency is full marks; high urgency on a routine
// purpose is a mismatch.
func urgencyAlignment(u constants.Urgency, p constants.Purpose) (float64, bool) {
	switch u {
	case constants.UrgencyHigh:
		switch p {
		case constants.PurposeEmergency:
			return 15, false
		case constants.PurposeExam:
			return 13, false
		case constants.PurposeEvent, constants.PurposeLecture:
			return 11, false
		case constants.PurposeWorkshop:
			return 8, false
		default: // meeting, practice, other
			return 3, true
		}
	case constants.UrgencyMedium:
		switch p {
		case constants.PurposeEmergency:
			return 12, false
		case constants.PurposeMeeting, constants.PurposePractice, constants.PurposeOther:
			return 6, false
		default:
			return 10, false
		}
	case constants.UrgencyLow:
		if p == constants.PurposeEmergency {
			return 5, false
		}
		return 8, false
	default: // normal
		if p == constants.PurposeEmergency {
			return 8, false
		}
		return 10, false
	}
}

/* ---------- explanations ---------- */

func (p Policy) fillIssues(util float64, res *ScoreResult) {
	if res.Breakdown.Capacity < p.IssueRatio*p.CapacityWeight {
		if util > 1.0 {
			res.CapacityIssue = fmt.Sprintf(
				"Participants exceed the lab capacity (%.0f%% utilization). Pick a larger lab or reduce attendance.",
				util*100)
		} else {
			res.CapacityIssue = fmt.Sprintf(
				"Poor capacity fit (%.0f%% utilization). A smaller lab would match your group size.",
				util*100)
		}
	}
	if res.Breakdown.Authenticity < p.IssueRatio*p.AuthenticityWeight {
		switch {
		case res.HasFlag(FlagVagueDescription):
			res.AuthenticityIssue = "Description is too short to verify. Add specifics: course, faculty, agenda."
		case res.HasFlag(FlagGenericPurpose):
			res.AuthenticityIssue = "Purpose \"other\" needs an elaborating description."
		default:
			res.AuthenticityIssue = "Request lacks verifiable detail. Name the course, faculty or event."
		}
	}
	if res.Breakdown.Timing < p.IssueRatio*p.TimingWeight {
		switch {
		case res.HasFlag(FlagShortNotice) && res.HasFlag(FlagUrgencyMismatch):
			res.TimingIssue = "Last-minute request with urgency that does not match the stated purpose."
		case res.HasFlag(FlagShortNotice):
			res.TimingIssue = "Very short notice. Book further ahead of the session."
		case res.HasFlag(FlagUrgencyMismatch):
			res.TimingIssue = "Claimed urgency does not match the stated purpose."
		default:
			res.TimingIssue = "Low timing score. Earlier booking improves priority."
		}
	}
}

// Verdict renders the human-readable rejection reason, summarizing the
// dominant failing sub-score.
func (p Policy) Verdict(res ScoreResult) string {
	type shortfall struct {
		name  string
		ratio float64
		issue string
	}
	worst := shortfall{name: "overall", ratio: 0}
	for _, s := range []shortfall{
		{"capacity fit", 1 - res.Breakdown.Capacity/p.CapacityWeight, res.CapacityIssue},
		{"authenticity", 1 - res.Breakdown.Authenticity/p.AuthenticityWeight, res.AuthenticityIssue},
		{"timing", 1 - res.Breakdown.Timing/p.TimingWeight, res.TimingIssue},
	} {
		if s.ratio > worst.ratio {
			worst = s
		}
	}
	if worst.issue != "" {
		return fmt.Sprintf("Score %.1f/100 is below the minimum %.0f. Main problem is %s: %s",
			res.Total, p.PendingThreshold, worst.name, worst.issue)
	}
	return fmt.Sprintf("Score %.1f/100 is below the minimum %.0f.", res.Total, p.PendingThreshold)
}

// RecommendationsFor is the rendering step from the closed flag set to
// user-facing advice; kept separate from scoring on purpose.
func RecommendationsFor(flags []Flag) string {
	var out []string
	for _, f := range flags {
		switch f {
		case FlagOverCapacity:
			out = append(out, "Choose a lab with enough seats for every participant")
		case FlagLowUtilization:
			out = append(out, "Choose a smaller lab to match your group size")
		case FlagVagueDescription:
			out = append(out, "Add specific details: faculty names, dates, course codes, agenda")
		case FlagGenericPurpose:
			out = append(out, "Pick a concrete purpose or explain what the booking is for")
		case FlagShortNotice:
			out = append(out, "Submit requests at least a few hours before the session")
		case FlagUrgencyMismatch:
			out = append(out, "Use an urgency level that matches the purpose")
		}
	}
	if len(out) == 0 {
		return "Improve the overall score by strengthening capacity fit and request detail"
	}
	return strings.Join(out, " | ")
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

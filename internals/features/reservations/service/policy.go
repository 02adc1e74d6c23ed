// file: internals/features/reservations/service/policy.go
package service

import "time"

// Policy holds the tunable arbitration constants. The thresholds and
// weights were calibrated against the response contract the client
// consumes; treat them as configuration, not fixed truths.
type Policy struct {
	// Sub-score weights; they must sum to 100.
	CapacityWeight     float64
	AuthenticityWeight float64
	TimingWeight       float64

	// Decision thresholds: total ≥ ApproveThreshold auto-approves,
	// total ≥ PendingThreshold holds for review, anything below rejects.
	ApproveThreshold float64
	PendingThreshold float64

	// EfficientUtilMin is the utilization ratio below which capacity
	// points start to fall off (under-use of a larger room).
	EfficientUtilMin float64

	// WastefulUtilMax flags requests that fill less than this share of
	// the room.
	WastefulUtilMax float64

	// OverCapacityCeiling caps the total score whenever participants
	// exceed capacity, guaranteeing rejection.
	OverCapacityCeiling float64

	// MinDescriptionLen is the minimum description length (runes) before
	// the vague_description flag fires.
	MinDescriptionLen int

	// MinLeadTime is the shortest acceptable notice before the session
	// starts; shorter submissions are flagged short_notice.
	MinLeadTime time.Duration

	// IssueRatio: a sub-score below IssueRatio×weight populates its
	// *_issue explanation for the caller.
	IssueRatio float64

	// CancelCutoff: cancellation is allowed only while
	// now ≤ start − CancelCutoff.
	CancelCutoff time.Duration
}

func DefaultPolicy() Policy {
	return Policy{
		CapacityWeight:      30,
		AuthenticityWeight:  35,
		TimingWeight:        35,
		ApproveThreshold:    80,
		PendingThreshold:    50,
		EfficientUtilMin:    0.50,
		WastefulUtilMax:     0.25,
		OverCapacityCeiling: 49,
		MinDescriptionLen:   30,
		MinLeadTime:         2 * time.Hour,
		IssueRatio:          0.70,
		CancelCutoff:        24 * time.Hour,
	}
}

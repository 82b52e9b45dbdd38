package entity

import "fmt"

// PatientStatus represents a patient's position in the radiotherapy journey.
type PatientStatus string

const (
	StatusRegistered            PatientStatus = "REGISTERED"
	StatusIntakeCompleted       PatientStatus = "INTAKE_COMPLETED"
	StatusConsultationCompleted PatientStatus = "CONSULTATION_COMPLETED"
	StatusScanned               PatientStatus = "SCANNED"
	StatusPlanning              PatientStatus = "PLANNING"
	StatusPlanReady             PatientStatus = "PLAN_READY"
	StatusTreating              PatientStatus = "TREATING"
	StatusTreatmentCompleted    PatientStatus = "TREATMENT_COMPLETED"
	StatusReview1Pending        PatientStatus = "REVIEW_1_PENDING"
	StatusReview2Pending        PatientStatus = "REVIEW_2_PENDING"
	StatusReview3Pending        PatientStatus = "REVIEW_3_PENDING"
	StatusReviewsCompleted      PatientStatus = "REVIEWS_COMPLETED"
	StatusJourneyComplete       PatientStatus = "JOURNEY_COMPLETE"
)

// legalTransitions is the single source of truth for the journey graph.
// Every status write in the system must pass through CanTransition; no call
// site re-derives legality on its own.
//
// PLANNING and TREATING are patient-visible statuses that can be set outside
// the API (e.g. directly by clinic systems). They have outgoing edges so a
// patient parked in either state can still move forward, but no endpoint
// sets them.
var legalTransitions = map[PatientStatus][]PatientStatus{
	StatusRegistered:            {StatusIntakeCompleted, StatusScanned},
	StatusIntakeCompleted:       {StatusConsultationCompleted},
	StatusConsultationCompleted: {StatusScanned},
	StatusScanned:               {StatusPlanning, StatusPlanReady},
	StatusPlanning:              {StatusPlanReady},
	StatusPlanReady:             {StatusTreating, StatusTreatmentCompleted},
	StatusTreating:              {StatusTreatmentCompleted},
	StatusTreatmentCompleted:    {StatusReview1Pending},
	StatusReview1Pending:        {StatusReview2Pending},
	StatusReview2Pending:        {StatusReview3Pending},
	StatusReview3Pending:        {StatusReviewsCompleted},
	StatusReviewsCompleted:      {StatusJourneyComplete, StatusScanned},
	StatusJourneyComplete:       {},
}

// IsValid reports whether s is a known journey status.
func (s PatientStatus) IsValid() bool {
	_, ok := legalTransitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (s PatientStatus) IsTerminal() bool {
	return len(legalTransitions[s]) == 0
}

// CanTransition reports whether from -> to is an edge of the journey graph.
// This covers the single restart edge (REVIEWS_COMPLETED -> SCANNED) as well
// as the forward path.
func CanTransition(from, to PatientStatus) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ReviewPendingStatus returns the status for an outstanding review number.
func ReviewPendingStatus(reviewNumber int) (PatientStatus, bool) {
	switch reviewNumber {
	case 1:
		return StatusReview1Pending, true
	case 2:
		return StatusReview2Pending, true
	case 3:
		return StatusReview3Pending, true
	}
	return "", false
}

// statusGuidance maps a status to the guidance shown when a transition is
// refused because the patient is already in (or past) that state. The UI
// surfaces these verbatim, so they are phrased for patients and staff, not
// for logs.
var statusGuidance = map[PatientStatus]string{
	StatusRegistered:            "Patient has not completed medical intake yet",
	StatusIntakeCompleted:       "Medical intake already submitted; consultation is the next step",
	StatusConsultationCompleted: "Consultation already completed; awaiting CT scan",
	StatusScanned:               "CT scan already logged; awaiting treatment plan",
	StatusPlanning:              "Treatment planning is in progress",
	StatusPlanReady:             "A treatment plan has already been published",
	StatusTreating:              "Patient is currently under treatment",
	StatusTreatmentCompleted:    "Treatment already completed; reviews can now be scheduled",
	StatusReview1Pending:        "Review 1 is still outstanding",
	StatusReview2Pending:        "Review 2 is still outstanding",
	StatusReview3Pending:        "Review 3 is still outstanding",
	StatusReviewsCompleted:      "All reviews completed; awaiting outcome decision",
	StatusJourneyComplete:       "Treatment journey is already complete",
}

// Guidance returns the human-readable explanation for refusing a transition
// out of s.
func (s PatientStatus) Guidance() string {
	if g, ok := statusGuidance[s]; ok {
		return g
	}
	return "Patient is in an unexpected state"
}

// StatusGuardViolation is returned when a journey action is attempted from a
// status that does not permit it. It carries the guidance message so the
// caller can show state-specific help instead of a generic error.
type StatusGuardViolation struct {
	Action        string
	CurrentStatus PatientStatus
	Guidance      string
}

func (e *StatusGuardViolation) Error() string {
	return fmt.Sprintf("cannot %s while patient status is %s: %s", e.Action, e.CurrentStatus, e.Guidance)
}

// NewGuardViolation builds a StatusGuardViolation with the standard guidance
// for the given current status.
func NewGuardViolation(action string, current PatientStatus) *StatusGuardViolation {
	return &StatusGuardViolation{
		Action:        action,
		CurrentStatus: current,
		Guidance:      current.Guidance(),
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CareGuidanceRequest is the structured care guidance published with a plan.
type CareGuidanceRequest struct {
	NutritionalInterventions map[string]string `json:"nutritional_interventions" validate:"omitempty"`
	SkinCareDos              []string          `json:"skin_care_dos" validate:"omitempty,dive,min=1"`
	SkinCareDonts            []string          `json:"skin_care_donts" validate:"omitempty,dive,min=1"`
	ImmobilizationDevice     string            `json:"immobilization_device" validate:"omitempty"`
	SetupNotes               string            `json:"setup_notes" validate:"omitempty"`
}

// PublishPlanRequest creates and publishes a treatment plan in one action.
// StartDate must fall within [today, today+6 months].
type PublishPlanRequest struct {
	TreatmentType    string               `json:"treatment_type" validate:"required,oneof=external_beam brachytherapy"`
	NumSessions      int                  `json:"num_sessions" validate:"required,gte=1,lte=50"`
	StartDate        string               `json:"start_date" validate:"required"` // Format: YYYY-MM-DD
	StartTime        string               `json:"start_time" validate:"required"` // Format: HH:MM
	PrepInstructions string               `json:"prep_instructions" validate:"omitempty"`
	CareGuidance     *CareGuidanceRequest `json:"care_guidance" validate:"omitempty"`
	ConsultantName   string               `json:"consultant_name" validate:"omitempty,min=2"`
}

// FinalizeJourneyRequest records the success decision for the course.
type FinalizeJourneyRequest struct {
	OutcomeNotes string `json:"outcome_notes" validate:"omitempty"`
}

// RestartTreatmentRequest retires the current course and sends the patient
// back to the planning queue. The reason is mandatory: it becomes the
// retired plan's outcome notes.
type RestartTreatmentRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

// Response DTOs

type PlanResponse struct {
	ID               uuid.UUID              `json:"id"`
	PatientID        uuid.UUID              `json:"patient_id"`
	TreatmentType    string                 `json:"treatment_type"`
	NumSessions      int                    `json:"num_sessions"`
	StartAt          time.Time              `json:"start_at"`
	PrepInstructions string                 `json:"prep_instructions,omitempty"`
	CareGuidance     map[string]interface{} `json:"care_guidance,omitempty"`
	IsPublished      bool                   `json:"is_published"`
	IsSuccessful     *bool                  `json:"is_successful,omitempty"`
	OutcomeNotes     string                 `json:"outcome_notes,omitempty"`
	DecidedAt        *time.Time             `json:"decided_at,omitempty"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

type PlanListResponse struct {
	Plans []PlanResponse `json:"plans"`
	Total int            `json:"total"`
}

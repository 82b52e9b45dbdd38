package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// SubmitIntakeRequest carries the structured medical-history questionnaire.
// MedicalHistory must be non-empty: submitting intake is what flips
// onboarding_completed.
type SubmitIntakeRequest struct {
	MedicalHistory map[string]interface{} `json:"medical_history" validate:"required,min=1"`
	RiskFlags      []string               `json:"risk_flags" validate:"omitempty,dive,min=1"`
}

// Response DTOs

type PatientResponse struct {
	ID                  uuid.UUID              `json:"id"`
	MRN                 string                 `json:"mrn"`
	FullName            string                 `json:"full_name"`
	Email               string                 `json:"email"`
	DateOfBirth         string                 `json:"date_of_birth"`
	AdmissionDate       string                 `json:"admission_date"`
	CurrentStatus       string                 `json:"current_status"`
	OnboardingCompleted bool                   `json:"onboarding_completed"`
	MedicalHistory      map[string]interface{} `json:"medical_history,omitempty"`
	RiskFlags           []string               `json:"risk_flags,omitempty"`
	ConsultantName      *string                `json:"consultant_name,omitempty"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}

// TransitionResponse is returned by every journey action: the patient's new
// position plus whatever record the action created.
type TransitionResponse struct {
	Patient *PatientResponse `json:"patient"`
	Plan    *PlanResponse    `json:"plan,omitempty"`
	Reviews []ReviewResponse `json:"reviews,omitempty"`
	Review  *ReviewResponse  `json:"review,omitempty"`
	Scan    *ScanLogResponse `json:"scan,omitempty"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// TreatmentType represents the radiotherapy modality of a plan
type TreatmentType string

const (
	TreatmentTypeExternalBeam  TreatmentType = "external_beam"
	TreatmentTypeBrachytherapy TreatmentType = "brachytherapy"
)

// Session count bounds for a treatment course
const (
	MinTreatmentSessions = 1
	MaxTreatmentSessions = 50
)

// PlanStartWindowMonths is how far into the future a course may be
// scheduled to begin.
const PlanStartWindowMonths = 6

// TreatmentPlan represents one treatment course for a patient. At most one
// plan per patient is published at any time; a restart retires the current
// plan before a new one can be created, so historical rows accumulate.
type TreatmentPlan struct {
	ID               uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	TreatmentType    TreatmentType `gorm:"type:varchar(30);not null" json:"treatment_type"`
	NumSessions      int           `gorm:"not null" json:"num_sessions"`
	StartAt          time.Time     `gorm:"not null" json:"start_at"`
	PrepInstructions string        `gorm:"type:text" json:"prep_instructions,omitempty"`
	CareGuidance     JSON          `gorm:"type:jsonb" json:"care_guidance,omitempty"`
	IsPublished      bool          `gorm:"not null;default:false;index" json:"is_published"`
	IsSuccessful     *bool         `json:"is_successful,omitempty"`
	OutcomeNotes     string        `gorm:"type:text" json:"outcome_notes,omitempty"`
	DecidedAt        *time.Time    `json:"decided_at,omitempty"`
	DecidedBy        *uuid.UUID    `gorm:"type:uuid" json:"decided_by,omitempty"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Reviews []TreatmentReview `gorm:"foreignKey:PlanID" json:"reviews,omitempty"`
}

func (TreatmentPlan) TableName() string {
	return "treatment_plans"
}

// IsDecided reports whether an outcome has been recorded for this plan.
func (p *TreatmentPlan) IsDecided() bool {
	return p.IsSuccessful != nil
}

// ValidTreatmentType reports whether t is a known modality.
func ValidTreatmentType(t TreatmentType) bool {
	return t == TreatmentTypeExternalBeam || t == TreatmentTypeBrachytherapy
}

// ValidPlanStart reports whether a course may begin at start, relative to
// today: no earlier than today and no later than six calendar months out,
// inclusive at both ends.
func ValidPlanStart(start, today time.Time) bool {
	if start.Before(today) {
		return false
	}
	return !start.After(today.AddDate(0, PlanStartWindowMonths, 0))
}

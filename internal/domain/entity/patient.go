package entity

import (
	"time"

	"github.com/google/uuid"
)

// Patient represents a registered individual moving through the radiotherapy
// journey. One row per person, paired 1:1 with a User account.
type Patient struct {
	ID                  uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID              uuid.UUID     `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	MRN                 string        `gorm:"column:mrn;type:varchar(20);uniqueIndex;not null" json:"mrn"`
	FullName            string        `gorm:"type:varchar(255);not null" json:"full_name"`
	Email               string        `gorm:"type:varchar(255);not null" json:"email"`
	DateOfBirth         time.Time     `gorm:"type:date;not null" json:"date_of_birth"`
	AdmissionDate       time.Time     `gorm:"type:date;not null" json:"admission_date"`
	CurrentStatus       PatientStatus `gorm:"type:varchar(30);not null;default:'REGISTERED';index" json:"current_status"`
	OnboardingCompleted bool          `gorm:"not null;default:false" json:"onboarding_completed"`
	MedicalHistory      JSON          `gorm:"type:jsonb" json:"medical_history,omitempty"`
	RiskFlags           StringSet     `gorm:"type:jsonb" json:"risk_flags,omitempty"`
	ConsultantName      *string       `gorm:"type:varchar(255)" json:"consultant_name,omitempty"`
	CreatedAt           time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User    User              `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Plans   []TreatmentPlan   `gorm:"foreignKey:PatientID" json:"plans,omitempty"`
	Reviews []TreatmentReview `gorm:"foreignKey:PatientID" json:"reviews,omitempty"`
	Scans   []ScanLog         `gorm:"foreignKey:PatientID" json:"scans,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// HasMedicalHistory reports whether intake has been submitted. The
// onboarding_completed flag must agree with this at all times.
func (p *Patient) HasMedicalHistory() bool {
	return len(p.MedicalHistory) > 0
}

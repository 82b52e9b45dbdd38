package repository

import (
	"go-radiotherapy-navigator/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(db *gorm.DB, patient *entity.Patient) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error)
	FindByMRN(db *gorm.DB, mrn string) (*entity.Patient, error)
	FindAll(db *gorm.DB) ([]entity.Patient, error)

	// UpdateStatus performs the compare-and-swap status transition: the row
	// is updated only if current_status still equals from. Returns affected
	// rows: 1 = transition applied, 0 = lost the race or guard no longer
	// holds.
	UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus) (int64, error)

	// SubmitIntake atomically stores the medical history, sets
	// onboarding_completed and advances the status, all guarded on
	// current_status = from.
	SubmitIntake(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus, history entity.JSON, riskFlags entity.StringSet) (int64, error)

	// SetConsultant records the consulting clinician's name.
	SetConsultant(db *gorm.DB, id uuid.UUID, consultantName string) error
}

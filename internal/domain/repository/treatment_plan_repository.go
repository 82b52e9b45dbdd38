package repository

import (
	"time"

	"go-radiotherapy-navigator/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentPlanRepository interface {
	Create(db *gorm.DB, plan *entity.TreatmentPlan) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TreatmentPlan, error)
	FindPublishedByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.TreatmentPlan, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentPlan, error)

	// SetOutcome records the outcome decision for a plan. Guarded on the
	// outcome not having been decided yet; returns affected rows.
	SetOutcome(db *gorm.DB, id uuid.UUID, successful bool, notes string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)

	// Retire unpublishes a plan and records the failure outcome in one
	// update, so the one-published-plan invariant holds before a new course
	// is created.
	Retire(db *gorm.DB, id uuid.UUID, notes string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error)
}

package repository

import (
	"errors"
	"time"

	"go-radiotherapy-navigator/internal/domain/entity"
	domainRepo "go-radiotherapy-navigator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentPlanRepository struct{}

func NewTreatmentPlanRepository() domainRepo.TreatmentPlanRepository {
	return &treatmentPlanRepository{}
}

func (r *treatmentPlanRepository) Create(db *gorm.DB, plan *entity.TreatmentPlan) error {
	return db.Create(plan).Error
}

func (r *treatmentPlanRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TreatmentPlan, error) {
	var plan entity.TreatmentPlan
	err := db.Where("id = ?", id).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *treatmentPlanRepository) FindPublishedByPatientID(db *gorm.DB, patientID uuid.UUID) (*entity.TreatmentPlan, error) {
	var plan entity.TreatmentPlan
	err := db.Where("patient_id = ? AND is_published = ?", patientID, true).First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

func (r *treatmentPlanRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentPlan, error) {
	var plans []entity.TreatmentPlan
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// SetOutcome records the decision ONLY if none was recorded yet.
// Returns affected rows: 1 = recorded, 0 = already decided.
func (r *treatmentPlanRepository) SetOutcome(db *gorm.DB, id uuid.UUID, successful bool, notes string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	result := db.Model(&entity.TreatmentPlan{}).
		Where("id = ? AND is_successful IS NULL", id).
		Updates(map[string]interface{}{
			"is_successful": successful,
			"outcome_notes": notes,
			"decided_by":    decidedBy,
			"decided_at":    decidedAt,
		})
	return result.RowsAffected, result.Error
}

// Retire unpublishes the plan and marks the course unsuccessful in one
// conditional update, guarded on the plan still being published.
func (r *treatmentPlanRepository) Retire(db *gorm.DB, id uuid.UUID, notes string, decidedBy uuid.UUID, decidedAt time.Time) (int64, error) {
	result := db.Model(&entity.TreatmentPlan{}).
		Where("id = ? AND is_published = ?", id, true).
		Updates(map[string]interface{}{
			"is_published":  false,
			"is_successful": false,
			"outcome_notes": notes,
			"decided_by":    decidedBy,
			"decided_at":    decidedAt,
		})
	return result.RowsAffected, result.Error
}

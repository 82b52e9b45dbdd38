package repository

import (
	"time"

	"go-radiotherapy-navigator/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TreatmentReviewRepository interface {
	// CreateBatch persists all reviews of a course together. Callers run it
	// inside a transaction so the batch is all-or-nothing.
	CreateBatch(db *gorm.DB, reviews []entity.TreatmentReview) error

	FindByPlanID(db *gorm.DB, planID uuid.UUID) ([]entity.TreatmentReview, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentReview, error)
	FindByPlanAndNumber(db *gorm.DB, planID uuid.UUID, reviewNumber int) (*entity.TreatmentReview, error)
	CountByPlanID(db *gorm.DB, planID uuid.UUID) (int64, error)

	// Complete marks a review done, guarded on it not being completed
	// already (completion is monotonic). Returns affected rows.
	Complete(db *gorm.DB, id int, completedBy uuid.UUID, completedAt time.Time, notes string) (int64, error)
}

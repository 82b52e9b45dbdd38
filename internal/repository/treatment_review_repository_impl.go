package repository

import (
	"errors"
	"time"

	"go-radiotherapy-navigator/internal/domain/entity"
	domainRepo "go-radiotherapy-navigator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type treatmentReviewRepository struct{}

func NewTreatmentReviewRepository() domainRepo.TreatmentReviewRepository {
	return &treatmentReviewRepository{}
}

func (r *treatmentReviewRepository) CreateBatch(db *gorm.DB, reviews []entity.TreatmentReview) error {
	return db.Create(&reviews).Error
}

func (r *treatmentReviewRepository) FindByPlanID(db *gorm.DB, planID uuid.UUID) ([]entity.TreatmentReview, error) {
	var reviews []entity.TreatmentReview
	err := db.Where("plan_id = ?", planID).
		Order("review_number ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *treatmentReviewRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.TreatmentReview, error) {
	var reviews []entity.TreatmentReview
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC, review_number ASC").
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *treatmentReviewRepository) FindByPlanAndNumber(db *gorm.DB, planID uuid.UUID, reviewNumber int) (*entity.TreatmentReview, error) {
	var review entity.TreatmentReview
	err := db.Where("plan_id = ? AND review_number = ?", planID, reviewNumber).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *treatmentReviewRepository) CountByPlanID(db *gorm.DB, planID uuid.UUID) (int64, error) {
	var count int64
	err := db.Model(&entity.TreatmentReview{}).
		Where("plan_id = ?", planID).
		Count(&count).Error
	return count, err
}

// Complete marks a review done ONLY if it is still incomplete.
// Returns affected rows: 1 = completed now, 0 = already completed.
func (r *treatmentReviewRepository) Complete(db *gorm.DB, id int, completedBy uuid.UUID, completedAt time.Time, notes string) (int64, error) {
	result := db.Model(&entity.TreatmentReview{}).
		Where("id = ? AND completed = ?", id, false).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": completedAt,
			"completed_by": completedBy,
			"notes":        notes,
		})
	return result.RowsAffected, result.Error
}

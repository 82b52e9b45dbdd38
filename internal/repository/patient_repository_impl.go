package repository

import (
	"errors"

	"go-radiotherapy-navigator/internal/domain/entity"
	domainRepo "go-radiotherapy-navigator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(db *gorm.DB, patient *entity.Patient) error {
	return db.Create(patient).Error
}

func (r *patientRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("user_id = ?", userID).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByMRN(db *gorm.DB, mrn string) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.Where("mrn = ?", mrn).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(db *gorm.DB) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := db.Order("admission_date DESC, created_at DESC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

// UpdateStatus applies the transition ONLY if current_status still equals
// from. Two concurrent conflicting transitions cannot both see RowsAffected=1.
func (r *patientRepository) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ? AND current_status = ?", id, from).
		Update("current_status", to)
	return result.RowsAffected, result.Error
}

func (r *patientRepository) SubmitIntake(db *gorm.DB, id uuid.UUID, from, to entity.PatientStatus, history entity.JSON, riskFlags entity.StringSet) (int64, error) {
	result := db.Model(&entity.Patient{}).
		Where("id = ? AND current_status = ?", id, from).
		Updates(map[string]interface{}{
			"current_status":       to,
			"medical_history":      history,
			"risk_flags":           riskFlags,
			"onboarding_completed": true,
		})
	return result.RowsAffected, result.Error
}

func (r *patientRepository) SetConsultant(db *gorm.DB, id uuid.UUID, consultantName string) error {
	return db.Model(&entity.Patient{}).
		Where("id = ?", id).
		Update("consultant_name", consultantName).Error
}

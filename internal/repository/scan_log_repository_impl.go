package repository

import (
	"go-radiotherapy-navigator/internal/domain/entity"
	domainRepo "go-radiotherapy-navigator/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type scanLogRepository struct{}

func NewScanLogRepository() domainRepo.ScanLogRepository {
	return &scanLogRepository{}
}

func (r *scanLogRepository) Create(db *gorm.DB, scan *entity.ScanLog) error {
	return db.Create(scan).Error
}

func (r *scanLogRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ScanLog, error) {
	var scans []entity.ScanLog
	err := db.Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}

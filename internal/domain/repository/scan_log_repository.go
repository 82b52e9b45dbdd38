package repository

import (
	"go-radiotherapy-navigator/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ScanLogRepository interface {
	Create(db *gorm.DB, scan *entity.ScanLog) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.ScanLog, error)
}

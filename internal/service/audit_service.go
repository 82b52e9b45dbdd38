package service

import (
	"go-radiotherapy-navigator/internal/domain/entity"
	"go-radiotherapy-navigator/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes audit rows for journey transitions. Logged inside the
// same transaction as the transition so the trail never disagrees with the
// record.
type AuditService interface {
	LogTransition(tx *gorm.DB, actorID *uuid.UUID, action string, patientID uuid.UUID, from, to entity.PatientStatus, detail entity.JSON) error
	LogAction(tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) LogTransition(tx *gorm.DB, actorID *uuid.UUID, action string, patientID uuid.UUID, from, to entity.PatientStatus, detail entity.JSON) error {
	metadata := entity.JSON{
		"patient_id":  patientID.String(),
		"from_status": string(from),
		"to_status":   string(to),
	}
	for k, v := range detail {
		metadata[k] = v
	}

	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

func (s *auditService) LogAction(tx *gorm.DB, actorID *uuid.UUID, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		UserID:   actorID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

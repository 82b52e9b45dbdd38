package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  JSON       `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Common audit actions
const (
	AuditActionUserLogin            = "user.login"
	AuditActionUserLogout           = "user.logout"
	AuditActionPatientRegister      = "journey.register"
	AuditActionIntakeSubmit         = "journey.intake_submit"
	AuditActionConsultationComplete = "journey.consultation_complete"
	AuditActionScanLog              = "journey.scan_log"
	AuditActionPlanPublish          = "journey.plan_publish"
	AuditActionTreatmentComplete    = "journey.treatment_complete"
	AuditActionReviewsSchedule      = "journey.reviews_schedule"
	AuditActionReviewComplete       = "journey.review_complete"
	AuditActionJourneyFinalize      = "journey.finalize_success"
	AuditActionTreatmentRestart     = "journey.restart"
)

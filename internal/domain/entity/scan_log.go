package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanLog is an append-only record of a CT-scan encounter. Rows are never
// updated or deleted after creation.
type ScanLog struct {
	ID                   int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID            uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	MachineRoom          string    `gorm:"type:varchar(100);not null" json:"machine_room"`
	Positioning          string    `gorm:"type:varchar(255)" json:"positioning,omitempty"`
	ImmobilizationDevice string    `gorm:"type:varchar(255)" json:"immobilization_device,omitempty"`
	Notes                string    `gorm:"type:text" json:"notes,omitempty"`
	PerformedBy          uuid.UUID `gorm:"type:uuid;not null" json:"performed_by"`
	CreatedAt            time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (ScanLog) TableName() string {
	return "scan_logs"
}

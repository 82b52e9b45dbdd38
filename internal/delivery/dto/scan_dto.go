package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type LogScanRequest struct {
	MachineRoom          string `json:"machine_room" validate:"required,min=1"`
	Positioning          string `json:"positioning" validate:"omitempty"`
	ImmobilizationDevice string `json:"immobilization_device" validate:"omitempty"`
	Notes                string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type ScanLogResponse struct {
	ID                   int64     `json:"id"`
	PatientID            uuid.UUID `json:"patient_id"`
	MachineRoom          string    `json:"machine_room"`
	Positioning          string    `json:"positioning,omitempty"`
	ImmobilizationDevice string    `json:"immobilization_device,omitempty"`
	Notes                string    `json:"notes,omitempty"`
	PerformedBy          uuid.UUID `json:"performed_by"`
	CreatedAt            time.Time `json:"created_at"`
}

type ScanLogListResponse struct {
	Scans []ScanLogResponse `json:"scans"`
	Total int               `json:"total"`
}

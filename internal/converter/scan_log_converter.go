package converter

import (
	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
)

// ScanLogToResponse converts a ScanLog entity to ScanLogResponse DTO
func ScanLogToResponse(scan *entity.ScanLog) *dto.ScanLogResponse {
	if scan == nil {
		return nil
	}

	return &dto.ScanLogResponse{
		ID:                   scan.ID,
		PatientID:            scan.PatientID,
		MachineRoom:          scan.MachineRoom,
		Positioning:          scan.Positioning,
		ImmobilizationDevice: scan.ImmobilizationDevice,
		Notes:                scan.Notes,
		PerformedBy:          scan.PerformedBy,
		CreatedAt:            scan.CreatedAt,
	}
}

// ScanLogsToResponses converts a slice of ScanLog entities to response DTOs
func ScanLogsToResponses(scans []entity.ScanLog) []dto.ScanLogResponse {
	responses := make([]dto.ScanLogResponse, len(scans))
	for i, scan := range scans {
		resp := ScanLogToResponse(&scan)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

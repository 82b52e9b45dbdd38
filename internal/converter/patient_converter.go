package converter

import (
	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                  patient.ID,
		MRN:                 patient.MRN,
		FullName:            patient.FullName,
		Email:               patient.Email,
		DateOfBirth:         patient.DateOfBirth.Format("2006-01-02"),
		AdmissionDate:       patient.AdmissionDate.Format("2006-01-02"),
		CurrentStatus:       string(patient.CurrentStatus),
		OnboardingCompleted: patient.OnboardingCompleted,
		MedicalHistory:      patient.MedicalHistory,
		RiskFlags:           patient.RiskFlags,
		ConsultantName:      patient.ConsultantName,
		CreatedAt:           patient.CreatedAt,
		UpdatedAt:           patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to response DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package converter

import (
	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
)

// PlanToResponse converts a TreatmentPlan entity to PlanResponse DTO
func PlanToResponse(plan *entity.TreatmentPlan) *dto.PlanResponse {
	if plan == nil {
		return nil
	}

	return &dto.PlanResponse{
		ID:               plan.ID,
		PatientID:        plan.PatientID,
		TreatmentType:    string(plan.TreatmentType),
		NumSessions:      plan.NumSessions,
		StartAt:          plan.StartAt,
		PrepInstructions: plan.PrepInstructions,
		CareGuidance:     plan.CareGuidance,
		IsPublished:      plan.IsPublished,
		IsSuccessful:     plan.IsSuccessful,
		OutcomeNotes:     plan.OutcomeNotes,
		DecidedAt:        plan.DecidedAt,
		CreatedAt:        plan.CreatedAt,
		UpdatedAt:        plan.UpdatedAt,
	}
}

// PlansToResponses converts a slice of TreatmentPlan entities to response DTOs
func PlansToResponses(plans []entity.TreatmentPlan) []dto.PlanResponse {
	responses := make([]dto.PlanResponse, len(plans))
	for i, plan := range plans {
		resp := PlanToResponse(&plan)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

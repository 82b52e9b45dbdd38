package converter

import (
	"go-radiotherapy-navigator/internal/delivery/dto"
	"go-radiotherapy-navigator/internal/domain/entity"
)

// ReviewToResponse converts a TreatmentReview entity to ReviewResponse DTO
func ReviewToResponse(review *entity.TreatmentReview) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:             review.ID,
		PlanID:         review.PlanID,
		PatientID:      review.PatientID,
		ReviewNumber:   review.ReviewNumber,
		ScheduledDate:  review.ScheduledDate.Format("2006-01-02"),
		OfficeLocation: review.OfficeLocation,
		Completed:      review.Completed,
		CompletedAt:    review.CompletedAt,
		Notes:          review.Notes,
		CreatedAt:      review.CreatedAt,
	}
}

// ReviewsToResponses converts a slice of TreatmentReview entities to response DTOs
func ReviewsToResponses(reviews []entity.TreatmentReview) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i, review := range reviews {
		resp := ReviewToResponse(&review)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// ReviewSlot is one of the three follow-up appointments in a schedule batch.
type ReviewSlot struct {
	ScheduledDate  string `json:"scheduled_date" validate:"required"` // Format: YYYY-MM-DD
	OfficeLocation string `json:"office_location" validate:"required,min=2"`
}

// ScheduleReviewsRequest schedules all three reviews as one atomic batch.
// Dates must be strictly increasing by review number; the whole batch is
// rejected otherwise.
type ScheduleReviewsRequest struct {
	Reviews []ReviewSlot `json:"reviews" validate:"required,len=3,dive"`
}

type CompleteReviewRequest struct {
	Notes string `json:"notes" validate:"omitempty"`
}

// Response DTOs

type ReviewResponse struct {
	ID             int        `json:"id"`
	PlanID         uuid.UUID  `json:"plan_id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	ReviewNumber   int        `json:"review_number"`
	ScheduledDate  string     `json:"scheduled_date"`
	OfficeLocation string     `json:"office_location"`
	Completed      bool       `json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	Notes          string     `json:"notes,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
	Total   int              `json:"total"`
}

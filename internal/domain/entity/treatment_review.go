package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReviewsPerCourse is the fixed number of post-treatment reviews scheduled
// for every completed treatment course.
const ReviewsPerCourse = 3

// TreatmentReview represents one of the three post-treatment follow-ups for
// a treatment course. All three are created together; completion is
// monotonic and never undone.
type TreatmentReview struct {
	ID             int        `gorm:"primaryKey;autoIncrement" json:"id"`
	PlanID         uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_plan_review_number" json:"plan_id"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"patient_id"`
	ReviewNumber   int        `gorm:"not null;uniqueIndex:idx_plan_review_number" json:"review_number"`
	ScheduledDate  time.Time  `gorm:"type:date;not null" json:"scheduled_date"`
	OfficeLocation string     `gorm:"type:varchar(255);not null" json:"office_location"`
	Completed      bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CompletedBy    *uuid.UUID `gorm:"type:uuid" json:"completed_by,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Plan    *TreatmentPlan `gorm:"foreignKey:PlanID" json:"plan,omitempty"`
	Patient *Patient       `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (TreatmentReview) TableName() string {
	return "treatment_reviews"
}

// ValidateReviewDates checks a full batch of scheduled dates: exactly three,
// strictly increasing by review number. The batch is rejected as a whole so
// partial schedules are never persisted.
func ValidateReviewDates(dates []time.Time) bool {
	if len(dates) != ReviewsPerCourse {
		return false
	}
	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return false
		}
	}
	return true
}

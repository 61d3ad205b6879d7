package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateReviewRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Rating        int       `json:"rating" validate:"required,min=1,max=5"`
	Comment       *string   `json:"comment" validate:"omitempty,max=2000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// Response DTOs

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	StudentID     uuid.UUID `json:"student_id"`
	InstructorID  uuid.UUID `json:"instructor_id"`
	Rating        int       `json:"rating"`
	Comment       *string   `json:"comment,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RatingStatsResponse struct {
	InstructorID       uuid.UUID     `json:"instructor_id"`
	AverageRating      float64       `json:"average_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

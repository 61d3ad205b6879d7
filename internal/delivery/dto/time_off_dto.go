package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateTimeOffRequest struct {
	InstructorID uuid.UUID `json:"instructor_id" validate:"required"`
	Date         string    `json:"date" validate:"required,date"` // Format: YYYY-MM-DD
	Reason       *string   `json:"reason" validate:"omitempty,max=255"`
}

type UpdateTimeOffRequest struct {
	Date   *string `json:"date" validate:"omitempty,date"`
	Reason *string `json:"reason" validate:"omitempty,max=255"`
}

// Response DTOs

type TimeOffResponse struct {
	ID           uuid.UUID `json:"id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	Date         string    `json:"date"`
	Reason       *string   `json:"reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

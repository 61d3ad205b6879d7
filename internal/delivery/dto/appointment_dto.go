package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	StudentID      uuid.UUID `json:"student_id" validate:"required"`
	InstructorID   uuid.UUID `json:"instructor_id" validate:"required"`
	StartDate      time.Time `json:"start_date" validate:"required"`
	EndDate        time.Time `json:"end_date" validate:"required"`
	LocationPickup *string   `json:"location_pickup" validate:"omitempty,max=255"`
	Notes          *string   `json:"notes" validate:"omitempty"`
}

// UpdateAppointmentRequest only touches descriptive fields; rescheduling is cancel and rebook.
type UpdateAppointmentRequest struct {
	LocationPickup *string `json:"location_pickup" validate:"omitempty,max=255"`
	Notes          *string `json:"notes" validate:"omitempty"`
}

type AppointmentTransitionRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

// Response DTOs

type AppointmentResponse struct {
	ID             uuid.UUID `json:"id"`
	StudentID      uuid.UUID `json:"student_id"`
	InstructorID   uuid.UUID `json:"instructor_id"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	Status         string    `json:"status"`
	LocationPickup *string   `json:"location_pickup,omitempty"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int64                 `json:"total"`
}

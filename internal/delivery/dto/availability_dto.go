package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// DayOfWeek uses 0 = Sunday ... 6 = Saturday.
type CreateAvailabilityRequest struct {
	InstructorID uuid.UUID `json:"instructor_id" validate:"required"`
	DayOfWeek    *int      `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime    string    `json:"start_time" validate:"required,hhmm"` // Format: HH:MM
	EndTime      string    `json:"end_time" validate:"required,hhmm"`   // Format: HH:MM
	IsActive     *bool     `json:"is_active" validate:"omitempty"`
}

type UpdateAvailabilityRequest struct {
	DayOfWeek *int    `json:"day_of_week" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"start_time" validate:"omitempty,hhmm"`
	EndTime   *string `json:"end_time" validate:"omitempty,hhmm"`
	IsActive  *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type AvailabilityResponse struct {
	ID           uuid.UUID `json:"id"`
	InstructorID uuid.UUID `json:"instructor_id"`
	DayOfWeek    int       `json:"day_of_week"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type IntervalResponse struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type ResolvedAvailabilityResponse struct {
	InstructorID uuid.UUID          `json:"instructor_id"`
	From         time.Time          `json:"from"`
	To           time.Time          `json:"to"`
	Intervals    []IntervalResponse `json:"intervals"`
}

package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateInstructorProfileRequest struct {
	UserID           uuid.UUID       `json:"user_id" validate:"required"`
	Bio              *string         `json:"bio" validate:"omitempty"`
	CredentialNumber string          `json:"credential_number" validate:"required,max=50"`
	HourlyRate       decimal.Decimal `json:"hourly_rate" validate:"gt=0"`
	CarModel         *string         `json:"car_model" validate:"omitempty,max=100"`
	Transmission     string          `json:"transmission" validate:"required,oneof=MANUAL AUTOMATIC"`
	City             string          `json:"city" validate:"required,max=100"`
}

type UpdateInstructorProfileRequest struct {
	Bio              *string          `json:"bio" validate:"omitempty"`
	CredentialNumber *string          `json:"credential_number" validate:"omitempty,max=50"`
	HourlyRate       *decimal.Decimal `json:"hourly_rate" validate:"omitempty,gt=0"`
	CarModel         *string          `json:"car_model" validate:"omitempty,max=100"`
	Transmission     *string          `json:"transmission" validate:"omitempty,oneof=MANUAL AUTOMATIC"`
	City             *string          `json:"city" validate:"omitempty,max=100"`
}

type ApprovalTransitionRequest struct {
	Status          string  `json:"status" validate:"required,oneof=PENDING UNDER_REVIEW APPROVED REJECTED"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=1000"`
}

// Response DTOs

type InstructorProfileResponse struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	FullName         string          `json:"full_name,omitempty"`
	Bio              *string         `json:"bio,omitempty"`
	CredentialNumber string          `json:"credential_number"`
	HourlyRate       decimal.Decimal `json:"hourly_rate"`
	CarModel         *string         `json:"car_model,omitempty"`
	Transmission     string          `json:"transmission"`
	City             string          `json:"city"`
	ApprovalStatus   string          `json:"approval_status"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	RejectionReason  *string         `json:"rejection_reason,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type InstructorProfileListResponse struct {
	Instructors []InstructorProfileResponse `json:"instructors"`
	Total       int64                       `json:"total"`
}

type ApprovalStatsResponse struct {
	Pending     int64 `json:"pending"`
	UnderReview int64 `json:"under_review"`
	Approved    int64 `json:"approved"`
	Rejected    int64 `json:"rejected"`
	Total       int64 `json:"total"`
}

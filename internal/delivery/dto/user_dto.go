package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateUserRequest struct {
	FullName string  `json:"full_name" validate:"required,min=2,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=STUDENT INSTRUCTOR ADMIN"`
	Phone    *string `json:"phone" validate:"omitempty,min=8,max=20"`
}

// UpdateUserRequest carries only the fields to change. Role is immutable.
type UpdateUserRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=2,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,min=8,max=20"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// Response DTOs

type UserResponse struct {
	ID                uuid.UUID                  `json:"id"`
	Email             string                     `json:"email"`
	FullName          string                     `json:"full_name"`
	Role              string                     `json:"role"`
	Phone             *string                    `json:"phone,omitempty"`
	ProfilePhoto      *string                    `json:"profile_photo,omitempty"`
	InstructorProfile *InstructorProfileResponse `json:"instructor_profile,omitempty"`
	CreatedAt         time.Time                  `json:"created_at"`
	UpdatedAt         time.Time                  `json:"updated_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int64          `json:"total"`
}

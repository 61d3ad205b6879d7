package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Transmission string

const (
	TransmissionManual    Transmission = "MANUAL"
	TransmissionAutomatic Transmission = "AUTOMATIC"
)

// ApprovalStatus tracks the admin review of an instructor profile.
type ApprovalStatus string

const (
	ApprovalPending     ApprovalStatus = "PENDING"
	ApprovalUnderReview ApprovalStatus = "UNDER_REVIEW"
	ApprovalApproved    ApprovalStatus = "APPROVED"
	ApprovalRejected    ApprovalStatus = "REJECTED"
)

var approvalTransitions = map[ApprovalStatus][]ApprovalStatus{
	ApprovalPending:     {ApprovalUnderReview},
	ApprovalUnderReview: {ApprovalApproved, ApprovalRejected},
	ApprovalRejected:    {ApprovalUnderReview},
	ApprovalApproved:    {ApprovalUnderReview},
}

func (s ApprovalStatus) IsValid() bool {
	_, ok := approvalTransitions[s]
	return ok
}

func (s ApprovalStatus) CanTransitionTo(next ApprovalStatus) bool {
	for _, allowed := range approvalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsDecision reports whether entering the status stamps the approval date.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// InstructorProfile holds the bookable side of an INSTRUCTOR user.
type InstructorProfile struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID           uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Bio              *string         `gorm:"type:text" json:"bio,omitempty"`
	CredentialNumber string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"credential_number"`
	HourlyRate       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	CarModel         *string         `gorm:"type:varchar(100)" json:"car_model,omitempty"`
	Transmission     Transmission    `gorm:"type:transmission_type;not null" json:"transmission"`
	City             string          `gorm:"type:varchar(100);not null;index" json:"city"`
	ApprovalStatus   ApprovalStatus  `gorm:"type:approval_status;not null;default:'PENDING';index" json:"approval_status"`
	ApprovalDate     *time.Time      `json:"approval_date,omitempty"`
	RejectionReason  *string         `gorm:"type:text" json:"rejection_reason,omitempty"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User         *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availability []Availability `gorm:"foreignKey:InstructorID" json:"availability,omitempty"`
}

func (InstructorProfile) TableName() string {
	return "instructor_profiles"
}

func (p *InstructorProfile) IsApproved() bool {
	return p.ApprovalStatus == ApprovalApproved
}

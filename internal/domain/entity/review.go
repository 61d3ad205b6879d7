package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review belongs to exactly one completed appointment.
type Review struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	StudentID     uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID  uuid.UUID `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       *string   `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Review) TableName() string {
	return "reviews"
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// RatingStats summarises the reviews of one instructor.
type RatingStats struct {
	AverageRating      float64       `json:"average_rating"`
	TotalReviews       int64         `json:"total_reviews"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

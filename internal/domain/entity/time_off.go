package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TimeOff blocks an instructor for one whole calendar date.
type TimeOff struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"instructor_id"`
	Date         datatypes.Date `gorm:"not null;index" json:"date"`
	Reason       *string        `gorm:"type:varchar(255)" json:"reason,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (TimeOff) TableName() string {
	return "time_off"
}

// Day returns the calendar date as year, month, day.
func (t *TimeOff) Day() (int, time.Month, int) {
	return time.Time(t.Date).Date()
}

package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Availability is a recurring weekly window. DayOfWeek follows time.Weekday (0 = Sunday).
type Availability struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID uuid.UUID      `gorm:"type:uuid;not null;index" json:"instructor_id"`
	DayOfWeek    int            `gorm:"not null" json:"day_of_week"`
	StartTime    datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime      datatypes.Time `gorm:"not null" json:"end_time"`
	IsActive     bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Availability) TableName() string {
	return "instructor_availability"
}

// Weekday returns the window's day as a time.Weekday.
func (a *Availability) Weekday() time.Weekday {
	return time.Weekday(a.DayOfWeek)
}

// Offsets returns start and end as offsets from midnight.
func (a *Availability) Offsets() (time.Duration, time.Duration) {
	return time.Duration(a.StartTime), time.Duration(a.EndTime)
}

func ValidDayOfWeek(day int) bool {
	return day >= 0 && day <= 6
}

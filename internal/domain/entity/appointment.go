package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "PENDING"
	AppointmentConfirmed AppointmentStatus = "CONFIRMED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:   {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed: {AppointmentCancelled, AppointmentCompleted},
	AppointmentCancelled: nil,
	AppointmentCompleted: nil,
}

func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Occupies reports whether appointments in this status block the instructor's time.
func (s AppointmentStatus) Occupies() bool {
	return s == AppointmentPending || s == AppointmentConfirmed
}

// OccupyingStatuses lists the statuses that block time, for queries.
func OccupyingStatuses() []AppointmentStatus {
	return []AppointmentStatus{AppointmentPending, AppointmentConfirmed}
}

// Appointment is a lesson booked by a student with an instructor over [StartDate, EndDate).
type Appointment struct {
	ID             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID      uuid.UUID         `gorm:"type:uuid;not null;index" json:"student_id"`
	InstructorID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"instructor_id"`
	StartDate      time.Time         `gorm:"not null;index" json:"start_date"`
	EndDate        time.Time         `gorm:"not null" json:"end_date"`
	Status         AppointmentStatus `gorm:"type:appointment_status;not null;default:'PENDING';index" json:"status"`
	LocationPickup *string           `gorm:"type:varchar(255)" json:"location_pickup,omitempty"`
	Notes          *string           `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Student    *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Instructor *User `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

func (a *Appointment) Occupies() bool {
	return a.Status.Occupies()
}

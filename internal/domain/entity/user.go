package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is fixed at creation and never changes afterwards.
type Role string

const (
	RoleStudent    Role = "STUDENT"
	RoleInstructor Role = "INSTRUCTOR"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin:
		return true
	}
	return false
}

// User represents the centralized authentication table
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:text;not null" json:"-"`
	Role         Role      `gorm:"type:user_role;not null;index" json:"role"`
	Phone        *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	ProfilePhoto *string   `gorm:"type:varchar(500)" json:"profile_photo,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	InstructorProfile *InstructorProfile `gorm:"foreignKey:UserID" json:"instructor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsStudent() bool {
	return u.Role == RoleStudent
}

func (u *User) IsInstructor() bool {
	return u.Role == RoleInstructor
}

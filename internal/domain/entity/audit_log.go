package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID        `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

const (
	AuditActionUserLogin             = "user.login"
	AuditActionUserLogout            = "user.logout"
	AuditActionUserRegister          = "user.register"
	AuditActionUserDelete            = "user.delete"
	AuditActionAppointmentCreate     = "appointment.create"
	AuditActionAppointmentTransition = "appointment.transition"
	AuditActionApprovalTransition    = "instructor.approval"
	AuditActionProfileCreate         = "instructor.create"
	AuditActionProfileDelete         = "instructor.delete"
	AuditActionDocumentUpload        = "document.upload"
	AuditActionDocumentDelete        = "document.delete"
)

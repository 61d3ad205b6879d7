package dto

import (
	"time"

	"gorm.io/datatypes"
)

// Response DTOs

type AuditLogResponse struct {
	ID        int64             `json:"id"`
	User      *UserResponse     `json:"user,omitempty"`
	Action    string            `json:"action"`
	Metadata  datatypes.JSONMap `json:"metadata"`
	CreatedAt time.Time         `json:"created_at"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}

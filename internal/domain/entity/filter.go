package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Page is a skip/limit window for list queries.
type Page struct {
	Skip  int
	Limit int
}

const (
	DefaultPageLimit = 100
	MaxPageLimit     = 500
)

// Normalize clamps the window to sane bounds.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// InstructorFilter is a domain-level filter for querying instructor profiles.
type InstructorFilter struct {
	City           string // ILIKE
	Transmission   Transmission
	MinRate        *decimal.Decimal
	MaxRate        *decimal.Decimal
	ApprovalStatus ApprovalStatus
	Page
}

type AppointmentFilter struct {
	StudentID    *uuid.UUID
	InstructorID *uuid.UUID
	Status       AppointmentStatus
	Page
}

type AuditLogFilter struct {
	UserID *uuid.UUID
	Action string
	Page
}

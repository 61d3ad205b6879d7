package repository

import (
	"context"
	"time"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindAll returns one page and the number of rows matching the filter.
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error)
	// FindOccupying returns PENDING/CONFIRMED appointments of the instructor overlapping [from, to).
	FindOccupying(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error)
	CountOverlapping(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) (int64, error)
	// UpdateDetails writes pickup location and notes only; status belongs to UpdateStatus.
	UpdateDetails(ctx context.Context, db *gorm.DB, id uuid.UUID, locationPickup, notes *string) (int64, error)
	// UpdateStatus changes the status only if it still equals from. Returns affected rows.
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

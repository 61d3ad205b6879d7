package repository

import (
	"context"
	"time"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeOffRepository interface {
	Create(ctx context.Context, db *gorm.DB, timeOff *entity.TimeOff) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TimeOff, error)
	FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.TimeOff, error)
	// FindInRange returns entries whose date falls within [from, to], both inclusive calendar dates.
	FindInRange(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.TimeOff, error)
	Update(ctx context.Context, db *gorm.DB, timeOff *entity.TimeOff) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

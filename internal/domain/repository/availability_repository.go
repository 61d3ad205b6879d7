package repository

import (
	"context"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	Create(ctx context.Context, db *gorm.DB, availability *entity.Availability) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Availability, error)
	FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error)
	FindActiveByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error)
	Update(ctx context.Context, db *gorm.DB, availability *entity.Availability) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

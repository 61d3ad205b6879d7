package repository

import (
	"context"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(ctx context.Context, db *gorm.DB, review *entity.Review) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error)
	FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error)
	FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, page entity.Page) ([]entity.Review, error)
	RatingStats(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) (*entity.RatingStats, error)
	Update(ctx context.Context, db *gorm.DB, review *entity.Review) error
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

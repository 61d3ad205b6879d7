package repository

import (
	"context"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DocumentRepository interface {
	Create(ctx context.Context, db *gorm.DB, document *entity.Document) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Document, error)
	FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Document, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

package repository

import (
	"context"
	"errors"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type documentRepository struct{}

func NewDocumentRepository() domainRepo.DocumentRepository {
	return &documentRepository{}
}

func (r *documentRepository) Create(ctx context.Context, db *gorm.DB, document *entity.Document) error {
	return db.WithContext(ctx).Create(document).Error
}

func (r *documentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Document, error) {
	var document entity.Document
	err := db.WithContext(ctx).Where("id = ?", id).First(&document).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &document, nil
}

func (r *documentRepository) FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Document, error) {
	var documents []entity.Document
	err := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("uploaded_at DESC").
		Find(&documents).Error
	if err != nil {
		return nil, err
	}
	return documents, nil
}

func (r *documentRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Document{})
	return result.RowsAffected, result.Error
}

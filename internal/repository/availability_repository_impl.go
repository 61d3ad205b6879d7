package repository

import (
	"context"
	"errors"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) Create(ctx context.Context, db *gorm.DB, availability *entity.Availability) error {
	return db.WithContext(ctx).Create(availability).Error
}

func (r *availabilityRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Availability, error) {
	var availability entity.Availability
	err := db.WithContext(ctx).Where("id = ?", id).First(&availability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &availability, nil
}

func (r *availabilityRepository) FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error) {
	var windows []entity.Availability
	err := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityRepository) FindActiveByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error) {
	var windows []entity.Availability
	err := db.WithContext(ctx).
		Where("instructor_id = ? AND is_active = ?", instructorID, true).
		Order("day_of_week ASC, start_time ASC").
		Find(&windows).Error
	if err != nil {
		return nil, err
	}
	return windows, nil
}

func (r *availabilityRepository) Update(ctx context.Context, db *gorm.DB, availability *entity.Availability) error {
	return db.WithContext(ctx).Save(availability).Error
}

func (r *availabilityRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Availability{})
	return result.RowsAffected, result.Error
}

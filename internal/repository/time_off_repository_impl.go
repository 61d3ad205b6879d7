package repository

import (
	"context"
	"errors"
	"time"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type timeOffRepository struct{}

func NewTimeOffRepository() domainRepo.TimeOffRepository {
	return &timeOffRepository{}
}

func (r *timeOffRepository) Create(ctx context.Context, db *gorm.DB, timeOff *entity.TimeOff) error {
	return db.WithContext(ctx).Create(timeOff).Error
}

func (r *timeOffRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.TimeOff, error) {
	var timeOff entity.TimeOff
	err := db.WithContext(ctx).Where("id = ?", id).First(&timeOff).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &timeOff, nil
}

func (r *timeOffRepository) FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) ([]entity.TimeOff, error) {
	var entries []entity.TimeOff
	err := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timeOffRepository) FindInRange(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.TimeOff, error) {
	var entries []entity.TimeOff
	err := db.WithContext(ctx).
		Where("instructor_id = ? AND date BETWEEN ? AND ?", instructorID, from.Format(time.DateOnly), to.Format(time.DateOnly)).
		Order("date ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timeOffRepository) Update(ctx context.Context, db *gorm.DB, timeOff *entity.TimeOff) error {
	return db.WithContext(ctx).Save(timeOff).Error
}

func (r *timeOffRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.TimeOff{})
	return result.RowsAffected, result.Error
}

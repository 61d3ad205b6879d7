package repository

import (
	"context"
	"errors"
	"math"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type reviewRepository struct{}

func NewReviewRepository() domainRepo.ReviewRepository {
	return &reviewRepository{}
}

func (r *reviewRepository) Create(ctx context.Context, db *gorm.DB, review *entity.Review) error {
	return db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	return r.first(db.WithContext(ctx).Where("id = ?", id))
}

func (r *reviewRepository) FindByAppointmentID(ctx context.Context, db *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error) {
	return r.first(db.WithContext(ctx).Where("appointment_id = ?", appointmentID))
}

func (r *reviewRepository) first(query *gorm.DB) (*entity.Review, error) {
	var review entity.Review
	err := query.First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByInstructorID(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, page entity.Page) ([]entity.Review, error) {
	page = page.Normalize()
	var reviews []entity.Review
	err := db.WithContext(ctx).
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Offset(page.Skip).Limit(page.Limit).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) RatingStats(ctx context.Context, db *gorm.DB, instructorID uuid.UUID) (*entity.RatingStats, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	err := db.WithContext(ctx).
		Model(&entity.Review{}).
		Select("rating, COUNT(*) AS count").
		Where("instructor_id = ?", instructorID).
		Group("rating").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := &entity.RatingStats{RatingDistribution: make(map[int]int64, entity.MaxRating)}
	for rating := entity.MinRating; rating <= entity.MaxRating; rating++ {
		stats.RatingDistribution[rating] = 0
	}

	var sum int64
	for _, row := range rows {
		stats.RatingDistribution[row.Rating] = row.Count
		stats.TotalReviews += row.Count
		sum += int64(row.Rating) * row.Count
	}
	if stats.TotalReviews > 0 {
		avg := float64(sum) / float64(stats.TotalReviews)
		stats.AverageRating = math.Round(avg*100) / 100
	}
	return stats, nil
}

func (r *reviewRepository) Update(ctx context.Context, db *gorm.DB, review *entity.Review) error {
	return db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Review{})
	return result.RowsAffected, result.Error
}

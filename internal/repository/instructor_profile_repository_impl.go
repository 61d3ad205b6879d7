package repository

import (
	"context"
	"errors"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type instructorProfileRepository struct{}

func NewInstructorProfileRepository() domainRepo.InstructorProfileRepository {
	return &instructorProfileRepository{}
}

func (r *instructorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile) error {
	return db.WithContext(ctx).Omit("User", "Availability").Create(profile).Error
}

func (r *instructorProfileRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.InstructorProfile, error) {
	return r.first(db.WithContext(ctx).Preload("User").Where("id = ?", id))
}

func (r *instructorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error) {
	return r.first(db.WithContext(ctx).Where("user_id = ?", userID))
}

func (r *instructorProfileRepository) FindByCredentialNumber(ctx context.Context, db *gorm.DB, credential string) (*entity.InstructorProfile, error) {
	return r.first(db.WithContext(ctx).Where("credential_number = ?", credential))
}

func (r *instructorProfileRepository) LockByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error) {
	return r.first(db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID))
}

func (r *instructorProfileRepository) first(query *gorm.DB) (*entity.InstructorProfile, error) {
	var profile entity.InstructorProfile
	err := query.First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll supports optional filters: city, transmission, rate bounds and approval status.
func (r *instructorProfileRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.InstructorFilter) ([]entity.InstructorProfile, int64, error) {
	page := entity.Page{}
	if filter != nil {
		page = filter.Page
	}
	page = page.Normalize()

	var total int64
	if err := db.WithContext(ctx).Model(&entity.InstructorProfile{}).Scopes(filterProfiles(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []entity.InstructorProfile
	err := db.WithContext(ctx).
		Preload("User").
		Scopes(filterProfiles(filter)).
		Order("created_at ASC").
		Offset(page.Skip).Limit(page.Limit).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func filterProfiles(filter *entity.InstructorFilter) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if filter == nil {
			return query
		}
		if filter.City != "" {
			query = query.Where("city ILIKE ?", "%"+filter.City+"%")
		}
		if filter.Transmission != "" {
			query = query.Where("transmission = ?", filter.Transmission)
		}
		if filter.MinRate != nil {
			query = query.Where("hourly_rate >= ?", *filter.MinRate)
		}
		if filter.MaxRate != nil {
			query = query.Where("hourly_rate <= ?", *filter.MaxRate)
		}
		if filter.ApprovalStatus != "" {
			query = query.Where("approval_status = ?", filter.ApprovalStatus)
		}
		return query
	}
}

func (r *instructorProfileRepository) CountByApprovalStatus(ctx context.Context, db *gorm.DB) (map[entity.ApprovalStatus]int64, error) {
	var rows []struct {
		ApprovalStatus entity.ApprovalStatus
		Count          int64
	}
	err := db.WithContext(ctx).
		Model(&entity.InstructorProfile{}).
		Select("approval_status, COUNT(*) AS count").
		Group("approval_status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[entity.ApprovalStatus]int64{
		entity.ApprovalPending:     0,
		entity.ApprovalUnderReview: 0,
		entity.ApprovalApproved:    0,
		entity.ApprovalRejected:    0,
	}
	for _, row := range rows {
		counts[row.ApprovalStatus] = row.Count
	}
	return counts, nil
}

func (r *instructorProfileRepository) UpdateDetails(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.InstructorProfile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"bio":               profile.Bio,
			"credential_number": profile.CredentialNumber,
			"hourly_rate":       profile.HourlyRate,
			"car_model":         profile.CarModel,
			"transmission":      profile.Transmission,
			"city":              profile.City,
		})
	return result.RowsAffected, result.Error
}

func (r *instructorProfileRepository) UpdateApproval(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile, from entity.ApprovalStatus) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.InstructorProfile{}).
		Where("id = ? AND approval_status = ?", profile.ID, from).
		Updates(map[string]interface{}{
			"approval_status":  profile.ApprovalStatus,
			"approval_date":    profile.ApprovalDate,
			"rejection_reason": profile.RejectionReason,
		})
	return result.RowsAffected, result.Error
}

func (r *instructorProfileRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.InstructorProfile{})
	return result.RowsAffected, result.Error
}

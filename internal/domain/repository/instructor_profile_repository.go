package repository

import (
	"context"

	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InstructorProfileRepository interface {
	Create(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.InstructorProfile, error)
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error)
	FindByCredentialNumber(ctx context.Context, db *gorm.DB, credential string) (*entity.InstructorProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, filter *entity.InstructorFilter) ([]entity.InstructorProfile, int64, error)
	// LockByUserID loads the profile with a row lock held until the transaction ends.
	LockByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error)
	CountByApprovalStatus(ctx context.Context, db *gorm.DB) (map[entity.ApprovalStatus]int64, error)
	// UpdateDetails writes the instructor-editable columns and leaves the approval state alone.
	UpdateDetails(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile) (int64, error)
	// UpdateApproval writes the approval columns only if approval_status still equals from.
	UpdateApproval(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile, from entity.ApprovalStatus) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/internal/service"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMissingReason = apperror.Validation("MISSING_REASON", "rejection reason is required")
	ErrInvalidStatus = apperror.Validation("VALIDATION_ERROR", "unknown status")
)

// ApprovalUsecase drives the admin review of instructor profiles.
type ApprovalUsecase interface {
	ListByStatus(ctx context.Context, status entity.ApprovalStatus, page entity.Page) (*dto.InstructorProfileListResponse, error)
	TransitionApproval(ctx context.Context, profileID uuid.UUID, status entity.ApprovalStatus, reason *string) (*dto.InstructorProfileResponse, error)
	Stats(ctx context.Context) (*dto.ApprovalStatsResponse, error)
}

type approvalUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	profileRepo  repository.InstructorProfileRepository
	auditService service.AuditService
	metrics      *service.MetricsService
	now          func() time.Time
}

func NewApprovalUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.InstructorProfileRepository,
	auditService service.AuditService,
	metrics *service.MetricsService,
) ApprovalUsecase {
	return &approvalUsecase{
		db:           db,
		log:          log,
		profileRepo:  profileRepo,
		auditService: auditService,
		metrics:      metrics,
		now:          time.Now,
	}
}

func (u *approvalUsecase) ListByStatus(ctx context.Context, status entity.ApprovalStatus, page entity.Page) (*dto.InstructorProfileListResponse, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	profiles, total, err := u.profileRepo.FindAll(ctx, u.db, &entity.InstructorFilter{ApprovalStatus: status, Page: page})
	if err != nil {
		u.log.Warnf("Failed to find instructor profiles by status: %+v", err)
		return nil, err
	}

	return &dto.InstructorProfileListResponse{
		Instructors: converter.InstructorProfilesToResponses(profiles),
		Total:       total,
	}, nil
}

func (u *approvalUsecase) TransitionApproval(ctx context.Context, profileID uuid.UUID, status entity.ApprovalStatus, reason *string) (*dto.InstructorProfileResponse, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	if status == entity.ApprovalRejected && (reason == nil || strings.TrimSpace(*reason) == "") {
		return nil, ErrMissingReason
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByID(ctx, tx, profileID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	previous := profile.ApprovalStatus
	if !previous.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}

	profile.ApprovalStatus = status
	if status.IsDecision() {
		now := u.now()
		profile.ApprovalDate = &now
	}
	profile.RejectionReason = nil
	if status == entity.ApprovalRejected {
		trimmed := strings.TrimSpace(*reason)
		profile.RejectionReason = &trimmed
	}

	rows, err := u.profileRepo.UpdateApproval(ctx, tx, profile, previous)
	if err != nil {
		u.log.Warnf("Failed to update approval status: %+v", err)
		return nil, err
	}
	// Another admin moved the profile after it was read.
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionApprovalTransition, "instructor_profile", profile.ID.String(),
		map[string]interface{}{"approval_status": previous},
		map[string]interface{}{"approval_status": status, "rejection_reason": profile.RejectionReason},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveTransition("approval", string(status))
	u.log.Infof("Instructor profile %s moved from %s to %s", profile.ID, previous, status)
	return converter.InstructorProfileToResponse(profile), nil
}

func (u *approvalUsecase) Stats(ctx context.Context) (*dto.ApprovalStatsResponse, error) {
	counts, err := u.profileRepo.CountByApprovalStatus(ctx, u.db)
	if err != nil {
		u.log.Warnf("Failed to count instructor profiles by status: %+v", err)
		return nil, err
	}
	return converter.ApprovalStatsToResponse(counts), nil
}

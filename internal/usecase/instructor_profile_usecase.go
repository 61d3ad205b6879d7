package usecase

import (
	"context"
	"strings"

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
	ErrInstructorNotFound     = apperror.NotFound("instructor profile not found")
	ErrProfileAlreadyExists   = apperror.Conflict("PROFILE_EXISTS", "instructor profile already exists for this user")
	ErrCredentialAlreadyExist = apperror.Conflict("CREDENTIAL_EXISTS", "credential number already exists")
)

type InstructorProfileUsecase interface {
	CreateProfile(ctx context.Context, req *dto.CreateInstructorProfileRequest) (*dto.InstructorProfileResponse, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*dto.InstructorProfileResponse, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*dto.InstructorProfileResponse, error)
	ListProfiles(ctx context.Context, filter *entity.InstructorFilter) (*dto.InstructorProfileListResponse, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateInstructorProfileRequest) (*dto.InstructorProfileResponse, error)
	DeleteProfile(ctx context.Context, id uuid.UUID) error
}

type instructorProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	profileRepo  repository.InstructorProfileRepository
	documentRepo repository.DocumentRepository
	auditService service.AuditService
	storage      FileStorage
}

func NewInstructorProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.InstructorProfileRepository,
	documentRepo repository.DocumentRepository,
	auditService service.AuditService,
	storage FileStorage,
) InstructorProfileUsecase {
	return &instructorProfileUsecase{
		db:           db,
		log:          log,
		userRepo:     userRepo,
		profileRepo:  profileRepo,
		documentRepo: documentRepo,
		auditService: auditService,
		storage:      storage,
	}
}

func (u *instructorProfileUsecase) CreateProfile(ctx context.Context, req *dto.CreateInstructorProfileRequest) (*dto.InstructorProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(ctx, tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsInstructor() {
		return nil, ErrInvalidRole
	}

	existing, err := u.profileRepo.FindByUserID(ctx, tx, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	credential := strings.TrimSpace(req.CredentialNumber)
	taken, err := u.profileRepo.FindByCredentialNumber(ctx, tx, credential)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile by credential: %+v", err)
		return nil, err
	}
	if taken != nil {
		return nil, ErrCredentialAlreadyExist
	}

	profile := &entity.InstructorProfile{
		UserID:           req.UserID,
		Bio:              req.Bio,
		CredentialNumber: credential,
		HourlyRate:       req.HourlyRate,
		CarModel:         req.CarModel,
		Transmission:     entity.Transmission(req.Transmission),
		City:             req.City,
		ApprovalStatus:   entity.ApprovalPending,
	}

	if err := u.profileRepo.Create(ctx, tx, profile); err != nil {
		switch {
		case isDuplicateKeyError(err, "user_id"):
			return nil, ErrProfileAlreadyExists
		case isDuplicateKeyError(err, "credential_number"):
			return nil, ErrCredentialAlreadyExist
		case isForeignKeyError(err, "user"):
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to create instructor profile: %+v", err)
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionProfileCreate, "instructor_profile", profile.ID.String(), converter.InstructorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	profile.User = user
	return converter.InstructorProfileToResponse(profile), nil
}

func (u *instructorProfileUsecase) GetProfile(ctx context.Context, id uuid.UUID) (*dto.InstructorProfileResponse, error) {
	profile, err := u.profileRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}
	return converter.InstructorProfileToResponse(profile), nil
}

func (u *instructorProfileUsecase) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*dto.InstructorProfileResponse, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile by user ID: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}
	return converter.InstructorProfileToResponse(profile), nil
}

func (u *instructorProfileUsecase) ListProfiles(ctx context.Context, filter *entity.InstructorFilter) (*dto.InstructorProfileListResponse, error) {
	if filter == nil {
		filter = &entity.InstructorFilter{}
	}
	if filter.ApprovalStatus != "" && !filter.ApprovalStatus.IsValid() {
		return nil, ErrInvalidStatus
	}

	profiles, total, err := u.profileRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find instructor profiles: %+v", err)
		return nil, err
	}

	return &dto.InstructorProfileListResponse{
		Instructors: converter.InstructorProfilesToResponses(profiles),
		Total:       total,
	}, nil
}

// UpdateProfile changes the instructor-editable fields; approval state is owned by ApprovalUsecase.
func (u *instructorProfileUsecase) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateInstructorProfileRequest) (*dto.InstructorProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.CredentialNumber != nil {
		credential := strings.TrimSpace(*req.CredentialNumber)
		if credential != profile.CredentialNumber {
			taken, err := u.profileRepo.FindByCredentialNumber(ctx, tx, credential)
			if err != nil {
				u.log.Warnf("Failed to find instructor profile by credential: %+v", err)
				return nil, err
			}
			if taken != nil && taken.ID != profile.ID {
				return nil, ErrCredentialAlreadyExist
			}
			profile.CredentialNumber = credential
		}
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.CarModel != nil {
		profile.CarModel = req.CarModel
	}
	if req.Transmission != nil {
		profile.Transmission = entity.Transmission(*req.Transmission)
	}
	if req.City != nil {
		profile.City = *req.City
	}

	rows, err := u.profileRepo.UpdateDetails(ctx, tx, profile)
	if err != nil {
		if isDuplicateKeyError(err, "credential_number") {
			return nil, ErrCredentialAlreadyExist
		}
		u.log.Warnf("Failed to update instructor profile: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInstructorNotFound
	}

	profile, err = u.profileRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.InstructorProfileToResponse(profile), nil
}

// DeleteProfile cascades to availability, time off and document rows; stored files go after commit.
func (u *instructorProfileUsecase) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return err
	}
	if profile == nil {
		return ErrInstructorNotFound
	}

	documents, err := u.documentRepo.FindByInstructorID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find instructor documents: %+v", err)
		return err
	}

	if _, err := u.profileRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete instructor profile: %+v", err)
		return err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionProfileDelete, "instructor_profile", id.String(), converter.InstructorProfileToResponse(profile)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	for _, document := range documents {
		if err := u.storage.Delete(document.FilePath); err != nil {
			u.log.Warnf("Failed to remove document file %s: %+v", document.FilePath, err)
		}
	}
	return nil
}

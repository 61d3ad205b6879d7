package usecase

import (
	"context"
	"time"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrTimeOffNotFound   = apperror.NotFound("time off not found")
	ErrInvalidDateFormat = apperror.Validation("VALIDATION_ERROR", "invalid date format, use YYYY-MM-DD")
)

type TimeOffUsecase interface {
	CreateTimeOff(ctx context.Context, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error)
	GetTimeOff(ctx context.Context, id uuid.UUID) (*dto.TimeOffResponse, error)
	ListTimeOff(ctx context.Context, instructorID uuid.UUID) ([]dto.TimeOffResponse, error)
	UpdateTimeOff(ctx context.Context, id uuid.UUID, req *dto.UpdateTimeOffRequest) (*dto.TimeOffResponse, error)
	DeleteTimeOff(ctx context.Context, id uuid.UUID) error
}

type timeOffUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	profileRepo repository.InstructorProfileRepository
	timeOffRepo repository.TimeOffRepository
}

func NewTimeOffUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.InstructorProfileRepository,
	timeOffRepo repository.TimeOffRepository,
) TimeOffUsecase {
	return &timeOffUsecase{
		db:          db,
		log:         log,
		profileRepo: profileRepo,
		timeOffRepo: timeOffRepo,
	}
}

func (u *timeOffUsecase) CreateTimeOff(ctx context.Context, req *dto.CreateTimeOffRequest) (*dto.TimeOffResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.FindByID(ctx, u.db, req.InstructorID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	timeOff := &entity.TimeOff{
		InstructorID: profile.ID,
		Date:         date,
		Reason:       req.Reason,
	}

	if err := u.timeOffRepo.Create(ctx, u.db, timeOff); err != nil {
		if isForeignKeyError(err, "instructor") {
			return nil, ErrInstructorNotFound
		}
		u.log.Warnf("Failed to create time off: %+v", err)
		return nil, err
	}

	return converter.TimeOffToResponse(timeOff), nil
}

func (u *timeOffUsecase) GetTimeOff(ctx context.Context, id uuid.UUID) (*dto.TimeOffResponse, error) {
	timeOff, err := u.timeOffRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find time off: %+v", err)
		return nil, err
	}
	if timeOff == nil {
		return nil, ErrTimeOffNotFound
	}
	return converter.TimeOffToResponse(timeOff), nil
}

func (u *timeOffUsecase) ListTimeOff(ctx context.Context, instructorID uuid.UUID) ([]dto.TimeOffResponse, error) {
	entries, err := u.timeOffRepo.FindByInstructorID(ctx, u.db, instructorID)
	if err != nil {
		u.log.Warnf("Failed to find time off by instructor: %+v", err)
		return nil, err
	}
	return converter.TimeOffsToResponses(entries), nil
}

func (u *timeOffUsecase) UpdateTimeOff(ctx context.Context, id uuid.UUID, req *dto.UpdateTimeOffRequest) (*dto.TimeOffResponse, error) {
	timeOff, err := u.timeOffRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find time off: %+v", err)
		return nil, err
	}
	if timeOff == nil {
		return nil, ErrTimeOffNotFound
	}

	if req.Date != nil {
		if timeOff.Date, err = parseDate(*req.Date); err != nil {
			return nil, err
		}
	}
	if req.Reason != nil {
		timeOff.Reason = req.Reason
	}

	if err := u.timeOffRepo.Update(ctx, u.db, timeOff); err != nil {
		u.log.Warnf("Failed to update time off: %+v", err)
		return nil, err
	}

	return converter.TimeOffToResponse(timeOff), nil
}

func (u *timeOffUsecase) DeleteTimeOff(ctx context.Context, id uuid.UUID) error {
	rows, err := u.timeOffRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete time off: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrTimeOffNotFound
	}
	return nil
}

func parseDate(value string) (datatypes.Date, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return datatypes.Date{}, ErrInvalidDateFormat
	}
	return datatypes.Date(t), nil
}

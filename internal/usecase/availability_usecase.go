package usecase

import (
	"context"
	"errors"
	"time"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/availability"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAvailabilityNotFound = apperror.NotFound("availability not found")
	ErrInvalidRange         = apperror.Validation("INVALID_RANGE", "end must be after start")
	ErrInvalidTimeFormat    = apperror.Validation("VALIDATION_ERROR", "invalid time format, use HH:MM")
	ErrInvalidDayOfWeek     = apperror.Validation("VALIDATION_ERROR", "day_of_week must be between 0 and 6")
)

type AvailabilityUsecase interface {
	CreateAvailability(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetAvailability(ctx context.Context, id uuid.UUID) (*dto.AvailabilityResponse, error)
	ListAvailability(ctx context.Context, instructorID uuid.UUID) ([]dto.AvailabilityResponse, error)
	UpdateAvailability(ctx context.Context, id uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	DeleteAvailability(ctx context.Context, id uuid.UUID) error
	// ResolveAvailability takes the instructor's user id, the same id appointments carry.
	ResolveAvailability(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]availability.Interval, error)
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	userRepo         repository.UserRepository
	profileRepo      repository.InstructorProfileRepository
	availabilityRepo repository.AvailabilityRepository
	resolver         *AvailabilityResolver
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.InstructorProfileRepository,
	resolver *AvailabilityResolver,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		userRepo:         userRepo,
		profileRepo:      profileRepo,
		availabilityRepo: resolver.availabilityRepo,
		resolver:         resolver,
	}
}

func (u *availabilityUsecase) CreateAvailability(ctx context.Context, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if req.DayOfWeek == nil || !entity.ValidDayOfWeek(*req.DayOfWeek) {
		return nil, ErrInvalidDayOfWeek
	}
	start, err := parseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, ErrInvalidRange
	}

	profile, err := u.profileRepo.FindByID(ctx, u.db, req.InstructorID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	window := &entity.Availability{
		InstructorID: profile.ID,
		DayOfWeek:    *req.DayOfWeek,
		StartTime:    start,
		EndTime:      end,
		IsActive:     true,
	}
	if req.IsActive != nil {
		window.IsActive = *req.IsActive
	}

	if err := u.availabilityRepo.Create(ctx, u.db, window); err != nil {
		if isForeignKeyError(err, "instructor") {
			return nil, ErrInstructorNotFound
		}
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(window), nil
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, id uuid.UUID) (*dto.AvailabilityResponse, error) {
	window, err := u.availabilityRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return nil, err
	}
	if window == nil {
		return nil, ErrAvailabilityNotFound
	}
	return converter.AvailabilityToResponse(window), nil
}

func (u *availabilityUsecase) ListAvailability(ctx context.Context, instructorID uuid.UUID) ([]dto.AvailabilityResponse, error) {
	windows, err := u.availabilityRepo.FindByInstructorID(ctx, u.db, instructorID)
	if err != nil {
		u.log.Warnf("Failed to find availability by instructor: %+v", err)
		return nil, err
	}
	return converter.AvailabilitiesToResponses(windows), nil
}

func (u *availabilityUsecase) UpdateAvailability(ctx context.Context, id uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	window, err := u.availabilityRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return nil, err
	}
	if window == nil {
		return nil, ErrAvailabilityNotFound
	}

	if req.DayOfWeek != nil {
		if !entity.ValidDayOfWeek(*req.DayOfWeek) {
			return nil, ErrInvalidDayOfWeek
		}
		window.DayOfWeek = *req.DayOfWeek
	}
	if req.StartTime != nil {
		if window.StartTime, err = parseTimeOfDay(*req.StartTime); err != nil {
			return nil, err
		}
	}
	if req.EndTime != nil {
		if window.EndTime, err = parseTimeOfDay(*req.EndTime); err != nil {
			return nil, err
		}
	}
	if req.IsActive != nil {
		window.IsActive = *req.IsActive
	}
	if window.EndTime <= window.StartTime {
		return nil, ErrInvalidRange
	}

	if err := u.availabilityRepo.Update(ctx, u.db, window); err != nil {
		u.log.Warnf("Failed to update availability: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(window), nil
}

func (u *availabilityUsecase) DeleteAvailability(ctx context.Context, id uuid.UUID) error {
	rows, err := u.availabilityRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete availability: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}

func (u *availabilityUsecase) ResolveAvailability(ctx context.Context, instructorID uuid.UUID, from, to time.Time) ([]availability.Interval, error) {
	profile, err := findInstructorProfile(ctx, u.db, u.userRepo, u.profileRepo, instructorID)
	if err != nil {
		if !errors.Is(err, ErrInstructorNotFound) {
			u.log.Warnf("Failed to find instructor: %+v", err)
		}
		return nil, err
	}

	free, err := u.resolver.resolve(ctx, u.db, profile, from, to)
	if err != nil {
		u.log.Warnf("Failed to resolve availability: %+v", err)
		return nil, err
	}
	return free, nil
}

// findInstructorProfile maps an instructor user id to its profile. Any gap is ErrInstructorNotFound.
func findInstructorProfile(
	ctx context.Context,
	db *gorm.DB,
	userRepo repository.UserRepository,
	profileRepo repository.InstructorProfileRepository,
	userID uuid.UUID,
) (*entity.InstructorProfile, error) {
	user, err := userRepo.FindByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsInstructor() {
		return nil, ErrInstructorNotFound
	}
	profile, err := profileRepo.FindByUserID(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}
	return profile, nil
}

func parseTimeOfDay(value string) (datatypes.Time, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, ErrInvalidTimeFormat
}

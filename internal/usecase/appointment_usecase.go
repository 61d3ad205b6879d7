package usecase

import (
	"context"
	"errors"
	"time"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/domain/availability"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/internal/service"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound   = apperror.NotFound("appointment not found")
	ErrInvalidRole           = apperror.Validation("INVALID_ROLE", "user does not have the required role")
	ErrInstructorNotBookable = apperror.Validation("INSTRUCTOR_NOT_BOOKABLE", "instructor is not approved for bookings")
	ErrSlotUnavailable       = apperror.Conflict("SLOT_UNAVAILABLE", "requested time is not available")
	ErrInvalidTransition     = apperror.State("INVALID_TRANSITION", "status transition not allowed")
	ErrTooEarly              = apperror.State("TOO_EARLY", "appointment has not ended yet")
)

// BookingLocker serialises appointment creation per instructor.
type BookingLocker interface {
	Acquire(ctx context.Context, instructorID uuid.UUID) (func(), error)
}

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
	TransitionAppointment(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus, now time.Time) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	profileRepo     repository.InstructorProfileRepository
	appointmentRepo repository.AppointmentRepository
	resolver        *AvailabilityResolver
	locker          BookingLocker
	auditService    service.AuditService
	metrics         *service.MetricsService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	profileRepo repository.InstructorProfileRepository,
	resolver *AvailabilityResolver,
	locker BookingLocker,
	auditService service.AuditService,
	metrics *service.MetricsService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		appointmentRepo: resolver.appointmentRepo,
		resolver:        resolver,
		locker:          locker,
		auditService:    auditService,
		metrics:         metrics,
	}
}

// CreateAppointment validates the request against the instructor's free time and stores it as PENDING.
// Checks run in order: student role, instructor bookable, range, availability.
func (u *appointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (resp *dto.AppointmentResponse, err error) {
	defer func() {
		switch {
		case err == nil:
			u.metrics.ObserveBooking(service.BookingOutcomeCreated, "")
		case apperror.FromError(err).Kind == apperror.KindInternal:
			u.metrics.ObserveBooking(service.BookingOutcomeError, apperror.CodeOf(err))
		default:
			u.metrics.ObserveBooking(service.BookingOutcomeRejected, apperror.CodeOf(err))
		}
	}()

	student, err := u.userRepo.FindByID(ctx, u.db, req.StudentID)
	if err != nil {
		u.log.Warnf("Failed to find student: %+v", err)
		return nil, err
	}
	if student == nil || !student.IsStudent() {
		return nil, ErrInvalidRole
	}

	profile, err := findInstructorProfile(ctx, u.db, u.userRepo, u.profileRepo, req.InstructorID)
	if err != nil && !errors.Is(err, ErrInstructorNotFound) {
		u.log.Warnf("Failed to find instructor: %+v", err)
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrInstructorNotBookable
	}

	start, end := req.StartDate, req.EndDate
	if !end.After(start) {
		return nil, ErrInvalidRange
	}

	free, err := u.resolver.resolve(ctx, u.db, profile, start, end)
	if err != nil {
		u.log.Warnf("Failed to resolve availability: %+v", err)
		return nil, err
	}
	if !availability.Covers(free, start, end) {
		return nil, ErrSlotUnavailable
	}

	lockStarted := time.Now()
	release, err := u.locker.Acquire(ctx, req.InstructorID)
	u.metrics.ObserveLockWait(time.Since(lockStarted))
	if err != nil {
		if errors.Is(err, service.ErrLockTimeout) {
			return nil, ErrSlotUnavailable
		}
		u.log.Warnf("Failed to acquire booking lock: %+v", err)
		return nil, err
	}
	defer release()

	appointment, err := u.createLocked(ctx, req)
	if err != nil && isRetryableTxError(err) {
		u.log.Infof("Retrying appointment creation for instructor %s: %v", req.InstructorID, err)
		appointment, err = u.createLocked(ctx, req)
	}
	if err != nil {
		if isOverlapError(err) || isRetryableTxError(err) {
			return nil, ErrSlotUnavailable
		}
		if !errors.Is(err, ErrSlotUnavailable) && !errors.Is(err, ErrInstructorNotBookable) {
			u.log.Warnf("Failed to create appointment: %+v", err)
		}
		return nil, err
	}

	u.log.Infof("Appointment %s booked for instructor %s", appointment.ID, appointment.InstructorID)
	return converter.AppointmentToResponse(appointment), nil
}

// createLocked re-checks approval and overlap under the profile row lock, then inserts.
func (u *appointmentUsecase) createLocked(ctx context.Context, req *dto.CreateAppointmentRequest) (*entity.Appointment, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.profileRepo.LockByUserID(ctx, tx, req.InstructorID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsApproved() {
		return nil, ErrInstructorNotBookable
	}

	overlapping, err := u.appointmentRepo.CountOverlapping(ctx, tx, req.InstructorID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if overlapping > 0 {
		return nil, ErrSlotUnavailable
	}

	appointment := &entity.Appointment{
		StudentID:      req.StudentID,
		InstructorID:   req.InstructorID,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         entity.AppointmentPending,
		LocationPickup: req.LocationPickup,
		Notes:          req.Notes,
	}
	if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), converter.AppointmentToResponse(appointment)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return appointment, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, filter *entity.AppointmentFilter) (*dto.AppointmentListResponse, error) {
	if filter == nil {
		filter = &entity.AppointmentFilter{}
	}
	if filter.Status != "" && !filter.Status.IsValid() {
		return nil, ErrInvalidStatus
	}

	appointments, total, err := u.appointmentRepo.FindAll(ctx, u.db, filter)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        total,
	}, nil
}

// UpdateAppointment edits pickup location and notes. Status only moves through TransitionAppointment.
func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if req.LocationPickup != nil {
		appointment.LocationPickup = req.LocationPickup
	}
	if req.Notes != nil {
		appointment.Notes = req.Notes
	}

	rows, err := u.appointmentRepo.UpdateDetails(ctx, u.db, id, appointment.LocationPickup, appointment.Notes)
	if err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrAppointmentNotFound
	}

	return u.GetAppointment(ctx, id)
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	rows, err := u.appointmentRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// TransitionAppointment moves an appointment along the status table. COMPLETED is only
// reachable once the lesson has ended at now.
func (u *appointmentUsecase) TransitionAppointment(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus, now time.Time) (*dto.AppointmentResponse, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	previous := appointment.Status
	if !previous.CanTransitionTo(status) {
		return nil, ErrInvalidTransition
	}
	if status == entity.AppointmentCompleted && appointment.EndDate.After(now) {
		return nil, ErrTooEarly
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, tx, id, previous, status)
	if err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}
	if rows == 0 {
		// Lost a race with a concurrent transition.
		return nil, ErrInvalidTransition
	}
	appointment.Status = status

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentTransition, "appointment", id.String(),
		map[string]interface{}{"status": previous},
		map[string]interface{}{"status": status},
	); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.metrics.ObserveTransition("appointment", string(status))
	return converter.AppointmentToResponse(appointment), nil
}

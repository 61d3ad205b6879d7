package usecase

import (
	"context"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReviewNotFound          = apperror.NotFound("review not found")
	ErrAppointmentNotCompleted = apperror.State("APPOINTMENT_NOT_COMPLETED", "only completed appointments can be reviewed")
	ErrDuplicateReview         = apperror.Conflict("DUPLICATE_REVIEW", "appointment already reviewed")
	ErrInvalidRating           = apperror.Validation("VALIDATION_ERROR", "rating must be between 1 and 5")
)

type ReviewUsecase interface {
	CreateReview(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	GetReview(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error)
	ListByInstructor(ctx context.Context, instructorID uuid.UUID, page entity.Page) ([]dto.ReviewResponse, error)
	UpdateReview(ctx context.Context, id uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
	RatingStats(ctx context.Context, instructorID uuid.UUID) (*dto.RatingStatsResponse, error)
}

type reviewUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	userRepo        repository.UserRepository
	appointmentRepo repository.AppointmentRepository
	reviewRepo      repository.ReviewRepository
}

func NewReviewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	reviewRepo repository.ReviewRepository,
) ReviewUsecase {
	return &reviewUsecase{
		db:              db,
		log:             log,
		userRepo:        userRepo,
		appointmentRepo: appointmentRepo,
		reviewRepo:      reviewRepo,
	}
}

// CreateReview copies student and instructor from the appointment being reviewed.
func (u *reviewUsecase) CreateReview(ctx context.Context, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if !entity.ValidRating(req.Rating) {
		return nil, ErrInvalidRating
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status != entity.AppointmentCompleted {
		return nil, ErrAppointmentNotCompleted
	}

	existing, err := u.reviewRepo.FindByAppointmentID(ctx, u.db, appointment.ID)
	if err != nil {
		u.log.Warnf("Failed to find review by appointment: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateReview
	}

	review := &entity.Review{
		AppointmentID: appointment.ID,
		StudentID:     appointment.StudentID,
		InstructorID:  appointment.InstructorID,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}
	if err := u.reviewRepo.Create(ctx, u.db, review); err != nil {
		if isDuplicateKeyError(err, "appointment_id") {
			return nil, ErrDuplicateReview
		}
		u.log.Warnf("Failed to create review: %+v", err)
		return nil, err
	}

	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) GetReview(ctx context.Context, id uuid.UUID) (*dto.ReviewResponse, error) {
	review, err := u.reviewRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) ListByInstructor(ctx context.Context, instructorID uuid.UUID, page entity.Page) ([]dto.ReviewResponse, error) {
	if err := u.ensureInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	reviews, err := u.reviewRepo.FindByInstructorID(ctx, u.db, instructorID, page)
	if err != nil {
		u.log.Warnf("Failed to find reviews by instructor: %+v", err)
		return nil, err
	}
	return converter.ReviewsToResponses(reviews), nil
}

func (u *reviewUsecase) UpdateReview(ctx context.Context, id uuid.UUID, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	review, err := u.reviewRepo.FindByID(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find review: %+v", err)
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	if req.Rating != nil {
		if !entity.ValidRating(*req.Rating) {
			return nil, ErrInvalidRating
		}
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = req.Comment
	}

	if err := u.reviewRepo.Update(ctx, u.db, review); err != nil {
		u.log.Warnf("Failed to update review: %+v", err)
		return nil, err
	}
	return converter.ReviewToResponse(review), nil
}

func (u *reviewUsecase) DeleteReview(ctx context.Context, id uuid.UUID) error {
	rows, err := u.reviewRepo.Delete(ctx, u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete review: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (u *reviewUsecase) RatingStats(ctx context.Context, instructorID uuid.UUID) (*dto.RatingStatsResponse, error) {
	if err := u.ensureInstructor(ctx, instructorID); err != nil {
		return nil, err
	}

	stats, err := u.reviewRepo.RatingStats(ctx, u.db, instructorID)
	if err != nil {
		u.log.Warnf("Failed to compute rating stats: %+v", err)
		return nil, err
	}
	return converter.RatingStatsToResponse(instructorID, stats), nil
}

func (u *reviewUsecase) ensureInstructor(ctx context.Context, userID uuid.UUID) error {
	user, err := u.userRepo.FindByID(ctx, u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find instructor: %+v", err)
		return err
	}
	if user == nil || !user.IsInstructor() {
		return ErrInstructorNotFound
	}
	return nil
}

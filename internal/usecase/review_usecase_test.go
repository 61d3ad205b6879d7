package usecase

import (
	"context"
	"testing"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReviewFixture(t *testing.T) (*store, ReviewUsecase) {
	t.Helper()
	s := newStore()
	db, _ := newMockDB(t)
	return s, NewReviewUsecase(db, newTestLogger(), fakeUserRepo{s}, fakeAppointmentRepo{s}, fakeReviewRepo{s})
}

func TestCreateReviewCopiesParticipants(t *testing.T) {
	s, reviews := newReviewFixture(t)
	student := s.addUser(entity.RoleStudent)
	instructor, _ := s.addInstructor(entity.ApprovalApproved)
	appointment := s.addAppointment(entity.Appointment{
		StudentID:    student.ID,
		InstructorID: instructor.ID,
		StartDate:    at(9),
		EndDate:      at(10),
		Status:       entity.AppointmentCompleted,
	})

	resp, err := reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: appointment.ID, Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, student.ID, resp.StudentID)
	assert.Equal(t, instructor.ID, resp.InstructorID)

	_, err = reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: appointment.ID, Rating: 4})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestCreateReviewRequiresCompletedAppointment(t *testing.T) {
	s, reviews := newReviewFixture(t)
	student := s.addUser(entity.RoleStudent)
	instructor, _ := s.addInstructor(entity.ApprovalApproved)

	for _, status := range []entity.AppointmentStatus{entity.AppointmentPending, entity.AppointmentConfirmed, entity.AppointmentCancelled} {
		appointment := s.addAppointment(entity.Appointment{
			StudentID:    student.ID,
			InstructorID: instructor.ID,
			Status:       status,
		})
		_, err := reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: appointment.ID, Rating: 3})
		assert.ErrorIs(t, err, ErrAppointmentNotCompleted, status)
	}

	_, err := reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: uuid.New(), Rating: 3})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRatingStatsAndListing(t *testing.T) {
	s, reviews := newReviewFixture(t)
	student := s.addUser(entity.RoleStudent)
	instructor, _ := s.addInstructor(entity.ApprovalApproved)
	for _, rating := range []int{5, 4} {
		appointment := s.addAppointment(entity.Appointment{StudentID: student.ID, InstructorID: instructor.ID, Status: entity.AppointmentCompleted})
		_, err := reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: appointment.ID, Rating: rating})
		require.NoError(t, err)
	}

	stats, err := reviews.RatingStats(context.Background(), instructor.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalReviews)
	assert.InDelta(t, 4.5, stats.AverageRating, 0.001)
	assert.Equal(t, int64(1), stats.RatingDistribution[5])

	list, err := reviews.ListByInstructor(context.Background(), instructor.ID, entity.Page{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = reviews.ListByInstructor(context.Background(), student.ID, entity.Page{})
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestUpdateReviewValidatesRating(t *testing.T) {
	s, reviews := newReviewFixture(t)
	student := s.addUser(entity.RoleStudent)
	instructor, _ := s.addInstructor(entity.ApprovalApproved)
	appointment := s.addAppointment(entity.Appointment{StudentID: student.ID, InstructorID: instructor.ID, Status: entity.AppointmentCompleted})
	created, err := reviews.CreateReview(context.Background(), &dto.CreateReviewRequest{AppointmentID: appointment.ID, Rating: 2})
	require.NoError(t, err)

	bad := 6
	_, err = reviews.UpdateReview(context.Background(), created.ID, &dto.UpdateReviewRequest{Rating: &bad})
	assert.ErrorIs(t, err, ErrInvalidRating)

	good := 4
	updated, err := reviews.UpdateReview(context.Background(), created.ID, &dto.UpdateReviewRequest{Rating: &good})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)

	require.NoError(t, reviews.DeleteReview(context.Background(), created.ID))
	assert.ErrorIs(t, reviews.DeleteReview(context.Background(), created.ID), ErrReviewNotFound)
}

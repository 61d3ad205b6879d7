package converter

import (
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
)

func ReviewToResponse(review *entity.Review) *dto.ReviewResponse {
	if review == nil {
		return nil
	}

	return &dto.ReviewResponse{
		ID:            review.ID,
		AppointmentID: review.AppointmentID,
		StudentID:     review.StudentID,
		InstructorID:  review.InstructorID,
		Rating:        review.Rating,
		Comment:       review.Comment,
		CreatedAt:     review.CreatedAt,
		UpdatedAt:     review.UpdatedAt,
	}
}

func ReviewsToResponses(reviews []entity.Review) []dto.ReviewResponse {
	responses := make([]dto.ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = *ReviewToResponse(&reviews[i])
	}
	return responses
}

func RatingStatsToResponse(instructorID uuid.UUID, stats *entity.RatingStats) *dto.RatingStatsResponse {
	return &dto.RatingStatsResponse{
		InstructorID:       instructorID,
		AverageRating:      stats.AverageRating,
		TotalReviews:       stats.TotalReviews,
		RatingDistribution: stats.RatingDistribution,
	}
}

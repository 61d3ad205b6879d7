package handler

import (
	"encoding/json"
	"net/http"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/response"
	"autodominio-api/pkg/validator"
)

type ReviewHandler struct {
	reviewUsecase usecase.ReviewUsecase
	validator     *validator.CustomValidator
}

func NewReviewHandler(reviewUsecase usecase.ReviewUsecase, validator *validator.CustomValidator) *ReviewHandler {
	return &ReviewHandler{
		reviewUsecase: reviewUsecase,
		validator:     validator,
	}
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.CreateReview(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create review")
		return
	}

	response.Success(w, http.StatusCreated, "Review created successfully", review)
}

func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	review, err := h.reviewUsecase.GetReview(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get review")
		return
	}

	response.Success(w, http.StatusOK, "Review retrieved successfully", review)
}

func (h *ReviewHandler) ListByInstructor(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "user_id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor ID", nil)
		return
	}

	reviews, err := h.reviewUsecase.ListByInstructor(r.Context(), instructorID, queryPage(r))
	if err != nil {
		response.FromError(w, err, "Failed to get reviews")
		return
	}

	response.Success(w, http.StatusOK, "Reviews retrieved successfully", reviews)
}

func (h *ReviewHandler) RatingStats(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "user_id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor ID", nil)
		return
	}

	stats, err := h.reviewUsecase.RatingStats(r.Context(), instructorID)
	if err != nil {
		response.FromError(w, err, "Failed to get rating stats")
		return
	}

	response.Success(w, http.StatusOK, "Rating stats retrieved successfully", stats)
}

func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	var req dto.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	review, err := h.reviewUsecase.UpdateReview(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update review")
		return
	}

	response.Success(w, http.StatusOK, "Review updated successfully", review)
}

func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid review ID", nil)
		return
	}

	if err := h.reviewUsecase.DeleteReview(r.Context(), id); err != nil {
		response.FromError(w, err, "Failed to delete review")
		return
	}

	response.Success(w, http.StatusOK, "Review deleted successfully", nil)
}

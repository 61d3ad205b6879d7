package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/response"
	"autodominio-api/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type InstructorHandler struct {
	profileUsecase  usecase.InstructorProfileUsecase
	approvalUsecase usecase.ApprovalUsecase
	validator       *validator.CustomValidator
}

func NewInstructorHandler(profileUsecase usecase.InstructorProfileUsecase, approvalUsecase usecase.ApprovalUsecase, validator *validator.CustomValidator) *InstructorHandler {
	return &InstructorHandler{
		profileUsecase:  profileUsecase,
		approvalUsecase: approvalUsecase,
		validator:       validator,
	}
}

func (h *InstructorHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateInstructorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.CreateProfile(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create instructor profile")
		return
	}

	response.Success(w, http.StatusCreated, "Instructor profile created successfully", profile)
}

// ListProfiles supports city, transmission, min_rate, max_rate, approval_status, skip and limit.
func (h *InstructorHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &entity.InstructorFilter{
		City:           strings.TrimSpace(q.Get("city")),
		Transmission:   entity.Transmission(strings.ToUpper(q.Get("transmission"))),
		ApprovalStatus: entity.ApprovalStatus(strings.ToUpper(q.Get("approval_status"))),
		Page:           queryPage(r),
	}
	for param, target := range map[string]**decimal.Decimal{"min_rate": &filter.MinRate, "max_rate": &filter.MaxRate} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid "+param, nil)
			return
		}
		*target = &value
	}

	profiles, err := h.profileUsecase.ListProfiles(r.Context(), filter)
	if err != nil {
		response.FromError(w, err, "Failed to get instructor profiles")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profiles retrieved successfully", profiles)
}

func (h *InstructorHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	profile, err := h.profileUsecase.GetProfile(r.Context(), profileID)
	if err != nil {
		response.FromError(w, err, "Failed to get instructor profile")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profile retrieved successfully", profile)
}

func (h *InstructorHandler) GetProfileByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(r, "user_id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
		return
	}

	profile, err := h.profileUsecase.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		response.FromError(w, err, "Failed to get instructor profile")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profile retrieved successfully", profile)
}

func (h *InstructorHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	var req dto.UpdateInstructorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.profileUsecase.UpdateProfile(r.Context(), profileID, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update instructor profile")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profile updated successfully", profile)
}

func (h *InstructorHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	if err := h.profileUsecase.DeleteProfile(r.Context(), profileID); err != nil {
		response.FromError(w, err, "Failed to delete instructor profile")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profile deleted successfully", nil)
}

// ListByApprovalStatus takes the status from the path, e.g. /approvals/under-review.
func (h *InstructorHandler) ListByApprovalStatus(w http.ResponseWriter, r *http.Request) {
	raw := strings.ToUpper(strings.ReplaceAll(mux.Vars(r)["status"], "-", "_"))

	profiles, err := h.approvalUsecase.ListByStatus(r.Context(), entity.ApprovalStatus(raw), queryPage(r))
	if err != nil {
		response.FromError(w, err, "Failed to get instructor profiles")
		return
	}

	response.Success(w, http.StatusOK, "Instructor profiles retrieved successfully", profiles)
}

func (h *InstructorHandler) TransitionApproval(w http.ResponseWriter, r *http.Request) {
	profileID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	var req dto.ApprovalTransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.approvalUsecase.TransitionApproval(r.Context(), profileID, entity.ApprovalStatus(req.Status), req.RejectionReason)
	if err != nil {
		response.FromError(w, err, "Failed to update approval status")
		return
	}

	response.Success(w, http.StatusOK, "Approval status updated successfully", profile)
}

func (h *InstructorHandler) ApprovalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.approvalUsecase.Stats(r.Context())
	if err != nil {
		response.FromError(w, err, "Failed to get approval stats")
		return
	}

	response.Success(w, http.StatusOK, "Approval stats retrieved successfully", stats)
}

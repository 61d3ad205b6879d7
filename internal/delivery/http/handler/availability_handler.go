package handler

import (
	"encoding/json"
	"net/http"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/response"
	"autodominio-api/pkg/validator"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	timeOffUsecase      usecase.TimeOffUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, timeOffUsecase usecase.TimeOffUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		timeOffUsecase:      timeOffUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) CreateAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.availabilityUsecase.CreateAvailability(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create availability")
		return
	}

	response.Success(w, http.StatusCreated, "Availability created successfully", window)
}

func (h *AvailabilityHandler) ListAvailability(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	windows, err := h.availabilityUsecase.ListAvailability(r.Context(), instructorID)
	if err != nil {
		response.FromError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", windows)
}

func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	window, err := h.availabilityUsecase.GetAvailability(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", window)
}

func (h *AvailabilityHandler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	var req dto.UpdateAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	window, err := h.availabilityUsecase.UpdateAvailability(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", window)
}

func (h *AvailabilityHandler) DeleteAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid availability ID", nil)
		return
	}

	if err := h.availabilityUsecase.DeleteAvailability(r.Context(), id); err != nil {
		response.FromError(w, err, "Failed to delete availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability deleted successfully", nil)
}

// ResolveAvailability answers GET /instructors/{user_id}/free?from=...&to=... with RFC 3339 bounds.
func (h *AvailabilityHandler) ResolveAvailability(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "user_id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor ID", nil)
		return
	}
	from, okFrom := queryTime(r, "from")
	to, okTo := queryTime(r, "to")
	if !okFrom || !okTo {
		response.Error(w, http.StatusBadRequest, "from and to must be RFC 3339 timestamps", nil)
		return
	}

	free, err := h.availabilityUsecase.ResolveAvailability(r.Context(), instructorID, from, to)
	if err != nil {
		response.FromError(w, err, "Failed to resolve availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability resolved successfully", converter.IntervalsToResponse(instructorID, from, to, free))
}

func (h *AvailabilityHandler) CreateTimeOff(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	timeOff, err := h.timeOffUsecase.CreateTimeOff(r.Context(), &req)
	if err != nil {
		response.FromError(w, err, "Failed to create time off")
		return
	}

	response.Success(w, http.StatusCreated, "Time off created successfully", timeOff)
}

func (h *AvailabilityHandler) ListTimeOff(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	entries, err := h.timeOffUsecase.ListTimeOff(r.Context(), instructorID)
	if err != nil {
		response.FromError(w, err, "Failed to get time off")
		return
	}

	response.Success(w, http.StatusOK, "Time off retrieved successfully", entries)
}

func (h *AvailabilityHandler) GetTimeOff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid time off ID", nil)
		return
	}

	timeOff, err := h.timeOffUsecase.GetTimeOff(r.Context(), id)
	if err != nil {
		response.FromError(w, err, "Failed to get time off")
		return
	}

	response.Success(w, http.StatusOK, "Time off retrieved successfully", timeOff)
}

func (h *AvailabilityHandler) UpdateTimeOff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid time off ID", nil)
		return
	}

	var req dto.UpdateTimeOffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	timeOff, err := h.timeOffUsecase.UpdateTimeOff(r.Context(), id, &req)
	if err != nil {
		response.FromError(w, err, "Failed to update time off")
		return
	}

	response.Success(w, http.StatusOK, "Time off updated successfully", timeOff)
}

func (h *AvailabilityHandler) DeleteTimeOff(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid time off ID", nil)
		return
	}

	if err := h.timeOffUsecase.DeleteTimeOff(r.Context(), id); err != nil {
		response.FromError(w, err, "Failed to delete time off")
		return
	}

	response.Success(w, http.StatusOK, "Time off deleted successfully", nil)
}

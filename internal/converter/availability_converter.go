package converter

import (
	"time"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/availability"
	"autodominio-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TimeOfDay formats a datatypes.Time as HH:MM.
func TimeOfDay(t datatypes.Time) string {
	d := time.Duration(t)
	return time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Add(d).Format("15:04")
}

func AvailabilityToResponse(window *entity.Availability) *dto.AvailabilityResponse {
	if window == nil {
		return nil
	}

	return &dto.AvailabilityResponse{
		ID:           window.ID,
		InstructorID: window.InstructorID,
		DayOfWeek:    window.DayOfWeek,
		StartTime:    TimeOfDay(window.StartTime),
		EndTime:      TimeOfDay(window.EndTime),
		IsActive:     window.IsActive,
		CreatedAt:    window.CreatedAt,
		UpdatedAt:    window.UpdatedAt,
	}
}

func AvailabilitiesToResponses(windows []entity.Availability) []dto.AvailabilityResponse {
	responses := make([]dto.AvailabilityResponse, len(windows))
	for i := range windows {
		responses[i] = *AvailabilityToResponse(&windows[i])
	}
	return responses
}

func IntervalsToResponse(instructorID uuid.UUID, from, to time.Time, intervals []availability.Interval) *dto.ResolvedAvailabilityResponse {
	response := &dto.ResolvedAvailabilityResponse{
		InstructorID: instructorID,
		From:         from,
		To:           to,
		Intervals:    make([]dto.IntervalResponse, len(intervals)),
	}
	for i, iv := range intervals {
		response.Intervals[i] = dto.IntervalResponse{Start: iv.Start, End: iv.End}
	}
	return response
}

func TimeOffToResponse(timeOff *entity.TimeOff) *dto.TimeOffResponse {
	if timeOff == nil {
		return nil
	}

	return &dto.TimeOffResponse{
		ID:           timeOff.ID,
		InstructorID: timeOff.InstructorID,
		Date:         time.Time(timeOff.Date).Format("2006-01-02"),
		Reason:       timeOff.Reason,
		CreatedAt:    timeOff.CreatedAt,
	}
}

func TimeOffsToResponses(entries []entity.TimeOff) []dto.TimeOffResponse {
	responses := make([]dto.TimeOffResponse, len(entries))
	for i := range entries {
		responses[i] = *TimeOffToResponse(&entries[i])
	}
	return responses
}

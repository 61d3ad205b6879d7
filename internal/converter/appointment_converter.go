package converter

import (
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:             appointment.ID,
		StudentID:      appointment.StudentID,
		InstructorID:   appointment.InstructorID,
		StartDate:      appointment.StartDate,
		EndDate:        appointment.EndDate,
		Status:         string(appointment.Status),
		LocationPickup: appointment.LocationPickup,
		Notes:          appointment.Notes,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}

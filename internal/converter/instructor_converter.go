package converter

import (
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
)

func InstructorProfileToResponse(profile *entity.InstructorProfile) *dto.InstructorProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.InstructorProfileResponse{
		ID:               profile.ID,
		UserID:           profile.UserID,
		Bio:              profile.Bio,
		CredentialNumber: profile.CredentialNumber,
		HourlyRate:       profile.HourlyRate,
		CarModel:         profile.CarModel,
		Transmission:     string(profile.Transmission),
		City:             profile.City,
		ApprovalStatus:   string(profile.ApprovalStatus),
		ApprovalDate:     profile.ApprovalDate,
		RejectionReason:  profile.RejectionReason,
		CreatedAt:        profile.CreatedAt,
		UpdatedAt:        profile.UpdatedAt,
	}

	if profile.User != nil {
		response.FullName = profile.User.FullName
	}

	return response
}

func InstructorProfilesToResponses(profiles []entity.InstructorProfile) []dto.InstructorProfileResponse {
	responses := make([]dto.InstructorProfileResponse, len(profiles))
	for i := range profiles {
		responses[i] = *InstructorProfileToResponse(&profiles[i])
	}
	return responses
}

func ApprovalStatsToResponse(counts map[entity.ApprovalStatus]int64) *dto.ApprovalStatsResponse {
	stats := &dto.ApprovalStatsResponse{
		Pending:     counts[entity.ApprovalPending],
		UnderReview: counts[entity.ApprovalUnderReview],
		Approved:    counts[entity.ApprovalApproved],
		Rejected:    counts[entity.ApprovalRejected],
	}
	stats.Total = stats.Pending + stats.UnderReview + stats.Approved + stats.Rejected
	return stats
}

package converter

import (
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
)

func DocumentToResponse(document *entity.Document) *dto.DocumentResponse {
	if document == nil {
		return nil
	}

	return &dto.DocumentResponse{
		ID:               document.ID,
		InstructorID:     document.InstructorID,
		DocumentType:     string(document.DocumentType),
		FilePath:         document.FilePath,
		OriginalFilename: document.OriginalFilename,
		UploadedAt:       document.UploadedAt,
	}
}

func DocumentsToResponses(documents []entity.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = *DocumentToResponse(&documents[i])
	}
	return responses
}

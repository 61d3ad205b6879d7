package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest is filled from a multipart form, not JSON.
type UploadDocumentRequest struct {
	InstructorID     uuid.UUID `validate:"required"`
	DocumentType     string    `validate:"required,oneof=CNH CREDENTIAL CERTIFICATE RG CPF PROOF_OF_ADDRESS VEHICLE_DOCUMENT OTHER"`
	OriginalFilename string    `validate:"required,max=255"`
}

// Response DTOs

type DocumentResponse struct {
	ID               uuid.UUID `json:"id"`
	InstructorID     uuid.UUID `json:"instructor_id"`
	DocumentType     string    `json:"document_type"`
	FilePath         string    `json:"file_path"`
	OriginalFilename *string   `json:"original_filename,omitempty"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

type UploadInfoResponse struct {
	AllowedImageExtensions    []string `json:"allowed_image_extensions"`
	AllowedDocumentExtensions []string `json:"allowed_document_extensions"`
	DocumentTypes             []string `json:"document_types"`
	MaxPhotoPx                int      `json:"max_photo_px"`
}

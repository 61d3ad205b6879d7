package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentType string

const (
	DocumentCNH             DocumentType = "CNH"
	DocumentCredential      DocumentType = "CREDENTIAL"
	DocumentCertificate     DocumentType = "CERTIFICATE"
	DocumentRG              DocumentType = "RG"
	DocumentCPF             DocumentType = "CPF"
	DocumentProofOfAddress  DocumentType = "PROOF_OF_ADDRESS"
	DocumentVehicleDocument DocumentType = "VEHICLE_DOCUMENT"
	DocumentOther           DocumentType = "OTHER"
)

func DocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentCNH, DocumentCredential, DocumentCertificate, DocumentRG,
		DocumentCPF, DocumentProofOfAddress, DocumentVehicleDocument, DocumentOther,
	}
}

func (t DocumentType) IsValid() bool {
	for _, known := range DocumentTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Document references a file uploaded by an instructor. FilePath is relative to the upload dir.
type Document struct {
	ID               uuid.UUID    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InstructorID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"instructor_id"`
	DocumentType     DocumentType `gorm:"type:document_type;not null" json:"document_type"`
	FilePath         string       `gorm:"type:varchar(500);not null" json:"file_path"`
	OriginalFilename *string      `gorm:"type:varchar(255)" json:"original_filename,omitempty"`
	UploadedAt       time.Time    `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (Document) TableName() string {
	return "instructor_documents"
}

package handler

import (
	"net/http"
	"path/filepath"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/usecase"
	"autodominio-api/pkg/response"
	"autodominio-api/pkg/validator"

	"github.com/google/uuid"
)

type DocumentHandler struct {
	documentUsecase usecase.DocumentUsecase
	validator       *validator.CustomValidator
}

func NewDocumentHandler(documentUsecase usecase.DocumentUsecase, validator *validator.CustomValidator) *DocumentHandler {
	return &DocumentHandler{
		documentUsecase: documentUsecase,
		validator:       validator,
	}
}

// UploadDocument expects multipart fields instructor_id, document_type and file.
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer file.Close()

	instructorID, err := uuid.Parse(r.FormValue("instructor_id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid instructor_id", nil)
		return
	}

	req := dto.UploadDocumentRequest{
		InstructorID:     instructorID,
		DocumentType:     r.FormValue("document_type"),
		OriginalFilename: filepath.Base(header.Filename),
	}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	document, err := h.documentUsecase.UploadDocument(r.Context(), &req, file)
	if err != nil {
		response.FromError(w, err, "Failed to upload document")
		return
	}

	response.Success(w, http.StatusCreated, "Document uploaded successfully", document)
}

func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	instructorID, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid instructor profile ID", nil)
		return
	}

	documents, err := h.documentUsecase.ListDocuments(r.Context(), instructorID)
	if err != nil {
		response.FromError(w, err, "Failed to get documents")
		return
	}

	response.Success(w, http.StatusOK, "Documents retrieved successfully", documents)
}

func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid document ID", nil)
		return
	}

	if err := h.documentUsecase.DeleteDocument(r.Context(), id); err != nil {
		response.FromError(w, err, "Failed to delete document")
		return
	}

	response.Success(w, http.StatusOK, "Document deleted successfully", nil)
}

func (h *DocumentHandler) UploadInfo(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Upload info retrieved successfully", h.documentUsecase.UploadInfo())
}

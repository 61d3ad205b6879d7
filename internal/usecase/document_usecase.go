package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"autodominio-api/internal/converter"
	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/delivery/http/middleware"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/internal/service"
	"autodominio-api/pkg/apperror"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrDocumentNotFound = apperror.NotFound("document not found")

type DocumentUsecase interface {
	UploadDocument(ctx context.Context, req *dto.UploadDocumentRequest, r io.Reader) (*dto.DocumentResponse, error)
	ListDocuments(ctx context.Context, instructorID uuid.UUID) ([]dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
	UploadInfo() *dto.UploadInfoResponse
}

type documentUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	profileRepo  repository.InstructorProfileRepository
	documentRepo repository.DocumentRepository
	auditService service.AuditService
	storage      FileStorage
	maxPhotoPx   int
}

func NewDocumentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.InstructorProfileRepository,
	documentRepo repository.DocumentRepository,
	auditService service.AuditService,
	storage FileStorage,
	maxPhotoPx int,
) DocumentUsecase {
	return &documentUsecase{
		db:           db,
		log:          log,
		profileRepo:  profileRepo,
		documentRepo: documentRepo,
		auditService: auditService,
		storage:      storage,
		maxPhotoPx:   maxPhotoPx,
	}
}

// UploadDocument writes the file first; a failed insert removes it again.
func (u *documentUsecase) UploadDocument(ctx context.Context, req *dto.UploadDocumentRequest, r io.Reader) (*dto.DocumentResponse, error) {
	ext := extensionOf(req.OriginalFilename, allowedDocumentExtensions)
	if ext == "" {
		return nil, ErrUnsupportedFile
	}
	documentType := entity.DocumentType(req.DocumentType)
	if !documentType.IsValid() {
		return nil, ErrUnsupportedFile
	}

	profile, err := u.profileRepo.FindByID(ctx, u.db, req.InstructorID)
	if err != nil {
		u.log.Warnf("Failed to find instructor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrInstructorNotFound
	}

	name := fmt.Sprintf("instructor_documents/%s/%s%s", profile.ID, uuid.NewString(), ext)
	path, err := u.storage.SaveStream(name, r)
	if err != nil {
		u.log.Warnf("Failed to store document: %+v", err)
		return nil, err
	}

	original := filepath.Base(req.OriginalFilename)
	document := &entity.Document{
		InstructorID:     profile.ID,
		DocumentType:     documentType,
		FilePath:         path,
		OriginalFilename: &original,
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.documentRepo.Create(ctx, tx, document); err != nil {
		u.log.Warnf("Failed to create document: %+v", err)
		u.removeFile(path)
		return nil, err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogCreate(ctx, tx, &actorID, entity.AuditActionDocumentUpload, "document", document.ID.String(), converter.DocumentToResponse(document)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		u.removeFile(path)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		u.removeFile(path)
		return nil, err
	}

	return converter.DocumentToResponse(document), nil
}

func (u *documentUsecase) ListDocuments(ctx context.Context, instructorID uuid.UUID) ([]dto.DocumentResponse, error) {
	documents, err := u.documentRepo.FindByInstructorID(ctx, u.db, instructorID)
	if err != nil {
		u.log.Warnf("Failed to find documents: %+v", err)
		return nil, err
	}
	return converter.DocumentsToResponses(documents), nil
}

// DeleteDocument removes the record, then the file on a best-effort basis.
func (u *documentUsecase) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	document, err := u.documentRepo.FindByID(ctx, tx, id)
	if err != nil {
		u.log.Warnf("Failed to find document: %+v", err)
		return err
	}
	if document == nil {
		return ErrDocumentNotFound
	}

	if _, err := u.documentRepo.Delete(ctx, tx, id); err != nil {
		u.log.Warnf("Failed to delete document: %+v", err)
		return err
	}

	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionDocumentDelete, "document", id.String(), converter.DocumentToResponse(document)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.removeFile(document.FilePath)
	return nil
}

func (u *documentUsecase) UploadInfo() *dto.UploadInfoResponse {
	types := entity.DocumentTypes()
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return &dto.UploadInfoResponse{
		AllowedImageExtensions:    AllowedImageExtensions(),
		AllowedDocumentExtensions: AllowedDocumentExtensions(),
		DocumentTypes:             names,
		MaxPhotoPx:                u.maxPhotoPx,
	}
}

func (u *documentUsecase) removeFile(path string) {
	if err := u.storage.Delete(path); err != nil {
		u.log.Warnf("Failed to remove file %s: %+v", path, err)
	}
}

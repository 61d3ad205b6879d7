package usecase

import (
	"context"
	"strings"
	"testing"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocumentFixture(t *testing.T) (*store, DocumentUsecase, *memoryStorage, sqlmock.Sqlmock) {
	t.Helper()
	s := newStore()
	db, mock := newMockDB(t)
	log := newTestLogger()
	files := newMemoryStorage()
	uc := NewDocumentUsecase(db, log, fakeProfileRepo{s}, fakeDocumentRepo{s}, service.NewAuditService(log, fakeAuditRepo{s}), files, 512)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return s, uc, files, mock
}

func TestUploadDocumentStoresFileAndRecord(t *testing.T) {
	s, uc, files, mock := newDocumentFixture(t)
	_, profile := s.addInstructor(entity.ApprovalPending)
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := uc.UploadDocument(context.Background(), &dto.UploadDocumentRequest{
		InstructorID:     profile.ID,
		DocumentType:     "CNH",
		OriginalFilename: "licence.PDF",
	}, strings.NewReader("scan"))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.FilePath, "instructor_documents/"+profile.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(resp.FilePath, ".pdf"))
	assert.Equal(t, []byte("scan"), files.files[resp.FilePath])
	require.NotNil(t, resp.OriginalFilename)
	assert.Equal(t, "licence.PDF", *resp.OriginalFilename)
	assert.Len(t, s.documents, 1)
	assert.Equal(t, []string{entity.AuditActionDocumentUpload}, s.auditActions())
}

func TestUploadDocumentRejections(t *testing.T) {
	s, uc, files, _ := newDocumentFixture(t)
	_, profile := s.addInstructor(entity.ApprovalPending)

	_, err := uc.UploadDocument(context.Background(), &dto.UploadDocumentRequest{
		InstructorID: profile.ID, DocumentType: "CNH", OriginalFilename: "script.sh",
	}, strings.NewReader("#!"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)

	_, err = uc.UploadDocument(context.Background(), &dto.UploadDocumentRequest{
		InstructorID: uuid.New(), DocumentType: "CNH", OriginalFilename: "cnh.pdf",
	}, strings.NewReader("scan"))
	assert.ErrorIs(t, err, ErrInstructorNotFound)

	assert.Empty(t, files.files)
	assert.Empty(t, s.documents)
}

func TestDeleteDocumentRemovesRecordAndFile(t *testing.T) {
	s, uc, files, mock := newDocumentFixture(t)
	_, profile := s.addInstructor(entity.ApprovalApproved)
	_, err := files.Save("instructor_documents/cnh.pdf", []byte("scan"))
	require.NoError(t, err)
	_, err = files.Save("instructor_documents/cert.pdf", []byte("scan"))
	require.NoError(t, err)
	document := s.addDocument(profile.ID, "instructor_documents/cnh.pdf")
	s.addDocument(profile.ID, "instructor_documents/cert.pdf")

	mock.ExpectBegin()
	mock.ExpectCommit()
	require.NoError(t, uc.DeleteDocument(context.Background(), document.ID))

	assert.NotContains(t, files.files, "instructor_documents/cnh.pdf")
	assert.Contains(t, files.files, "instructor_documents/cert.pdf")
	remaining, err := uc.ListDocuments(context.Background(), profile.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "instructor_documents/cert.pdf", remaining[0].FilePath)
	assert.Equal(t, []string{entity.AuditActionDocumentDelete}, s.auditActions())

	mock.ExpectBegin()
	mock.ExpectRollback()
	assert.ErrorIs(t, uc.DeleteDocument(context.Background(), document.ID), ErrDocumentNotFound)
}

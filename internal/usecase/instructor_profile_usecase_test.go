package usecase

import (
	"context"
	"testing"
	"time"

	"autodominio-api/internal/delivery/dto"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProfileFixture(t *testing.T) (*store, InstructorProfileUsecase, func()) {
	t.Helper()
	s := newStore()
	db, mock := newMockDB(t)
	log := newTestLogger()
	audit := service.NewAuditService(log, fakeAuditRepo{s})

	uc := NewInstructorProfileUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, nil, audit, nil)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return s, uc, func() {
		mock.ExpectBegin()
		mock.ExpectCommit()
	}
}

func profileRequest(userID uuid.UUID, credential string) *dto.CreateInstructorProfileRequest {
	return &dto.CreateInstructorProfileRequest{
		UserID:           userID,
		CredentialNumber: credential,
		HourlyRate:       decimal.NewFromInt(90),
		Transmission:     string(entity.TransmissionAutomatic),
		City:             "Porto Alegre",
	}
}

func TestCreateProfileStartsPendingAndAudits(t *testing.T) {
	s, uc, expectCommit := newProfileFixture(t)
	user := s.addUser(entity.RoleInstructor)
	expectCommit()

	profile, err := uc.CreateProfile(context.Background(), profileRequest(user.ID, " CR-1234 "))

	require.NoError(t, err)
	assert.Equal(t, string(entity.ApprovalPending), profile.ApprovalStatus)
	assert.Equal(t, "CR-1234", profile.CredentialNumber)
	assert.Nil(t, profile.ApprovalDate)
	assert.Equal(t, []string{entity.AuditActionProfileCreate}, s.auditActions())
}

func TestCreateProfileRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *store) *dto.CreateInstructorProfileRequest
		want  error
	}{
		{
			name: "unknown user",
			setup: func(*store) *dto.CreateInstructorProfileRequest {
				return profileRequest(uuid.New(), "CR-1")
			},
			want: ErrUserNotFound,
		},
		{
			name: "student cannot own a profile",
			setup: func(s *store) *dto.CreateInstructorProfileRequest {
				return profileRequest(s.addUser(entity.RoleStudent).ID, "CR-1")
			},
			want: ErrInvalidRole,
		},
		{
			name: "one profile per user",
			setup: func(s *store) *dto.CreateInstructorProfileRequest {
				user, _ := s.addInstructor(entity.ApprovalPending)
				return profileRequest(user.ID, "CR-NEW")
			},
			want: ErrProfileAlreadyExists,
		},
		{
			name: "credential taken",
			setup: func(s *store) *dto.CreateInstructorProfileRequest {
				_, existing := s.addInstructor(entity.ApprovalApproved)
				return profileRequest(s.addUser(entity.RoleInstructor).ID, existing.CredentialNumber)
			},
			want: ErrCredentialAlreadyExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			db, mock := newMockDB(t)
			log := newTestLogger()
			uc := NewInstructorProfileUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, nil, service.NewAuditService(log, fakeAuditRepo{s}), nil)
			req := tt.setup(s)
			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.CreateProfile(context.Background(), req)

			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, s.auditActions())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestListProfilesRejectsUnknownApprovalStatus(t *testing.T) {
	_, uc, _ := newProfileFixture(t)

	_, err := uc.ListProfiles(context.Background(), &entity.InstructorFilter{ApprovalStatus: "ARCHIVED"})

	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestGetProfileByUser(t *testing.T) {
	s, uc, _ := newProfileFixture(t)
	user, profile := s.addInstructor(entity.ApprovalApproved)

	got, err := uc.GetProfileByUserID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, got.ID)

	_, err = uc.GetProfileByUserID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrInstructorNotFound)
}

func TestUpdateProfilePartialKeepsApprovalState(t *testing.T) {
	s, uc, expectCommit := newProfileFixture(t)
	_, profile := s.addInstructor(entity.ApprovalUnderReview)
	approvedAt := time.Date(2030, time.March, 3, 10, 0, 0, 0, time.UTC)
	s.beforeWrite = func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.profiles[profile.ID].ApprovalStatus = entity.ApprovalApproved
		s.profiles[profile.ID].ApprovalDate = &approvedAt
	}
	expectCommit()

	resp, err := uc.UpdateProfile(context.Background(), profile.ID, &dto.UpdateInstructorProfileRequest{Bio: ptr("Patient with nervous drivers")})

	require.NoError(t, err)
	require.NotNil(t, resp.Bio)
	assert.Equal(t, "Patient with nervous drivers", *resp.Bio)
	assert.Equal(t, "Curitiba", resp.City)
	assert.Equal(t, profile.CredentialNumber, resp.CredentialNumber)
	assert.Equal(t, string(entity.ApprovalApproved), resp.ApprovalStatus)
	require.NotNil(t, resp.ApprovalDate)
	assert.Equal(t, approvedAt, *resp.ApprovalDate)
	assert.Equal(t, entity.ApprovalApproved, s.profiles[profile.ID].ApprovalStatus)
}

func TestUpdateProfileCredential(t *testing.T) {
	s, uc, expectCommit := newProfileFixture(t)
	_, profile := s.addInstructor(entity.ApprovalApproved)
	expectCommit()

	resp, err := uc.UpdateProfile(context.Background(), profile.ID, &dto.UpdateInstructorProfileRequest{
		CredentialNumber: ptr(" CR-9000 "),
		HourlyRate:       ptr(decimal.NewFromInt(120)),
	})

	require.NoError(t, err)
	assert.Equal(t, "CR-9000", resp.CredentialNumber)
	assert.True(t, decimal.NewFromInt(120).Equal(resp.HourlyRate))
	assert.Equal(t, "CR-9000", s.profiles[profile.ID].CredentialNumber)
}

func TestUpdateProfileRejections(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *store) (uuid.UUID, *dto.UpdateInstructorProfileRequest)
		want  error
	}{
		{
			name: "unknown profile",
			setup: func(*store) (uuid.UUID, *dto.UpdateInstructorProfileRequest) {
				return uuid.New(), &dto.UpdateInstructorProfileRequest{City: ptr("Natal")}
			},
			want: ErrInstructorNotFound,
		},
		{
			name: "credential owned by another instructor",
			setup: func(s *store) (uuid.UUID, *dto.UpdateInstructorProfileRequest) {
				_, other := s.addInstructor(entity.ApprovalApproved)
				_, profile := s.addInstructor(entity.ApprovalPending)
				return profile.ID, &dto.UpdateInstructorProfileRequest{CredentialNumber: ptr(other.CredentialNumber)}
			},
			want: ErrCredentialAlreadyExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore()
			db, mock := newMockDB(t)
			log := newTestLogger()
			uc := NewInstructorProfileUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, nil, service.NewAuditService(log, fakeAuditRepo{s}), nil)
			id, req := tt.setup(s)
			mock.ExpectBegin()
			mock.ExpectRollback()

			_, err := uc.UpdateProfile(context.Background(), id, req)

			assert.ErrorIs(t, err, tt.want)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteProfileRemovesDocumentFiles(t *testing.T) {
	s := newStore()
	db, mock := newMockDB(t)
	log := newTestLogger()
	files := newMemoryStorage()
	uc := NewInstructorProfileUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, fakeDocumentRepo{s}, service.NewAuditService(log, fakeAuditRepo{s}), files)

	_, profile := s.addInstructor(entity.ApprovalApproved)
	_, other := s.addInstructor(entity.ApprovalApproved)
	for _, path := range []string{"docs/cnh.pdf", "docs/cert.pdf"} {
		_, err := files.Save(path, []byte("scan"))
		require.NoError(t, err)
		s.addDocument(profile.ID, path)
	}
	_, err := files.Save("docs/other.pdf", []byte("scan"))
	require.NoError(t, err)
	s.addDocument(other.ID, "docs/other.pdf")

	mock.ExpectBegin()
	mock.ExpectCommit()

	require.NoError(t, uc.DeleteProfile(context.Background(), profile.ID))

	assert.Equal(t, map[string][]byte{"docs/other.pdf": []byte("scan")}, files.files)
	assert.NotContains(t, s.profiles, profile.ID)
	assert.Equal(t, []string{entity.AuditActionProfileDelete}, s.auditActions())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProfilesReportsMatchingTotal(t *testing.T) {
	s, uc, _ := newProfileFixture(t)
	for i := 0; i < 3; i++ {
		s.addInstructor(entity.ApprovalApproved)
	}
	s.addInstructor(entity.ApprovalPending)

	list, err := uc.ListProfiles(context.Background(), &entity.InstructorFilter{
		ApprovalStatus: entity.ApprovalApproved,
		Page:           entity.Page{Limit: 1},
	})

	require.NoError(t, err)
	assert.Len(t, list.Instructors, 1)
	assert.Equal(t, int64(3), list.Total)
}

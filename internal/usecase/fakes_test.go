package usecase

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// store backs every fake repository. Writes are visible immediately, so tests
// use sqlmock only to observe transaction boundaries.
type store struct {
	mu           sync.Mutex
	users        map[uuid.UUID]*entity.User
	profiles     map[uuid.UUID]*entity.InstructorProfile
	windows      []entity.Availability
	timeOff      []entity.TimeOff
	appointments map[uuid.UUID]*entity.Appointment
	reviews      map[uuid.UUID]*entity.Review
	documents    map[uuid.UUID]*entity.Document
	audit        []entity.AuditLog

	beforeOccupying func()
	// beforeWrite runs between a usecase's read and its write, standing in for a concurrent request.
	beforeWrite func()
	lockErrs    []error
	createErrs  []error
}

func newStore() *store {
	return &store{
		users:        map[uuid.UUID]*entity.User{},
		profiles:     map[uuid.UUID]*entity.InstructorProfile{},
		appointments: map[uuid.UUID]*entity.Appointment{},
		reviews:      map[uuid.UUID]*entity.Review{},
		documents:    map[uuid.UUID]*entity.Document{},
	}
}

func (s *store) runBeforeWrite() {
	if s.beforeWrite != nil {
		hook := s.beforeWrite
		s.beforeWrite = nil
		hook()
	}
}

func (s *store) addDocument(profileID uuid.UUID, path string) *entity.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	document := &entity.Document{ID: uuid.New(), InstructorID: profileID, DocumentType: entity.DocumentTypes()[0], FilePath: path}
	s.documents[document.ID] = document
	return document
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func ptr[T any](v T) *T { return &v }

func datatypesTime(hour int) datatypes.Time {
	return datatypes.NewTime(hour, 0, 0, 0)
}

func (s *store) addUser(role entity.Role) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := &entity.User{ID: uuid.New(), FullName: string(role) + " user", Email: uuid.NewString() + "@example.com", Role: role}
	s.users[user.ID] = user
	return user
}

func (s *store) addInstructor(status entity.ApprovalStatus) (*entity.User, *entity.InstructorProfile) {
	user := s.addUser(entity.RoleInstructor)
	s.mu.Lock()
	defer s.mu.Unlock()
	profile := &entity.InstructorProfile{
		ID:               uuid.New(),
		UserID:           user.ID,
		CredentialNumber: uuid.NewString()[:8],
		Transmission:     entity.TransmissionManual,
		City:             "Curitiba",
		ApprovalStatus:   status,
	}
	s.profiles[profile.ID] = profile
	return user, profile
}

func (s *store) addWindow(profileID uuid.UUID, day time.Weekday, startHour, endHour int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windows = append(s.windows, entity.Availability{
		ID:           uuid.New(),
		InstructorID: profileID,
		DayOfWeek:    int(day),
		StartTime:    datatypesTime(startHour),
		EndTime:      datatypesTime(endHour),
		IsActive:     true,
	})
}

func (s *store) addTimeOff(profileID uuid.UUID, date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, _ := parseDate(date.Format("2006-01-02"))
	s.timeOff = append(s.timeOff, entity.TimeOff{ID: uuid.New(), InstructorID: profileID, Date: d})
}

func (s *store) addAppointment(a entity.Appointment) *entity.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	s.appointments[a.ID] = &a
	return &a
}

func (s *store) countAppointments() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.appointments)
}

func popErr(queue *[]error) error {
	if len(*queue) == 0 {
		return nil
	}
	err := (*queue)[0]
	*queue = (*queue)[1:]
	return err
}

// users

type fakeUserRepo struct{ *store }

func (r fakeUserRepo) Create(_ context.Context, _ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r fakeUserRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, nil
}

func (r fakeUserRepo) FindByEmail(_ context.Context, _ *gorm.DB, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeUserRepo) FindAll(_ context.Context, _ *gorm.DB, page entity.Page) ([]entity.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.User
	for _, user := range r.users {
		out = append(out, *user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return paginate(out, page), int64(len(out)), nil
}

func paginate[T any](rows []T, page entity.Page) []T {
	page = page.Normalize()
	if page.Skip >= len(rows) {
		return nil
	}
	end := page.Skip + page.Limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[page.Skip:end]
}

func (r fakeUserRepo) Update(_ context.Context, _ *gorm.DB, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r fakeUserRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return 0, nil
	}
	delete(r.users, id)
	return 1, nil
}

// instructor profiles

type fakeProfileRepo struct{ *store }

func (r fakeProfileRepo) Create(_ context.Context, _ *gorm.DB, profile *entity.InstructorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	copied := *profile
	r.profiles[profile.ID] = &copied
	return nil
}

func (r fakeProfileRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.InstructorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if profile, ok := r.profiles[id]; ok {
		copied := *profile
		return &copied, nil
	}
	return nil, nil
}

func (r fakeProfileRepo) FindByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byUser(userID), nil
}

func (r fakeProfileRepo) byUser(userID uuid.UUID) *entity.InstructorProfile {
	for _, profile := range r.profiles {
		if profile.UserID == userID {
			copied := *profile
			return &copied
		}
	}
	return nil
}

func (r fakeProfileRepo) FindByCredentialNumber(_ context.Context, _ *gorm.DB, credential string) (*entity.InstructorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, profile := range r.profiles {
		if profile.CredentialNumber == credential {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeProfileRepo) FindAll(_ context.Context, _ *gorm.DB, filter *entity.InstructorFilter) ([]entity.InstructorProfile, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.InstructorProfile
	for _, profile := range r.profiles {
		if filter.ApprovalStatus != "" && profile.ApprovalStatus != filter.ApprovalStatus {
			continue
		}
		out = append(out, *profile)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CredentialNumber < out[j].CredentialNumber })
	return paginate(out, filter.Page), int64(len(out)), nil
}

func (r fakeProfileRepo) LockByUserID(_ context.Context, _ *gorm.DB, userID uuid.UUID) (*entity.InstructorProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := popErr(&r.lockErrs); err != nil {
		return nil, err
	}
	return r.byUser(userID), nil
}

func (r fakeProfileRepo) CountByApprovalStatus(_ context.Context, _ *gorm.DB) (map[entity.ApprovalStatus]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[entity.ApprovalStatus]int64{}
	for _, profile := range r.profiles {
		counts[profile.ApprovalStatus]++
	}
	return counts, nil
}

func (r fakeProfileRepo) UpdateDetails(_ context.Context, _ *gorm.DB, profile *entity.InstructorProfile) (int64, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[profile.ID]
	if !ok {
		return 0, nil
	}
	stored.Bio = profile.Bio
	stored.CredentialNumber = profile.CredentialNumber
	stored.HourlyRate = profile.HourlyRate
	stored.CarModel = profile.CarModel
	stored.Transmission = profile.Transmission
	stored.City = profile.City
	return 1, nil
}

func (r fakeProfileRepo) UpdateApproval(_ context.Context, _ *gorm.DB, profile *entity.InstructorProfile, from entity.ApprovalStatus) (int64, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.profiles[profile.ID]
	if !ok || stored.ApprovalStatus != from {
		return 0, nil
	}
	stored.ApprovalStatus = profile.ApprovalStatus
	stored.ApprovalDate = profile.ApprovalDate
	stored.RejectionReason = profile.RejectionReason
	return 1, nil
}

func (r fakeProfileRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[id]; !ok {
		return 0, nil
	}
	delete(r.profiles, id)
	return 1, nil
}

// availability

type fakeAvailabilityRepo struct{ *store }

func (r fakeAvailabilityRepo) Create(_ context.Context, _ *gorm.DB, window *entity.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	window.ID = uuid.New()
	r.windows = append(r.windows, *window)
	return nil
}

func (r fakeAvailabilityRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Availability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.windows {
		if r.windows[i].ID == id {
			copied := r.windows[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeAvailabilityRepo) FindByInstructorID(_ context.Context, _ *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error) {
	return r.find(instructorID, false), nil
}

func (r fakeAvailabilityRepo) FindActiveByInstructorID(_ context.Context, _ *gorm.DB, instructorID uuid.UUID) ([]entity.Availability, error) {
	return r.find(instructorID, true), nil
}

func (r fakeAvailabilityRepo) find(instructorID uuid.UUID, activeOnly bool) []entity.Availability {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Availability
	for _, window := range r.windows {
		if window.InstructorID == instructorID && (!activeOnly || window.IsActive) {
			out = append(out, window)
		}
	}
	return out
}

func (r fakeAvailabilityRepo) Update(_ context.Context, _ *gorm.DB, window *entity.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.windows {
		if r.windows[i].ID == window.ID {
			r.windows[i] = *window
		}
	}
	return nil
}

func (r fakeAvailabilityRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.windows {
		if r.windows[i].ID == id {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// time off

type fakeTimeOffRepo struct{ *store }

func (r fakeTimeOffRepo) Create(_ context.Context, _ *gorm.DB, timeOff *entity.TimeOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	timeOff.ID = uuid.New()
	r.timeOff = append(r.timeOff, *timeOff)
	return nil
}

func (r fakeTimeOffRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.TimeOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.timeOff {
		if r.timeOff[i].ID == id {
			copied := r.timeOff[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeTimeOffRepo) FindByInstructorID(_ context.Context, _ *gorm.DB, instructorID uuid.UUID) ([]entity.TimeOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.TimeOff
	for _, entry := range r.timeOff {
		if entry.InstructorID == instructorID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r fakeTimeOffRepo) FindInRange(_ context.Context, _ *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.TimeOff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	first, last := from.Format("2006-01-02"), to.Format("2006-01-02")
	var out []entity.TimeOff
	for _, entry := range r.timeOff {
		day := time.Time(entry.Date).Format("2006-01-02")
		if entry.InstructorID == instructorID && day >= first && day <= last {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r fakeTimeOffRepo) Update(_ context.Context, _ *gorm.DB, timeOff *entity.TimeOff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.timeOff {
		if r.timeOff[i].ID == timeOff.ID {
			r.timeOff[i] = *timeOff
		}
	}
	return nil
}

func (r fakeTimeOffRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.timeOff {
		if r.timeOff[i].ID == id {
			r.timeOff = append(r.timeOff[:i], r.timeOff[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// appointments

type fakeAppointmentRepo struct{ *store }

func (r fakeAppointmentRepo) Create(_ context.Context, _ *gorm.DB, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := popErr(&r.createErrs); err != nil {
		return err
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	copied := *appointment
	r.appointments[appointment.ID] = &copied
	return nil
}

func (r fakeAppointmentRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appointment, ok := r.appointments[id]; ok {
		copied := *appointment
		return &copied, nil
	}
	return nil, nil
}

func (r fakeAppointmentRepo) FindAll(_ context.Context, _ *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, appointment := range r.appointments {
		if filter.Status != "" && appointment.Status != filter.Status {
			continue
		}
		if filter.InstructorID != nil && appointment.InstructorID != *filter.InstructorID {
			continue
		}
		if filter.StudentID != nil && appointment.StudentID != *filter.StudentID {
			continue
		}
		out = append(out, *appointment)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return paginate(out, filter.Page), int64(len(out)), nil
}

func (r fakeAppointmentRepo) overlapping(instructorID uuid.UUID, from, to time.Time) []entity.Appointment {
	var out []entity.Appointment
	for _, appointment := range r.appointments {
		if appointment.InstructorID == instructorID && appointment.Occupies() &&
			appointment.StartDate.Before(to) && appointment.EndDate.After(from) {
			out = append(out, *appointment)
		}
	}
	return out
}

func (r fakeAppointmentRepo) FindOccupying(_ context.Context, _ *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	if r.beforeOccupying != nil {
		r.beforeOccupying()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.overlapping(instructorID, from, to), nil
}

func (r fakeAppointmentRepo) CountOverlapping(_ context.Context, _ *gorm.DB, instructorID uuid.UUID, from, to time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.overlapping(instructorID, from, to))), nil
}

func (r fakeAppointmentRepo) UpdateDetails(_ context.Context, _ *gorm.DB, id uuid.UUID, locationPickup, notes *string) (int64, error) {
	r.runBeforeWrite()
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.appointments[id]
	if !ok {
		return 0, nil
	}
	stored.LocationPickup = locationPickup
	stored.Notes = notes
	return 1, nil
}

func (r fakeAppointmentRepo) UpdateStatus(_ context.Context, _ *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok || appointment.Status != from {
		return 0, nil
	}
	appointment.Status = to
	return 1, nil
}

func (r fakeAppointmentRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.appointments, id)
	return 1, nil
}

// reviews

type fakeReviewRepo struct{ *store }

func (r fakeReviewRepo) Create(_ context.Context, _ *gorm.DB, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	review.ID = uuid.New()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r fakeReviewRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review, ok := r.reviews[id]; ok {
		copied := *review
		return &copied, nil
	}
	return nil, nil
}

func (r fakeReviewRepo) FindByAppointmentID(_ context.Context, _ *gorm.DB, appointmentID uuid.UUID) (*entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, review := range r.reviews {
		if review.AppointmentID == appointmentID {
			copied := *review
			return &copied, nil
		}
	}
	return nil, nil
}

func (r fakeReviewRepo) FindByInstructorID(_ context.Context, _ *gorm.DB, instructorID uuid.UUID, _ entity.Page) ([]entity.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Review
	for _, review := range r.reviews {
		if review.InstructorID == instructorID {
			out = append(out, *review)
		}
	}
	return out, nil
}

func (r fakeReviewRepo) RatingStats(_ context.Context, _ *gorm.DB, instructorID uuid.UUID) (*entity.RatingStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.RatingStats{RatingDistribution: map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}}
	var sum int
	for _, review := range r.reviews {
		if review.InstructorID == instructorID {
			stats.TotalReviews++
			stats.RatingDistribution[review.Rating]++
			sum += review.Rating
		}
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalReviews)
	}
	return stats, nil
}

func (r fakeReviewRepo) Update(_ context.Context, _ *gorm.DB, review *entity.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *review
	r.reviews[review.ID] = &copied
	return nil
}

func (r fakeReviewRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reviews[id]; !ok {
		return 0, nil
	}
	delete(r.reviews, id)
	return 1, nil
}

// documents

type fakeDocumentRepo struct{ *store }

func (r fakeDocumentRepo) Create(_ context.Context, _ *gorm.DB, document *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	document.ID = uuid.New()
	copied := *document
	r.documents[document.ID] = &copied
	return nil
}

func (r fakeDocumentRepo) FindByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if document, ok := r.documents[id]; ok {
		copied := *document
		return &copied, nil
	}
	return nil, nil
}

func (r fakeDocumentRepo) FindByInstructorID(_ context.Context, _ *gorm.DB, instructorID uuid.UUID) ([]entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Document
	for _, document := range r.documents {
		if document.InstructorID == instructorID {
			out = append(out, *document)
		}
	}
	return out, nil
}

func (r fakeDocumentRepo) Delete(_ context.Context, _ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.documents[id]; !ok {
		return 0, nil
	}
	delete(r.documents, id)
	return 1, nil
}

// audit

type fakeAuditRepo struct{ *store }

func (r fakeAuditRepo) Create(_ context.Context, _ *gorm.DB, log *entity.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = int64(len(r.audit) + 1)
	r.audit = append(r.audit, *log)
	return nil
}

func (r fakeAuditRepo) FindAll(_ context.Context, _ *gorm.DB, _ *entity.AuditLogFilter) ([]entity.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.AuditLog(nil), r.audit...), int64(len(r.audit)), nil
}

func (r fakeAuditRepo) FindByID(_ context.Context, _ *gorm.DB, id int64) (*entity.AuditLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.audit {
		if r.audit[i].ID == id {
			copied := r.audit[i]
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *store) auditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, entry := range s.audit {
		out = append(out, entry.Action)
	}
	return out
}

// harness wires the booking usecases over one store.
type harness struct {
	store        *store
	db           *gorm.DB
	mock         sqlmock.Sqlmock
	appointments AppointmentUsecase
	availability AvailabilityUsecase
	approvals    *approvalUsecase
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	s := newStore()
	db, mock := newMockDB(t)
	log := newTestLogger()

	locks := service.NewBookingLockService(nil, log, 10*time.Second, 5*time.Second)
	t.Cleanup(locks.Stop)

	audit := service.NewAuditService(log, fakeAuditRepo{s})
	resolver := NewAvailabilityResolver(fakeAvailabilityRepo{s}, fakeTimeOffRepo{s}, fakeAppointmentRepo{s}, time.UTC, nil)

	return &harness{
		store:        s,
		db:           db,
		mock:         mock,
		appointments: NewAppointmentUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, resolver, locks, audit, nil),
		availability: NewAvailabilityUsecase(db, log, fakeUserRepo{s}, fakeProfileRepo{s}, resolver),
		approvals:    NewApprovalUsecase(db, log, fakeProfileRepo{s}, audit, nil).(*approvalUsecase),
	}
}

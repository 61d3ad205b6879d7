package repository

import (
	"context"
	"errors"
	"time"

	"autodominio-api/internal/domain/entity"
	domainRepo "autodominio-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	return db.WithContext(ctx).Omit("Student", "Instructor").Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, int64, error) {
	page := entity.Page{}
	if filter != nil {
		page = filter.Page
	}
	page = page.Normalize()

	var total int64
	if err := db.WithContext(ctx).Model(&entity.Appointment{}).Scopes(filterAppointments(filter)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Scopes(filterAppointments(filter)).
		Order("start_date ASC").
		Offset(page.Skip).Limit(page.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func filterAppointments(filter *entity.AppointmentFilter) func(*gorm.DB) *gorm.DB {
	return func(query *gorm.DB) *gorm.DB {
		if filter == nil {
			return query
		}
		if filter.StudentID != nil {
			query = query.Where("student_id = ?", *filter.StudentID)
		}
		if filter.InstructorID != nil {
			query = query.Where("instructor_id = ?", *filter.InstructorID)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
		return query
	}
}

func (r *appointmentRepository) occupying(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) *gorm.DB {
	return db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("instructor_id = ? AND status IN ? AND start_date < ? AND end_date > ?",
			instructorID, entity.OccupyingStatuses(), to, from)
}

func (r *appointmentRepository) FindOccupying(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := r.occupying(ctx, db, instructorID, from, to).
		Order("start_date ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) CountOverlapping(ctx context.Context, db *gorm.DB, instructorID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.occupying(ctx, db, instructorID, from, to).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) UpdateDetails(ctx context.Context, db *gorm.DB, id uuid.UUID, locationPickup, notes *string) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"location_pickup": locationPickup,
			"notes":           notes,
		})
	return result.RowsAffected, result.Error
}

// UpdateStatus is a compare-and-set on status, so concurrent transitions cannot both apply.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).
		Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Appointment{})
	return result.RowsAffected, result.Error
}

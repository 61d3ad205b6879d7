package usecase

import (
	"context"
	"time"

	"autodominio-api/internal/domain/availability"
	"autodominio-api/internal/domain/entity"
	"autodominio-api/internal/domain/repository"
	"autodominio-api/internal/service"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// AvailabilityResolver loads an instructor's schedule and hands it to availability.Resolve.
// Shared by the availability and appointment usecases so both see the same free time.
type AvailabilityResolver struct {
	availabilityRepo repository.AvailabilityRepository
	timeOffRepo      repository.TimeOffRepository
	appointmentRepo  repository.AppointmentRepository
	location         *time.Location
	metrics          *service.MetricsService
}

func NewAvailabilityResolver(
	availabilityRepo repository.AvailabilityRepository,
	timeOffRepo repository.TimeOffRepository,
	appointmentRepo repository.AppointmentRepository,
	location *time.Location,
	metrics *service.MetricsService,
) *AvailabilityResolver {
	if location == nil {
		location = time.UTC
	}
	return &AvailabilityResolver{
		availabilityRepo: availabilityRepo,
		timeOffRepo:      timeOffRepo,
		appointmentRepo:  appointmentRepo,
		location:         location,
		metrics:          metrics,
	}
}

// resolve runs the three loads concurrently, so db must not be a transaction.
func (r *AvailabilityResolver) resolve(ctx context.Context, db *gorm.DB, profile *entity.InstructorProfile, from, to time.Time) ([]availability.Interval, error) {
	if !to.After(from) {
		return []availability.Interval{}, nil
	}
	started := time.Now()
	defer func() { r.metrics.ObserveResolve(time.Since(started)) }()

	var (
		windows  []entity.Availability
		timeOff  []entity.TimeOff
		occupied []entity.Appointment
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		windows, err = r.availabilityRepo.FindActiveByInstructorID(gctx, db, profile.ID)
		return err
	})
	g.Go(func() error {
		var err error
		timeOff, err = r.timeOffRepo.FindInRange(gctx, db, profile.ID, from.In(r.location), to.In(r.location))
		return err
	})
	g.Go(func() error {
		var err error
		occupied, err = r.appointmentRepo.FindOccupying(gctx, db, profile.UserID, from, to)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in := availability.Input{Location: r.location}
	for i := range windows {
		start, end := windows[i].Offsets()
		in.Windows = append(in.Windows, availability.Window{
			Weekday: windows[i].Weekday(),
			Start:   start,
			End:     end,
		})
	}
	for i := range timeOff {
		y, m, d := timeOff[i].Day()
		in.TimeOff = append(in.TimeOff, availability.Date{Year: y, Month: m, Day: d})
	}
	for i := range occupied {
		if !occupied[i].Occupies() {
			continue
		}
		in.Occupied = append(in.Occupied, availability.Interval{Start: occupied[i].StartDate, End: occupied[i].EndDate})
	}

	free := availability.Resolve(in, from, to)
	if free == nil {
		free = []availability.Interval{}
	}
	return free, nil
}

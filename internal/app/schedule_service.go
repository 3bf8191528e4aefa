package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/manish-kag/railway-reservation/internal/catalog"
	"github.com/manish-kag/railway-reservation/internal/clock"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

type ScheduleRepository interface {
	CreateSchedule(ctx context.Context, s domain.Schedule) error
	ListOpen(ctx context.Context, from time.Time) ([]domain.Schedule, error)
}

type ScheduleService struct {
	repo    ScheduleRepository
	catalog catalog.Catalog
	clock   clock.Clock
}

func NewScheduleService(repo ScheduleRepository, cat catalog.Catalog, clk clock.Clock) *ScheduleService {
	return &ScheduleService{
		repo:    repo,
		catalog: cat,
		clock:   clk,
	}
}

type CreateScheduleInput struct {
	TrainRef      string
	DepartureDate time.Time
}

// Create opens a schedule for one train on one date, seeding the seat pools
// from the catalog's capacity snapshot. At most one schedule may exist per
// (train, date); the store's uniqueness constraint enforces it.
func (s *ScheduleService) Create(ctx context.Context, in CreateScheduleInput) (domain.Schedule, error) {
	if in.TrainRef == "" {
		return domain.Schedule{}, domain.ErrTrainNotFound
	}
	date := clock.DateOf(in.DepartureDate)
	if in.DepartureDate.IsZero() || date.Before(s.clock.Today()) {
		return domain.Schedule{}, domain.ErrInvalidDate
	}

	train, err := s.catalog.TrainCapacities(ctx, in.TrainRef)
	if err != nil {
		return domain.Schedule{}, err
	}

	sched := domain.Schedule{
		ID:               uuid.NewString(),
		TrainRef:         train.Ref,
		DepartureDate:    date,
		ACAvailable:      train.ACCapacity,
		SleeperAvailable: train.SleeperCapacity,
		ACCapacity:       train.ACCapacity,
		SleeperCapacity:  train.SleeperCapacity,
		ACFare:           train.ACFare,
		SleeperFare:      train.SleeperFare,
		CreatedAt:        s.clock.Now(),
	}

	if err := s.repo.CreateSchedule(ctx, sched); err != nil {
		return domain.Schedule{}, err
	}
	return sched, nil
}

// ListOpen returns schedules still accepting bookings (departing today or later).
func (s *ScheduleService) ListOpen(ctx context.Context) ([]domain.Schedule, error) {
	return s.repo.ListOpen(ctx, s.clock.Today())
}

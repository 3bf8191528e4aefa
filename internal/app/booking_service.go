package app

import (
	"context"
	"errors"

	"github.com/manish-kag/railway-reservation/internal/clock"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

type BookingRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetScheduleForUpdate(ctx context.Context, scheduleID string) (domain.Schedule, error)
	GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error)
	DecrementAvailability(ctx context.Context, scheduleID string, class domain.SeatClass, seats int) (bool, error)
	CreateBooking(ctx context.Context, booking domain.Booking) error
	ListBookingsByOwner(ctx context.Context, owner string) ([]domain.Booking, error)
}

type TicketIssuer interface {
	Issue() (string, error)
}

// AvailabilityCache is the optional display-side cache. A nil cache is valid;
// the authoritative counters always live in the store.
type AvailabilityCache interface {
	Get(ctx context.Context, scheduleID string) (*domain.Availability, error)
	Set(ctx context.Context, av domain.Availability) error
	Invalidate(ctx context.Context, scheduleID string) error
}

// maxTicketRetries bounds re-issuing on a ticket-id primary key collision
// before the whole booking is reported as failed.
const maxTicketRetries = 5

type BookingService struct {
	repo    BookingRepository
	tickets TicketIssuer
	clock   clock.Clock
	cache   AvailabilityCache
}

func NewBookingService(repo BookingRepository, tickets TicketIssuer, clk clock.Clock, opts ...BookingServiceOption) *BookingService {
	svc := &BookingService{
		repo:    repo,
		tickets: tickets,
		clock:   clk,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type BookingServiceOption func(*BookingService)

// WithAvailabilityCache adds a cache for availability display reads.
func WithAvailabilityCache(cache AvailabilityCache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

type BookInput struct {
	Owner      string
	ScheduleID string
	SeatClass  domain.SeatClass
	SeatCount  int
}

// Book reserves seats as one atomic unit: row-lock the schedule, check the
// departure cutoff and availability, apply the conditional decrement, and
// insert the booking. Either the decrement and the booking both commit or
// neither does. A ticket-id collision rolls the whole unit back and retries
// with a fresh id.
func (s *BookingService) Book(ctx context.Context, in BookInput) (domain.Booking, error) {
	if in.Owner == "" {
		return domain.Booking{}, domain.ErrOwnerRequired
	}
	if in.ScheduleID == "" {
		return domain.Booking{}, domain.ErrInvalidID
	}
	if !in.SeatClass.Valid() {
		return domain.Booking{}, domain.ErrInvalidSeatClass
	}
	if in.SeatCount <= 0 {
		return domain.Booking{}, domain.ErrInvalidSeatCount
	}

	now := s.clock.Now()
	today := s.clock.Today()

	for attempt := 0; attempt < maxTicketRetries; attempt++ {
		ticketID, err := s.tickets.Issue()
		if err != nil {
			return domain.Booking{}, err
		}

		var booking domain.Booking
		err = s.repo.WithTx(ctx, func(txCtx context.Context) error {
			sched, err := s.repo.GetScheduleForUpdate(txCtx, in.ScheduleID)
			if err != nil {
				return err
			}
			if sched.DepartureDate.Before(today) {
				return domain.ErrScheduleInPast
			}
			if in.SeatCount > sched.AvailableFor(in.SeatClass) {
				return domain.ErrInsufficientSeats
			}

			ok, err := s.repo.DecrementAvailability(txCtx, in.ScheduleID, in.SeatClass, in.SeatCount)
			if err != nil {
				return err
			}
			if !ok {
				return domain.ErrInsufficientSeats
			}

			fare, err := domain.ComputeFare(in.SeatClass, in.SeatCount, sched.ACFare, sched.SleeperFare)
			if err != nil {
				return err
			}

			booking = domain.Booking{
				TicketID:   ticketID,
				Owner:      in.Owner,
				ScheduleID: in.ScheduleID,
				SeatClass:  in.SeatClass,
				SeatCount:  in.SeatCount,
				TotalFare:  fare,
				CreatedAt:  now,
			}
			return s.repo.CreateBooking(txCtx, booking)
		})
		if errors.Is(err, domain.ErrDuplicateTicket) {
			continue
		}
		if err != nil {
			return domain.Booking{}, err
		}

		s.invalidate(ctx, in.ScheduleID)
		return booking, nil
	}

	return domain.Booking{}, domain.ErrTransactionFailed
}

func (s *BookingService) ListBookings(ctx context.Context, owner string) ([]domain.Booking, error) {
	if owner == "" {
		return nil, domain.ErrOwnerRequired
	}
	return s.repo.ListBookingsByOwner(ctx, owner)
}

// PeekAvailability reports both counters for display before booking. Cache
// reads may trail the store by up to the cache TTL; admission control never
// consults them.
func (s *BookingService) PeekAvailability(ctx context.Context, scheduleID string) (domain.Availability, error) {
	if scheduleID == "" {
		return domain.Availability{}, domain.ErrInvalidID
	}

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, scheduleID); err == nil && cached != nil {
			return *cached, nil
		}
	}

	sched, err := s.repo.GetSchedule(ctx, scheduleID)
	if err != nil {
		return domain.Availability{}, err
	}

	av := domain.Availability{
		ScheduleID:       sched.ID,
		ACAvailable:      sched.ACAvailable,
		SleeperAvailable: sched.SleeperAvailable,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, av)
	}
	return av, nil
}

func (s *BookingService) invalidate(ctx context.Context, scheduleID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, scheduleID)
}

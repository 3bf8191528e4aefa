package app

import (
	"context"

	"github.com/manish-kag/railway-reservation/internal/domain"
)

type CancellationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetBookingForUpdate(ctx context.Context, ticketID, owner string) (domain.Booking, error)
	DeleteBooking(ctx context.Context, ticketID string) error
	RestoreAvailability(ctx context.Context, scheduleID string, class domain.SeatClass, seats int) error
}

type CancelService struct {
	repo  CancellationRepository
	cache AvailabilityCache
}

func NewCancelService(repo CancellationRepository, opts ...CancelServiceOption) *CancelService {
	svc := &CancelService{repo: repo}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type CancelServiceOption func(*CancelService)

func WithCancelAvailabilityCache(cache AvailabilityCache) CancelServiceOption {
	return func(s *CancelService) {
		s.cache = cache
	}
}

// Cancel removes a booking and returns its seats to the schedule as one
// atomic unit. The deletion and the restore commit together or not at all; a
// second cancel of the same ticket finds nothing and changes nothing.
func (s *CancelService) Cancel(ctx context.Context, owner, ticketID string) error {
	if owner == "" {
		return domain.ErrOwnerRequired
	}
	if ticketID == "" {
		return domain.ErrInvalidID
	}

	var scheduleID string
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		booking, err := s.repo.GetBookingForUpdate(txCtx, ticketID, owner)
		if err != nil {
			return err
		}
		if err := s.repo.DeleteBooking(txCtx, booking.TicketID); err != nil {
			return err
		}
		scheduleID = booking.ScheduleID
		return s.repo.RestoreAvailability(txCtx, booking.ScheduleID, booking.SeatClass, booking.SeatCount)
	})
	if err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, scheduleID)
	}
	return nil
}

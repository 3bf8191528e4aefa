package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/manish-kag/railway-reservation/internal/domain"
)

// fakeStore implements BookingRepository and CancellationRepository in memory.
// WithTx holds one lock for the whole unit (the fake's stand-in for the
// per-schedule row lock) and restores a snapshot on error, so aborted units
// leave no partial effect — same contract as the postgres repositories.
type fakeStore struct {
	mu        sync.Mutex
	schedules map[string]*domain.Schedule
	bookings  map[string]domain.Booking
}

func newFakeStore(schedules ...domain.Schedule) *fakeStore {
	s := &fakeStore{
		schedules: make(map[string]*domain.Schedule),
		bookings:  make(map[string]domain.Booking),
	}
	for _, sched := range schedules {
		sched := sched
		s.schedules[sched.ID] = &sched
	}
	return s
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	schedSnap := make(map[string]domain.Schedule, len(f.schedules))
	for id, sched := range f.schedules {
		schedSnap[id] = *sched
	}
	bookSnap := make(map[string]domain.Booking, len(f.bookings))
	for id, b := range f.bookings {
		bookSnap[id] = b
	}

	if err := fn(ctx); err != nil {
		f.schedules = make(map[string]*domain.Schedule, len(schedSnap))
		for id := range schedSnap {
			sched := schedSnap[id]
			f.schedules[id] = &sched
		}
		f.bookings = bookSnap
		return err
	}
	return nil
}

func (f *fakeStore) GetScheduleForUpdate(_ context.Context, scheduleID string) (domain.Schedule, error) {
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	return *sched, nil
}

func (f *fakeStore) GetSchedule(_ context.Context, scheduleID string) (domain.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return domain.Schedule{}, domain.ErrScheduleNotFound
	}
	return *sched, nil
}

func (f *fakeStore) DecrementAvailability(_ context.Context, scheduleID string, class domain.SeatClass, seats int) (bool, error) {
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return false, domain.ErrScheduleNotFound
	}
	switch class {
	case domain.SeatClassAC:
		if sched.ACAvailable < seats {
			return false, nil
		}
		sched.ACAvailable -= seats
	case domain.SeatClassSleeper:
		if sched.SleeperAvailable < seats {
			return false, nil
		}
		sched.SleeperAvailable -= seats
	default:
		return false, domain.ErrInvalidSeatClass
	}
	return true, nil
}

func (f *fakeStore) CreateBooking(_ context.Context, booking domain.Booking) error {
	if _, exists := f.bookings[booking.TicketID]; exists {
		return domain.ErrDuplicateTicket
	}
	f.bookings[booking.TicketID] = booking
	return nil
}

func (f *fakeStore) ListBookingsByOwner(_ context.Context, owner string) ([]domain.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Booking
	for _, b := range f.bookings {
		if b.Owner == owner {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) GetBookingForUpdate(_ context.Context, ticketID, owner string) (domain.Booking, error) {
	b, ok := f.bookings[ticketID]
	if !ok || b.Owner != owner {
		return domain.Booking{}, domain.ErrTicketNotFound
	}
	return b, nil
}

func (f *fakeStore) DeleteBooking(_ context.Context, ticketID string) error {
	if _, ok := f.bookings[ticketID]; !ok {
		return domain.ErrTicketNotFound
	}
	delete(f.bookings, ticketID)
	return nil
}

func (f *fakeStore) RestoreAvailability(_ context.Context, scheduleID string, class domain.SeatClass, seats int) error {
	sched, ok := f.schedules[scheduleID]
	if !ok {
		return domain.ErrScheduleNotFound
	}
	switch class {
	case domain.SeatClassAC:
		sched.ACAvailable = min(sched.ACAvailable+seats, sched.ACCapacity)
	case domain.SeatClassSleeper:
		sched.SleeperAvailable = min(sched.SleeperAvailable+seats, sched.SleeperCapacity)
	default:
		return domain.ErrInvalidSeatClass
	}
	return nil
}

// fakeIssuer hands out queued ids, then either repeats a fixed id or falls
// back to a counter.
type fakeIssuer struct {
	mu     sync.Mutex
	ids    []string
	repeat string
	next   int
	calls  int
}

func newSeqIssuer() *fakeIssuer {
	return &fakeIssuer{}
}

func (f *fakeIssuer) Issue() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(f.ids) > 0 {
		id := f.ids[0]
		f.ids = f.ids[1:]
		return id, nil
	}
	if f.repeat != "" {
		return f.repeat, nil
	}
	f.next++
	return fmt.Sprintf("TKT%06d", f.next), nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string]domain.Availability
	hits    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]domain.Availability)}
}

func (f *fakeCache) Get(_ context.Context, scheduleID string) (*domain.Availability, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	av, ok := f.entries[scheduleID]
	if !ok {
		return nil, nil
	}
	f.hits++
	return &av, nil
}

func (f *fakeCache) Set(_ context.Context, av domain.Availability) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[av.ScheduleID] = av
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, scheduleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, scheduleID)
	return nil
}

// fixedDate builds a date-only instant for schedule fixtures.
func fixedDate(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

type CancellationRepository struct {
	pool *pgxpool.Pool
}

func NewCancellationRepository(pool *pgxpool.Pool) *CancellationRepository {
	return &CancellationRepository{pool: pool}
}

func (r *CancellationRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetBookingForUpdate looks up a booking by ticket id and owner together.
// A missing ticket and a ticket owned by someone else are indistinguishable
// to the caller.
func (r *CancellationRepository) GetBookingForUpdate(ctx context.Context, ticketID, owner string) (domain.Booking, error) {
	const query = `
SELECT ticket_id, owner, schedule_id, seat_class, seat_count, total_fare, created_at
FROM bookings
WHERE ticket_id = $1 AND owner = $2
FOR UPDATE`

	var b domain.Booking
	err := r.queryRow(ctx, query, ticketID, owner).
		Scan(&b.TicketID, &b.Owner, &b.ScheduleID, &b.SeatClass, &b.SeatCount, &b.TotalFare, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Booking{}, domain.ErrTicketNotFound
		}
		return domain.Booking{}, fmt.Errorf("get booking: %w", err)
	}
	return b, nil
}

func (r *CancellationRepository) DeleteBooking(ctx context.Context, ticketID string) error {
	const stmt = `DELETE FROM bookings WHERE ticket_id = $1`

	tag, err := r.exec(ctx, stmt, ticketID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTicketNotFound
	}
	return nil
}

// RestoreAvailability returns cancelled seats to the schedule's pool. The
// LEAST clamp is a backstop: if conservation holds it never changes the
// result, and if it ever fires the counter stays within capacity.
func (r *CancellationRepository) RestoreAvailability(ctx context.Context, scheduleID string, class domain.SeatClass, seats int) error {
	availCol, capCol, err := seatColumns(class)
	if err != nil {
		return err
	}

	stmt := fmt.Sprintf(
		`UPDATE schedules SET %[1]s = LEAST(%[1]s + $1, %[2]s) WHERE id = $2`,
		availCol, capCol,
	)
	tag, err := r.exec(ctx, stmt, seats, scheduleID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("restore availability: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}

func (r *CancellationRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *CancellationRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

const scheduleColumns = `id, train_ref, departure_date, ac_available, sleeper_available,
ac_capacity, sleeper_capacity, ac_fare, sleeper_fare, created_at`

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

// GetScheduleForUpdate row-locks the schedule, serializing all booking and
// cancellation transactions against it for the remainder of the ambient tx.
func (r *BookingRepository) GetScheduleForUpdate(ctx context.Context, scheduleID string) (domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1 FOR UPDATE`
	return r.scanSchedule(r.queryRow(ctx, query, scheduleID))
}

func (r *BookingRepository) GetSchedule(ctx context.Context, scheduleID string) (domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE id = $1`
	return r.scanSchedule(r.queryRow(ctx, query, scheduleID))
}

// DecrementAvailability applies the conditional decrement. The WHERE clause
// re-validates availability at write time; zero rows affected means another
// writer got there first and the caller must treat the seats as gone.
func (r *BookingRepository) DecrementAvailability(ctx context.Context, scheduleID string, class domain.SeatClass, seats int) (bool, error) {
	availCol, _, err := seatColumns(class)
	if err != nil {
		return false, err
	}

	stmt := fmt.Sprintf(
		`UPDATE schedules SET %[1]s = %[1]s - $1 WHERE id = $2 AND %[1]s >= $1`,
		availCol,
	)
	tag, err := r.exec(ctx, stmt, seats, scheduleID)
	if err != nil {
		if isInvalidUUID(err) {
			return false, domain.ErrInvalidID
		}
		return false, fmt.Errorf("decrement availability: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) CreateBooking(ctx context.Context, booking domain.Booking) error {
	const stmt = `
INSERT INTO bookings (ticket_id, owner, schedule_id, seat_class, seat_count, total_fare, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.exec(ctx, stmt,
		booking.TicketID,
		booking.Owner,
		booking.ScheduleID,
		booking.SeatClass,
		booking.SeatCount,
		booking.TotalFare,
		booking.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTicket
		}
		if isForeignKeyViolation(err) {
			return domain.ErrScheduleNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) ListBookingsByOwner(ctx context.Context, owner string) ([]domain.Booking, error) {
	const query = `
SELECT ticket_id, owner, schedule_id, seat_class, seat_count, total_fare, created_at
FROM bookings
WHERE owner = $1
ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.TicketID, &b.Owner, &b.ScheduleID, &b.SeatClass, &b.SeatCount, &b.TotalFare, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate bookings: %w", rows.Err())
	}
	return bookings, nil
}

func (r *BookingRepository) scanSchedule(row pgx.Row) (domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(
		&s.ID, &s.TrainRef, &s.DepartureDate,
		&s.ACAvailable, &s.SleeperAvailable,
		&s.ACCapacity, &s.SleeperCapacity,
		&s.ACFare, &s.SleeperFare,
		&s.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Schedule{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Schedule{}, domain.ErrScheduleNotFound
		}
		return domain.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	return s, nil
}

func (r *BookingRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *BookingRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}

// seatColumns maps a seat class onto its counter and capacity columns. Column
// names never come from request input.
func seatColumns(class domain.SeatClass) (availCol, capCol string, err error) {
	switch class {
	case domain.SeatClassAC:
		return "ac_available", "ac_capacity", nil
	case domain.SeatClassSleeper:
		return "sleeper_available", "sleeper_capacity", nil
	default:
		return "", "", domain.ErrInvalidSeatClass
	}
}

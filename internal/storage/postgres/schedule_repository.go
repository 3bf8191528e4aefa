package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) CreateSchedule(ctx context.Context, s domain.Schedule) error {
	const stmt = `
INSERT INTO schedules (id, train_ref, departure_date, ac_available, sleeper_available,
	ac_capacity, sleeper_capacity, ac_fare, sleeper_fare, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, stmt,
		s.ID, s.TrainRef, s.DepartureDate,
		s.ACAvailable, s.SleeperAvailable,
		s.ACCapacity, s.SleeperCapacity,
		s.ACFare, s.SleeperFare,
		s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrScheduleExists
		}
		if isForeignKeyViolation(err) {
			return domain.ErrTrainNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// ListOpen returns schedules departing on or after the given date, oldest
// departure first, for the surrounding application's booking display.
func (r *ScheduleRepository) ListOpen(ctx context.Context, from time.Time) ([]domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE departure_date >= $1 ORDER BY departure_date ASC, train_ref ASC`

	rows, err := r.pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(
			&s.ID, &s.TrainRef, &s.DepartureDate,
			&s.ACAvailable, &s.SleeperAvailable,
			&s.ACCapacity, &s.SleeperCapacity,
			&s.ACFare, &s.SleeperFare,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate schedules: %w", rows.Err())
	}
	return schedules, nil
}

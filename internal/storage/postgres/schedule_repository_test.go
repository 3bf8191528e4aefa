package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/manish-kag/railway-reservation/internal/domain"
	"github.com/manish-kag/railway-reservation/internal/testutil"
)

func TestScheduleRepository(t *testing.T) {
	pool := testutil.NewTestPool(t)
	repo := NewScheduleRepository(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	newSchedule := func(trainRef string, date time.Time) domain.Schedule {
		return domain.Schedule{
			ID:               uuid.NewString(),
			TrainRef:         trainRef,
			DepartureDate:    date,
			ACAvailable:      50,
			SleeperAvailable: 200,
			ACCapacity:       50,
			SleeperCapacity:  200,
			ACFare:           1500,
			SleeperFare:      600,
			CreatedAt:        time.Now().UTC(),
		}
	}

	t.Run("CreateSchedule enforces one schedule per train per date", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertTrainRoute(t, ctx, pool, "12951", 50, 200, 1500, 600)

		date := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
		if err := repo.CreateSchedule(ctx, newSchedule("12951", date)); err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.CreateSchedule(ctx, newSchedule("12951", date)); !errors.Is(err, domain.ErrScheduleExists) {
			t.Fatalf("expected ErrScheduleExists, got %v", err)
		}
		// Same train on another date is fine.
		if err := repo.CreateSchedule(ctx, newSchedule("12951", date.AddDate(0, 0, 1))); err != nil {
			t.Fatalf("create next day: %v", err)
		}
	})

	t.Run("CreateSchedule rejects unknown train", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)

		err := repo.CreateSchedule(ctx, newSchedule("00000", time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)))
		if !errors.Is(err, domain.ErrTrainNotFound) {
			t.Fatalf("expected ErrTrainNotFound, got %v", err)
		}
	})

	t.Run("ListOpen filters departed schedules", func(t *testing.T) {
		ctx := context.Background()
		testutil.TruncateAll(t, ctx, pool)
		testutil.InsertTrainRoute(t, ctx, pool, "12951", 50, 200, 1500, 600)

		past := time.Date(2030, 5, 20, 0, 0, 0, 0, time.UTC)
		today := time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)
		future := time.Date(2030, 6, 10, 0, 0, 0, 0, time.UTC)
		for _, d := range []time.Time{past, today, future} {
			if err := repo.CreateSchedule(ctx, newSchedule("12951", d)); err != nil {
				t.Fatalf("create: %v", err)
			}
		}

		open, err := repo.ListOpen(ctx, today)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(open) != 2 {
			t.Fatalf("expected 2 open schedules, got %d", len(open))
		}
		if !open[0].DepartureDate.Equal(today) || !open[1].DepartureDate.Equal(future) {
			t.Fatalf("expected departure order, got %v then %v", open[0].DepartureDate, open[1].DepartureDate)
		}
	})
}

func TestTrainCatalog(t *testing.T) {
	pool := testutil.NewTestPool(t)
	cat := NewTrainCatalog(pool)
	testutil.ApplyMigrations(t, context.Background(), pool)

	ctx := context.Background()
	testutil.TruncateAll(t, ctx, pool)
	testutil.InsertTrainRoute(t, ctx, pool, "12951", 50, 200, 1500, 600)

	train, err := cat.TrainCapacities(ctx, "12951")
	if err != nil {
		t.Fatalf("expected train, got %v", err)
	}
	if train.ACCapacity != 50 || train.SleeperCapacity != 200 || train.ACFare != 1500 || train.SleeperFare != 600 {
		t.Fatalf("unexpected snapshot: %+v", train)
	}

	if _, err := cat.TrainCapacities(ctx, "99999"); !errors.Is(err, domain.ErrTrainNotFound) {
		t.Fatalf("expected ErrTrainNotFound, got %v", err)
	}
}

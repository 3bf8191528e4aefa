package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/manish-kag/railway-reservation/internal/catalog"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

// TrainCatalog reads route metadata from the train_routes table. The table is
// owned and written by the external catalog; this service never mutates it.
type TrainCatalog struct {
	pool *pgxpool.Pool
}

func NewTrainCatalog(pool *pgxpool.Pool) *TrainCatalog {
	return &TrainCatalog{pool: pool}
}

func (c *TrainCatalog) TrainCapacities(ctx context.Context, trainRef string) (catalog.Train, error) {
	const query = `
SELECT train_ref, name, ac_capacity, sleeper_capacity, ac_fare, sleeper_fare
FROM train_routes
WHERE train_ref = $1`

	var t catalog.Train
	err := c.pool.QueryRow(ctx, query, trainRef).
		Scan(&t.Ref, &t.Name, &t.ACCapacity, &t.SleeperCapacity, &t.ACFare, &t.SleeperFare)
	if err != nil {
		if err == pgx.ErrNoRows {
			return catalog.Train{}, domain.ErrTrainNotFound
		}
		return catalog.Train{}, fmt.Errorf("get train route: %w", err)
	}
	return t, nil
}

// Package catalog defines the consumed interface to the external train-route
// metadata service. Route CRUD lives outside this system; scheduling only
// reads capacity and fare snapshots from it.
package catalog

import "context"

// Train is the capacity and fare snapshot the catalog exposes for one route.
type Train struct {
	Ref             string
	Name            string
	ACCapacity      int
	SleeperCapacity int
	ACFare          float64
	SleeperFare     float64
}

type Catalog interface {
	// TrainCapacities returns the route snapshot, or domain.ErrTrainNotFound.
	TrainCapacities(ctx context.Context, trainRef string) (Train, error)
}

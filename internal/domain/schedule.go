package domain

import "time"

type SeatClass string

const (
	SeatClassAC      SeatClass = "AC"
	SeatClassSleeper SeatClass = "Sleeper"
)

func (c SeatClass) Valid() bool {
	return c == SeatClassAC || c == SeatClassSleeper
}

// Schedule is one dated run of a train route. Capacities and fares are
// snapshotted from the route at scheduling time; the available counters are
// the only mutable fields and change only through the store's atomic updates.
type Schedule struct {
	ID               string
	TrainRef         string
	DepartureDate    time.Time
	ACAvailable      int
	SleeperAvailable int
	ACCapacity       int
	SleeperCapacity  int
	ACFare           float64
	SleeperFare      float64
	CreatedAt        time.Time
}

func (s Schedule) AvailableFor(class SeatClass) int {
	if class == SeatClassAC {
		return s.ACAvailable
	}
	return s.SleeperAvailable
}

func (s Schedule) FareFor(class SeatClass) float64 {
	if class == SeatClassAC {
		return s.ACFare
	}
	return s.SleeperFare
}

// Availability is the display snapshot of a schedule's free seats.
type Availability struct {
	ScheduleID       string
	ACAvailable      int
	SleeperAvailable int
}

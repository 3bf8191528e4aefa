package domain

// ComputeFare returns the total fare for seatCount seats in the given class.
// Pure: no lookups, no side effects.
func ComputeFare(class SeatClass, seatCount int, acFare, sleeperFare float64) (float64, error) {
	if seatCount <= 0 {
		return 0, ErrInvalidSeatCount
	}
	switch class {
	case SeatClassAC:
		return float64(seatCount) * acFare, nil
	case SeatClassSleeper:
		return float64(seatCount) * sleeperFare, nil
	default:
		return 0, ErrInvalidSeatClass
	}
}

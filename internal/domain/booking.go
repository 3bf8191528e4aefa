package domain

import "time"

// Booking is one customer's reservation of seats in one class against one
// schedule. The ticket id is the only external handle for cancellation.
// Bookings are never mutated in place: created once, deleted once.
type Booking struct {
	TicketID   string
	Owner      string
	ScheduleID string
	SeatClass  SeatClass
	SeatCount  int
	TotalFare  float64
	CreatedAt  time.Time
}

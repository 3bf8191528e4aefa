package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/manish-kag/railway-reservation/internal/app"
	"github.com/manish-kag/railway-reservation/internal/domain"
)

// ownerHeader carries the authenticated caller identity, set upstream by the
// identity layer.
const ownerHeader = "X-User"

// BookingAPI is the minimal surface needed by the /bookings routes.
type BookingAPI interface {
	Book(ctx context.Context, in app.BookInput) (domain.Booking, error)
	ListBookings(ctx context.Context, owner string) ([]domain.Booking, error)
}

// Canceller is the minimal surface needed to cancel a ticket.
type Canceller interface {
	Cancel(ctx context.Context, owner, ticketID string) error
}

// HandleBookings serves POST /bookings (book seats) and GET /bookings (the
// caller's bookings).
func HandleBookings(svc BookingAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(ownerHeader)

		switch r.Method {
		case http.MethodPost:
			var req bookRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}

			booking, err := svc.Book(r.Context(), app.BookInput{
				Owner:      owner,
				ScheduleID: req.ScheduleID,
				SeatClass:  domain.SeatClass(req.SeatClass),
				SeatCount:  req.SeatCount,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toBookingResponse(booking))

		case http.MethodGet:
			bookings, err := svc.ListBookings(r.Context(), owner)
			if err != nil {
				writeDomainError(w, err)
				return
			}

			resp := make([]bookingResponse, 0, len(bookings))
			for _, b := range bookings {
				resp = append(resp, toBookingResponse(b))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleCancelBooking serves DELETE /bookings/{ticketID}.
func HandleCancelBooking(svc Canceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		ticketID, ok := parseBookingPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		if err := svc.Cancel(r.Context(), r.Header.Get(ownerHeader), ticketID); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseBookingPath(path string) (string, bool) {
	rest := strings.TrimPrefix(path, "/bookings/")
	if rest == path || rest == "" || strings.Contains(rest, "/") {
		return "", false
	}
	return rest, true
}

type bookRequest struct {
	ScheduleID string `json:"schedule_id"`
	SeatClass  string `json:"seat_class"`
	SeatCount  int    `json:"seat_count"`
}

type bookingResponse struct {
	TicketID   string    `json:"ticket_id"`
	ScheduleID string    `json:"schedule_id"`
	SeatClass  string    `json:"seat_class"`
	SeatCount  int       `json:"seat_count"`
	TotalFare  float64   `json:"total_fare"`
	CreatedAt  time.Time `json:"created_at"`
}

func toBookingResponse(b domain.Booking) bookingResponse {
	return bookingResponse{
		TicketID:   b.TicketID,
		ScheduleID: b.ScheduleID,
		SeatClass:  string(b.SeatClass),
		SeatCount:  b.SeatCount,
		TotalFare:  b.TotalFare,
		CreatedAt:  b.CreatedAt,
	}
}

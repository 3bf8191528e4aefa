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

const dateLayout = "2006-01-02"

// ScheduleAPI is the minimal surface needed by the /schedules routes.
type ScheduleAPI interface {
	Create(ctx context.Context, in app.CreateScheduleInput) (domain.Schedule, error)
	ListOpen(ctx context.Context) ([]domain.Schedule, error)
}

// AvailabilityPeeker reports a schedule's free seats for display.
type AvailabilityPeeker interface {
	PeekAvailability(ctx context.Context, scheduleID string) (domain.Availability, error)
}

// HandleSchedules serves GET /schedules (open journeys) and POST /schedules
// (open a train for a date).
func HandleSchedules(svc ScheduleAPI) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			schedules, err := svc.ListOpen(r.Context())
			if err != nil {
				writeDomainError(w, err)
				return
			}
			resp := make([]scheduleResponse, 0, len(schedules))
			for _, s := range schedules {
				resp = append(resp, toScheduleResponse(s))
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(resp)

		case http.MethodPost:
			var req createScheduleRequest
			dec := json.NewDecoder(r.Body)
			dec.DisallowUnknownFields()
			if err := dec.Decode(&req); err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
				return
			}
			date, err := time.Parse(dateLayout, req.DepartureDate)
			if err != nil {
				writeError(w, http.StatusBadRequest, codeInvalidDate, "departure_date must be YYYY-MM-DD")
				return
			}

			sched, err := svc.Create(r.Context(), app.CreateScheduleInput{
				TrainRef:      req.TrainRef,
				DepartureDate: date,
			})
			if err != nil {
				writeDomainError(w, err)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(toScheduleResponse(sched))

		default:
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
		}
	}
}

// HandleScheduleAvailability serves GET /schedules/{id}/availability.
func HandleScheduleAvailability(svc AvailabilityPeeker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
			return
		}

		scheduleID, ok := parseAvailabilityPath(r.URL.Path)
		if !ok {
			writeError(w, http.StatusNotFound, codeNotFound, "not found")
			return
		}

		av, err := svc.PeekAvailability(r.Context(), scheduleID)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(availabilityResponse{
			ScheduleID:       av.ScheduleID,
			ACAvailable:      av.ACAvailable,
			SleeperAvailable: av.SleeperAvailable,
		})
	}
}

func parseAvailabilityPath(path string) (string, bool) {
	rest := strings.TrimPrefix(path, "/schedules/")
	if rest == path {
		return "", false
	}
	id, ok := strings.CutSuffix(rest, "/availability")
	if !ok || id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

type createScheduleRequest struct {
	TrainRef      string `json:"train_ref"`
	DepartureDate string `json:"departure_date"`
}

type scheduleResponse struct {
	ID               string  `json:"id"`
	TrainRef         string  `json:"train_ref"`
	DepartureDate    string  `json:"departure_date"`
	ACAvailable      int     `json:"ac_available"`
	SleeperAvailable int     `json:"sleeper_available"`
	ACFare           float64 `json:"ac_fare"`
	SleeperFare      float64 `json:"sleeper_fare"`
}

type availabilityResponse struct {
	ScheduleID       string `json:"schedule_id"`
	ACAvailable      int    `json:"ac_available"`
	SleeperAvailable int    `json:"sleeper_available"`
}

func toScheduleResponse(s domain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:               s.ID,
		TrainRef:         s.TrainRef,
		DepartureDate:    s.DepartureDate.Format(dateLayout),
		ACAvailable:      s.ACAvailable,
		SleeperAvailable: s.SleeperAvailable,
		ACFare:           s.ACFare,
		SleeperFare:      s.SleeperFare,
	}
}

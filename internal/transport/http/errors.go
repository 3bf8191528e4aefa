package http

import (
	"encoding/json"
	"net/http"

	"github.com/manish-kag/railway-reservation/internal/domain"
)

const (
	codeMethodNotAllowed   = "method_not_allowed"
	codeNotFound           = "not_found"
	codeInvalidRequestBody = "invalid_request_body"
	codeOwnerRequired      = "owner_required"
	codeInvalidSeatClass   = "invalid_seat_class"
	codeInvalidSeatCount   = "invalid_seat_count"
	codeInvalidID          = "invalid_id"
	codeInvalidDate        = "invalid_date"
	codeScheduleNotFound   = "schedule_not_found"
	codeScheduleInPast     = "schedule_in_past"
	codeScheduleExists     = "schedule_exists"
	codeTrainNotFound      = "train_not_found"
	codeInsufficientSeats  = "insufficient_seats"
	codeTicketNotFound     = "ticket_not_found"
	codeForbidden          = "forbidden"
	codeTransactionFailed  = "transaction_failed"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

// writeDomainError maps engine errors onto HTTP statuses and stable codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch err {
	case domain.ErrOwnerRequired:
		writeError(w, http.StatusUnauthorized, codeOwnerRequired, err.Error())
	case domain.ErrInvalidSeatClass:
		writeError(w, http.StatusBadRequest, codeInvalidSeatClass, err.Error())
	case domain.ErrInvalidSeatCount:
		writeError(w, http.StatusBadRequest, codeInvalidSeatCount, err.Error())
	case domain.ErrInvalidID:
		writeError(w, http.StatusBadRequest, codeInvalidID, err.Error())
	case domain.ErrInvalidDate:
		writeError(w, http.StatusBadRequest, codeInvalidDate, err.Error())
	case domain.ErrScheduleNotFound:
		writeError(w, http.StatusNotFound, codeScheduleNotFound, err.Error())
	case domain.ErrScheduleInPast:
		writeError(w, http.StatusConflict, codeScheduleInPast, err.Error())
	case domain.ErrScheduleExists:
		writeError(w, http.StatusConflict, codeScheduleExists, err.Error())
	case domain.ErrTrainNotFound:
		writeError(w, http.StatusNotFound, codeTrainNotFound, err.Error())
	case domain.ErrInsufficientSeats:
		writeError(w, http.StatusConflict, codeInsufficientSeats, err.Error())
	case domain.ErrTicketNotFound:
		writeError(w, http.StatusNotFound, codeTicketNotFound, err.Error())
	case domain.ErrTransactionFailed:
		writeError(w, http.StatusServiceUnavailable, codeTransactionFailed, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
	}
}

package domain

import "errors"

var (
	ErrInvalidSeatCount  = errors.New("invalid seat count")
	ErrInvalidSeatClass  = errors.New("invalid seat class")
	ErrOwnerRequired     = errors.New("owner required")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidDate       = errors.New("invalid departure date")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrScheduleInPast    = errors.New("schedule already departed")
	ErrScheduleExists    = errors.New("train already scheduled for this date")
	ErrTrainNotFound     = errors.New("train not found")
	ErrInsufficientSeats = errors.New("insufficient seats")
	// ErrTicketNotFound covers both a missing ticket and a ticket owned by
	// someone else, so callers cannot probe which ticket ids exist.
	ErrTicketNotFound    = errors.New("ticket not found or not owned")
	ErrDuplicateTicket   = errors.New("duplicate ticket id")
	ErrTransactionFailed = errors.New("transaction failed")
)

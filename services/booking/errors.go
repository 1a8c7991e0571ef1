package booking

import (
	"errors"
	"fmt"

	bookingRepo "mindwell/database/repository/booking"
)

// ErrorCode classifies every failure a reservation operation can surface.
type ErrorCode string

const (
	CodeBookingLimitExceeded ErrorCode = "bookingLimitExceeded"
	CodeSlotAlreadyTaken     ErrorCode = "slotAlreadyTaken"
	CodeConflictRetry        ErrorCode = "conflictRetry"
	CodeNotFound             ErrorCode = "notFound"
	CodeStoreUnavailable     ErrorCode = "storeUnavailable"
	CodeInvalidRequest       ErrorCode = "invalidRequest"
	CodeForbidden            ErrorCode = "forbidden"
)

// Retryable reports whether the same call may succeed if simply repeated.
func (c ErrorCode) Retryable() bool {
	return c == CodeConflictRetry || c == CodeStoreUnavailable
}

var userMessages = map[ErrorCode]string{
	CodeBookingLimitExceeded: fmt.Sprintf("You already have %d upcoming sessions. Cancel one before booking another.", MaxBookingsPerUser),
	CodeSlotAlreadyTaken:     "This time slot has just been booked. Please choose another time.",
	CodeConflictRetry:        "The booking system is busy right now. Please try again.",
	CodeNotFound:             "This booking no longer exists. Refresh and try again.",
	CodeStoreUnavailable:     "We couldn't reach the booking service. Please try again later.",
	CodeInvalidRequest:       "The booking request is invalid.",
	CodeForbidden:            "You can only manage your own bookings.",
}

// ReservationError is the typed outcome of a failed reservation operation.
// Message is safe to show to end users; Err keeps the internal cause for logs.
type ReservationError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ReservationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReservationError) Unwrap() error {
	return e.Err
}

// Is matches any ReservationError with the same code, so callers can write
// errors.Is(err, booking.ErrSlotAlreadyTaken).
func (e *ReservationError) Is(target error) bool {
	t, ok := target.(*ReservationError)
	return ok && t.Code == e.Code
}

var (
	ErrBookingLimitExceeded = newReservationError(CodeBookingLimitExceeded, nil)
	ErrSlotAlreadyTaken     = newReservationError(CodeSlotAlreadyTaken, nil)
	ErrConflictRetry        = newReservationError(CodeConflictRetry, nil)
	ErrNotFound             = newReservationError(CodeNotFound, nil)
	ErrStoreUnavailable     = newReservationError(CodeStoreUnavailable, nil)
	ErrInvalidRequest       = newReservationError(CodeInvalidRequest, nil)
	ErrForbidden            = newReservationError(CodeForbidden, nil)
)

func newReservationError(code ErrorCode, cause error) *ReservationError {
	return &ReservationError{Code: code, Message: userMessages[code], Err: cause}
}

func invalidRequest(message string) *ReservationError {
	return &ReservationError{Code: CodeInvalidRequest, Message: message}
}

// CodeOf returns the code carried by err, or "" when err is not a ReservationError.
func CodeOf(err error) ErrorCode {
	var rerr *ReservationError
	if errors.As(err, &rerr) {
		return rerr.Code
	}
	return ""
}

// toReservationError converts store and context errors at the transaction boundary.
func toReservationError(err error) *ReservationError {
	if err == nil {
		return nil
	}
	var rerr *ReservationError
	if errors.As(err, &rerr) {
		return rerr
	}
	switch {
	case errors.Is(err, bookingRepo.ErrAlreadyExists):
		return newReservationError(CodeSlotAlreadyTaken, err)
	case errors.Is(err, bookingRepo.ErrConflict):
		return newReservationError(CodeConflictRetry, err)
	case errors.Is(err, bookingRepo.ErrNotFound):
		return newReservationError(CodeNotFound, err)
	default:
		return newReservationError(CodeStoreUnavailable, err)
	}
}

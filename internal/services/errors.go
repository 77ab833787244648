package services

import (
	"errors"
	"time"
)

// Error kinds returned by the parking operations. Operations wrap them with
// detail, so compare with errors.Is.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrConflict          = errors.New("conflict")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInsufficientFunds = errors.New("insufficient balance")
)

var (
	ErrAccountNotFound     = wrap(ErrNotFound, "account not found")
	ErrSpotNotFound        = wrap(ErrNotFound, "spot not found")
	ErrReservationNotFound = wrap(ErrNotFound, "reservation not found")
	ErrAccountExists       = wrap(ErrConflict, "account with this email already exists")
	ErrSpotNotAvailable    = wrap(ErrConflict, "spot not available")
	ErrReservationExpired  = wrap(ErrConflict, "reservation already expired, refresh the list")
	ErrSpotHasReservations = wrap(ErrConflict, "cannot delete spot with active reservations")
	ErrOptimisticLock      = wrap(ErrConflict, "data has been modified by another request, please retry")
	ErrWrongPassword       = wrap(ErrUnauthorized, "wrong password")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func wrap(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

func invalidInput(msg string) error {
	return wrap(ErrInvalidInput, msg)
}

// Now is the clock every lifecycle decision reads. Tests replace it.
var Now = func() time.Time {
	return time.Now().UTC()
}

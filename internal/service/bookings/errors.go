package bookings

import "errors"

var (
	// ErrBookingNotFound is returned when the booking does not exist.
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidTransition is returned when a payment transition does not
	// apply to the booking's current status.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("service: internal error")
)

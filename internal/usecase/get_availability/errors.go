package get_availability

import "errors"

var (
	// ErrProviderNotFound is returned when a requested provider id is not in
	// the catalog.
	ErrProviderNotFound = errors.New("get_availability: provider not found")

	// ErrInvalidDate is returned when the date is in the past.
	ErrInvalidDate = errors.New("get_availability: invalid date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance
	// booking window.
	ErrDateTooFarInFuture = errors.New("get_availability: date is too far in the future")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("get_availability: invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("get_availability: internal error")
)

package commit_booking

import "errors"

var (
	// ErrServiceNotFound is returned when a requested service id is not in the
	// catalog or is inactive.
	ErrServiceNotFound = errors.New("commit_booking: service not found")

	// ErrProviderNotFound is returned when a requested provider id is not in
	// the catalog.
	ErrProviderNotFound = errors.New("commit_booking: provider not found")

	// ErrProviderCannotPerform is returned when the assigned provider does not
	// offer the assigned service.
	ErrProviderCannotPerform = errors.New("commit_booking: provider does not offer this service")

	// ErrProviderNotWorking is returned when a provider does not work on the
	// requested weekday or the time is outside their slot catalog.
	ErrProviderNotWorking = errors.New("commit_booking: provider is not available at this time")

	// ErrSlotNotAvailable is returned when another booking already holds the
	// slot for one of the providers.
	ErrSlotNotAvailable = errors.New("commit_booking: slot is not available")

	// ErrInvalidDate is returned when the booking date is in the past.
	ErrInvalidDate = errors.New("commit_booking: invalid booking date")

	// ErrDateTooFarInFuture is returned when the date exceeds the advance
	// booking window.
	ErrDateTooFarInFuture = errors.New("commit_booking: date is too far in the future")

	// ErrInvalidInput is returned on malformed input.
	ErrInvalidInput = errors.New("commit_booking: invalid input data")

	// ErrInternal is returned on internal failures.
	ErrInternal = errors.New("commit_booking: internal error")
)

package reservation

import "errors"

var (
	// ErrSlotTaken is returned when the (provider, date, time) triple is
	// already committed. The unique constraint is the backstop even under
	// concurrent inserts.
	ErrSlotTaken = errors.New("reservation.repository: slot already taken")

	// ErrBuildQuery is returned when building SQL fails.
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery is returned when executing SQL fails.
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)

package catalogservice

import "errors"

var (
	// ErrInternal is returned on client-side failures (request build, network).
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse is returned when the catalog service answers with an
	// unexpected status or an undecodable body.
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)

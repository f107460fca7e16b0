package common

import "errors"

var (
	// ErrNotFound marks a 404 from the backend.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable marks a request that never produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")
)

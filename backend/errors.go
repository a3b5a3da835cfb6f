package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is
	// not registered.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

package domain

import "errors"

// Sentinel error kinds surfaced by the core. Callers discriminate with
// errors.Is; wrapping adds the stable operation message.
var (
	// ErrInvalidInput marks malformed or out-of-range request data.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks a referenced session or resource that does not
	// exist within the caller's user scope.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks an operation that would violate the
	// single-open-session invariant.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks a request that carried no usable identity.
	ErrUnauthenticated = errors.New("unauthenticated")
)

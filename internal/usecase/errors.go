package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// ErrStoreUnavailable marks a persistent store connectivity loss the
	// loop cannot recover from in-process; the supervisor restarts us.
	ErrStoreUnavailable = errors.New("store unavailable")
)

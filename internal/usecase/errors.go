package usecase

import "errors"

// Error taxonomy surfaced to callers. All of these are terminal: the engine
// never retries on its own, not even ErrConflict, because a blind retry could
// approve a request the caller no longer intends to approve.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("resource not found")
	ErrDivisionMismatch      = errors.New("division mismatch")
	ErrInvalidState          = errors.New("operation not legal for current status")
	ErrDoubleBooking         = errors.New("overlapping confirmed commitment")
	ErrConflict              = errors.New("concurrent update conflict")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

package domain

import "errors"

// Navigation errors are loud: they indicate a caller that is out of sync with
// the session and must re-read the current view. Availability lookup failures
// are never surfaced as errors; they fold into StatusUnknown with a reason.
var (
	ErrDataUnavailable = errors.New("catalog data unavailable")
	ErrUnknownVendor   = errors.New("unknown vendor")
	ErrInvalidChoice   = errors.New("choice index out of range")
	ErrInvalidPage     = errors.New("page index out of range")
	ErrAtRoot          = errors.New("already at navigation root")
	ErrStaleState      = errors.New("catalog reloaded since session path was computed")
	ErrSessionNotFound = errors.New("session not found")
)

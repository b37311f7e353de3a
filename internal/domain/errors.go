package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Input errors
	ErrMsgNoActivity      = "no activity specified"
	ErrMsgUnknownActivity = "unknown activity"
	ErrMsgInvalidMinutes  = "minutes must be positive"

	// Storage errors
	ErrMsgStoreUnavailable = "store unavailable"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for additional context
// and test with errors.Is at the call site.
var (
	// ErrNoActivity is returned when a log request carries no positive
	// activity field. User input error, no state change.
	ErrNoActivity = errors.New(ErrMsgNoActivity)

	// ErrUnknownActivity is returned for activity names missing from the
	// catalog.
	ErrUnknownActivity = errors.New(ErrMsgUnknownActivity)

	// ErrInvalidMinutes is returned for zero or negative minute values.
	ErrInvalidMinutes = errors.New(ErrMsgInvalidMinutes)

	// ErrStoreUnavailable wraps any storage-layer fault. Callers surface a
	// generic "try again later" notice and never retry.
	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)
)

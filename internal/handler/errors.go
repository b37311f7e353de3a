package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgInvalidRequest = "Invalid request body"

	ErrMsgMissingQueryParam = "Missing %s query parameter"

	ErrMsgNoActivity       = "At least one activity with positive minutes is required"
	ErrMsgLogFailed        = "Failed to log activities"
	ErrMsgGetStatsFailed   = "Failed to retrieve stats"
	ErrMsgStoreUnavailable = "Stat store unavailable"
)

package domain

import "errors"

// Typed sentinels for upstream failures. Each is caught at the narrowest
// boundary and turned into a graceful user-facing message; none propagates as
// a raw error past the orchestrator.
var (
	// ErrCalendarUnavailable covers event-service timeouts, connection
	// failures and 5xx responses.
	ErrCalendarUnavailable = errors.New("calendar service unavailable")

	// ErrModelUnavailable means the LLM client could not be constructed
	// (missing credentials) or reached.
	ErrModelUnavailable = errors.New("language model unavailable")

	// ErrRateLimited is a 429/quota failure from the model provider.
	ErrRateLimited = errors.New("language model rate limited")

	// ErrNotFound is the generic missing-record sentinel for repositories.
	ErrNotFound = errors.New("not found")
)

// Package apperr defines sentinel errors shared across layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrAlreadyExists = errors.New("already exists")

	// ErrBusy is returned when a session already has an edit request in flight.
	ErrBusy = errors.New("request already in flight")

	// Upstream LLM failure classes. All of them are user-visible and
	// non-fatal: the session survives, only the failed turn is recorded.
	ErrUpstreamAuth        = errors.New("upstream authentication failed")
	ErrUpstreamRateLimited = errors.New("upstream rate limited")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	// Upstream fetch outcomes. Throttled is only returned once the retry
	// budget is exhausted; network failures are never retried in-cycle.
	ErrUpstreamNotFound    = errors.New("upstream resource not found")
	ErrUpstreamThrottled   = errors.New("upstream throttled")
	ErrUpstreamNetwork     = errors.New("upstream network failure")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

package runner

import "errors"

// Sentinel errors for the runner package.
var (
	// ErrMaxFailures is returned when the max failure limit is reached.
	ErrMaxFailures = errors.New("runner: max failures reached")

	// ErrNoFiles is returned when there is nothing to check.
	ErrNoFiles = errors.New("runner: no files to check")

	// Test errors for use in unit tests.
	errTestStop     = errors.New("test: stop")
	errTestVerifier = errors.New("test: verifier unavailable")
)

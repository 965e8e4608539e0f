package cypherparse

import "errors"

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .cypher.yaml is found.
	ErrConfigNotFound = errors.New("cypherparse: no .cypher.yaml found")

	// ErrInvalidConfig is returned when a config file cannot be decoded.
	ErrInvalidConfig = errors.New("cypherparse: invalid config")

	// ErrSyntax wraps the joined syntax errors of a file that failed to
	// parse.
	ErrSyntax = errors.New("cypherparse: syntax error")

	// ErrRejected is wrapped by verifiers when a database refuses a
	// statement that parsed cleanly.
	ErrRejected = errors.New("cypherparse: statement rejected")
)

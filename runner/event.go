// Package runner checks Cypher files concurrently and reports the outcome
// of each file to pluggable handlers.
package runner

import (
	"time"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/parser"
)

// Action represents the type of check event.
type Action string

// Action constants for check events.
const (
	ActionRun   Action = "run"
	ActionPass  Action = "passed"
	ActionFail  Action = "failed"
	ActionSkip  Action = "skipped"
	ActionError Action = "error"
)

// IsTerminal returns true if this action ends the check of a file.
func (a Action) IsTerminal() bool {
	return a == ActionPass || a == ActionFail || a == ActionSkip || a == ActionError
}

// Event represents a single event emitted while checking a file.
type Event struct {
	Time    time.Time     // When the event occurred
	Action  Action        // What happened
	Path    string        // Source file path
	Elapsed time.Duration // Time taken (for terminal events)

	// Source and Statements are set once the file has been parsed.
	Source     string
	Statements int

	// Diagnostics holds the syntax errors of a failed file.
	Diagnostics []*parser.SyntaxError

	// Findings holds lint results when analysis is enabled. Any finding
	// of error severity fails the file.
	Findings []analysis.Diagnostic

	// Error is set for ActionError, and for ActionFail when a verifier
	// rejected a statement.
	Error error
}

package runner

import (
	"slices"
	"sync"
	"time"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/parser"
)

// Result accumulates check results during execution.
type Result struct {
	mu sync.RWMutex

	StartTime time.Time
	EndTime   time.Time

	Total   int
	Passed  int
	Failed  int
	Skipped int
	Errors  int

	// Statements counts the statements of every parsed file.
	Statements int

	// Files indexed by path.
	Files map[string]*FileResult

	// Order preserves completion order for display.
	Order []string
}

// NewResult creates an initialized Result.
func NewResult() *Result {
	return &Result{
		StartTime: time.Now(),
		Files:     make(map[string]*FileResult),
	}
}

// Add records a terminal event in the result.
func (r *Result) Add(event Event) {
	if !event.Action.IsTerminal() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.Files[event.Path] = &FileResult{
		Path:        event.Path,
		Status:      event.Action,
		Elapsed:     event.Elapsed,
		Statements:  event.Statements,
		Source:      event.Source,
		Diagnostics: event.Diagnostics,
		Findings:    event.Findings,
		Error:       event.Error,
	}
	r.Order = append(r.Order, event.Path)
	r.Total++
	r.Statements += event.Statements

	switch event.Action {
	case ActionPass:
		r.Passed++
	case ActionFail:
		r.Failed++
	case ActionSkip:
		r.Skipped++
	case ActionError:
		r.Errors++
	case ActionRun:
		// Not a terminal action
	}
}

// Finish marks the result as complete.
func (r *Result) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.EndTime = time.Now()
}

// Elapsed returns the total execution time.
func (r *Result) Elapsed() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}

	return r.EndTime.Sub(r.StartTime)
}

// Ok returns true if every checked file passed.
func (r *Result) Ok() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.Failed == 0 && r.Errors == 0
}

// SyntaxErrors returns the number of syntax errors across all files.
func (r *Result) SyntaxErrors() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n int
	for _, fr := range r.Files {
		n += len(fr.Diagnostics)
	}

	return n
}

// FailedFiles returns failed and errored files sorted by path.
func (r *Result) FailedFiles() []*FileResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var failed []*FileResult

	for _, path := range r.Order {
		fr := r.Files[path]
		if fr.Status == ActionFail || fr.Status == ActionError {
			failed = append(failed, fr)
		}
	}

	slices.SortFunc(failed, func(a, b *FileResult) int {
		switch {
		case a.Path < b.Path:
			return -1
		case a.Path > b.Path:
			return 1
		default:
			return 0
		}
	})

	return failed
}

// FileResult holds the outcome of checking a single file.
type FileResult struct {
	Path        string
	Status      Action
	Elapsed     time.Duration
	Statements  int
	Source      string
	Diagnostics []*parser.SyntaxError
	Findings    []analysis.Diagnostic
	Error       error
}

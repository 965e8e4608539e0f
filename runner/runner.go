package runner

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

// Verifier checks a statement that parsed cleanly against an external
// authority such as a database planner. Implementations wrap
// cypherparse.ErrRejected when the statement itself is at fault; any other
// error is reported as an infrastructure error.
type Verifier interface {
	Verify(ctx context.Context, stmt ast.Statement) error
}

// Runner checks Cypher files.
type Runner struct {
	handler     Handler
	verifier    Verifier
	failFast    bool
	filter      *regexp.Regexp
	parserOpts  []parser.Option
	concurrency int
	lint        bool
	rules       []*analysis.Rule
}

// Option configures a Runner.
type Option func(*Runner)

// WithHandler sets the event handler.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithVerifier sets a verifier run on every statement of a clean file.
func WithVerifier(v Verifier) Option {
	return func(r *Runner) {
		r.verifier = v
	}
}

// WithFailFast stops on first failure.
func WithFailFast(enabled bool) Option {
	return func(r *Runner) {
		r.failFast = enabled
	}
}

// WithFilter sets a regex pattern to filter which files are checked.
// Files whose path does not match are reported as skipped.
func WithFilter(pattern string) Option {
	return func(r *Runner) {
		if pattern != "" {
			r.filter = regexp.MustCompile(pattern)
		}
	}
}

// WithParserOptions sets the options passed to the parser for every file.
func WithParserOptions(opts ...parser.Option) Option {
	return func(r *Runner) {
		r.parserOpts = opts
	}
}

// WithAnalysis runs lint rules over every file that parses cleanly. With
// no rules the default set is used.
func WithAnalysis(rules ...*analysis.Rule) Option {
	return func(r *Runner) {
		r.lint = true
		r.rules = rules
	}
}

// WithConcurrency limits how many files are checked at once. Values below
// one mean runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{}
	for _, opt := range opts {
		opt(r)
	}

	if r.concurrency < 1 {
		r.concurrency = runtime.GOMAXPROCS(0)
	}

	return r
}

// Run checks files and returns the results. Reaching the fail-fast limit is
// not an error; the files not yet started are left out of the result.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	result := NewResult()

	handlers := []Handler{NewResultHandler()}
	if r.handler != nil {
		handlers = append(handlers, r.handler)
	}

	if r.failFast {
		handlers = append(handlers, NewStopOnFailHandler(1))
	}

	handler := NewMultiHandler(handlers...)

	var mu sync.Mutex

	emit := func(event Event) error {
		mu.Lock()
		defer mu.Unlock()

		return handler.Event(ctx, event, result)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for _, file := range files {
		if gctx.Err() != nil {
			break
		}

		if r.filter != nil && !r.filter.MatchString(file) {
			err := emit(Event{Time: time.Now(), Action: ActionSkip, Path: file})
			if err != nil {
				g.Go(func() error { return err })

				break
			}

			continue
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}

			return r.checkFile(gctx, file, emit)
		})
	}

	err := g.Wait()

	result.Finish()

	if err != nil && !errors.Is(err, ErrMaxFailures) {
		return result, err
	}

	return result, nil
}

func (r *Runner) checkFile(ctx context.Context, path string, emit func(Event) error) error {
	start := time.Now()

	if err := emit(Event{Time: start, Action: ActionRun, Path: path}); err != nil {
		return err
	}

	done := func(event Event) error {
		event.Time = time.Now()
		event.Path = path
		event.Elapsed = time.Since(start)

		return emit(event)
	}

	f, err := cypherparse.ParseFile(path, r.parserOpts...)
	if err != nil {
		return done(Event{Action: ActionError, Error: err})
	}

	event := Event{
		Action:     ActionPass,
		Source:     f.Source,
		Statements: len(f.Statements),
	}

	if !f.OK() {
		event.Action = ActionFail
		event.Diagnostics = f.Errors

		return done(event)
	}

	if r.lint {
		event.Findings = analysis.Analyze(f.Statements, r.rules...)
		if analysis.HasErrors(event.Findings) {
			event.Action = ActionFail

			return done(event)
		}
	}

	if r.verifier != nil {
		for i, stmt := range f.Statements {
			err := r.verifier.Verify(ctx, stmt)
			if err == nil {
				continue
			}

			event.Action = ActionError
			if errors.Is(err, cypherparse.ErrRejected) {
				event.Action = ActionFail
			}

			event.Error = fmt.Errorf("statement %d: %w", i+1, err)

			break
		}
	}

	return done(event)
}

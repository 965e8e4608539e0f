package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

func writeFiles(t *testing.T, files map[string]string) []string {
	t.Helper()

	dir := t.TempDir()

	var paths []string

	for name, src := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
			t.Fatal(err)
		}

		paths = append(paths, path)
	}

	return paths
}

type recordingHandler struct {
	mu     sync.Mutex
	events []Event
}

func (h *recordingHandler) Event(_ context.Context, event Event, _ *Result) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, event)

	return nil
}

func (h *recordingHandler) Err(_ string) error {
	return nil
}

func (h *recordingHandler) terminal() map[string]Action {
	h.mu.Lock()
	defer h.mu.Unlock()

	got := make(map[string]Action)

	for _, e := range h.events {
		if e.Action.IsTerminal() {
			got[filepath.Base(e.Path)] = e.Action
		}
	}

	return got
}

func TestRunner_Run(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"ok.cypher":     "MATCH (n:Person) RETURN n;\nRETURN 1;",
		"broken.cypher": "MATCH (n RETURN n",
	})
	paths = append(paths, filepath.Join(t.TempDir(), "missing.cypher"))

	rec := &recordingHandler{}
	r := New(WithHandler(rec), WithConcurrency(2))

	result, err := r.Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := map[string]Action{
		"ok.cypher":      ActionPass,
		"broken.cypher":  ActionFail,
		"missing.cypher": ActionError,
	}

	got := rec.terminal()
	for name, action := range want {
		if got[name] != action {
			t.Errorf("%s: got %q, want %q", name, got[name], action)
		}
	}

	if result.Total != 3 || result.Passed != 1 || result.Failed != 1 || result.Errors != 1 {
		t.Errorf("counts = %d/%d/%d/%d, want 3/1/1/1", result.Total, result.Passed, result.Failed, result.Errors)
	}

	for path, fr := range result.Files {
		if filepath.Base(path) == "ok.cypher" && fr.Statements != 2 {
			t.Errorf("ok.cypher: Statements = %d, want 2", fr.Statements)
		}
	}

	if result.Ok() {
		t.Error("Ok() = true, want false")
	}

	failed := result.FailedFiles()
	if len(failed) != 2 {
		t.Fatalf("FailedFiles() = %d, want 2", len(failed))
	}

	for _, fr := range failed {
		if fr.Status == ActionFail && len(fr.Diagnostics) == 0 {
			t.Error("failed file has no diagnostics")
		}
	}
}

func TestRunner_NoFiles(t *testing.T) {
	_, err := New().Run(context.Background(), nil)
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("err = %v, want ErrNoFiles", err)
	}
}

func TestRunner_Filter(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"users.cypher":  "RETURN 1;",
		"orders.cypher": "RETURN 2;",
	})

	rec := &recordingHandler{}

	result, err := New(WithHandler(rec), WithFilter(`users`)).Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	got := rec.terminal()
	if got["users.cypher"] != ActionPass || got["orders.cypher"] != ActionSkip {
		t.Errorf("got %v", got)
	}

	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestRunner_FailFast(t *testing.T) {
	files := make(map[string]string)
	for i := range 20 {
		files[fmt.Sprintf("broken%02d.cypher", i)] = "RETURN [1, 2"
	}

	paths := writeFiles(t, files)

	result, err := New(WithFailFast(true), WithConcurrency(1)).Run(context.Background(), paths)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Failed != 1 {
		t.Errorf("Failed = %d, want 1", result.Failed)
	}
}

func TestRunner_StopOnHandlerError(t *testing.T) {
	paths := writeFiles(t, map[string]string{"a.cypher": "RETURN 1;"})

	_, err := New(WithHandler(stopHandler{})).Run(context.Background(), paths)
	if !errors.Is(err, errTestStop) {
		t.Errorf("err = %v, want errTestStop", err)
	}
}

type stopHandler struct{}

func (stopHandler) Event(context.Context, Event, *Result) error { return errTestStop }
func (stopHandler) Err(string) error                            { return nil }

type fakeVerifier struct {
	err error
}

func (v fakeVerifier) Verify(_ context.Context, stmt ast.Statement) error {
	if _, ok := stmt.(*ast.RegularQuery); ok {
		return v.err
	}

	return nil
}

func TestRunner_Verifier(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Action
	}{
		{name: "accepted", err: nil, want: ActionPass},
		{name: "rejected", err: fmt.Errorf("unknown function: %w", cypherparse.ErrRejected), want: ActionFail},
		{name: "unavailable", err: errTestVerifier, want: ActionError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := writeFiles(t, map[string]string{"q.cypher": "RETURN 1;"})

			rec := &recordingHandler{}

			_, err := New(WithHandler(rec), WithVerifier(fakeVerifier{err: tt.err})).Run(context.Background(), paths)
			if err != nil {
				t.Fatal(err)
			}

			if got := rec.terminal()["q.cypher"]; got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunner_Analysis(t *testing.T) {
	paths := writeFiles(t, map[string]string{
		"clean.cypher": "MATCH (n) RETURN n.name AS name;",
		"warn.cypher":  "RETURN frobnicate(1);",
		"bad.cypher":   "MATCH (n) RETURN n, n;",
	})

	rec := &recordingHandler{}

	result, err := New(WithHandler(rec), WithAnalysis()).Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	terminal := rec.terminal()

	want := map[string]Action{
		"clean.cypher": ActionPass,
		"warn.cypher":  ActionPass,
		"bad.cypher":   ActionFail,
	}

	for name, action := range want {
		if terminal[name] != action {
			t.Errorf("%s: got %q, want %q", name, terminal[name], action)
		}
	}

	for _, fr := range result.Files {
		switch filepath.Base(fr.Path) {
		case "warn.cypher":
			if len(fr.Findings) != 1 || fr.Findings[0].Code != "unknown-function" {
				t.Errorf("warn.cypher findings = %+v", fr.Findings)
			}
		case "bad.cypher":
			if len(fr.Findings) != 1 || fr.Findings[0].Code != "duplicate-column" {
				t.Errorf("bad.cypher findings = %+v", fr.Findings)
			}
		}
	}

	// Without analysis the same files all pass.
	rec = &recordingHandler{}

	if _, err := New(WithHandler(rec)).Run(context.Background(), paths); err != nil {
		t.Fatal(err)
	}

	if got := rec.terminal()["bad.cypher"]; got != ActionPass {
		t.Errorf("bad.cypher without analysis: got %q, want %q", got, ActionPass)
	}
}

func TestRunner_ParserOptions(t *testing.T) {
	src := "RETURN " + strings.Repeat("(", 40) + "1" + strings.Repeat(")", 40) + ";"
	paths := writeFiles(t, map[string]string{"deep.cypher": src})

	rec := &recordingHandler{}

	_, err := New(WithHandler(rec), WithParserOptions(parser.WithMaxDepth(10))).Run(context.Background(), paths)
	if err != nil {
		t.Fatal(err)
	}

	if got := rec.terminal()["deep.cypher"]; got != ActionFail {
		t.Errorf("got %q, want %q", got, ActionFail)
	}
}

func TestStopOnFailHandler(t *testing.T) {
	h := NewStopOnFailHandler(2)
	result := NewResult()

	result.Add(Event{Action: ActionFail, Path: "a"})

	if err := h.Event(context.Background(), Event{Action: ActionFail}, result); err != nil {
		t.Errorf("first failure: err = %v, want nil", err)
	}

	result.Add(Event{Action: ActionError, Path: "b"})

	if err := h.Event(context.Background(), Event{Action: ActionError}, result); !errors.Is(err, ErrMaxFailures) {
		t.Errorf("second failure: err = %v, want ErrMaxFailures", err)
	}
}

package runner

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/analysis"
)

func TestDotsFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewDotsFormatter(&buf)

	_ = f.Format(Event{Action: ActionRun}, nil)

	if buf.Len() != 0 {
		t.Error("Non-terminal should produce no output")
	}

	_ = f.Format(Event{Action: ActionPass}, nil)
	_ = f.Format(Event{Action: ActionFail}, nil)
	_ = f.Format(Event{Action: ActionSkip}, nil)
	_ = f.Format(Event{Action: ActionError}, nil)

	if got := buf.String(); got != ".FSE" {
		t.Errorf("got %q, want %q", got, ".FSE")
	}
}

func TestDotsFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewDotsFormatter(&buf)

	src := "RETURN 1;\nMATCH (n RETURN n"
	file := cypherparse.Parse("b.cypher", src)

	result := NewResult()
	result.Add(Event{Action: ActionPass, Path: "a.cypher", Statements: 2})
	result.Add(Event{Action: ActionFail, Path: "b.cypher", Source: src, Diagnostics: file.Errors})
	result.Finish()

	_ = f.Summary(result)

	got := buf.String()

	if !strings.Contains(got, "FAIL b.cypher") {
		t.Errorf("missing 'FAIL b.cypher' in:\n%s", got)
	}

	if !strings.Contains(got, "  MATCH (n RETURN n\n") {
		t.Errorf("missing source excerpt in:\n%s", got)
	}

	if !strings.Contains(got, "^~~~~~") {
		t.Errorf("missing caret in:\n%s", got)
	}

	if !strings.Contains(got, "2 files, 1 passed, 1 failed") {
		t.Errorf("missing summary counts in:\n%s", got)
	}
}

func TestVerboseFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewVerboseFormatter(&buf, nil)

	_ = f.Format(Event{Action: ActionRun, Path: "a.cypher"}, nil)

	if got, want := buf.String(), "=== CHECK a.cypher\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionPass, Path: "a.cypher", Statements: 3, Elapsed: 10 * time.Millisecond}, nil)

	if got, want := buf.String(), "--- PASS: a.cypher (3 statements, 10ms)\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	buf.Reset()

	_ = f.Format(Event{Action: ActionFail, Path: "a.cypher", Error: cypherparse.ErrRejected}, nil)

	want := `--- FAIL: a.cypher (0s)
    cypherparse: statement rejected
`
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestVerboseFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewVerboseFormatter(&buf, nil)

	result := NewResult()
	result.Add(Event{Action: ActionPass, Path: "a.cypher", Statements: 1})
	result.Add(Event{Action: ActionSkip, Path: "b.cypher"})
	result.Finish()

	_ = f.Summary(result)

	got := buf.String()

	if !strings.Contains(got, "PASS\n  2 files, 1 passed, 0 failed, 1 skipped, 0 errors\n") {
		t.Errorf("missing counts in:\n%s", got)
	}

	if !strings.Contains(got, "1 statement, 0 syntax errors") {
		t.Errorf("missing statement count in:\n%s", got)
	}
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer

	f := NewJSONFormatter(&buf)

	fixedTime := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	file := cypherparse.Parse("q.cypher", "MATCH (n RETURN n")

	_ = f.Format(Event{
		Time:        fixedTime,
		Action:      ActionFail,
		Path:        "q.cypher",
		Elapsed:     50 * time.Millisecond,
		Diagnostics: file.Errors,
	}, nil)

	var got struct {
		Action      string  `json:"action"`
		Path        string  `json:"path"`
		Elapsed     float64 `json:"elapsed"`
		Diagnostics []struct {
			Line   int `json:"line"`
			Column int `json:"column"`
		} `json:"diagnostics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got.Action != "failed" {
		t.Errorf("action = %v, want failed", got.Action)
	}

	if got.Path != "q.cypher" {
		t.Errorf("path = %v, want q.cypher", got.Path)
	}

	if got.Elapsed != 0.05 {
		t.Errorf("elapsed = %v, want 0.05", got.Elapsed)
	}

	if len(got.Diagnostics) == 0 || got.Diagnostics[0].Line != 1 || got.Diagnostics[0].Column != 10 {
		t.Errorf("diagnostics = %+v, want first at 1:10", got.Diagnostics)
	}
}

func TestFormatters_Findings(t *testing.T) {
	file := cypherparse.Parse("q.cypher", "RETURN frobnicate(1)")
	findings := analysis.Analyze(file.Statements)

	event := Event{Action: ActionPass, Path: "q.cypher", Statements: 1, Findings: findings}

	var buf bytes.Buffer

	_ = NewVerboseFormatter(&buf, nil).Format(event, nil)

	want := "    q.cypher:1:8: warning: unknown function: frobnicate (unknown-function)\n"
	if !strings.HasSuffix(buf.String(), want) {
		t.Errorf("verbose output %q does not end with %q", buf.String(), want)
	}

	buf.Reset()

	_ = NewJSONFormatter(&buf).Format(event, nil)

	var got struct {
		Findings []struct {
			Code     string `json:"code"`
			Severity string `json:"severity"`
			Column   int    `json:"column"`
		} `json:"findings"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if len(got.Findings) != 1 || got.Findings[0].Code != "unknown-function" ||
		got.Findings[0].Severity != "warning" || got.Findings[0].Column != 8 {
		t.Errorf("findings = %+v", got.Findings)
	}
}

func TestJSONFormatter_Summary(t *testing.T) {
	var buf bytes.Buffer

	f := NewJSONFormatter(&buf)

	result := NewResult()
	result.Add(Event{Action: ActionPass, Path: "a.cypher"})
	result.Add(Event{Action: ActionFail, Path: "b.cypher"})
	result.Finish()

	_ = f.Summary(result)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if got["action"] != "summary" {
		t.Errorf("action = %v, want summary", got["action"])
	}

	total, ok := got["total"].(float64)
	if !ok || total != 2 {
		t.Errorf("total = %v, want 2", got["total"])
	}

	okVal, ok := got["ok"].(bool)
	if !ok || okVal {
		t.Errorf("ok = %v, want false", got["ok"])
	}
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	if _, ok := NewFormatter("json", &buf, nil).(*JSONFormatter); !ok {
		t.Error("json should build a JSONFormatter")
	}

	if _, ok := NewFormatter("verbose", &buf, DefaultStyles()).(*VerboseFormatter); !ok {
		t.Error("verbose should build a VerboseFormatter")
	}

	if _, ok := NewFormatter("", &buf, nil).(*DotsFormatter); !ok {
		t.Error("default should build a DotsFormatter")
	}
}

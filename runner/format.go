package runner

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/segmentio/encoding/json"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/analysis"
)

// Formatter renders check events and results.
type Formatter interface {
	Format(event Event, result *Result) error
	Summary(result *Result) error
}

// Summarizer is implemented by handlers that print a final summary.
type Summarizer interface {
	Summary(result *Result) error
}

// FormatHandler is a Handler that delegates to a Formatter.
type FormatHandler struct {
	formatter Formatter
	stderr    io.Writer
}

// NewFormatHandler creates a handler that formats events.
func NewFormatHandler(f Formatter, stderr io.Writer) *FormatHandler {
	return &FormatHandler{formatter: f, stderr: stderr}
}

// Event formats the event.
func (h *FormatHandler) Event(_ context.Context, event Event, result *Result) error {
	return h.formatter.Format(event, result)
}

// Err writes to stderr.
func (h *FormatHandler) Err(text string) error {
	_, err := h.stderr.Write([]byte(text + "\n"))

	return err
}

// Summary renders the final summary.
func (h *FormatHandler) Summary(result *Result) error {
	return h.formatter.Summary(result)
}

// writeDiagnostics prints each syntax error of fr with its source excerpt,
// indenting every line.
func writeDiagnostics(w io.Writer, indent string, fr *FileResult) {
	for _, e := range fr.Diagnostics {
		for line := range strings.SplitSeq(cypherparse.FormatError(fr.Source, e), "\n") {
			_, _ = fmt.Fprintf(w, "%s%s\n", indent, line)
		}
	}

	for _, d := range fr.Findings {
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, findingLine(fr.Path, d))
	}

	if fr.Error != nil {
		_, _ = fmt.Fprintf(w, "%s%v\n", indent, fr.Error)
	}
}

// findingLine renders a lint finding as "path:line:col: severity: message (code)".
func findingLine(path string, d analysis.Diagnostic) string {
	return fmt.Sprintf("%s:%d:%d: %s: %s (%s)",
		path, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message, d.Code)
}

func statementsLabel(n int) string {
	if n == 1 {
		return "1 statement"
	}

	return fmt.Sprintf("%d statements", n)
}

// -----------------------------------------------------------------------------
// Dots Formatter
// -----------------------------------------------------------------------------

// DotsFormatter is a minimal formatter that prints dots for progress.
type DotsFormatter struct {
	w     io.Writer
	count int
}

// NewDotsFormatter creates a dots formatter.
func NewDotsFormatter(w io.Writer) *DotsFormatter {
	return &DotsFormatter{w: w}
}

const lineWidth = 80

// Format prints a single character per terminal event.
func (d *DotsFormatter) Format(event Event, _ *Result) error {
	if !event.Action.IsTerminal() {
		return nil
	}

	var char string

	switch event.Action {
	case ActionPass:
		char = "."
	case ActionFail:
		char = "F"
	case ActionSkip:
		char = "S"
	case ActionError:
		char = "E"
	case ActionRun:
		return nil
	}

	_, err := fmt.Fprint(d.w, char)
	d.count++

	if d.count%lineWidth == 0 {
		_, _ = fmt.Fprintln(d.w)
	}

	return err
}

// Summary prints the final results.
func (d *DotsFormatter) Summary(result *Result) error {
	if d.count > 0 && d.count%lineWidth != 0 {
		_, _ = fmt.Fprintln(d.w)
	}

	_, _ = fmt.Fprintln(d.w)

	for _, fr := range result.FailedFiles() {
		switch fr.Status {
		case ActionFail:
			_, _ = fmt.Fprintf(d.w, "FAIL %s\n", fr.Path)
			writeDiagnostics(d.w, "  ", fr)
		case ActionError:
			_, _ = fmt.Fprintf(d.w, "ERROR %s: %v\n", fr.Path, fr.Error)
		case ActionPass, ActionSkip, ActionRun:
			// Not failures
		}

		_, _ = fmt.Fprintln(d.w)
	}

	status := "PASS"
	if !result.Ok() {
		status = "FAIL"
	}

	_, _ = fmt.Fprintf(d.w, "%s %d files, %d passed, %d failed, %d skipped in %s\n",
		status,
		result.Total,
		result.Passed,
		result.Failed,
		result.Skipped,
		result.Elapsed().Round(time.Millisecond),
	)

	return nil
}

// -----------------------------------------------------------------------------
// Verbose Formatter
// -----------------------------------------------------------------------------

// VerboseFormatter prints every file as it is checked, with the full
// diagnostics of failures.
type VerboseFormatter struct {
	w      io.Writer
	styles *Styles
}

// NewVerboseFormatter creates a verbose formatter. A nil styles prints
// plain text.
func NewVerboseFormatter(w io.Writer, styles *Styles) *VerboseFormatter {
	return &VerboseFormatter{w: w, styles: styles}
}

func (v *VerboseFormatter) status(style func(*Styles) lipgloss.Style, text string) string {
	return v.styles.render(style, text)
}

// Format prints each event as it occurs.
func (v *VerboseFormatter) Format(event Event, _ *Result) error {
	switch event.Action {
	case ActionRun:
		_, _ = fmt.Fprintf(v.w, "=== CHECK %s\n", event.Path)
	case ActionPass:
		_, _ = fmt.Fprintf(v.w, "--- %s: %s (%s, %s)\n",
			v.status(func(s *Styles) lipgloss.Style { return s.Pass }, "PASS"),
			event.Path, statementsLabel(event.Statements), event.Elapsed)
		writeDiagnostics(v.w, "    ", &FileResult{Path: event.Path, Findings: event.Findings})
	case ActionFail:
		_, _ = fmt.Fprintf(v.w, "--- %s: %s (%s)\n",
			v.status(func(s *Styles) lipgloss.Style { return s.Fail }, "FAIL"),
			event.Path, event.Elapsed)
		writeDiagnostics(v.w, "    ", &FileResult{
			Path:        event.Path,
			Source:      event.Source,
			Diagnostics: event.Diagnostics,
			Findings:    event.Findings,
			Error:       event.Error,
		})
	case ActionSkip:
		_, _ = fmt.Fprintf(v.w, "--- %s: %s\n",
			v.status(func(s *Styles) lipgloss.Style { return s.Skip }, "SKIP"),
			event.Path)
	case ActionError:
		_, _ = fmt.Fprintf(v.w, "--- %s: %s (%s)\n",
			v.status(func(s *Styles) lipgloss.Style { return s.Error }, "ERROR"),
			event.Path, event.Elapsed)
		_, _ = fmt.Fprintf(v.w, "    %v\n", event.Error)
	}

	return nil
}

// Summary prints the final results.
func (v *VerboseFormatter) Summary(result *Result) error {
	_, _ = fmt.Fprintln(v.w)

	status := v.status(func(s *Styles) lipgloss.Style { return s.Pass }, "PASS")
	if !result.Ok() {
		status = v.status(func(s *Styles) lipgloss.Style { return s.Fail }, "FAIL")
	}

	_, _ = fmt.Fprintf(v.w, "%s\n", status)
	_, _ = fmt.Fprintf(v.w, "  %d files, %d passed, %d failed, %d skipped, %d errors\n",
		result.Total,
		result.Passed,
		result.Failed,
		result.Skipped,
		result.Errors,
	)
	_, _ = fmt.Fprintf(v.w, "  %s, %d syntax errors\n", statementsLabel(result.Statements), result.SyntaxErrors())
	_, _ = fmt.Fprintf(v.w, "  elapsed: %s\n", result.Elapsed().Round(time.Millisecond))

	return nil
}

// -----------------------------------------------------------------------------
// JSON Formatter
// -----------------------------------------------------------------------------

// JSONFormatter outputs newline-delimited JSON events.
type JSONFormatter struct {
	enc *json.Encoder
}

// NewJSONFormatter creates a JSON formatter.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{enc: json.NewEncoder(w)}
}

type jsonEvent struct {
	Time        string           `json:"time"`
	Action      string           `json:"action"`
	Path        string           `json:"path"`
	Elapsed     float64          `json:"elapsed,omitempty"`
	Statements  int              `json:"statements,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
	Findings    []jsonFinding    `json:"findings,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type jsonFinding struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

type jsonDiagnostic struct {
	Kind    string `json:"kind"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Format outputs a JSON event.
func (j *JSONFormatter) Format(event Event, _ *Result) error {
	je := jsonEvent{
		Time:       event.Time.Format(time.RFC3339Nano),
		Action:     string(event.Action),
		Path:       event.Path,
		Statements: event.Statements,
	}

	if event.Action.IsTerminal() {
		je.Elapsed = event.Elapsed.Seconds()
	}

	for _, e := range event.Diagnostics {
		je.Diagnostics = append(je.Diagnostics, jsonDiagnostic{
			Kind:    e.Kind.String(),
			Line:    e.Span.Start.Line,
			Column:  e.Span.Start.Column,
			Message: e.Message,
		})
	}

	for _, d := range event.Findings {
		je.Findings = append(je.Findings, jsonFinding{
			Code:     d.Code,
			Severity: d.Severity.String(),
			Line:     d.Span.Start.Line,
			Column:   d.Span.Start.Column,
			Message:  d.Message,
		})
	}

	if event.Error != nil {
		je.Error = event.Error.Error()
	}

	return j.enc.Encode(je)
}

type jsonSummary struct {
	Action       string  `json:"action"`
	Total        int     `json:"total"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	Skipped      int     `json:"skipped"`
	Errors       int     `json:"errors"`
	Statements   int     `json:"statements"`
	SyntaxErrors int     `json:"syntax_errors"`
	Elapsed      float64 `json:"elapsed"`
	Ok           bool    `json:"ok"`
}

// Summary outputs the final JSON summary.
func (j *JSONFormatter) Summary(result *Result) error {
	return j.enc.Encode(jsonSummary{
		Action:       "summary",
		Total:        result.Total,
		Passed:       result.Passed,
		Failed:       result.Failed,
		Skipped:      result.Skipped,
		Errors:       result.Errors,
		Statements:   result.Statements,
		SyntaxErrors: result.SyntaxErrors(),
		Elapsed:      result.Elapsed().Seconds(),
		Ok:           result.Ok(),
	})
}

// NewFormatter creates a formatter by name. Styles only affect the verbose
// formatter.
func NewFormatter(name string, w io.Writer, styles *Styles) Formatter {
	switch name {
	case "verbose":
		return NewVerboseFormatter(w, styles)
	case "json":
		return NewJSONFormatter(w)
	default:
		return NewDotsFormatter(w)
	}
}

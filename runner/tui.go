package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/rlch/cypherparse/analysis"
)

// maxDetails caps the diagnostics shown under a failed file.
const maxDetails = 3

// TUIFormatter implements Formatter with an animated terminal UI.
type TUIFormatter struct {
	program  *tea.Program
	model    *tuiModel
	out      io.Writer
	done     chan struct{}
	mu       sync.Mutex
	finished bool
}

// NewTUIFormatter creates a TUI formatter showing files grouped by
// directory.
func NewTUIFormatter(w io.Writer, files []string) *TUIFormatter {
	model := newTUIModel(files)

	opts := []tea.ProgramOption{
		tea.WithOutput(w),
		tea.WithoutSignalHandler(),
		tea.WithAltScreen(),
	}

	if f, ok := w.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		opts = append(opts, tea.WithInput(nil))
	}

	return &TUIFormatter{
		program: tea.NewProgram(model, opts...),
		model:   model,
		out:     w,
		done:    make(chan struct{}),
	}
}

// Start begins the TUI event loop. Call this before running the checks.
func (t *TUIFormatter) Start() error {
	go func() {
		defer close(t.done)

		_, _ = t.program.Run()
	}()

	return nil
}

// Format sends an event to the TUI.
func (t *TUIFormatter) Format(event Event, _ *Result) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.finished {
		return nil
	}

	t.program.Send(checkEventMsg(event))

	return nil
}

// Summary stops the TUI and prints the final static view. The alternate
// screen keeps the animation out of the scrollback.
func (t *TUIFormatter) Summary(result *Result) error {
	t.mu.Lock()
	t.finished = true
	t.mu.Unlock()

	t.program.Send(doneMsg{result: result})
	t.program.Quit()
	<-t.done

	_, err := fmt.Fprintln(t.out, t.model.FinalView())

	return err
}

// -----------------------------------------------------------------------------
// Tree Model
// -----------------------------------------------------------------------------

// nodeStatus tracks the check state of a file.
type nodeStatus int

const (
	statusPending nodeStatus = iota
	statusRunning
	statusPass
	statusFail
	statusSkip
	statusError
)

// fileNode is a checked file.
type fileNode struct {
	name       string
	status     nodeStatus
	elapsed    time.Duration
	statements int
	details    []string
	hidden     int
}

// dirNode groups the files of one directory.
type dirNode struct {
	path  string
	files []*fileNode
}

func buildTree(files []string) ([]*dirNode, map[string]*fileNode) {
	idx := make(map[string]*fileNode, len(files))
	byDir := make(map[string]*dirNode)

	var dirs []*dirNode

	for _, path := range files {
		if _, dup := idx[path]; dup {
			continue
		}

		dir := filepath.Dir(path)

		d, ok := byDir[dir]
		if !ok {
			d = &dirNode{path: dir}
			byDir[dir] = d
			dirs = append(dirs, d)
		}

		node := &fileNode{name: filepath.Base(path)}
		d.files = append(d.files, node)
		idx[path] = node
	}

	slices.SortFunc(dirs, func(a, b *dirNode) int { return strings.Compare(a.path, b.path) })

	for _, d := range dirs {
		slices.SortFunc(d.files, func(a, b *fileNode) int { return strings.Compare(a.name, b.name) })
	}

	return dirs, idx
}

// -----------------------------------------------------------------------------
// Bubbletea Model
// -----------------------------------------------------------------------------

// tuiModel is the bubbletea model for the check UI.
type tuiModel struct {
	styles  *Styles
	spinner spinner.Model

	width  int
	height int

	dirs []*dirNode
	idx  map[string]*fileNode

	counters counters

	startTime time.Time
	endTime   time.Time

	finalResult *Result
	isDone      bool
}

type counters struct {
	total   int
	running int
	passed  int
	failed  int
	skipped int
	errors  int
}

// Messages
type (
	tickMsg       time.Time
	checkEventMsg Event
	doneMsg       struct{ result *Result }
)

func newTUIModel(files []string) *tuiModel {
	styles := DefaultStyles()

	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: SpinnerFrames(),
		FPS:    time.Second / 10,
	}
	s.Style = styles.Running

	dirs, idx := buildTree(files)

	return &tuiModel{
		styles:    styles,
		spinner:   s,
		dirs:      dirs,
		idx:       idx,
		startTime: time.Now(),
		width:     80,
		height:    24,
		counters:  counters{total: len(idx)},
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.tick(),
	)
}

func (m *tuiModel) tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tickMsg:
		if !m.isDone {
			cmds = append(cmds, m.tick())
		}

	case spinner.TickMsg:
		if !m.isDone {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case checkEventMsg:
		m.handleEvent(Event(msg))

	case doneMsg:
		m.isDone = true
		m.endTime = time.Now()
		m.finalResult = msg.result
	}

	return m, tea.Batch(cmds...)
}

func (m *tuiModel) handleEvent(event Event) {
	node, ok := m.idx[event.Path]
	if !ok {
		return
	}

	if node.status == statusRunning && event.Action.IsTerminal() {
		m.counters.running--
	}

	node.elapsed = event.Elapsed
	node.statements = event.Statements

	switch event.Action {
	case ActionRun:
		node.status = statusRunning
		m.counters.running++

	case ActionPass:
		node.status = statusPass
		m.counters.passed++

	case ActionFail:
		node.status = statusFail
		m.counters.failed++

		var details []string

		for _, e := range event.Diagnostics {
			details = append(details, fmt.Sprintf("%d:%d: %s", e.Span.Start.Line, e.Span.Start.Column, e.Message))
		}

		for _, d := range event.Findings {
			if d.Severity == analysis.SeverityError {
				details = append(details, fmt.Sprintf("%d:%d: %s (%s)", d.Span.Start.Line, d.Span.Start.Column, d.Message, d.Code))
			}
		}

		if len(details) > maxDetails {
			node.hidden = len(details) - maxDetails
			details = details[:maxDetails]
		}

		node.details = append(node.details, details...)

		if event.Error != nil {
			node.details = append(node.details, event.Error.Error())
		}

	case ActionSkip:
		node.status = statusSkip
		m.counters.skipped++

	case ActionError:
		node.status = statusError
		m.counters.errors++

		if event.Error != nil {
			node.details = append(node.details, event.Error.Error())
		}
	}
}

// clearEOL is the ANSI escape sequence to clear from cursor to end of line.
const clearEOL = "\033[K"

// FinalView renders the complete final output for printing after the TUI
// exits.
func (m *tuiModel) FinalView() string {
	return strings.Join(m.lines(true), "\n")
}

func (m *tuiModel) View() string {
	lines := m.lines(m.isDone)

	for i := range lines {
		lines[i] += clearEOL
	}

	return strings.Join(lines, "\n") + "\n"
}

func (m *tuiModel) lines(summary bool) []string {
	lines := []string{
		m.renderHeader(),
		m.renderProgress(),
		"",
	}

	for _, d := range m.dirs {
		lines = append(lines, m.renderDir(d)...)
	}

	if summary {
		lines = append(lines, "", m.renderSummary())
	}

	return lines
}

func (m *tuiModel) renderHeader() string {
	logo := m.styles.Bold.Render("cypher")
	subtitle := m.styles.Dim.Render(" check")

	var status string

	switch {
	case m.isDone && (m.counters.failed > 0 || m.counters.errors > 0):
		status = m.styles.Fail.Render("FAIL")
	case m.isDone:
		status = m.styles.Pass.Render("PASS")
	case m.counters.running > 0:
		status = m.styles.Running.Render(fmt.Sprintf("checking %d", m.counters.running))
	default:
		status = m.styles.Dim.Render("starting")
	}

	return fmt.Sprintf("%s%s  %s", logo, subtitle, status)
}

func (m *tuiModel) renderProgress() string {
	done := m.counters.passed + m.counters.failed + m.counters.skipped + m.counters.errors

	total := max(m.counters.total, 1)
	pct := float64(done) / float64(total)

	elapsed := time.Since(m.startTime)
	if !m.endTime.IsZero() {
		elapsed = m.endTime.Sub(m.startTime)
	}

	elapsedStr := m.styles.Dim.Render(fmt.Sprintf("[%s]", formatDuration(elapsed)))

	barWidth := 30
	filled := min(int(pct*float64(barWidth)), barWidth)
	filledChar, emptyChar := ProgressChars()

	bar := m.styles.ProgressFilled.Render(strings.Repeat(filledChar, filled)) +
		m.styles.ProgressEmpty.Render(strings.Repeat(emptyChar, barWidth-filled))

	counter := m.styles.Muted.Render(fmt.Sprintf("%d/%d", done, m.counters.total))

	return fmt.Sprintf("%s %s %s", elapsedStr, bar, counter)
}

func (m *tuiModel) renderDir(d *dirNode) []string {
	lines := []string{m.styles.Path.Render(d.path)}

	for i, f := range d.files {
		branch, indent := "├─", "│ "
		if i == len(d.files)-1 {
			branch, indent = "╰─", "  "
		}

		line := m.styles.Dim.Render(branch+" ") + m.renderSymbol(f.status) + " " + f.name

		if f.status != statusPending && f.status != statusRunning && f.status != statusSkip {
			line += m.styles.Dim.Render(fmt.Sprintf("  [%s, %s]", statementsLabel(f.statements), formatDuration(f.elapsed)))
		}

		lines = append(lines, line)

		style := m.styles.Fail
		if f.status == statusError {
			style = m.styles.Error
		}

		for _, detail := range f.details {
			lines = append(lines, m.styles.Dim.Render(indent+"   ")+style.Render(detail))
		}

		if f.hidden > 0 {
			lines = append(lines, m.styles.Dim.Render(fmt.Sprintf("%s   … %d more", indent, f.hidden)))
		}
	}

	return append(lines, "")
}

func (m *tuiModel) renderSymbol(status nodeStatus) string {
	switch status {
	case statusPending:
		return m.styles.Dim.Render("⋯")
	case statusRunning:
		return m.spinner.View()
	case statusPass:
		return m.styles.Pass.Render(m.styles.SymbolPass)
	case statusFail:
		return m.styles.Fail.Render(m.styles.SymbolFail)
	case statusSkip:
		return m.styles.Skip.Render(m.styles.SymbolSkip)
	case statusError:
		return m.styles.Error.Render(m.styles.SymbolFail)
	default:
		return " "
	}
}

func (m *tuiModel) renderSummary() string {
	var parts []string

	if m.counters.passed > 0 {
		parts = append(parts, m.styles.Pass.Render(fmt.Sprintf("%d passed", m.counters.passed)))
	}

	if m.counters.failed > 0 {
		parts = append(parts, m.styles.Fail.Render(fmt.Sprintf("%d failed", m.counters.failed)))
	}

	if m.counters.skipped > 0 {
		parts = append(parts, m.styles.Skip.Render(fmt.Sprintf("%d skipped", m.counters.skipped)))
	}

	if m.counters.errors > 0 {
		parts = append(parts, m.styles.Error.Render(fmt.Sprintf("%d errors", m.counters.errors)))
	}

	if len(parts) == 0 {
		return m.styles.Dim.Render("  No files checked")
	}

	total := m.styles.Muted.Render(fmt.Sprintf("(%d total)", m.counters.total))
	sep := m.styles.Dim.Render(" │ ")

	return "  " + strings.Join(parts, sep) + " " + total
}

func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}

	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}

	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}

// -----------------------------------------------------------------------------
// TUIHandler - Bridges TUI to Handler interface
// -----------------------------------------------------------------------------

// TUIHandler wraps TUIFormatter to implement Handler.
type TUIHandler struct {
	formatter *TUIFormatter
	stderr    io.Writer
}

// NewTUIHandler creates a handler that draws files on w.
func NewTUIHandler(w, stderr io.Writer, files []string) *TUIHandler {
	return &TUIHandler{
		formatter: NewTUIFormatter(w, files),
		stderr:    stderr,
	}
}

// Start initializes the TUI.
func (h *TUIHandler) Start() error {
	return h.formatter.Start()
}

// Event sends an event to the TUI.
func (h *TUIHandler) Event(_ context.Context, event Event, result *Result) error {
	return h.formatter.Format(event, result)
}

// Err writes to stderr.
func (h *TUIHandler) Err(text string) error {
	_, err := h.stderr.Write([]byte(text + "\n"))

	return err
}

// Summary renders the final summary.
func (h *TUIHandler) Summary(result *Result) error {
	return h.formatter.Summary(result)
}

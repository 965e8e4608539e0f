package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/format"
	"github.com/rlch/cypherparse/parser"
	"github.com/rlch/cypherparse/runner"
)

const (
	promptFirst    = "cypher> "
	promptContinue = "   ...> "
	replHelp       = "Statements end with ';'. :ast toggles tree output, :quit exits."
)

func replCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "Interactively parse and format Cypher",
		Action: runREPL,
	}
}

func runREPL(_ context.Context, _ *cli.Command) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	model := newREPLModel(cfg.ParserOptions(), cfg.FormatOptions())

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()

	return err
}

// replModel reads statements line by line and echoes them formatted, or
// their diagnostics.
type replModel struct {
	input  textinput.Model
	output viewport.Model
	styles *runner.Styles

	parserOpts []parser.Option
	formatOpts format.Options

	buffer  []string
	history strings.Builder
	dumpAST bool
}

func newREPLModel(parserOpts []parser.Option, formatOpts format.Options) *replModel {
	input := textinput.New()
	input.Prompt = promptFirst
	input.Placeholder = "MATCH (n) RETURN n;"
	input.Focus()

	m := &replModel{
		input:      input,
		output:     viewport.New(80, 20),
		styles:     runner.DefaultStyles(),
		parserOpts: parserOpts,
		formatOpts: formatOpts,
	}

	m.print(m.styles.Dim.Render(replHelp))

	return m
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.output.Width = msg.Width
		m.output.Height = max(msg.Height-2, 1)
		m.output.GotoBottom()

		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.submit()
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.output, cmd = m.output.Update(msg)

			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m *replModel) View() string {
	return m.output.View() + "\n" + m.input.View()
}

// submit consumes the input line. Lines accumulate until one ends with a
// semicolon or a blank line flushes the buffer.
func (m *replModel) submit() tea.Cmd {
	line := m.input.Value()
	m.input.Reset()

	trimmed := strings.TrimSpace(line)

	if len(m.buffer) == 0 {
		switch trimmed {
		case "":
			return nil
		case ":quit", ":q":
			return tea.Quit
		case ":ast":
			m.dumpAST = !m.dumpAST
			if m.dumpAST {
				m.print(m.styles.Dim.Render("tree output on"))
			} else {
				m.print(m.styles.Dim.Render("tree output off"))
			}

			return nil
		case ":help":
			m.print(m.styles.Dim.Render(replHelp))

			return nil
		}
	}

	if trimmed != "" {
		m.buffer = append(m.buffer, line)
	}

	if trimmed != "" && !strings.HasSuffix(trimmed, ";") {
		m.input.Prompt = promptContinue

		return nil
	}

	src := strings.Join(m.buffer, "\n")
	m.buffer = nil
	m.input.Prompt = promptFirst

	if strings.TrimSpace(src) != "" {
		m.evaluate(src)
	}

	return nil
}

func (m *replModel) evaluate(src string) {
	for i, line := range strings.Split(src, "\n") {
		prompt := promptFirst
		if i > 0 {
			prompt = promptContinue
		}

		m.print(m.styles.Muted.Render(prompt + line))
	}

	f := cypherparse.Parse("<repl>", src, m.parserOpts...)

	for _, e := range f.Errors {
		m.print(m.styles.Fail.Render(cypherparse.FormatError(src, e)))
	}

	if !f.OK() {
		return
	}

	for _, d := range analysis.Analyze(f.Statements) {
		line := fmt.Sprintf("%s:%d:%d: %s: %s (%s)",
			f.Path, d.Span.Start.Line, d.Span.Start.Column, d.Severity, d.Message, d.Code)
		if d.Severity == analysis.SeverityError {
			m.print(m.styles.Fail.Render(line))
		} else {
			m.print(m.styles.Skip.Render(line))
		}
	}

	if m.dumpAST {
		for _, stmt := range f.Statements {
			m.print(strings.TrimSuffix(format.Dump(stmt), "\n"))
		}

		return
	}

	m.print(strings.TrimSuffix(format.Format(f.Statements, m.formatOpts), "\n"))
}

func (m *replModel) print(text string) {
	m.history.WriteString(text)
	m.history.WriteString("\n")

	m.output.SetContent(m.history.String())
	m.output.GotoBottom()
}

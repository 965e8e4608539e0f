package runner

import "github.com/charmbracelet/lipgloss"

// Semantic colors.
var (
	colorPass    = lipgloss.Color("#10b981") // green-500
	colorFail    = lipgloss.Color("#ef4444") // red-500
	colorSkip    = lipgloss.Color("#eab308") // yellow-500
	colorRunning = lipgloss.Color("#06b6d4") // cyan-500

	colorDim    = lipgloss.Color("#6b7280") // gray-500
	colorMuted  = lipgloss.Color("#9ca3af") // gray-400
	colorBorder = lipgloss.Color("#374151") // gray-700
	colorAccent = lipgloss.Color("#3b82f6") // blue-500
)

// Styles holds the lipgloss styles used by the terminal formatters.
type Styles struct {
	Pass    lipgloss.Style
	Fail    lipgloss.Style
	Skip    lipgloss.Style
	Running lipgloss.Style
	Error   lipgloss.Style

	Dim   lipgloss.Style
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Path  lipgloss.Style

	SymbolPass string
	SymbolFail string
	SymbolSkip string

	ProgressFilled lipgloss.Style
	ProgressEmpty  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	return &Styles{
		Pass:    lipgloss.NewStyle().Foreground(colorPass).Bold(true),
		Fail:    lipgloss.NewStyle().Foreground(colorFail).Bold(true),
		Skip:    lipgloss.NewStyle().Foreground(colorSkip).Bold(true),
		Running: lipgloss.NewStyle().Foreground(colorRunning).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colorFail).Bold(true),

		Dim:   lipgloss.NewStyle().Foreground(colorDim),
		Muted: lipgloss.NewStyle().Foreground(colorMuted),
		Bold:  lipgloss.NewStyle().Bold(true),
		Path:  lipgloss.NewStyle().Foreground(colorAccent),

		SymbolPass: "✓",
		SymbolFail: "✗",
		SymbolSkip: "↓",

		ProgressFilled: lipgloss.NewStyle().Foreground(colorAccent),
		ProgressEmpty:  lipgloss.NewStyle().Foreground(colorBorder),
	}
}

// render applies style to text. A nil *Styles leaves text unstyled.
func (s *Styles) render(style func(*Styles) lipgloss.Style, text string) string {
	if s == nil {
		return text
	}

	return style(s).Render(text)
}

// SpinnerFrames returns the braille spinner animation frames.
func SpinnerFrames() []string {
	return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
}

// ProgressChars returns the progress bar characters.
func ProgressChars() (string, string) {
	return "█", "░"
}

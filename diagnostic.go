package cypherparse

import (
	"strings"
	"unicode/utf8"

	"github.com/rlch/cypherparse/parser"
)

// FormatError renders err followed by the offending source line and a caret
// under the offending text:
//
//	1:10: unexpected 'RETURN', expected one of: ...
//	MATCH (n RETURN n
//	         ^~~~~~
func FormatError(src string, err *parser.SyntaxError) string {
	var b strings.Builder

	b.WriteString(err.Error())

	start := err.Span.Start
	if start.Line < 1 {
		return b.String()
	}

	lines := strings.Split(src, "\n")
	if start.Line > len(lines) {
		return b.String()
	}

	line := strings.TrimRight(lines[start.Line-1], "\r")
	b.WriteString("\n")
	b.WriteString(line)
	b.WriteString("\n")

	// Keep tabs in the padding so the caret lines up with the source.
	col := 1
	for _, r := range line {
		if col >= start.Column {
			break
		}

		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}

		col++
	}

	b.WriteString("^")

	width := caretWidth(line, err)
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}

	return b.String()
}

// caretWidth is the number of runes the error covers on its first line.
func caretWidth(line string, err *parser.SyntaxError) int {
	start, end := err.Span.Start, err.Span.End
	lineLen := utf8.RuneCountInString(line)

	var width int
	if end.Line == start.Line {
		width = end.Column - start.Column
	} else {
		width = lineLen - start.Column + 1
	}

	return max(1, min(width, lineLen-start.Column+1))
}

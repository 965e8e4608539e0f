package scanner

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrInvalidEscape is returned by Unquote for malformed escape sequences.
var ErrInvalidEscape = errors.New("scanner: invalid escape sequence")

// Unquote decodes a quoted string literal as produced by the scanner.
func Unquote(raw string) (string, error) {
	if len(raw) < 2 {
		return "", ErrUnterminatedString
	}

	body := raw[1 : len(raw)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, nil
	}

	var b strings.Builder

	b.Grow(len(body))

	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			b.WriteByte(c)

			continue
		}

		i++

		switch body[i] {
		case '\\':
			b.WriteByte('\\')
		case '\'':
			b.WriteByte('\'')
		case '"':
			b.WriteByte('"')
		case 'b', 'B':
			b.WriteByte('\b')
		case 'f', 'F':
			b.WriteByte('\f')
		case 'n', 'N':
			b.WriteByte('\n')
		case 'r', 'R':
			b.WriteByte('\r')
		case 't', 'T':
			b.WriteByte('\t')
		case 'u', 'U':
			width := 4
			if body[i] == 'U' && isHexRun(body[i+1:], 8) {
				width = 8
			}

			if !isHexRun(body[i+1:], width) {
				return "", ErrInvalidEscape
			}

			n, err := strconv.ParseUint(body[i+1:i+1+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(n)) {
				return "", ErrInvalidEscape
			}

			b.WriteRune(rune(n))

			i += width
		default:
			// Unknown escapes keep the backslash.
			b.WriteByte('\\')
			b.WriteByte(body[i])
		}
	}

	return b.String(), nil
}

func isHexRun(s string, n int) bool {
	if len(s) < n {
		return false
	}

	for i := range n {
		if !isHexDigit(rune(s[i])) {
			return false
		}
	}

	return true
}

// Quote renders s as a single-quoted Cypher string literal.
func Quote(s string) string {
	var b strings.Builder

	b.Grow(len(s) + 2)
	b.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			b.WriteRune(r)
		}
	}

	b.WriteByte('\'')

	return b.String()
}

// UnescapeName strips the backticks from an escaped name and collapses
// doubled backticks. Unescaped names are returned unchanged.
func UnescapeName(raw string) string {
	if len(raw) < 2 || raw[0] != '`' || raw[len(raw)-1] != '`' {
		return raw
	}

	return strings.ReplaceAll(raw[1:len(raw)-1], "``", "`")
}

// EscapeName wraps name in backticks, doubling any backtick inside it.
func EscapeName(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// IsPlainName reports whether name scans as a single unescaped identifier.
func IsPlainName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if i == 0 && !isIdentStart(r) {
			return false
		}

		if i > 0 && !isIdentContinue(r) {
			return false
		}
	}

	return true
}

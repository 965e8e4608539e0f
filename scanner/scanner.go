// Package scanner turns Cypher source text into participle tokens.
package scanner

import (
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/token"
)

// Scanner errors.
var (
	ErrUnterminatedString  = &Error{msg: "unterminated string literal"}
	ErrUnterminatedName    = &Error{msg: "unterminated escaped name"}
	ErrUnterminatedComment = &Error{msg: "unterminated comment"}
	ErrUnexpectedCharacter = &Error{msg: "unexpected character"}
)

// Error is a scanner error with position.
type Error struct {
	msg string
	pos lexer.Position
	ch  rune
}

func (e *Error) Error() string {
	if e.ch != 0 {
		return e.pos.String() + ": " + e.msg + ": " + string(e.ch)
	}

	return e.pos.String() + ": " + e.msg
}

// Position returns where the error occurred.
func (e *Error) Position() lexer.Position {
	return e.pos
}

// Message returns the error text without position.
func (e *Error) Message() string {
	if e.ch != 0 {
		return e.msg + ": " + string(e.ch)
	}

	return e.msg
}

// Is matches errors created from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.msg == e.msg
}

func (e *Error) withPos(pos lexer.Position) *Error {
	return &Error{msg: e.msg, pos: pos, ch: e.ch}
}

func (e *Error) withChar(ch rune) *Error {
	return &Error{msg: e.msg, pos: e.pos, ch: ch}
}

// definition implements lexer.Definition for Cypher.
type definition struct {
	symbols map[string]lexer.TokenType
}

// New returns a lexer.Definition for Cypher source.
//
//nolint:ireturn // participle consumes the interface.
func New() lexer.Definition {
	return newDefinition()
}

func newDefinition() *definition {
	symbols := map[string]lexer.TokenType{
		"EOF":          token.EOF,
		"Comment":      token.Comment,
		"Whitespace":   token.Whitespace,
		"Ident":        token.Ident,
		"EscapedIdent": token.EscapedIdent,
		"String":       token.StringLiteral,
		"Integer":      token.IntegerLiteral,
		"Hex":          token.HexLiteral,
		"Octal":        token.OctalLiteral,
		"Float":        token.FloatLiteral,
	}

	for _, word := range token.Keywords() {
		k, _ := token.Lookup(word)
		symbols[word] = k
	}

	return &definition{symbols: symbols}
}

// Symbols returns the mapping of symbol names to token types.
func (d *definition) Symbols() map[string]lexer.TokenType {
	return d.symbols
}

// Lex creates a new Lexer for the given reader.
//
//nolint:ireturn // Required by participle's lexer.Definition interface.
func (d *definition) Lex(filename string, r io.Reader) (lexer.Lexer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return d.LexBytes(filename, data)
}

// LexBytes implements lexer.BytesDefinition.
//
//nolint:ireturn // Required by participle's lexer.BytesDefinition interface.
func (d *definition) LexBytes(filename string, data []byte) (lexer.Lexer, error) {
	return newState(filename, string(data)), nil
}

// LexString implements lexer.StringDefinition.
//
//nolint:ireturn // Required by participle's lexer.StringDefinition interface.
func (d *definition) LexString(filename string, input string) (lexer.Lexer, error) {
	return newState(filename, input), nil
}

// Tokenize scans src and returns its significant tokens, terminated by an EOF
// token. Comments and whitespace are dropped. On error the tokens scanned so
// far are returned with an EOF token at the failure point.
func Tokenize(filename, src string) ([]lexer.Token, error) {
	s := newState(filename, src)
	tokens := make([]lexer.Token, 0, len(src)/4+1)

	for {
		tok, err := s.Next()
		if err != nil {
			return append(tokens, lexer.EOFToken(s.pos())), err
		}

		switch tok.Type {
		case token.Comment, token.Whitespace:
			continue
		case token.EOF:
			return append(tokens, tok), nil
		}

		tokens = append(tokens, tok)
	}
}

// state holds the state for scanning.
type state struct {
	filename string
	input    string
	offset   int
	line     int
	col      int
}

func newState(filename, input string) *state {
	return &state{
		filename: filename,
		input:    input,
		line:     1,
		col:      1,
	}
}

// Next returns the next token.
func (l *state) Next() (lexer.Token, error) {
	if l.eof() {
		return lexer.EOFToken(l.pos()), nil
	}

	start := l.pos()
	r := l.peek()

	switch {
	case unicode.IsSpace(r):
		for !l.eof() && unicode.IsSpace(l.peek()) {
			l.advance()
		}

		return l.token(token.Whitespace, start), nil

	case r == '/' && l.peekAt(1) == '/':
		for !l.eof() && l.peek() != '\n' {
			l.advance()
		}

		return l.token(token.Comment, start), nil

	case r == '/' && l.peekAt(1) == '*':
		return l.scanBlockComment(start)

	case r == '`':
		return l.scanEscapedName(start)

	case r == '"' || r == '\'':
		return l.scanString(start, r)

	case isDigit(r) || (r == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber(start), nil

	case isIdentStart(r):
		l.advance()

		for !l.eof() && isIdentContinue(l.peek()) {
			l.advance()
		}

		tok := l.token(token.Ident, start)
		if k, ok := token.Lookup(tok.Value); ok {
			tok.Type = k
		}

		return tok, nil
	}

	if tok, ok := l.scanOperator(start); ok {
		return tok, nil
	}

	l.advance()

	return lexer.Token{}, ErrUnexpectedCharacter.withPos(start).withChar(r)
}

func (l *state) pos() lexer.Position {
	return lexer.Position{
		Filename: l.filename,
		Offset:   l.offset,
		Line:     l.line,
		Column:   l.col,
	}
}

func (l *state) eof() bool {
	return l.offset >= len(l.input)
}

func (l *state) peek() rune {
	if l.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.offset:])

	return r
}

// peekAt returns the rune n runes ahead of the current one.
func (l *state) peekAt(n int) rune {
	off := l.offset
	for i := 0; i < n; i++ {
		if off >= len(l.input) {
			return 0
		}

		_, size := utf8.DecodeRuneInString(l.input[off:])
		off += size
	}

	if off >= len(l.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(l.input[off:])

	return r
}

//nolint:unparam // Return value useful for debugging.
func (l *state) advance() rune {
	if l.eof() {
		return 0
	}

	r, size := utf8.DecodeRuneInString(l.input[l.offset:])
	l.offset += size

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r
}

func (l *state) match(s string) bool {
	return strings.HasPrefix(l.input[l.offset:], s)
}

func (l *state) token(typ lexer.TokenType, start lexer.Position) lexer.Token {
	return lexer.Token{
		Type:  typ,
		Value: l.input[start.Offset:l.offset],
		Pos:   start,
	}
}

func (l *state) scanBlockComment(start lexer.Position) (lexer.Token, error) {
	l.advance() // /
	l.advance() // *

	for !l.eof() {
		if l.match("*/") {
			l.advance()
			l.advance()

			return l.token(token.Comment, start), nil
		}

		l.advance()
	}

	return lexer.Token{}, ErrUnterminatedComment.withPos(start)
}

func (l *state) scanEscapedName(start lexer.Position) (lexer.Token, error) {
	l.advance() // opening `

	for !l.eof() {
		if l.peek() == '`' {
			l.advance()

			// `` inside an escaped name stands for a single backtick.
			if l.peek() == '`' {
				l.advance()

				continue
			}

			return l.token(token.EscapedIdent, start), nil
		}

		l.advance()
	}

	return lexer.Token{}, ErrUnterminatedName.withPos(start)
}

func (l *state) scanString(start lexer.Position, quote rune) (lexer.Token, error) {
	l.advance() // opening quote

	for !l.eof() {
		ch := l.peek()
		if ch == '\\' && l.peekAt(1) != 0 {
			l.advance() // backslash
			l.advance() // escaped char

			continue
		}

		if ch == quote {
			l.advance() // closing quote

			return l.token(token.StringLiteral, start), nil
		}

		l.advance()
	}

	return lexer.Token{}, ErrUnterminatedString.withPos(start)
}

// operators lists multi-character operators before their prefixes.
var operators = []struct {
	text string
	kind lexer.TokenType
}{
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{"<>", token.Neq},
	{"!=", token.InvalidNeq},
	{"<=", token.Le},
	{">=", token.Ge},
	{"=~", token.RegexMatch},
	{"+=", token.PlusEq},
	{"||", token.Concat},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{",", token.Comma},
	{";", token.Semicolon},
	{".", token.Dot},
	{":", token.Colon},
	{"$", token.Dollar},
	{"|", token.Bar},
	{"&", token.Ampersand},
	{"!", token.Bang},
	{"%", token.Percent},
	{"?", token.Question},
	{"=", token.Eq},
	{"<", token.Lt},
	{">", token.Gt},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"^", token.Caret},
}

// Unicode dashes and angle brackets accepted in relationship arrows.
const (
	arrowLines      = "\u00AD\u2010\u2011\u2012\u2013\u2014\u2015\uFE58\uFE63\uFF0D"
	arrowLeftHeads  = "\u27E8\u3008\uFE64\uFF1C"
	arrowRightHeads = "\u27E9\u3009\uFE65\uFF1E"
)

func (l *state) scanOperator(start lexer.Position) (lexer.Token, bool) {
	for _, op := range operators {
		if l.match(op.text) {
			for range len(op.text) {
				l.advance()
			}

			return l.token(op.kind, start), true
		}
	}

	switch r := l.peek(); {
	case strings.ContainsRune(arrowLines, r):
		l.advance()

		return l.token(token.ArrowLine, start), true
	case strings.ContainsRune(arrowLeftHeads, r):
		l.advance()

		return l.token(token.ArrowLeftHead, start), true
	case strings.ContainsRune(arrowRightHeads, r):
		l.advance()

		return l.token(token.ArrowRightHead, start), true
	}

	return lexer.Token{}, false
}

func (l *state) scanNumber(start lexer.Position) lexer.Token {
	if l.peek() == '0' {
		switch l.peekAt(1) {
		case 'x', 'X':
			l.advance() // 0
			l.advance() // x

			for !l.eof() && (isHexDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}

			return l.token(token.HexLiteral, start)

		case 'o', 'O':
			l.advance() // 0
			l.advance() // o

			for !l.eof() && (isOctalDigit(l.peek()) || l.peek() == '_') {
				l.advance()
			}

			return l.token(token.OctalLiteral, start)
		}
	}

	kind := token.IntegerLiteral

	for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
		l.advance()
	}

	// Fractional part; "1..2" keeps the range operator intact.
	if l.peek() == '.' && isDigit(l.peekAt(1)) {
		kind = token.FloatLiteral

		l.advance() // .

		for !l.eof() && (isDigit(l.peek()) || l.peek() == '_') {
			l.advance()
		}
	}

	// Exponent, only when digits follow.
	if e := l.peek(); e == 'e' || e == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			kind = token.FloatLiteral

			l.advance() // e/E

			if l.peek() == '+' || l.peek() == '-' {
				l.advance()
			}

			for !l.eof() && isDigit(l.peek()) {
				l.advance()
			}
		}
	}

	tok := l.token(kind, start)
	if kind == token.IntegerLiteral && len(tok.Value) > 1 && tok.Value[0] == '0' {
		tok.Type = token.OctalLiteral
	}

	return tok
}

// Character helpers.

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isOctalDigit(r rune) bool {
	return r >= '0' && r <= '7'
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// Sentinel errors matched by errors.Is against a *SyntaxError of the
// corresponding kind.
var (
	ErrUnexpectedToken       = errors.New("parser: unexpected token")
	ErrAmbiguousConstruct    = errors.New("parser: internal error: ambiguous construct")
	ErrNestingTooDeep        = errors.New("parser: expression too deeply nested")
	ErrUnterminatedConstruct = errors.New("parser: unterminated construct")
	ErrInvalidToken          = errors.New("parser: invalid token")
)

// ErrorKind classifies a SyntaxError.
type ErrorKind int

const (
	// UnexpectedToken means the current token cannot continue the input.
	UnexpectedToken ErrorKind = iota
	// AmbiguousConstruct means a lookahead decision disagreed with the rule
	// it selected. It indicates a parser bug.
	AmbiguousConstruct
	// NestingTooDeep means the nesting limit was exceeded.
	NestingTooDeep
	// UnterminatedConstruct means a closing bracket or keyword is missing
	// at the end of a statement.
	UnterminatedConstruct
	// InvalidToken means the scanner could not tokenize the input.
	InvalidToken
)

var kindSentinels = [...]error{
	UnexpectedToken:       ErrUnexpectedToken,
	AmbiguousConstruct:    ErrAmbiguousConstruct,
	NestingTooDeep:        ErrNestingTooDeep,
	UnterminatedConstruct: ErrUnterminatedConstruct,
	InvalidToken:          ErrInvalidToken,
}

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "UnexpectedToken"
	case AmbiguousConstruct:
		return "AmbiguousConstruct"
	case NestingTooDeep:
		return "NestingTooDeep"
	case UnterminatedConstruct:
		return "UnterminatedConstruct"
	case InvalidToken:
		return "InvalidToken"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Severity tells whether parsing continued after an error.
type Severity int

const (
	// Recoverable errors abandon the current statement only.
	Recoverable Severity = iota
	// Fatal errors stop parsing.
	Fatal
)

func (s Severity) String() string {
	if s == Fatal {
		return "fatal"
	}

	return "recoverable"
}

// SyntaxError describes one syntax error.
type SyntaxError struct {
	Kind     ErrorKind
	Severity Severity
	// Token is the offending token.
	Token lexer.Token
	Span  ast.Span
	// Expected describes the tokens that would have been accepted.
	Expected []string
	Message  string
	// Open is the opening token of an unterminated construct.
	Open *lexer.Token
}

// Error formats the error as "line:col: message".
func (e *SyntaxError) Error() string {
	pos := e.Span.Start

	if pos.Filename != "" {
		return fmt.Sprintf("%s:%d:%d: %s", pos.Filename, pos.Line, pos.Column, e.Message)
	}

	return fmt.Sprintf("%d:%d: %s", pos.Line, pos.Column, e.Message)
}

// Unwrap returns the sentinel for the error's kind.
func (e *SyntaxError) Unwrap() error {
	return kindSentinels[e.Kind]
}

// Position returns the start of the offending token.
func (e *SyntaxError) Position() lexer.Position {
	return e.Span.Start
}

// bailout carries a SyntaxError from the failing rule to the statement
// boundary.
type bailout struct {
	err *SyntaxError
}

func spanOf(tok lexer.Token) ast.Span {
	return ast.Span{Start: tok.Pos, End: endOf(tok)}
}

// endOf returns the position just past tok.
func endOf(tok lexer.Token) lexer.Position {
	end := tok.Pos
	end.Offset += len(tok.Value)

	for _, r := range tok.Value {
		if r == '\n' {
			end.Line++
			end.Column = 1
		} else {
			end.Column++
		}
	}

	return end
}

// describe renders tok for an error message.
func describe(tok lexer.Token) string {
	if tok.Type == token.EOF {
		return "end of input"
	}

	return "'" + tok.Value + "'"
}

func expectedMessage(expected []string) string {
	switch len(expected) {
	case 0:
		return ""
	case 1:
		return ", expected " + expected[0]
	default:
		return ", expected one of: " + strings.Join(expected, ", ")
	}
}

// expectedNames converts kinds to display names, dropping duplicates.
func expectedNames(kinds []token.Kind) []string {
	seen := make(map[string]bool, len(kinds))
	out := make([]string, 0, len(kinds))

	for _, k := range kinds {
		name := token.Name(k)
		if seen[name] {
			continue
		}

		seen[name] = true
		out = append(out, name)
	}

	return out
}

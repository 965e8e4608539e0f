// Package ast defines the syntax tree produced by the Cypher parser.
//
// Every grammar family is an interface with an unexported marker method and
// one struct per alternative. Nodes own their children exclusively; names that
// refer to other parts of a query (variables, labels) are plain strings.
package ast

import "github.com/alecthomas/participle/v2/lexer"

// Span is a half-open source range.
type Span struct {
	Start lexer.Position
	End   lexer.Position
}

// Contains reports whether o lies within s.
func (s Span) Contains(o Span) bool {
	return s.Start.Offset <= o.Start.Offset && o.End.Offset <= s.End.Offset
}

// NodeMeta carries the source range of a node. Pos is the first byte of the
// node's first token and EndPos the byte after its last token.
type NodeMeta struct {
	Pos    lexer.Position
	EndPos lexer.Position
}

// Span returns the source range of the node.
func (m NodeMeta) Span() Span {
	return Span{Start: m.Pos, End: m.EndPos}
}

// Node is implemented by every AST node.
type Node interface {
	Span() Span
}

// Statement is a top-level unit: a query or an administrative command.
type Statement interface {
	Node
	statementNode()
}

// Clause is one clause of a single query.
type Clause interface {
	Node
	clauseNode()
}

// Expr is any expression.
type Expr interface {
	Node
	exprNode()
}

// Command is an administrative command.
type Command interface {
	Statement
	commandNode()
}

// ParamType is the type hint attached to a parameter by its call site.
type ParamType int

// Parameter type hints.
const (
	ParamAny ParamType = iota
	ParamString
	ParamMap
)

func (t ParamType) String() string {
	switch t {
	case ParamString:
		return "STRING"
	case ParamMap:
		return "MAP"
	default:
		return "ANY"
	}
}

// =============================================================================
// Queries
// =============================================================================

// RegularQuery is a single query optionally combined with others by UNION.
type RegularQuery struct {
	NodeMeta
	Query  *SingleQuery
	Unions []*Union
}

// Union joins another single query onto a RegularQuery.
type Union struct {
	NodeMeta
	All      bool
	Distinct bool
	Query    *SingleQuery
}

// SingleQuery is a sequence of clauses.
type SingleQuery struct {
	NodeMeta
	Clauses []Clause
}

func (*RegularQuery) statementNode() {}

// Package format renders syntax trees back into Cypher source.
//
// Render produces a single canonical line for any node. Format lays out whole
// statements, breaking long ones into one clause per line. Both emit text
// that parses back into an equivalent tree: keywords are upper-cased, names
// are escaped when they would not scan as the same name, and parentheses are
// added wherever operator precedence requires them.
package format

import (
	"strings"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/scanner"
	"github.com/rlch/cypherparse/token"
)

const (
	// DefaultWidth is the line width below which a statement stays on one
	// line.
	DefaultWidth = 100
	// DefaultIndent is the indent unit for nested query bodies.
	DefaultIndent = "  "
)

// Options controls Format.
type Options struct {
	// Width is the longest statement kept on a single line. Zero or less
	// always breaks.
	Width int
	// Indent is repeated once per nesting level of CALL subqueries.
	Indent string
}

// DefaultOptions returns the options used by the CLI and the language
// server when no configuration overrides them.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Indent: DefaultIndent}
}

// Render returns node as a single line of Cypher.
func Render(node ast.Node) string {
	var b strings.Builder

	p := &printer{b: &b}
	p.node(node)

	return b.String()
}

// Format lays out stmts, each terminated by a semicolon and a newline.
// Statements that fit in opts.Width stay on one line; longer ones put each
// clause on its own line and indent subquery bodies.
func Format(stmts []ast.Statement, opts Options) string {
	if opts.Indent == "" {
		opts.Indent = DefaultIndent
	}

	var b strings.Builder

	for _, stmt := range stmts {
		line := Render(stmt)
		if opts.Width > 0 && len(line) <= opts.Width {
			b.WriteString(line)
		} else {
			p := &printer{b: &b, multiline: true, indent: opts.Indent}
			p.node(stmt)
		}

		b.WriteString(";\n")
	}

	return b.String()
}

type printer struct {
	b         *strings.Builder
	multiline bool
	indent    string
	depth     int
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.b.WriteString(s)
	}
}

// sep separates two clauses: a space on one line, a newline otherwise.
func (p *printer) sep() {
	if !p.multiline {
		p.write(" ")

		return
	}

	p.write("\n")

	for range p.depth {
		p.write(p.indent)
	}
}

// node dispatches on the family of n.
func (p *printer) node(n ast.Node) {
	switch n := n.(type) {
	case nil:
	case *ast.RegularQuery:
		p.regularQuery(n)
	case *ast.SingleQuery:
		p.singleQuery(n)
	case *ast.Union:
		p.union(n)
	case ast.Command:
		p.command(n)
	case ast.Clause:
		p.clause(n)
	case ast.Expr:
		p.expr(n)
	default:
		p.detail(n)
	}
}

// detail renders the nodes that only appear inside a larger construct.
func (p *printer) detail(n ast.Node) {
	switch n := n.(type) {
	case *ast.Pattern:
		p.pattern(n)
	case ast.AnonymousPattern:
		p.anonymousPattern(n)
	case ast.PathElement:
		p.pathElement(n)
	case *ast.LabelExpression:
		p.labelExpression(n)
	case ast.LabelExpr:
		p.labelExpr(n, false)
	case *ast.Quantifier:
		p.quantifier(n)
	case *ast.PathLength:
		p.pathLength(n)
	case *ast.Selector:
		p.selector(n)
	case *ast.MatchMode:
		p.matchMode(n)
	case *ast.CypherType:
		p.cypherType(n)
	case *ast.TypePart:
		p.typePart(n)
	case *ast.MapEntry:
		p.write(key(n.Key), ": ")
		p.expr(n.Value)
	case *ast.CaseAlternative:
		p.write("WHEN ")
		p.expr(n.When)
		p.write(" THEN ")
		p.expr(n.Then)
	case *ast.ExtendedCaseAlternative:
		p.extendedAlternative(n)
	case ast.WhenOperand:
		p.whenOperand(n)
	case ast.MapProjectionItem:
		p.projectionItem(n)
	case *ast.SubqueryBody:
		p.subqueryBody(n)
	case *ast.ReturnBody:
		p.returnBody(n)
	case *ast.ReturnItem:
		p.returnItem(n)
	case *ast.SortItem:
		p.sortItem(n)
	case ast.SetItem:
		p.setItem(n)
	case ast.RemoveItem:
		p.removeItem(n)
	case ast.Hint:
		p.hint(n)
	case *ast.MergeAction:
		p.mergeAction(n)
	case *ast.GraphReference:
		p.graphReference(n)
	case *ast.ProcedureYield:
		p.procedureYield(n)
	case *ast.ProcedureResultItem:
		p.procedureResultItem(n)
	case *ast.SubqueryScope:
		p.subqueryScope(n)
	case *ast.InTransactions:
		p.inTransactions(n)
	case ast.UserSetting:
		p.userSetting(n)
	case ast.DatabaseSetting:
		p.databaseSetting(n)
	default:
		p.commandDetail(n)
	}
}

// =============================================================================
// Names
// =============================================================================

// reservedVariables are keywords that would change meaning if written bare
// where a variable is expected.
var reservedVariables = map[token.Kind]bool{
	token.TRUE: true, token.FALSE: true, token.NULL: true, token.INF: true, token.INFINITY: true,
	token.NAN: true, token.CASE: true, token.NOT: true, token.WHERE: true, token.IS: true,
	token.DISTINCT: true, token.ALL: true, token.COUNT: true, token.EXISTS: true,
	token.COLLECT: true,
}

// reservedFunctions are keywords that start a special form when followed by
// a parenthesis.
var reservedFunctions = map[token.Kind]bool{
	token.REDUCE: true, token.NORMALIZE: true, token.TRIM: true, token.SHORTESTPATH: true,
	token.ALLSHORTESTPATHS: true, token.ALL: true, token.ANY: true, token.NONE: true,
	token.SINGLE: true,
}

// key renders a property key, map key or other name that is only ever read
// as a name.
func key(name string) string {
	if scanner.IsPlainName(name) {
		return name
	}

	return scanner.EscapeName(name)
}

// variable renders a name in variable position.
func variable(name string) string {
	if k, ok := token.Lookup(name); ok && reservedVariables[k] {
		return scanner.EscapeName(name)
	}

	return key(name)
}

// functionName renders the first segment of a function name.
func functionName(name string) string {
	if k, ok := token.Lookup(name); ok && (reservedFunctions[k] || reservedVariables[k]) {
		return scanner.EscapeName(name)
	}

	return key(name)
}

// labelName renders a label; after IS the words that continue a predicate
// must be escaped.
func labelName(name string, isSyntax bool) string {
	if isSyntax {
		if k, ok := token.Lookup(name); ok && !token.IsLabelName(k) {
			return scanner.EscapeName(name)
		}
	}

	return key(name)
}

// dotted renders a dotted name, escaping each part.
func dotted(parts []string) string {
	out := make([]string, len(parts))
	for i, part := range parts {
		out[i] = key(part)
	}

	return strings.Join(out, ".")
}

func keys(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = key(n)
	}

	return strings.Join(out, ", ")
}

// list renders items with f, separated by commas.
func list[T any](p *printer, items []T, f func(T)) {
	for i, item := range items {
		if i > 0 {
			p.write(", ")
		}

		f(item)
	}
}

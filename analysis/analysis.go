// Package analysis runs semantic lint rules over parsed Cypher statements.
//
// Rules follow the shape of go/analysis: each one is a named check with a
// default severity and a Run function that reports findings through a Pass.
// Analysis only needs the syntax tree; it never contacts a database.
package analysis

import (
	"fmt"
	"slices"

	"github.com/rlch/cypherparse/ast"
)

// Severity is how serious a finding is.
type Severity int

const (
	SeverityError Severity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInformation:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is a single finding. Code is the name of the rule that
// produced it.
type Diagnostic struct {
	Span     ast.Span
	Severity Severity
	Code     string
	Message  string
}

// Rule represents a semantic analysis check.
type Rule struct {
	// Name is a short identifier for the rule (used in diagnostic codes).
	Name string

	// Doc is a brief description of what the rule checks.
	Doc string

	// Severity is the severity of diagnostics from this rule.
	Severity Severity

	// Run inspects a single statement.
	Run func(p *Pass)
}

// Pass is the state of one rule running over one statement.
type Pass struct {
	Statement ast.Statement

	rule  *Rule
	diags *[]Diagnostic
}

// Report records a finding on node.
func (p *Pass) Report(node ast.Node, format string, args ...any) {
	*p.diags = append(*p.diags, Diagnostic{
		Span:     node.Span(),
		Severity: p.rule.Severity,
		Code:     p.rule.Name,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Analyze runs rules over every statement and returns the findings in
// source order. With no rules it runs DefaultRules.
func Analyze(stmts []ast.Statement, rules ...*Rule) []Diagnostic {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	var diags []Diagnostic

	for _, stmt := range stmts {
		if stmt == nil {
			continue
		}

		for _, rule := range rules {
			rule.Run(&Pass{Statement: stmt, rule: rule, diags: &diags})
		}
	}

	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		return a.Span.Start.Offset - b.Span.Start.Offset
	})

	return diags
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diags []Diagnostic) bool {
	return slices.ContainsFunc(diags, func(d Diagnostic) bool {
		return d.Severity == SeverityError
	})
}

// inspect calls f for every node of type T under root.
func inspect[T ast.Node](root ast.Node, f func(T)) {
	ast.Inspect(root, func(n ast.Node) bool {
		if t, ok := n.(T); ok {
			f(t)
		}

		return true
	})
}

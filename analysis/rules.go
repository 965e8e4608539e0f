package analysis

import (
	"slices"
	"strings"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/format"
)

// DefaultRules returns all built-in semantic analysis rules.
func DefaultRules() []*Rule {
	return []*Rule{
		// Error-level checks.
		functionArityRule,
		distinctNonAggregateRule,
		nestedAggregateRule,
		withAliasRule,
		duplicateColumnRule,
		unionColumnsRule,
		unionMixRule,

		// Warning-level checks.
		unknownFunctionRule,
	}
}

// ----------------------------------------------------------------------------
// Rule: unknown-function
// ----------------------------------------------------------------------------

var unknownFunctionRule = &Rule{
	Name:     "unknown-function",
	Doc:      "Reports calls to functions that are not built in. Namespaced user-defined functions are not checked.",
	Severity: SeverityWarning,
	Run:      checkUnknownFunctions,
}

func checkUnknownFunctions(p *Pass) {
	inspect(p.Statement, func(fc *ast.FunctionCall) {
		if LookupFunction(fc.QualifiedName()) != nil {
			return
		}

		if len(fc.Namespace) > 0 && !IsBuiltinNamespace(fc.Namespace) {
			return
		}

		p.Report(fc, "unknown function: %s", fc.QualifiedName())
	})
}

// ----------------------------------------------------------------------------
// Rule: function-arity
// ----------------------------------------------------------------------------

var functionArityRule = &Rule{
	Name:     "function-arity",
	Doc:      "Reports built-in function calls with the wrong number of arguments.",
	Severity: SeverityError,
	Run:      checkFunctionArity,
}

func checkFunctionArity(p *Pass) {
	inspect(p.Statement, func(fc *ast.FunctionCall) {
		f := LookupFunction(fc.QualifiedName())
		if f == nil || f.Accepts(len(fc.Args)) {
			return
		}

		p.Report(fc, "%s expects %s, got %d", f.Name, f.arity(), len(fc.Args))
	})
}

// ----------------------------------------------------------------------------
// Rule: distinct-non-aggregate
// ----------------------------------------------------------------------------

var distinctNonAggregateRule = &Rule{
	Name:     "distinct-non-aggregate",
	Doc:      "Reports DISTINCT inside a call to a non-aggregating function.",
	Severity: SeverityError,
	Run:      checkDistinctNonAggregate,
}

func checkDistinctNonAggregate(p *Pass) {
	inspect(p.Statement, func(fc *ast.FunctionCall) {
		f := LookupFunction(fc.QualifiedName())
		if f == nil || f.Aggregate || !fc.Distinct {
			return
		}

		p.Report(fc, "invalid use of DISTINCT with function %s: it is not an aggregating function", f.Name)
	})
}

// ----------------------------------------------------------------------------
// Rule: nested-aggregate
// ----------------------------------------------------------------------------

var nestedAggregateRule = &Rule{
	Name:     "nested-aggregate",
	Doc:      "Reports aggregating functions used inside the arguments of another aggregating function.",
	Severity: SeverityError,
	Run:      checkNestedAggregates,
}

func checkNestedAggregates(p *Pass) {
	inspect(p.Statement, func(fc *ast.FunctionCall) {
		if !isAggregate(fc) {
			return
		}

		for _, arg := range fc.Args {
			ast.Inspect(arg, func(n ast.Node) bool {
				switch n.(type) {
				case *ast.ExistsExpr, *ast.CountExpr, *ast.CollectExpr:
					// Subqueries aggregate in their own scope.
					return false
				}

				if isAggregate(n) {
					p.Report(n, "aggregating functions cannot be nested inside %s", fc.QualifiedName())

					return false
				}

				return true
			})
		}
	})
}

func isAggregate(n ast.Node) bool {
	switch n := n.(type) {
	case *ast.CountStar:
		return true
	case *ast.FunctionCall:
		f := LookupFunction(n.QualifiedName())

		return f != nil && f.Aggregate
	default:
		return false
	}
}

// ----------------------------------------------------------------------------
// Rule: with-alias
// ----------------------------------------------------------------------------

var withAliasRule = &Rule{
	Name:     "with-alias",
	Doc:      "Reports WITH items that project an expression without naming it.",
	Severity: SeverityError,
	Run:      checkWithAliases,
}

func checkWithAliases(p *Pass) {
	inspect(p.Statement, func(w *ast.WithClause) {
		if w.Body == nil {
			return
		}

		for _, item := range w.Body.Items {
			if item.Alias != nil {
				continue
			}

			if _, ok := item.Expr.(*ast.Variable); ok {
				continue
			}

			p.Report(item, "expression in WITH must be aliased (use AS): %s", format.Render(item.Expr))
		}
	})
}

// ----------------------------------------------------------------------------
// Rule: duplicate-column
// ----------------------------------------------------------------------------

var duplicateColumnRule = &Rule{
	Name:     "duplicate-column",
	Doc:      "Reports RETURN and WITH projections that produce the same column twice.",
	Severity: SeverityError,
	Run:      checkDuplicateColumns,
}

func checkDuplicateColumns(p *Pass) {
	inspect(p.Statement, func(body *ast.ReturnBody) {
		seen := make(map[string]bool, len(body.Items))

		for _, item := range body.Items {
			name := columnName(item)
			if seen[name] {
				p.Report(item, "multiple result columns with the same name: %s", name)

				continue
			}

			seen[name] = true
		}
	})
}

// columnName is the result column an item produces: its alias, or the
// expression in canonical form.
func columnName(item *ast.ReturnItem) string {
	if item.Alias != nil {
		return item.Alias.Name
	}

	if v, ok := item.Expr.(*ast.Variable); ok {
		return v.Name
	}

	return format.Render(item.Expr)
}

// ----------------------------------------------------------------------------
// Rule: union-columns
// ----------------------------------------------------------------------------

var unionColumnsRule = &Rule{
	Name:     "union-columns",
	Doc:      "Reports UNION parts that return different columns.",
	Severity: SeverityError,
	Run:      checkUnionColumns,
}

func checkUnionColumns(p *Pass) {
	inspect(p.Statement, func(q *ast.RegularQuery) {
		if len(q.Unions) == 0 {
			return
		}

		first, ok := returnColumns(q.Query)
		if !ok {
			return
		}

		for _, u := range q.Unions {
			cols, ok := returnColumns(u.Query)
			if !ok || slices.Equal(first, cols) {
				continue
			}

			p.Report(u, "all parts of a UNION must return the same columns: [%s] and [%s]",
				strings.Join(first, ", "), strings.Join(cols, ", "))
		}
	})
}

// returnColumns returns the sorted column names of the final RETURN of q.
// It reports false when they cannot be known statically.
func returnColumns(q *ast.SingleQuery) ([]string, bool) {
	if q == nil || len(q.Clauses) == 0 {
		return nil, false
	}

	ret, ok := q.Clauses[len(q.Clauses)-1].(*ast.ReturnClause)
	if !ok || ret.Body == nil || ret.Body.Star {
		return nil, false
	}

	cols := make([]string, 0, len(ret.Body.Items))
	for _, item := range ret.Body.Items {
		cols = append(cols, columnName(item))
	}

	slices.Sort(cols)

	return cols, true
}

// ----------------------------------------------------------------------------
// Rule: union-mix
// ----------------------------------------------------------------------------

var unionMixRule = &Rule{
	Name:     "union-mix",
	Doc:      "Reports queries that combine UNION and UNION ALL.",
	Severity: SeverityError,
	Run:      checkUnionMix,
}

func checkUnionMix(p *Pass) {
	inspect(p.Statement, func(q *ast.RegularQuery) {
		for _, u := range q.Unions[min(1, len(q.Unions)):] {
			if u.All != q.Unions[0].All {
				p.Report(u, "invalid combination of UNION and UNION ALL")
			}
		}
	})
}

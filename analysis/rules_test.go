package analysis_test

import (
	"testing"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/parser"
)

func analyze(t *testing.T, src string) []analysis.Diagnostic {
	t.Helper()

	res := parser.ParseString(src)
	if !res.OK() {
		t.Fatalf("parse %q: %v", src, res.Err())
	}

	return analysis.Analyze(res.Statements)
}

func codes(diags []analysis.Diagnostic) []string {
	out := make([]string, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.Code)
	}

	return out
}

func assertHasDiagnostic(t *testing.T, diags []analysis.Diagnostic, code string) analysis.Diagnostic {
	t.Helper()

	for _, d := range diags {
		if d.Code == code {
			return d
		}
	}

	t.Errorf("expected diagnostic %q, got %v", code, codes(diags))

	return analysis.Diagnostic{}
}

func assertNoDiagnostic(t *testing.T, diags []analysis.Diagnostic, code string) {
	t.Helper()

	for _, d := range diags {
		if d.Code == code {
			t.Errorf("unexpected diagnostic %q: %s", code, d.Message)
		}
	}
}

func TestRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		code  string
		want  bool
	}{
		{"unknown function", "RETURN frobnicate(1)", "unknown-function", true},
		{"known function any case", "RETURN TOUPPER('a')", "unknown-function", false},
		{"user-defined namespace", "RETURN apoc.coll.sum([1, 2])", "unknown-function", false},
		{"unknown builtin namespace member", "RETURN duration.inYears(1, 2)", "unknown-function", true},
		{"known namespaced builtin", "RETURN vector.similarity.cosine([1], [2])", "unknown-function", false},

		{"too many arguments", "RETURN toUpper('a', 'b')", "function-arity", true},
		{"too few arguments", "RETURN substring('a')", "function-arity", true},
		{"optional argument", "RETURN substring('abc', 1)", "function-arity", false},
		{"variadic", "RETURN coalesce(null, null, 1)", "function-arity", false},
		{"variadic needs one", "RETURN coalesce()", "function-arity", true},
		{"unknown functions are not counted", "RETURN frobnicate(1, 2, 3)", "function-arity", false},

		{"distinct scalar", "RETURN toUpper(DISTINCT 'a')", "distinct-non-aggregate", true},
		{"distinct aggregate", "MATCH (n) RETURN count(DISTINCT n)", "distinct-non-aggregate", false},

		{"nested aggregate", "MATCH (n) RETURN sum(count(n))", "nested-aggregate", true},
		{"nested count star", "MATCH (n) RETURN collect(count(*))", "nested-aggregate", true},
		{"aggregate in subquery", "MATCH (n) RETURN collect(COUNT { MATCH (n)-->(m) RETURN count(m) })", "nested-aggregate", false},
		{"sibling aggregates", "MATCH (n) RETURN count(n) + sum(n.x)", "nested-aggregate", false},

		{"unaliased with expression", "MATCH (n) WITH n.name RETURN 1", "with-alias", true},
		{"aliased with expression", "MATCH (n) WITH n.name AS name RETURN name", "with-alias", false},
		{"with variable", "MATCH (n) WITH n RETURN n", "with-alias", false},

		{"duplicate variable", "MATCH (n) RETURN n, n", "duplicate-column", true},
		{"duplicate alias", "RETURN 1 AS a, 2 AS a", "duplicate-column", true},
		{"duplicate expression", "MATCH (n) RETURN n.name, n.name", "duplicate-column", true},
		{"distinct columns", "MATCH (n) RETURN n, n.name AS name", "duplicate-column", false},

		{"union column mismatch", "RETURN 1 AS a UNION RETURN 2 AS b", "union-columns", true},
		{"union columns reordered", "RETURN 1 AS a, 2 AS b UNION RETURN 3 AS b, 4 AS a", "union-columns", false},
		{"union star", "MATCH (n) RETURN * UNION RETURN 1 AS n", "union-columns", false},

		{"union mix", "RETURN 1 AS a UNION RETURN 2 AS a UNION ALL RETURN 3 AS a", "union-mix", true},
		{"union all only", "RETURN 1 AS a UNION ALL RETURN 2 AS a UNION ALL RETURN 3 AS a", "union-mix", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			diags := analyze(t, tt.input)

			if tt.want {
				assertHasDiagnostic(t, diags, tt.code)
			} else {
				assertNoDiagnostic(t, diags, tt.code)
			}
		})
	}
}

func TestRule_Messages(t *testing.T) {
	t.Parallel()

	d := assertHasDiagnostic(t, analyze(t, "RETURN toUpper('a', 'b')"), "function-arity")
	if d.Message != "toUpper expects 1 argument, got 2" {
		t.Errorf("message = %q", d.Message)
	}

	if d.Severity != analysis.SeverityError {
		t.Errorf("severity = %v", d.Severity)
	}

	d = assertHasDiagnostic(t, analyze(t, "RETURN frobnicate(1)"), "unknown-function")
	if d.Message != "unknown function: frobnicate" {
		t.Errorf("message = %q", d.Message)
	}

	if d.Severity != analysis.SeverityWarning {
		t.Errorf("severity = %v", d.Severity)
	}

	if d.Span.Start.Column != 8 {
		t.Errorf("column = %d, want 8", d.Span.Start.Column)
	}
}

func TestAnalyze_CleanQuery(t *testing.T) {
	t.Parallel()

	diags := analyze(t, `MATCH (p:Person)-[:KNOWS]->(f)
WITH p, count(f) AS friends
WHERE friends > 2
RETURN p.name AS name, friends, toUpper(p.name) AS shout
ORDER BY friends DESC`)

	if len(diags) != 0 {
		t.Errorf("expected no diagnostics, got %v", codes(diags))
	}
}

func TestAnalyze_SortsBySource(t *testing.T) {
	t.Parallel()

	diags := analyze(t, "RETURN frobnicate(toUpper('a', 'b'));\nRETURN 1 AS a, 2 AS a")

	got := codes(diags)
	want := []string{"unknown-function", "function-arity", "duplicate-column"}

	if len(got) != len(want) {
		t.Fatalf("codes = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("codes = %v, want %v", got, want)

			break
		}
	}

	if !analysis.HasErrors(diags) {
		t.Error("HasErrors = false")
	}
}

func TestAnalyze_CustomRules(t *testing.T) {
	t.Parallel()

	res := parser.ParseString("RETURN frobnicate(1, 2)")

	called := 0
	rule := &analysis.Rule{
		Name:     "count",
		Severity: analysis.SeverityHint,
		Run: func(p *analysis.Pass) {
			called++
			p.Report(p.Statement, "seen")
		},
	}

	diags := analysis.Analyze(res.Statements, rule)

	if called != 1 || len(diags) != 1 {
		t.Fatalf("called %d times, %d diagnostics", called, len(diags))
	}

	if diags[0].Code != "count" || diags[0].Severity != analysis.SeverityHint {
		t.Errorf("diagnostic = %+v", diags[0])
	}

	if analysis.HasErrors(diags) {
		t.Error("HasErrors = true for hints")
	}
}

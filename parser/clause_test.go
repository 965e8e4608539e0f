package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

func param(name string) *ast.Parameter { return &ast.Parameter{Name: name} }

func TestParseClauses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []ast.Clause
	}{
		{
			name:  "match where return with tail",
			input: "MATCH (n) WHERE n.x = 1 RETURN n.x AS x ORDER BY x DESC SKIP 1 LIMIT 2",
			want: []ast.Clause{
				&ast.MatchClause{
					Patterns: []*ast.Pattern{path(node("n", nil))},
					Where:    &ast.Comparison{Op: ast.CmpEq, Left: prop(v("n"), "x"), Right: num("1")},
				},
				&ast.ReturnClause{Body: &ast.ReturnBody{
					Items:   []*ast.ReturnItem{{Expr: prop(v("n"), "x"), Alias: v("x")}},
					OrderBy: []*ast.SortItem{{Expr: v("x"), Direction: ast.SortDescending}},
					Skip:    num("1"),
					Limit:   num("2"),
				}},
			},
		},
		{
			name:  "optional match and star",
			input: "OPTIONAL MATCH (n) RETURN DISTINCT *",
			want: []ast.Clause{
				&ast.MatchClause{Optional: true, Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.ReturnClause{Body: &ast.ReturnBody{Distinct: true, Star: true}},
			},
		},
		{
			name:  "with where and unwind",
			input: "UNWIND [1, 2] AS x WITH x AS y, x WHERE y > 1 RETURN y",
			want: []ast.Clause{
				&ast.UnwindClause{Expr: &ast.ListLit{Items: []ast.Expr{num("1"), num("2")}}, Variable: v("x")},
				&ast.WithClause{
					Body: &ast.ReturnBody{Items: []*ast.ReturnItem{
						{Expr: v("x"), Alias: v("y")},
						{Expr: v("x")},
					}},
					Where: &ast.Comparison{Op: ast.CmpGt, Left: v("y"), Right: num("1")},
				},
				&ast.ReturnClause{Body: &ast.ReturnBody{Items: []*ast.ReturnItem{{Expr: v("y")}}}},
			},
		},
		{
			name:  "merge actions",
			input: "MERGE (n:L) ON CREATE SET n.a = 1 ON MATCH SET n += $p",
			want: []ast.Clause{
				&ast.MergeClause{
					Pattern: path(node("n", label("L"))),
					Actions: []*ast.MergeAction{
						{OnCreate: true, Set: &ast.SetClause{Items: []ast.SetItem{
							&ast.SetProperty{Target: prop(v("n"), "a"), Value: num("1")},
						}}},
						{Set: &ast.SetClause{Items: []ast.SetItem{
							&ast.SetVariable{Variable: v("n"), Value: param("p"), Mutate: true},
						}}},
					},
				},
			},
		},
		{
			name:  "set items",
			input: "MATCH (n) SET n.a.b = 1, n[$k] = 2, n = {}, n:A:$(x), n IS B",
			want: []ast.Clause{
				&ast.MatchClause{Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.SetClause{Items: []ast.SetItem{
					&ast.SetProperty{Target: prop(prop(v("n"), "a"), "b"), Value: num("1")},
					&ast.SetDynamicProperty{Target: &ast.IndexExpr{Subject: v("n"), Index: param("k")}, Value: num("2")},
					&ast.SetVariable{Variable: v("n"), Value: &ast.MapLit{}},
					&ast.SetLabels{Variable: v("n"), Labels: []ast.LabelExpr{label("A"), &ast.DynamicLabel{Expr: v("x")}}},
					&ast.SetLabels{Variable: v("n"), Is: true, Labels: []ast.LabelExpr{label("B")}},
				}},
			},
		},
		{
			name:  "remove items",
			input: "MATCH (n) REMOVE n.a, n[$k], n:A:B",
			want: []ast.Clause{
				&ast.MatchClause{Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.RemoveClause{Items: []ast.RemoveItem{
					&ast.RemoveProperty{Target: prop(v("n"), "a")},
					&ast.RemoveDynamicProperty{Target: &ast.IndexExpr{Subject: v("n"), Index: param("k")}},
					&ast.RemoveLabels{Variable: v("n"), Labels: []ast.LabelExpr{label("A"), label("B")}},
				}},
			},
		},
		{
			name:  "delete modes",
			input: "MATCH (n) DETACH DELETE n, m NODETACH DELETE x",
			want: []ast.Clause{
				&ast.MatchClause{Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.DeleteClause{Mode: ast.DeleteDetach, Exprs: []ast.Expr{v("n"), v("m")}},
				&ast.DeleteClause{Mode: ast.DeleteNoDetach, Exprs: []ast.Expr{v("x")}},
			},
		},
		{
			name:  "procedure call with yield",
			input: "CALL db.labels() YIELD label AS l WHERE l <> 'x'",
			want: []ast.Clause{
				&ast.CallClause{
					Namespace:    []string{"db"},
					Name:         "labels",
					ExplicitArgs: true,
					Yield: &ast.ProcedureYield{
						Items: []*ast.ProcedureResultItem{{Name: "label", Alias: v("l")}},
						Where: &ast.Comparison{Op: ast.CmpNeq, Left: v("l"), Right: str("x")},
					},
				},
			},
		},
		{
			name:  "implicit procedure arguments",
			input: "CALL ping YIELD *",
			want: []ast.Clause{
				&ast.CallClause{Name: "ping", Yield: &ast.ProcedureYield{Star: true}},
			},
		},
		{
			name:  "load csv",
			input: "LOAD CSV WITH HEADERS FROM 'file:///x.csv' AS row FIELDTERMINATOR ';' RETURN row",
			want: []ast.Clause{
				&ast.LoadCSVClause{
					WithHeaders:     true,
					Source:          str("file:///x.csv"),
					Variable:        v("row"),
					FieldTerminator: str(";"),
				},
				&ast.ReturnClause{Body: &ast.ReturnBody{Items: []*ast.ReturnItem{{Expr: v("row")}}}},
			},
		},
		{
			name:  "foreach body",
			input: "FOREACH (x IN [1, 2] | CREATE (:N {v: x}) SET x.a = 1)",
			want: []ast.Clause{
				&ast.ForeachClause{
					Variable: v("x"),
					Source:   &ast.ListLit{Items: []ast.Expr{num("1"), num("2")}},
					Clauses: []ast.Clause{
						&ast.CreateClause{Patterns: []*ast.Pattern{path(&ast.NodePattern{
							Labels:     &ast.LabelExpression{Expr: label("N")},
							Properties: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "v", Value: v("x")}}},
						})}},
						&ast.SetClause{Items: []ast.SetItem{
							&ast.SetProperty{Target: prop(v("x"), "a"), Value: num("1")},
						}},
					},
				},
			},
		},
		{
			name:  "foreach with comprehension in source",
			input: "FOREACH (x IN [y IN l | y.v] | DELETE x)",
			want: []ast.Clause{
				&ast.ForeachClause{
					Variable: v("x"),
					Source: &ast.ListComprehension{
						Variable:   v("y"),
						Source:     v("l"),
						Projection: prop(v("y"), "v"),
					},
					Clauses: []ast.Clause{&ast.DeleteClause{Exprs: []ast.Expr{v("x")}}},
				},
			},
		},
		{
			name:  "use graph reference",
			input: "USE db.sub MATCH (n) RETURN n",
			want: []ast.Clause{
				&ast.UseClause{Target: &ast.GraphReference{Parts: []string{"db", "sub"}}},
				&ast.MatchClause{Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.ReturnClause{Body: &ast.ReturnBody{Items: []*ast.ReturnItem{{Expr: v("n")}}}},
			},
		},
		{
			name:  "use graph parameter",
			input: "USE GRAPH $g RETURN 1",
			want: []ast.Clause{
				&ast.UseClause{Graph: true, Target: &ast.GraphReference{Param: param("g")}},
				&ast.ReturnClause{Body: &ast.ReturnBody{Items: []*ast.ReturnItem{{Expr: num("1")}}}},
			},
		},
		{
			name:  "standalone order by and finish",
			input: "MATCH (n) ORDER BY n.x ASC OFFSET 2 FINISH",
			want: []ast.Clause{
				&ast.MatchClause{Patterns: []*ast.Pattern{path(node("n", nil))}},
				&ast.OrderBySkipLimit{
					OrderBy: []*ast.SortItem{{Expr: prop(v("n"), "x"), Direction: ast.SortAscending}},
					Skip:    num("2"),
				},
				&ast.FinishClause{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mustClauses(t, tt.input)
			if diff := cmp.Diff(tt.want, got, ignoreMeta); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseHints(t *testing.T) {
	t.Parallel()

	clauses := mustClauses(t,
		"MATCH (n:Person), (m:Movie) USING TEXT INDEX SEEK n:Person(name, age) USING JOIN ON n, m USING SCAN m:Movie "+
			"WHERE n.name = 'x' RETURN n")
	m, ok := clauses[0].(*ast.MatchClause)
	require.True(t, ok)

	want := []ast.Hint{
		&ast.IndexHint{Kind: ast.IndexHintText, Seek: true, Variable: "n", Label: "Person", Properties: []string{"name", "age"}},
		&ast.JoinHint{Variables: []string{"n", "m"}},
		&ast.ScanHint{Variable: "m", Label: "Movie"},
	}

	if diff := cmp.Diff(want, m.Hints, ignoreMeta); diff != "" {
		t.Errorf("hints mismatch (-want +got):\n%s", diff)
	}

	assert.NotNil(t, m.Where)
	assert.Equal(t, "TEXT", ast.IndexHintText.String())
}

func TestParseSubqueryCall(t *testing.T) {
	t.Parallel()

	clauses := mustClauses(t,
		"CALL (n) { MATCH (n)-->(m) RETURN m } IN 4 CONCURRENT TRANSACTIONS OF 10 ROWS ON ERROR CONTINUE REPORT STATUS AS s")
	call, ok := clauses[0].(*ast.SubqueryCall)
	require.True(t, ok, "got %T", clauses[0])

	assert.False(t, call.Optional)
	assert.Equal(t, []*ast.Variable{v("n")}, stripScope(call.Scope))
	require.Len(t, call.Query.Query.Clauses, 2)

	want := &ast.InTransactions{
		Concurrent:   true,
		Concurrency:  num("4"),
		BatchSize:    num("10"),
		OnError:      ast.OnErrorContinue,
		ReportStatus: v("s"),
	}
	if diff := cmp.Diff(want, call.InTransactions, ignoreMeta); diff != "" {
		t.Errorf("IN TRANSACTIONS mismatch (-want +got):\n%s", diff)
	}

	t.Run("optional with star scope", func(t *testing.T) {
		t.Parallel()

		clauses := mustClauses(t, "OPTIONAL CALL (*) { RETURN 1 AS x } RETURN x")
		call, ok := clauses[0].(*ast.SubqueryCall)
		require.True(t, ok)
		assert.True(t, call.Optional)
		assert.True(t, call.Scope.Star)
		assert.Nil(t, call.InTransactions)
	})

	t.Run("legacy importing WITH", func(t *testing.T) {
		t.Parallel()

		clauses := mustClauses(t, "MATCH (n) CALL { WITH n RETURN n.x AS x } IN TRANSACTIONS RETURN x")
		call, ok := clauses[1].(*ast.SubqueryCall)
		require.True(t, ok)
		assert.Nil(t, call.Scope)
		require.NotNil(t, call.InTransactions)
		assert.False(t, call.InTransactions.Concurrent)
	})
}

// stripScope returns the scope variables without positions.
func stripScope(s *ast.SubqueryScope) []*ast.Variable {
	out := make([]*ast.Variable, len(s.Variables))
	for i, sv := range s.Variables {
		out[i] = v(sv.Name)
	}

	return out
}

func TestParseUnion(t *testing.T) {
	t.Parallel()

	stmt := mustStatement(t, "RETURN 1 AS x UNION ALL RETURN 2 AS x UNION DISTINCT RETURN 3 AS x UNION RETURN 4 AS x")
	q, ok := stmt.(*ast.RegularQuery)
	require.True(t, ok)
	require.Len(t, q.Unions, 3)

	assert.True(t, q.Unions[0].All)
	assert.True(t, q.Unions[1].Distinct)
	assert.False(t, q.Unions[2].All || q.Unions[2].Distinct)
	assert.Equal(t, q.Span().End, q.Unions[2].Span().End)
}

func TestParseClauseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "alias without name", input: "MATCH (n) RETURN n AS"},
		{name: "unknown error behaviour", input: "CALL { RETURN 1 } IN TRANSACTIONS ON ERROR RETRY"},
		{name: "optional without match", input: "OPTIONAL RETURN 1"},
		{name: "empty foreach body", input: "FOREACH (x IN l | )"},
		{name: "set without target", input: "MATCH (n) SET n"},
		{name: "load csv without alias", input: "LOAD CSV FROM 'x'"},
		{name: "unwind without alias", input: "UNWIND [1] RETURN 1"},
		{name: "not a statement", input: "WHERE n.x = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := parser.ParseString(tt.input)
			require.Len(t, res.Errors, 1, tt.input)
			assert.ErrorIs(t, res.Errors[0], parser.ErrUnexpectedToken)
		})
	}
}

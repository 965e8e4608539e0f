package parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

func node(name string, labels ast.LabelExpr) *ast.NodePattern {
	n := &ast.NodePattern{}
	if name != "" {
		n.Variable = v(name)
	}

	if labels != nil {
		n.Labels = &ast.LabelExpression{Expr: labels}
	}

	return n
}

func path(elems ...ast.PathElement) *ast.Pattern {
	return &ast.Pattern{Element: &ast.PathPattern{Elements: elems}}
}

func rel(dir ast.Direction) *ast.RelationshipPattern {
	return &ast.RelationshipPattern{Direction: dir}
}

// matchPatterns parses a MATCH clause and returns its patterns.
func matchPatterns(t *testing.T, src string) []*ast.Pattern {
	t.Helper()

	clauses := mustClauses(t, src)
	m, ok := clauses[0].(*ast.MatchClause)
	require.True(t, ok, "got %T", clauses[0])

	return m.Patterns
}

func TestParsePattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []*ast.Pattern
	}{
		{
			name:  "node chain with variable length relationship",
			input: "MATCH (a:Person)-[r:KNOWS*2..5]->(b)",
			want: []*ast.Pattern{path(
				node("a", label("Person")),
				&ast.RelationshipPattern{
					Direction: ast.DirectionRight,
					Variable:  v("r"),
					Labels:    &ast.LabelExpression{Expr: label("KNOWS")},
					Length:    &ast.PathLength{From: i64(2), To: i64(5)},
				},
				node("b", nil),
			)},
		},
		{
			name:  "unbounded length",
			input: "MATCH (a)-[*]-(b)",
			want: []*ast.Pattern{path(
				node("a", nil),
				&ast.RelationshipPattern{Length: &ast.PathLength{}},
				node("b", nil),
			)},
		},
		{
			name:  "single bound sets both ends",
			input: "MATCH (a)<-[:R*3]-(b)",
			want: []*ast.Pattern{path(
				node("a", nil),
				&ast.RelationshipPattern{
					Direction: ast.DirectionLeft,
					Labels:    &ast.LabelExpression{Expr: label("R")},
					Length:    &ast.PathLength{From: i64(3), To: i64(3)},
				},
				node("b", nil),
			)},
		},
		{
			name:  "upper bound only",
			input: "MATCH (a)-[*..4]->(b)",
			want: []*ast.Pattern{path(
				node("a", nil),
				&ast.RelationshipPattern{Direction: ast.DirectionRight, Length: &ast.PathLength{To: i64(4)}},
				node("b", nil),
			)},
		},
		{
			name:  "bare arrows",
			input: "MATCH (a)<-->(b)--(c)",
			want: []*ast.Pattern{path(
				node("a", nil), rel(ast.DirectionBoth), node("b", nil), rel(ast.DirectionNone), node("c", nil),
			)},
		},
		{
			name:  "several patterns",
			input: "MATCH (a), (b)",
			want:  []*ast.Pattern{path(node("a", nil)), path(node("b", nil))},
		},
		{
			name:  "label algebra",
			input: "MATCH (n:A&B|!C)",
			want: []*ast.Pattern{path(node("n", &ast.LabelOr{
				Left:  &ast.LabelAnd{Left: label("A"), Right: label("B")},
				Right: &ast.LabelNot{Operand: label("C")},
			}))},
		},
		{
			name:  "colon conjunction and wildcard",
			input: "MATCH (n:A:B)-[:%]->(m)",
			want: []*ast.Pattern{path(
				node("n", &ast.LabelAnd{Left: label("A"), Right: label("B"), Colon: true}),
				&ast.RelationshipPattern{
					Direction: ast.DirectionRight,
					Labels:    &ast.LabelExpression{Expr: &ast.LabelWildcard{}},
				},
				node("m", nil),
			)},
		},
		{
			name:  "relationship type union with colon",
			input: "MATCH ()-[:A|:B]->()",
			want: []*ast.Pattern{path(
				node("", nil),
				&ast.RelationshipPattern{
					Direction: ast.DirectionRight,
					Labels: &ast.LabelExpression{Expr: &ast.LabelOr{
						Left: label("A"), Right: label("B"), Colon: true,
					}},
				},
				node("", nil),
			)},
		},
		{
			name:  "IS label and dynamic label",
			input: "MATCH (n IS Person), (m:$any($labels))",
			want: []*ast.Pattern{
				path(&ast.NodePattern{
					Variable: v("n"),
					Labels:   &ast.LabelExpression{Is: true, Expr: label("Person")},
				}),
				path(node("m", &ast.DynamicLabel{
					Mode: ast.DynamicAny,
					Expr: &ast.Parameter{Name: "labels"},
				})),
			},
		},
		{
			name:  "node properties and inline WHERE",
			input: "MATCH (n:Person {name: 'Ann'} WHERE n.age > 3)",
			want: []*ast.Pattern{path(&ast.NodePattern{
				Variable:   v("n"),
				Labels:     &ast.LabelExpression{Expr: label("Person")},
				Properties: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "name", Value: str("Ann")}}},
				Where:      &ast.Comparison{Op: ast.CmpGt, Left: prop(v("n"), "age"), Right: num("3")},
			})},
		},
		{
			name:  "WHERE is a variable when it ends the filler",
			input: "MATCH (where)",
			want:  []*ast.Pattern{path(node("where", nil))},
		},
		{
			name:  "quantified relationship",
			input: "MATCH (a)-[:R]->{2}(b)",
			want: []*ast.Pattern{path(
				node("a", nil),
				&ast.RelationshipPattern{
					Direction:  ast.DirectionRight,
					Labels:     &ast.LabelExpression{Expr: label("R")},
					Quantifier: &ast.Quantifier{Kind: ast.QuantifierInterval, Lower: i64(2), Upper: i64(2)},
				},
				node("b", nil),
			)},
		},
		{
			name:  "juxtaposed parenthesized path",
			input: "MATCH (a)(()-[:R]->()){1,}(b)",
			want: []*ast.Pattern{path(
				node("a", nil),
				&ast.ParenthesizedPath{
					Pattern: path(
						node("", nil),
						&ast.RelationshipPattern{
							Direction: ast.DirectionRight,
							Labels:    &ast.LabelExpression{Expr: label("R")},
						},
						node("", nil),
					),
					Quantifier: &ast.Quantifier{Kind: ast.QuantifierInterval, Lower: i64(1)},
				},
				node("b", nil),
			)},
		},
		{
			name:  "parenthesized path with WHERE and plus",
			input: "MATCH ((a)-->(b) WHERE a.x > 1)+",
			want: []*ast.Pattern{path(&ast.ParenthesizedPath{
				Pattern: path(node("a", nil), rel(ast.DirectionRight), node("b", nil)),
				Where:   &ast.Comparison{Op: ast.CmpGt, Left: prop(v("a"), "x"), Right: num("1")},
				Quantifier: &ast.Quantifier{
					Kind: ast.QuantifierPlus,
				},
			})},
		},
		{
			name:  "upper bounded quantifier",
			input: "MATCH (()--()){,3}",
			want: []*ast.Pattern{path(&ast.ParenthesizedPath{
				Pattern:    path(node("", nil), rel(ast.DirectionNone), node("", nil)),
				Quantifier: &ast.Quantifier{Kind: ast.QuantifierInterval, Upper: i64(3)},
			})},
		},
		{
			name:  "path variable with shortestPath",
			input: "MATCH p = shortestPath((a)-[*]-(b))",
			want: []*ast.Pattern{{
				Variable: v("p"),
				Element: &ast.ShortestPathPattern{Path: &ast.PathPattern{Elements: []ast.PathElement{
					node("a", nil),
					&ast.RelationshipPattern{Length: &ast.PathLength{}},
					node("b", nil),
				}}},
			}},
		},
		{
			name:  "allShortestPaths",
			input: "MATCH allShortestPaths((a)-->(b))",
			want: []*ast.Pattern{{
				Element: &ast.ShortestPathPattern{All: true, Path: &ast.PathPattern{Elements: []ast.PathElement{
					node("a", nil), rel(ast.DirectionRight), node("b", nil),
				}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := matchPatterns(t, tt.input)
			if diff := cmp.Diff(tt.want, got, ignoreMeta); diff != "" {
				t.Errorf("%s mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  *ast.Selector
	}{
		{input: "MATCH ANY SHORTEST (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorAnyShortest}},
		{input: "MATCH ALL SHORTEST PATHS (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorAllShortest}},
		{input: "MATCH ANY (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorAny}},
		{input: "MATCH ANY 3 PATHS (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorAny, Count: i64(3)}},
		{input: "MATCH ALL PATHS (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorAll}},
		{input: "MATCH SHORTEST 2 GROUPS (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorShortestGroups, Count: i64(2)}},
		{input: "MATCH SHORTEST 1 PATH (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorShortest, Count: i64(1)}},
		{input: "MATCH p = SHORTEST 4 (a)-->(b)", want: &ast.Selector{Kind: ast.SelectorShortest, Count: i64(4)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			patterns := matchPatterns(t, tt.input)
			require.Len(t, patterns, 1)

			if diff := cmp.Diff(tt.want, patterns[0].Selector, ignoreMeta); diff != "" {
				t.Errorf("selector mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseMatchMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  ast.MatchModeKind
	}{
		{input: "MATCH REPEATABLE ELEMENTS (a)-->(b)", want: ast.RepeatableElements},
		{input: "MATCH REPEATABLE ELEMENT BINDINGS (a)-->(b)", want: ast.RepeatableElements},
		{input: "MATCH DIFFERENT RELATIONSHIPS (a)-->(b)", want: ast.DifferentRelationships},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			m, ok := mustClauses(t, tt.input)[0].(*ast.MatchClause)
			require.True(t, ok)
			require.NotNil(t, m.Mode)
			assert.Equal(t, tt.want, m.Mode.Kind)
		})
	}
}

func TestParseInsert(t *testing.T) {
	t.Parallel()

	clauses := mustClauses(t, "INSERT (a:A&B {x: 1})-[r:R]->(b IS C)")
	ins, ok := clauses[0].(*ast.InsertClause)
	require.True(t, ok, "got %T", clauses[0])

	want := []*ast.Pattern{path(
		&ast.NodePattern{
			Variable:   v("a"),
			Labels:     &ast.LabelExpression{Expr: &ast.LabelAnd{Left: label("A"), Right: label("B")}},
			Properties: &ast.MapLit{Entries: []*ast.MapEntry{{Key: "x", Value: num("1")}}},
		},
		&ast.RelationshipPattern{
			Direction: ast.DirectionRight,
			Variable:  v("r"),
			Labels:    &ast.LabelExpression{Expr: label("R")},
		},
		&ast.NodePattern{
			Variable: v("b"),
			Labels:   &ast.LabelExpression{Is: true, Expr: label("C")},
		},
	)}

	if diff := cmp.Diff(want, ins.Patterns, ignoreMeta); diff != "" {
		t.Errorf("INSERT mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePatternErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "dangling relationship", input: "MATCH (a)-[:R]-"},
		{name: "SHORTEST needs a count or GROUPS", input: "MATCH SHORTEST (a)-->(b)"},
		{name: "quantifier without bounds", input: "MATCH ((a)-->(b)){}"},
		{name: "INSERT rejects label union", input: "INSERT (a:A|B)"},
		{name: "INSERT rejects untyped relationship", input: "INSERT (a)-[]->(b)"},
		{name: "INSERT rejects quantifiers", input: "INSERT (a)-[:R]->+(b)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := parser.ParseString(tt.input)
			require.Len(t, res.Errors, 1, tt.input)
			assert.Empty(t, res.Statements)
		})
	}
}

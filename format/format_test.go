package format_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/format"
	"github.com/rlch/cypherparse/parser"
)

var ignoreMeta = cmpopts.IgnoreTypes(ast.NodeMeta{})

func mustParse(t *testing.T, src string) []ast.Statement {
	t.Helper()

	res := parser.ParseString(src)
	require.NoError(t, res.Err(), src)

	return res.Statements
}

func mustStatement(t *testing.T, src string) ast.Statement {
	t.Helper()

	stmts := mustParse(t, src)
	require.Len(t, stmts, 1, src)

	return stmts[0]
}

func TestRenderStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "canonical query is unchanged",
			src:      "MATCH (a:Person)-[r:KNOWS*1..3]->(b) WHERE a.age > 30 RETURN a, b ORDER BY a.name LIMIT 10",
			expected: "MATCH (a:Person)-[r:KNOWS*1..3]->(b) WHERE a.age > 30 RETURN a, b ORDER BY a.name LIMIT 10",
		},
		{
			name:     "keywords are upper-cased",
			src:      "match (n) where n.name starts with 'A' return n",
			expected: "MATCH (n) WHERE n.name STARTS WITH 'A' RETURN n",
		},
		{
			name:     "literals are lower-cased",
			src:      "RETURN TRUE, False, NULL",
			expected: "RETURN true, false, null",
		},
		{
			name:     "offset is written as skip",
			src:      "MATCH (n) RETURN n OFFSET 5",
			expected: "MATCH (n) RETURN n SKIP 5",
		},
		{
			name:     "whitespace is normalized",
			src:      "RETURN   1+2*3 ,(1+2)*3",
			expected: "RETURN 1 + 2 * 3, (1 + 2) * 3",
		},
		{
			name:     "escaped names survive",
			src:      "MATCH (`my node`) RETURN `my node`.`the key`",
			expected: "MATCH (`my node`) RETURN `my node`.`the key`",
		},
		{
			name:     "union",
			src:      "RETURN 1 AS x union all RETURN 2 AS x",
			expected: "RETURN 1 AS x UNION ALL RETURN 2 AS x",
		},
		{
			name:     "create role",
			src:      "CREATE ROLE reader IF NOT EXISTS AS COPY OF admin",
			expected: "CREATE ROLE reader IF NOT EXISTS AS COPY OF admin",
		},
		{
			name:     "graph privilege",
			src:      "GRANT MATCH {*} ON GRAPH * NODES Person TO reader",
			expected: "GRANT MATCH {*} ON GRAPH * NODES Person TO reader",
		},
		{
			name:     "revoke granted privilege",
			src:      "revoke grant traverse on graph neo4j from reader",
			expected: "REVOKE GRANT TRAVERSE ON GRAPH neo4j FROM reader",
		},
		{
			name:     "show with yield",
			src:      "SHOW DATABASES YIELD name, status WHERE status = 'online'",
			expected: "SHOW DATABASES YIELD name, status WHERE status = 'online'",
		},
		{
			name:     "single index property drops parentheses",
			src:      "CREATE INDEX idx IF NOT EXISTS FOR (n:Person) ON (n.name) OPTIONS {}",
			expected: "CREATE INDEX idx IF NOT EXISTS FOR (n:Person) ON n.name OPTIONS {}",
		},
		{
			name:     "create user",
			src:      "create user alice set password 'secret' change not required",
			expected: "CREATE USER alice SET PASSWORD 'secret' CHANGE NOT REQUIRED",
		},
		{
			name:     "alter database",
			src:      "ALTER DATABASE neo4j SET ACCESS READ ONLY WAIT 5 SECONDS",
			expected: "ALTER DATABASE neo4j SET ACCESS READ ONLY WAIT 5 SECONDS",
		},
		{
			name:     "show transactions by id",
			src:      "SHOW TRANSACTIONS 'a', 'b' YIELD *",
			expected: "SHOW TRANSACTIONS 'a', 'b' YIELD *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := format.Render(mustStatement(t, tt.src))
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Render() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src      string
		expected string
	}{
		{"a+b*c", "a + b * c"},
		{"(a+b)*c", "(a + b) * c"},
		{"not a = b and c", "NOT a = b AND c"},
		{"x is not null", "x IS NOT NULL"},
		{"2 ^ 3 ^ 4", "2 ^ 3 ^ 4"},
		{"n:A|B", "n:A|B"},
		{"[x in l where x > 1 | x * 2]", "[x IN l WHERE x > 1 | x * 2]"},
		{"{a: 1, `b c`: 'x'}", "{a: 1, `b c`: 'x'}"},
		{"COUNT(*)", "count(*)"},
		{"$param", "$param"},
		{"list[1..]", "list[1..]"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			t.Parallel()

			e, err := parser.ParseExpressionString(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format.Render(e))
		})
	}
}

func TestRenderPrecedence(t *testing.T) {
	t.Parallel()

	v := func(name string) *ast.Variable { return &ast.Variable{Name: name} }

	tests := []struct {
		name     string
		node     ast.Node
		expected string
	}{
		{
			name: "looser left operand",
			node: &ast.BinaryExpr{
				Op:    ast.OpMultiply,
				Left:  &ast.BinaryExpr{Op: ast.OpAdd, Left: v("a"), Right: v("b")},
				Right: v("c"),
			},
			expected: "(a + b) * c",
		},
		{
			name: "right operand at the same level",
			node: &ast.BinaryExpr{
				Op:    ast.OpSubtract,
				Left:  v("a"),
				Right: &ast.BinaryExpr{Op: ast.OpSubtract, Left: v("b"), Right: v("c")},
			},
			expected: "a - (b - c)",
		},
		{
			name:     "not over comparison",
			node:     &ast.NotExpr{Operand: &ast.Comparison{Op: ast.CmpEq, Left: v("a"), Right: v("b")}},
			expected: "NOT a = b",
		},
		{
			name: "or under and",
			node: &ast.BinaryExpr{
				Op:    ast.OpAnd,
				Left:  &ast.BinaryExpr{Op: ast.OpOr, Left: v("a"), Right: v("b")},
				Right: v("c"),
			},
			expected: "(a OR b) AND c",
		},
		{
			name: "sign over postfix",
			node: &ast.UnaryExpr{
				Op: ast.UnaryMinus,
				Operand: &ast.PropertyAccess{
					Subject: &ast.BinaryExpr{Op: ast.OpAdd, Left: v("a"), Right: v("b")},
					Key:     "x",
				},
			},
			expected: "-(a + b).x",
		},
		{
			name: "label union under intersection",
			node: &ast.LabelExpression{Expr: &ast.LabelAnd{
				Left:  &ast.LabelOr{Left: &ast.LabelName{Name: "A"}, Right: &ast.LabelName{Name: "B"}},
				Right: &ast.LabelName{Name: "C"},
			}},
			expected: ":(A|B)&C",
		},
		{
			name:     "negated label conjunction",
			node:     &ast.LabelNot{Operand: &ast.LabelAnd{Left: &ast.LabelName{Name: "A"}, Right: &ast.LabelName{Name: "B"}}},
			expected: "!(A&B)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, format.Render(tt.node))
		})
	}
}

func TestRenderEscapesNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "`null`", format.Render(&ast.Variable{Name: "null"}))
	assert.Equal(t, "`my var`", format.Render(&ast.Variable{Name: "my var"}))
	assert.Equal(t, "name", format.Render(&ast.Variable{Name: "name"}))
	assert.Equal(t, "n.`a b`", format.Render(&ast.PropertyAccess{Subject: &ast.Variable{Name: "n"}, Key: "a b"}))
	assert.Equal(t, "'it\\'s'", format.Render(&ast.StringLit{Value: "it's"}))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		opts     format.Options
		expected string
	}{
		{
			name:     "short statement stays on one line",
			src:      "match (n) return n",
			opts:     format.DefaultOptions(),
			expected: "MATCH (n) RETURN n;\n",
		},
		{
			name:     "each statement is terminated",
			src:      "RETURN 1; RETURN 2",
			opts:     format.DefaultOptions(),
			expected: "RETURN 1;\nRETURN 2;\n",
		},
		{
			name:     "long statement breaks per clause",
			src:      "MATCH (n:Person) WHERE n.age > 30 RETURN n.name",
			opts:     format.Options{Width: 20},
			expected: "MATCH (n:Person) WHERE n.age > 30\nRETURN n.name;\n",
		},
		{
			name: "subquery bodies are indented",
			src:  "MATCH (n) CALL { WITH n RETURN n.x AS x } RETURN x",
			opts: format.Options{Width: 20, Indent: "  "},
			expected: `MATCH (n)
CALL {
  WITH n
  RETURN n.x AS x
}
RETURN x;
`,
		},
		{
			name: "union breaks around the keyword",
			src:  "RETURN 1 AS x UNION RETURN 2 AS x",
			opts: format.Options{Width: 10},
			expected: `RETURN 1 AS x
UNION
RETURN 2 AS x;
`,
		},
		{
			name:     "nested subquery expressions stay inline",
			src:      "MATCH (n) WHERE EXISTS { MATCH (n)-->(m) RETURN m } RETURN n",
			opts:     format.Options{Width: 10},
			expected: "MATCH (n) WHERE EXISTS { MATCH (n)-->(m) RETURN m }\nRETURN n;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := format.Format(mustParse(t, tt.src), tt.opts)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// roundTrip holds statements whose rendering must parse back to the same
// tree.
var roundTrip = []string{
	"MATCH (a:Person)-[r:KNOWS*1..3]->(b) WHERE a.age > 30 RETURN a, b ORDER BY a.name LIMIT 10",
	"MATCH p = ANY SHORTEST ((a)-[:R]->(b) WHERE a.x < b.x){1,5} RETURN p",
	"UNWIND [x IN range(1, 10) WHERE x % 2 = 0 | x * x] AS y RETURN sum(y)",
	"CALL { WITH n MATCH (n)--(m) RETURN count(m) AS c } IN TRANSACTIONS OF 10 ROWS",
	"MERGE (n:L {id: $id}) ON CREATE SET n.created = timestamp() ON MATCH SET n += $props",
	"RETURN CASE WHEN a THEN 1 ELSE 2 END, reduce(s = 0, x IN l | s + x)",
	"RETURN CASE x WHEN 1, 2 THEN 'low' WHEN > 10 THEN 'high' ELSE 'mid' END",
	"MATCH (n IS Person&!Robot) WHERE n:Admin|Owner RETURN n {.name, .*, age: n.born}",
	"MATCH (a)<-[:R*]-(b), shortestPath((a)-[*..5]-(b)) RETURN a",
	"MATCH (n) WHERE n.x IS :: INTEGER NOT NULL AND n.s IS NFC NORMALIZED RETURN n",
	"MATCH (n) WHERE COUNT { (n)-->() } > 1 AND EXISTS { MATCH (n)--(m) WHERE m.x = 1 } RETURN n",
	"RETURN COLLECT { MATCH (n) RETURN n.x }",
	"LOAD CSV WITH HEADERS FROM 'file:///a.csv' AS row FIELDTERMINATOR ';' CREATE (:Row {v: row.v})",
	"FOREACH (x IN [1, 2] | CREATE (:N {v: x}) SET x.y = 1)",
	"MATCH (n) DETACH DELETE n",
	"MATCH (n) SET n:A:B, n.x = 1 REMOVE n:C, n.y",
	"CALL db.labels() YIELD label AS l WHERE l STARTS WITH 'A' RETURN l",
	"OPTIONAL MATCH (n) USING INDEX n:Person(name) RETURN n SKIP 1 LIMIT 2",
	"USE neo4j MATCH (n) RETURN n",
	"MATCH (n) RETURN trim(BOTH 'x' FROM n.s), normalize(n.s, NFKC), all(x IN n.l WHERE x > 0)",
	"RETURN -1, - n.x, 2 ^ -3, [1, 2, 3][1..2]",
	"CREATE ROLE reader IF NOT EXISTS AS COPY OF admin",
	"GRANT MATCH {*} ON GRAPH * NODES Person TO reader",
	"DENY EXECUTE PROCEDURE apoc.* ON DBMS TO reader",
	"GRANT READ {name} ON GRAPH neo4j FOR (n:Person) WHERE n.secret = false TO reader",
	"GRANT SHOW TRANSACTION (*) ON DATABASE * TO admin",
	"GRANT LOAD ON URL 'https://example.com/*' TO loader",
	"SHOW DATABASES YIELD name, status WHERE status = 'online'",
	"SHOW USER alice PRIVILEGES AS REVOKE COMMANDS",
	"CREATE INDEX idx IF NOT EXISTS FOR (n:Person) ON (n.name) OPTIONS {}",
	"CREATE LOOKUP INDEX FOR (n) ON EACH labels(n)",
	"CREATE FULLTEXT INDEX ft FOR (n:A|B) ON EACH [n.x, n.y]",
	"CREATE CONSTRAINT c FOR (n:Person) REQUIRE (n.a, n.b) IS NODE KEY",
	"CREATE CONSTRAINT FOR ()-[r:R]-() REQUIRE r.x IS :: STRING",
	"DROP DATABASE db IF EXISTS CASCADE ALIASES DESTROY DATA NOWAIT",
	"CREATE DATABASE db TOPOLOGY 1 PRIMARY 2 SECONDARIES OPTIONS {a: 1}",
	"CREATE ALIAS remote FOR DATABASE db AT 'neo4j+s://h' USER u PASSWORD 'p' DRIVER {ssl: true}",
	"ALTER USER bob SET STATUS SUSPENDED SET HOME DATABASE db REMOVE HOME DATABASE",
	"SHOW TRANSACTIONS YIELD * SHOW SETTINGS 'a', 'b'",
	"SHOW INDEXES YIELD name ORDER BY name SKIP 1 RETURN name",
}

func TestRenderRoundTrip(t *testing.T) {
	t.Parallel()

	for _, src := range roundTrip {
		t.Run(src, func(t *testing.T) {
			t.Parallel()

			want := mustParse(t, src)
			rendered := make([]string, len(want))

			for i, stmt := range want {
				rendered[i] = format.Render(stmt)
			}

			got := mustParse(t, strings.Join(rendered, "; "))
			if diff := cmp.Diff(want, got, ignoreMeta); diff != "" {
				t.Errorf("reparse of %q mismatch (-want +got):\n%s", rendered, diff)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	t.Parallel()

	src := strings.Join(roundTrip, ";\n")
	want := mustParse(t, src)

	for _, width := range []int{0, 40, format.DefaultWidth} {
		out := format.Format(want, format.Options{Width: width})
		got := mustParse(t, out)

		if diff := cmp.Diff(want, got, ignoreMeta); diff != "" {
			t.Errorf("width %d: reparse mismatch (-want +got):\n%s", width, diff)
		}

		assert.Equal(t, out, format.Format(got, format.Options{Width: width}), "width %d", width)
	}
}

func TestDump(t *testing.T) {
	t.Parallel()

	out := format.Dump(mustStatement(t, "RETURN 1 AS one"))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")

	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "RegularQuery 1:1-"), lines[0])
	assert.Contains(t, out, "\n  SingleQuery ")
	assert.Contains(t, out, `IntegerLit 1:8-1:9 Raw="1"`)
	assert.Contains(t, out, `Variable 1:13-1:16 Name="one"`)
}

func FuzzRender(f *testing.F) {
	for _, src := range roundTrip {
		f.Add(src)
	}

	f.Fuzz(func(t *testing.T, src string) {
		res := parser.ParseString(src, parser.WithMaxDepth(50))
		if !res.OK() {
			return
		}

		for _, stmt := range res.Statements {
			first := format.Render(stmt)

			again := parser.ParseString(first, parser.WithMaxDepth(200))
			if !again.OK() {
				t.Fatalf("rendering of %q does not parse: %q: %v", src, first, again.Err())
			}

			if len(again.Statements) != 1 {
				t.Fatalf("rendering of %q holds %d statements", src, len(again.Statements))
			}

			if second := format.Render(again.Statements[0]); second != first {
				t.Fatalf("unstable rendering of %q:\n%s\n%s", src, first, second)
			}
		}
	})
}

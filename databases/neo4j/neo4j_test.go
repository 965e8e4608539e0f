//nolint:testpackage
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/parser"
)

func parseOne(t *testing.T, src string) ast.Statement {
	t.Helper()

	res := parser.ParseString(src)
	if !res.OK() || len(res.Statements) != 1 {
		t.Fatalf("parse %q: %v", src, res.Err())
	}

	return res.Statements[0]
}

func TestExplainQuery(t *testing.T) {
	got, ok := explainQuery(parseOne(t, "match (n:Person) return n.name"))
	if !ok {
		t.Fatal("query should be explainable")
	}

	if want := "EXPLAIN MATCH (n:Person) RETURN n.name"; got != want {
		t.Errorf("explainQuery() = %q, want %q", got, want)
	}

	for _, src := range []string{"SHOW USERS", "CREATE ROLE reader", "GRANT ROLE reader TO alice"} {
		if _, ok := explainQuery(parseOne(t, src)); ok {
			t.Errorf("%q should be skipped", src)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		rejected bool
	}{
		{
			name:     "syntax error",
			err:      &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SyntaxError", Msg: "Invalid input"},
			rejected: true,
		},
		{
			name:     "wrapped semantic error",
			err:      fmt.Errorf("run: %w", &neo4j.Neo4jError{Code: "Neo.ClientError.Statement.SemanticError", Msg: "Variable `x` not defined"}),
			rejected: true,
		},
		{
			name:     "unknown database",
			err:      &neo4j.Neo4jError{Code: "Neo.ClientError.Database.DatabaseNotFound", Msg: "no such database"},
			rejected: false,
		},
		{
			name:     "connection",
			err:      errors.New("connection reset"),
			rejected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err)

			if errors.Is(got, cypherparse.ErrRejected) != tt.rejected {
				t.Errorf("classify() = %v, rejected want %v", got, tt.rejected)
			}
		})
	}
}

type fakePlan struct {
	op       string
	ids      []string
	children []neo4j.Plan
}

func (p fakePlan) Operator() string          { return p.op }
func (p fakePlan) Arguments() map[string]any { return nil }
func (p fakePlan) Identifiers() []string     { return p.ids }
func (p fakePlan) Children() []neo4j.Plan    { return p.children }

func TestConvertPlan(t *testing.T) {
	if convertPlan(nil) != nil {
		t.Error("convertPlan(nil) should be nil")
	}

	plan := convertPlan(fakePlan{
		op:  "ProduceResults@neo4j",
		ids: []string{"n"},
		children: []neo4j.Plan{
			fakePlan{op: "NodeByLabelScan@neo4j", ids: []string{"n"}},
		},
	})

	want := &Plan{
		Operator:    "ProduceResults@neo4j",
		Identifiers: []string{"n"},
		Children: []*Plan{
			{Operator: "NodeByLabelScan@neo4j", Identifiers: []string{"n"}},
		},
	}

	if diff := cmp.Diff(want, plan); diff != "" {
		t.Errorf("convertPlan() mismatch (-want +got):\n%s", diff)
	}

	if got, want := plan.String(), "ProduceResults@neo4j (n)\n  NodeByLabelScan@neo4j (n)\n"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestNew_Config(t *testing.T) {
	ctx := context.Background()

	if _, err := New(ctx, nil); !errors.Is(err, ErrNoConfig) {
		t.Errorf("New(nil) err = %v, want ErrNoConfig", err)
	}

	if _, err := New(ctx, &cypherparse.Neo4jConfig{}); !errors.Is(err, ErrNoConfig) {
		t.Errorf("New(empty) err = %v, want ErrNoConfig", err)
	}

	if _, err := New(ctx, &cypherparse.Neo4jConfig{URI: "ftp://localhost:7687"}); err == nil {
		t.Error("New() with unsupported scheme should fail")
	}
}

func TestVerifier_Integration(t *testing.T) {
	v := setupIntegrationTest(t)
	defer func() { _ = v.Close(context.Background()) }()

	ctx := context.Background()

	if err := v.Verify(ctx, parseOne(t, "MATCH (n) RETURN count(n)")); err != nil {
		t.Errorf("Verify() error = %v", err)
	}

	if err := v.Verify(ctx, parseOne(t, "SHOW USERS")); err != nil {
		t.Errorf("Verify() on a command error = %v, want nil", err)
	}

	plan, err := v.Explain(ctx, parseOne(t, "UNWIND [1, 2] AS x RETURN x"))
	if err != nil {
		t.Fatalf("Explain() error = %v", err)
	}

	if plan == nil || plan.Operator == "" {
		t.Errorf("Explain() plan = %v", plan)
	}
}

func setupIntegrationTest(t *testing.T) *Verifier {
	t.Helper()

	uri := os.Getenv("CYPHER_NEO4J_URI")
	if uri == "" {
		t.Skip("CYPHER_NEO4J_URI not set, skipping integration test")
	}

	cfg := &cypherparse.Neo4jConfig{
		URI:      uri,
		Username: os.Getenv("CYPHER_NEO4J_USER"),
		Password: os.Getenv("CYPHER_NEO4J_PASS"),
	}

	v, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	return v
}

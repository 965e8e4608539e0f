// Package neo4j verifies parsed Cypher against a live Neo4j server.
//
// Every query is sent prefixed with EXPLAIN, so the server plans it without
// executing it. Administration and schema commands cannot be explained and
// are skipped.
package neo4j

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/format"
)

// ErrNoConfig is returned when no connection settings are provided.
var ErrNoConfig = errors.New("neo4j: no connection configured")

// Server error codes that mean the statement text is at fault.
var rejectCodes = []string{
	"Neo.ClientError.Statement.SyntaxError",
	"Neo.ClientError.Statement.SemanticError",
}

// Verifier checks statements by asking the server to plan them.
type Verifier struct {
	driver neo4j.DriverWithContext
	db     string
	logger *zap.Logger
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithLogger sets the logger used for skipped statements and plans.
func WithLogger(logger *zap.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// New connects to the server described by cfg.
func New(ctx context.Context, cfg *cypherparse.Neo4jConfig, opts ...Option) (*Verifier, error) {
	if cfg == nil || cfg.URI == "" {
		return nil, ErrNoConfig
	}

	auth := neo4j.NoAuth()
	if cfg.Username != "" {
		auth = neo4j.BasicAuth(cfg.Username, cfg.Password, "")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, auth)
	if err != nil {
		return nil, fmt.Errorf("neo4j: failed to create driver: %w", err)
	}

	err = driver.VerifyConnectivity(ctx)
	if err != nil {
		_ = driver.Close(ctx)

		return nil, fmt.Errorf("neo4j: failed to connect: %w", err)
	}

	v := &Verifier{
		driver: driver,
		db:     cfg.Database,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

// Verify plans stmt on the server. A statement the server refuses yields an
// error wrapping cypherparse.ErrRejected. Commands are skipped.
func (v *Verifier) Verify(ctx context.Context, stmt ast.Statement) error {
	_, err := v.Explain(ctx, stmt)

	return err
}

// Explain returns the server's plan for stmt, or nil for statements that
// cannot be explained.
func (v *Verifier) Explain(ctx context.Context, stmt ast.Statement) (*Plan, error) {
	query, ok := explainQuery(stmt)
	if !ok {
		v.logger.Debug("skipping command", zap.String("type", fmt.Sprintf("%T", stmt)))

		return nil, nil
	}

	session := v.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: v.db,
	})
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return nil, classify(err)
	}

	summary, err := result.Consume(ctx)
	if err != nil {
		return nil, classify(err)
	}

	plan := convertPlan(summary.Plan())
	if plan != nil {
		v.logger.Debug("planned", zap.String("operator", plan.Operator))
	}

	return plan, nil
}

// Close releases the driver.
func (v *Verifier) Close(ctx context.Context) error {
	if err := v.driver.Close(ctx); err != nil {
		return fmt.Errorf("neo4j: failed to close driver: %w", err)
	}

	return nil
}

// explainQuery renders stmt as an EXPLAIN query. Only regular queries can
// be explained.
func explainQuery(stmt ast.Statement) (string, bool) {
	q, ok := stmt.(*ast.RegularQuery)
	if !ok {
		return "", false
	}

	return "EXPLAIN " + format.Render(q), true
}

// classify wraps server errors that blame the statement with
// cypherparse.ErrRejected.
func classify(err error) error {
	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		for _, code := range rejectCodes {
			if neoErr.Code == code {
				return fmt.Errorf("%w: %s", cypherparse.ErrRejected, neoErr.Msg)
			}
		}
	}

	return fmt.Errorf("neo4j: %w", err)
}

// Plan is a node of a query plan.
type Plan struct {
	Operator    string
	Identifiers []string
	Children    []*Plan
}

func convertPlan(p neo4j.Plan) *Plan {
	if p == nil {
		return nil
	}

	plan := &Plan{
		Operator:    p.Operator(),
		Identifiers: p.Identifiers(),
	}

	for _, child := range p.Children() {
		plan.Children = append(plan.Children, convertPlan(child))
	}

	return plan
}

// String renders the plan as an indented tree, one operator per line.
func (p *Plan) String() string {
	var b strings.Builder

	p.write(&b, 0)

	return b.String()
}

func (p *Plan) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(p.Operator)

	if len(p.Identifiers) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(p.Identifiers, ", "))
		b.WriteString(")")
	}

	b.WriteString("\n")

	for _, child := range p.Children {
		child.write(b, depth+1)
	}
}

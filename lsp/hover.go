package lsp

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/format"
)

// Hover handles textDocument/hover requests. It shows the innermost node
// under the cursor in canonical form, or the signature of a builtin
// function.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok || doc.File == nil {
		return nil, nil //nolint:nilnil // no hover
	}

	node := nodeAt(doc.File.Statements, offsetAt(doc.Content, params.Position))
	if node == nil {
		return nil, nil //nolint:nilnil // no hover
	}

	rng := spanToRange(node.Span())

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverContent(node),
		},
		Range: &rng,
	}, nil
}

func hoverContent(node ast.Node) string {
	if fc, ok := node.(*ast.FunctionCall); ok {
		if f := analysis.LookupFunction(fc.QualifiedName()); f != nil {
			return "```cypher\n" + f.Signature() + "\n```\n" + f.Doc
		}
	}

	name := strings.TrimPrefix(fmt.Sprintf("%T", node), "*ast.")

	return "**" + name + "**\n```cypher\n" + format.Render(node) + "\n```"
}

// nodeAt returns the innermost node whose span contains offset.
func nodeAt(stmts []ast.Statement, offset int) ast.Node {
	var found ast.Node

	for _, stmt := range stmts {
		ast.Inspect(stmt, func(n ast.Node) bool {
			span := n.Span()
			if offset < span.Start.Offset || offset >= span.End.Offset {
				return false
			}

			found = n

			return true
		})
	}

	return found
}

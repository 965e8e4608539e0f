package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/ast"
)

// FoldingRanges handles textDocument/foldingRange requests. Statements and
// subquery bodies that span more than one line fold.
func (s *Server) FoldingRanges(_ context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	s.logger.Debug("FoldingRanges", zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok || doc.File == nil {
		return nil, nil
	}

	var ranges []protocol.FoldingRange

	for _, stmt := range doc.File.Statements {
		if r, ok := foldingRange(stmt.Span()); ok {
			ranges = append(ranges, r)
		}

		ast.Inspect(stmt, func(n ast.Node) bool {
			switch n.(type) {
			case *ast.SubqueryCall, *ast.ForeachClause,
				*ast.ExistsExpr, *ast.CountExpr, *ast.CollectExpr:
				if r, ok := foldingRange(n.Span()); ok {
					ranges = append(ranges, r)
				}
			}

			return true
		})
	}

	return ranges, nil
}

func foldingRange(span ast.Span) (protocol.FoldingRange, bool) {
	if span.End.Line <= span.Start.Line {
		return protocol.FoldingRange{}, false
	}

	return protocol.FoldingRange{
		StartLine: uint32(span.Start.Line - 1), //nolint:gosec
		EndLine:   uint32(span.End.Line - 1),   //nolint:gosec
		Kind:      protocol.RegionFoldingRange,
	}, true
}

package lsp

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/format"
)

// symbolNameLimit caps the rendered text used as a symbol name.
const symbolNameLimit = 60

// DocumentSymbol handles textDocument/documentSymbol requests. Each
// statement is a symbol; the clauses of a query are its children.
func (s *Server) DocumentSymbol(_ context.Context, params *protocol.DocumentSymbolParams) ([]any, error) {
	s.logger.Debug("DocumentSymbol", zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok || doc.File == nil {
		return nil, nil
	}

	result := make([]any, 0, len(doc.File.Statements))
	for _, stmt := range doc.File.Statements {
		result = append(result, statementSymbol(stmt))
	}

	return result, nil
}

func statementSymbol(stmt ast.Statement) protocol.DocumentSymbol {
	rng := spanToRange(stmt.Span())

	sym := protocol.DocumentSymbol{
		Name:           truncate(format.Render(stmt), symbolNameLimit),
		Range:          rng,
		SelectionRange: rng,
	}

	q, ok := stmt.(*ast.RegularQuery)
	if !ok {
		sym.Kind = protocol.SymbolKindEvent
		sym.Detail = "command"

		return sym
	}

	sym.Kind = protocol.SymbolKindFunction
	sym.Detail = "query"

	parts := []*ast.SingleQuery{q.Query}
	for _, u := range q.Unions {
		parts = append(parts, u.Query)
	}

	for _, part := range parts {
		if part == nil {
			continue
		}

		for _, c := range part.Clauses {
			crng := spanToRange(c.Span())
			sym.Children = append(sym.Children, protocol.DocumentSymbol{
				Name:           truncate(format.Render(c), symbolNameLimit),
				Detail:         clauseKeyword(c),
				Kind:           protocol.SymbolKindField,
				Range:          crng,
				SelectionRange: crng,
			})
		}
	}

	return sym
}

// clauseKeyword is the leading keyword of a rendered clause, e.g. "MATCH".
func clauseKeyword(c ast.Clause) string {
	text := format.Render(c)
	if i := strings.IndexAny(text, " {("); i > 0 {
		return text[:i]
	}

	return text
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	return string([]rune(s)[:limit-1]) + "…"
}

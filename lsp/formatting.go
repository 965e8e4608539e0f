package lsp

import (
	"context"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/format"
)

// Formatting handles textDocument/formatting requests.
func (s *Server) Formatting(_ context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	s.logger.Debug("Formatting", zap.String("uri", string(params.TextDocument.URI)))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok || doc.File == nil || !doc.File.OK() {
		return nil, nil
	}

	formatted := format.Format(doc.File.Statements, s.formatOptions(params.Options))
	if formatted == doc.Content {
		return []protocol.TextEdit{}, nil
	}

	return []protocol.TextEdit{{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   endPosition(doc.Content),
		},
		NewText: formatted,
	}}, nil
}

// formatOptions merges the editor's indentation with the configured width.
// A configured indent wins over the editor's.
func (s *Server) formatOptions(editor protocol.FormattingOptions) format.Options {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	opts := cfg.FormatOptions()
	if cfg != nil && cfg.Format.Indent != "" {
		return opts
	}

	switch {
	case !editor.InsertSpaces && editor.TabSize > 0:
		opts.Indent = "\t"
	case editor.TabSize > 0:
		opts.Indent = strings.Repeat(" ", int(editor.TabSize))
	}

	return opts
}

package lsp

import (
	"context"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/parser"
)

// diagnosticSource is reported as the source of every diagnostic.
const diagnosticSource = "cypher"

// publishDiagnostics converts the syntax errors of doc and publishes them.
// Lint findings are only reported for documents without syntax errors.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	if doc.File == nil {
		return
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(doc.File.Errors))
	for _, e := range doc.File.Errors {
		diagnostics = append(diagnostics, convertDiagnostic(doc.URI, e))
	}

	if doc.File.OK() {
		for _, d := range analysis.Analyze(doc.File.Statements) {
			diagnostics = append(diagnostics, convertFinding(d))
		}
	}

	err := s.client.PublishDiagnostics(ctx, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Version:     uint32(doc.Version), //nolint:gosec // LSP version numbers are always non-negative
		Diagnostics: diagnostics,
	})
	if err != nil {
		s.logger.Error("publishDiagnostics: RPC failed", zap.Error(err))
	}
}

// convertDiagnostic converts a syntax error to an LSP diagnostic.
func convertDiagnostic(uri protocol.DocumentURI, e *parser.SyntaxError) protocol.Diagnostic {
	rng := spanToRange(e.Span)

	// Editors hide zero-width ranges; widen end-of-input errors by one.
	if rng.Start == rng.End {
		rng.End.Character++
	}

	d := protocol.Diagnostic{
		Range:    rng,
		Severity: protocol.DiagnosticSeverityError,
		Code:     e.Kind.String(),
		Source:   diagnosticSource,
		Message:  e.Message,
	}

	if e.Open != nil {
		d.RelatedInformation = []protocol.DiagnosticRelatedInformation{{
			Location: protocol.Location{
				URI:   uri,
				Range: openRange(e),
			},
			Message: "unclosed '" + e.Open.Value + "'",
		}}
	}

	return d
}

// convertFinding converts a lint finding to an LSP diagnostic.
func convertFinding(d analysis.Diagnostic) protocol.Diagnostic {
	return protocol.Diagnostic{
		Range:    spanToRange(d.Span),
		Severity: convertSeverity(d.Severity),
		Code:     d.Code,
		Source:   diagnosticSource,
		Message:  d.Message,
	}
}

func convertSeverity(s analysis.Severity) protocol.DiagnosticSeverity {
	switch s {
	case analysis.SeverityError:
		return protocol.DiagnosticSeverityError
	case analysis.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	case analysis.SeverityInformation:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityHint
	}
}

func openRange(e *parser.SyntaxError) protocol.Range {
	pos := e.Open.Pos
	start := protocol.Position{
		Line:      uint32(max(0, pos.Line-1)),   //nolint:gosec // G115: small line numbers
		Character: uint32(max(0, pos.Column-1)), //nolint:gosec // G115: small column numbers
	}
	end := start
	end.Character += uint32(len([]rune(e.Open.Value))) //nolint:gosec // G115: token text is short

	return protocol.Range{Start: start, End: end}
}

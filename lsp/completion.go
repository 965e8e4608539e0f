package lsp

import (
	"context"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/analysis"
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// Completion handles textDocument/completion requests. After a '$' it
// offers the parameters used in the document and after a builtin namespace
// such as `date.` its functions. Otherwise it offers the variables of the
// statement under the cursor, then functions and keywords.
func (s *Server) Completion(_ context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil // unknown document
	}

	offset := offsetAt(doc.Content, params.Position)
	prefix, start := wordBefore(doc.Content, offset)

	var items []protocol.CompletionItem

	ns := qualifierBefore(doc.Content, start)

	switch {
	case start > 0 && doc.Content[start-1] == '$':
		items = completeParameters(doc, prefix)
	case ns != nil && analysis.IsBuiltinNamespace(ns):
		items = completeFunctions(strings.Join(ns, "."), prefix)
	default:
		items = slices.Concat(
			completeVariables(doc, offset, prefix),
			completeFunctions("", prefix),
			completeKeywords(prefix),
		)
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// wordBefore returns the identifier ending at offset and its byte offset.
func wordBefore(content string, offset int) (string, int) {
	start := offset
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(content[:start])
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}

		start -= size
	}

	return content[start:offset], start
}

// qualifierBefore returns the dotted name preceding the '.' before start,
// or nil if there is none.
func qualifierBefore(content string, start int) []string {
	var parts []string

	for start > 0 && content[start-1] == '.' {
		word, wordStart := wordBefore(content, start-1)
		if word == "" {
			break
		}

		parts = append([]string{word}, parts...)
		start = wordStart
	}

	return parts
}

// completeFunctions offers builtins in namespace ns whose remaining name
// starts with prefix, ignoring case.
func completeFunctions(ns, prefix string) []protocol.CompletionItem {
	lowerPrefix := strings.ToLower(prefix)
	qualifier := strings.ToLower(ns)
	if qualifier != "" {
		qualifier += "."
	}

	var items []protocol.CompletionItem

	for _, f := range analysis.Functions() {
		name := strings.ToLower(f.Name)
		if !strings.HasPrefix(name, qualifier) || !strings.HasPrefix(name[len(qualifier):], lowerPrefix) {
			continue
		}

		items = append(items, protocol.CompletionItem{
			Label:         f.Name[len(qualifier):],
			Kind:          protocol.CompletionItemKindFunction,
			Detail:        f.Signature(),
			Documentation: f.Doc,
		})
	}

	return items
}

func completeKeywords(prefix string) []protocol.CompletionItem {
	upper := strings.ToUpper(prefix)

	var items []protocol.CompletionItem

	for _, kw := range token.Keywords() {
		if !strings.HasPrefix(kw, upper) {
			continue
		}

		items = append(items, protocol.CompletionItem{
			Label:  kw,
			Kind:   protocol.CompletionItemKindKeyword,
			Detail: "keyword",
		})
	}

	return items
}

// completeVariables offers the variables of the statements around offset.
func completeVariables(doc *Document, offset int, prefix string) []protocol.CompletionItem {
	if doc.File == nil {
		return nil
	}

	var names []string

	for _, stmt := range doc.File.Statements {
		span := stmt.Span()
		if offset < span.Start.Offset || offset > span.End.Offset {
			continue
		}

		ast.Inspect(stmt, func(n ast.Node) bool {
			if v, ok := n.(*ast.Variable); ok && strings.HasPrefix(v.Name, prefix) && v.Name != prefix {
				names = append(names, v.Name)
			}

			return true
		})
	}

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range dedupe(names) {
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   protocol.CompletionItemKindVariable,
			Detail: "variable",
		})
	}

	return items
}

// completeParameters offers every parameter named in the document.
func completeParameters(doc *Document, prefix string) []protocol.CompletionItem {
	if doc.File == nil {
		return nil
	}

	types := map[string]ast.ParamType{}

	var names []string

	for _, stmt := range doc.File.Statements {
		ast.Inspect(stmt, func(n ast.Node) bool {
			if p, ok := n.(*ast.Parameter); ok && strings.HasPrefix(p.Name, prefix) {
				names = append(names, p.Name)
				types[p.Name] = max(types[p.Name], p.Type)
			}

			return true
		})
	}

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range dedupe(names) {
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   protocol.CompletionItemKindVariable,
			Detail: "parameter " + types[name].String(),
		})
	}

	return items
}

func dedupe(names []string) []string {
	slices.Sort(names)

	return slices.Compact(names)
}

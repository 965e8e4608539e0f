package lsp

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"go.lsp.dev/protocol"

	"github.com/rlch/cypherparse/ast"
)

// URIToPath converts a file:// URI to a filesystem path.
func URIToPath(uri protocol.DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil {
		return strings.TrimPrefix(string(uri), "file://")
	}

	if u.Scheme == "file" {
		return u.Path
	}

	return string(uri)
}

// PathToURI converts a filesystem path to a file:// URI.
func PathToURI(path string) protocol.DocumentURI {
	return protocol.DocumentURI("file://" + path)
}

// spanToRange converts a 1-based span to a 0-based LSP range. Columns are
// counted in runes on both sides.
func spanToRange(span ast.Span) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{
			Line:      uint32(max(0, span.Start.Line-1)),   //nolint:gosec // G115: small line numbers
			Character: uint32(max(0, span.Start.Column-1)), //nolint:gosec // G115: small column numbers
		},
		End: protocol.Position{
			Line:      uint32(max(0, span.End.Line-1)),   //nolint:gosec // G115: small line numbers
			Character: uint32(max(0, span.End.Column-1)), //nolint:gosec // G115: small column numbers
		},
	}
}

// offsetAt returns the byte offset of pos in content, clamped to the end of
// its line and of the content.
func offsetAt(content string, pos protocol.Position) int {
	offset := 0

	for range pos.Line {
		nl := strings.IndexByte(content[offset:], '\n')
		if nl < 0 {
			return len(content)
		}

		offset += nl + 1
	}

	for i := uint32(0); i < pos.Character && offset < len(content); i++ {
		r, size := utf8.DecodeRuneInString(content[offset:])
		if r == '\n' {
			break
		}

		offset += size
	}

	return offset
}

// endPosition returns the position just past the last character of content.
func endPosition(content string) protocol.Position {
	lines := strings.Count(content, "\n")
	last := content[strings.LastIndexByte(content, '\n')+1:]

	return protocol.Position{
		Line:      uint32(lines),                        //nolint:gosec // G115: small line numbers
		Character: uint32(utf8.RuneCountInString(last)), //nolint:gosec // G115: small column numbers
	}
}

package lsp_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/lsp"
)

const testURI = protocol.DocumentURI("file:///queries/test.cypher")

// mockClient implements protocol.Client for testing.
type mockClient struct {
	mu          sync.Mutex
	diagnostics []protocol.PublishDiagnosticsParams
}

func (m *mockClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.diagnostics = append(m.diagnostics, *params)

	return nil
}

func (m *mockClient) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	require.NotEmpty(t, m.diagnostics, "expected diagnostics to be published")

	return m.diagnostics[len(m.diagnostics)-1]
}

// Stub out remaining Client interface methods.
func (m *mockClient) Progress(context.Context, *protocol.ProgressParams) error { return nil }
func (m *mockClient) WorkDoneProgressCreate(context.Context, *protocol.WorkDoneProgressCreateParams) error {
	return nil
}
func (m *mockClient) ShowMessage(context.Context, *protocol.ShowMessageParams) error { return nil }
func (m *mockClient) ShowMessageRequest(
	context.Context, *protocol.ShowMessageRequestParams,
) (*protocol.MessageActionItem, error) {
	return nil, nil //nolint:nilnil // mock
}
func (m *mockClient) LogMessage(context.Context, *protocol.LogMessageParams) error { return nil }
func (m *mockClient) Telemetry(context.Context, any) error                         { return nil }
func (m *mockClient) RegisterCapability(context.Context, *protocol.RegistrationParams) error {
	return nil
}
func (m *mockClient) UnregisterCapability(context.Context, *protocol.UnregistrationParams) error {
	return nil
}
func (m *mockClient) ApplyEdit(context.Context, *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}
func (m *mockClient) Configuration(context.Context, *protocol.ConfigurationParams) ([]any, error) {
	return nil, nil
}
func (m *mockClient) WorkspaceFolders(context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

var _ protocol.Server = (*lsp.Server)(nil)

func newTestServer(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	client := &mockClient{}
	server := lsp.NewServer(client, zap.NewNop())

	ctx := context.Background()
	_, err := server.Initialize(ctx, &protocol.InitializeParams{})
	require.NoError(t, err)
	require.NoError(t, server.Initialized(ctx, &protocol.InitializedParams{}))

	return server, client
}

func openDocument(t *testing.T, server *lsp.Server, text string) {
	t.Helper()

	err := server.DidOpen(context.Background(), &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        testURI,
			LanguageID: "cypher",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func textDocument() protocol.TextDocumentIdentifier {
	return protocol.TextDocumentIdentifier{URI: testURI}
}

func TestServer_Initialize(t *testing.T) {
	t.Parallel()

	server := lsp.NewServer(&mockClient{}, zap.NewNop())

	result, err := server.Initialize(context.Background(), &protocol.InitializeParams{})
	require.NoError(t, err)

	assert.NotNil(t, result.Capabilities.TextDocumentSync)
	assert.Equal(t, true, result.Capabilities.DocumentFormattingProvider)
	assert.Equal(t, true, result.Capabilities.DocumentSymbolProvider)
	require.NotNil(t, result.Capabilities.CompletionProvider)
	assert.Equal(t, []string{"$", "."}, result.Capabilities.CompletionProvider.TriggerCharacters)
	require.NotNil(t, result.ServerInfo)
	assert.Equal(t, "cypher-lsp", result.ServerInfo.Name)
}

func TestServer_Diagnostics(t *testing.T) {
	t.Parallel()

	t.Run("valid file", func(t *testing.T) {
		t.Parallel()

		server, client := newTestServer(t)
		openDocument(t, server, "MATCH (n:Person) RETURN n.name;\n")

		diag := client.last(t)
		assert.Equal(t, testURI, diag.URI)
		assert.Equal(t, uint32(1), diag.Version)
		assert.Empty(t, diag.Diagnostics)
	})

	t.Run("unexpected token", func(t *testing.T) {
		t.Parallel()

		server, client := newTestServer(t)
		openDocument(t, server, "RETURN 1;\nMATCH (n RETURN n")

		diags := client.last(t).Diagnostics
		require.Len(t, diags, 1)

		d := diags[0]
		assert.Equal(t, protocol.DiagnosticSeverityError, d.Severity)
		assert.Equal(t, "cypher", d.Source)
		assert.Equal(t, "UnexpectedToken", d.Code)
		assert.Contains(t, d.Message, "unexpected 'RETURN'")
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 1, Character: 9},
			End:   protocol.Position{Line: 1, Character: 15},
		}, d.Range)
	})

	t.Run("unterminated construct points at the opener", func(t *testing.T) {
		t.Parallel()

		server, client := newTestServer(t)
		openDocument(t, server, "RETURN [1, 2")

		diags := client.last(t).Diagnostics
		require.NotEmpty(t, diags)
		assert.Equal(t, "UnterminatedConstruct", diags[0].Code)
		require.Len(t, diags[0].RelatedInformation, 1)

		related := diags[0].RelatedInformation[0]
		assert.Equal(t, testURI, related.Location.URI)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 7},
			End:   protocol.Position{Line: 0, Character: 8},
		}, related.Location.Range)
	})

	t.Run("change and close", func(t *testing.T) {
		t.Parallel()

		server, client := newTestServer(t)
		ctx := context.Background()

		openDocument(t, server, "RETURN 1 2")
		assert.Len(t, client.last(t).Diagnostics, 1)

		err := server.DidChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: textDocument(),
				Version:                2,
			},
			ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "RETURN 1"}},
		})
		require.NoError(t, err)

		diag := client.last(t)
		assert.Equal(t, uint32(2), diag.Version)
		assert.Empty(t, diag.Diagnostics)

		err = server.DidClose(ctx, &protocol.DidCloseTextDocumentParams{TextDocument: textDocument()})
		require.NoError(t, err)
		assert.Empty(t, client.last(t).Diagnostics)

		symbols, err := server.DocumentSymbol(ctx, &protocol.DocumentSymbolParams{TextDocument: textDocument()})
		require.NoError(t, err)
		assert.Nil(t, symbols)
	})

	t.Run("change to unknown document", func(t *testing.T) {
		t.Parallel()

		server, _ := newTestServer(t)

		err := server.DidChange(context.Background(), &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: textDocument(),
				Version:                2,
			},
			ContentChanges: []protocol.TextDocumentContentChangeEvent{{Text: "RETURN 1"}},
		})
		assert.NoError(t, err)
	})
}

func TestServer_Formatting(t *testing.T) {
	t.Parallel()

	format := func(t *testing.T, text string, opts protocol.FormattingOptions) []protocol.TextEdit {
		t.Helper()

		server, _ := newTestServer(t)
		openDocument(t, server, text)

		edits, err := server.Formatting(context.Background(), &protocol.DocumentFormattingParams{
			TextDocument: textDocument(),
			Options:      opts,
		})
		require.NoError(t, err)

		return edits
	}

	t.Run("replaces the whole document", func(t *testing.T) {
		t.Parallel()

		edits := format(t, "match (n)   return n", protocol.FormattingOptions{})
		require.Len(t, edits, 1)
		assert.Equal(t, "MATCH (n) RETURN n;\n", edits[0].NewText)
		assert.Equal(t, protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 20},
		}, edits[0].Range)
	})

	t.Run("already formatted", func(t *testing.T) {
		t.Parallel()

		edits := format(t, "MATCH (n) RETURN n;\n", protocol.FormattingOptions{})
		assert.NotNil(t, edits)
		assert.Empty(t, edits)
	})

	t.Run("syntax errors", func(t *testing.T) {
		t.Parallel()

		edits := format(t, "MATCH (n RETURN n", protocol.FormattingOptions{})
		assert.Nil(t, edits)
	})

	t.Run("editor indentation", func(t *testing.T) {
		t.Parallel()

		src := "CALL { MATCH (person:Person) WHERE person.age > 30 RETURN person.name AS name } RETURN name ORDER BY name DESC LIMIT 10"
		edits := format(t, src, protocol.FormattingOptions{TabSize: 4, InsertSpaces: false})
		require.Len(t, edits, 1)
		assert.Contains(t, edits[0].NewText, "\n\tMATCH (person:Person)")
	})
}

func TestServer_DocumentSymbol(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, "MATCH (n)\nRETURN n;\nCREATE ROLE reader;\n")

	result, err := server.DocumentSymbol(context.Background(), &protocol.DocumentSymbolParams{
		TextDocument: textDocument(),
	})
	require.NoError(t, err)
	require.Len(t, result, 2)

	query, ok := result[0].(protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Equal(t, "MATCH (n) RETURN n", query.Name)
	assert.Equal(t, protocol.SymbolKindFunction, query.Kind)
	assert.Equal(t, uint32(0), query.Range.Start.Line)
	assert.Equal(t, uint32(1), query.Range.End.Line)
	require.Len(t, query.Children, 2)
	assert.Equal(t, "MATCH", query.Children[0].Detail)
	assert.Equal(t, "RETURN", query.Children[1].Detail)
	assert.Equal(t, "RETURN n", query.Children[1].Name)

	command, ok := result[1].(protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Equal(t, "CREATE ROLE reader", command.Name)
	assert.Equal(t, protocol.SymbolKindEvent, command.Kind)
	assert.Equal(t, "command", command.Detail)
}

func TestServer_FoldingRanges(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, "MATCH (n)\nRETURN n;\nRETURN 1;\nCALL {\n  RETURN 2 AS x\n}\nRETURN x;\n")

	ranges, err := server.FoldingRanges(context.Background(), &protocol.FoldingRangeParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{TextDocument: textDocument()},
	})
	require.NoError(t, err)

	var lines [][2]uint32
	for _, r := range ranges {
		lines = append(lines, [2]uint32{r.StartLine, r.EndLine})
	}

	assert.Equal(t, [][2]uint32{{0, 1}, {3, 6}, {3, 5}}, lines)
}

func TestServer_Hover(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, "RETURN 1 + 2")

	hover, err := server.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: textDocument(),
			Position:     protocol.Position{Line: 0, Character: 7},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, protocol.Markdown, hover.Contents.Kind)
	assert.Equal(t, "**IntegerLit**\n```cypher\n1\n```", hover.Contents.Value)
	require.NotNil(t, hover.Range)
	assert.Equal(t, protocol.Position{Line: 0, Character: 7}, hover.Range.Start)
	assert.Equal(t, protocol.Position{Line: 0, Character: 8}, hover.Range.End)

	hover, err = server.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: textDocument(),
			Position:     protocol.Position{Line: 3, Character: 0},
		},
	})
	require.NoError(t, err)
	assert.Nil(t, hover)
}

func TestServer_HoverFunction(t *testing.T) {
	t.Parallel()

	server, _ := newTestServer(t)
	openDocument(t, server, "RETURN toUpper('a')")

	hover, err := server.Hover(context.Background(), &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: textDocument(),
			Position:     protocol.Position{Line: 0, Character: 9},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, hover)
	assert.Equal(t, "```cypher\ntoUpper(input :: STRING) :: STRING\n```\nReturns the given STRING in uppercase.", hover.Contents.Value)
}

func TestServer_LintDiagnostics(t *testing.T) {
	t.Parallel()

	server, client := newTestServer(t)
	openDocument(t, server, "RETURN frobnicate(1), toUpper('a', 'b')")

	diags := client.last(t).Diagnostics
	require.Len(t, diags, 2)

	assert.Equal(t, "unknown-function", diags[0].Code)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, diags[0].Severity)
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 7},
		End:   protocol.Position{Line: 0, Character: 20},
	}, diags[0].Range)

	assert.Equal(t, "function-arity", diags[1].Code)
	assert.Equal(t, protocol.DiagnosticSeverityError, diags[1].Severity)
	assert.Equal(t, "cypher", diags[1].Source)
}

func TestServer_Completion(t *testing.T) {
	t.Parallel()

	complete := func(t *testing.T, text string, pos protocol.Position) []protocol.CompletionItem {
		t.Helper()

		server, _ := newTestServer(t)
		openDocument(t, server, text)

		list, err := server.Completion(context.Background(), &protocol.CompletionParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: textDocument(),
				Position:     pos,
			},
		})
		require.NoError(t, err)
		require.NotNil(t, list)

		return list.Items
	}

	labels := func(items []protocol.CompletionItem, kind protocol.CompletionItemKind) []string {
		var out []string

		for _, item := range items {
			if item.Kind == kind {
				out = append(out, item.Label)
			}
		}

		return out
	}

	t.Run("keywords", func(t *testing.T) {
		t.Parallel()

		items := complete(t, "MATCH (n) ret", protocol.Position{Line: 0, Character: 13})
		keywords := labels(items, protocol.CompletionItemKindKeyword)
		assert.Contains(t, keywords, "RETURN")
		assert.NotContains(t, keywords, "MATCH")
	})

	t.Run("variables of the statement", func(t *testing.T) {
		t.Parallel()

		items := complete(t, "MATCH (person)-[knows]->(other) RETURN pe", protocol.Position{Line: 0, Character: 41})
		assert.Equal(t, []string{"person"}, labels(items, protocol.CompletionItemKindVariable))
	})

	t.Run("parameters after dollar", func(t *testing.T) {
		t.Parallel()

		items := complete(t, "MATCH (n {id: $id}) RETURN n LIMIT $limit;\nRETURN $", protocol.Position{Line: 1, Character: 8})
		assert.Equal(t, []string{"id", "limit"}, labels(items, protocol.CompletionItemKindVariable))
		assert.Empty(t, labels(items, protocol.CompletionItemKindKeyword))
	})

	t.Run("functions", func(t *testing.T) {
		t.Parallel()

		items := complete(t, "RETURN toup", protocol.Position{Line: 0, Character: 11})
		assert.Equal(t, []string{"toUpper"}, labels(items, protocol.CompletionItemKindFunction))
	})

	t.Run("functions of a namespace", func(t *testing.T) {
		t.Parallel()

		items := complete(t, "RETURN vector.similarity.", protocol.Position{Line: 0, Character: 25})
		assert.Equal(t, []string{"cosine", "euclidean"}, labels(items, protocol.CompletionItemKindFunction))
		assert.Empty(t, labels(items, protocol.CompletionItemKindKeyword))
	})
}

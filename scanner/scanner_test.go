package scanner_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rlch/cypherparse/scanner"
	"github.com/rlch/cypherparse/token"
)

func kinds(tokens []lexer.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}

	return out
}

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "match return",
			input: "MATCH (n:Person) RETURN n",
			want: []token.Kind{
				token.MATCH, token.LParen, token.Ident, token.Colon, token.Ident, token.RParen,
				token.RETURN, token.Ident, token.EOF,
			},
		},
		{
			name:  "keywords are case insensitive",
			input: "match Optional return",
			want:  []token.Kind{token.MATCH, token.OPTIONAL, token.RETURN, token.EOF},
		},
		{
			name:  "range keeps dotdot",
			input: "[*1..5]",
			want: []token.Kind{
				token.LBracket, token.Star, token.IntegerLiteral, token.DotDot, token.IntegerLiteral,
				token.RBracket, token.EOF,
			},
		},
		{
			name:  "numbers",
			input: "1 1.5 .5 1e10 2E-3 0x1F 0o17 017 0",
			want: []token.Kind{
				token.IntegerLiteral, token.FloatLiteral, token.FloatLiteral, token.FloatLiteral,
				token.FloatLiteral, token.HexLiteral, token.OctalLiteral, token.OctalLiteral,
				token.IntegerLiteral, token.EOF,
			},
		},
		{
			name:  "operators",
			input: "<> != <= >= =~ += || :: .. <-- -->",
			want: []token.Kind{
				token.Neq, token.InvalidNeq, token.Le, token.Ge, token.RegexMatch, token.PlusEq,
				token.Concat, token.ColonColon, token.DotDot,
				token.Lt, token.Minus, token.Minus, token.Minus, token.Minus, token.Gt, token.EOF,
			},
		},
		{
			name:  "comments dropped",
			input: "RETURN 1 // trailing\n/* block\ncomment */ ;",
			want:  []token.Kind{token.RETURN, token.IntegerLiteral, token.Semicolon, token.EOF},
		},
		{
			name:  "strings and escaped names",
			input: "'a' \"b\\\"c\" `weird name`",
			want:  []token.Kind{token.StringLiteral, token.StringLiteral, token.EscapedIdent, token.EOF},
		},
		{
			name:  "parameters",
			input: "$param $0 $`p`",
			want: []token.Kind{
				token.Dollar, token.Ident, token.Dollar, token.IntegerLiteral, token.Dollar,
				token.EscapedIdent, token.EOF,
			},
		},
		{
			name:  "unicode arrows",
			input: "⟨——⟩",
			want:  []token.Kind{token.ArrowLeftHead, token.ArrowLine, token.ArrowLine, token.ArrowRightHead, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := scanner.Tokenize("", tt.input)
			require.NoError(t, err)

			if diff := cmp.Diff(tt.want, kinds(tokens)); diff != "" {
				t.Errorf("Tokenize(%q) kinds mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestTokenizePositions(t *testing.T) {
	t.Parallel()

	tokens, err := scanner.Tokenize("q.cypher", "MATCH\n  (n)")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, lexer.Position{Filename: "q.cypher", Offset: 0, Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, lexer.Position{Filename: "q.cypher", Offset: 8, Line: 2, Column: 3}, tokens[1].Pos)
	assert.Equal(t, "n", tokens[2].Value)
}

func TestTokenizeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unterminated string", "RETURN 'abc", scanner.ErrUnterminatedString},
		{"unterminated name", "RETURN `abc", scanner.ErrUnterminatedName},
		{"unterminated comment", "RETURN 1 /* never", scanner.ErrUnterminatedComment},
		{"unexpected character", "RETURN #", scanner.ErrUnexpectedCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens, err := scanner.Tokenize("", tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, token.EOF, tokens[len(tokens)-1].Type)
		})
	}
}

func TestDefinitionSymbols(t *testing.T) {
	t.Parallel()

	def := scanner.New()
	symbols := def.Symbols()

	assert.Equal(t, token.MATCH, symbols["MATCH"])
	assert.Equal(t, token.Ident, symbols["Ident"])

	lex, err := def.Lex("", strings.NewReader("RETURN 1"))
	require.NoError(t, err)

	tok, err := lex.Next()
	require.NoError(t, err)
	assert.Equal(t, token.RETURN, tok.Type)
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want string
	}{
		{`'plain'`, "plain"},
		{`"double"`, "double"},
		{`'it\'s'`, "it's"},
		{`'a\nb'`, "a\nb"},
		{`'tab\there'`, "tab\there"},
		{`'é'`, "é"},
		{`'back\\slash'`, `back\slash`},
	}

	for _, tt := range tests {
		got, err := scanner.Unquote(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)

		again, err := scanner.Unquote(scanner.Quote(got))
		require.NoError(t, err)
		assert.Equal(t, got, again)
	}

	_, err := scanner.Unquote(`'\u12'`)
	assert.ErrorIs(t, err, scanner.ErrInvalidEscape)
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "weird name", scanner.UnescapeName("`weird name`"))
	assert.Equal(t, "a`b", scanner.UnescapeName("`a``b`"))
	assert.Equal(t, "plain", scanner.UnescapeName("plain"))
	assert.Equal(t, "`a``b`", scanner.EscapeName("a`b"))
	assert.True(t, scanner.IsPlainName("person_1"))
	assert.False(t, scanner.IsPlainName("1abc"))
	assert.False(t, scanner.IsPlainName("has space"))
}

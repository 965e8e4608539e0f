package token

import (
	"strings"
	"sync"
)

var punctuation = map[Kind]string{
	LParen:         "(",
	RParen:         ")",
	LBracket:       "[",
	RBracket:       "]",
	LBrace:         "{",
	RBrace:         "}",
	Comma:          ",",
	Semicolon:      ";",
	Dot:            ".",
	DotDot:         "..",
	Colon:          ":",
	ColonColon:     "::",
	Dollar:         "$",
	Bar:            "|",
	Ampersand:      "&",
	Bang:           "!",
	Percent:        "%",
	Question:       "?",
	Eq:             "=",
	Neq:            "<>",
	InvalidNeq:     "!=",
	Lt:             "<",
	Gt:             ">",
	Le:             "<=",
	Ge:             ">=",
	RegexMatch:     "=~",
	Plus:           "+",
	PlusEq:         "+=",
	Minus:          "-",
	Star:           "*",
	Slash:          "/",
	Caret:          "^",
	Concat:         "||",
	ArrowLine:      "-",
	ArrowLeftHead:  "<",
	ArrowRightHead: ">",
}

var descriptions = map[Kind]string{
	EOF:            "end of input",
	Comment:        "a comment",
	Whitespace:     "whitespace",
	Ident:          "an identifier",
	EscapedIdent:   "an identifier",
	StringLiteral:  "a string literal",
	IntegerLiteral: "an integer",
	HexLiteral:     "an integer",
	OctalLiteral:   "an integer",
	FloatLiteral:   "a float",
}

// keywords maps upper-cased keyword text to its kind. Built once on first use
// and never written afterwards.
var keywords = sync.OnceValue(func() map[string]Kind {
	m := make(map[string]Kind, len(keywordText))
	for i, text := range keywordText {
		m[text] = keywordBegin - Kind(i) - 1
	}

	return m
})

// Lookup returns the keyword kind for word, matched case-insensitively.
func Lookup(word string) (Kind, bool) {
	k, ok := keywords()[strings.ToUpper(word)]

	return k, ok
}

// IsKeyword reports whether k is a keyword kind.
func IsKeyword(k Kind) bool {
	return k < keywordBegin && k > keywordEnd
}

// IsName reports whether a token of kind k can be used as a symbolic name.
// Every keyword doubles as a name wherever the grammar expects one.
func IsName(k Kind) bool {
	return k == Ident || k == EscapedIdent || IsKeyword(k)
}

// IsNumber reports whether k is an unsigned numeric literal.
func IsNumber(k Kind) bool {
	switch k {
	case IntegerLiteral, HexLiteral, OctalLiteral, FloatLiteral:
		return true
	default:
		return false
	}
}

// Text returns the canonical source spelling of a keyword or punctuation
// kind, or "" for kinds without fixed text.
func Text(k Kind) string {
	if IsKeyword(k) {
		return keywordText[keywordBegin-k-1]
	}

	return punctuation[k]
}

// Name describes k for diagnostics, e.g. 'MATCH', '(' or "an identifier".
func Name(k Kind) string {
	if d, ok := descriptions[k]; ok {
		return d
	}

	if t := Text(k); t != "" {
		return "'" + t + "'"
	}

	return "token"
}

// Keywords returns every keyword spelling in alphabetical order. The result
// is a fresh copy.
func Keywords() []string {
	out := make([]string, len(keywordText))
	copy(out, keywordText[:])

	return out
}

var clauseStart = sync.OnceValue(func() map[Kind]bool {
	return setOf(
		USE, FINISH, RETURN, CREATE, INSERT, DETACH, NODETACH, DELETE, SET, REMOVE,
		OPTIONAL, MATCH, MERGE, WITH, UNWIND, CALL, LOAD, FOREACH, ORDER, SKIP, OFFSET, LIMIT,
	)
})

// StartsClause reports whether k can begin a query clause.
func StartsClause(k Kind) bool {
	return clauseStart()[k]
}

var commandStart = sync.OnceValue(func() map[Kind]bool {
	return setOf(
		CREATE, DROP, ALTER, RENAME, GRANT, DENY, REVOKE, START, STOP, ENABLE,
		DRYRUN, DEALLOCATE, REALLOCATE, SHOW, TERMINATE,
	)
})

// StartsCommand reports whether k can begin an administrative command. CREATE
// is shared with the CREATE clause and needs further lookahead.
func StartsCommand(k Kind) bool {
	return commandStart()[k]
}

var reservedInIsLabel = sync.OnceValue(func() map[Kind]bool {
	return setOf(NOT, NULL, TYPED, NORMALIZED, NFC, NFD, NFKC, NFKD)
})

// IsLabelName reports whether k can name a label after IS. The words that
// continue an IS NULL, IS TYPED or IS NORMALIZED predicate are excluded.
func IsLabelName(k Kind) bool {
	return IsName(k) && !reservedInIsLabel()[k]
}

// IsNormalForm reports whether k is one of NFC, NFD, NFKC or NFKD.
func IsNormalForm(k Kind) bool {
	return k == NFC || k == NFD || k == NFKC || k == NFKD
}

// IsComparison reports whether k is a comparison operator.
func IsComparison(k Kind) bool {
	switch k {
	case Eq, Neq, InvalidNeq, Lt, Gt, Le, Ge:
		return true
	default:
		return false
	}
}

// IsArrowLine reports whether k can form the line of a relationship arrow.
func IsArrowLine(k Kind) bool {
	return k == Minus || k == ArrowLine
}

// IsLeftArrowHead reports whether k can open a left-pointing arrow.
func IsLeftArrowHead(k Kind) bool {
	return k == Lt || k == ArrowLeftHead
}

// IsRightArrowHead reports whether k can close a right-pointing arrow.
func IsRightArrowHead(k Kind) bool {
	return k == Gt || k == ArrowRightHead
}

func setOf(kinds ...Kind) map[Kind]bool {
	m := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}

	return m
}

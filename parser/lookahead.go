package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/token"
)

// Lookahead predicates. Each grammar point with overlapping alternatives asks
// one of these before committing, and none of them consumes tokens.
//
//	decision                      predicate                 window
//	statement: command or query   isCommandStart            3 tokens
//	CREATE: command or clause     isCreateCommand           3 tokens
//	CALL: subquery or procedure   isSubqueryCall            2 tokens
//	atom: 21 alternatives         atomKind                  up to a bracket group
//	'[': comprehension or list    bracketKind               bracket group
//	'(': pattern or parenthesized isPatternExpression       bracket group + arrow
//	name: call, projection, var   atomKind                  dotted name + 1
//	IS: label test or predicate   isLabelExpressionStart    1 token
//	'(' in a pattern: sub-path    isParenthesizedPath       3 tokens
//	pattern part: selector        isSelectorStart           2 tokens
//	node/rel: variable present    isPatternVariable         2 tokens
//	GRANT/REVOKE ROLE             isRoleGrant               3 tokens
//	SHOW ROLE/USER ... PRIVILEGES showsPrivileges           name list + 1
//	'|': label union or separator reserveBar                bracket group
//
// Bracket groups are indexed once by indexGroups when the parser is built,
// so looking up a group's closer or its top-level bars costs O(1) no matter
// how deeply the groups nest.
//
// When no alternative applies the calling rule reports the union of the
// alternatives' first tokens.

// kindAt returns the kind of the token at absolute index i.
func (p *Parser) kindAt(i int) token.Kind {
	if i < len(p.tokens) {
		return p.tokens[i].Type
	}

	return token.EOF
}

// group describes one bracket group of the token stream. Indices are -1
// when absent; close is -1 when the statement ends before the group does.
type group struct {
	close    int
	firstBar int
	lastBar  int
}

// indexGroups pairs every '(', '[' and '{' with its closer and records the
// first and last '|' directly inside it, in one pass over the tokens. A
// statement boundary closes nothing: groups still open there stay unclosed.
func indexGroups(tokens []lexer.Token) []group {
	groups := make([]group, len(tokens))

	var open []int

	for i, tok := range tokens {
		switch tok.Type {
		case token.LParen, token.LBracket, token.LBrace:
			groups[i] = group{close: -1, firstBar: -1, lastBar: -1}
			open = append(open, i)
		case token.RParen, token.RBracket, token.RBrace:
			if len(open) > 0 {
				groups[open[len(open)-1]].close = i
				open = open[:len(open)-1]
			}
		case token.Bar:
			if len(open) > 0 {
				g := &groups[open[len(open)-1]]
				if g.firstBar < 0 {
					g.firstBar = i
				}

				g.lastBar = i
			}
		case token.Semicolon, token.EOF:
			open = open[:0]
		}
	}

	return groups
}

// groupAt returns the group opened at index open.
func (p *Parser) groupAt(open int) group {
	switch p.kindAt(open) {
	case token.LParen, token.LBracket, token.LBrace:
		return p.groups[open]
	default:
		return group{close: -1, firstBar: -1, lastBar: -1}
	}
}

// matching returns the index of the bracket closing the one at index open,
// or -1 if the statement ends first.
func (p *Parser) matching(open int) int {
	return p.groupAt(open).close
}

// isCommandStart reports whether the statement at the cursor is an
// administrative command.
func (p *Parser) isCommandStart() bool {
	switch p.peek() {
	case token.CREATE:
		return p.isCreateCommand()
	case token.DROP, token.ALTER, token.RENAME, token.GRANT, token.DENY, token.REVOKE,
		token.START, token.STOP, token.ENABLE, token.DRYRUN, token.DEALLOCATE,
		token.REALLOCATE, token.SHOW, token.TERMINATE:
		return true
	default:
		return false
	}
}

// isCreateCommand separates CREATE ROLE and friends from the CREATE clause.
func (p *Parser) isCreateCommand() bool {
	next := p.peekN(1)
	if p.peekN(2) == token.Eq {
		return false
	}

	switch next {
	case token.OR, token.ROLE, token.USER, token.DATABASE, token.COMPOSITE, token.ALIAS,
		token.INDEX, token.CONSTRAINT:
		return true
	case token.BTREE, token.RANGE, token.TEXT, token.POINT, token.VECTOR, token.LOOKUP,
		token.FULLTEXT:
		return p.peekN(2) == token.INDEX
	default:
		return false
	}
}

// isSubqueryCall reports whether the CALL at the cursor, after an optional
// OPTIONAL, opens a subquery.
func (p *Parser) isSubqueryCall() bool {
	i := 1
	if p.at(token.OPTIONAL) {
		i = 2
	}

	next := p.peekN(i)

	return next == token.LBrace || next == token.LParen
}

type atomAlt int

const (
	atomInvalid atomAlt = iota
	atomNumber
	atomString
	atomBool
	atomNull
	atomKeywordLiteral
	atomMap
	atomParameter
	atomCase
	atomExtendedCase
	atomCountStar
	atomExists
	atomCount
	atomCollect
	atomMapProjection
	atomListComprehension
	atomList
	atomPatternComprehension
	atomReduce
	atomListPredicate
	atomNormalize
	atomTrim
	atomPattern
	atomShortestPath
	atomParenthesized
	atomFunction
	atomVariable
)

// atomKind picks the atom alternative at the cursor.
func (p *Parser) atomKind() atomAlt {
	cur := p.peek()
	next := p.peekN(1)

	switch {
	case token.IsNumber(cur):
		return atomNumber
	case cur == token.Minus && token.IsNumber(next):
		return atomNumber
	case cur == token.StringLiteral:
		return atomString
	case cur == token.LBrace:
		return atomMap
	case cur == token.Dollar:
		return atomParameter
	case cur == token.LBracket:
		return p.bracketKind()
	case cur == token.LParen:
		if p.isPatternExpression(p.pos) {
			return atomPattern
		}

		return atomParenthesized
	case !token.IsName(cur):
		return atomInvalid
	}

	// Keywords that introduce an alternative when followed by the right
	// token. Otherwise they fall through to the name alternatives.
	switch cur {
	case token.TRUE, token.FALSE:
		return atomBool
	case token.NULL:
		return atomNull
	case token.INF, token.INFINITY, token.NAN:
		return atomKeywordLiteral
	case token.CASE:
		if next == token.WHEN {
			return atomCase
		}

		return atomExtendedCase
	case token.COUNT:
		if next == token.LBrace {
			return atomCount
		}

		if next == token.LParen && p.peekN(2) == token.Star && p.peekN(3) == token.RParen {
			return atomCountStar
		}
	case token.EXISTS:
		if next == token.LBrace {
			return atomExists
		}
	case token.COLLECT:
		if next == token.LBrace {
			return atomCollect
		}
	case token.REDUCE:
		if next == token.LParen {
			return atomReduce
		}
	case token.NORMALIZE:
		if next == token.LParen {
			return atomNormalize
		}
	case token.TRIM:
		if next == token.LParen {
			return atomTrim
		}
	case token.SHORTESTPATH, token.ALLSHORTESTPATHS:
		if next == token.LParen {
			return atomShortestPath
		}
	case token.ALL, token.ANY, token.NONE, token.SINGLE:
		if next == token.LParen && token.IsName(p.peekN(2)) && p.peekN(3) == token.IN {
			return atomListPredicate
		}
	}

	return p.nameKind()
}

// nameKind separates a function call, a map projection and a variable.
func (p *Parser) nameKind() atomAlt {
	i := p.pos + 1
	for p.kindAt(i) == token.Dot && token.IsName(p.kindAt(i+1)) {
		i += 2
	}

	switch p.kindAt(i) {
	case token.LParen:
		return atomFunction
	case token.LBrace:
		if i == p.pos+1 {
			return atomMapProjection
		}
	}

	return atomVariable
}

// bracketKind decides what the '[' at the cursor opens.
func (p *Parser) bracketKind() atomAlt {
	if token.IsName(p.peekN(1)) && p.peekN(2) == token.IN {
		return atomListComprehension
	}

	start := p.pos + 1
	if token.IsName(p.kindAt(start)) && p.kindAt(start+1) == token.Eq {
		start += 2
	}

	if p.kindAt(start) == token.LParen && p.isPatternExpression(start) && p.hasTopLevelBar(p.pos) {
		return atomPatternComprehension
	}

	return atomList
}

// hasTopLevelBar reports whether a '|' appears directly inside the bracket
// group opened at index open.
func (p *Parser) hasTopLevelBar(open int) bool {
	return p.topLevelBar(open) >= 0
}

// topLevelBar returns the index of the first '|' directly inside the group
// opened at index open, or -1.
func (p *Parser) topLevelBar(open int) int {
	return p.groupAt(open).firstBar
}

// reserveBar claims the last '|' directly inside the group opened at index
// open for the construct being parsed, so that a label expression in front
// of it stops there instead of reading it as a label union. Earlier bars at
// the same level stay available to label unions.
func (p *Parser) reserveBar(open int) {
	last := p.groupAt(open).lastBar
	if last < 0 {
		return
	}

	if p.barStops == nil {
		p.barStops = make(map[int]bool)
	}

	p.barStops[last] = true
}

// isPatternExpression reports whether the '(' at index i starts a node
// pattern that is followed by a relationship.
func (p *Parser) isPatternExpression(i int) bool {
	if !p.looksLikeNode(i) {
		return false
	}

	closeAt := p.matching(i)
	if closeAt < 0 {
		return false
	}

	return p.isRelationshipAt(closeAt + 1)
}

// looksLikeNode reports whether the content of the '(' at index i can only
// be a node pattern.
func (p *Parser) looksLikeNode(i int) bool {
	switch p.kindAt(i + 1) {
	case token.RParen, token.Colon, token.LBrace, token.Dollar:
		return true
	}

	if !token.IsName(p.kindAt(i + 1)) {
		return false
	}

	switch p.kindAt(i + 2) {
	case token.RParen, token.Colon, token.LBrace, token.Dollar, token.WHERE, token.IS:
		return true
	default:
		return false
	}
}

// isRelationshipAt reports whether a complete relationship arrow starts at
// index i and is followed by a node.
func (p *Parser) isRelationshipAt(i int) bool {
	if token.IsLeftArrowHead(p.kindAt(i)) {
		i++
	}

	if !token.IsArrowLine(p.kindAt(i)) {
		return false
	}

	i++

	if p.kindAt(i) == token.LBracket {
		closeAt := p.matching(i)
		if closeAt < 0 {
			return false
		}

		i = closeAt + 1
	}

	if !token.IsArrowLine(p.kindAt(i)) {
		return false
	}

	i++

	if token.IsRightArrowHead(p.kindAt(i)) {
		i++
	}

	return p.kindAt(i) == token.LParen
}

// isRelationshipStart reports whether the cursor is at the start of a
// relationship arrow.
func (p *Parser) isRelationshipStart() bool {
	i := 0
	if token.IsLeftArrowHead(p.peek()) {
		i = 1
	}

	if !token.IsArrowLine(p.peekN(i)) {
		return false
	}

	next := p.peekN(i + 1)

	return token.IsArrowLine(next) || next == token.LBracket
}

// isLabelExpressionStart reports whether the token at offset n can begin
// a label expression after IS.
func (p *Parser) isLabelExpressionStart(n int) bool {
	switch k := p.peekN(n); {
	case token.IsLabelName(k):
		return true
	case k == token.Percent, k == token.LParen, k == token.Bang, k == token.Dollar:
		return true
	default:
		return false
	}
}

// isParenthesizedPath reports whether the '(' at the cursor opens a
// parenthesized sub-path rather than a node.
func (p *Parser) isParenthesizedPath() bool {
	switch inner := p.peekN(1); {
	case inner == token.LParen:
		return true
	case token.IsName(inner) && p.peekN(2) == token.Eq:
		return true
	case inner == token.SHORTESTPATH || inner == token.ALLSHORTESTPATHS:
		return p.peekN(2) == token.LParen
	default:
		return p.isSelectorAt(1)
	}
}

// isSelectorStart reports whether a path selector begins at the cursor.
func (p *Parser) isSelectorStart() bool {
	return p.isSelectorAt(0)
}

func (p *Parser) isSelectorAt(n int) bool {
	switch p.peekN(n) {
	case token.ANY, token.ALL, token.SHORTEST:
	default:
		return false
	}

	switch p.peekN(n + 1) {
	case token.SHORTEST, token.IntegerLiteral, token.PATH, token.PATHS, token.GROUP, token.GROUPS,
		token.LParen:
		return true
	default:
		return false
	}
}

// isPatternVariable reports whether the name at the cursor is a node or
// relationship variable rather than the WHERE or IS that follows one.
func (p *Parser) isPatternVariable() bool {
	cur := p.peek()
	if !token.IsName(cur) {
		return false
	}

	switch cur {
	case token.WHERE:
		return p.endsPatternFiller(p.peekN(1))
	case token.IS:
		return !p.isLabelExpressionStart(1)
	default:
		return true
	}
}

// endsPatternFiller reports whether k can follow a variable inside a node or
// relationship pattern.
func (p *Parser) endsPatternFiller(k token.Kind) bool {
	switch k {
	case token.RParen, token.RBracket, token.Colon, token.LBrace, token.Dollar, token.WHERE,
		token.IS, token.Star:
		return true
	default:
		return false
	}
}

// isRoleGrant reports whether GRANT or REVOKE at the cursor grants a role
// rather than the ROLE MANAGEMENT privilege.
func (p *Parser) isRoleGrant() bool {
	i := 1
	if p.at(token.REVOKE) && p.atAnyN(1, token.GRANT, token.DENY) {
		return false
	}

	if p.peekN(i) != token.ROLE && p.peekN(i) != token.ROLES {
		return false
	}

	return !(p.peekN(i+1) == token.MANAGEMENT && p.peekN(i+2) == token.ON)
}

// showsPrivileges reports whether the name list starting at offset n is
// followed by PRIVILEGE or PRIVILEGES.
func (p *Parser) showsPrivileges(n int) bool {
	for {
		switch k := p.peekN(n); {
		case k == token.PRIVILEGE || k == token.PRIVILEGES:
			return true
		case k == token.Dollar:
			n += 2
		case token.IsName(k):
			n++
		default:
			return false
		}

		if p.peekN(n) != token.Comma {
			k := p.peekN(n)

			return k == token.PRIVILEGE || k == token.PRIVILEGES
		}

		n++
	}
}

func (p *Parser) atAnyN(n int, kinds ...token.Kind) bool {
	cur := p.peekN(n)
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}

	return false
}

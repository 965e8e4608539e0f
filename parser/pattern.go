package parser

import (
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// parsePatternList parses `pattern (, pattern)*`.
func (p *Parser) parsePatternList() []*ast.Pattern {
	patterns := []*ast.Pattern{p.parsePattern()}
	for p.accept(token.Comma) {
		patterns = append(patterns, p.parsePattern())
	}

	return patterns
}

// parsePattern parses `[var =] [selector] (shortestPath(...) | element)`.
func (p *Parser) parsePattern() *ast.Pattern {
	p.enter()
	defer p.leave()

	start := p.tok().Pos
	pat := &ast.Pattern{}

	if token.IsName(p.peek()) && p.peekN(1) == token.Eq {
		pat.Variable = p.parseVariable()
		p.next()
	}

	if p.isSelectorStart() {
		pat.Selector = p.parseSelector()
	}

	if p.atAny(token.SHORTESTPATH, token.ALLSHORTESTPATHS) && p.peekN(1) == token.LParen {
		pat.Element = p.parseShortestPathPattern()
	} else {
		pat.Element = p.parsePathPattern(true)
	}

	pat.NodeMeta = p.meta(start)

	return pat
}

// parsePathPattern parses a path element. In clause position (quantified)
// relationships and parenthesized sub-paths may carry quantifiers and path
// parts may be juxtaposed. In expression position the path is a plain
// node-relationship chain with at least one relationship.
func (p *Parser) parsePathPattern(quantified bool) *ast.PathPattern {
	start := p.tok().Pos
	path := &ast.PathPattern{}

	if !quantified {
		path.Elements = append(path.Elements, p.parseNodePattern())

		for p.isRelationshipStart() {
			path.Elements = append(path.Elements, p.parseRelationshipPattern(false), p.parseNodePattern())
		}

		if len(path.Elements) == 1 {
			p.failExpected(token.Minus, token.Lt)
		}

		path.NodeMeta = p.meta(start)

		return path
	}

	for {
		if !p.at(token.LParen) {
			p.failExpected(token.LParen)
		}

		if p.isParenthesizedPath() {
			path.Elements = append(path.Elements, p.parseParenthesizedPath())
		} else {
			path.Elements = append(path.Elements, p.parseNodePattern())

			for p.isRelationshipStart() {
				path.Elements = append(path.Elements, p.parseRelationshipPattern(true), p.parseNodePattern())
			}
		}

		if !p.at(token.LParen) {
			break
		}
	}

	path.NodeMeta = p.meta(start)

	return path
}

// parseShortestPathPattern parses `shortestPath(path)` or
// `allShortestPaths(path)`.
func (p *Parser) parseShortestPathPattern() *ast.ShortestPathPattern {
	tok := p.next()
	sp := &ast.ShortestPathPattern{All: tok.Type == token.ALLSHORTESTPATHS}
	open := p.expect(token.LParen)
	sp.Path = p.parsePathPattern(true)
	p.expectClose(token.RParen, open)
	sp.NodeMeta = p.meta(tok.Pos)

	return sp
}

// parseParenthesizedPath parses `( pattern [WHERE e] ) [quantifier]`.
func (p *Parser) parseParenthesizedPath() *ast.ParenthesizedPath {
	p.enter()
	defer p.leave()

	open := p.expect(token.LParen)
	pp := &ast.ParenthesizedPath{Pattern: p.parsePattern()}

	if p.accept(token.WHERE) {
		pp.Where = p.parseExpression()
	}

	p.expectClose(token.RParen, open)

	if p.isQuantifierStart() {
		pp.Quantifier = p.parseQuantifier()
	}

	pp.NodeMeta = p.meta(open.Pos)

	return pp
}

// parseNodePattern parses `( [var] [labels] [props] [WHERE e] )`.
func (p *Parser) parseNodePattern() *ast.NodePattern {
	open := p.expect(token.LParen)
	node := &ast.NodePattern{}

	if p.isPatternVariable() {
		node.Variable = p.parseVariable()
	}

	if p.at(token.Colon) || (p.at(token.IS) && p.isLabelExpressionStart(1)) {
		node.Labels = p.parseLabelExpression()
	}

	if p.atAny(token.LBrace, token.Dollar) {
		node.Properties = p.parseMapOrParameter()
	}

	if p.accept(token.WHERE) {
		node.Where = p.parseExpression()
	}

	p.expectClose(token.RParen, open)
	node.NodeMeta = p.meta(open.Pos)

	return node
}

// parseRelationshipPattern parses `<?-[detail]->?`, followed in clause
// position by an optional quantifier.
func (p *Parser) parseRelationshipPattern(quantified bool) *ast.RelationshipPattern {
	start := p.tok().Pos
	rel := &ast.RelationshipPattern{}

	left := false
	if token.IsLeftArrowHead(p.peek()) {
		p.next()

		left = true
	}

	p.expectArrowLine()

	if p.at(token.LBracket) {
		p.parseRelationshipDetail(rel)
	}

	p.expectArrowLine()

	right := false
	if token.IsRightArrowHead(p.peek()) {
		p.next()

		right = true
	}

	rel.Direction = arrowDirection(left, right)

	if quantified && p.isQuantifierStart() {
		rel.Quantifier = p.parseQuantifier()
	}

	rel.NodeMeta = p.meta(start)

	return rel
}

func (p *Parser) expectArrowLine() {
	if !token.IsArrowLine(p.peek()) {
		p.failExpected(token.Minus)
	}

	p.next()
}

// parseRelationshipDetail parses `[ [var] [types] [*length] [props] [WHERE e] ]`.
func (p *Parser) parseRelationshipDetail(rel *ast.RelationshipPattern) {
	open := p.expect(token.LBracket)

	if p.isPatternVariable() {
		rel.Variable = p.parseVariable()
	}

	if p.at(token.Colon) || (p.at(token.IS) && p.isLabelExpressionStart(1)) {
		rel.Labels = p.parseLabelExpression()
	}

	if p.at(token.Star) {
		rel.Length = p.parsePathLength()
	}

	if p.atAny(token.LBrace, token.Dollar) {
		rel.Properties = p.parseMapOrParameter()
	}

	if p.accept(token.WHERE) {
		rel.Where = p.parseExpression()
	}

	p.expectClose(token.RBracket, open)
}

// parsePathLength parses `*`, `*n`, `*n..`, `*..m` or `*n..m`. A single
// bound sets both ends.
func (p *Parser) parsePathLength() *ast.PathLength {
	start := p.expect(token.Star).Pos
	pl := &ast.PathLength{}

	if p.at(token.IntegerLiteral) {
		from := p.parseUnsigned()
		pl.From = &from

		if !p.accept(token.DotDot) {
			to := from
			pl.To = &to
		} else if p.at(token.IntegerLiteral) {
			to := p.parseUnsigned()
			pl.To = &to
		}
	} else if p.accept(token.DotDot) && p.at(token.IntegerLiteral) {
		to := p.parseUnsigned()
		pl.To = &to
	}

	pl.NodeMeta = p.meta(start)

	return pl
}

// isQuantifierStart reports whether a quantifier begins at the cursor.
func (p *Parser) isQuantifierStart() bool {
	switch p.peek() {
	case token.Plus, token.Star:
		return true
	case token.LBrace:
		next := p.peekN(1)

		return next == token.IntegerLiteral || next == token.Comma
	default:
		return false
	}
}

// parseQuantifier parses `{n}`, `{n,}`, `{,m}`, `{n,m}`, `+` or `*`.
func (p *Parser) parseQuantifier() *ast.Quantifier {
	start := p.tok().Pos
	q := &ast.Quantifier{}

	switch {
	case p.accept(token.Plus):
		q.Kind = ast.QuantifierPlus
	case p.accept(token.Star):
		q.Kind = ast.QuantifierStar
	default:
		open := p.expect(token.LBrace)

		if p.at(token.IntegerLiteral) {
			lower := p.parseUnsigned()
			q.Lower = &lower
		}

		if p.accept(token.Comma) {
			if p.at(token.IntegerLiteral) {
				upper := p.parseUnsigned()
				q.Upper = &upper
			}
		} else {
			if q.Lower == nil {
				p.failExpected(token.IntegerLiteral, token.Comma)
			}

			upper := *q.Lower
			q.Upper = &upper
		}

		p.expectClose(token.RBrace, open)
	}

	q.NodeMeta = p.meta(start)

	return q
}

// parseSelector parses one of the six path selectors, left to right.
func (p *Parser) parseSelector() *ast.Selector {
	start := p.tok().Pos
	sel := &ast.Selector{}

	switch {
	case p.accept(token.ANY):
		if p.accept(token.SHORTEST) {
			sel.Kind = ast.SelectorAnyShortest
		} else {
			sel.Kind = ast.SelectorAny
			sel.Count = p.parseOptionalCount()
		}

		p.acceptPathNoun()
	case p.accept(token.ALL):
		sel.Kind = ast.SelectorAll
		if p.accept(token.SHORTEST) {
			sel.Kind = ast.SelectorAllShortest
		}

		p.acceptPathNoun()
	case p.accept(token.SHORTEST):
		sel.Count = p.parseOptionalCount()
		p.acceptPathNoun()

		switch {
		case p.atAny(token.GROUP, token.GROUPS):
			p.next()

			sel.Kind = ast.SelectorShortestGroups
		case sel.Count != nil:
			sel.Kind = ast.SelectorShortest
		default:
			p.failExpected(token.IntegerLiteral, token.GROUP, token.GROUPS)
		}
	default:
		p.failExpected(token.ANY, token.ALL, token.SHORTEST)
	}

	sel.NodeMeta = p.meta(start)

	return sel
}

func (p *Parser) parseOptionalCount() *int64 {
	if !p.at(token.IntegerLiteral) {
		return nil
	}

	n := p.parseUnsigned()

	return &n
}

func (p *Parser) acceptPathNoun() {
	if p.atAny(token.PATH, token.PATHS) {
		p.next()
	}
}

// parseMatchMode parses an optional REPEATABLE ELEMENTS or DIFFERENT
// RELATIONSHIPS match mode.
func (p *Parser) parseMatchMode() *ast.MatchMode {
	start := p.tok().Pos

	switch {
	case p.at(token.REPEATABLE) && p.atAnyN(1, token.ELEMENT, token.ELEMENTS):
		p.next()

		if p.next().Type == token.ELEMENT {
			p.accept(token.BINDINGS)
		}

		return &ast.MatchMode{NodeMeta: p.meta(start), Kind: ast.RepeatableElements}
	case p.at(token.DIFFERENT) && p.atAnyN(1, token.RELATIONSHIP, token.RELATIONSHIPS):
		p.next()

		if p.next().Type == token.RELATIONSHIP {
			p.accept(token.BINDINGS)
		}

		return &ast.MatchMode{NodeMeta: p.meta(start), Kind: ast.DifferentRelationships}
	default:
		return nil
	}
}

// =============================================================================
// INSERT patterns
// =============================================================================

func (p *Parser) parseInsertPatternList() []*ast.Pattern {
	patterns := []*ast.Pattern{p.parseInsertPattern()}
	for p.accept(token.Comma) {
		patterns = append(patterns, p.parseInsertPattern())
	}

	return patterns
}

// parseInsertPattern parses `[var =] node (rel node)*` where nodes carry
// only label conjunctions and map properties and every relationship names
// exactly one type.
func (p *Parser) parseInsertPattern() *ast.Pattern {
	start := p.tok().Pos
	pat := &ast.Pattern{}

	if token.IsName(p.peek()) && p.peekN(1) == token.Eq {
		pat.Variable = p.parseVariable()
		p.next()
	}

	path := &ast.PathPattern{Elements: []ast.PathElement{p.parseInsertNode()}}

	for p.isRelationshipStart() {
		path.Elements = append(path.Elements, p.parseInsertRelationship(), p.parseInsertNode())
	}

	path.NodeMeta = p.meta(start)
	pat.Element = path
	pat.NodeMeta = p.meta(start)

	return pat
}

func (p *Parser) parseInsertNode() *ast.NodePattern {
	open := p.expect(token.LParen)
	node := &ast.NodePattern{}

	if p.isPatternVariable() {
		node.Variable = p.parseVariable()
	}

	if p.at(token.Colon) || p.at(token.IS) {
		node.Labels = p.parseInsertLabels(true)
	}

	if p.at(token.LBrace) {
		node.Properties = p.parseMapLiteral()
	}

	p.expectClose(token.RParen, open)
	node.NodeMeta = p.meta(open.Pos)

	return node
}

func (p *Parser) parseInsertRelationship() *ast.RelationshipPattern {
	start := p.tok().Pos
	rel := &ast.RelationshipPattern{}

	left := false
	if token.IsLeftArrowHead(p.peek()) {
		p.next()

		left = true
	}

	p.expectArrowLine()
	open := p.expect(token.LBracket)

	if p.isPatternVariable() {
		rel.Variable = p.parseVariable()
	}

	rel.Labels = p.parseInsertLabels(false)

	if p.at(token.LBrace) {
		rel.Properties = p.parseMapLiteral()
	}

	p.expectClose(token.RBracket, open)
	p.expectArrowLine()

	right := false
	if token.IsRightArrowHead(p.peek()) {
		p.next()

		right = true
	}

	rel.Direction = arrowDirection(left, right)

	rel.NodeMeta = p.meta(start)

	return rel
}

// parseInsertLabels parses `(:|IS) name ((&|:) name)*`, or a single name for
// relationships.
func (p *Parser) parseInsertLabels(conjunction bool) *ast.LabelExpression {
	start := p.tok().Pos
	le := &ast.LabelExpression{}

	switch {
	case p.accept(token.Colon):
	case p.accept(token.IS):
		le.Is = true
	default:
		p.failExpected(token.Colon, token.IS)
	}

	le.Expr = p.parseSimpleName(le.Is)

	for conjunction && p.atAny(token.Ampersand, token.Colon) {
		colon := p.next().Type == token.Colon
		right := p.parseSimpleName(le.Is)
		le.Expr = &ast.LabelAnd{NodeMeta: p.meta(start), Left: le.Expr, Right: right, Colon: colon}
	}

	le.NodeMeta = p.meta(start)

	return le
}

func (p *Parser) parseSimpleName(isSyntax bool) *ast.LabelName {
	start := p.tok().Pos
	if !p.isLabelName(p.peek(), isSyntax) {
		p.failExpected(token.Ident)
	}

	name := p.parseName()

	return &ast.LabelName{NodeMeta: p.meta(start), Name: name}
}

func arrowDirection(left, right bool) ast.Direction {
	switch {
	case left && right:
		return ast.DirectionBoth
	case left:
		return ast.DirectionLeft
	case right:
		return ast.DirectionRight
	default:
		return ast.DirectionNone
	}
}

package parser

import (
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// Label expressions share one implementation for both syntaxes. The isSyntax
// flag only changes which names may appear as a bare label:
//
//	or   := and (('|' | '|:') and)*
//	and  := not (('&' | ':') not)*
//	not  := '!'* atom
//	atom := '(' or ')' | '%' | '$(' e ')' | '$any(' e ')' | '$all(' e ')' | name

// parseLabelExpression parses `:expr` or `IS expr`.
func (p *Parser) parseLabelExpression() *ast.LabelExpression {
	start := p.tok().Pos
	le := &ast.LabelExpression{}

	switch {
	case p.accept(token.Colon):
	case p.accept(token.IS):
		le.Is = true
	default:
		p.failExpected(token.Colon, token.IS)
	}

	le.Expr = p.parseLabelOr(le.Is)
	le.NodeMeta = p.meta(start)

	return le
}

func (p *Parser) parseLabelOr(isSyntax bool) ast.LabelExpr {
	left := p.parseLabelAnd(isSyntax)

	for p.at(token.Bar) && !p.barStops[p.pos] && p.labelFollows(1, isSyntax) {
		p.next()
		colon := p.accept(token.Colon)
		right := p.parseLabelAnd(isSyntax)
		left = &ast.LabelOr{NodeMeta: p.meta(left.Span().Start), Left: left, Right: right, Colon: colon}
	}

	return left
}

func (p *Parser) parseLabelAnd(isSyntax bool) ast.LabelExpr {
	left := p.parseLabelNot(isSyntax)

	for {
		var colon bool

		switch {
		case p.at(token.Ampersand):
		case p.at(token.Colon) && p.labelFollows(1, isSyntax):
			colon = true
		default:
			return left
		}

		p.next()
		right := p.parseLabelNot(isSyntax)
		left = &ast.LabelAnd{NodeMeta: p.meta(left.Span().Start), Left: left, Right: right, Colon: colon}
	}
}

func (p *Parser) parseLabelNot(isSyntax bool) ast.LabelExpr {
	if !p.at(token.Bang) {
		return p.parseLabelAtom(isSyntax)
	}

	p.enter()
	defer p.leave()

	start := p.next().Pos
	operand := p.parseLabelNot(isSyntax)

	return &ast.LabelNot{NodeMeta: p.meta(start), Operand: operand}
}

func (p *Parser) parseLabelAtom(isSyntax bool) ast.LabelExpr {
	start := p.tok().Pos

	switch cur := p.peek(); {
	case cur == token.LParen:
		p.enter()
		defer p.leave()

		open := p.next()
		inner := p.parseLabelOr(isSyntax)
		p.expectClose(token.RParen, open)

		return &ast.LabelParen{NodeMeta: p.meta(start), Inner: inner}
	case cur == token.Percent:
		p.next()

		return &ast.LabelWildcard{NodeMeta: p.meta(start)}
	case cur == token.Dollar:
		return p.parseDynamicLabel()
	case p.isLabelName(cur, isSyntax):
		name := p.parseName()

		return &ast.LabelName{NodeMeta: p.meta(start), Name: name}
	}

	p.failExpected(token.Ident, token.LParen, token.Percent, token.Bang, token.Dollar)

	return nil
}

// parseDynamicLabel parses `$(e)`, `$any(e)` or `$all(e)`.
func (p *Parser) parseDynamicLabel() *ast.DynamicLabel {
	start := p.expect(token.Dollar).Pos
	dl := &ast.DynamicLabel{}

	switch {
	case p.accept(token.ANY):
		dl.Mode = ast.DynamicAny
	case p.accept(token.ALL):
		dl.Mode = ast.DynamicAll
	}

	open := p.expect(token.LParen)
	dl.Expr = p.parseExpression()
	p.expectClose(token.RParen, open)
	dl.NodeMeta = p.meta(start)

	return dl
}

func (p *Parser) isLabelName(k token.Kind, isSyntax bool) bool {
	if isSyntax {
		return token.IsLabelName(k)
	}

	return token.IsName(k)
}

// labelFollows reports whether the token at offset n can continue a label
// expression after '|', '&' or ':'. A '|' may itself be followed by ':'.
func (p *Parser) labelFollows(n int, isSyntax bool) bool {
	for p.peekN(n) == token.Colon {
		n++
	}

	switch k := p.peekN(n); {
	case k == token.LParen, k == token.Percent, k == token.Bang, k == token.Dollar:
		return true
	default:
		return p.isLabelName(k, isSyntax)
	}
}

// parseLabelConjunction parses the `:A:$(e)` or `IS A:B` label list used
// by SET and REMOVE.
func (p *Parser) parseLabelConjunction() (is bool, labels []ast.LabelExpr) {
	switch {
	case p.accept(token.IS):
		is = true
		labels = append(labels, p.parseSimpleLabel(true))
	case !p.at(token.Colon):
		p.failExpected(token.Colon, token.IS)
	}

	for p.accept(token.Colon) {
		labels = append(labels, p.parseSimpleLabel(false))
	}

	return is, labels
}

// parseSimpleLabel parses a label name or a dynamic label.
func (p *Parser) parseSimpleLabel(isSyntax bool) ast.LabelExpr {
	start := p.tok().Pos

	if p.at(token.Dollar) {
		return p.parseDynamicLabel()
	}

	if !p.isLabelName(p.peek(), isSyntax) {
		p.failExpected(token.Ident, token.Dollar)
	}

	name := p.parseName()

	return &ast.LabelName{NodeMeta: p.meta(start), Name: name}
}

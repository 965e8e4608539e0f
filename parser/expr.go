package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// parseExpression parses OR, the loosest level of the expression ladder:
//
//	OR > XOR > AND > NOT > comparison chain > single test > + - || >
//	* / % > ^ > unary sign > postfix > atom
func (p *Parser) parseExpression() ast.Expr {
	p.enter()
	defer p.leave()

	return p.parseBinary(token.OR, ast.OpOr, p.parseXor)
}

func (p *Parser) parseXor() ast.Expr {
	return p.parseBinary(token.XOR, ast.OpXor, p.parseAnd)
}

func (p *Parser) parseAnd() ast.Expr {
	return p.parseBinary(token.AND, ast.OpAnd, p.parseNot)
}

// parseBinary parses a left-associative level with a single operator.
func (p *Parser) parseBinary(op token.Kind, bop ast.BinaryOp, operand func() ast.Expr) ast.Expr {
	left := operand()

	for p.accept(op) {
		right := operand()
		left = &ast.BinaryExpr{
			NodeMeta: p.meta(left.Span().Start),
			Op:       bop,
			Left:     left,
			Right:    right,
		}
	}

	return left
}

func (p *Parser) parseNot() ast.Expr {
	if !p.at(token.NOT) {
		return p.parseComparison()
	}

	p.enter()
	defer p.leave()

	start := p.next().Pos
	operand := p.parseNot()

	return &ast.NotExpr{NodeMeta: p.meta(start), Operand: operand}
}

var comparisonOps = map[token.Kind]ast.ComparisonOp{
	token.Eq:         ast.CmpEq,
	token.Neq:        ast.CmpNeq,
	token.InvalidNeq: ast.CmpInvalidNeq,
	token.Lt:         ast.CmpLt,
	token.Gt:         ast.CmpGt,
	token.Le:         ast.CmpLe,
	token.Ge:         ast.CmpGe,
}

// parseComparison parses the comparison level. One operator yields a
// Comparison, more yield a single flat ComparisonChain.
func (p *Parser) parseComparison() ast.Expr {
	first := p.parseSingleTest()
	if !token.IsComparison(p.peek()) {
		return first
	}

	operands := []ast.Expr{first}

	var ops []ast.ComparisonOp

	for token.IsComparison(p.peek()) {
		ops = append(ops, comparisonOps[p.next().Type])
		operands = append(operands, p.parseSingleTest())
	}

	if len(ops) == 1 {
		return &ast.Comparison{
			NodeMeta: p.meta(first.Span().Start),
			Op:       ops[0],
			Left:     operands[0],
			Right:    operands[1],
		}
	}

	return &ast.ComparisonChain{
		NodeMeta:  p.meta(first.Span().Start),
		Operands:  operands,
		Operators: ops,
	}
}

// parseSingleTest attaches at most one string, null, type or normal form
// predicate to an additive expression.
func (p *Parser) parseSingleTest() ast.Expr {
	left := p.parseAdditive()
	start := left.Span().Start

	switch p.peek() {
	case token.RegexMatch:
		p.next()

		return p.stringPredicate(start, ast.OpRegexMatch, left)
	case token.CONTAINS:
		p.next()

		return p.stringPredicate(start, ast.OpContains, left)
	case token.IN:
		p.next()

		return p.stringPredicate(start, ast.OpIn, left)
	case token.STARTS:
		p.next()
		p.expect(token.WITH)

		return p.stringPredicate(start, ast.OpStartsWith, left)
	case token.ENDS:
		p.next()
		p.expect(token.WITH)

		return p.stringPredicate(start, ast.OpEndsWith, left)
	case token.ColonColon:
		p.next()
		typ := p.parseType()

		return &ast.IsTyped{NodeMeta: p.meta(start), Operand: left, Syntax: ast.TypeSyntaxColons, Type: typ}
	case token.IS:
		return p.parseIsPredicate(left)
	}

	return left
}

func (p *Parser) stringPredicate(start lexer.Position, op ast.StringOp, left ast.Expr) ast.Expr {
	right := p.parseAdditive()

	return &ast.StringPredicate{NodeMeta: p.meta(start), Op: op, Left: left, Right: right}
}

// parseIsPredicate parses IS [NOT] NULL, IS [NOT] TYPED t, IS [NOT] :: t and
// IS [NOT] [form] NORMALIZED. Label tests after IS were already taken by the
// postfix chain.
func (p *Parser) parseIsPredicate(left ast.Expr) ast.Expr {
	start := left.Span().Start
	p.expect(token.IS)
	not := p.accept(token.NOT)

	switch {
	case p.accept(token.NULL):
		return &ast.IsNull{NodeMeta: p.meta(start), Operand: left, Not: not}
	case p.accept(token.TYPED):
		typ := p.parseType()

		return &ast.IsTyped{NodeMeta: p.meta(start), Operand: left, Not: not, Syntax: ast.TypeSyntaxIsTyped, Type: typ}
	case p.accept(token.ColonColon):
		typ := p.parseType()

		return &ast.IsTyped{NodeMeta: p.meta(start), Operand: left, Not: not, Syntax: ast.TypeSyntaxIsColons, Type: typ}
	case p.at(token.NORMALIZED) || token.IsNormalForm(p.peek()):
		form := p.parseNormalForm()
		p.expect(token.NORMALIZED)

		return &ast.IsNormalized{NodeMeta: p.meta(start), Operand: left, Not: not, Form: form}
	}

	p.failExpected(token.NULL, token.TYPED, token.ColonColon, token.NORMALIZED, token.NFC, token.NFD,
		token.NFKC, token.NFKD)

	return nil
}

// parseNormalForm consumes an optional NFC, NFD, NFKC or NFKD.
func (p *Parser) parseNormalForm() ast.NormalForm {
	switch p.peek() {
	case token.NFC:
		p.next()

		return ast.NFC
	case token.NFD:
		p.next()

		return ast.NFD
	case token.NFKC:
		p.next()

		return ast.NFKC
	case token.NFKD:
		p.next()

		return ast.NFKD
	default:
		return ast.NormalFormDefault
	}
}

var additiveOps = map[token.Kind]ast.BinaryOp{
	token.Plus:   ast.OpAdd,
	token.Minus:  ast.OpSubtract,
	token.Concat: ast.OpConcat,
}

var multiplicativeOps = map[token.Kind]ast.BinaryOp{
	token.Star:    ast.OpMultiply,
	token.Slash:   ast.OpDivide,
	token.Percent: ast.OpModulo,
}

var powerOps = map[token.Kind]ast.BinaryOp{
	token.Caret: ast.OpPower,
}

func (p *Parser) parseAdditive() ast.Expr {
	return p.parseBinaryTable(additiveOps, p.parseMultiplicative)
}

func (p *Parser) parseMultiplicative() ast.Expr {
	return p.parseBinaryTable(multiplicativeOps, p.parsePower)
}

// parsePower parses `^`, which like the other arithmetic levels associates
// to the left.
func (p *Parser) parsePower() ast.Expr {
	return p.parseBinaryTable(powerOps, p.parseUnary)
}

func (p *Parser) parseBinaryTable(ops map[token.Kind]ast.BinaryOp, operand func() ast.Expr) ast.Expr {
	left := operand()

	for {
		op, ok := ops[p.peek()]
		if !ok {
			return left
		}

		p.next()
		right := operand()
		left = &ast.BinaryExpr{
			NodeMeta: p.meta(left.Span().Start),
			Op:       op,
			Left:     left,
			Right:    right,
		}
	}
}

// parseUnary parses an optional single sign. A minus directly before a
// number is left to the atom, which folds it into the literal.
func (p *Parser) parseUnary() ast.Expr {
	switch {
	case p.at(token.Minus) && token.IsNumber(p.peekN(1)):
		return p.parsePostfix()
	case p.at(token.Plus), p.at(token.Minus):
		tok := p.next()
		op := ast.UnaryPlus

		if tok.Type == token.Minus {
			op = ast.UnaryMinus
		}

		operand := p.parsePostfix()

		return &ast.UnaryExpr{NodeMeta: p.meta(tok.Pos), Op: op, Operand: operand}
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses an atom followed by any number of property lookups,
// label tests, index lookups and slices.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parseAtom()
	start := expr.Span().Start

	for {
		switch {
		case p.at(token.Dot):
			p.next()
			key := p.parseName()
			expr = &ast.PropertyAccess{NodeMeta: p.meta(start), Subject: expr, Key: key}
		case p.at(token.Colon):
			labels := p.parseLabelExpression()
			expr = &ast.LabelCheck{NodeMeta: p.meta(start), Subject: expr, Labels: labels}
		case p.at(token.IS) && p.isLabelExpressionStart(1):
			labels := p.parseLabelExpression()
			expr = &ast.LabelCheck{NodeMeta: p.meta(start), Subject: expr, Labels: labels}
		case p.at(token.LBracket):
			expr = p.parseSubscript(expr)
		default:
			return expr
		}
	}
}

// parseSubscript parses `[i]` or `[from..to]`.
func (p *Parser) parseSubscript(subject ast.Expr) ast.Expr {
	start := subject.Span().Start
	open := p.expect(token.LBracket)

	var from ast.Expr
	if !p.at(token.DotDot) {
		from = p.parseExpression()
	}

	if !p.accept(token.DotDot) {
		p.expectClose(token.RBracket, open)

		return &ast.IndexExpr{NodeMeta: p.meta(start), Subject: subject, Index: from}
	}

	var to ast.Expr
	if !p.at(token.RBracket) {
		to = p.parseExpression()
	}

	p.expectClose(token.RBracket, open)

	return &ast.SliceExpr{NodeMeta: p.meta(start), Subject: subject, From: from, To: to}
}

// parseExpressionList parses `e (, e)*`.
func (p *Parser) parseExpressionList() []ast.Expr {
	exprs := []ast.Expr{p.parseExpression()}
	for p.accept(token.Comma) {
		exprs = append(exprs, p.parseExpression())
	}

	return exprs
}

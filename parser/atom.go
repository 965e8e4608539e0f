package parser

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/scanner"
	"github.com/rlch/cypherparse/token"
)

// atomFirst is the expected set reported when no atom alternative applies.
var atomFirst = []token.Kind{
	token.Ident, token.IntegerLiteral, token.FloatLiteral, token.StringLiteral,
	token.LParen, token.LBracket, token.LBrace, token.Dollar, token.Minus,
}

// parseAtom dispatches on the atom alternative chosen by atomKind.
func (p *Parser) parseAtom() ast.Expr {
	switch p.atomKind() {
	case atomNumber:
		return p.parseNumber()
	case atomString:
		return p.parseStringLit()
	case atomBool:
		tok := p.next()

		return &ast.BoolLit{NodeMeta: p.meta(tok.Pos), Value: tok.Type == token.TRUE}
	case atomNull:
		tok := p.next()

		return &ast.NullLit{NodeMeta: p.meta(tok.Pos)}
	case atomKeywordLiteral:
		tok := p.next()

		return &ast.KeywordLit{NodeMeta: p.meta(tok.Pos), Keyword: token.Text(tok.Type)}
	case atomMap:
		return p.parseMapLiteral()
	case atomParameter:
		return p.parseParameter(ast.ParamAny)
	case atomCase:
		return p.parseCase()
	case atomExtendedCase:
		return p.parseExtendedCase()
	case atomCountStar:
		start := p.next().Pos
		p.expect(token.LParen)
		p.expect(token.Star)
		p.expect(token.RParen)

		return &ast.CountStar{NodeMeta: p.meta(start)}
	case atomExists:
		start := p.next().Pos
		body := p.parseSubqueryBody()

		return &ast.ExistsExpr{NodeMeta: p.meta(start), Body: body}
	case atomCount:
		start := p.next().Pos
		body := p.parseSubqueryBody()

		return &ast.CountExpr{NodeMeta: p.meta(start), Body: body}
	case atomCollect:
		start := p.next().Pos
		open := p.expect(token.LBrace)
		query := p.parseRegularQuery()
		p.expectClose(token.RBrace, open)

		return &ast.CollectExpr{NodeMeta: p.meta(start), Query: query}
	case atomMapProjection:
		return p.parseMapProjection()
	case atomListComprehension:
		return p.parseListComprehension()
	case atomList:
		return p.parseListLiteral()
	case atomPatternComprehension:
		return p.parsePatternComprehension()
	case atomReduce:
		return p.parseReduce()
	case atomListPredicate:
		return p.parseListPredicate()
	case atomNormalize:
		return p.parseNormalize()
	case atomTrim:
		return p.parseTrim()
	case atomPattern:
		start := p.tok().Pos
		path := p.parsePathPattern(false)

		return &ast.PatternExpr{NodeMeta: p.meta(start), Pattern: path}
	case atomShortestPath:
		start := p.tok().Pos
		sp := p.parseShortestPathPattern()

		return &ast.ShortestPathExpr{NodeMeta: p.meta(start), Pattern: sp}
	case atomParenthesized:
		open := p.next()
		inner := p.parseExpression()
		p.expectClose(token.RParen, open)

		return &ast.ParenExpr{NodeMeta: p.meta(open.Pos), Inner: inner}
	case atomFunction:
		return p.parseFunctionCall()
	case atomVariable:
		return p.parseVariable()
	}

	p.failExpected(atomFirst...)

	return nil
}

// =============================================================================
// Literals and names
// =============================================================================

// parseNumber parses an integer or float literal, folding a leading minus.
func (p *Parser) parseNumber() ast.Expr {
	start := p.tok().Pos
	sign := ""

	if p.accept(token.Minus) {
		sign = "-"
	}

	tok := p.next()
	if !token.IsNumber(tok.Type) {
		p.internal("numeric literal")
	}

	if tok.Type == token.FloatLiteral {
		return &ast.FloatLit{NodeMeta: p.meta(start), Raw: sign + tok.Value}
	}

	return &ast.IntegerLit{NodeMeta: p.meta(start), Raw: sign + tok.Value}
}

func (p *Parser) parseStringLit() *ast.StringLit {
	tok := p.expect(token.StringLiteral)

	return &ast.StringLit{NodeMeta: p.meta(tok.Pos), Value: p.unquote(tok)}
}

// unquote decodes a string token, raising on a malformed escape.
func (p *Parser) unquote(tok lexer.Token) string {
	s, err := scanner.Unquote(tok.Value)
	if err != nil {
		p.raise(&SyntaxError{
			Kind:    InvalidToken,
			Token:   tok,
			Span:    spanOf(tok),
			Message: "invalid string literal " + describe(tok) + ": " + err.Error(),
		})
	}

	return s
}

// parseUnsigned parses a decimal integer token as an int64.
func (p *Parser) parseUnsigned() int64 {
	tok := p.expect(token.IntegerLiteral)

	n, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		p.raise(&SyntaxError{
			Kind:    InvalidToken,
			Token:   tok,
			Span:    spanOf(tok),
			Message: "integer " + describe(tok) + " out of range",
		})
	}

	return n
}

// parseName consumes a symbolic name and returns it unescaped.
func (p *Parser) parseName() string {
	if !token.IsName(p.peek()) {
		p.failExpected(token.Ident)
	}

	return scanner.UnescapeName(p.next().Value)
}

func (p *Parser) parseVariable() *ast.Variable {
	start := p.tok().Pos
	name := p.parseName()

	return &ast.Variable{NodeMeta: p.meta(start), Name: name}
}

// parseDottedName parses `name (. name)*`.
func (p *Parser) parseDottedName() []string {
	parts := []string{p.parseName()}
	for p.at(token.Dot) && token.IsName(p.peekN(1)) {
		p.next()
		parts = append(parts, p.parseName())
	}

	return parts
}

// parseParameter parses `$name` or `$0`, tagging it with the type its call
// site expects.
func (p *Parser) parseParameter(typ ast.ParamType) *ast.Parameter {
	start := p.expect(token.Dollar).Pos

	var name string

	switch {
	case p.at(token.IntegerLiteral):
		name = p.next().Value
	case token.IsName(p.peek()):
		name = p.parseName()
	default:
		p.failExpected(token.Ident, token.IntegerLiteral)
	}

	return &ast.Parameter{NodeMeta: p.meta(start), Name: name, Type: typ}
}

// parseMapLiteral parses `{ key: e, ... }`.
func (p *Parser) parseMapLiteral() *ast.MapLit {
	open := p.expect(token.LBrace)
	m := &ast.MapLit{}

	if !p.at(token.RBrace) {
		for {
			start := p.tok().Pos
			key := p.parseName()
			p.expect(token.Colon)
			value := p.parseExpression()
			m.Entries = append(m.Entries, &ast.MapEntry{NodeMeta: p.meta(start), Key: key, Value: value})

			if !p.accept(token.Comma) {
				break
			}
		}
	}

	p.expectClose(token.RBrace, open)
	m.NodeMeta = p.meta(open.Pos)

	return m
}

// parseMapOrParameter parses a property map or a parameter typed ANY.
func (p *Parser) parseMapOrParameter() ast.Expr {
	if p.at(token.Dollar) {
		return p.parseParameter(ast.ParamAny)
	}

	return p.parseMapLiteral()
}

func (p *Parser) parseListLiteral() *ast.ListLit {
	open := p.expect(token.LBracket)

	var items []ast.Expr
	if !p.at(token.RBracket) {
		items = p.parseExpressionList()
	}

	p.expectClose(token.RBracket, open)

	return &ast.ListLit{NodeMeta: p.meta(open.Pos), Items: items}
}

// =============================================================================
// CASE
// =============================================================================

func (p *Parser) parseCase() *ast.CaseExpr {
	open := p.expect(token.CASE)
	c := &ast.CaseExpr{}

	for p.at(token.WHEN) {
		start := p.next().Pos
		when := p.parseExpression()
		p.expect(token.THEN)
		then := p.parseExpression()
		c.Alternatives = append(c.Alternatives, &ast.CaseAlternative{NodeMeta: p.meta(start), When: when, Then: then})
	}

	if len(c.Alternatives) == 0 {
		p.failExpected(token.WHEN)
	}

	if p.accept(token.ELSE) {
		c.Else = p.parseExpression()
	}

	p.expectClose(token.END, open)
	c.NodeMeta = p.meta(open.Pos)

	return c
}

func (p *Parser) parseExtendedCase() *ast.ExtendedCaseExpr {
	open := p.expect(token.CASE)
	c := &ast.ExtendedCaseExpr{Input: p.parseExpression()}

	for p.at(token.WHEN) {
		start := p.next().Pos
		alt := &ast.ExtendedCaseAlternative{Operands: []ast.WhenOperand{p.parseWhenOperand()}}

		for p.accept(token.Comma) {
			alt.Operands = append(alt.Operands, p.parseWhenOperand())
		}

		p.expect(token.THEN)
		alt.Then = p.parseExpression()
		alt.NodeMeta = p.meta(start)
		c.Alternatives = append(c.Alternatives, alt)
	}

	if len(c.Alternatives) == 0 {
		p.failExpected(token.WHEN)
	}

	if p.accept(token.ELSE) {
		c.Else = p.parseExpression()
	}

	p.expectClose(token.END, open)
	c.NodeMeta = p.meta(open.Pos)

	return c
}

// parseWhenOperand parses one operand of an extended WHEN. Operands that
// begin with an operator test the CASE input; anything else is compared to
// it for equality.
func (p *Parser) parseWhenOperand() ast.WhenOperand {
	start := p.tok().Pos

	switch cur := p.peek(); {
	case cur == token.RegexMatch:
		p.next()
		value := p.parseAdditive()

		return &ast.WhenStringPredicate{NodeMeta: p.meta(start), Op: ast.OpRegexMatch, Value: value}
	case cur == token.STARTS && p.peekN(1) == token.WITH:
		p.pos += 2
		value := p.parseAdditive()

		return &ast.WhenStringPredicate{NodeMeta: p.meta(start), Op: ast.OpStartsWith, Value: value}
	case cur == token.ENDS && p.peekN(1) == token.WITH:
		p.pos += 2
		value := p.parseAdditive()

		return &ast.WhenStringPredicate{NodeMeta: p.meta(start), Op: ast.OpEndsWith, Value: value}
	case cur == token.ColonColon:
		p.next()
		typ := p.parseType()

		return &ast.WhenTyped{NodeMeta: p.meta(start), Syntax: ast.TypeSyntaxColons, Type: typ}
	case cur == token.IS:
		return p.parseWhenIs()
	case token.IsComparison(cur):
		op := comparisonOps[p.next().Type]
		value := p.parseSingleTest()

		return &ast.WhenComparison{NodeMeta: p.meta(start), Op: op, Value: value}
	}

	value := p.parseExpression()

	return &ast.WhenEquals{NodeMeta: p.meta(start), Value: value}
}

func (p *Parser) parseWhenIs() ast.WhenOperand {
	start := p.expect(token.IS).Pos
	not := p.accept(token.NOT)

	switch {
	case p.accept(token.NULL):
		return &ast.WhenNull{NodeMeta: p.meta(start), Not: not}
	case p.accept(token.TYPED):
		typ := p.parseType()

		return &ast.WhenTyped{NodeMeta: p.meta(start), Not: not, Syntax: ast.TypeSyntaxIsTyped, Type: typ}
	case p.accept(token.ColonColon):
		typ := p.parseType()

		return &ast.WhenTyped{NodeMeta: p.meta(start), Not: not, Syntax: ast.TypeSyntaxIsColons, Type: typ}
	case p.at(token.NORMALIZED) || token.IsNormalForm(p.peek()):
		form := p.parseNormalForm()
		p.expect(token.NORMALIZED)

		return &ast.WhenNormalized{NodeMeta: p.meta(start), Not: not, Form: form}
	}

	p.failExpected(token.NULL, token.TYPED, token.ColonColon, token.NORMALIZED)

	return nil
}

// =============================================================================
// Subquery expressions
// =============================================================================

// parseSubqueryBody parses the braces of EXISTS and COUNT: either a full
// query or a pattern list with an optional WHERE.
func (p *Parser) parseSubqueryBody() *ast.SubqueryBody {
	open := p.expect(token.LBrace)
	body := &ast.SubqueryBody{}

	if token.StartsClause(p.peek()) {
		body.Query = p.parseRegularQuery()
	} else {
		body.Mode = p.parseMatchMode()
		body.Patterns = p.parsePatternList()

		if p.accept(token.WHERE) {
			body.Where = p.parseExpression()
		}
	}

	p.expectClose(token.RBrace, open)
	body.NodeMeta = p.meta(open.Pos)

	return body
}

// =============================================================================
// Map projection and list forms
// =============================================================================

func (p *Parser) parseMapProjection() *ast.MapProjection {
	v := p.parseVariable()
	open := p.expect(token.LBrace)
	proj := &ast.MapProjection{Variable: v}

	if !p.at(token.RBrace) {
		for {
			proj.Items = append(proj.Items, p.parseMapProjectionItem())

			if !p.accept(token.Comma) {
				break
			}
		}
	}

	p.expectClose(token.RBrace, open)
	proj.NodeMeta = p.meta(v.Pos)

	return proj
}

func (p *Parser) parseMapProjectionItem() ast.MapProjectionItem {
	start := p.tok().Pos

	switch {
	case p.at(token.Dot) && p.peekN(1) == token.Star:
		p.pos += 2

		return &ast.AllPropertiesSelector{NodeMeta: p.meta(start)}
	case p.accept(token.Dot):
		key := p.parseName()

		return &ast.PropertySelector{NodeMeta: p.meta(start), Key: key}
	case token.IsName(p.peek()) && p.peekN(1) == token.Colon:
		key := p.parseName()
		p.next()
		value := p.parseExpression()

		return &ast.LiteralEntry{NodeMeta: p.meta(start), Key: key, Value: value}
	case token.IsName(p.peek()):
		v := p.parseVariable()

		return &ast.VariableSelector{NodeMeta: p.meta(start), Variable: v}
	}

	p.failExpected(token.Dot, token.Ident)

	return nil
}

func (p *Parser) parseListComprehension() *ast.ListComprehension {
	p.reserveBar(p.pos)
	open := p.expect(token.LBracket)
	lc := &ast.ListComprehension{Variable: p.parseVariable()}
	p.expect(token.IN)
	lc.Source = p.parseExpression()

	if p.accept(token.WHERE) {
		lc.Where = p.parseExpression()
	}

	if p.accept(token.Bar) {
		lc.Projection = p.parseExpression()
	}

	p.expectClose(token.RBracket, open)
	lc.NodeMeta = p.meta(open.Pos)

	return lc
}

func (p *Parser) parsePatternComprehension() *ast.PatternComprehension {
	p.reserveBar(p.pos)
	open := p.expect(token.LBracket)
	pc := &ast.PatternComprehension{}

	if token.IsName(p.peek()) && p.peekN(1) == token.Eq {
		pc.PathVariable = p.parseVariable()
		p.next()
	}

	pc.Pattern = p.parsePathPattern(false)

	if p.accept(token.WHERE) {
		pc.Where = p.parseExpression()
	}

	p.expect(token.Bar)
	pc.Projection = p.parseExpression()
	p.expectClose(token.RBracket, open)
	pc.NodeMeta = p.meta(open.Pos)

	return pc
}

func (p *Parser) parseReduce() *ast.ReduceExpr {
	start := p.expect(token.REDUCE).Pos
	p.reserveBar(p.pos)
	open := p.expect(token.LParen)
	r := &ast.ReduceExpr{Accumulator: p.parseVariable()}
	p.expect(token.Eq)
	r.Init = p.parseExpression()
	p.expect(token.Comma)
	r.Variable = p.parseVariable()
	p.expect(token.IN)
	r.Source = p.parseExpression()
	p.expect(token.Bar)
	r.Body = p.parseExpression()
	p.expectClose(token.RParen, open)
	r.NodeMeta = p.meta(start)

	return r
}

var predicateKinds = map[token.Kind]ast.PredicateKind{
	token.ALL:    ast.PredicateAll,
	token.ANY:    ast.PredicateAny,
	token.NONE:   ast.PredicateNone,
	token.SINGLE: ast.PredicateSingle,
}

func (p *Parser) parseListPredicate() *ast.ListPredicate {
	tok := p.next()
	lp := &ast.ListPredicate{Kind: predicateKinds[tok.Type]}
	open := p.expect(token.LParen)
	lp.Variable = p.parseVariable()
	p.expect(token.IN)
	lp.Source = p.parseExpression()

	if p.accept(token.WHERE) {
		lp.Where = p.parseExpression()
	}

	p.expectClose(token.RParen, open)
	lp.NodeMeta = p.meta(tok.Pos)

	return lp
}

func (p *Parser) parseNormalize() *ast.NormalizeExpr {
	start := p.expect(token.NORMALIZE).Pos
	open := p.expect(token.LParen)
	n := &ast.NormalizeExpr{Operand: p.parseExpression()}

	if p.accept(token.Comma) {
		if !token.IsNormalForm(p.peek()) {
			p.failExpected(token.NFC, token.NFD, token.NFKC, token.NFKD)
		}

		n.Form = p.parseNormalForm()
	}

	p.expectClose(token.RParen, open)
	n.NodeMeta = p.meta(start)

	return n
}

var trimModes = map[token.Kind]ast.TrimMode{
	token.BOTH:     ast.TrimBoth,
	token.LEADING:  ast.TrimLeading,
	token.TRAILING: ast.TrimTrailing,
}

// parseTrim parses `trim([[BOTH|LEADING|TRAILING] [chars] FROM] source)`.
func (p *Parser) parseTrim() *ast.TrimExpr {
	start := p.expect(token.TRIM).Pos
	open := p.expect(token.LParen)
	t := &ast.TrimExpr{}

	if mode, ok := trimModes[p.peek()]; ok {
		p.next()
		t.Mode = mode
	}

	switch {
	case p.accept(token.FROM):
		t.From = true
		t.Source = p.parseExpression()
	default:
		first := p.parseExpression()
		if p.accept(token.FROM) {
			t.From = true
			t.Characters = first
			t.Source = p.parseExpression()
		} else {
			if t.Mode != ast.TrimDefault {
				p.failExpected(token.FROM)
			}

			t.Source = first
		}
	}

	p.expectClose(token.RParen, open)
	t.NodeMeta = p.meta(start)

	return t
}

// =============================================================================
// Function invocation
// =============================================================================

func (p *Parser) parseFunctionCall() *ast.FunctionCall {
	start := p.tok().Pos
	parts := p.parseDottedName()
	fc := &ast.FunctionCall{
		Namespace: parts[:len(parts)-1],
		Name:      parts[len(parts)-1],
	}

	if len(fc.Namespace) == 0 {
		fc.Namespace = nil
	}

	open := p.expect(token.LParen)

	if !p.atAnyN(1, token.RParen, token.Comma) {
		switch {
		case p.accept(token.DISTINCT):
			fc.Distinct = true
		case p.accept(token.ALL):
			fc.All = true
		}
	}

	if !p.at(token.RParen) {
		fc.Args = p.parseExpressionList()
	}

	p.expectClose(token.RParen, open)
	fc.NodeMeta = p.meta(start)

	return fc
}

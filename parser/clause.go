package parser

import (
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// clauseFirst is the expected set reported when a clause cannot start.
var clauseFirst = []token.Kind{
	token.MATCH, token.OPTIONAL, token.CREATE, token.MERGE, token.RETURN, token.WITH,
	token.UNWIND, token.CALL, token.USE, token.INSERT, token.DELETE, token.DETACH,
	token.SET, token.REMOVE, token.FOREACH, token.LOAD, token.FINISH, token.ORDER,
	token.SKIP, token.LIMIT,
}

// statementFirst adds the command verbs to clauseFirst.
var statementFirst = append(clauseFirst[:len(clauseFirst):len(clauseFirst)],
	token.DROP, token.ALTER, token.RENAME, token.GRANT, token.DENY, token.REVOKE,
	token.START, token.STOP, token.ENABLE, token.DRYRUN, token.DEALLOCATE,
	token.REALLOCATE, token.SHOW, token.TERMINATE,
)

// parseStatement parses `[USE ref] (command | query)`.
func (p *Parser) parseStatement() ast.Statement {
	var use *ast.UseClause
	if p.at(token.USE) {
		use = p.parseUseClause()
	}

	if p.isCommandStart() {
		return p.parseCommandStatement(use)
	}

	if use == nil && !token.StartsClause(p.peek()) {
		p.failExpected(statementFirst...)
	}

	return p.parseRegularQueryFrom(use)
}

// =============================================================================
// Queries
// =============================================================================

func (p *Parser) parseRegularQuery() *ast.RegularQuery {
	return p.parseRegularQueryFrom(nil)
}

// parseRegularQueryFrom parses `single (UNION [ALL|DISTINCT] single)*`. A
// non-nil use clause was already consumed by the caller.
func (p *Parser) parseRegularQueryFrom(use *ast.UseClause) *ast.RegularQuery {
	p.enter()
	defer p.leave()

	q := &ast.RegularQuery{Query: p.parseSingleQuery(use)}

	for p.at(token.UNION) {
		start := p.next().Pos
		u := &ast.Union{}

		switch {
		case p.accept(token.ALL):
			u.All = true
		case p.accept(token.DISTINCT):
			u.Distinct = true
		}

		u.Query = p.parseSingleQuery(nil)
		u.NodeMeta = p.meta(start)
		q.Unions = append(q.Unions, u)
	}

	q.NodeMeta = p.meta(q.Query.Pos)

	return q
}

func (p *Parser) parseSingleQuery(use *ast.UseClause) *ast.SingleQuery {
	sq := &ast.SingleQuery{}

	if use != nil {
		sq.Clauses = append(sq.Clauses, use)
	}

	for token.StartsClause(p.peek()) {
		sq.Clauses = append(sq.Clauses, p.parseClause())
	}

	if len(sq.Clauses) == 0 {
		p.failExpected(clauseFirst...)
	}

	sq.NodeMeta = p.meta(sq.Clauses[0].Span().Start)

	return sq
}

// parseClause dispatches on the clause keyword at the cursor.
func (p *Parser) parseClause() ast.Clause {
	switch p.peek() {
	case token.USE:
		return p.parseUseClause()
	case token.FINISH:
		tok := p.next()

		return &ast.FinishClause{NodeMeta: p.meta(tok.Pos)}
	case token.RETURN:
		start := p.next().Pos
		body := p.parseReturnBody()

		return &ast.ReturnClause{NodeMeta: p.meta(start), Body: body}
	case token.CREATE:
		start := p.next().Pos
		patterns := p.parsePatternList()

		return &ast.CreateClause{NodeMeta: p.meta(start), Patterns: patterns}
	case token.INSERT:
		start := p.next().Pos
		patterns := p.parseInsertPatternList()

		return &ast.InsertClause{NodeMeta: p.meta(start), Patterns: patterns}
	case token.DETACH, token.NODETACH, token.DELETE:
		return p.parseDeleteClause()
	case token.SET:
		return p.parseSetClause()
	case token.REMOVE:
		return p.parseRemoveClause()
	case token.OPTIONAL:
		switch p.peekN(1) {
		case token.MATCH:
			return p.parseMatchClause()
		case token.CALL:
			return p.parseCall()
		}

		p.next()
		p.failExpected(token.MATCH, token.CALL)
	case token.MATCH:
		return p.parseMatchClause()
	case token.MERGE:
		return p.parseMergeClause()
	case token.WITH:
		start := p.next().Pos
		w := &ast.WithClause{Body: p.parseReturnBody()}

		if p.accept(token.WHERE) {
			w.Where = p.parseExpression()
		}

		w.NodeMeta = p.meta(start)

		return w
	case token.UNWIND:
		start := p.next().Pos
		u := &ast.UnwindClause{Expr: p.parseExpression()}
		p.expect(token.AS)
		u.Variable = p.parseVariable()
		u.NodeMeta = p.meta(start)

		return u
	case token.CALL:
		return p.parseCall()
	case token.LOAD:
		return p.parseLoadCSV()
	case token.FOREACH:
		return p.parseForeach()
	case token.ORDER, token.SKIP, token.OFFSET, token.LIMIT:
		return p.parseOrderBySkipLimit()
	}

	p.failExpected(clauseFirst...)

	return nil
}

// =============================================================================
// USE
// =============================================================================

func (p *Parser) parseUseClause() *ast.UseClause {
	start := p.expect(token.USE).Pos
	use := &ast.UseClause{}

	if p.at(token.GRAPH) {
		switch next := p.peekN(1); {
		case next == token.Dollar, next == token.LParen:
			use.Graph = true
		case token.IsName(next) && !token.StartsClause(next) && !token.StartsCommand(next):
			use.Graph = true
		}

		if use.Graph {
			p.next()
		}
	}

	use.Target = p.parseGraphReference()
	use.NodeMeta = p.meta(start)

	return use
}

// parseGraphReference parses a graph name, a parameter, a graph function
// call or any of these in parentheses.
func (p *Parser) parseGraphReference() *ast.GraphReference {
	start := p.tok().Pos

	if p.at(token.LParen) {
		p.enter()
		defer p.leave()

		open := p.next()
		ref := p.parseGraphReference()
		p.expectClose(token.RParen, open)
		ref.NodeMeta = p.meta(start)

		return ref
	}

	ref := &ast.GraphReference{}

	switch {
	case p.at(token.Dollar):
		ref.Param = p.parseParameter(ast.ParamAny)
	case token.IsName(p.peek()) && p.nameKind() == atomFunction:
		ref.Call = p.parseFunctionCall()
	default:
		ref.Parts = p.parseDottedName()
	}

	ref.NodeMeta = p.meta(start)

	return ref
}

// =============================================================================
// RETURN and WITH
// =============================================================================

// parseReturnBody parses `[DISTINCT] items [ORDER BY ...] [SKIP e] [LIMIT e]`.
func (p *Parser) parseReturnBody() *ast.ReturnBody {
	start := p.tok().Pos
	body := &ast.ReturnBody{Distinct: p.accept(token.DISTINCT)}

	if p.accept(token.Star) {
		body.Star = true

		for p.accept(token.Comma) {
			body.Items = append(body.Items, p.parseReturnItem())
		}
	} else {
		body.Items = []*ast.ReturnItem{p.parseReturnItem()}
		for p.accept(token.Comma) {
			body.Items = append(body.Items, p.parseReturnItem())
		}
	}

	body.OrderBy, body.Skip, body.Limit = p.parseOrderSkipLimit()
	body.NodeMeta = p.meta(start)

	return body
}

func (p *Parser) parseReturnItem() *ast.ReturnItem {
	start := p.tok().Pos
	item := &ast.ReturnItem{Expr: p.parseExpression()}

	if p.accept(token.AS) {
		item.Alias = p.parseVariable()
	}

	item.NodeMeta = p.meta(start)

	return item
}

// parseOrderSkipLimit parses the optional ORDER BY, SKIP (or OFFSET) and
// LIMIT tail shared by RETURN, WITH and YIELD.
func (p *Parser) parseOrderSkipLimit() (order []*ast.SortItem, skip, limit ast.Expr) {
	if p.at(token.ORDER) {
		order = p.parseOrderBy()
	}

	if p.atAny(token.SKIP, token.OFFSET) {
		p.next()
		skip = p.parseExpression()
	}

	if p.accept(token.LIMIT) {
		limit = p.parseExpression()
	}

	return order, skip, limit
}

func (p *Parser) parseOrderBy() []*ast.SortItem {
	p.expect(token.ORDER)
	p.expect(token.BY)

	items := []*ast.SortItem{p.parseSortItem()}
	for p.accept(token.Comma) {
		items = append(items, p.parseSortItem())
	}

	return items
}

func (p *Parser) parseSortItem() *ast.SortItem {
	start := p.tok().Pos
	item := &ast.SortItem{Expr: p.parseExpression()}

	switch p.peek() {
	case token.ASC, token.ASCENDING:
		p.next()

		item.Direction = ast.SortAscending
	case token.DESC, token.DESCENDING:
		p.next()

		item.Direction = ast.SortDescending
	}

	item.NodeMeta = p.meta(start)

	return item
}

func (p *Parser) parseOrderBySkipLimit() *ast.OrderBySkipLimit {
	start := p.tok().Pos
	c := &ast.OrderBySkipLimit{}
	c.OrderBy, c.Skip, c.Limit = p.parseOrderSkipLimit()
	c.NodeMeta = p.meta(start)

	return c
}

// =============================================================================
// Updating clauses
// =============================================================================

func (p *Parser) parseDeleteClause() *ast.DeleteClause {
	start := p.tok().Pos
	d := &ast.DeleteClause{}

	switch {
	case p.accept(token.DETACH):
		d.Mode = ast.DeleteDetach
	case p.accept(token.NODETACH):
		d.Mode = ast.DeleteNoDetach
	}

	p.expect(token.DELETE)
	d.Exprs = p.parseExpressionList()
	d.NodeMeta = p.meta(start)

	return d
}

func (p *Parser) parseSetClause() *ast.SetClause {
	start := p.expect(token.SET).Pos
	s := &ast.SetClause{Items: []ast.SetItem{p.parseSetItem()}}

	for p.accept(token.Comma) {
		s.Items = append(s.Items, p.parseSetItem())
	}

	s.NodeMeta = p.meta(start)

	return s
}

func (p *Parser) parseSetItem() ast.SetItem {
	start := p.tok().Pos

	if token.IsName(p.peek()) {
		switch next := p.peekN(1); {
		case next == token.Eq, next == token.PlusEq:
			v := p.parseVariable()
			mutate := p.next().Type == token.PlusEq
			value := p.parseExpression()

			return &ast.SetVariable{NodeMeta: p.meta(start), Variable: v, Value: value, Mutate: mutate}
		case next == token.Colon, next == token.IS:
			v := p.parseVariable()
			is, labels := p.parseLabelConjunction()

			return &ast.SetLabels{NodeMeta: p.meta(start), Variable: v, Is: is, Labels: labels}
		}
	}

	target := p.parsePropertyTarget()
	p.expect(token.Eq)
	value := p.parseExpression()

	switch t := target.(type) {
	case *ast.PropertyAccess:
		return &ast.SetProperty{NodeMeta: p.meta(start), Target: t, Value: value}
	case *ast.IndexExpr:
		return &ast.SetDynamicProperty{NodeMeta: p.meta(start), Target: t, Value: value}
	}

	p.internal("SET item")

	return nil
}

func (p *Parser) parseRemoveClause() *ast.RemoveClause {
	start := p.expect(token.REMOVE).Pos
	r := &ast.RemoveClause{Items: []ast.RemoveItem{p.parseRemoveItem()}}

	for p.accept(token.Comma) {
		r.Items = append(r.Items, p.parseRemoveItem())
	}

	r.NodeMeta = p.meta(start)

	return r
}

func (p *Parser) parseRemoveItem() ast.RemoveItem {
	start := p.tok().Pos

	if token.IsName(p.peek()) && p.atAnyN(1, token.Colon, token.IS) {
		v := p.parseVariable()
		is, labels := p.parseLabelConjunction()

		return &ast.RemoveLabels{NodeMeta: p.meta(start), Variable: v, Is: is, Labels: labels}
	}

	switch t := p.parsePropertyTarget().(type) {
	case *ast.PropertyAccess:
		return &ast.RemoveProperty{NodeMeta: p.meta(start), Target: t}
	case *ast.IndexExpr:
		return &ast.RemoveDynamicProperty{NodeMeta: p.meta(start), Target: t}
	}

	p.internal("REMOVE item")

	return nil
}

// parsePropertyTarget parses an atom followed by at least one `.key` or
// `[e]` lookup.
func (p *Parser) parsePropertyTarget() ast.Expr {
	subject := p.parseAtom()
	start := subject.Span().Start
	expr := subject

	for {
		switch {
		case p.accept(token.Dot):
			key := p.parseName()
			expr = &ast.PropertyAccess{NodeMeta: p.meta(start), Subject: expr, Key: key}
		case p.at(token.LBracket):
			open := p.next()
			index := p.parseExpression()
			p.expectClose(token.RBracket, open)
			expr = &ast.IndexExpr{NodeMeta: p.meta(start), Subject: expr, Index: index}
		default:
			if expr == subject {
				p.failExpected(token.Dot, token.LBracket)
			}

			return expr
		}
	}
}

// =============================================================================
// Reading clauses
// =============================================================================

func (p *Parser) parseMatchClause() *ast.MatchClause {
	start := p.tok().Pos
	m := &ast.MatchClause{Optional: p.accept(token.OPTIONAL)}
	p.expect(token.MATCH)
	m.Mode = p.parseMatchMode()
	m.Patterns = p.parsePatternList()

	for p.at(token.USING) {
		m.Hints = append(m.Hints, p.parseHint())
	}

	if p.accept(token.WHERE) {
		m.Where = p.parseExpression()
	}

	m.NodeMeta = p.meta(start)

	return m
}

var indexHintKinds = map[token.Kind]ast.IndexHintKind{
	token.TEXT:  ast.IndexHintText,
	token.RANGE: ast.IndexHintRange,
	token.POINT: ast.IndexHintPoint,
}

// parseHint parses one USING INDEX, USING JOIN or USING SCAN hint.
func (p *Parser) parseHint() ast.Hint {
	start := p.expect(token.USING).Pos

	switch {
	case p.at(token.INDEX) || (indexHintKinds[p.peek()] != ast.IndexHintAny && p.peekN(1) == token.INDEX):
		h := &ast.IndexHint{Kind: indexHintKinds[p.peek()]}
		if h.Kind != ast.IndexHintAny {
			p.next()
		}

		p.expect(token.INDEX)
		h.Seek = p.accept(token.SEEK)
		h.Variable = p.parseName()
		p.expect(token.Colon)
		h.Label = p.parseName()
		open := p.expect(token.LParen)

		h.Properties = []string{p.parseName()}
		for p.accept(token.Comma) {
			h.Properties = append(h.Properties, p.parseName())
		}

		p.expectClose(token.RParen, open)
		h.NodeMeta = p.meta(start)

		return h
	case p.accept(token.JOIN):
		p.expect(token.ON)
		h := &ast.JoinHint{Variables: []string{p.parseName()}}

		for p.accept(token.Comma) {
			h.Variables = append(h.Variables, p.parseName())
		}

		h.NodeMeta = p.meta(start)

		return h
	case p.accept(token.SCAN):
		h := &ast.ScanHint{Variable: p.parseName()}
		p.expect(token.Colon)
		h.Label = p.parseName()
		h.NodeMeta = p.meta(start)

		return h
	}

	p.failExpected(token.INDEX, token.TEXT, token.RANGE, token.POINT, token.JOIN, token.SCAN)

	return nil
}

func (p *Parser) parseMergeClause() *ast.MergeClause {
	start := p.expect(token.MERGE).Pos
	m := &ast.MergeClause{Pattern: p.parsePattern()}

	for p.at(token.ON) {
		astart := p.next().Pos
		action := &ast.MergeAction{}

		switch {
		case p.accept(token.CREATE):
			action.OnCreate = true
		case p.accept(token.MATCH):
		default:
			p.failExpected(token.MATCH, token.CREATE)
		}

		action.Set = p.parseSetClause()
		action.NodeMeta = p.meta(astart)
		m.Actions = append(m.Actions, action)
	}

	m.NodeMeta = p.meta(start)

	return m
}

// =============================================================================
// CALL
// =============================================================================

// parseCall parses a procedure call or a subquery call.
func (p *Parser) parseCall() ast.Clause {
	if p.isSubqueryCall() {
		return p.parseSubqueryCall()
	}

	start := p.tok().Pos
	c := &ast.CallClause{Optional: p.accept(token.OPTIONAL)}
	p.expect(token.CALL)

	parts := p.parseDottedName()
	c.Namespace, c.Name = parts[:len(parts)-1], parts[len(parts)-1]

	if len(c.Namespace) == 0 {
		c.Namespace = nil
	}

	if p.at(token.LParen) {
		open := p.next()
		c.ExplicitArgs = true

		if !p.at(token.RParen) {
			c.Args = p.parseExpressionList()
		}

		p.expectClose(token.RParen, open)
	}

	if p.at(token.YIELD) {
		c.Yield = p.parseProcedureYield()
	}

	c.NodeMeta = p.meta(start)

	return c
}

func (p *Parser) parseProcedureYield() *ast.ProcedureYield {
	start := p.expect(token.YIELD).Pos
	y := &ast.ProcedureYield{}

	if p.accept(token.Star) {
		y.Star = true
		y.NodeMeta = p.meta(start)

		return y
	}

	for {
		istart := p.tok().Pos
		item := &ast.ProcedureResultItem{Name: p.parseName()}

		if p.accept(token.AS) {
			item.Alias = p.parseVariable()
		}

		item.NodeMeta = p.meta(istart)
		y.Items = append(y.Items, item)

		if !p.accept(token.Comma) {
			break
		}
	}

	if p.accept(token.WHERE) {
		y.Where = p.parseExpression()
	}

	y.NodeMeta = p.meta(start)

	return y
}

// parseSubqueryCall parses `[OPTIONAL] CALL [(scope)] { query } [IN ...]`.
func (p *Parser) parseSubqueryCall() *ast.SubqueryCall {
	start := p.tok().Pos
	c := &ast.SubqueryCall{Optional: p.accept(token.OPTIONAL)}
	p.expect(token.CALL)

	if p.at(token.LParen) {
		c.Scope = p.parseSubqueryScope()
	}

	open := p.expect(token.LBrace)
	c.Query = p.parseRegularQuery()
	p.expectClose(token.RBrace, open)

	if p.at(token.IN) {
		c.InTransactions = p.parseInTransactions()
	}

	c.NodeMeta = p.meta(start)

	return c
}

func (p *Parser) parseSubqueryScope() *ast.SubqueryScope {
	open := p.expect(token.LParen)
	s := &ast.SubqueryScope{}

	switch {
	case p.accept(token.Star):
		s.Star = true
	case !p.at(token.RParen):
		s.Variables = []*ast.Variable{p.parseVariable()}
		for p.accept(token.Comma) {
			s.Variables = append(s.Variables, p.parseVariable())
		}
	}

	p.expectClose(token.RParen, open)
	s.NodeMeta = p.meta(open.Pos)

	return s
}

// parseInTransactions parses `IN [[e] CONCURRENT] TRANSACTIONS` followed by
// batch, error and report options in any order.
func (p *Parser) parseInTransactions() *ast.InTransactions {
	start := p.expect(token.IN).Pos
	t := &ast.InTransactions{}

	switch {
	case p.at(token.TRANSACTIONS):
	case p.accept(token.CONCURRENT):
		t.Concurrent = true
	default:
		t.Concurrency = p.parseExpression()
		p.expect(token.CONCURRENT)
		t.Concurrent = true
	}

	p.expect(token.TRANSACTIONS)

	for {
		switch {
		case p.at(token.OF) && t.BatchSize == nil:
			p.next()
			t.BatchSize = p.parseExpression()

			if !p.accept(token.ROW) && !p.accept(token.ROWS) {
				p.failExpected(token.ROW, token.ROWS)
			}
		case p.at(token.ON) && t.OnError == ast.OnErrorDefault:
			p.next()
			p.expect(token.ERROR)

			switch {
			case p.accept(token.CONTINUE):
				t.OnError = ast.OnErrorContinue
			case p.accept(token.BREAK):
				t.OnError = ast.OnErrorBreak
			case p.accept(token.FAIL):
				t.OnError = ast.OnErrorFail
			default:
				p.failExpected(token.CONTINUE, token.BREAK, token.FAIL)
			}
		case p.at(token.REPORT) && t.ReportStatus == nil:
			p.next()
			p.expect(token.STATUS)
			p.expect(token.AS)
			t.ReportStatus = p.parseVariable()
		default:
			t.NodeMeta = p.meta(start)

			return t
		}
	}
}

// =============================================================================
// LOAD CSV and FOREACH
// =============================================================================

func (p *Parser) parseLoadCSV() *ast.LoadCSVClause {
	start := p.expect(token.LOAD).Pos
	p.expect(token.CSV)

	l := &ast.LoadCSVClause{}
	if p.accept(token.WITH) {
		p.expect(token.HEADERS)

		l.WithHeaders = true
	}

	p.expect(token.FROM)
	l.Source = p.parseExpression()
	p.expect(token.AS)
	l.Variable = p.parseVariable()

	if p.accept(token.FIELDTERMINATOR) {
		l.FieldTerminator = p.parseStringLit()
	}

	l.NodeMeta = p.meta(start)

	return l
}

// parseForeach parses `FOREACH (v IN e | clause+)`.
func (p *Parser) parseForeach() *ast.ForeachClause {
	start := p.expect(token.FOREACH).Pos
	p.reserveBar(p.pos)
	open := p.expect(token.LParen)

	f := &ast.ForeachClause{Variable: p.parseVariable()}
	p.expect(token.IN)
	f.Source = p.parseExpression()
	p.expect(token.Bar)

	for token.StartsClause(p.peek()) {
		f.Clauses = append(f.Clauses, p.parseClause())
	}

	if len(f.Clauses) == 0 {
		p.failExpected(token.CREATE, token.MERGE, token.SET, token.REMOVE, token.DELETE, token.FOREACH)
	}

	p.expectClose(token.RParen, open)
	f.NodeMeta = p.meta(start)

	return f
}

package format

import (
	"github.com/rlch/cypherparse/ast"
)

func (p *printer) regularQuery(q *ast.RegularQuery) {
	p.singleQuery(q.Query)

	for _, u := range q.Unions {
		p.sep()
		p.union(u)
	}
}

func (p *printer) union(u *ast.Union) {
	p.write("UNION")

	switch {
	case u.All:
		p.write(" ALL")
	case u.Distinct:
		p.write(" DISTINCT")
	}

	p.sep()
	p.singleQuery(u.Query)
}

func (p *printer) singleQuery(q *ast.SingleQuery) {
	for i, c := range q.Clauses {
		if i > 0 {
			p.sep()
		}

		p.clause(c)
	}
}

func (p *printer) clause(c ast.Clause) {
	switch c := c.(type) {
	case *ast.UseClause:
		p.write("USE ")

		if c.Graph {
			p.write("GRAPH ")
		}

		p.graphReference(c.Target)
	case *ast.FinishClause:
		p.write("FINISH")
	case *ast.ReturnClause:
		p.write("RETURN ")
		p.returnBody(c.Body)
	case *ast.WithClause:
		p.write("WITH ")
		p.returnBody(c.Body)
		p.where(c.Where)
	case *ast.CreateClause:
		p.write("CREATE ")
		list(p, c.Patterns, p.pattern)
	case *ast.InsertClause:
		p.write("INSERT ")
		list(p, c.Patterns, p.pattern)
	case *ast.DeleteClause:
		switch c.Mode {
		case ast.DeleteDetach:
			p.write("DETACH ")
		case ast.DeleteNoDetach:
			p.write("NODETACH ")
		}

		p.write("DELETE ")
		p.exprs(c.Exprs)
	case *ast.SetClause:
		p.write("SET ")
		list(p, c.Items, p.setItem)
	case *ast.RemoveClause:
		p.write("REMOVE ")
		list(p, c.Items, p.removeItem)
	case *ast.MatchClause:
		p.match(c)
	case *ast.MergeClause:
		p.write("MERGE ")
		p.pattern(c.Pattern)

		for _, a := range c.Actions {
			p.write(" ")
			p.mergeAction(a)
		}
	case *ast.UnwindClause:
		p.write("UNWIND ")
		p.expr(c.Expr)
		p.write(" AS ", variable(c.Variable.Name))
	case *ast.CallClause:
		p.call(c)
	case *ast.SubqueryCall:
		p.subqueryCall(c)
	case *ast.LoadCSVClause:
		p.write("LOAD CSV ")

		if c.WithHeaders {
			p.write("WITH HEADERS ")
		}

		p.write("FROM ")
		p.expr(c.Source)
		p.write(" AS ", variable(c.Variable.Name))

		if c.FieldTerminator != nil {
			p.write(" FIELDTERMINATOR ")
			p.expr(c.FieldTerminator)
		}
	case *ast.ForeachClause:
		p.write("FOREACH (", variable(c.Variable.Name), " IN ")
		p.expr(c.Source)
		p.write(" |")

		for _, inner := range c.Clauses {
			p.write(" ")
			p.clause(inner)
		}

		p.write(")")
	case *ast.OrderBySkipLimit:
		p.orderSkipLimit(c.OrderBy, c.Skip, c.Limit, false)
	}
}

func (p *printer) graphReference(ref *ast.GraphReference) {
	switch {
	case ref.Param != nil:
		p.parameter(ref.Param)
	case ref.Call != nil:
		p.functionCall(ref.Call)
	default:
		p.write(dotted(ref.Parts))
	}
}

func (p *printer) returnBody(body *ast.ReturnBody) {
	if body.Distinct {
		p.write("DISTINCT ")
	}

	if body.Star {
		p.write("*")

		if len(body.Items) > 0 {
			p.write(", ")
		}
	}

	list(p, body.Items, p.returnItem)
	p.orderSkipLimit(body.OrderBy, body.Skip, body.Limit, true)
}

func (p *printer) returnItem(item *ast.ReturnItem) {
	p.expr(item.Expr)

	if item.Alias != nil {
		p.write(" AS ", variable(item.Alias.Name))
	}
}

// orderSkipLimit renders the ORDER BY, SKIP and LIMIT tail. lead is set
// when the tail follows other text on the same line.
func (p *printer) orderSkipLimit(order []*ast.SortItem, skip, limit ast.Expr, lead bool) {
	space := func() {
		if lead {
			p.write(" ")
		}

		lead = true
	}

	if len(order) > 0 {
		space()
		p.write("ORDER BY ")
		list(p, order, p.sortItem)
	}

	if skip != nil {
		space()
		p.write("SKIP ")
		p.expr(skip)
	}

	if limit != nil {
		space()
		p.write("LIMIT ")
		p.expr(limit)
	}
}

func (p *printer) sortItem(s *ast.SortItem) {
	p.expr(s.Expr)

	switch s.Direction {
	case ast.SortAscending:
		p.write(" ASC")
	case ast.SortDescending:
		p.write(" DESC")
	}
}

func (p *printer) setItem(item ast.SetItem) {
	switch item := item.(type) {
	case *ast.SetProperty:
		p.expr(item.Target)
		p.write(" = ")
		p.expr(item.Value)
	case *ast.SetDynamicProperty:
		p.expr(item.Target)
		p.write(" = ")
		p.expr(item.Value)
	case *ast.SetVariable:
		p.write(variable(item.Variable.Name))

		if item.Mutate {
			p.write(" += ")
		} else {
			p.write(" = ")
		}

		p.expr(item.Value)
	case *ast.SetLabels:
		p.write(variable(item.Variable.Name))
		p.labelList(item.Is, item.Labels)
	}
}

func (p *printer) removeItem(item ast.RemoveItem) {
	switch item := item.(type) {
	case *ast.RemoveProperty:
		p.expr(item.Target)
	case *ast.RemoveDynamicProperty:
		p.expr(item.Target)
	case *ast.RemoveLabels:
		p.write(variable(item.Variable.Name))
		p.labelList(item.Is, item.Labels)
	}
}

func (p *printer) match(m *ast.MatchClause) {
	if m.Optional {
		p.write("OPTIONAL ")
	}

	p.write("MATCH ")

	if m.Mode != nil {
		p.matchMode(m.Mode)
		p.write(" ")
	}

	list(p, m.Patterns, p.pattern)

	for _, h := range m.Hints {
		p.write(" ")
		p.hint(h)
	}

	p.where(m.Where)
}

func (p *printer) hint(h ast.Hint) {
	switch h := h.(type) {
	case *ast.IndexHint:
		p.write("USING ")

		if h.Kind != ast.IndexHintAny {
			p.write(h.Kind.String(), " ")
		}

		p.write("INDEX ")

		if h.Seek {
			p.write("SEEK ")
		}

		p.write(key(h.Variable), ":", key(h.Label), "(", keys(h.Properties), ")")
	case *ast.JoinHint:
		p.write("USING JOIN ON ", keys(h.Variables))
	case *ast.ScanHint:
		p.write("USING SCAN ", key(h.Variable), ":", key(h.Label))
	}
}

func (p *printer) mergeAction(a *ast.MergeAction) {
	if a.OnCreate {
		p.write("ON CREATE ")
	} else {
		p.write("ON MATCH ")
	}

	p.clause(a.Set)
}

func (p *printer) call(c *ast.CallClause) {
	if c.Optional {
		p.write("OPTIONAL ")
	}

	p.write("CALL ", dotted(append(append([]string(nil), c.Namespace...), c.Name)))

	if c.ExplicitArgs || len(c.Args) > 0 {
		p.write("(")
		p.exprs(c.Args)
		p.write(")")
	}

	if c.Yield != nil {
		p.write(" ")
		p.procedureYield(c.Yield)
	}
}

func (p *printer) procedureYield(y *ast.ProcedureYield) {
	p.write("YIELD ")

	if y.Star {
		p.write("*")

		return
	}

	list(p, y.Items, p.procedureResultItem)
	p.where(y.Where)
}

func (p *printer) procedureResultItem(item *ast.ProcedureResultItem) {
	p.write(key(item.Name))

	if item.Alias != nil {
		p.write(" AS ", variable(item.Alias.Name))
	}
}

// subqueryCall renders CALL { }. In multi-line layout the body is indented
// one level and the closing brace gets its own line.
func (p *printer) subqueryCall(c *ast.SubqueryCall) {
	if c.Optional {
		p.write("OPTIONAL ")
	}

	p.write("CALL ")

	if c.Scope != nil {
		p.subqueryScope(c.Scope)
		p.write(" ")
	}

	p.write("{")
	p.depth++
	p.sep()
	p.regularQuery(c.Query)
	p.depth--
	p.sep()
	p.write("}")

	if c.InTransactions != nil {
		p.write(" ")
		p.inTransactions(c.InTransactions)
	}
}

func (p *printer) subqueryScope(s *ast.SubqueryScope) {
	p.write("(")

	if s.Star {
		p.write("*")
	} else {
		list(p, s.Variables, func(v *ast.Variable) { p.write(variable(v.Name)) })
	}

	p.write(")")
}

func (p *printer) inTransactions(t *ast.InTransactions) {
	p.write("IN ")

	if t.Concurrency != nil {
		p.expr(t.Concurrency)
		p.write(" ")
	}

	if t.Concurrent || t.Concurrency != nil {
		p.write("CONCURRENT ")
	}

	p.write("TRANSACTIONS")

	if t.BatchSize != nil {
		p.write(" OF ")
		p.expr(t.BatchSize)
		p.write(" ROWS")
	}

	if t.OnError != ast.OnErrorDefault {
		p.write(" ON ERROR ", t.OnError.String())
	}

	if t.ReportStatus != nil {
		p.write(" REPORT STATUS AS ", variable(t.ReportStatus.Name))
	}
}

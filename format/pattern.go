package format

import (
	"strconv"

	"github.com/rlch/cypherparse/ast"
)

func (p *printer) pattern(pat *ast.Pattern) {
	if pat.Variable != nil {
		p.write(variable(pat.Variable.Name), " = ")
	}

	if pat.Selector != nil {
		p.selector(pat.Selector)
		p.write(" ")
	}

	p.anonymousPattern(pat.Element)
}

func (p *printer) anonymousPattern(a ast.AnonymousPattern) {
	switch a := a.(type) {
	case *ast.PathPattern:
		p.pathPattern(a)
	case *ast.ShortestPathPattern:
		if a.All {
			p.write("allShortestPaths(")
		} else {
			p.write("shortestPath(")
		}

		p.pathPattern(a.Path)
		p.write(")")
	}
}

// pathPattern writes the elements back to back; arrows and parentheses
// delimit them.
func (p *printer) pathPattern(path *ast.PathPattern) {
	for _, el := range path.Elements {
		p.pathElement(el)
	}
}

func (p *printer) pathElement(el ast.PathElement) {
	switch el := el.(type) {
	case *ast.NodePattern:
		p.nodePattern(el)
	case *ast.RelationshipPattern:
		p.relationshipPattern(el)
	case *ast.ParenthesizedPath:
		p.write("(")
		p.pattern(el.Pattern)
		p.where(el.Where)
		p.write(")")

		if el.Quantifier != nil {
			p.quantifier(el.Quantifier)
		}
	}
}

func (p *printer) nodePattern(n *ast.NodePattern) {
	p.write("(")
	p.filler(n.Variable, n.Labels, nil, n.Properties, n.Where)
	p.write(")")
}

func (p *printer) relationshipPattern(r *ast.RelationshipPattern) {
	if r.Direction == ast.DirectionLeft || r.Direction == ast.DirectionBoth {
		p.write("<")
	}

	p.write("-")

	if r.HasDetail() {
		p.write("[")
		p.filler(r.Variable, r.Labels, r.Length, r.Properties, r.Where)
		p.write("]")
	}

	p.write("-")

	if r.Direction == ast.DirectionRight || r.Direction == ast.DirectionBoth {
		p.write(">")
	}

	if r.Quantifier != nil {
		p.quantifier(r.Quantifier)
	}
}

// filler renders the inside of a node or relationship pattern:
// `v:Labels*len {props} WHERE e`.
func (p *printer) filler(v *ast.Variable, labels *ast.LabelExpression, length *ast.PathLength,
	props ast.Expr, where ast.Expr,
) {
	empty := true

	if v != nil {
		p.write(variable(v.Name))

		empty = false
	}

	if labels != nil {
		if labels.Is && !empty {
			p.write(" ")
		}

		p.labelExpression(labels)

		empty = false
	}

	if length != nil {
		p.pathLength(length)

		empty = false
	}

	if props != nil {
		if !empty {
			p.write(" ")
		}

		p.expr(props)

		empty = false
	}

	if where != nil {
		if !empty {
			p.write(" ")
		}

		p.write("WHERE ")
		p.expr(where)
	}
}

func (p *printer) pathLength(l *ast.PathLength) {
	p.write("*")

	switch {
	case l.From != nil && l.To != nil && *l.From == *l.To:
		p.write(itoa(*l.From))
	case l.From == nil && l.To == nil:
	default:
		if l.From != nil {
			p.write(itoa(*l.From))
		}

		p.write("..")

		if l.To != nil {
			p.write(itoa(*l.To))
		}
	}
}

func (p *printer) quantifier(q *ast.Quantifier) {
	switch q.Kind {
	case ast.QuantifierPlus:
		p.write("+")
	case ast.QuantifierStar:
		p.write("*")
	default:
		if q.Lower != nil && q.Upper != nil && *q.Lower == *q.Upper {
			p.write("{", itoa(*q.Lower), "}")

			return
		}

		p.write("{")

		if q.Lower != nil {
			p.write(itoa(*q.Lower))
		}

		p.write(",")

		if q.Upper != nil {
			p.write(" ", itoa(*q.Upper))
		}

		p.write("}")
	}
}

func (p *printer) selector(s *ast.Selector) {
	switch s.Kind {
	case ast.SelectorAnyShortest:
		p.write("ANY SHORTEST")
	case ast.SelectorAllShortest:
		p.write("ALL SHORTEST")
	case ast.SelectorAny:
		p.write("ANY")

		if s.Count != nil {
			p.write(" ", itoa(*s.Count))
		}
	case ast.SelectorAll:
		p.write("ALL")
	case ast.SelectorShortestGroups:
		p.write("SHORTEST")

		if s.Count != nil {
			p.write(" ", itoa(*s.Count))
		}

		p.write(" GROUPS")
	case ast.SelectorShortest:
		p.write("SHORTEST ", itoa(*s.Count))
	}
}

func (p *printer) matchMode(m *ast.MatchMode) {
	if m.Kind == ast.DifferentRelationships {
		p.write("DIFFERENT RELATIONSHIPS")

		return
	}

	p.write("REPEATABLE ELEMENTS")
}

// =============================================================================
// Label expressions
// =============================================================================

func (p *printer) labelExpression(le *ast.LabelExpression) {
	if le.Is {
		p.write("IS ")
	} else {
		p.write(":")
	}

	p.labelExpr(le.Expr, le.Is)
}

// Label operators, loosest first.
const (
	labelPrecOr = iota + 1
	labelPrecAnd
	labelPrecNot
	labelPrecAtom
)

func labelPrecedence(e ast.LabelExpr) int {
	switch e.(type) {
	case *ast.LabelOr:
		return labelPrecOr
	case *ast.LabelAnd:
		return labelPrecAnd
	case *ast.LabelNot:
		return labelPrecNot
	default:
		return labelPrecAtom
	}
}

func (p *printer) labelOperand(e ast.LabelExpr, min int, isSyntax bool) {
	if labelPrecedence(e) < min {
		p.write("(")
		p.labelExpr(e, isSyntax)
		p.write(")")

		return
	}

	p.labelExpr(e, isSyntax)
}

func (p *printer) labelExpr(e ast.LabelExpr, isSyntax bool) {
	switch e := e.(type) {
	case *ast.LabelName:
		p.write(labelName(e.Name, isSyntax))
	case *ast.LabelWildcard:
		p.write("%")
	case *ast.DynamicLabel:
		p.dynamicLabel(e)
	case *ast.LabelNot:
		p.write("!")
		p.labelOperand(e.Operand, labelPrecNot, isSyntax)
	case *ast.LabelAnd:
		p.labelOperand(e.Left, labelPrecAnd, isSyntax)

		if e.Colon {
			p.write(":")
		} else {
			p.write("&")
		}

		p.labelOperand(e.Right, labelPrecNot, isSyntax)
	case *ast.LabelOr:
		p.labelOperand(e.Left, labelPrecOr, isSyntax)

		if e.Colon {
			p.write("|:")
		} else {
			p.write("|")
		}

		p.labelOperand(e.Right, labelPrecAnd, isSyntax)
	case *ast.LabelParen:
		p.write("(")
		p.labelExpr(e.Inner, isSyntax)
		p.write(")")
	}
}

func (p *printer) dynamicLabel(d *ast.DynamicLabel) {
	switch d.Mode {
	case ast.DynamicAny:
		p.write("$any(")
	case ast.DynamicAll:
		p.write("$all(")
	default:
		p.write("$(")
	}

	p.expr(d.Expr)
	p.write(")")
}

// labelList renders the `:A:B` or `IS A:B` list of SET and REMOVE.
func (p *printer) labelList(is bool, labels []ast.LabelExpr) {
	for i, l := range labels {
		switch {
		case i == 0 && is:
			p.write(" IS ")
		default:
			p.write(":")
		}

		p.labelExpr(l, i == 0 && is)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}

package format

import (
	"strconv"
	"strings"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/scanner"
)

// Binding strength of each expression level, loosest first. An operand
// whose level is below the minimum its position accepts is parenthesized.
const (
	precOr = iota + 1
	precXor
	precAnd
	precNot
	precComparison
	precTest
	precAdditive
	precMultiplicative
	precPower
	precUnary
	precPostfix
	precAtom
)

var binaryPrec = map[ast.BinaryOp]int{
	ast.OpOr:       precOr,
	ast.OpXor:      precXor,
	ast.OpAnd:      precAnd,
	ast.OpAdd:      precAdditive,
	ast.OpSubtract: precAdditive,
	ast.OpConcat:   precAdditive,
	ast.OpMultiply: precMultiplicative,
	ast.OpDivide:   precMultiplicative,
	ast.OpModulo:   precMultiplicative,
	ast.OpPower:    precPower,
}

func precedence(e ast.Expr) int {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		return binaryPrec[e.Op]
	case *ast.NotExpr:
		return precNot
	case *ast.Comparison, *ast.ComparisonChain:
		return precComparison
	case *ast.StringPredicate, *ast.IsNull, *ast.IsTyped, *ast.IsNormalized:
		return precTest
	case *ast.UnaryExpr:
		return precUnary
	case *ast.IntegerLit:
		if strings.HasPrefix(e.Raw, "-") {
			return precUnary
		}
	case *ast.FloatLit:
		if strings.HasPrefix(e.Raw, "-") {
			return precUnary
		}
	case *ast.PropertyAccess, *ast.LabelCheck, *ast.IndexExpr, *ast.SliceExpr:
		return precPostfix
	}

	return precAtom
}

// operand renders e, parenthesized when it binds looser than min.
func (p *printer) operand(e ast.Expr, min int) {
	if precedence(e) < min {
		p.write("(")
		p.expr(e)
		p.write(")")

		return
	}

	p.expr(e)
}

func (p *printer) exprs(es []ast.Expr) {
	list(p, es, p.expr)
}

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.BinaryExpr:
		level := binaryPrec[e.Op]
		p.operand(e.Left, level)
		p.write(" ", e.Op.String(), " ")
		p.operand(e.Right, level+1)
	case *ast.NotExpr:
		p.write("NOT ")
		p.operand(e.Operand, precNot)
	case *ast.UnaryExpr:
		p.write(e.Op.String())
		p.operand(e.Operand, precPostfix)
	case *ast.Comparison:
		p.operand(e.Left, precTest)
		p.write(" ", e.Op.String(), " ")
		p.operand(e.Right, precTest)
	case *ast.ComparisonChain:
		for i, operand := range e.Operands {
			if i > 0 {
				p.write(" ", e.Operators[i-1].String(), " ")
			}

			p.operand(operand, precTest)
		}
	case *ast.StringPredicate:
		p.operand(e.Left, precAdditive)
		p.write(" ", e.Op.String(), " ")
		p.operand(e.Right, precAdditive)
	case *ast.IsNull:
		p.operand(e.Operand, precAdditive)
		p.write(" IS ", not(e.Not), "NULL")
	case *ast.IsTyped:
		p.operand(e.Operand, precAdditive)
		p.write(" ")
		p.typeTest(e.Not, e.Syntax, e.Type)
	case *ast.IsNormalized:
		p.operand(e.Operand, precAdditive)
		p.write(" IS ", not(e.Not), normalForm(e.Form), "NORMALIZED")
	case *ast.PropertyAccess:
		p.operand(e.Subject, precPostfix)
		p.write(".", key(e.Key))
	case *ast.LabelCheck:
		p.operand(e.Subject, precPostfix)

		if e.Labels.Is {
			p.write(" ")
		}

		p.labelExpression(e.Labels)
	case *ast.IndexExpr:
		p.operand(e.Subject, precPostfix)
		p.write("[")
		p.expr(e.Index)
		p.write("]")
	case *ast.SliceExpr:
		p.operand(e.Subject, precPostfix)
		p.write("[")
		p.optionalExpr(e.From)
		p.write("..")
		p.optionalExpr(e.To)
		p.write("]")
	default:
		p.atom(e)
	}
}

func (p *printer) optionalExpr(e ast.Expr) {
	if e != nil {
		p.expr(e)
	}
}

func (p *printer) atom(e ast.Expr) {
	switch e := e.(type) {
	case *ast.IntegerLit:
		p.write(e.Raw)
	case *ast.FloatLit:
		p.write(e.Raw)
	case *ast.StringLit:
		p.write(scanner.Quote(e.Value))
	case *ast.BoolLit:
		p.write(strconv.FormatBool(e.Value))
	case *ast.NullLit:
		p.write("null")
	case *ast.KeywordLit:
		p.write(e.Keyword)
	case *ast.MapLit:
		p.mapLit(e)
	case *ast.ListLit:
		p.write("[")
		p.exprs(e.Items)
		p.write("]")
	case *ast.Parameter:
		p.parameter(e)
	case *ast.Variable:
		p.write(variable(e.Name))
	case *ast.CaseExpr:
		p.write("CASE")

		for _, alt := range e.Alternatives {
			p.write(" ")
			p.detail(alt)
		}

		p.caseEnd(e.Else)
	case *ast.ExtendedCaseExpr:
		p.write("CASE ")
		p.expr(e.Input)

		for _, alt := range e.Alternatives {
			p.write(" ")
			p.extendedAlternative(alt)
		}

		p.caseEnd(e.Else)
	case *ast.CountStar:
		p.write("count(*)")
	case *ast.ExistsExpr:
		p.write("EXISTS ")
		p.subqueryBody(e.Body)
	case *ast.CountExpr:
		p.write("COUNT ")
		p.subqueryBody(e.Body)
	case *ast.CollectExpr:
		p.write("COLLECT { ")
		p.inline(e.Query)
		p.write(" }")
	case *ast.MapProjection:
		p.write(variable(e.Variable.Name), " {")
		list(p, e.Items, p.projectionItem)
		p.write("}")
	case *ast.ListComprehension:
		p.write("[", variable(e.Variable.Name), " IN ")
		p.expr(e.Source)
		p.where(e.Where)

		if e.Projection != nil {
			p.write(" | ")
			p.expr(e.Projection)
		}

		p.write("]")
	case *ast.PatternComprehension:
		p.write("[")

		if e.PathVariable != nil {
			p.write(variable(e.PathVariable.Name), " = ")
		}

		p.pathPattern(e.Pattern)
		p.where(e.Where)
		p.write(" | ")
		p.expr(e.Projection)
		p.write("]")
	case *ast.ReduceExpr:
		p.write("reduce(", variable(e.Accumulator.Name), " = ")
		p.expr(e.Init)
		p.write(", ", variable(e.Variable.Name), " IN ")
		p.expr(e.Source)
		p.write(" | ")
		p.expr(e.Body)
		p.write(")")
	case *ast.ListPredicate:
		p.write(e.Kind.String(), "(", variable(e.Variable.Name), " IN ")
		p.expr(e.Source)
		p.where(e.Where)
		p.write(")")
	case *ast.NormalizeExpr:
		p.write("normalize(")
		p.expr(e.Operand)

		if e.Form != ast.NormalFormDefault {
			p.write(", ", e.Form.String())
		}

		p.write(")")
	case *ast.TrimExpr:
		p.trim(e)
	case *ast.PatternExpr:
		p.pathPattern(e.Pattern)
	case *ast.ShortestPathExpr:
		p.anonymousPattern(e.Pattern)
	case *ast.ParenExpr:
		p.write("(")
		p.expr(e.Inner)
		p.write(")")
	case *ast.FunctionCall:
		p.functionCall(e)
	}
}

func (p *printer) where(e ast.Expr) {
	if e != nil {
		p.write(" WHERE ")
		p.expr(e)
	}
}

func (p *printer) caseEnd(elseExpr ast.Expr) {
	if elseExpr != nil {
		p.write(" ELSE ")
		p.expr(elseExpr)
	}

	p.write(" END")
}

func (p *printer) mapLit(m *ast.MapLit) {
	p.write("{")
	list(p, m.Entries, func(e *ast.MapEntry) { p.detail(e) })
	p.write("}")
}

func (p *printer) parameter(param *ast.Parameter) {
	if _, err := strconv.ParseUint(param.Name, 10, 64); err == nil {
		p.write("$", param.Name)

		return
	}

	p.write("$", key(param.Name))
}

func (p *printer) functionCall(f *ast.FunctionCall) {
	if len(f.Namespace) > 0 {
		p.write(functionName(f.Namespace[0]))

		for _, part := range f.Namespace[1:] {
			p.write(".", key(part))
		}

		p.write(".", key(f.Name))
	} else {
		p.write(functionName(f.Name))
	}

	p.write("(")

	switch {
	case f.Distinct:
		p.write("DISTINCT ")
	case f.All:
		p.write("ALL ")
	}

	p.exprs(f.Args)
	p.write(")")
}

func (p *printer) trim(t *ast.TrimExpr) {
	p.write("trim(")

	if t.From {
		if t.Mode != ast.TrimDefault {
			p.write(t.Mode.String(), " ")
		}

		if t.Characters != nil {
			p.expr(t.Characters)
			p.write(" ")
		}

		p.write("FROM ")
	}

	p.expr(t.Source)
	p.write(")")
}

func (p *printer) extendedAlternative(alt *ast.ExtendedCaseAlternative) {
	p.write("WHEN ")
	list(p, alt.Operands, p.whenOperand)
	p.write(" THEN ")
	p.expr(alt.Then)
}

func (p *printer) whenOperand(w ast.WhenOperand) {
	switch w := w.(type) {
	case *ast.WhenEquals:
		p.expr(w.Value)
	case *ast.WhenComparison:
		p.write(w.Op.String(), " ")
		p.operand(w.Value, precTest)
	case *ast.WhenStringPredicate:
		p.write(w.Op.String(), " ")
		p.operand(w.Value, precAdditive)
	case *ast.WhenNull:
		p.write("IS ", not(w.Not), "NULL")
	case *ast.WhenTyped:
		p.typeTest(w.Not, w.Syntax, w.Type)
	case *ast.WhenNormalized:
		p.write("IS ", not(w.Not), normalForm(w.Form), "NORMALIZED")
	}
}

func (p *printer) projectionItem(item ast.MapProjectionItem) {
	switch item := item.(type) {
	case *ast.PropertySelector:
		p.write(".", key(item.Key))
	case *ast.LiteralEntry:
		p.write(key(item.Key), ": ")
		p.expr(item.Value)
	case *ast.VariableSelector:
		p.write(variable(item.Variable.Name))
	case *ast.AllPropertiesSelector:
		p.write(".*")
	}
}

// subqueryBody renders the braces of EXISTS and COUNT.
func (p *printer) subqueryBody(body *ast.SubqueryBody) {
	p.write("{ ")

	if body.Query != nil {
		p.inline(body.Query)
	} else {
		if body.Mode != nil {
			p.matchMode(body.Mode)
			p.write(" ")
		}

		list(p, body.Patterns, p.pattern)
		p.where(body.Where)
	}

	p.write(" }")
}

// inline renders a nested query on the current line regardless of layout.
func (p *printer) inline(q *ast.RegularQuery) {
	multiline := p.multiline
	p.multiline = false
	p.regularQuery(q)
	p.multiline = multiline
}

// typeTest renders `:: T`, `IS [NOT] TYPED T` or `IS [NOT] :: T`.
func (p *printer) typeTest(negated bool, syntax ast.TypeSyntax, typ *ast.CypherType) {
	switch syntax {
	case ast.TypeSyntaxColons:
		p.write(":: ")
	case ast.TypeSyntaxIsColons:
		p.write("IS ", not(negated), ":: ")
	default:
		p.write("IS ", not(negated), "TYPED ")
	}

	p.cypherType(typ)
}

func (p *printer) cypherType(t *ast.CypherType) {
	for i, part := range t.Parts {
		if i > 0 {
			p.write(" | ")
		}

		p.typePart(part)
	}
}

func (p *printer) typePart(part *ast.TypePart) {
	p.write(part.Name)

	if part.Inner != nil {
		p.write("<")
		p.cypherType(part.Inner)
		p.write(">")
	}

	if part.NotNull {
		p.write(" NOT NULL")
	}

	for _, s := range part.Suffixes {
		p.write(" LIST")

		if s.NotNull {
			p.write(" NOT NULL")
		}
	}
}

func not(negated bool) string {
	if negated {
		return "NOT "
	}

	return ""
}

func normalForm(f ast.NormalForm) string {
	if f == ast.NormalFormDefault {
		return ""
	}

	return f.String() + " "
}

package ast

import "strings"

// =============================================================================
// Operators
// =============================================================================

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

// Binary operators, loosest first.
const (
	OpOr BinaryOp = iota
	OpXor
	OpAnd
	OpAdd
	OpSubtract
	OpConcat
	OpMultiply
	OpDivide
	OpModulo
	OpPower
)

var binaryOpText = [...]string{
	OpOr:       "OR",
	OpXor:      "XOR",
	OpAnd:      "AND",
	OpAdd:      "+",
	OpSubtract: "-",
	OpConcat:   "||",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulo:   "%",
	OpPower:    "^",
}

func (op BinaryOp) String() string { return binaryOpText[op] }

// ComparisonOp is a comparison operator.
type ComparisonOp int

// Comparison operators. CmpInvalidNeq is the `!=` spelling, kept so callers
// can reject it with a helpful message.
const (
	CmpEq ComparisonOp = iota
	CmpNeq
	CmpInvalidNeq
	CmpLt
	CmpGt
	CmpLe
	CmpGe
)

var comparisonOpText = [...]string{
	CmpEq:         "=",
	CmpNeq:        "<>",
	CmpInvalidNeq: "!=",
	CmpLt:         "<",
	CmpGt:         ">",
	CmpLe:         "<=",
	CmpGe:         ">=",
}

func (op ComparisonOp) String() string { return comparisonOpText[op] }

// StringOp is the operator of a StringPredicate.
type StringOp int

// String and list predicates.
const (
	OpStartsWith StringOp = iota
	OpEndsWith
	OpContains
	OpRegexMatch
	OpIn
)

var stringOpText = [...]string{
	OpStartsWith: "STARTS WITH",
	OpEndsWith:   "ENDS WITH",
	OpContains:   "CONTAINS",
	OpRegexMatch: "=~",
	OpIn:         "IN",
}

func (op StringOp) String() string { return stringOpText[op] }

// UnaryOp is a prefix arithmetic sign.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
)

func (op UnaryOp) String() string {
	if op == UnaryMinus {
		return "-"
	}

	return "+"
}

// NormalForm is a unicode normal form. NormalFormDefault means none was
// written.
type NormalForm int

const (
	NormalFormDefault NormalForm = iota
	NFC
	NFD
	NFKC
	NFKD
)

var normalFormText = [...]string{
	NormalFormDefault: "",
	NFC:               "NFC",
	NFD:               "NFD",
	NFKC:              "NFKC",
	NFKD:              "NFKD",
}

func (f NormalForm) String() string { return normalFormText[f] }

// TypeSyntax records how a type predicate was written.
type TypeSyntax int

const (
	TypeSyntaxIsTyped  TypeSyntax = iota // IS [NOT] TYPED t
	TypeSyntaxIsColons                   // IS [NOT] :: t
	TypeSyntaxColons                     // :: t
)

// =============================================================================
// Operator expressions
// =============================================================================

// BinaryExpr is a left-associative binary operation.
type BinaryExpr struct {
	NodeMeta
	Op    BinaryOp
	Left  Expr
	Right Expr
}

// NotExpr is a boolean NOT.
type NotExpr struct {
	NodeMeta
	Operand Expr
}

// UnaryExpr is a prefix sign applied to a non-literal operand.
type UnaryExpr struct {
	NodeMeta
	Op      UnaryOp
	Operand Expr
}

// Comparison is a single comparison between two operands.
type Comparison struct {
	NodeMeta
	Op    ComparisonOp
	Left  Expr
	Right Expr
}

// ComparisonChain is two or more comparisons sharing operands:
// a < b < c has Operands [a, b, c] and Operators [<, <]. Each operator
// compares its neighbouring operands; the chain is never rewritten.
type ComparisonChain struct {
	NodeMeta
	Operands  []Expr
	Operators []ComparisonOp
}

// StringPredicate is STARTS WITH, ENDS WITH, CONTAINS, =~ or IN.
type StringPredicate struct {
	NodeMeta
	Op    StringOp
	Left  Expr
	Right Expr
}

// IsNull is `e IS [NOT] NULL`.
type IsNull struct {
	NodeMeta
	Operand Expr
	Not     bool
}

// IsTyped is a type predicate.
type IsTyped struct {
	NodeMeta
	Operand Expr
	Not     bool
	Syntax  TypeSyntax
	Type    *CypherType
}

// IsNormalized is `e IS [NOT] [form] NORMALIZED`.
type IsNormalized struct {
	NodeMeta
	Operand Expr
	Not     bool
	Form    NormalForm
}

// =============================================================================
// Postfix
// =============================================================================

// PropertyAccess is `subject.key`.
type PropertyAccess struct {
	NodeMeta
	Subject Expr
	Key     string
}

// LabelCheck is `subject:Label` or `subject IS Label`.
type LabelCheck struct {
	NodeMeta
	Subject Expr
	Labels  *LabelExpression
}

// IndexExpr is `subject[index]`.
type IndexExpr struct {
	NodeMeta
	Subject Expr
	Index   Expr
}

// SliceExpr is `subject[from..to]`; either bound may be nil.
type SliceExpr struct {
	NodeMeta
	Subject Expr
	From    Expr
	To      Expr
}

// =============================================================================
// Literals
// =============================================================================

// IntegerLit is an integer literal. Raw keeps the source spelling, including
// a leading minus sign folded in by the parser.
type IntegerLit struct {
	NodeMeta
	Raw string
}

// FloatLit is a floating point literal.
type FloatLit struct {
	NodeMeta
	Raw string
}

// StringLit is a string literal with escapes decoded.
type StringLit struct {
	NodeMeta
	Value string
}

// BoolLit is TRUE or FALSE.
type BoolLit struct {
	NodeMeta
	Value bool
}

// NullLit is NULL.
type NullLit struct {
	NodeMeta
}

// KeywordLit is INF, INFINITY or NAN.
type KeywordLit struct {
	NodeMeta
	Keyword string
}

// MapLit is `{k: v, ...}`.
type MapLit struct {
	NodeMeta
	Entries []*MapEntry
}

// MapEntry is one key-value pair of a map literal.
type MapEntry struct {
	NodeMeta
	Key   string
	Value Expr
}

// ListLit is `[a, b, ...]`.
type ListLit struct {
	NodeMeta
	Items []Expr
}

// Parameter is `$name` or `$0`.
type Parameter struct {
	NodeMeta
	Name string
	Type ParamType
}

// Variable is a bare name.
type Variable struct {
	NodeMeta
	Name string
}

// =============================================================================
// Compound atoms
// =============================================================================

// CaseExpr is a searched CASE: `CASE WHEN c THEN v ... [ELSE e] END`.
type CaseExpr struct {
	NodeMeta
	Alternatives []*CaseAlternative
	Else         Expr
}

// CaseAlternative is one WHEN ... THEN ... of a searched CASE.
type CaseAlternative struct {
	NodeMeta
	When Expr
	Then Expr
}

// ExtendedCaseExpr is a simple CASE with an input expression. Each WHEN may
// list several operands separated by commas.
type ExtendedCaseExpr struct {
	NodeMeta
	Input        Expr
	Alternatives []*ExtendedCaseAlternative
	Else         Expr
}

// ExtendedCaseAlternative is one WHEN of an ExtendedCaseExpr.
type ExtendedCaseAlternative struct {
	NodeMeta
	Operands []WhenOperand
	Then     Expr
}

// WhenOperand is one operand of an extended WHEN. The input expression is the
// implicit left-hand side.
type WhenOperand interface {
	Node
	whenOperandNode()
}

// WhenEquals is a plain value, compared with `=`.
type WhenEquals struct {
	NodeMeta
	Value Expr
}

// WhenComparison is `< v`, `<> v` and friends.
type WhenComparison struct {
	NodeMeta
	Op    ComparisonOp
	Value Expr
}

// WhenStringPredicate is `=~ v`, `STARTS WITH v` or `ENDS WITH v`.
type WhenStringPredicate struct {
	NodeMeta
	Op    StringOp
	Value Expr
}

// WhenNull is `IS [NOT] NULL`.
type WhenNull struct {
	NodeMeta
	Not bool
}

// WhenTyped is `IS [NOT] TYPED t` or `:: t`.
type WhenTyped struct {
	NodeMeta
	Not    bool
	Syntax TypeSyntax
	Type   *CypherType
}

// WhenNormalized is `IS [NOT] [form] NORMALIZED`.
type WhenNormalized struct {
	NodeMeta
	Not  bool
	Form NormalForm
}

// CountStar is COUNT(*).
type CountStar struct {
	NodeMeta
}

// SubqueryBody is the inside of EXISTS { }, COUNT { } or COLLECT { }: either a
// full query or a pattern list with an optional match mode and WHERE.
type SubqueryBody struct {
	NodeMeta
	Query    *RegularQuery
	Mode     *MatchMode
	Patterns []*Pattern
	Where    Expr
}

// ExistsExpr is EXISTS { ... }.
type ExistsExpr struct {
	NodeMeta
	Body *SubqueryBody
}

// CountExpr is COUNT { ... }.
type CountExpr struct {
	NodeMeta
	Body *SubqueryBody
}

// CollectExpr is COLLECT { query }.
type CollectExpr struct {
	NodeMeta
	Query *RegularQuery
}

// MapProjection is `v { .a, b: e, c, .* }`.
type MapProjection struct {
	NodeMeta
	Variable *Variable
	Items    []MapProjectionItem
}

// MapProjectionItem is one element of a MapProjection.
type MapProjectionItem interface {
	Node
	mapProjectionItemNode()
}

// PropertySelector is `.key`.
type PropertySelector struct {
	NodeMeta
	Key string
}

// LiteralEntry is `key: value`.
type LiteralEntry struct {
	NodeMeta
	Key   string
	Value Expr
}

// VariableSelector is a bare variable inside a projection.
type VariableSelector struct {
	NodeMeta
	Variable *Variable
}

// AllPropertiesSelector is `.*`.
type AllPropertiesSelector struct {
	NodeMeta
}

// ListComprehension is `[v IN source WHERE p | projection]`.
type ListComprehension struct {
	NodeMeta
	Variable   *Variable
	Source     Expr
	Where      Expr
	Projection Expr
}

// PatternComprehension is `[p = pattern WHERE e | projection]`.
type PatternComprehension struct {
	NodeMeta
	PathVariable *Variable
	Pattern      *PathPattern
	Where        Expr
	Projection   Expr
}

// ReduceExpr is `reduce(acc = init, v IN source | body)`.
type ReduceExpr struct {
	NodeMeta
	Accumulator *Variable
	Init        Expr
	Variable    *Variable
	Source      Expr
	Body        Expr
}

// PredicateKind selects the quantifier of a ListPredicate.
type PredicateKind int

const (
	PredicateAll PredicateKind = iota
	PredicateAny
	PredicateNone
	PredicateSingle
)

var predicateKindText = [...]string{
	PredicateAll:    "all",
	PredicateAny:    "any",
	PredicateNone:   "none",
	PredicateSingle: "single",
}

func (k PredicateKind) String() string { return predicateKindText[k] }

// ListPredicate is `all(v IN source WHERE p)` and its any/none/single peers.
type ListPredicate struct {
	NodeMeta
	Kind     PredicateKind
	Variable *Variable
	Source   Expr
	Where    Expr
}

// NormalizeExpr is `normalize(e [, form])`.
type NormalizeExpr struct {
	NodeMeta
	Operand Expr
	Form    NormalForm
}

// TrimMode is the side trimmed by TRIM.
type TrimMode int

const (
	TrimDefault TrimMode = iota
	TrimBoth
	TrimLeading
	TrimTrailing
)

var trimModeText = [...]string{
	TrimDefault:  "",
	TrimBoth:     "BOTH",
	TrimLeading:  "LEADING",
	TrimTrailing: "TRAILING",
}

func (m TrimMode) String() string { return trimModeText[m] }

// TrimExpr is `trim([[mode] [chars] FROM] source)`. From is set when the
// FROM form was used.
type TrimExpr struct {
	NodeMeta
	From       bool
	Mode       TrimMode
	Characters Expr
	Source     Expr
}

// PatternExpr is a relationship pattern used as a boolean or list value.
type PatternExpr struct {
	NodeMeta
	Pattern *PathPattern
}

// ShortestPathExpr is shortestPath(...) or allShortestPaths(...) in
// expression position.
type ShortestPathExpr struct {
	NodeMeta
	Pattern *ShortestPathPattern
}

// ParenExpr is a parenthesized expression.
type ParenExpr struct {
	NodeMeta
	Inner Expr
}

// FunctionCall is `ns.name([DISTINCT|ALL] args...)`.
type FunctionCall struct {
	NodeMeta
	Namespace []string
	Name      string
	Distinct  bool
	All       bool
	Args      []Expr
}

// QualifiedName joins the namespace and name with dots.
func (f *FunctionCall) QualifiedName() string {
	return strings.Join(append(append([]string(nil), f.Namespace...), f.Name), ".")
}

// =============================================================================
// Types
// =============================================================================

// CypherType is a type, possibly a union of parts joined with `|`.
type CypherType struct {
	NodeMeta
	Parts []*TypePart
}

// TypePart is one member of a type union. Name is the canonical spelling
// (BOOL becomes BOOLEAN, VERTEX becomes NODE and so on). Inner is set for
// LIST<t> and ANY<t>. Suffixes are trailing `LIST` or `ARRAY` wrappers, each
// with its own nullability.
type TypePart struct {
	NodeMeta
	Name     string
	Inner    *CypherType
	NotNull  bool
	Suffixes []*TypeSuffix
}

// TypeSuffix is a trailing LIST wrapper.
type TypeSuffix struct {
	NodeMeta
	NotNull bool
}

func (*BinaryExpr) exprNode()           {}
func (*NotExpr) exprNode()              {}
func (*UnaryExpr) exprNode()            {}
func (*Comparison) exprNode()           {}
func (*ComparisonChain) exprNode()      {}
func (*StringPredicate) exprNode()      {}
func (*IsNull) exprNode()               {}
func (*IsTyped) exprNode()              {}
func (*IsNormalized) exprNode()         {}
func (*PropertyAccess) exprNode()       {}
func (*LabelCheck) exprNode()           {}
func (*IndexExpr) exprNode()            {}
func (*SliceExpr) exprNode()            {}
func (*IntegerLit) exprNode()           {}
func (*FloatLit) exprNode()             {}
func (*StringLit) exprNode()            {}
func (*BoolLit) exprNode()              {}
func (*NullLit) exprNode()              {}
func (*KeywordLit) exprNode()           {}
func (*MapLit) exprNode()               {}
func (*ListLit) exprNode()              {}
func (*Parameter) exprNode()            {}
func (*Variable) exprNode()             {}
func (*CaseExpr) exprNode()             {}
func (*ExtendedCaseExpr) exprNode()     {}
func (*CountStar) exprNode()            {}
func (*ExistsExpr) exprNode()           {}
func (*CountExpr) exprNode()            {}
func (*CollectExpr) exprNode()          {}
func (*MapProjection) exprNode()        {}
func (*ListComprehension) exprNode()    {}
func (*PatternComprehension) exprNode() {}
func (*ReduceExpr) exprNode()           {}
func (*ListPredicate) exprNode()        {}
func (*NormalizeExpr) exprNode()        {}
func (*TrimExpr) exprNode()             {}
func (*PatternExpr) exprNode()          {}
func (*ShortestPathExpr) exprNode()     {}
func (*ParenExpr) exprNode()            {}
func (*FunctionCall) exprNode()         {}

func (*WhenEquals) whenOperandNode()          {}
func (*WhenComparison) whenOperandNode()      {}
func (*WhenStringPredicate) whenOperandNode() {}
func (*WhenNull) whenOperandNode()            {}
func (*WhenTyped) whenOperandNode()           {}
func (*WhenNormalized) whenOperandNode()      {}

func (*PropertySelector) mapProjectionItemNode()      {}
func (*LiteralEntry) mapProjectionItemNode()          {}
func (*VariableSelector) mapProjectionItemNode()      {}
func (*AllPropertiesSelector) mapProjectionItemNode() {}

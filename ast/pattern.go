package ast

// Pattern is one comma-separated part of a pattern list:
// `[p =] [selector] element`.
type Pattern struct {
	NodeMeta
	Variable *Variable
	Selector *Selector
	Element  AnonymousPattern
}

// AnonymousPattern is the element of a Pattern.
type AnonymousPattern interface {
	Node
	anonymousPatternNode()
}

// PathPattern is a node followed by alternating relationships and nodes,
// possibly interleaved with parenthesized sub-paths.
type PathPattern struct {
	NodeMeta
	Elements []PathElement
}

// ShortestPathPattern is shortestPath(path) or allShortestPaths(path).
type ShortestPathPattern struct {
	NodeMeta
	All  bool
	Path *PathPattern
}

// PathElement is one element of a PathPattern.
type PathElement interface {
	Node
	pathElementNode()
}

// NodePattern is `(v:Labels {props} WHERE e)`.
type NodePattern struct {
	NodeMeta
	Variable   *Variable
	Labels     *LabelExpression
	Properties Expr
	Where      Expr
}

// Direction is the arrow direction of a relationship pattern.
type Direction int

const (
	DirectionNone  Direction = iota // --
	DirectionLeft                   // <--
	DirectionRight                  // -->
	DirectionBoth                   // <-->
)

// RelationshipPattern is `-[v:Types *len {props} WHERE e]->` with an optional
// trailing quantifier.
type RelationshipPattern struct {
	NodeMeta
	Direction  Direction
	Variable   *Variable
	Labels     *LabelExpression
	Length     *PathLength
	Properties Expr
	Where      Expr
	Quantifier *Quantifier
}

// HasDetail reports whether the relationship needs brackets when rendered.
func (r *RelationshipPattern) HasDetail() bool {
	return r.Variable != nil || r.Labels != nil || r.Length != nil ||
		r.Properties != nil || r.Where != nil
}

// PathLength is the legacy variable-length spec `*from..to`. Nil bounds are
// unbounded; `*n` sets both bounds to n.
type PathLength struct {
	NodeMeta
	From *int64
	To   *int64
}

// ParenthesizedPath is `(pattern WHERE e){quantifier}`.
type ParenthesizedPath struct {
	NodeMeta
	Pattern    *Pattern
	Where      Expr
	Quantifier *Quantifier
}

// QuantifierKind selects the form of a Quantifier.
type QuantifierKind int

const (
	QuantifierInterval QuantifierKind = iota
	QuantifierPlus
	QuantifierStar
)

// Quantifier is `{n}`, `{n,}`, `{,m}`, `{n,m}`, `+` or `*`. For `{n}` both
// bounds are n.
type Quantifier struct {
	NodeMeta
	Kind  QuantifierKind
	Lower *int64
	Upper *int64
}

// SelectorKind is the form of a path selector.
type SelectorKind int

const (
	SelectorAnyShortest SelectorKind = iota // ANY SHORTEST
	SelectorAllShortest                     // ALL SHORTEST
	SelectorAny                             // ANY [n]
	SelectorAll                             // ALL
	SelectorShortestGroups                  // SHORTEST [n] GROUPS
	SelectorShortest                        // SHORTEST n
)

// Selector restricts which matching paths are returned. Count is set for
// ANY n, SHORTEST n GROUPS and SHORTEST n.
type Selector struct {
	NodeMeta
	Kind  SelectorKind
	Count *int64
}

// MatchModeKind selects the match mode.
type MatchModeKind int

const (
	RepeatableElements MatchModeKind = iota
	DifferentRelationships
)

// MatchMode is REPEATABLE ELEMENTS or DIFFERENT RELATIONSHIPS.
type MatchMode struct {
	NodeMeta
	Kind MatchModeKind
}

// =============================================================================
// Label expressions
// =============================================================================

// LabelExpression is a label expression introduced by `:` or, when Is is
// set, by IS.
type LabelExpression struct {
	NodeMeta
	Is   bool
	Expr LabelExpr
}

// LabelExpr is a node of the label algebra.
type LabelExpr interface {
	Node
	labelExprNode()
}

// LabelName is a static label or relationship type.
type LabelName struct {
	NodeMeta
	Name string
}

// LabelWildcard is `%`.
type LabelWildcard struct {
	NodeMeta
}

// DynamicMode is the quantifier of a dynamic label.
type DynamicMode int

const (
	DynamicPlain DynamicMode = iota // $(e)
	DynamicAny                      // $any(e)
	DynamicAll                      // $all(e)
)

// DynamicLabel is a label computed from an expression.
type DynamicLabel struct {
	NodeMeta
	Mode DynamicMode
	Expr Expr
}

// LabelNot is `!e`.
type LabelNot struct {
	NodeMeta
	Operand LabelExpr
}

// LabelAnd is `a & b`, or `a:b` when Colon is set.
type LabelAnd struct {
	NodeMeta
	Left  LabelExpr
	Right LabelExpr
	Colon bool
}

// LabelOr is `a | b`, or `a |: b` when Colon is set.
type LabelOr struct {
	NodeMeta
	Left  LabelExpr
	Right LabelExpr
	Colon bool
}

// LabelParen is a parenthesized label expression.
type LabelParen struct {
	NodeMeta
	Inner LabelExpr
}

func (*PathPattern) anonymousPatternNode()         {}
func (*ShortestPathPattern) anonymousPatternNode() {}

func (*NodePattern) pathElementNode()         {}
func (*RelationshipPattern) pathElementNode() {}
func (*ParenthesizedPath) pathElementNode()   {}

func (*LabelName) labelExprNode()     {}
func (*LabelWildcard) labelExprNode() {}
func (*DynamicLabel) labelExprNode()  {}
func (*LabelNot) labelExprNode()      {}
func (*LabelAnd) labelExprNode()      {}
func (*LabelOr) labelExprNode()       {}
func (*LabelParen) labelExprNode()    {}

package ast

// GraphReference names the graph targeted by USE: a possibly dotted alias,
// a parameter, or a graph function call.
type GraphReference struct {
	NodeMeta
	Parts []string
	Param *Parameter
	Call  *FunctionCall
}

// UseClause is `USE [GRAPH] ref`.
type UseClause struct {
	NodeMeta
	Graph  bool
	Target *GraphReference
}

// FinishClause is FINISH.
type FinishClause struct {
	NodeMeta
}

// SortDirection is the direction of an ORDER BY item.
type SortDirection int

const (
	SortDefault SortDirection = iota
	SortAscending
	SortDescending
)

// SortItem is one ORDER BY key.
type SortItem struct {
	NodeMeta
	Expr      Expr
	Direction SortDirection
}

// ReturnItem is `expr [AS alias]`.
type ReturnItem struct {
	NodeMeta
	Expr  Expr
	Alias *Variable
}

// ReturnBody is shared by RETURN and WITH.
type ReturnBody struct {
	NodeMeta
	Distinct bool
	Star     bool
	Items    []*ReturnItem
	OrderBy  []*SortItem
	Skip     Expr
	Limit    Expr
}

// ReturnClause is RETURN body.
type ReturnClause struct {
	NodeMeta
	Body *ReturnBody
}

// WithClause is WITH body [WHERE e].
type WithClause struct {
	NodeMeta
	Body  *ReturnBody
	Where Expr
}

// CreateClause is CREATE patterns.
type CreateClause struct {
	NodeMeta
	Patterns []*Pattern
}

// InsertClause is INSERT patterns. Its patterns only use label conjunctions
// and map properties.
type InsertClause struct {
	NodeMeta
	Patterns []*Pattern
}

// DetachMode is the DETACH prefix of DELETE.
type DetachMode int

const (
	DeleteDefault DetachMode = iota
	DeleteDetach
	DeleteNoDetach
)

// DeleteClause is `[DETACH|NODETACH] DELETE exprs`.
type DeleteClause struct {
	NodeMeta
	Mode  DetachMode
	Exprs []Expr
}

// SetClause is SET items.
type SetClause struct {
	NodeMeta
	Items []SetItem
}

// SetItem is one assignment of a SET clause.
type SetItem interface {
	Node
	setItemNode()
}

// SetProperty is `a.b.c = e`.
type SetProperty struct {
	NodeMeta
	Target *PropertyAccess
	Value  Expr
}

// SetDynamicProperty is `a[key] = e`.
type SetDynamicProperty struct {
	NodeMeta
	Target *IndexExpr
	Value  Expr
}

// SetVariable is `v = e`, or `v += e` when Mutate is set.
type SetVariable struct {
	NodeMeta
	Variable *Variable
	Value    Expr
	Mutate   bool
}

// SetLabels is `v:A:B` or `v IS A:B`. Labels holds LabelName and
// DynamicLabel values.
type SetLabels struct {
	NodeMeta
	Variable *Variable
	Is       bool
	Labels   []LabelExpr
}

// RemoveClause is REMOVE items.
type RemoveClause struct {
	NodeMeta
	Items []RemoveItem
}

// RemoveItem is one target of a REMOVE clause.
type RemoveItem interface {
	Node
	removeItemNode()
}

// RemoveProperty is `a.b`.
type RemoveProperty struct {
	NodeMeta
	Target *PropertyAccess
}

// RemoveDynamicProperty is `a[key]`.
type RemoveDynamicProperty struct {
	NodeMeta
	Target *IndexExpr
}

// RemoveLabels is `v:A:B` or `v IS A:B`.
type RemoveLabels struct {
	NodeMeta
	Variable *Variable
	Is       bool
	Labels   []LabelExpr
}

// MatchClause is `[OPTIONAL] MATCH [mode] patterns hints [WHERE e]`.
type MatchClause struct {
	NodeMeta
	Optional bool
	Mode     *MatchMode
	Patterns []*Pattern
	Hints    []Hint
	Where    Expr
}

// Hint is a planner hint following MATCH.
type Hint interface {
	Node
	hintNode()
}

// IndexHintKind is the index type named by USING ... INDEX.
type IndexHintKind int

const (
	IndexHintAny IndexHintKind = iota
	IndexHintText
	IndexHintRange
	IndexHintPoint
)

var indexHintText = [...]string{
	IndexHintAny:   "",
	IndexHintText:  "TEXT",
	IndexHintRange: "RANGE",
	IndexHintPoint: "POINT",
}

func (k IndexHintKind) String() string { return indexHintText[k] }

// IndexHint is `USING [kind] INDEX [SEEK] v:L(p, ...)`.
type IndexHint struct {
	NodeMeta
	Kind       IndexHintKind
	Seek       bool
	Variable   string
	Label      string
	Properties []string
}

// JoinHint is `USING JOIN ON a, b`.
type JoinHint struct {
	NodeMeta
	Variables []string
}

// ScanHint is `USING SCAN v:L`.
type ScanHint struct {
	NodeMeta
	Variable string
	Label    string
}

// MergeAction is `ON MATCH SET ...` or `ON CREATE SET ...`.
type MergeAction struct {
	NodeMeta
	OnCreate bool
	Set      *SetClause
}

// MergeClause is MERGE pattern actions.
type MergeClause struct {
	NodeMeta
	Pattern *Pattern
	Actions []*MergeAction
}

// UnwindClause is UNWIND e AS v.
type UnwindClause struct {
	NodeMeta
	Expr     Expr
	Variable *Variable
}

// ProcedureResultItem is one YIELD column of a procedure call.
type ProcedureResultItem struct {
	NodeMeta
	Name  string
	Alias *Variable
}

// ProcedureYield is `YIELD * | items [WHERE e]`.
type ProcedureYield struct {
	NodeMeta
	Star  bool
	Items []*ProcedureResultItem
	Where Expr
}

// CallClause is a procedure call. ExplicitArgs is set when an argument list
// was written, even an empty one.
type CallClause struct {
	NodeMeta
	Optional     bool
	Namespace    []string
	Name         string
	ExplicitArgs bool
	Args         []Expr
	Yield        *ProcedureYield
}

// SubqueryScope is the `(vars)` or `(*)` importing scope of CALL { }.
type SubqueryScope struct {
	NodeMeta
	Star      bool
	Variables []*Variable
}

// ErrorBehavior is the ON ERROR option of IN TRANSACTIONS.
type ErrorBehavior int

const (
	OnErrorDefault ErrorBehavior = iota
	OnErrorContinue
	OnErrorBreak
	OnErrorFail
)

var errorBehaviorText = [...]string{
	OnErrorDefault:  "",
	OnErrorContinue: "CONTINUE",
	OnErrorBreak:    "BREAK",
	OnErrorFail:     "FAIL",
}

func (b ErrorBehavior) String() string { return errorBehaviorText[b] }

// InTransactions is `IN [[n] CONCURRENT] TRANSACTIONS` with its options.
type InTransactions struct {
	NodeMeta
	Concurrent   bool
	Concurrency  Expr
	BatchSize    Expr
	OnError      ErrorBehavior
	ReportStatus *Variable
}

// SubqueryCall is `[OPTIONAL] CALL [(scope)] { query } [IN TRANSACTIONS]`.
type SubqueryCall struct {
	NodeMeta
	Optional       bool
	Scope          *SubqueryScope
	Query          *RegularQuery
	InTransactions *InTransactions
}

// LoadCSVClause is LOAD CSV [WITH HEADERS] FROM e AS v [FIELDTERMINATOR s].
type LoadCSVClause struct {
	NodeMeta
	WithHeaders     bool
	Source          Expr
	Variable        *Variable
	FieldTerminator *StringLit
}

// ForeachClause is FOREACH (v IN e | clauses).
type ForeachClause struct {
	NodeMeta
	Variable *Variable
	Source   Expr
	Clauses  []Clause
}

// OrderBySkipLimit is a standalone ORDER BY, SKIP or LIMIT clause.
type OrderBySkipLimit struct {
	NodeMeta
	OrderBy []*SortItem
	Skip    Expr
	Limit   Expr
}

func (*UseClause) clauseNode()        {}
func (*FinishClause) clauseNode()     {}
func (*ReturnClause) clauseNode()     {}
func (*CreateClause) clauseNode()     {}
func (*InsertClause) clauseNode()     {}
func (*DeleteClause) clauseNode()     {}
func (*SetClause) clauseNode()        {}
func (*RemoveClause) clauseNode()     {}
func (*MatchClause) clauseNode()      {}
func (*MergeClause) clauseNode()      {}
func (*WithClause) clauseNode()       {}
func (*UnwindClause) clauseNode()     {}
func (*CallClause) clauseNode()       {}
func (*SubqueryCall) clauseNode()     {}
func (*LoadCSVClause) clauseNode()    {}
func (*ForeachClause) clauseNode()    {}
func (*OrderBySkipLimit) clauseNode() {}

func (*SetProperty) setItemNode()        {}
func (*SetDynamicProperty) setItemNode() {}
func (*SetVariable) setItemNode()        {}
func (*SetLabels) setItemNode()          {}

func (*RemoveProperty) removeItemNode()        {}
func (*RemoveDynamicProperty) removeItemNode() {}
func (*RemoveLabels) removeItemNode()          {}

func (*IndexHint) hintNode() {}
func (*JoinHint) hintNode()  {}
func (*ScanHint) hintNode()  {}

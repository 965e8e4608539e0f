package ast

// EntityPattern is the `(v:Label)` or `()-[v:TYPE]-()` target of index and
// constraint commands. Fulltext indexes may name several labels; lookup
// indexes name none.
type EntityPattern struct {
	NodeMeta
	Relationship bool
	Variable     string
	Labels       []string
	Direction    Direction
}

// PropertyRef is `v.prop`.
type PropertyRef struct {
	NodeMeta
	Variable string
	Property string
}

// IndexKind is the index type of CREATE INDEX.
type IndexKind int

const (
	IndexDefault IndexKind = iota
	IndexBtree
	IndexRange
	IndexText
	IndexPoint
	IndexVector
)

var indexKindText = [...]string{
	IndexDefault: "",
	IndexBtree:   "BTREE",
	IndexRange:   "RANGE",
	IndexText:    "TEXT",
	IndexPoint:   "POINT",
	IndexVector:  "VECTOR",
}

func (k IndexKind) String() string { return indexKindText[k] }

// CreateIndex is CREATE [kind] INDEX [name] [IF NOT EXISTS] FOR pattern ON
// properties [OPTIONS m].
type CreateIndex struct {
	NodeMeta
	Replace     bool
	Kind        IndexKind
	Name        *CommandName
	IfNotExists bool
	Entity      *EntityPattern
	Properties  []*PropertyRef
	Options     *MapOrParam
}

// CreateLookupIndex is CREATE LOOKUP INDEX ... FOR (n) ON EACH labels(n), or
// the relationship form with type(r).
type CreateLookupIndex struct {
	NodeMeta
	Replace     bool
	Name        *CommandName
	IfNotExists bool
	Entity      *EntityPattern
	Function    string
	Argument    string
	Options     *MapOrParam
}

// CreateFulltextIndex is CREATE FULLTEXT INDEX ... ON EACH [props].
type CreateFulltextIndex struct {
	NodeMeta
	Replace     bool
	Name        *CommandName
	IfNotExists bool
	Entity      *EntityPattern
	Properties  []*PropertyRef
	Options     *MapOrParam
}

// CreateLegacyIndex is CREATE INDEX ON :Label(props).
type CreateLegacyIndex struct {
	NodeMeta
	Label      string
	Properties []string
}

// DropIndex is DROP INDEX name [IF EXISTS].
type DropIndex struct {
	NodeMeta
	Name     *CommandName
	IfExists bool
}

// DropLegacyIndex is DROP INDEX ON :Label(props).
type DropLegacyIndex struct {
	NodeMeta
	Label      string
	Properties []string
}

// ConstraintKind is the requirement a constraint enforces.
type ConstraintKind int

const (
	ConstraintExists ConstraintKind = iota // ASSERT EXISTS props
	ConstraintTyped
	ConstraintUnique
	ConstraintKey
	ConstraintNotNull
)

// CreateConstraint is CREATE CONSTRAINT. On records `ON` instead of `FOR`
// and Assert records `ASSERT` instead of `REQUIRE`. EntityWord is the
// optional NODE, RELATIONSHIP or REL before UNIQUE and KEY.
type CreateConstraint struct {
	NodeMeta
	Replace     bool
	Name        *CommandName
	IfNotExists bool
	On          bool
	Entity      *EntityPattern
	Assert      bool
	Properties  []*PropertyRef
	Kind        ConstraintKind
	EntityWord  string
	TypeSyntax  TypeSyntax
	Type        *CypherType
	Options     *MapOrParam
}

// DropConstraint is DROP CONSTRAINT name [IF EXISTS].
type DropConstraint struct {
	NodeMeta
	Name     *CommandName
	IfExists bool
}

// DropLegacyConstraint is DROP CONSTRAINT ON pattern ASSERT ... . Kind is
// one of ConstraintExists, ConstraintUnique, ConstraintKey or
// ConstraintNotNull.
type DropLegacyConstraint struct {
	NodeMeta
	Entity     *EntityPattern
	Kind       ConstraintKind
	Properties []*PropertyRef
}

// Verbosity is the BRIEF or VERBOSE output option of SHOW INDEXES and SHOW
// CONSTRAINTS.
type Verbosity int

const (
	VerbosityDefault Verbosity = iota
	VerbosityBrief
	VerbosityVerbose
)

// ShowIndexes is SHOW [type] INDEXES. Type is the upper-case filter keyword,
// empty when none was given.
type ShowIndexes struct {
	NodeMeta
	Type      string
	Verbosity Verbosity
	Show      *ShowOptions
}

// ShowConstraints is SHOW [filter] CONSTRAINTS. Filter is the canonical
// filter phrase, e.g. "NODE UNIQUE" or "PROPERTY EXISTENCE".
type ShowConstraints struct {
	NodeMeta
	Filter    string
	Verbosity Verbosity
	Show      *ShowOptions
}

func (*CreateIndex) statementNode()          {}
func (*CreateLookupIndex) statementNode()    {}
func (*CreateFulltextIndex) statementNode()  {}
func (*CreateLegacyIndex) statementNode()    {}
func (*DropIndex) statementNode()            {}
func (*DropLegacyIndex) statementNode()      {}
func (*CreateConstraint) statementNode()     {}
func (*DropConstraint) statementNode()       {}
func (*DropLegacyConstraint) statementNode() {}
func (*ShowIndexes) statementNode()          {}
func (*ShowConstraints) statementNode()      {}

func (*CreateIndex) commandNode()          {}
func (*CreateLookupIndex) commandNode()    {}
func (*CreateFulltextIndex) commandNode()  {}
func (*CreateLegacyIndex) commandNode()    {}
func (*DropIndex) commandNode()            {}
func (*DropLegacyIndex) commandNode()      {}
func (*CreateConstraint) commandNode()     {}
func (*DropConstraint) commandNode()       {}
func (*DropLegacyConstraint) commandNode() {}
func (*ShowIndexes) commandNode()          {}
func (*ShowConstraints) commandNode()      {}

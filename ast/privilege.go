package ast

// PrivilegeVerb is GRANT, DENY or REVOKE.
type PrivilegeVerb int

const (
	VerbGrant PrivilegeVerb = iota
	VerbDeny
	VerbRevoke
)

var privilegeVerbText = [...]string{
	VerbGrant:  "GRANT",
	VerbDeny:   "DENY",
	VerbRevoke: "REVOKE",
}

func (v PrivilegeVerb) String() string { return privilegeVerbText[v] }

// RevokeKind narrows a REVOKE to granted or denied privileges.
type RevokeKind int

const (
	RevokeAny RevokeKind = iota
	RevokeGrant
	RevokeDeny
)

// PrivilegeCommand grants, denies or revokes a privilege for roles.
type PrivilegeCommand struct {
	NodeMeta
	Verb      PrivilegeVerb
	Revoke    RevokeKind
	Immutable bool
	Privilege *Privilege
	Roles     []*CommandName
}

// Privilege is an action applied to a scope. Action is the canonical
// upper-case keyword phrase, e.g. "TRAVERSE", "CREATE NEW NODE LABEL" or
// "ALL DATABASE PRIVILEGES". The remaining fields are set only for the
// actions that take them.
type Privilege struct {
	NodeMeta
	Action     string
	Properties *PrivilegeResource
	Labels     *PrivilegeResource
	Users      *UserQualifier
	Globs      []*Glob
	Scope      *PrivilegeScope
	Qualifier  *GraphQualifier
}

// PrivilegeResource is `{*}`, `{a, b}` for properties or `*`, `a, b` for
// labels.
type PrivilegeResource struct {
	NodeMeta
	Star  bool
	Names []string
}

// UserQualifier is `(*)` or `(u1, u2)`.
type UserQualifier struct {
	NodeMeta
	Star  bool
	Users []*CommandName
}

// ScopeKind is the target after ON.
type ScopeKind int

const (
	ScopeDBMS ScopeKind = iota
	ScopeDatabase
	ScopeGraph
	ScopeDefaultDatabase
	ScopeHomeDatabase
	ScopeDefaultGraph
	ScopeHomeGraph
	ScopeURL
	ScopeCIDR
	ScopeAllData
)

// PrivilegeScope is the ON part of a privilege. Star and Names apply to
// database and graph scopes, Value to URL and CIDR scopes.
type PrivilegeScope struct {
	NodeMeta
	Kind  ScopeKind
	Star  bool
	Names []*AliasName
	Value *StringOrParam
}

// QualifierKind selects the element filter of a graph privilege.
type QualifierKind int

const (
	QualifyNodes QualifierKind = iota
	QualifyRelationships
	QualifyElements
	QualifyPattern
)

// GraphQualifier is `NODES *`, `RELATIONSHIPS a, b`, `ELEMENTS ...` or a
// `FOR (v:A|B WHERE e)` / `FOR (v {map})` pattern.
type GraphQualifier struct {
	NodeMeta
	Kind       QualifierKind
	Star       bool
	Names      []string
	Variable   string
	Labels     []string
	Where      Expr
	Properties *MapLit
}

// GlobPartKind is the kind of one glob segment.
type GlobPartKind int

const (
	GlobName GlobPartKind = iota
	GlobEscapedName
	GlobDot
	GlobQuestion
	GlobStar
)

// GlobPart is one segment of a Glob. Text holds the name of name segments.
type GlobPart struct {
	NodeMeta
	Kind GlobPartKind
	Text string
}

// Glob is a procedure, function or setting name pattern such as
// `apoc.*` or `dbms.security.?`.
type Glob struct {
	NodeMeta
	Parts []*GlobPart
}

// PrivilegeListScope selects whose privileges SHOW PRIVILEGES lists.
type PrivilegeListScope int

const (
	PrivilegesAll PrivilegeListScope = iota
	PrivilegesOfRoles
	PrivilegesOfUsers
)

// ShowPrivileges is SHOW [ALL] PRIVILEGES, SHOW ROLE r PRIVILEGES or SHOW
// USER [u] PRIVILEGES, optionally AS [REVOKE] COMMANDS. ExplicitAll records
// the ALL keyword.
type ShowPrivileges struct {
	NodeMeta
	Scope       PrivilegeListScope
	ExplicitAll bool
	Names       []*CommandName
	AsCommands  bool
	AsRevoke    bool
	Show        *ShowOptions
}

// ShowSupportedPrivileges is SHOW SUPPORTED PRIVILEGES.
type ShowSupportedPrivileges struct {
	NodeMeta
	Show *ShowOptions
}

func (*PrivilegeCommand) statementNode()        {}
func (*ShowPrivileges) statementNode()          {}
func (*ShowSupportedPrivileges) statementNode() {}

func (*PrivilegeCommand) commandNode()        {}
func (*ShowPrivileges) commandNode()          {}
func (*ShowSupportedPrivileges) commandNode() {}

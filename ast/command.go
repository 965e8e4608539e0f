package ast

// =============================================================================
// Shared command operands
// =============================================================================

// CommandName is a symbolic name or a STRING parameter, as used for roles,
// users, indexes and constraints.
type CommandName struct {
	NodeMeta
	Name  string
	Param *Parameter
}

// AliasName is a possibly dotted database or alias name, or a STRING
// parameter.
type AliasName struct {
	NodeMeta
	Parts []string
	Param *Parameter
}

// StringOrParam is a string literal or a STRING parameter.
type StringOrParam struct {
	NodeMeta
	Value string
	Param *Parameter
}

// MapOrParam is a map literal or a MAP parameter.
type MapOrParam struct {
	NodeMeta
	Map   *MapLit
	Param *Parameter
}

// IntOrParam is an unsigned integer or a parameter.
type IntOrParam struct {
	NodeMeta
	Value int64
	Param *Parameter
}

// WaitClause is `WAIT [n SECONDS]` or `NOWAIT`.
type WaitClause struct {
	NodeMeta
	NoWait  bool
	Seconds *int64
}

// YieldItem is `column [AS alias]` in a SHOW ... YIELD.
type YieldItem struct {
	NodeMeta
	Variable *Variable
	Alias    *Variable
}

// YieldClause is the YIELD part of a SHOW command.
type YieldClause struct {
	NodeMeta
	Star    bool
	Items   []*YieldItem
	OrderBy []*SortItem
	Skip    Expr
	Limit   Expr
	Where   Expr
}

// ShowOptions is the trailing `YIELD ... [RETURN ...]` or `WHERE e` of a
// SHOW command.
type ShowOptions struct {
	NodeMeta
	Yield  *YieldClause
	Return *ReturnClause
	Where  Expr
}

// CompositeCommand is a command preceded by USE, or several composable SHOW
// and TERMINATE commands chained together.
type CompositeCommand struct {
	NodeMeta
	Use      *UseClause
	Commands []Command
}

// =============================================================================
// Roles
// =============================================================================

// CreateRole is CREATE [OR REPLACE] ROLE.
type CreateRole struct {
	NodeMeta
	Replace     bool
	Name        *CommandName
	IfNotExists bool
	CopyOf      *CommandName
}

// DropRole is DROP ROLE.
type DropRole struct {
	NodeMeta
	Name     *CommandName
	IfExists bool
}

// RenameRole is RENAME ROLE a TO b.
type RenameRole struct {
	NodeMeta
	From     *CommandName
	IfExists bool
	To       *CommandName
}

// RoleFilter narrows SHOW ROLES.
type RoleFilter int

const (
	RolesDefault RoleFilter = iota
	RolesAll
	RolesPopulated
)

// ShowRoles is SHOW [ALL|POPULATED] ROLES [WITH USERS].
type ShowRoles struct {
	NodeMeta
	Filter    RoleFilter
	WithUsers bool
	Show      *ShowOptions
}

// GrantRoles is GRANT ROLE roles TO users.
type GrantRoles struct {
	NodeMeta
	Roles []*CommandName
	Users []*CommandName
}

// RevokeRoles is REVOKE ROLE roles FROM users.
type RevokeRoles struct {
	NodeMeta
	Roles []*CommandName
	Users []*CommandName
}

// =============================================================================
// Users
// =============================================================================

// UserSetting is one SET (or REMOVE) item of CREATE and ALTER USER.
type UserSetting interface {
	Node
	userSettingNode()
}

// PasswordEncryption is the PLAINTEXT or ENCRYPTED marker of a password.
type PasswordEncryption int

const (
	PasswordDefault PasswordEncryption = iota
	PasswordPlaintext
	PasswordEncrypted
)

// SetPassword is `SET [PLAINTEXT|ENCRYPTED] PASSWORD p [CHANGE [NOT] REQUIRED]`.
type SetPassword struct {
	NodeMeta
	Encryption     PasswordEncryption
	Password       *StringOrParam
	ChangeRequired *bool
}

// SetPasswordChangeRequired is `SET PASSWORD CHANGE [NOT] REQUIRED`.
type SetPasswordChangeRequired struct {
	NodeMeta
	Required bool
}

// SetStatus is `SET STATUS SUSPENDED|ACTIVE`.
type SetStatus struct {
	NodeMeta
	Suspended bool
}

// SetHomeDatabase is `SET HOME DATABASE d`.
type SetHomeDatabase struct {
	NodeMeta
	Database *AliasName
}

// RemoveHomeDatabase is `REMOVE HOME DATABASE`.
type RemoveHomeDatabase struct {
	NodeMeta
}

// CreateUser is CREATE [OR REPLACE] USER.
type CreateUser struct {
	NodeMeta
	Replace     bool
	Name        *CommandName
	IfNotExists bool
	Settings    []UserSetting
}

// AlterUser is ALTER USER.
type AlterUser struct {
	NodeMeta
	Name     *CommandName
	IfExists bool
	Settings []UserSetting
}

// DropUser is DROP USER.
type DropUser struct {
	NodeMeta
	Name     *CommandName
	IfExists bool
}

// RenameUser is RENAME USER a TO b.
type RenameUser struct {
	NodeMeta
	From     *CommandName
	IfExists bool
	To       *CommandName
}

// AlterCurrentUser is ALTER CURRENT USER SET PASSWORD FROM old TO new.
type AlterCurrentUser struct {
	NodeMeta
	Old *StringOrParam
	New *StringOrParam
}

// ShowUsers is SHOW USERS [WITH AUTH].
type ShowUsers struct {
	NodeMeta
	WithAuth bool
	Show     *ShowOptions
}

// ShowCurrentUser is SHOW CURRENT USER.
type ShowCurrentUser struct {
	NodeMeta
	Show *ShowOptions
}

// =============================================================================
// Databases
// =============================================================================

// Topology is `TOPOLOGY n PRIMARIES m SECONDARIES`.
type Topology struct {
	NodeMeta
	Primaries   *IntOrParam
	Secondaries *IntOrParam
}

// CreateDatabase is CREATE [OR REPLACE] [COMPOSITE] DATABASE.
type CreateDatabase struct {
	NodeMeta
	Replace     bool
	Composite   bool
	Name        *AliasName
	IfNotExists bool
	Topology    *Topology
	Options     *MapOrParam
	Wait        *WaitClause
}

// AliasAction is the RESTRICT or CASCADE ALIASES option of DROP DATABASE.
type AliasAction int

const (
	AliasActionDefault AliasAction = iota
	AliasActionRestrict
	AliasActionCascade
)

// DataAction is the DUMP or DESTROY DATA option of DROP DATABASE.
type DataAction int

const (
	DataActionDefault DataAction = iota
	DataActionDump
	DataActionDestroy
)

// DropDatabase is DROP [COMPOSITE] DATABASE.
type DropDatabase struct {
	NodeMeta
	Composite bool
	Name      *AliasName
	IfExists  bool
	Aliases   AliasAction
	Data      DataAction
	Wait      *WaitClause
}

// DatabaseSetting is one SET item of ALTER DATABASE.
type DatabaseSetting interface {
	Node
	databaseSettingNode()
}

// SetAccess is `SET ACCESS READ ONLY|WRITE`.
type SetAccess struct {
	NodeMeta
	ReadOnly bool
}

// SetTopology is `SET TOPOLOGY ...`.
type SetTopology struct {
	NodeMeta
	Topology *Topology
}

// SetOption is `SET OPTION key value`.
type SetOption struct {
	NodeMeta
	Key   string
	Value Expr
}

// AlterDatabase is ALTER DATABASE. Either Settings or RemoveOptions is set.
type AlterDatabase struct {
	NodeMeta
	Name          *AliasName
	IfExists      bool
	Settings      []DatabaseSetting
	RemoveOptions []string
	Wait          *WaitClause
}

// StartDatabase is START DATABASE.
type StartDatabase struct {
	NodeMeta
	Name *AliasName
	Wait *WaitClause
}

// StopDatabase is STOP DATABASE.
type StopDatabase struct {
	NodeMeta
	Name *AliasName
	Wait *WaitClause
}

// DatabaseScope selects which databases SHOW DATABASE lists.
type DatabaseScope int

const (
	DatabasesNamed DatabaseScope = iota
	DatabaseDefault
	DatabaseHome
)

// ShowDatabases is SHOW DEFAULT|HOME DATABASE or SHOW DATABASE(S) [name].
type ShowDatabases struct {
	NodeMeta
	Scope  DatabaseScope
	Plural bool
	Name   *AliasName
	Show   *ShowOptions
}

// =============================================================================
// Aliases
// =============================================================================

// RemoteAlias is the `AT url USER u PASSWORD p [DRIVER m]` part of a remote
// alias.
type RemoteAlias struct {
	NodeMeta
	URL      *StringOrParam
	User     *CommandName
	Password *StringOrParam
	Driver   *MapOrParam
}

// CreateAlias is CREATE [OR REPLACE] ALIAS a FOR DATABASE d.
type CreateAlias struct {
	NodeMeta
	Replace     bool
	Name        *AliasName
	IfNotExists bool
	Target      *AliasName
	Remote      *RemoteAlias
	Properties  *MapOrParam
}

// AlterAlias is ALTER ALIAS a SET DATABASE ... with at least one field set.
type AlterAlias struct {
	NodeMeta
	Name       *AliasName
	IfExists   bool
	Target     *AliasName
	URL        *StringOrParam
	User       *CommandName
	Password   *StringOrParam
	Driver     *MapOrParam
	Properties *MapOrParam
}

// DropAlias is DROP ALIAS a [IF EXISTS] FOR DATABASE.
type DropAlias struct {
	NodeMeta
	Name     *AliasName
	IfExists bool
}

// ShowAliases is SHOW ALIASES [a] FOR DATABASES.
type ShowAliases struct {
	NodeMeta
	Name *AliasName
	Show *ShowOptions
}

// =============================================================================
// Servers
// =============================================================================

// EnableServer is ENABLE SERVER s [OPTIONS m].
type EnableServer struct {
	NodeMeta
	Name    *StringOrParam
	Options *MapOrParam
}

// AlterServer is ALTER SERVER s SET OPTIONS m.
type AlterServer struct {
	NodeMeta
	Name    *StringOrParam
	Options *MapOrParam
}

// RenameServer is RENAME SERVER a TO b.
type RenameServer struct {
	NodeMeta
	From *StringOrParam
	To   *StringOrParam
}

// DropServer is DROP SERVER s.
type DropServer struct {
	NodeMeta
	Name *StringOrParam
}

// ShowServers is SHOW SERVERS.
type ShowServers struct {
	NodeMeta
	Show *ShowOptions
}

// DeallocateDatabases is [DRYRUN] DEALLOCATE DATABASES FROM SERVERS list.
type DeallocateDatabases struct {
	NodeMeta
	DryRun  bool
	Servers []*StringOrParam
}

// ReallocateDatabases is [DRYRUN] REALLOCATE DATABASES.
type ReallocateDatabases struct {
	NodeMeta
	DryRun bool
}

// =============================================================================
// Procedures, functions, transactions, settings
// =============================================================================

// ExecutableBy is `EXECUTABLE [BY CURRENT USER | BY user]`. A bare
// EXECUTABLE is read as BY CURRENT USER.
type ExecutableBy struct {
	NodeMeta
	CurrentUser bool
	User        string
}

// ShowProcedures is SHOW PROCEDURES [EXECUTABLE ...].
type ShowProcedures struct {
	NodeMeta
	Executable *ExecutableBy
	Show       *ShowOptions
}

// FunctionFilter narrows SHOW FUNCTIONS.
type FunctionFilter int

const (
	FunctionsDefault FunctionFilter = iota
	FunctionsAll
	FunctionsBuiltIn
	FunctionsUserDefined
)

// ShowFunctions is SHOW [ALL|BUILT IN|USER DEFINED] FUNCTIONS.
type ShowFunctions struct {
	NodeMeta
	Filter     FunctionFilter
	Executable *ExecutableBy
	Show       *ShowOptions
}

// ShowTransactions is SHOW TRANSACTIONS [ids]. IDs holds either several
// string literals or a single expression.
type ShowTransactions struct {
	NodeMeta
	IDs  []Expr
	Show *ShowOptions
}

// TerminateTransactions is TERMINATE TRANSACTIONS ids.
type TerminateTransactions struct {
	NodeMeta
	IDs  []Expr
	Show *ShowOptions
}

// ShowSettings is SHOW SETTINGS [names].
type ShowSettings struct {
	NodeMeta
	Names []Expr
	Show  *ShowOptions
}

func (*CompositeCommand) statementNode()      {}
func (*CreateRole) statementNode()            {}
func (*DropRole) statementNode()              {}
func (*RenameRole) statementNode()            {}
func (*ShowRoles) statementNode()             {}
func (*GrantRoles) statementNode()            {}
func (*RevokeRoles) statementNode()           {}
func (*CreateUser) statementNode()            {}
func (*AlterUser) statementNode()             {}
func (*DropUser) statementNode()              {}
func (*RenameUser) statementNode()            {}
func (*AlterCurrentUser) statementNode()      {}
func (*ShowUsers) statementNode()             {}
func (*ShowCurrentUser) statementNode()       {}
func (*CreateDatabase) statementNode()        {}
func (*DropDatabase) statementNode()          {}
func (*AlterDatabase) statementNode()         {}
func (*StartDatabase) statementNode()         {}
func (*StopDatabase) statementNode()          {}
func (*ShowDatabases) statementNode()         {}
func (*CreateAlias) statementNode()           {}
func (*AlterAlias) statementNode()            {}
func (*DropAlias) statementNode()             {}
func (*ShowAliases) statementNode()           {}
func (*EnableServer) statementNode()          {}
func (*AlterServer) statementNode()           {}
func (*RenameServer) statementNode()          {}
func (*DropServer) statementNode()            {}
func (*ShowServers) statementNode()           {}
func (*DeallocateDatabases) statementNode()   {}
func (*ReallocateDatabases) statementNode()   {}
func (*ShowProcedures) statementNode()        {}
func (*ShowFunctions) statementNode()         {}
func (*ShowTransactions) statementNode()      {}
func (*TerminateTransactions) statementNode() {}
func (*ShowSettings) statementNode()          {}

func (*CompositeCommand) commandNode()      {}
func (*CreateRole) commandNode()            {}
func (*DropRole) commandNode()              {}
func (*RenameRole) commandNode()            {}
func (*ShowRoles) commandNode()             {}
func (*GrantRoles) commandNode()            {}
func (*RevokeRoles) commandNode()           {}
func (*CreateUser) commandNode()            {}
func (*AlterUser) commandNode()             {}
func (*DropUser) commandNode()              {}
func (*RenameUser) commandNode()            {}
func (*AlterCurrentUser) commandNode()      {}
func (*ShowUsers) commandNode()             {}
func (*ShowCurrentUser) commandNode()       {}
func (*CreateDatabase) commandNode()        {}
func (*DropDatabase) commandNode()          {}
func (*AlterDatabase) commandNode()         {}
func (*StartDatabase) commandNode()         {}
func (*StopDatabase) commandNode()          {}
func (*ShowDatabases) commandNode()         {}
func (*CreateAlias) commandNode()           {}
func (*AlterAlias) commandNode()            {}
func (*DropAlias) commandNode()             {}
func (*ShowAliases) commandNode()           {}
func (*EnableServer) commandNode()          {}
func (*AlterServer) commandNode()           {}
func (*RenameServer) commandNode()          {}
func (*DropServer) commandNode()            {}
func (*ShowServers) commandNode()           {}
func (*DeallocateDatabases) commandNode()   {}
func (*ReallocateDatabases) commandNode()   {}
func (*ShowProcedures) commandNode()        {}
func (*ShowFunctions) commandNode()         {}
func (*ShowTransactions) commandNode()      {}
func (*TerminateTransactions) commandNode() {}
func (*ShowSettings) commandNode()          {}

func (*SetPassword) userSettingNode()               {}
func (*SetPasswordChangeRequired) userSettingNode() {}
func (*SetStatus) userSettingNode()                 {}
func (*SetHomeDatabase) userSettingNode()           {}
func (*RemoveHomeDatabase) userSettingNode()        {}

func (*SetAccess) databaseSettingNode()   {}
func (*SetTopology) databaseSettingNode() {}
func (*SetOption) databaseSettingNode()   {}

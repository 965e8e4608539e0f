package format

import (
	"strings"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/scanner"
)

func (p *printer) command(c ast.Command) {
	switch c := c.(type) {
	case *ast.CompositeCommand:
		if c.Use != nil {
			p.clause(c.Use)
			p.sep()
		}

		for i, cmd := range c.Commands {
			if i > 0 {
				p.sep()
			}

			p.command(cmd)
		}
	case *ast.PrivilegeCommand:
		p.privilegeCommand(c)
	case *ast.ShowPrivileges:
		p.showPrivileges(c)
	case *ast.ShowSupportedPrivileges:
		p.write("SHOW SUPPORTED PRIVILEGES")
		p.showOptions(c.Show)
	default:
		if !p.userCommand(c) && !p.databaseCommand(c) && !p.schemaCommand(c) {
			p.showCommand(c)
		}
	}
}

// commandDetail renders the operand nodes shared by commands.
func (p *printer) commandDetail(n ast.Node) {
	switch n := n.(type) {
	case *ast.CommandName:
		p.commandName(n)
	case *ast.AliasName:
		p.aliasName(n)
	case *ast.StringOrParam:
		p.stringOrParam(n)
	case *ast.MapOrParam:
		p.mapOrParam(n)
	case *ast.IntOrParam:
		p.intOrParam(n)
	case *ast.WaitClause:
		p.wait(n)
	case *ast.Topology:
		p.topology(n)
	case *ast.RemoteAlias:
		p.remoteAlias(n)
	case *ast.ShowOptions:
		p.showOptions(n)
	case *ast.YieldClause:
		p.yieldClause(n)
	case *ast.YieldItem:
		p.yieldItem(n)
	case *ast.ExecutableBy:
		p.executableBy(n)
	case *ast.EntityPattern:
		p.entityPattern(n)
	case *ast.PropertyRef:
		p.propertyRef(n)
	case *ast.Privilege:
		p.privilege(n)
	case *ast.PrivilegeResource:
		p.propertiesResource(n)
	case *ast.UserQualifier:
		p.userQualifier(n)
	case *ast.PrivilegeScope:
		p.privilegeScope(n)
	case *ast.GraphQualifier:
		p.graphQualifier(n)
	case *ast.Glob:
		p.glob(n)
	case *ast.GlobPart:
		p.globPart(n)
	}
}

// =============================================================================
// Operands
// =============================================================================

func (p *printer) commandName(n *ast.CommandName) {
	if n.Param != nil {
		p.parameter(n.Param)

		return
	}

	p.write(key(n.Name))
}

func (p *printer) commandNames(names []*ast.CommandName) {
	list(p, names, p.commandName)
}

func (p *printer) aliasName(n *ast.AliasName) {
	if n.Param != nil {
		p.parameter(n.Param)

		return
	}

	p.write(dotted(n.Parts))
}

func (p *printer) stringOrParam(s *ast.StringOrParam) {
	if s.Param != nil {
		p.parameter(s.Param)

		return
	}

	p.write(scanner.Quote(s.Value))
}

func (p *printer) mapOrParam(m *ast.MapOrParam) {
	if m.Param != nil {
		p.parameter(m.Param)

		return
	}

	p.mapLit(m.Map)
}

func (p *printer) intOrParam(n *ast.IntOrParam) {
	if n.Param != nil {
		p.parameter(n.Param)

		return
	}

	p.write(itoa(n.Value))
}

func (p *printer) options(m *ast.MapOrParam) {
	if m != nil {
		p.write(" OPTIONS ")
		p.mapOrParam(m)
	}
}

func (p *printer) wait(w *ast.WaitClause) {
	if w.NoWait {
		p.write("NOWAIT")

		return
	}

	p.write("WAIT")

	if w.Seconds != nil {
		p.write(" ", itoa(*w.Seconds), " SECONDS")
	}
}

func (p *printer) optionalWait(w *ast.WaitClause) {
	if w != nil {
		p.write(" ")
		p.wait(w)
	}
}

func (p *printer) flag(set bool, text string) {
	if set {
		p.write(text)
	}
}

func (p *printer) showOptions(s *ast.ShowOptions) {
	if s == nil {
		return
	}

	if s.Yield != nil {
		p.write(" ")
		p.yieldClause(s.Yield)

		if s.Return != nil {
			p.write(" ")
			p.clause(s.Return)
		}

		return
	}

	p.where(s.Where)
}

func (p *printer) yieldClause(y *ast.YieldClause) {
	p.write("YIELD ")

	if y.Star {
		p.write("*")
	} else {
		list(p, y.Items, p.yieldItem)
	}

	p.orderSkipLimit(y.OrderBy, y.Skip, y.Limit, true)
	p.where(y.Where)
}

func (p *printer) yieldItem(item *ast.YieldItem) {
	p.write(variable(item.Variable.Name))

	if item.Alias != nil {
		p.write(" AS ", variable(item.Alias.Name))
	}
}

// =============================================================================
// Roles and users
// =============================================================================

func (p *printer) userCommand(c ast.Command) bool {
	switch c := c.(type) {
	case *ast.CreateRole:
		p.write("CREATE ")
		p.flag(c.Replace, "OR REPLACE ")
		p.write("ROLE ")
		p.commandName(c.Name)
		p.flag(c.IfNotExists, " IF NOT EXISTS")

		if c.CopyOf != nil {
			p.write(" AS COPY OF ")
			p.commandName(c.CopyOf)
		}
	case *ast.DropRole:
		p.write("DROP ROLE ")
		p.commandName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
	case *ast.RenameRole:
		p.write("RENAME ROLE ")
		p.rename(c.From, c.IfExists, c.To)
	case *ast.ShowRoles:
		p.write("SHOW ")

		switch c.Filter {
		case ast.RolesAll:
			p.write("ALL ")
		case ast.RolesPopulated:
			p.write("POPULATED ")
		}

		p.write("ROLES")
		p.flag(c.WithUsers, " WITH USERS")
		p.showOptions(c.Show)
	case *ast.GrantRoles:
		p.write("GRANT ", plural("ROLE", len(c.Roles)), " ")
		p.commandNames(c.Roles)
		p.write(" TO ")
		p.commandNames(c.Users)
	case *ast.RevokeRoles:
		p.write("REVOKE ", plural("ROLE", len(c.Roles)), " ")
		p.commandNames(c.Roles)
		p.write(" FROM ")
		p.commandNames(c.Users)
	case *ast.CreateUser:
		p.write("CREATE ")
		p.flag(c.Replace, "OR REPLACE ")
		p.write("USER ")
		p.commandName(c.Name)
		p.flag(c.IfNotExists, " IF NOT EXISTS")
		p.userSettings(c.Settings)
	case *ast.AlterUser:
		p.write("ALTER USER ")
		p.commandName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
		p.userSettings(c.Settings)
	case *ast.DropUser:
		p.write("DROP USER ")
		p.commandName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
	case *ast.RenameUser:
		p.write("RENAME USER ")
		p.rename(c.From, c.IfExists, c.To)
	case *ast.AlterCurrentUser:
		p.write("ALTER CURRENT USER SET PASSWORD FROM ")
		p.stringOrParam(c.Old)
		p.write(" TO ")
		p.stringOrParam(c.New)
	case *ast.ShowUsers:
		p.write("SHOW USERS")
		p.flag(c.WithAuth, " WITH AUTH")
		p.showOptions(c.Show)
	case *ast.ShowCurrentUser:
		p.write("SHOW CURRENT USER")
		p.showOptions(c.Show)
	default:
		return false
	}

	return true
}

func (p *printer) rename(from *ast.CommandName, ifExists bool, to *ast.CommandName) {
	p.commandName(from)
	p.flag(ifExists, " IF EXISTS")
	p.write(" TO ")
	p.commandName(to)
}

func (p *printer) userSettings(settings []ast.UserSetting) {
	for _, s := range settings {
		p.write(" ")
		p.userSetting(s)
	}
}

func (p *printer) userSetting(s ast.UserSetting) {
	switch s := s.(type) {
	case *ast.SetPassword:
		p.write("SET ")

		switch s.Encryption {
		case ast.PasswordPlaintext:
			p.write("PLAINTEXT ")
		case ast.PasswordEncrypted:
			p.write("ENCRYPTED ")
		}

		p.write("PASSWORD ")
		p.stringOrParam(s.Password)

		if s.ChangeRequired != nil {
			p.write(" ")
			p.changeRequired(*s.ChangeRequired)
		}
	case *ast.SetPasswordChangeRequired:
		p.write("SET PASSWORD ")
		p.changeRequired(s.Required)
	case *ast.SetStatus:
		if s.Suspended {
			p.write("SET STATUS SUSPENDED")
		} else {
			p.write("SET STATUS ACTIVE")
		}
	case *ast.SetHomeDatabase:
		p.write("SET HOME DATABASE ")
		p.aliasName(s.Database)
	case *ast.RemoveHomeDatabase:
		p.write("REMOVE HOME DATABASE")
	}
}

func (p *printer) changeRequired(required bool) {
	if required {
		p.write("CHANGE REQUIRED")
	} else {
		p.write("CHANGE NOT REQUIRED")
	}
}

// =============================================================================
// Databases, aliases and servers
// =============================================================================

func (p *printer) databaseCommand(c ast.Command) bool {
	switch c := c.(type) {
	case *ast.CreateDatabase:
		p.write("CREATE ")
		p.flag(c.Replace, "OR REPLACE ")
		p.flag(c.Composite, "COMPOSITE ")
		p.write("DATABASE ")
		p.aliasName(c.Name)
		p.flag(c.IfNotExists, " IF NOT EXISTS")

		if c.Topology != nil {
			p.write(" ")
			p.topology(c.Topology)
		}

		p.options(c.Options)
		p.optionalWait(c.Wait)
	case *ast.DropDatabase:
		p.dropDatabase(c)
	case *ast.AlterDatabase:
		p.write("ALTER DATABASE ")
		p.aliasName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")

		for _, s := range c.Settings {
			p.write(" ")
			p.databaseSetting(s)
		}

		for _, opt := range c.RemoveOptions {
			p.write(" REMOVE OPTION ", key(opt))
		}

		p.optionalWait(c.Wait)
	case *ast.StartDatabase:
		p.write("START DATABASE ")
		p.aliasName(c.Name)
		p.optionalWait(c.Wait)
	case *ast.StopDatabase:
		p.write("STOP DATABASE ")
		p.aliasName(c.Name)
		p.optionalWait(c.Wait)
	case *ast.ShowDatabases:
		p.showDatabases(c)
	case *ast.CreateAlias:
		p.createAlias(c)
	case *ast.AlterAlias:
		p.alterAlias(c)
	case *ast.DropAlias:
		p.write("DROP ALIAS ")
		p.aliasName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
		p.write(" FOR DATABASE")
	case *ast.ShowAliases:
		p.write("SHOW ALIASES ")

		if c.Name != nil {
			p.aliasName(c.Name)
			p.write(" ")
		}

		p.write("FOR DATABASES")
		p.showOptions(c.Show)
	case *ast.EnableServer:
		p.write("ENABLE SERVER ")
		p.stringOrParam(c.Name)
		p.options(c.Options)
	case *ast.AlterServer:
		p.write("ALTER SERVER ")
		p.stringOrParam(c.Name)
		p.write(" SET")
		p.options(c.Options)
	case *ast.RenameServer:
		p.write("RENAME SERVER ")
		p.stringOrParam(c.From)
		p.write(" TO ")
		p.stringOrParam(c.To)
	case *ast.DropServer:
		p.write("DROP SERVER ")
		p.stringOrParam(c.Name)
	case *ast.ShowServers:
		p.write("SHOW SERVERS")
		p.showOptions(c.Show)
	case *ast.DeallocateDatabases:
		p.flag(c.DryRun, "DRYRUN ")
		p.write("DEALLOCATE DATABASES FROM SERVERS ")
		list(p, c.Servers, p.stringOrParam)
	case *ast.ReallocateDatabases:
		p.flag(c.DryRun, "DRYRUN ")
		p.write("REALLOCATE DATABASES")
	default:
		return false
	}

	return true
}

func (p *printer) topology(t *ast.Topology) {
	p.write("TOPOLOGY")

	if t.Primaries != nil {
		p.write(" ")
		p.intOrParam(t.Primaries)
		p.write(" PRIMARIES")
	}

	if t.Secondaries != nil {
		p.write(" ")
		p.intOrParam(t.Secondaries)
		p.write(" SECONDARIES")
	}
}

func (p *printer) dropDatabase(c *ast.DropDatabase) {
	p.write("DROP ")
	p.flag(c.Composite, "COMPOSITE ")
	p.write("DATABASE ")
	p.aliasName(c.Name)
	p.flag(c.IfExists, " IF EXISTS")

	switch c.Aliases {
	case ast.AliasActionRestrict:
		p.write(" RESTRICT ALIASES")
	case ast.AliasActionCascade:
		p.write(" CASCADE ALIASES")
	}

	switch c.Data {
	case ast.DataActionDump:
		p.write(" DUMP DATA")
	case ast.DataActionDestroy:
		p.write(" DESTROY DATA")
	}

	p.optionalWait(c.Wait)
}

func (p *printer) databaseSetting(s ast.DatabaseSetting) {
	switch s := s.(type) {
	case *ast.SetAccess:
		if s.ReadOnly {
			p.write("SET ACCESS READ ONLY")
		} else {
			p.write("SET ACCESS READ WRITE")
		}
	case *ast.SetTopology:
		p.write("SET ")
		p.topology(s.Topology)
	case *ast.SetOption:
		p.write("SET OPTION ", key(s.Key), " ")
		p.expr(s.Value)
	}
}

func (p *printer) showDatabases(c *ast.ShowDatabases) {
	switch c.Scope {
	case ast.DatabaseDefault:
		p.write("SHOW DEFAULT DATABASE")
	case ast.DatabaseHome:
		p.write("SHOW HOME DATABASE")
	default:
		if c.Plural {
			p.write("SHOW DATABASES")
		} else {
			p.write("SHOW DATABASE")
		}

		if c.Name != nil {
			p.write(" ")
			p.aliasName(c.Name)
		}
	}

	p.showOptions(c.Show)
}

func (p *printer) createAlias(c *ast.CreateAlias) {
	p.write("CREATE ")
	p.flag(c.Replace, "OR REPLACE ")
	p.write("ALIAS ")
	p.aliasName(c.Name)
	p.flag(c.IfNotExists, " IF NOT EXISTS")
	p.write(" FOR DATABASE ")
	p.aliasName(c.Target)

	if c.Remote != nil {
		p.write(" ")
		p.remoteAlias(c.Remote)
	}

	if c.Properties != nil {
		p.write(" PROPERTIES ")
		p.mapOrParam(c.Properties)
	}
}

func (p *printer) remoteAlias(r *ast.RemoteAlias) {
	p.write("AT ")
	p.stringOrParam(r.URL)
	p.write(" USER ")
	p.commandName(r.User)
	p.write(" PASSWORD ")
	p.stringOrParam(r.Password)

	if r.Driver != nil {
		p.write(" DRIVER ")
		p.mapOrParam(r.Driver)
	}
}

func (p *printer) alterAlias(c *ast.AlterAlias) {
	p.write("ALTER ALIAS ")
	p.aliasName(c.Name)
	p.flag(c.IfExists, " IF EXISTS")
	p.write(" SET DATABASE")

	if c.Target != nil {
		p.write(" TARGET ")
		p.aliasName(c.Target)

		if c.URL != nil {
			p.write(" AT ")
			p.stringOrParam(c.URL)
		}
	}

	if c.User != nil {
		p.write(" USER ")
		p.commandName(c.User)
	}

	if c.Password != nil {
		p.write(" PASSWORD ")
		p.stringOrParam(c.Password)
	}

	if c.Driver != nil {
		p.write(" DRIVER ")
		p.mapOrParam(c.Driver)
	}

	if c.Properties != nil {
		p.write(" PROPERTIES ")
		p.mapOrParam(c.Properties)
	}
}

// =============================================================================
// Indexes and constraints
// =============================================================================

func (p *printer) schemaCommand(c ast.Command) bool {
	switch c := c.(type) {
	case *ast.CreateIndex:
		p.createSchema(c.Replace, c.Kind.String()+" INDEX", c.Name, c.IfNotExists)
		p.write(" FOR ")
		p.entityPattern(c.Entity)
		p.write(" ON ")
		p.propertyRefs(c.Properties)
		p.options(c.Options)
	case *ast.CreateLookupIndex:
		p.createSchema(c.Replace, "LOOKUP INDEX", c.Name, c.IfNotExists)
		p.write(" FOR ")
		p.entityPattern(c.Entity)
		p.write(" ON EACH ", functionName(c.Function), "(", key(c.Argument), ")")
		p.options(c.Options)
	case *ast.CreateFulltextIndex:
		p.createSchema(c.Replace, "FULLTEXT INDEX", c.Name, c.IfNotExists)
		p.write(" FOR ")
		p.entityPattern(c.Entity)
		p.write(" ON EACH [")
		list(p, c.Properties, p.propertyRef)
		p.write("]")
		p.options(c.Options)
	case *ast.CreateLegacyIndex:
		p.write("CREATE INDEX ON :", key(c.Label), "(", keys(c.Properties), ")")
	case *ast.DropLegacyIndex:
		p.write("DROP INDEX ON :", key(c.Label), "(", keys(c.Properties), ")")
	case *ast.DropIndex:
		p.write("DROP INDEX ")
		p.commandName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
	case *ast.CreateConstraint:
		p.createConstraint(c)
	case *ast.DropConstraint:
		p.write("DROP CONSTRAINT ")
		p.commandName(c.Name)
		p.flag(c.IfExists, " IF EXISTS")
	case *ast.DropLegacyConstraint:
		p.write("DROP CONSTRAINT ON ")
		p.entityPattern(c.Entity)
		p.write(" ASSERT ")

		switch c.Kind {
		case ast.ConstraintExists:
			p.existsProperty(c.Properties)
		case ast.ConstraintKey:
			p.propertyRefs(c.Properties)
			p.write(" IS NODE KEY")
		case ast.ConstraintNotNull:
			p.propertyRefs(c.Properties)
			p.write(" IS NOT NULL")
		default:
			p.propertyRefs(c.Properties)
			p.write(" IS UNIQUE")
		}
	case *ast.ShowIndexes:
		p.write("SHOW ")

		if c.Type != "" {
			p.write(c.Type, " ")
		}

		p.write("INDEXES")
		p.verbosity(c.Verbosity)
		p.showOptions(c.Show)
	case *ast.ShowConstraints:
		p.write("SHOW ")

		if c.Filter != "" {
			p.write(c.Filter, " ")
		}

		p.write("CONSTRAINTS")
		p.verbosity(c.Verbosity)
		p.showOptions(c.Show)
	default:
		return false
	}

	return true
}

// createSchema renders `CREATE [OR REPLACE] noun [name] [IF NOT EXISTS]`.
func (p *printer) createSchema(replace bool, noun string, name *ast.CommandName, ifNotExists bool) {
	p.write("CREATE ")
	p.flag(replace, "OR REPLACE ")
	p.write(strings.TrimSpace(noun))

	if name != nil {
		p.write(" ")
		p.commandName(name)
	}

	p.flag(ifNotExists, " IF NOT EXISTS")
}

func (p *printer) createConstraint(c *ast.CreateConstraint) {
	p.createSchema(c.Replace, "CONSTRAINT", c.Name, c.IfNotExists)

	if c.On {
		p.write(" ON ")
	} else {
		p.write(" FOR ")
	}

	p.entityPattern(c.Entity)

	if c.Assert {
		p.write(" ASSERT ")
	} else {
		p.write(" REQUIRE ")
	}

	switch c.Kind {
	case ast.ConstraintExists:
		p.existsProperty(c.Properties)
	case ast.ConstraintNotNull:
		p.propertyRefs(c.Properties)
		p.write(" IS NOT NULL")
	case ast.ConstraintTyped:
		p.propertyRefs(c.Properties)
		p.write(" ")
		p.typeTest(false, c.TypeSyntax, c.Type)
	case ast.ConstraintUnique, ast.ConstraintKey:
		p.propertyRefs(c.Properties)
		p.write(" IS ")

		if c.EntityWord != "" {
			p.write(c.EntityWord, " ")
		}

		if c.Kind == ast.ConstraintKey {
			p.write("KEY")
		} else {
			p.write("UNIQUE")
		}
	}

	p.options(c.Options)
}

func (p *printer) existsProperty(refs []*ast.PropertyRef) {
	p.write("EXISTS (")
	list(p, refs, p.propertyRef)
	p.write(")")
}

func (p *printer) verbosity(v ast.Verbosity) {
	switch v {
	case ast.VerbosityBrief:
		p.write(" BRIEF")
	case ast.VerbosityVerbose:
		p.write(" VERBOSE")
	}
}

func (p *printer) entityPattern(e *ast.EntityPattern) {
	labels := ""
	if len(e.Labels) > 0 {
		names := make([]string, len(e.Labels))
		for i, l := range e.Labels {
			names[i] = key(l)
		}

		labels = ":" + strings.Join(names, "|")
	}

	if !e.Relationship {
		p.write("(", key(e.Variable), labels, ")")

		return
	}

	p.write("()")

	if e.Direction == ast.DirectionLeft || e.Direction == ast.DirectionBoth {
		p.write("<")
	}

	p.write("-[", key(e.Variable), labels, "]-")

	if e.Direction == ast.DirectionRight || e.Direction == ast.DirectionBoth {
		p.write(">")
	}

	p.write("()")
}

// propertyRefs renders one reference bare and several in parentheses.
func (p *printer) propertyRefs(refs []*ast.PropertyRef) {
	if len(refs) == 1 {
		p.propertyRef(refs[0])

		return
	}

	p.write("(")
	list(p, refs, p.propertyRef)
	p.write(")")
}

func (p *printer) propertyRef(r *ast.PropertyRef) {
	p.write(key(r.Variable), ".", key(r.Property))
}

// =============================================================================
// SHOW procedures, functions, transactions and settings
// =============================================================================

func (p *printer) showCommand(c ast.Command) {
	switch c := c.(type) {
	case *ast.ShowProcedures:
		p.write("SHOW PROCEDURES")
		p.optionalExecutable(c.Executable)
		p.showOptions(c.Show)
	case *ast.ShowFunctions:
		p.write("SHOW ")

		switch c.Filter {
		case ast.FunctionsAll:
			p.write("ALL ")
		case ast.FunctionsBuiltIn:
			p.write("BUILT IN ")
		case ast.FunctionsUserDefined:
			p.write("USER DEFINED ")
		}

		p.write("FUNCTIONS")
		p.optionalExecutable(c.Executable)
		p.showOptions(c.Show)
	case *ast.ShowTransactions:
		p.write("SHOW TRANSACTIONS")
		p.showNames(c.IDs)
		p.showOptions(c.Show)
	case *ast.TerminateTransactions:
		p.write("TERMINATE TRANSACTIONS")
		p.showNames(c.IDs)
		p.showOptions(c.Show)
	case *ast.ShowSettings:
		p.write("SHOW SETTINGS")
		p.showNames(c.Names)
		p.showOptions(c.Show)
	}
}

func (p *printer) showNames(names []ast.Expr) {
	if len(names) > 0 {
		p.write(" ")
		p.exprs(names)
	}
}

func (p *printer) optionalExecutable(e *ast.ExecutableBy) {
	if e != nil {
		p.write(" ")
		p.executableBy(e)
	}
}

func (p *printer) executableBy(e *ast.ExecutableBy) {
	if e.CurrentUser {
		p.write("EXECUTABLE BY CURRENT USER")

		return
	}

	p.write("EXECUTABLE BY ", key(e.User))
}

func plural(noun string, n int) string {
	if n == 1 {
		return noun
	}

	return noun + "S"
}

// =============================================================================
// Privileges
// =============================================================================

func (p *printer) privilegeCommand(c *ast.PrivilegeCommand) {
	p.write(c.Verb.String(), " ")

	switch c.Revoke {
	case ast.RevokeGrant:
		p.write("GRANT ")
	case ast.RevokeDeny:
		p.write("DENY ")
	}

	p.flag(c.Immutable, "IMMUTABLE ")
	p.privilege(c.Privilege)

	if c.Verb == ast.VerbRevoke {
		p.write(" FROM ")
	} else {
		p.write(" TO ")
	}

	p.commandNames(c.Roles)
}

// privilege renders `action [resource] ON scope [qualifier]`.
func (p *printer) privilege(pr *ast.Privilege) {
	p.write(pr.Action)

	if pr.Properties != nil {
		p.write(" ")
		p.propertiesResource(pr.Properties)
	}

	if pr.Labels != nil {
		p.write(" ")
		p.labelsResource(pr.Labels)
	}

	if pr.Users != nil {
		p.write(" ")
		p.userQualifier(pr.Users)
	}

	if len(pr.Globs) > 0 {
		p.write(" ")
		list(p, pr.Globs, p.glob)
	}

	if pr.Scope != nil {
		p.write(" ")
		p.privilegeScope(pr.Scope)
	}

	if pr.Qualifier != nil {
		p.write(" ")
		p.graphQualifier(pr.Qualifier)
	}
}

func (p *printer) propertiesResource(r *ast.PrivilegeResource) {
	p.write("{")
	p.labelsResource(r)
	p.write("}")
}

func (p *printer) labelsResource(r *ast.PrivilegeResource) {
	if r.Star {
		p.write("*")

		return
	}

	p.write(keys(r.Names))
}

func (p *printer) userQualifier(u *ast.UserQualifier) {
	p.write("(")

	if u.Star {
		p.write("*")
	} else {
		p.commandNames(u.Users)
	}

	p.write(")")
}

func (p *printer) privilegeScope(s *ast.PrivilegeScope) {
	p.write("ON ")

	switch s.Kind {
	case ast.ScopeDBMS:
		p.write("DBMS")
	case ast.ScopeDatabase:
		p.scopeNames("DATABASE", s)
	case ast.ScopeGraph:
		p.scopeNames("GRAPH", s)
	case ast.ScopeDefaultDatabase:
		p.write("DEFAULT DATABASE")
	case ast.ScopeHomeDatabase:
		p.write("HOME DATABASE")
	case ast.ScopeDefaultGraph:
		p.write("DEFAULT GRAPH")
	case ast.ScopeHomeGraph:
		p.write("HOME GRAPH")
	case ast.ScopeURL:
		p.write("URL ")
		p.stringOrParam(s.Value)
	case ast.ScopeCIDR:
		p.write("CIDR ")
		p.stringOrParam(s.Value)
	case ast.ScopeAllData:
		p.write("ALL DATA")
	}
}

func (p *printer) scopeNames(noun string, s *ast.PrivilegeScope) {
	if s.Star {
		p.write(noun, " *")

		return
	}

	p.write(plural(noun, len(s.Names)), " ")
	list(p, s.Names, p.aliasName)
}

// graphQualifier renders the element filter. WHERE is always written inside
// the pattern parentheses.
func (p *printer) graphQualifier(q *ast.GraphQualifier) {
	switch q.Kind {
	case ast.QualifyNodes:
		p.write("NODES ")
	case ast.QualifyRelationships:
		p.write("RELATIONSHIPS ")
	case ast.QualifyElements:
		p.write("ELEMENTS ")
	case ast.QualifyPattern:
		p.qualifierPattern(q)

		return
	}

	if q.Star {
		p.write("*")
	} else {
		p.write(keys(q.Names))
	}
}

func (p *printer) qualifierPattern(q *ast.GraphQualifier) {
	p.write("FOR (")

	empty := true

	if q.Variable != "" {
		p.write(variable(q.Variable))

		empty = false
	}

	if len(q.Labels) > 0 {
		names := make([]string, len(q.Labels))
		for i, l := range q.Labels {
			names[i] = key(l)
		}

		p.write(":", strings.Join(names, "|"))

		empty = false
	}

	switch {
	case q.Where != nil:
		if !empty {
			p.write(" ")
		}

		p.write("WHERE ")
		p.expr(q.Where)
	case q.Properties != nil:
		if !empty {
			p.write(" ")
		}

		p.mapLit(q.Properties)
	}

	p.write(")")
}

func (p *printer) glob(g *ast.Glob) {
	for _, part := range g.Parts {
		p.globPart(part)
	}
}

func (p *printer) globPart(part *ast.GlobPart) {
	switch part.Kind {
	case ast.GlobName:
		p.write(part.Text)
	case ast.GlobEscapedName:
		p.write(scanner.EscapeName(part.Text))
	case ast.GlobDot:
		p.write(".")
	case ast.GlobQuestion:
		p.write("?")
	case ast.GlobStar:
		p.write("*")
	}
}

func (p *printer) showPrivileges(c *ast.ShowPrivileges) {
	p.write("SHOW ")

	switch c.Scope {
	case ast.PrivilegesOfRoles:
		p.write(plural("ROLE", len(c.Names)), " ")
		p.commandNames(c.Names)
		p.write(" ")
	case ast.PrivilegesOfUsers:
		p.write(plural("USER", max(len(c.Names), 1)), " ")

		if len(c.Names) > 0 {
			p.commandNames(c.Names)
			p.write(" ")
		}
	default:
		p.flag(c.ExplicitAll, "ALL ")
	}

	p.write("PRIVILEGES")

	if c.AsCommands {
		p.write(" AS ")
		p.flag(c.AsRevoke, "REVOKE ")
		p.write("COMMANDS")
	}

	p.showOptions(c.Show)
}

package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// parseCommandStatement parses an administrative command, chaining
// composable SHOW and TERMINATE commands. A leading USE clause or a chain
// yields a CompositeCommand.
func (p *Parser) parseCommandStatement(use *ast.UseClause) ast.Statement {
	start := p.tok().Pos
	if use != nil {
		start = use.Pos
	}

	cmds := []ast.Command{p.parseCommand()}

	for composable(cmds[len(cmds)-1]) && p.atAny(token.SHOW, token.TERMINATE) {
		next := p.parseCommand()
		if !composable(next) {
			p.raise(&SyntaxError{
				Kind:    UnexpectedToken,
				Token:   p.tok(),
				Span:    next.Span(),
				Message: "only SHOW and TERMINATE commands for transactions, settings, functions, procedures, indexes and constraints can be combined",
			})
		}

		cmds = append(cmds, next)
	}

	if use == nil && len(cmds) == 1 {
		return cmds[0]
	}

	return &ast.CompositeCommand{NodeMeta: p.meta(start), Use: use, Commands: cmds}
}

func composable(cmd ast.Command) bool {
	switch cmd.(type) {
	case *ast.ShowTransactions, *ast.TerminateTransactions, *ast.ShowSettings, *ast.ShowFunctions,
		*ast.ShowProcedures, *ast.ShowIndexes, *ast.ShowConstraints:
		return true
	default:
		return false
	}
}

// parseCommand dispatches on the command verb.
func (p *Parser) parseCommand() ast.Command {
	switch p.peek() {
	case token.CREATE:
		return p.parseCreateCommand()
	case token.DROP:
		return p.parseDropCommand()
	case token.ALTER:
		return p.parseAlterCommand()
	case token.RENAME:
		return p.parseRenameCommand()
	case token.GRANT, token.REVOKE:
		if p.isRoleGrant() {
			return p.parseRoleGrant()
		}

		return p.parsePrivilegeCommand()
	case token.DENY:
		return p.parsePrivilegeCommand()
	case token.START, token.STOP:
		return p.parseStartStopDatabase()
	case token.ENABLE:
		start := p.next().Pos
		p.expect(token.SERVER)
		cmd := &ast.EnableServer{Name: p.parseStringOrParam()}
		cmd.Options = p.parseOptions()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.DRYRUN, token.DEALLOCATE, token.REALLOCATE:
		return p.parseAllocation()
	case token.SHOW:
		return p.parseShow()
	case token.TERMINATE:
		start := p.next().Pos
		p.expectPlural(token.TRANSACTION, token.TRANSACTIONS)
		cmd := &ast.TerminateTransactions{IDs: p.parseShowNames()}
		cmd.Show = p.parseShowOptions()
		cmd.NodeMeta = p.meta(start)

		return cmd
	}

	p.failExpected(statementFirst[len(clauseFirst):]...)

	return nil
}

func (p *Parser) parseCreateCommand() ast.Command {
	start := p.expect(token.CREATE).Pos

	replace := false
	if p.accept(token.OR) {
		p.expect(token.REPLACE)

		replace = true
	}

	switch p.peek() {
	case token.ROLE:
		return p.parseCreateRole(start, replace)
	case token.USER:
		return p.parseCreateUser(start, replace)
	case token.DATABASE, token.COMPOSITE:
		return p.parseCreateDatabase(start, replace)
	case token.ALIAS:
		return p.parseCreateAlias(start, replace)
	case token.CONSTRAINT:
		return p.parseCreateConstraint(start, replace)
	case token.INDEX, token.BTREE, token.RANGE, token.TEXT, token.POINT, token.VECTOR, token.LOOKUP,
		token.FULLTEXT:
		return p.parseCreateIndex(start, replace)
	}

	p.failExpected(token.ROLE, token.USER, token.DATABASE, token.COMPOSITE, token.ALIAS,
		token.CONSTRAINT, token.INDEX, token.RANGE, token.TEXT, token.POINT, token.VECTOR,
		token.LOOKUP, token.FULLTEXT)

	return nil
}

func (p *Parser) parseDropCommand() ast.Command {
	start := p.expect(token.DROP).Pos

	switch p.peek() {
	case token.ROLE:
		p.next()
		cmd := &ast.DropRole{Name: p.parseCommandName()}
		cmd.IfExists = p.parseIfExists()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.USER:
		p.next()
		cmd := &ast.DropUser{Name: p.parseCommandName()}
		cmd.IfExists = p.parseIfExists()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.DATABASE, token.COMPOSITE:
		return p.parseDropDatabase(start)
	case token.ALIAS:
		return p.parseDropAlias(start)
	case token.SERVER:
		p.next()
		cmd := &ast.DropServer{Name: p.parseStringOrParam()}
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.INDEX:
		return p.parseDropIndex(start)
	case token.CONSTRAINT:
		return p.parseDropConstraint(start)
	}

	p.failExpected(token.ROLE, token.USER, token.DATABASE, token.COMPOSITE, token.ALIAS,
		token.SERVER, token.INDEX, token.CONSTRAINT)

	return nil
}

func (p *Parser) parseAlterCommand() ast.Command {
	start := p.expect(token.ALTER).Pos

	switch p.peek() {
	case token.CURRENT:
		p.next()
		p.expect(token.USER)
		p.expect(token.SET)
		p.expect(token.PASSWORD)
		p.expect(token.FROM)
		cmd := &ast.AlterCurrentUser{Old: p.parseStringOrParam()}
		p.expect(token.TO)
		cmd.New = p.parseStringOrParam()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.USER:
		return p.parseAlterUser(start)
	case token.DATABASE:
		return p.parseAlterDatabase(start)
	case token.ALIAS:
		return p.parseAlterAlias(start)
	case token.SERVER:
		p.next()
		cmd := &ast.AlterServer{Name: p.parseStringOrParam()}
		p.expect(token.SET)

		cmd.Options = p.parseOptions()
		if cmd.Options == nil {
			p.failExpected(token.OPTIONS)
		}

		cmd.NodeMeta = p.meta(start)

		return cmd
	}

	p.failExpected(token.CURRENT, token.USER, token.DATABASE, token.ALIAS, token.SERVER)

	return nil
}

func (p *Parser) parseRenameCommand() ast.Command {
	start := p.expect(token.RENAME).Pos

	switch p.peek() {
	case token.ROLE:
		p.next()
		cmd := &ast.RenameRole{From: p.parseCommandName()}
		cmd.IfExists = p.parseIfExists()
		p.expect(token.TO)
		cmd.To = p.parseCommandName()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.USER:
		p.next()
		cmd := &ast.RenameUser{From: p.parseCommandName()}
		cmd.IfExists = p.parseIfExists()
		p.expect(token.TO)
		cmd.To = p.parseCommandName()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.SERVER:
		p.next()
		cmd := &ast.RenameServer{From: p.parseStringOrParam()}
		p.expect(token.TO)
		cmd.To = p.parseStringOrParam()
		cmd.NodeMeta = p.meta(start)

		return cmd
	}

	p.failExpected(token.ROLE, token.USER, token.SERVER)

	return nil
}

// =============================================================================
// Shared operands and modifiers
// =============================================================================

// parseCommandName parses a role or user name, or a parameter typed STRING.
func (p *Parser) parseCommandName() *ast.CommandName {
	start := p.tok().Pos
	n := &ast.CommandName{}

	if p.at(token.Dollar) {
		n.Param = p.parseParameter(ast.ParamString)
	} else {
		n.Name = p.parseName()
	}

	n.NodeMeta = p.meta(start)

	return n
}

func (p *Parser) parseCommandNameList() []*ast.CommandName {
	names := []*ast.CommandName{p.parseCommandName()}
	for p.accept(token.Comma) {
		names = append(names, p.parseCommandName())
	}

	return names
}

// parseAliasName parses a dotted database or alias name, or a parameter
// typed STRING.
func (p *Parser) parseAliasName() *ast.AliasName {
	start := p.tok().Pos
	n := &ast.AliasName{}

	if p.at(token.Dollar) {
		n.Param = p.parseParameter(ast.ParamString)
	} else {
		n.Parts = p.parseDottedName()
	}

	n.NodeMeta = p.meta(start)

	return n
}

// parseStringOrParam parses a string literal or a parameter typed STRING.
func (p *Parser) parseStringOrParam() *ast.StringOrParam {
	start := p.tok().Pos
	s := &ast.StringOrParam{}

	switch {
	case p.at(token.Dollar):
		s.Param = p.parseParameter(ast.ParamString)
	case p.at(token.StringLiteral):
		s.Value = p.unquote(p.next())
	default:
		p.failExpected(token.StringLiteral, token.Dollar)
	}

	s.NodeMeta = p.meta(start)

	return s
}

// parseMapOrParam parses a map literal or a parameter typed MAP.
func (p *Parser) parseMapOrParam() *ast.MapOrParam {
	start := p.tok().Pos
	m := &ast.MapOrParam{}

	switch {
	case p.at(token.Dollar):
		m.Param = p.parseParameter(ast.ParamMap)
	case p.at(token.LBrace):
		m.Map = p.parseMapLiteral()
	default:
		p.failExpected(token.LBrace, token.Dollar)
	}

	m.NodeMeta = p.meta(start)

	return m
}

// parseIntOrParam parses an unsigned integer or a parameter typed ANY.
func (p *Parser) parseIntOrParam() *ast.IntOrParam {
	start := p.tok().Pos
	n := &ast.IntOrParam{}

	if p.at(token.Dollar) {
		n.Param = p.parseParameter(ast.ParamAny)
	} else {
		n.Value = p.parseUnsigned()
	}

	n.NodeMeta = p.meta(start)

	return n
}

func (p *Parser) parseIfNotExists() bool {
	return p.acceptSeq(token.IF, token.NOT, token.EXISTS)
}

func (p *Parser) parseIfExists() bool {
	return p.acceptSeq(token.IF, token.EXISTS)
}

// parseOptions parses an optional `OPTIONS map`.
func (p *Parser) parseOptions() *ast.MapOrParam {
	if !p.accept(token.OPTIONS) {
		return nil
	}

	return p.parseMapOrParam()
}

// parseWait parses an optional `WAIT [n [SEC|SECOND|SECONDS]]` or `NOWAIT`.
func (p *Parser) parseWait() *ast.WaitClause {
	start := p.tok().Pos

	switch {
	case p.accept(token.NOWAIT):
		return &ast.WaitClause{NodeMeta: p.meta(start), NoWait: true}
	case p.accept(token.WAIT):
		w := &ast.WaitClause{}

		if p.at(token.IntegerLiteral) {
			n := p.parseUnsigned()
			w.Seconds = &n

			if p.atAny(token.SEC, token.SECOND, token.SECONDS) {
				p.next()
			}
		}

		w.NodeMeta = p.meta(start)

		return w
	default:
		return nil
	}
}

// expectPlural consumes either the singular or the plural keyword and
// reports whether the plural was used.
func (p *Parser) expectPlural(singular, plural token.Kind) bool {
	switch {
	case p.accept(singular):
		return false
	case p.accept(plural):
		return true
	}

	p.failExpected(singular, plural)

	return false
}

// atShowTail reports whether the cursor is at the end of a SHOW command's
// name list.
func (p *Parser) atShowTail() bool {
	switch p.peek() {
	case token.YIELD, token.WHERE, token.SHOW, token.TERMINATE, token.RETURN, token.Semicolon,
		token.EOF:
		return true
	default:
		return false
	}
}

// parseShowNames parses the optional ID or name operand of SHOW
// TRANSACTIONS, TERMINATE TRANSACTIONS and SHOW SETTINGS: a list of at
// least two strings, or one expression.
func (p *Parser) parseShowNames() []ast.Expr {
	if p.atShowTail() {
		return nil
	}

	if p.at(token.StringLiteral) && p.peekN(1) == token.Comma {
		names := []ast.Expr{p.parseStringLit()}
		for p.accept(token.Comma) {
			names = append(names, p.parseStringLit())
		}

		return names
	}

	return []ast.Expr{p.parseExpression()}
}

// parseShowOptions parses `YIELD ... [RETURN ...]` or `WHERE e`.
func (p *Parser) parseShowOptions() *ast.ShowOptions {
	start := p.tok().Pos

	switch {
	case p.at(token.YIELD):
		opts := &ast.ShowOptions{Yield: p.parseYieldClause()}

		if p.at(token.RETURN) {
			rstart := p.next().Pos
			body := p.parseReturnBody()
			opts.Return = &ast.ReturnClause{NodeMeta: p.meta(rstart), Body: body}
		}

		opts.NodeMeta = p.meta(start)

		return opts
	case p.accept(token.WHERE):
		where := p.parseExpression()

		return &ast.ShowOptions{NodeMeta: p.meta(start), Where: where}
	default:
		return nil
	}
}

// parseYieldClause parses `YIELD (* | v [AS a], ...) [ORDER BY] [SKIP] [LIMIT]
// [WHERE]`.
func (p *Parser) parseYieldClause() *ast.YieldClause {
	start := p.expect(token.YIELD).Pos
	y := &ast.YieldClause{}

	if p.accept(token.Star) {
		y.Star = true
	} else {
		for {
			istart := p.tok().Pos
			item := &ast.YieldItem{Variable: p.parseVariable()}

			if p.accept(token.AS) {
				item.Alias = p.parseVariable()
			}

			item.NodeMeta = p.meta(istart)
			y.Items = append(y.Items, item)

			if !p.accept(token.Comma) {
				break
			}
		}
	}

	y.OrderBy, y.Skip, y.Limit = p.parseOrderSkipLimit()

	if p.accept(token.WHERE) {
		y.Where = p.parseExpression()
	}

	y.NodeMeta = p.meta(start)

	return y
}

// =============================================================================
// Roles
// =============================================================================

func (p *Parser) parseCreateRole(start lexer.Position, replace bool) *ast.CreateRole {
	p.expect(token.ROLE)
	cmd := &ast.CreateRole{Replace: replace, Name: p.parseCommandName()}
	cmd.IfNotExists = p.parseIfNotExists()

	if p.accept(token.AS) {
		p.expect(token.COPY)
		p.expect(token.OF)
		cmd.CopyOf = p.parseCommandName()
	}

	cmd.NodeMeta = p.meta(start)

	return cmd
}

func (p *Parser) parseShowRoles(start lexer.Position) *ast.ShowRoles {
	cmd := &ast.ShowRoles{}

	switch {
	case p.accept(token.ALL):
		cmd.Filter = ast.RolesAll
	case p.accept(token.POPULATED):
		cmd.Filter = ast.RolesPopulated
	}

	p.expectPlural(token.ROLE, token.ROLES)

	if p.accept(token.WITH) {
		p.expectPlural(token.USER, token.USERS)

		cmd.WithUsers = true
	}

	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseRoleGrant parses `GRANT ROLE(S) roles TO users` or `REVOKE ROLE(S)
// roles FROM users`.
func (p *Parser) parseRoleGrant() ast.Command {
	tok := p.next()
	p.expectPlural(token.ROLE, token.ROLES)
	roles := p.parseCommandNameList()

	if tok.Type == token.GRANT {
		p.expect(token.TO)
		users := p.parseCommandNameList()

		return &ast.GrantRoles{NodeMeta: p.meta(tok.Pos), Roles: roles, Users: users}
	}

	p.expect(token.FROM)
	users := p.parseCommandNameList()

	return &ast.RevokeRoles{NodeMeta: p.meta(tok.Pos), Roles: roles, Users: users}
}

// =============================================================================
// Users
// =============================================================================

func (p *Parser) parseCreateUser(start lexer.Position, replace bool) *ast.CreateUser {
	p.expect(token.USER)
	cmd := &ast.CreateUser{Replace: replace, Name: p.parseCommandName()}
	cmd.IfNotExists = p.parseIfNotExists()

	for p.at(token.SET) {
		cmd.Settings = append(cmd.Settings, p.parseUserSetting())
	}

	if len(cmd.Settings) == 0 {
		p.failExpected(token.SET)
	}

	cmd.NodeMeta = p.meta(start)

	return cmd
}

func (p *Parser) parseAlterUser(start lexer.Position) *ast.AlterUser {
	p.expect(token.USER)
	cmd := &ast.AlterUser{Name: p.parseCommandName()}
	cmd.IfExists = p.parseIfExists()

	for p.atAny(token.SET, token.REMOVE) {
		cmd.Settings = append(cmd.Settings, p.parseUserSetting())
	}

	if len(cmd.Settings) == 0 {
		p.failExpected(token.SET, token.REMOVE)
	}

	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseUserSetting parses one SET or REMOVE clause of CREATE or ALTER USER.
func (p *Parser) parseUserSetting() ast.UserSetting {
	start := p.tok().Pos

	if p.accept(token.REMOVE) {
		p.expect(token.HOME)
		p.expect(token.DATABASE)

		return &ast.RemoveHomeDatabase{NodeMeta: p.meta(start)}
	}

	p.expect(token.SET)

	switch {
	case p.atAny(token.PLAINTEXT, token.ENCRYPTED):
		enc := ast.PasswordPlaintext
		if p.next().Type == token.ENCRYPTED {
			enc = ast.PasswordEncrypted
		}

		p.expect(token.PASSWORD)

		return p.parseSetPassword(start, enc)
	case p.accept(token.PASSWORD):
		if p.at(token.CHANGE) {
			required := p.parseChangeRequired()

			return &ast.SetPasswordChangeRequired{NodeMeta: p.meta(start), Required: required}
		}

		return p.parseSetPassword(start, ast.PasswordDefault)
	case p.accept(token.STATUS):
		suspended := false

		switch {
		case p.accept(token.SUSPENDED):
			suspended = true
		case p.accept(token.ACTIVE):
		default:
			p.failExpected(token.SUSPENDED, token.ACTIVE)
		}

		return &ast.SetStatus{NodeMeta: p.meta(start), Suspended: suspended}
	case p.accept(token.HOME):
		p.expect(token.DATABASE)
		db := p.parseAliasName()

		return &ast.SetHomeDatabase{NodeMeta: p.meta(start), Database: db}
	}

	p.failExpected(token.PLAINTEXT, token.ENCRYPTED, token.PASSWORD, token.STATUS, token.HOME)

	return nil
}

func (p *Parser) parseSetPassword(start lexer.Position, enc ast.PasswordEncryption) *ast.SetPassword {
	sp := &ast.SetPassword{Encryption: enc, Password: p.parseStringOrParam()}

	if p.at(token.CHANGE) {
		required := p.parseChangeRequired()
		sp.ChangeRequired = &required
	}

	sp.NodeMeta = p.meta(start)

	return sp
}

// parseChangeRequired parses `CHANGE [NOT] REQUIRED`.
func (p *Parser) parseChangeRequired() bool {
	p.expect(token.CHANGE)
	not := p.accept(token.NOT)
	p.expect(token.REQUIRED)

	return !not
}

func (p *Parser) parseShowUsers(start lexer.Position) *ast.ShowUsers {
	p.expectPlural(token.USER, token.USERS)
	cmd := &ast.ShowUsers{}

	if p.accept(token.WITH) {
		p.expect(token.AUTH)

		cmd.WithAuth = true
	}

	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// =============================================================================
// Servers and allocation
// =============================================================================

func (p *Parser) parseAllocation() ast.Command {
	start := p.tok().Pos
	dryRun := p.accept(token.DRYRUN)

	switch {
	case p.accept(token.DEALLOCATE):
		p.expectPlural(token.DATABASE, token.DATABASES)
		p.expect(token.FROM)
		p.expectPlural(token.SERVER, token.SERVERS)
		cmd := &ast.DeallocateDatabases{DryRun: dryRun, Servers: []*ast.StringOrParam{p.parseStringOrParam()}}

		for p.accept(token.Comma) {
			cmd.Servers = append(cmd.Servers, p.parseStringOrParam())
		}

		cmd.NodeMeta = p.meta(start)

		return cmd
	case p.accept(token.REALLOCATE):
		p.expectPlural(token.DATABASE, token.DATABASES)

		return &ast.ReallocateDatabases{NodeMeta: p.meta(start), DryRun: dryRun}
	}

	p.failExpected(token.DEALLOCATE, token.REALLOCATE)

	return nil
}

// =============================================================================
// SHOW
// =============================================================================

// parseShow dispatches SHOW on the keyword that follows it.
func (p *Parser) parseShow() ast.Command {
	start := p.expect(token.SHOW).Pos

	switch p.peek() {
	case token.ALIAS, token.ALIASES:
		return p.parseShowAliases(start)
	case token.CONSTRAINT, token.CONSTRAINTS, token.NODE, token.REL, token.RELATIONSHIP,
		token.UNIQUE, token.UNIQUENESS, token.KEY, token.EXIST, token.EXISTENCE, token.PROPERTY:
		return p.parseShowConstraints(start)
	case token.CURRENT:
		p.next()
		p.expect(token.USER)
		cmd := &ast.ShowCurrentUser{Show: p.parseShowOptions()}
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.DEFAULT, token.HOME, token.DATABASE, token.DATABASES:
		return p.parseShowDatabases(start)
	case token.INDEX, token.INDEXES, token.BTREE, token.FULLTEXT, token.LOOKUP, token.POINT,
		token.RANGE, token.TEXT, token.VECTOR:
		return p.parseShowIndexes(start)
	case token.BUILT, token.FUNCTION, token.FUNCTIONS:
		return p.parseShowFunctions(start)
	case token.USER:
		if p.peekN(1) == token.DEFINED {
			return p.parseShowFunctions(start)
		}

		if p.showsPrivileges(1) {
			return p.parseShowPrivileges(start)
		}

		return p.parseShowUsers(start)
	case token.USERS:
		if p.showsPrivileges(1) {
			return p.parseShowPrivileges(start)
		}

		return p.parseShowUsers(start)
	case token.ALL:
		switch p.peekN(1) {
		case token.ROLE, token.ROLES:
			return p.parseShowRoles(start)
		case token.PRIVILEGE, token.PRIVILEGES:
			return p.parseShowPrivileges(start)
		case token.INDEX, token.INDEXES:
			return p.parseShowIndexes(start)
		case token.CONSTRAINT, token.CONSTRAINTS:
			return p.parseShowConstraints(start)
		case token.FUNCTION, token.FUNCTIONS:
			return p.parseShowFunctions(start)
		}
	case token.POPULATED:
		return p.parseShowRoles(start)
	case token.ROLE, token.ROLES:
		if p.showsPrivileges(1) {
			return p.parseShowPrivileges(start)
		}

		return p.parseShowRoles(start)
	case token.PRIVILEGE, token.PRIVILEGES:
		return p.parseShowPrivileges(start)
	case token.PROCEDURE, token.PROCEDURES:
		p.next()
		cmd := &ast.ShowProcedures{Executable: p.parseExecutableBy()}
		cmd.Show = p.parseShowOptions()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.SERVER, token.SERVERS:
		p.next()
		cmd := &ast.ShowServers{Show: p.parseShowOptions()}
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.SETTING, token.SETTINGS:
		p.next()
		cmd := &ast.ShowSettings{Names: p.parseShowNames()}
		cmd.Show = p.parseShowOptions()
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.SUPPORTED:
		p.next()
		p.expectPlural(token.PRIVILEGE, token.PRIVILEGES)
		cmd := &ast.ShowSupportedPrivileges{Show: p.parseShowOptions()}
		cmd.NodeMeta = p.meta(start)

		return cmd
	case token.TRANSACTION, token.TRANSACTIONS:
		p.next()
		cmd := &ast.ShowTransactions{IDs: p.parseShowNames()}
		cmd.Show = p.parseShowOptions()
		cmd.NodeMeta = p.meta(start)

		return cmd
	}

	p.failExpected(token.ALIASES, token.ALL, token.BUILT, token.CONSTRAINTS, token.CURRENT,
		token.DATABASES, token.DEFAULT, token.FUNCTIONS, token.HOME, token.INDEXES,
		token.POPULATED, token.PRIVILEGES, token.PROCEDURES, token.ROLES, token.SERVERS,
		token.SETTINGS, token.SUPPORTED, token.TRANSACTIONS, token.USERS)

	return nil
}

// parseExecutableBy parses `EXECUTABLE [BY (CURRENT USER | name)]`.
func (p *Parser) parseExecutableBy() *ast.ExecutableBy {
	start := p.tok().Pos
	if !p.accept(token.EXECUTABLE) {
		return nil
	}

	e := &ast.ExecutableBy{CurrentUser: true}

	if p.accept(token.BY) {
		if !p.acceptSeq(token.CURRENT, token.USER) {
			e.CurrentUser = false
			e.User = p.parseName()
		}
	}

	e.NodeMeta = p.meta(start)

	return e
}

func (p *Parser) parseShowFunctions(start lexer.Position) *ast.ShowFunctions {
	cmd := &ast.ShowFunctions{}

	switch {
	case p.accept(token.ALL):
		cmd.Filter = ast.FunctionsAll
	case p.accept(token.BUILT):
		p.expect(token.IN)

		cmd.Filter = ast.FunctionsBuiltIn
	case p.accept(token.USER):
		p.expect(token.DEFINED)

		cmd.Filter = ast.FunctionsUserDefined
	}

	p.expectPlural(token.FUNCTION, token.FUNCTIONS)
	cmd.Executable = p.parseExecutableBy()
	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// keywordPhrase consumes tokens while keep accepts them and returns their
// canonical keyword text joined by spaces.
func (p *Parser) keywordPhrase(keep func(token.Kind) bool) string {
	var words []string
	for keep(p.peek()) {
		words = append(words, token.Text(p.next().Type))
	}

	return strings.Join(words, " ")
}

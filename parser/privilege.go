package parser

import (
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// scopeMask lists the targets a privilege action may be granted ON.
type scopeMask int

const (
	onDBMS scopeMask = 1 << iota
	onDatabase
	onGraph
)

// action accumulates the keyword phrase naming a privilege.
type action struct {
	p     *Parser
	words []string
}

// take consumes the current token if it is one of kinds.
func (a *action) take(kinds ...token.Kind) bool {
	if !a.p.atAny(kinds...) {
		return false
	}

	a.words = append(a.words, token.Text(a.p.next().Type))

	return true
}

func (a *action) must(kinds ...token.Kind) {
	if !a.take(kinds...) {
		a.p.failExpected(kinds...)
	}
}

func (a *action) String() string { return strings.Join(a.words, " ") }

// parsePrivilegeCommand parses `GRANT|DENY|REVOKE [GRANT|DENY] [IMMUTABLE]
// privilege TO|FROM roles`.
func (p *Parser) parsePrivilegeCommand() *ast.PrivilegeCommand {
	start := p.tok().Pos
	cmd := &ast.PrivilegeCommand{}

	switch p.next().Type {
	case token.GRANT:
		cmd.Verb = ast.VerbGrant
	case token.DENY:
		cmd.Verb = ast.VerbDeny
	default:
		cmd.Verb = ast.VerbRevoke

		switch {
		case p.accept(token.GRANT):
			cmd.Revoke = ast.RevokeGrant
		case p.accept(token.DENY):
			cmd.Revoke = ast.RevokeDeny
		}
	}

	cmd.Immutable = p.accept(token.IMMUTABLE)
	cmd.Privilege = p.parsePrivilege()

	if cmd.Verb == ast.VerbRevoke {
		p.expect(token.FROM)
	} else {
		p.expect(token.TO)
	}

	cmd.Roles = p.parseCommandNameList()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

var privilegeFirst = []token.Kind{
	token.ACCESS, token.ALL, token.ALTER, token.ASSIGN, token.CONSTRAINT, token.CREATE,
	token.DELETE, token.DROP, token.EXECUTE, token.IMPERSONATE, token.INDEX, token.LOAD,
	token.MATCH, token.MERGE, token.NAME, token.READ, token.REMOVE, token.RENAME, token.SET,
	token.SHOW, token.START, token.STOP, token.TERMINATE, token.TRANSACTION, token.TRAVERSE,
	token.WRITE,
}

// parsePrivilege parses an action with its resource, scope and qualifier.
func (p *Parser) parsePrivilege() *ast.Privilege {
	start := p.tok().Pos
	pr := &ast.Privilege{}
	a := &action{p: p}

	var (
		scope     scopeMask
		qualified bool
	)

	switch p.peek() {
	case token.ALL:
		a.take(token.ALL)

		if a.take(token.DATABASE, token.GRAPH, token.DBMS) {
			a.must(token.PRIVILEGES)
		} else {
			a.take(token.PRIVILEGES)
		}

		scope = onDBMS | onDatabase | onGraph
	case token.TRAVERSE:
		a.take(token.TRAVERSE)

		scope, qualified = onGraph, true
	case token.READ, token.MATCH, token.MERGE:
		a.take(token.READ, token.MATCH, token.MERGE)
		pr.Properties = p.parsePropertiesResource()
		scope, qualified = onGraph, true
	case token.DELETE:
		a.take(token.DELETE)

		scope, qualified = onGraph, true
	case token.WRITE:
		a.take(token.WRITE)

		scope = onGraph
	case token.LOAD:
		a.take(token.LOAD)
		pr.Scope = p.parseLoadScope()
	case token.CREATE:
		a.take(token.CREATE)

		switch {
		case p.at(token.ON):
			scope, qualified = onGraph, true
		case a.take(token.NEW):
			scope = onDatabase

			switch {
			case a.take(token.NODE):
				a.must(token.LABEL, token.LABELS)
			case a.take(token.RELATIONSHIP):
				a.must(token.TYPE, token.TYPES)
			case a.take(token.PROPERTY):
				a.must(token.NAME, token.NAMES)
			default:
				a.must(token.LABEL, token.LABELS, token.TYPE, token.TYPES, token.NAME, token.NAMES)
			}
		case a.take(token.INDEX, token.INDEXES, token.CONSTRAINT, token.CONSTRAINTS):
			scope = onDatabase
		default:
			p.dbmsNoun(a)

			scope = onDBMS
		}
	case token.DROP:
		a.take(token.DROP)

		if a.take(token.INDEX, token.INDEXES, token.CONSTRAINT, token.CONSTRAINTS) {
			scope = onDatabase
		} else {
			p.dbmsNoun(a)

			scope = onDBMS
		}
	case token.SHOW:
		a.take(token.SHOW)

		switch {
		case a.take(token.INDEX, token.INDEXES, token.CONSTRAINT, token.CONSTRAINTS):
			scope = onDatabase
		case a.take(token.TRANSACTION, token.TRANSACTIONS):
			pr.Users = p.parseUserQualifier()
			scope = onDatabase
		case a.take(token.SETTING, token.SETTINGS):
			pr.Globs = p.parseGlobList()
			scope = onDBMS
		default:
			a.must(token.ALIAS, token.PRIVILEGE, token.ROLE, token.SERVER, token.SERVERS, token.USER)

			scope = onDBMS
		}
	case token.SET:
		a.take(token.SET)

		switch {
		case a.take(token.LABEL):
			pr.Labels = p.parseLabelsResource()
			scope = onGraph
		case a.take(token.PROPERTY):
			pr.Properties = p.parsePropertiesResource()
			scope, qualified = onGraph, true
		case a.take(token.USER):
			if !a.take(token.STATUS) {
				a.must(token.HOME)
				a.must(token.DATABASE)
			}

			scope = onDBMS
		case a.take(token.DATABASE):
			a.must(token.ACCESS)

			scope = onDBMS
		default:
			a.must(token.PASSWORD, token.PASSWORDS, token.AUTH)

			scope = onDBMS
		}
	case token.REMOVE:
		a.take(token.REMOVE)

		if a.take(token.LABEL) {
			pr.Labels = p.parseLabelsResource()
			scope = onGraph
		} else {
			a.must(token.PRIVILEGE, token.ROLE)

			scope = onDBMS
		}
	case token.ACCESS, token.START, token.STOP:
		a.take(token.ACCESS, token.START, token.STOP)

		scope = onDatabase
	case token.INDEX, token.INDEXES, token.CONSTRAINT, token.CONSTRAINTS, token.NAME:
		a.take(token.INDEX, token.INDEXES, token.CONSTRAINT, token.CONSTRAINTS, token.NAME)
		a.take(token.MANAGEMENT)

		scope = onDatabase
	case token.TRANSACTION, token.TERMINATE:
		if a.take(token.TERMINATE) {
			a.must(token.TRANSACTION, token.TRANSACTIONS)
		} else {
			a.take(token.TRANSACTION)
			a.take(token.MANAGEMENT)
		}

		pr.Users = p.parseUserQualifier()
		scope = onDatabase
	case token.ALTER:
		a.take(token.ALTER)
		a.must(token.ALIAS, token.DATABASE, token.USER)

		scope = onDBMS
	case token.ASSIGN:
		a.take(token.ASSIGN)
		a.must(token.PRIVILEGE, token.ROLE)

		scope = onDBMS
	case token.RENAME:
		a.take(token.RENAME)
		a.must(token.ROLE, token.USER)

		scope = onDBMS
	case token.IMPERSONATE:
		a.take(token.IMPERSONATE)
		pr.Users = p.parseUserQualifier()
		scope = onDBMS
	case token.EXECUTE:
		a.take(token.EXECUTE)

		if a.take(token.ADMIN, token.ADMINISTRATOR) {
			a.must(token.PROCEDURES)
		} else {
			a.take(token.BOOSTED)

			if !a.take(token.PROCEDURE, token.PROCEDURES) {
				if a.take(token.USER) {
					a.take(token.DEFINED)
				}

				a.must(token.FUNCTION, token.FUNCTIONS)
			}

			pr.Globs = p.parseGlobList()
		}

		scope = onDBMS
	case token.ALIAS, token.COMPOSITE, token.DATABASE, token.PRIVILEGE, token.ROLE, token.SERVER,
		token.USER:
		if a.take(token.COMPOSITE) {
			a.must(token.DATABASE)
		} else {
			a.take(token.ALIAS, token.DATABASE, token.PRIVILEGE, token.ROLE, token.SERVER, token.USER)
		}

		a.must(token.MANAGEMENT)

		scope = onDBMS
	default:
		p.failExpected(privilegeFirst...)
	}

	pr.Action = a.String()

	if pr.Scope == nil {
		pr.Scope = p.parsePrivilegeScope(scope)
	}

	if qualified {
		pr.Qualifier = p.parseGraphQualifier()

		if pr.Action == "TRAVERSE" || pr.Action == "READ" || pr.Action == "MATCH" {
			p.acceptSeq(token.LParen, token.Star, token.RParen)
		}
	}

	pr.NodeMeta = p.meta(start)

	return pr
}

// dbmsNoun consumes the object of a CREATE or DROP DBMS privilege.
func (p *Parser) dbmsNoun(a *action) {
	if a.take(token.COMPOSITE) {
		a.must(token.DATABASE)

		return
	}

	a.must(token.ALIAS, token.DATABASE, token.ROLE, token.USER)
}

// parsePrivilegeScope parses `ON target`, restricted to the targets in
// mask.
func (p *Parser) parsePrivilegeScope(mask scopeMask) *ast.PrivilegeScope {
	start := p.expect(token.ON).Pos
	s := &ast.PrivilegeScope{}

	switch {
	case mask&onDBMS != 0 && p.accept(token.DBMS):
		s.Kind = ast.ScopeDBMS
	case mask&(onDatabase|onGraph) != 0 && p.atAny(token.DEFAULT, token.HOME):
		home := p.next().Type == token.HOME

		switch {
		case mask&onDatabase != 0 && p.accept(token.DATABASE):
			s.Kind = ast.ScopeDefaultDatabase
			if home {
				s.Kind = ast.ScopeHomeDatabase
			}
		case mask&onGraph != 0 && p.accept(token.GRAPH):
			s.Kind = ast.ScopeDefaultGraph
			if home {
				s.Kind = ast.ScopeHomeGraph
			}
		default:
			p.failExpected(scopeNouns(mask)...)
		}
	case mask&onDatabase != 0 && p.atAny(token.DATABASE, token.DATABASES):
		p.next()

		s.Kind = ast.ScopeDatabase
		s.Star, s.Names = p.parseScopeNames()
	case mask&onGraph != 0 && p.atAny(token.GRAPH, token.GRAPHS):
		p.next()

		s.Kind = ast.ScopeGraph
		s.Star, s.Names = p.parseScopeNames()
	default:
		expected := scopeNouns(mask)
		if mask&onDBMS != 0 {
			expected = append(expected, token.DBMS)
		}

		if mask&(onDatabase|onGraph) != 0 {
			expected = append(expected, token.DEFAULT, token.HOME)
		}

		p.failExpected(expected...)
	}

	s.NodeMeta = p.meta(start)

	return s
}

func scopeNouns(mask scopeMask) []token.Kind {
	var kinds []token.Kind
	if mask&onDatabase != 0 {
		kinds = append(kinds, token.DATABASE, token.DATABASES)
	}

	if mask&onGraph != 0 {
		kinds = append(kinds, token.GRAPH, token.GRAPHS)
	}

	return kinds
}

func (p *Parser) parseScopeNames() (star bool, names []*ast.AliasName) {
	if p.accept(token.Star) {
		return true, nil
	}

	names = append(names, p.parseAliasName())
	for p.accept(token.Comma) {
		names = append(names, p.parseAliasName())
	}

	return false, names
}

// parseLoadScope parses `ON URL s`, `ON CIDR s` or `ON ALL DATA`.
func (p *Parser) parseLoadScope() *ast.PrivilegeScope {
	start := p.expect(token.ON).Pos
	s := &ast.PrivilegeScope{}

	switch {
	case p.accept(token.URL):
		s.Kind = ast.ScopeURL
		s.Value = p.parseStringOrParam()
	case p.accept(token.CIDR):
		s.Kind = ast.ScopeCIDR
		s.Value = p.parseStringOrParam()
	case p.accept(token.ALL):
		p.expect(token.DATA)

		s.Kind = ast.ScopeAllData
	default:
		p.failExpected(token.URL, token.CIDR, token.ALL)
	}

	s.NodeMeta = p.meta(start)

	return s
}

// parsePropertiesResource parses `{*}` or `{a, b}`.
func (p *Parser) parsePropertiesResource() *ast.PrivilegeResource {
	start := p.tok().Pos
	open := p.expect(token.LBrace)
	r := &ast.PrivilegeResource{}

	if p.accept(token.Star) {
		r.Star = true
	} else {
		r.Names = p.parseNameList()
	}

	p.expectClose(token.RBrace, open)
	r.NodeMeta = p.meta(start)

	return r
}

// parseLabelsResource parses `*` or `a, b`.
func (p *Parser) parseLabelsResource() *ast.PrivilegeResource {
	start := p.tok().Pos
	r := &ast.PrivilegeResource{}

	if p.accept(token.Star) {
		r.Star = true
	} else {
		r.Names = p.parseNameList()
	}

	r.NodeMeta = p.meta(start)

	return r
}

func (p *Parser) parseNameList() []string {
	names := []string{p.parseName()}
	for p.accept(token.Comma) {
		names = append(names, p.parseName())
	}

	return names
}

// parseUserQualifier parses an optional `(*)` or `(u1, u2)`.
func (p *Parser) parseUserQualifier() *ast.UserQualifier {
	if !p.at(token.LParen) {
		return nil
	}

	start := p.tok().Pos
	open := p.next()
	u := &ast.UserQualifier{}

	if p.accept(token.Star) {
		u.Star = true
	} else {
		u.Users = p.parseCommandNameList()
	}

	p.expectClose(token.RParen, open)
	u.NodeMeta = p.meta(start)

	return u
}

var qualifierKinds = map[token.Kind]ast.QualifierKind{
	token.NODE:          ast.QualifyNodes,
	token.NODES:         ast.QualifyNodes,
	token.RELATIONSHIP:  ast.QualifyRelationships,
	token.RELATIONSHIPS: ast.QualifyRelationships,
	token.ELEMENT:       ast.QualifyElements,
	token.ELEMENTS:      ast.QualifyElements,
}

// parseGraphQualifier parses an optional element qualifier: `NODES *`,
// `RELATIONSHIPS a, b`, or a `FOR (v:A|B) WHERE e` pattern. A WHERE after
// the closing parenthesis is stored like one inside it.
func (p *Parser) parseGraphQualifier() *ast.GraphQualifier {
	start := p.tok().Pos

	if kind, ok := qualifierKinds[p.peek()]; ok {
		p.next()
		q := &ast.GraphQualifier{Kind: kind}

		if p.accept(token.Star) {
			q.Star = true
		} else {
			q.Names = p.parseNameList()
		}

		q.NodeMeta = p.meta(start)

		return q
	}

	if !p.accept(token.FOR) {
		return nil
	}

	q := &ast.GraphQualifier{Kind: ast.QualifyPattern}
	open := p.expect(token.LParen)

	if token.IsName(p.peek()) && !p.at(token.WHERE) {
		q.Variable = p.parseName()
	}

	if p.accept(token.Colon) {
		q.Labels = p.parseBarNames()
	}

	switch {
	case p.accept(token.WHERE):
		q.Where = p.parseExpression()
		p.expectClose(token.RParen, open)
	case p.at(token.LBrace):
		q.Properties = p.parseMapLiteral()
		p.expectClose(token.RParen, open)
	default:
		p.expectClose(token.RParen, open)
		p.expect(token.WHERE)
		q.Where = p.parseExpression()
	}

	q.NodeMeta = p.meta(start)

	return q
}

func (p *Parser) parseBarNames() []string {
	names := []string{p.parseName()}
	for p.accept(token.Bar) {
		names = append(names, p.parseName())
	}

	return names
}

// =============================================================================
// Globs
// =============================================================================

func (p *Parser) parseGlobList() []*ast.Glob {
	globs := []*ast.Glob{p.parseGlob()}
	for p.accept(token.Comma) {
		globs = append(globs, p.parseGlob())
	}

	return globs
}

// parseGlob parses a name pattern such as `apoc.*` or `dbms.?`. Segments
// after the first must touch the previous token; whitespace ends the glob.
func (p *Parser) parseGlob() *ast.Glob {
	start := p.tok().Pos
	g := &ast.Glob{}

	for len(g.Parts) == 0 || p.adjacent() {
		part := p.parseGlobPart()
		if part == nil {
			break
		}

		g.Parts = append(g.Parts, part)
	}

	if len(g.Parts) == 0 {
		p.failExpected(token.Ident, token.EscapedIdent, token.Star, token.Question, token.Dot)
	}

	g.NodeMeta = p.meta(start)

	return g
}

func (p *Parser) parseGlobPart() *ast.GlobPart {
	start := p.tok().Pos
	part := &ast.GlobPart{}

	switch k := p.peek(); {
	case k == token.Dot:
		p.next()

		part.Kind = ast.GlobDot
	case k == token.Question:
		p.next()

		part.Kind = ast.GlobQuestion
	case k == token.Star:
		p.next()

		part.Kind = ast.GlobStar
	case k == token.EscapedIdent:
		part.Kind = ast.GlobEscapedName
		part.Text = p.parseName()
	case token.IsName(k):
		part.Kind = ast.GlobName
		part.Text = p.next().Value
	default:
		return nil
	}

	part.NodeMeta = p.meta(start)

	return part
}

// adjacent reports whether the current token starts exactly where the
// previous one ended.
func (p *Parser) adjacent() bool {
	if p.pos == 0 {
		return false
	}

	return endOf(p.tokens[p.pos-1]).Offset == p.tok().Pos.Offset
}

// =============================================================================
// SHOW PRIVILEGES
// =============================================================================

// parseShowPrivileges parses `SHOW [ALL] PRIVILEGES`, `SHOW ROLE(S) names
// PRIVILEGES` or `SHOW USER(S) [names] PRIVILEGES`, then `AS [REVOKE]
// COMMAND(S)`.
func (p *Parser) parseShowPrivileges(start lexer.Position) *ast.ShowPrivileges {
	cmd := &ast.ShowPrivileges{}

	switch {
	case p.atAny(token.ROLE, token.ROLES):
		p.next()

		cmd.Scope = ast.PrivilegesOfRoles
		cmd.Names = p.parseCommandNameList()
	case p.atAny(token.USER, token.USERS):
		p.next()

		cmd.Scope = ast.PrivilegesOfUsers
		if !p.atAny(token.PRIVILEGE, token.PRIVILEGES) {
			cmd.Names = p.parseCommandNameList()
		}
	default:
		cmd.ExplicitAll = p.accept(token.ALL)
	}

	p.expectPlural(token.PRIVILEGE, token.PRIVILEGES)

	if p.accept(token.AS) {
		cmd.AsCommands = true
		cmd.AsRevoke = p.accept(token.REVOKE)
		p.expectPlural(token.COMMAND, token.COMMANDS)
	}

	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// =============================================================================
// Databases
// =============================================================================

func (p *Parser) parseCreateDatabase(start lexer.Position, replace bool) *ast.CreateDatabase {
	cmd := &ast.CreateDatabase{Replace: replace, Composite: p.accept(token.COMPOSITE)}
	p.expect(token.DATABASE)
	cmd.Name = p.parseAliasName()
	cmd.IfNotExists = p.parseIfNotExists()

	if !cmd.Composite && p.at(token.TOPOLOGY) {
		cmd.Topology = p.parseTopology()
	}

	cmd.Options = p.parseOptions()
	cmd.Wait = p.parseWait()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseTopology parses `TOPOLOGY n PRIMARIES [m SECONDARIES]` with the two
// counts in either order, each at most once.
func (p *Parser) parseTopology() *ast.Topology {
	start := p.expect(token.TOPOLOGY).Pos
	t := &ast.Topology{}

	for p.at(token.Dollar) || p.at(token.IntegerLiteral) {
		n := p.parseIntOrParam()

		switch {
		case p.atAny(token.PRIMARY, token.PRIMARIES) && t.Primaries == nil:
			p.next()

			t.Primaries = n
		case p.atAny(token.SECONDARY, token.SECONDARIES) && t.Secondaries == nil:
			p.next()

			t.Secondaries = n
		default:
			p.failExpected(token.PRIMARIES, token.SECONDARIES)
		}
	}

	if t.Primaries == nil && t.Secondaries == nil {
		p.failExpected(token.IntegerLiteral, token.Dollar)
	}

	t.NodeMeta = p.meta(start)

	return t
}

func (p *Parser) parseDropDatabase(start lexer.Position) *ast.DropDatabase {
	cmd := &ast.DropDatabase{Composite: p.accept(token.COMPOSITE)}
	p.expect(token.DATABASE)
	cmd.Name = p.parseAliasName()
	cmd.IfExists = p.parseIfExists()

	switch {
	case p.accept(token.RESTRICT):
		p.expectPlural(token.ALIAS, token.ALIASES)

		cmd.Aliases = ast.AliasActionRestrict
	case p.accept(token.CASCADE):
		p.expectPlural(token.ALIAS, token.ALIASES)

		cmd.Aliases = ast.AliasActionCascade
	}

	switch {
	case p.accept(token.DUMP):
		p.expect(token.DATA)

		cmd.Data = ast.DataActionDump
	case p.accept(token.DESTROY):
		p.expect(token.DATA)

		cmd.Data = ast.DataActionDestroy
	}

	cmd.Wait = p.parseWait()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseAlterDatabase parses ALTER DATABASE with either SET items or REMOVE
// OPTION items, never both.
func (p *Parser) parseAlterDatabase(start lexer.Position) *ast.AlterDatabase {
	p.expect(token.DATABASE)
	cmd := &ast.AlterDatabase{Name: p.parseAliasName()}
	cmd.IfExists = p.parseIfExists()

	switch {
	case p.at(token.SET):
		for p.at(token.SET) {
			cmd.Settings = append(cmd.Settings, p.parseDatabaseSetting())
		}
	case p.at(token.REMOVE):
		for p.accept(token.REMOVE) {
			p.expect(token.OPTION)
			cmd.RemoveOptions = append(cmd.RemoveOptions, p.parseName())
		}
	default:
		p.failExpected(token.SET, token.REMOVE)
	}

	cmd.Wait = p.parseWait()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

func (p *Parser) parseDatabaseSetting() ast.DatabaseSetting {
	start := p.expect(token.SET).Pos

	switch {
	case p.accept(token.ACCESS):
		p.expect(token.READ)

		readOnly := false

		switch {
		case p.accept(token.ONLY):
			readOnly = true
		case p.accept(token.WRITE):
		default:
			p.failExpected(token.ONLY, token.WRITE)
		}

		return &ast.SetAccess{NodeMeta: p.meta(start), ReadOnly: readOnly}
	case p.at(token.TOPOLOGY):
		t := p.parseTopology()

		return &ast.SetTopology{NodeMeta: p.meta(start), Topology: t}
	case p.accept(token.OPTION):
		key := p.parseName()
		value := p.parseExpression()

		return &ast.SetOption{NodeMeta: p.meta(start), Key: key, Value: value}
	}

	p.failExpected(token.ACCESS, token.TOPOLOGY, token.OPTION)

	return nil
}

func (p *Parser) parseStartStopDatabase() ast.Command {
	tok := p.next()
	p.expect(token.DATABASE)
	name := p.parseAliasName()
	wait := p.parseWait()

	if tok.Type == token.START {
		return &ast.StartDatabase{NodeMeta: p.meta(tok.Pos), Name: name, Wait: wait}
	}

	return &ast.StopDatabase{NodeMeta: p.meta(tok.Pos), Name: name, Wait: wait}
}

func (p *Parser) parseShowDatabases(start lexer.Position) *ast.ShowDatabases {
	cmd := &ast.ShowDatabases{}

	switch {
	case p.accept(token.DEFAULT):
		p.expect(token.DATABASE)

		cmd.Scope = ast.DatabaseDefault
	case p.accept(token.HOME):
		p.expect(token.DATABASE)

		cmd.Scope = ast.DatabaseHome
	default:
		cmd.Plural = p.expectPlural(token.DATABASE, token.DATABASES)

		if !p.atShowTail() {
			cmd.Name = p.parseAliasName()
		}
	}

	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// =============================================================================
// Aliases
// =============================================================================

func (p *Parser) parseCreateAlias(start lexer.Position, replace bool) *ast.CreateAlias {
	p.expect(token.ALIAS)
	cmd := &ast.CreateAlias{Replace: replace, Name: p.parseAliasName()}
	cmd.IfNotExists = p.parseIfNotExists()
	p.expect(token.FOR)
	p.expect(token.DATABASE)
	cmd.Target = p.parseAliasName()

	if p.at(token.AT) {
		cmd.Remote = p.parseRemoteAlias()
	}

	if p.accept(token.PROPERTIES) {
		cmd.Properties = p.parseMapOrParam()
	}

	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseRemoteAlias parses `AT url USER u PASSWORD p [DRIVER m]`.
func (p *Parser) parseRemoteAlias() *ast.RemoteAlias {
	start := p.expect(token.AT).Pos
	r := &ast.RemoteAlias{URL: p.parseStringOrParam()}
	p.expect(token.USER)
	r.User = p.parseCommandName()
	p.expect(token.PASSWORD)
	r.Password = p.parseStringOrParam()

	if p.accept(token.DRIVER) {
		r.Driver = p.parseMapOrParam()
	}

	r.NodeMeta = p.meta(start)

	return r
}

func (p *Parser) parseAlterAlias(start lexer.Position) *ast.AlterAlias {
	p.expect(token.ALIAS)
	cmd := &ast.AlterAlias{Name: p.parseAliasName()}
	cmd.IfExists = p.parseIfExists()
	p.expect(token.SET)
	p.expect(token.DATABASE)

	for set := false; ; set = true {
		switch {
		case cmd.Target == nil && p.accept(token.TARGET):
			cmd.Target = p.parseAliasName()

			if p.accept(token.AT) {
				cmd.URL = p.parseStringOrParam()
			}
		case cmd.User == nil && p.accept(token.USER):
			cmd.User = p.parseCommandName()
		case cmd.Password == nil && p.accept(token.PASSWORD):
			cmd.Password = p.parseStringOrParam()
		case cmd.Driver == nil && p.accept(token.DRIVER):
			cmd.Driver = p.parseMapOrParam()
		case cmd.Properties == nil && p.accept(token.PROPERTIES):
			cmd.Properties = p.parseMapOrParam()
		default:
			if !set {
				p.failExpected(token.TARGET, token.USER, token.PASSWORD, token.DRIVER, token.PROPERTIES)
			}

			cmd.NodeMeta = p.meta(start)

			return cmd
		}
	}
}

func (p *Parser) parseDropAlias(start lexer.Position) *ast.DropAlias {
	p.expect(token.ALIAS)
	cmd := &ast.DropAlias{Name: p.parseAliasName()}
	cmd.IfExists = p.parseIfExists()
	p.expect(token.FOR)
	p.expect(token.DATABASE)
	cmd.NodeMeta = p.meta(start)

	return cmd
}

func (p *Parser) parseShowAliases(start lexer.Position) *ast.ShowAliases {
	p.expectPlural(token.ALIAS, token.ALIASES)
	cmd := &ast.ShowAliases{}

	if !p.at(token.FOR) {
		cmd.Name = p.parseAliasName()
	}

	p.expect(token.FOR)
	p.expectPlural(token.DATABASE, token.DATABASES)
	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

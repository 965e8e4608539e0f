package parser

import (
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// entityLabels controls how many labels an index or constraint pattern
// carries.
type entityLabels int

const (
	labelsNone entityLabels = iota // lookup indexes: (n), ()-[r]-()
	labelsOne                      // (n:L), ()-[r:T]-()
	labelsMany                     // fulltext: (n:A|B)
)

var indexKinds = map[token.Kind]ast.IndexKind{
	token.BTREE:  ast.IndexBtree,
	token.RANGE:  ast.IndexRange,
	token.TEXT:   ast.IndexText,
	token.POINT:  ast.IndexPoint,
	token.VECTOR: ast.IndexVector,
}

// =============================================================================
// Indexes
// =============================================================================

func (p *Parser) parseCreateIndex(start lexer.Position, replace bool) ast.Command {
	switch {
	case p.accept(token.LOOKUP):
		p.expect(token.INDEX)

		return p.parseCreateLookupIndex(start, replace)
	case p.accept(token.FULLTEXT):
		p.expect(token.INDEX)

		return p.parseCreateFulltextIndex(start, replace)
	}

	kind := ast.IndexDefault
	if k, ok := indexKinds[p.peek()]; ok {
		p.next()

		kind = k
	}

	p.expect(token.INDEX)

	if kind == ast.IndexDefault && !replace && p.at(token.ON) && p.peekN(1) == token.Colon {
		p.next()
		label, props := p.parseLegacySchemaTarget()

		return &ast.CreateLegacyIndex{NodeMeta: p.meta(start), Label: label, Properties: props}
	}

	cmd := &ast.CreateIndex{Replace: replace, Kind: kind}
	cmd.Name, cmd.IfNotExists = p.parseSchemaName()
	p.expect(token.FOR)
	cmd.Entity = p.parseEntityPattern(labelsOne)
	p.expect(token.ON)
	cmd.Properties = p.parsePropertyRefs()
	cmd.Options = p.parseOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseCreateLookupIndex parses the rest of `CREATE LOOKUP INDEX [name] FOR
// (n) ON EACH labels(n)`. EACH is optional for relationships.
func (p *Parser) parseCreateLookupIndex(start lexer.Position, replace bool) *ast.CreateLookupIndex {
	cmd := &ast.CreateLookupIndex{Replace: replace}
	cmd.Name, cmd.IfNotExists = p.parseSchemaName()
	p.expect(token.FOR)
	cmd.Entity = p.parseEntityPattern(labelsNone)
	p.expect(token.ON)

	if !p.accept(token.EACH) && !cmd.Entity.Relationship {
		p.failExpected(token.EACH)
	}

	cmd.Function = p.parseName()
	open := p.expect(token.LParen)
	cmd.Argument = p.parseName()
	p.expectClose(token.RParen, open)
	cmd.Options = p.parseOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseCreateFulltextIndex parses the rest of `CREATE FULLTEXT INDEX [name]
// FOR (n:A|B) ON EACH [n.p, ...]`.
func (p *Parser) parseCreateFulltextIndex(start lexer.Position, replace bool) *ast.CreateFulltextIndex {
	cmd := &ast.CreateFulltextIndex{Replace: replace}
	cmd.Name, cmd.IfNotExists = p.parseSchemaName()
	p.expect(token.FOR)
	cmd.Entity = p.parseEntityPattern(labelsMany)
	p.expect(token.ON)
	p.expect(token.EACH)
	open := p.expect(token.LBracket)
	cmd.Properties = []*ast.PropertyRef{p.parsePropertyRef()}

	for p.accept(token.Comma) {
		cmd.Properties = append(cmd.Properties, p.parsePropertyRef())
	}

	p.expectClose(token.RBracket, open)
	cmd.Options = p.parseOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

func (p *Parser) parseDropIndex(start lexer.Position) ast.Command {
	p.expect(token.INDEX)

	if p.at(token.ON) && p.peekN(1) == token.Colon {
		p.next()
		label, props := p.parseLegacySchemaTarget()

		return &ast.DropLegacyIndex{NodeMeta: p.meta(start), Label: label, Properties: props}
	}

	cmd := &ast.DropIndex{Name: p.parseCommandName()}
	cmd.IfExists = p.parseIfExists()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseLegacySchemaTarget parses `:Label(p1, p2)`.
func (p *Parser) parseLegacySchemaTarget() (label string, props []string) {
	p.expect(token.Colon)
	label = p.parseName()
	open := p.expect(token.LParen)
	props = append(props, p.parseName())

	for p.accept(token.Comma) {
		props = append(props, p.parseName())
	}

	p.expectClose(token.RParen, open)

	return label, props
}

func (p *Parser) parseShowIndexes(start lexer.Position) *ast.ShowIndexes {
	cmd := &ast.ShowIndexes{}

	switch p.peek() {
	case token.ALL, token.BTREE, token.FULLTEXT, token.LOOKUP, token.POINT, token.RANGE,
		token.TEXT, token.VECTOR:
		cmd.Type = token.Text(p.next().Type)
	}

	p.expectPlural(token.INDEX, token.INDEXES)
	cmd.Verbosity = p.parseVerbosity()
	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseVerbosity parses an optional `BRIEF [OUTPUT]` or `VERBOSE [OUTPUT]`.
func (p *Parser) parseVerbosity() ast.Verbosity {
	v := ast.VerbosityDefault

	switch {
	case p.accept(token.BRIEF):
		v = ast.VerbosityBrief
	case p.accept(token.VERBOSE):
		v = ast.VerbosityVerbose
	default:
		return v
	}

	p.accept(token.OUTPUT)

	return v
}

// =============================================================================
// Constraints
// =============================================================================

func (p *Parser) parseCreateConstraint(start lexer.Position, replace bool) *ast.CreateConstraint {
	p.expect(token.CONSTRAINT)
	cmd := &ast.CreateConstraint{Replace: replace}
	cmd.Name, cmd.IfNotExists = p.parseSchemaName()

	switch {
	case p.accept(token.FOR):
	case p.accept(token.ON):
		cmd.On = true
	default:
		p.failExpected(token.FOR, token.ON)
	}

	cmd.Entity = p.parseEntityPattern(labelsOne)

	switch {
	case p.accept(token.REQUIRE):
	case p.accept(token.ASSERT):
		cmd.Assert = true
	default:
		p.failExpected(token.REQUIRE, token.ASSERT)
	}

	if cmd.Assert && p.at(token.EXISTS) {
		cmd.Kind = ast.ConstraintExists
		cmd.Properties = p.parseExistsProperties()
	} else {
		cmd.Properties = p.parsePropertyRefs()
		p.parseConstraintKind(cmd)
	}

	cmd.Options = p.parseOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// parseConstraintKind parses the requirement after the property list:
// `IS [NODE|REL|RELATIONSHIP] UNIQUE|KEY`, `IS NOT NULL` or a type
// predicate.
func (p *Parser) parseConstraintKind(cmd *ast.CreateConstraint) {
	if p.accept(token.ColonColon) {
		cmd.Kind = ast.ConstraintTyped
		cmd.TypeSyntax = ast.TypeSyntaxColons
		cmd.Type = p.parseType()

		return
	}

	p.expect(token.IS)

	switch {
	case p.acceptSeq(token.NOT, token.NULL):
		cmd.Kind = ast.ConstraintNotNull
	case p.accept(token.TYPED):
		cmd.Kind = ast.ConstraintTyped
		cmd.TypeSyntax = ast.TypeSyntaxIsTyped
		cmd.Type = p.parseType()
	case p.accept(token.ColonColon):
		cmd.Kind = ast.ConstraintTyped
		cmd.TypeSyntax = ast.TypeSyntaxIsColons
		cmd.Type = p.parseType()
	default:
		if p.atAny(token.NODE, token.REL, token.RELATIONSHIP) {
			cmd.EntityWord = token.Text(p.next().Type)
		}

		switch {
		case p.accept(token.UNIQUE):
			cmd.Kind = ast.ConstraintUnique
		case p.accept(token.KEY):
			cmd.Kind = ast.ConstraintKey
		default:
			p.failExpected(token.UNIQUE, token.KEY)
		}
	}
}

// parseExistsProperties parses the legacy `EXISTS (v.p)` form.
func (p *Parser) parseExistsProperties() []*ast.PropertyRef {
	p.expect(token.EXISTS)
	open := p.expect(token.LParen)
	ref := p.parsePropertyRef()
	p.expectClose(token.RParen, open)

	return []*ast.PropertyRef{ref}
}

func (p *Parser) parseDropConstraint(start lexer.Position) ast.Command {
	p.expect(token.CONSTRAINT)

	if p.at(token.ON) && p.peekN(1) == token.LParen {
		p.next()
		cmd := &ast.DropLegacyConstraint{Entity: p.parseEntityPattern(labelsOne)}
		p.expect(token.ASSERT)

		if p.at(token.EXISTS) {
			cmd.Kind = ast.ConstraintExists
			cmd.Properties = p.parseExistsProperties()
		} else {
			cmd.Properties = p.parsePropertyRefs()
			p.expect(token.IS)

			switch {
			case p.accept(token.UNIQUE):
				cmd.Kind = ast.ConstraintUnique
			case p.acceptSeq(token.NODE, token.KEY):
				cmd.Kind = ast.ConstraintKey
			case p.acceptSeq(token.NOT, token.NULL):
				cmd.Kind = ast.ConstraintNotNull
			default:
				p.failExpected(token.UNIQUE, token.NODE, token.NOT)
			}
		}

		cmd.NodeMeta = p.meta(start)

		return cmd
	}

	cmd := &ast.DropConstraint{Name: p.parseCommandName()}
	cmd.IfExists = p.parseIfExists()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

func isConstraintFilterWord(k token.Kind) bool {
	switch k {
	case token.ALL, token.NODE, token.REL, token.RELATIONSHIP, token.UNIQUE, token.UNIQUENESS,
		token.KEY, token.EXIST, token.EXISTENCE, token.PROPERTY, token.TYPE:
		return true
	default:
		return false
	}
}

func (p *Parser) parseShowConstraints(start lexer.Position) *ast.ShowConstraints {
	cmd := &ast.ShowConstraints{Filter: p.keywordPhrase(isConstraintFilterWord)}
	p.expectPlural(token.CONSTRAINT, token.CONSTRAINTS)
	cmd.Verbosity = p.parseVerbosity()
	cmd.Show = p.parseShowOptions()
	cmd.NodeMeta = p.meta(start)

	return cmd
}

// =============================================================================
// Shared schema operands
// =============================================================================

// parseSchemaName parses the optional index or constraint name and IF NOT
// EXISTS. A name is absent when FOR, IF, or a legacy `ON (` follows.
func (p *Parser) parseSchemaName() (*ast.CommandName, bool) {
	var name *ast.CommandName

	switch {
	case p.at(token.FOR), p.at(token.IF) && p.peekN(1) == token.NOT:
	case p.at(token.ON) && p.peekN(1) == token.LParen:
	default:
		name = p.parseCommandName()
	}

	return name, p.parseIfNotExists()
}

// parseEntityPattern parses `(v[:L])` or `()-[v[:T]]-()`.
func (p *Parser) parseEntityPattern(labels entityLabels) *ast.EntityPattern {
	start := p.tok().Pos
	e := &ast.EntityPattern{}
	open := p.expect(token.LParen)

	if p.at(token.RParen) {
		p.next()
		e.Relationship = true

		left := false
		if token.IsLeftArrowHead(p.peek()) {
			p.next()

			left = true
		}

		p.expectArrowLine()
		bracket := p.expect(token.LBracket)
		e.Variable = p.parseName()
		e.Labels = p.parseEntityLabels(labels)
		p.expectClose(token.RBracket, bracket)
		p.expectArrowLine()

		right := false
		if token.IsRightArrowHead(p.peek()) {
			p.next()

			right = true
		}

		e.Direction = arrowDirection(left, right)
		open = p.expect(token.LParen)
	} else {
		e.Variable = p.parseName()
		e.Labels = p.parseEntityLabels(labels)
	}

	p.expectClose(token.RParen, open)
	e.NodeMeta = p.meta(start)

	return e
}

func (p *Parser) parseEntityLabels(labels entityLabels) []string {
	if labels == labelsNone {
		return nil
	}

	p.expect(token.Colon)
	names := []string{p.parseName()}

	for labels == labelsMany && p.accept(token.Bar) {
		names = append(names, p.parseName())
	}

	return names
}

// parsePropertyRefs parses `v.p` or `(v.p, ...)`.
func (p *Parser) parsePropertyRefs() []*ast.PropertyRef {
	if !p.at(token.LParen) {
		return []*ast.PropertyRef{p.parsePropertyRef()}
	}

	open := p.next()
	refs := []*ast.PropertyRef{p.parsePropertyRef()}

	for p.accept(token.Comma) {
		refs = append(refs, p.parsePropertyRef())
	}

	p.expectClose(token.RParen, open)

	return refs
}

func (p *Parser) parsePropertyRef() *ast.PropertyRef {
	start := p.tok().Pos
	ref := &ast.PropertyRef{Variable: p.parseName()}
	p.expect(token.Dot)
	ref.Property = p.parseName()
	ref.NodeMeta = p.meta(start)

	return ref
}

package parser

import (
	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/token"
)

// typeFirst is the expected set for a type name.
var typeFirst = []token.Kind{
	token.NOTHING, token.NULL, token.BOOLEAN, token.STRING, token.INTEGER, token.FLOAT,
	token.DATE, token.LOCAL, token.ZONED, token.TIME, token.TIMESTAMP, token.DURATION,
	token.POINT, token.NODE, token.RELATIONSHIP, token.MAP, token.LIST, token.PATH,
	token.PROPERTY, token.ANY,
}

// simpleTypes maps single-keyword type names to their canonical spelling.
var simpleTypes = map[token.Kind]string{
	token.NOTHING:      "NOTHING",
	token.NULL:         "NULL",
	token.BOOL:         "BOOLEAN",
	token.BOOLEAN:      "BOOLEAN",
	token.VARCHAR:      "STRING",
	token.STRING:       "STRING",
	token.INT:          "INTEGER",
	token.INTEGER:      "INTEGER",
	token.FLOAT:        "FLOAT",
	token.DATE:         "DATE",
	token.DURATION:     "DURATION",
	token.POINT:        "POINT",
	token.NODE:         "NODE",
	token.VERTEX:       "NODE",
	token.RELATIONSHIP: "RELATIONSHIP",
	token.EDGE:         "RELATIONSHIP",
	token.MAP:          "MAP",
	token.PATH:         "PATH",
	token.PATHS:        "PATH",
}

// parseType parses `part (| part)*`.
func (p *Parser) parseType() *ast.CypherType {
	p.enter()
	defer p.leave()

	start := p.tok().Pos
	t := &ast.CypherType{Parts: []*ast.TypePart{p.parseTypePart()}}

	for p.at(token.Bar) && !p.barStops[p.pos] {
		p.next()
		t.Parts = append(t.Parts, p.parseTypePart())
	}

	t.NodeMeta = p.meta(start)

	return t
}

func (p *Parser) parseTypePart() *ast.TypePart {
	start := p.tok().Pos
	part := &ast.TypePart{}
	part.Name, part.Inner = p.parseTypeName()
	part.NotNull = p.parseNotNull()

	for p.atAny(token.LIST, token.ARRAY) {
		sstart := p.next().Pos
		notNull := p.parseNotNull()
		part.Suffixes = append(part.Suffixes, &ast.TypeSuffix{NodeMeta: p.meta(sstart), NotNull: notNull})
	}

	part.NodeMeta = p.meta(start)

	return part
}

// parseNotNull consumes `NOT NULL` or `!`.
func (p *Parser) parseNotNull() bool {
	return p.acceptSeq(token.NOT, token.NULL) || p.accept(token.Bang)
}

// parseTypeName returns the canonical name of the type at the cursor and,
// for LIST<t> and ANY<t>, its inner type.
func (p *Parser) parseTypeName() (string, *ast.CypherType) {
	cur := p.peek()
	if name, ok := simpleTypes[cur]; ok {
		p.next()

		return name, nil
	}

	switch cur {
	case token.SIGNED:
		p.next()
		p.expect(token.INTEGER)

		return "INTEGER", nil
	case token.LOCAL, token.ZONED:
		p.next()

		if !p.atAny(token.TIME, token.DATETIME) {
			p.failExpected(token.TIME, token.DATETIME)
		}

		return token.Text(cur) + " " + token.Text(p.next().Type), nil
	case token.TIME, token.TIMESTAMP:
		p.next()

		zoned := p.at(token.WITH)
		if !p.accept(token.WITH) && !p.accept(token.WITHOUT) {
			p.failExpected(token.WITH, token.WITHOUT)
		}

		if !p.accept(token.TIMEZONE) && !p.acceptSeq(token.TIME, token.ZONE) {
			p.failExpected(token.TIMEZONE, token.TIME)
		}

		noun := "TIME"
		if cur == token.TIMESTAMP {
			noun = "DATETIME"
		}

		if zoned {
			return "ZONED " + noun, nil
		}

		return "LOCAL " + noun, nil
	case token.LIST, token.ARRAY:
		p.next()

		return "LIST", p.parseAngleType()
	case token.PROPERTY:
		p.next()
		p.expect(token.VALUE)

		return "PROPERTY VALUE", nil
	case token.ANY:
		p.next()

		return p.parseAnyType()
	}

	p.failExpected(typeFirst...)

	return "", nil
}

// parseAnyType parses what follows ANY.
func (p *Parser) parseAnyType() (string, *ast.CypherType) {
	switch p.peek() {
	case token.NODE, token.VERTEX, token.RELATIONSHIP, token.EDGE, token.MAP:
		return simpleTypes[p.next().Type], nil
	case token.PROPERTY:
		p.next()
		p.expect(token.VALUE)

		return "PROPERTY VALUE", nil
	case token.VALUE:
		p.next()

		if p.at(token.Lt) {
			return "ANY", p.parseAngleType()
		}

		return "ANY", nil
	case token.Lt:
		return "ANY", p.parseAngleType()
	default:
		return "ANY", nil
	}
}

// parseAngleType parses `< type >`.
func (p *Parser) parseAngleType() *ast.CypherType {
	open := p.expect(token.Lt)
	inner := p.parseType()
	p.expectClose(token.Gt, open)

	return inner
}

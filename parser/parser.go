// Package parser implements a recursive descent parser for Cypher.
//
// The parser consumes a token slice terminated by EOF and builds an ast tree.
// Each grammar rule is a method; rules with overlapping alternatives consult
// a lookahead predicate from lookahead.go before committing. A rule that
// cannot continue raises a *SyntaxError, which unwinds to the enclosing
// statement. In multi-statement mode the parser then skips to the next ';'
// and carries on, so one bad statement does not hide errors in the others.
package parser

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
	"go.uber.org/zap"

	"github.com/rlch/cypherparse/ast"
	"github.com/rlch/cypherparse/scanner"
	"github.com/rlch/cypherparse/token"
)

// DefaultMaxDepth is the default nesting limit.
const DefaultMaxDepth = 500

// Option configures a Parser.
type Option func(*Parser)

// WithMaxDepth sets the nesting limit. Values below one are ignored.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

// WithLogger sets the logger used for recovery and depth diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFilename sets the filename recorded by ParseString in token positions.
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

// Result is the outcome of parsing. Statements holds every statement that
// parsed cleanly, in source order. Errors holds one entry per failed
// statement, plus any scanner error.
type Result struct {
	Statements []ast.Statement
	Errors     []*SyntaxError
}

// OK reports whether parsing produced no errors.
func (r *Result) OK() bool {
	return len(r.Errors) == 0
}

// Err joins all errors, or returns nil.
func (r *Result) Err() error {
	if r.OK() {
		return nil
	}

	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}

	return errors.Join(errs...)
}

// Parser holds the state of one parse. It is single-use and must not be
// shared between goroutines.
type Parser struct {
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int
	filename string
	logger   *zap.Logger
	// groups is indexed by the token index of each opening bracket.
	groups []group
	// barStops holds indices of '|' tokens that separate the parts of a
	// comprehension, REDUCE or FOREACH.
	barStops map[int]bool
}

// New returns a parser over tokens. A missing trailing EOF token is added.
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		tokens:   tokens,
		maxDepth: DefaultMaxDepth,
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if len(p.tokens) == 0 || p.tokens[len(p.tokens)-1].Type != token.EOF {
		var pos lexer.Position
		if len(p.tokens) > 0 {
			pos = endOf(p.tokens[len(p.tokens)-1])
		}

		p.tokens = append(p.tokens[:len(p.tokens):len(p.tokens)], lexer.Token{Type: token.EOF, Pos: pos})
	}

	p.groups = indexGroups(p.tokens)

	return p
}

// ParseString tokenizes src and parses every statement in it. Scanner
// errors are reported as a fatal InvalidToken error after the statements
// that precede the bad input.
func ParseString(src string, opts ...Option) *Result {
	var cfg Parser
	for _, opt := range opts {
		opt(&cfg)
	}

	tokens, scanErr := scanner.Tokenize(cfg.filename, src)
	res := New(tokens, opts...).ParseStatements()

	if scanErr != nil {
		res = truncate(res, scanErr)
	}

	return res
}

// ParseExpressionString tokenizes src and parses it as one expression.
func ParseExpressionString(src string, opts ...Option) (ast.Expr, error) {
	tokens, err := scanner.Tokenize("", src)
	if err != nil {
		return nil, invalidToken(err)
	}

	return New(tokens, opts...).ParseExpression()
}

// truncate drops results that lie beyond a scanner failure and appends the
// scanner error itself.
func truncate(res *Result, scanErr error) *Result {
	serr := invalidToken(scanErr)
	limit := serr.Span.Start.Offset

	out := &Result{}

	for _, stmt := range res.Statements {
		if stmt.Span().End.Offset <= limit {
			out.Statements = append(out.Statements, stmt)
		}
	}

	for _, e := range res.Errors {
		if e.Span.Start.Offset < limit {
			out.Errors = append(out.Errors, e)
		}
	}

	out.Errors = append(out.Errors, serr)

	return out
}

func invalidToken(err error) *SyntaxError {
	serr := &SyntaxError{
		Kind:     InvalidToken,
		Severity: Fatal,
		Message:  err.Error(),
	}

	var scanErr *scanner.Error
	if errors.As(err, &scanErr) {
		pos := scanErr.Position()
		serr.Span = ast.Span{Start: pos, End: pos}
		serr.Token = lexer.Token{Type: token.EOF, Pos: pos}
		serr.Message = scanErr.Message()
	}

	return serr
}

// ParseStatement parses exactly one statement, optionally followed by ';'.
func (p *Parser) ParseStatement() *Result {
	res := &Result{}

	stmt, err := p.guard(func() ast.Statement {
		stmt := p.parseStatement()
		p.accept(token.Semicolon)

		if !p.at(token.EOF) {
			p.failExpected(token.EOF)
		}

		return stmt
	})
	if err != nil {
		res.Errors = append(res.Errors, err)
	} else {
		res.Statements = append(res.Statements, stmt)
	}

	return res
}

// ParseStatements parses `statement (';' statement)* ';'?`. After a failed
// statement it skips to the next ';' and continues. Input holding nothing
// but EOF yields an empty, error-free result.
func (p *Parser) ParseStatements() *Result {
	res := &Result{}

	if p.at(token.EOF) {
		return res
	}

	for {
		stmt, err := p.guard(func() ast.Statement {
			stmt := p.parseStatement()
			if !p.at(token.Semicolon) && !p.at(token.EOF) {
				p.failExpected(token.Semicolon, token.EOF)
			}

			return stmt
		})

		if err != nil {
			res.Errors = append(res.Errors, err)
			if err.Severity == Fatal {
				return res
			}

			p.synchronize()
		} else {
			res.Statements = append(res.Statements, stmt)
		}

		if !p.accept(token.Semicolon) || p.at(token.EOF) {
			break
		}
	}

	p.logger.Debug("parsed statements",
		zap.Int("statements", len(res.Statements)),
		zap.Int("errors", len(res.Errors)),
	)

	return res
}

// ParseExpression parses a single expression followed by EOF.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	var expr ast.Expr

	_, err := p.guard(func() ast.Statement {
		expr = p.parseExpression()
		if !p.at(token.EOF) {
			p.failExpected(token.EOF)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return expr, nil
}

// guard runs rule, converting a raised SyntaxError into a return value.
func (p *Parser) guard(rule func() ast.Statement) (stmt ast.Statement, err *SyntaxError) {
	p.depth = 0

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}

			stmt, err = nil, b.err
		}
	}()

	return rule(), nil
}

// synchronize skips tokens up to the next ';' or EOF.
func (p *Parser) synchronize() {
	start := p.pos

	for !p.at(token.Semicolon) && !p.at(token.EOF) {
		p.pos++
	}

	p.logger.Debug("recovered from syntax error",
		zap.Int("offset", p.tok().Pos.Offset),
		zap.Int("skipped", p.pos-start),
	)
}

// =============================================================================
// Token cursor
// =============================================================================

func (p *Parser) tok() lexer.Token {
	return p.tokens[p.pos]
}

// peekN returns the kind n tokens ahead; peekN(0) is the current token.
// Reads past the end return EOF.
func (p *Parser) peekN(n int) token.Kind {
	if i := p.pos + n; i < len(p.tokens) {
		return p.tokens[i].Type
	}

	return token.EOF
}

func (p *Parser) peek() token.Kind {
	return p.tokens[p.pos].Type
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek() == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	cur := p.peek()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}

	return false
}

// next consumes and returns the current token. EOF is never consumed.
func (p *Parser) next() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != token.EOF {
		p.pos++
	}

	return tok
}

func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.next()

		return true
	}

	return false
}

// acceptSeq consumes kinds if they appear in order at the cursor.
func (p *Parser) acceptSeq(kinds ...token.Kind) bool {
	for i, k := range kinds {
		if p.peekN(i) != k {
			return false
		}
	}

	p.pos += len(kinds)

	return true
}

func (p *Parser) expect(k token.Kind) lexer.Token {
	if !p.at(k) {
		p.failExpected(k)
	}

	return p.next()
}

// expectClose consumes the closer k of the construct opened by open.
func (p *Parser) expectClose(k token.Kind, open lexer.Token) lexer.Token {
	if p.at(k) {
		return p.next()
	}

	if p.atAny(token.Semicolon, token.EOF) {
		tok := p.tok()
		p.raise(&SyntaxError{
			Kind:     UnterminatedConstruct,
			Token:    tok,
			Span:     spanOf(tok),
			Expected: []string{token.Name(k)},
			Message:  "missing " + token.Name(k) + " to close " + describe(open) + " at " + posString(open.Pos),
			Open:     &open,
		})
	}

	p.failExpected(k)

	return lexer.Token{}
}

// end returns the position just past the last consumed token.
func (p *Parser) end() lexer.Position {
	if p.pos == 0 {
		return p.tokens[0].Pos
	}

	return endOf(p.tokens[p.pos-1])
}

func (p *Parser) meta(start lexer.Position) ast.NodeMeta {
	return ast.NodeMeta{Pos: start, EndPos: p.end()}
}

// =============================================================================
// Failure
// =============================================================================

func (p *Parser) raise(err *SyntaxError) {
	panic(bailout{err: err})
}

// failExpected raises UnexpectedToken naming kinds as the expected set.
func (p *Parser) failExpected(kinds ...token.Kind) {
	p.fail(expectedNames(kinds)...)
}

// fail raises UnexpectedToken with a free-form expected set.
func (p *Parser) fail(expected ...string) {
	tok := p.tok()
	p.raise(&SyntaxError{
		Kind:     UnexpectedToken,
		Token:    tok,
		Span:     spanOf(tok),
		Expected: expected,
		Message:  "unexpected " + describe(tok) + expectedMessage(expected),
	})
}

// internal raises AmbiguousConstruct, reporting a lookahead decision that
// its rule could not honour.
func (p *Parser) internal(what string) {
	tok := p.tok()
	p.raise(&SyntaxError{
		Kind:     AmbiguousConstruct,
		Severity: Fatal,
		Token:    tok,
		Span:     spanOf(tok),
		Message:  "internal error: inconsistent lookahead for " + what,
	})
}

// enter increments the nesting depth, raising NestingTooDeep past the
// limit. Every call must be paired with leave.
func (p *Parser) enter() {
	p.depth++
	if p.depth <= p.maxDepth {
		return
	}

	tok := p.tok()
	p.logger.Debug("nesting limit exceeded",
		zap.Int("depth", p.depth),
		zap.Int("offset", tok.Pos.Offset),
	)
	p.raise(&SyntaxError{
		Kind:    NestingTooDeep,
		Token:   tok,
		Span:    spanOf(tok),
		Message: "expression too deeply nested",
	})
}

func (p *Parser) leave() {
	p.depth--
}

func posString(pos lexer.Position) string {
	return strconv.Itoa(pos.Line) + ":" + strconv.Itoa(pos.Column)
}

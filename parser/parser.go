// Package parser provides a recursive descent parser for the engine's SQL
// dialect, turning a token stream into a typed ast.Statement.
package parser

import (
	"fmt"
	"sync"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/lexer"
	"github.com/miniql/miniql/token"
)

// Parser is a recursive descent SQL parser with one token of lookahead.
type Parser struct {
	lexer  *lexer.Lexer
	errors []ParseError
	cur    token.Item
}

// ParseError is a syntax error with the offending token's source position.
type ParseError struct {
	Pos     token.Pos
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// New creates a parser for input and primes the first token.
func New(input string) *Parser {
	p := &Parser{lexer: lexer.New(input)}
	p.advance()
	return p
}

var parserPool = sync.Pool{
	New: func() any { return &Parser{} },
}

// Get returns a pooled parser for input. Call Put when done.
func Get(input string) *Parser {
	p := parserPool.Get().(*Parser)
	p.lexer = lexer.Get(input)
	p.errors = p.errors[:0]
	p.cur = token.Item{}
	p.advance()
	return p
}

// Put returns the parser and its lexer to their pools.
func Put(p *Parser) {
	if p.lexer != nil {
		lexer.Put(p.lexer)
		p.lexer = nil
	}
	parserPool.Put(p)
}

// Parse parses a single statement, optionally terminated by `;`.
func (p *Parser) Parse() (ast.Statement, error) {
	if p.curIs(token.EOF) {
		return nil, nil
	}
	stmt := p.parseStatement()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	for p.curIs(token.SEMICOLON) {
		p.advance()
	}
	if !p.curIs(token.EOF) {
		p.errorf("unexpected token %v after statement", p.cur.Type)
		return nil, p.errors[0]
	}
	return stmt, nil
}

// ParseAll parses every statement in the input until EOF.
func (p *Parser) ParseAll() ([]ast.Statement, error) {
	var stmts []ast.Statement
	for !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if len(p.errors) > 0 {
			return stmts, p.errors[0]
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		for p.curIs(token.SEMICOLON) {
			p.advance()
		}
	}
	return stmts, nil
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.CREATE:
		return p.parseCreateTable()
	case token.DROP:
		return p.parseDropTable()
	case token.INSERT:
		return p.parseInsert()
	case token.SELECT:
		return p.parseSelect()
	case token.UPDATE:
		return p.parseUpdate()
	case token.DELETE:
		return p.parseDelete()
	default:
		p.errorf("unexpected token %v, expected a statement", p.cur.Type)
		return nil
	}
}

// --- token navigation ---

func (p *Parser) advance() {
	p.cur = p.lexer.Next()
}

func (p *Parser) curIs(t token.Token) bool {
	return p.cur.Type == t
}

func (p *Parser) curIsIdent() bool {
	return p.cur.Type == token.IDENT || p.cur.Type.IsKeyword()
}

func (p *Parser) peek() token.Item {
	return p.lexer.Peek()
}

func (p *Parser) peekIs(t token.Token) bool {
	return p.peek().Type == t
}

// expect consumes the current token if it matches t, recording an error
// (and leaving the cursor in place) otherwise.
func (p *Parser) expect(t token.Token) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf("expected %v, got %v", t, p.cur.Type)
	return false
}

func (p *Parser) errorf(format string, args ...any) {
	p.errors = append(p.errors, ParseError{Pos: p.cur.Pos, Message: fmt.Sprintf(format, args...)})
}

// parseIdent consumes an identifier (or a keyword used as one) and returns
// its literal text.
func (p *Parser) parseIdent() string {
	if !p.curIsIdent() {
		p.errorf("expected identifier, got %v", p.cur.Type)
		return ""
	}
	val := p.cur.Value
	p.advance()
	return val
}

// parseTableRef parses `name [[AS] alias]`.
func (p *Parser) parseTableRef() *ast.TableRef {
	pos := p.cur.Pos
	name := p.parseIdent()
	ref := &ast.TableRef{StartPos: pos, Name: name}
	if p.curIs(token.AS) {
		p.advance()
		ref.Alias = p.parseIdent()
	} else if p.curIsIdent() && !p.isClauseKeyword() {
		ref.Alias = p.parseIdent()
	}
	ref.EndPos = p.cur.Pos
	return ref
}

// isClauseKeyword reports whether the current token starts a clause that
// cannot also be an unmarked table alias (so `FROM t WHERE ...` doesn't
// consume WHERE as an alias).
func (p *Parser) isClauseKeyword() bool {
	switch p.cur.Type {
	case token.WHERE, token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.CROSS,
		token.ON, token.ORDER, token.LIMIT, token.OFFSET, token.SEMICOLON, token.EOF, token.SET:
		return true
	default:
		return false
	}
}

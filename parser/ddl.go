package parser

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/token"
)

// parseCreateTable parses `CREATE TABLE [IF NOT EXISTS] name (col_def, ...)`.
func (p *Parser) parseCreateTable() ast.Statement {
	pos := p.cur.Pos
	p.advance() // CREATE
	if !p.expect(token.TABLE) {
		return nil
	}

	stmt := &ast.CreateTableStmt{StartPos: pos}
	if p.curIs(token.IF) {
		p.advance()
		if !p.expect(token.NOT) {
			return nil
		}
		if !p.expect(token.EXISTS) {
			return nil
		}
		stmt.IfNotExists = true
	}

	stmt.Table = p.parseIdent()

	if !p.expect(token.LPAREN) {
		return nil
	}
	for {
		col := p.parseColumnDef()
		if col == nil {
			return nil
		}
		stmt.Columns = append(stmt.Columns, col)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseColumnDef parses `name TYPE { PRIMARY KEY | UNIQUE | NOT NULL }*`
// in any constraint order; PRIMARY KEY subsumes UNIQUE and NOT NULL.
func (p *Parser) parseColumnDef() *ast.ColumnDef {
	name := p.parseIdent()
	if !token.IsTypeName(p.cur.Type) {
		p.errorf("expected data type, got %v", p.cur.Type)
		return nil
	}
	dataType := p.cur.Value
	p.advance()

	col := &ast.ColumnDef{Name: name, DataType: dataType}
	for {
		switch p.cur.Type {
		case token.PRIMARY:
			p.advance()
			if !p.expect(token.KEY) {
				return nil
			}
			col.PrimaryKey = true
			col.Unique = true
			col.NotNull = true
		case token.UNIQUE:
			p.advance()
			col.Unique = true
		case token.NOT:
			p.advance()
			if !p.expect(token.NULL) {
				return nil
			}
			col.NotNull = true
		default:
			return col
		}
	}
}

// parseDropTable parses `DROP TABLE [IF EXISTS] name`.
func (p *Parser) parseDropTable() ast.Statement {
	pos := p.cur.Pos
	p.advance() // DROP
	if !p.expect(token.TABLE) {
		return nil
	}
	stmt := &ast.DropTableStmt{StartPos: pos}
	if p.curIs(token.IF) {
		p.advance()
		if !p.expect(token.EXISTS) {
			return nil
		}
		stmt.IfExists = true
	}
	stmt.Table = p.parseIdent()
	stmt.EndPos = p.cur.Pos
	return stmt
}

package parser

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/token"
)

// parseInsert parses `INSERT INTO name [(col, ...)] VALUES (expr, ...) [, (...)]...`.
func (p *Parser) parseInsert() ast.Statement {
	pos := p.cur.Pos
	p.advance() // INSERT
	if !p.expect(token.INTO) {
		return nil
	}

	stmt := &ast.InsertStmt{StartPos: pos}
	stmt.Table = p.parseIdent()

	if p.curIs(token.LPAREN) {
		p.advance()
		for {
			stmt.Columns = append(stmt.Columns, p.parseIdent())
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	if !p.expect(token.VALUES) {
		return nil
	}
	for {
		row := p.parseValuesRow()
		if row == nil {
			return nil
		}
		stmt.Values = append(stmt.Values, row)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseValuesRow() []ast.Expr {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var exprs []ast.Expr
	for {
		e := p.parseExpr()
		if e == nil {
			return nil
		}
		exprs = append(exprs, e)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return exprs
}

// parseUpdate parses `UPDATE name SET col = expr, ... [WHERE expr]`.
func (p *Parser) parseUpdate() ast.Statement {
	pos := p.cur.Pos
	p.advance() // UPDATE
	stmt := &ast.UpdateStmt{StartPos: pos}
	stmt.Table = p.parseIdent()

	if !p.expect(token.SET) {
		return nil
	}
	for {
		col := p.parseIdent()
		if !p.expect(token.EQ) {
			return nil
		}
		val := p.parseExpr()
		if val == nil {
			return nil
		}
		stmt.Set = append(stmt.Set, &ast.UpdateExpr{Column: col, Expr: val})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
		if stmt.Where == nil {
			return nil
		}
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

// parseDelete parses `DELETE FROM name [WHERE expr]`.
func (p *Parser) parseDelete() ast.Statement {
	pos := p.cur.Pos
	p.advance() // DELETE
	if !p.expect(token.FROM) {
		return nil
	}
	stmt := &ast.DeleteStmt{StartPos: pos}
	stmt.Table = p.parseIdent()

	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
		if stmt.Where == nil {
			return nil
		}
	}
	stmt.EndPos = p.cur.Pos
	return stmt
}

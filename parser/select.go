package parser

import (
	"strconv"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/token"
)

// parseSelect parses the full SELECT pipeline:
//
//	SELECT select_items [FROM from_clause] [WHERE expr]
//	  [ORDER BY order_item, ...] [LIMIT N] [OFFSET N]
func (p *Parser) parseSelect() ast.Statement {
	pos := p.cur.Pos
	p.advance() // SELECT

	stmt := &ast.SelectStmt{StartPos: pos}
	for {
		item := p.parseSelectItem()
		if item == nil {
			return nil
		}
		stmt.Columns = append(stmt.Columns, item)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if p.curIs(token.FROM) {
		p.advance()
		from := p.parseFromClause()
		if from == nil {
			return nil
		}
		stmt.From = from
	}

	if p.curIs(token.WHERE) {
		p.advance()
		stmt.Where = p.parseExpr()
		if stmt.Where == nil {
			return nil
		}
	}

	if p.curIs(token.ORDER) {
		p.advance()
		if !p.expect(token.BY) {
			return nil
		}
		for {
			item := p.parseOrderByItem()
			if item == nil {
				return nil
			}
			stmt.OrderBy = append(stmt.OrderBy, item)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}

	if p.curIs(token.LIMIT) {
		p.advance()
		n, ok := p.parseIntLiteral()
		if !ok {
			return nil
		}
		stmt.Limit = &n
	}

	if p.curIs(token.OFFSET) {
		p.advance()
		n, ok := p.parseIntLiteral()
		if !ok {
			return nil
		}
		stmt.Offset = &n
	}

	stmt.EndPos = p.cur.Pos
	return stmt
}

func (p *Parser) parseIntLiteral() (int64, bool) {
	if !p.curIs(token.INT) {
		p.errorf("expected integer, got %v", p.cur.Type)
		return 0, false
	}
	n, err := strconv.ParseInt(p.cur.Value, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.cur.Value)
		return 0, false
	}
	p.advance()
	return n, true
}

// parseSelectItem parses `*` | `table.*` | any expression (which covers
// `table.col`, `col`, and parenthesized expressions).
func (p *Parser) parseSelectItem() ast.Expr {
	if p.curIs(token.ASTERISK) {
		pos := p.cur.Pos
		p.advance()
		return &ast.StarExpr{StartPos: pos, EndPos: pos}
	}
	if p.curIsIdent() && p.peekIs(token.DOT) {
		// Could be table.* or table.col; look past the dot.
		pos := p.cur.Pos
		tbl := p.cur.Value
		p.advance() // ident
		p.advance() // dot
		if p.curIs(token.ASTERISK) {
			end := p.cur.Pos
			p.advance()
			return &ast.StarExpr{StartPos: pos, EndPos: end, Table: tbl}
		}
		col := p.parseIdent()
		return &ast.ColumnRef{StartPos: pos, EndPos: p.cur.Pos, Table: tbl, Column: col}
	}
	return p.parseExpr()
}

// parseFromClause parses `table_ref { join }*`.
func (p *Parser) parseFromClause() *ast.FromClause {
	pos := p.cur.Pos
	from := &ast.FromClause{StartPos: pos}
	from.Table = p.parseTableRef()

	for {
		joinType, ok := p.peekJoinType()
		if !ok {
			break
		}
		join := p.parseJoin(joinType)
		if join == nil {
			return nil
		}
		from.Joins = append(from.Joins, join)
	}
	from.EndPos = p.cur.Pos
	return from
}

// peekJoinType reports whether the current token begins a join clause and,
// if so, which kind.
func (p *Parser) peekJoinType() (ast.JoinType, bool) {
	switch p.cur.Type {
	case token.JOIN:
		return ast.JoinInner, true
	case token.INNER:
		return ast.JoinInner, true
	case token.LEFT:
		return ast.JoinLeft, true
	case token.RIGHT:
		return ast.JoinRight, true
	case token.CROSS:
		return ast.JoinCross, true
	default:
		return 0, false
	}
}

func (p *Parser) parseJoin(joinType ast.JoinType) *ast.JoinClause {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.INNER, token.LEFT, token.RIGHT, token.CROSS:
		p.advance()
	}
	if !p.expect(token.JOIN) {
		return nil
	}
	join := &ast.JoinClause{StartPos: pos, Type: joinType}
	join.Table = p.parseTableRef()

	if p.curIs(token.ON) {
		p.advance()
		join.Condition = p.parseExpr()
		if join.Condition == nil {
			return nil
		}
	}
	join.EndPos = p.cur.Pos
	return join
}

func (p *Parser) parseOrderByItem() *ast.OrderByItem {
	e := p.parseExpr()
	if e == nil {
		return nil
	}
	item := &ast.OrderByItem{Expr: e, Direction: ast.Ascending}
	if p.curIs(token.ASC) {
		p.advance()
	} else if p.curIs(token.DESC) {
		item.Direction = ast.Descending
		p.advance()
	}
	return item
}

package parser

import (
	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/token"
)

// parseExpr parses the lowest-precedence production: or_expr.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseOr()
}

// or_expr := and_expr (OR and_expr)*
func (p *Parser) parseOr() ast.Expr {
	left := p.parseAnd()
	if left == nil {
		return nil
	}
	for p.curIs(token.OR) {
		p.advance()
		right := p.parseAnd()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{StartPos: left.Pos(), EndPos: right.End(), Op: ast.OpOr, Left: left, Right: right}
	}
	return left
}

// and_expr := not_expr (AND not_expr)*
func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	if left == nil {
		return nil
	}
	for p.curIs(token.AND) {
		p.advance()
		right := p.parseNot()
		if right == nil {
			return nil
		}
		left = &ast.BinaryExpr{StartPos: left.Pos(), EndPos: right.End(), Op: ast.OpAnd, Left: left, Right: right}
	}
	return left
}

// not_expr := NOT not_expr | comparison
func (p *Parser) parseNot() ast.Expr {
	if p.curIs(token.NOT) {
		pos := p.cur.Pos
		p.advance()
		operand := p.parseNot()
		if operand == nil {
			return nil
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: operand.End(), Op: ast.OpNot, Operand: operand}
	}
	return p.parseComparison()
}

// comparison := primary (IS [NOT] NULL | (= | <> | != | < | <= | > | >= | LIKE) primary)?
func (p *Parser) parseComparison() ast.Expr {
	left := p.parsePrimary()
	if left == nil {
		return nil
	}

	if p.curIs(token.IS) {
		pos := p.cur.Pos
		p.advance()
		op := ast.OpIsNull
		if p.curIs(token.NOT) {
			p.advance()
			op = ast.OpIsNotNull
		}
		if !p.expect(token.NULL) {
			return nil
		}
		return &ast.UnaryExpr{StartPos: pos, EndPos: p.cur.Pos, Op: op, Operand: left}
	}

	op, ok := p.peekCompareOp()
	if !ok {
		return left
	}
	p.advance()
	right := p.parsePrimary()
	if right == nil {
		return nil
	}
	return &ast.BinaryExpr{StartPos: left.Pos(), EndPos: right.End(), Op: op, Left: left, Right: right}
}

func (p *Parser) peekCompareOp() (ast.BinaryOp, bool) {
	switch p.cur.Type {
	case token.EQ:
		return ast.OpEq, true
	case token.NEQ:
		return ast.OpNeq, true
	case token.LT:
		return ast.OpLt, true
	case token.LTE:
		return ast.OpLte, true
	case token.GT:
		return ast.OpGt, true
	case token.GTE:
		return ast.OpGte, true
	case token.LIKE:
		return ast.OpLike, true
	default:
		return 0, false
	}
}

// primary := ( expr ) | NULL | TRUE | FALSE | number | string | [identifier .] identifier
func (p *Parser) parsePrimary() ast.Expr {
	pos := p.cur.Pos
	switch p.cur.Type {
	case token.LPAREN:
		p.advance()
		inner := p.parseExpr()
		if inner == nil {
			return nil
		}
		end := p.cur.Pos
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.ParenExpr{StartPos: pos, EndPos: end, Expr: inner}
	case token.NULL:
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralNull}
	case token.TRUE:
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralBool, Value: "true"}
	case token.FALSE:
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralBool, Value: "false"}
	case token.INT:
		val := p.cur.Value
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralInt, Value: val}
	case token.FLOAT:
		val := p.cur.Value
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralFloat, Value: val}
	case token.STRING:
		val := p.cur.Value
		p.advance()
		return &ast.Literal{StartPos: pos, EndPos: pos, Kind: ast.LiteralString, Value: val}
	default:
		if p.curIsIdent() {
			return p.parseColumnRef()
		}
		p.errorf("unexpected token %v in expression", p.cur.Type)
		return nil
	}
}

func (p *Parser) parseColumnRef() ast.Expr {
	pos := p.cur.Pos
	first := p.parseIdent()
	if p.curIs(token.DOT) {
		p.advance()
		second := p.parseIdent()
		return &ast.ColumnRef{StartPos: pos, EndPos: p.cur.Pos, Table: first, Column: second}
	}
	return &ast.ColumnRef{StartPos: pos, EndPos: p.cur.Pos, Column: first}
}

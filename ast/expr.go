package ast

import "github.com/miniql/miniql/token"

// LiteralKind distinguishes the domain of a literal.
type LiteralKind int

const (
	LiteralNull LiteralKind = iota
	LiteralInt
	LiteralFloat
	LiteralString
	LiteralBool
)

// Literal is a constant value appearing in an expression.
type Literal struct {
	StartPos token.Pos
	EndPos   token.Pos
	Kind     LiteralKind
	Value    string // raw text; interpreted by the executor/type system
}

func (*Literal) exprNode()        {}
func (l *Literal) Pos() token.Pos { return l.StartPos }
func (l *Literal) End() token.Pos { return l.EndPos }

// ColumnRef is a possibly-qualified column reference: `col` or `table.col`.
type ColumnRef struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string // empty when unqualified
	Column   string
}

func (*ColumnRef) exprNode()        {}
func (c *ColumnRef) Pos() token.Pos { return c.StartPos }
func (c *ColumnRef) End() token.Pos { return c.EndPos }

// StarExpr is `*` or `table.*` in a SELECT list.
type StarExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string // empty for bare `*`
}

func (*StarExpr) exprNode()        {}
func (s *StarExpr) Pos() token.Pos { return s.StartPos }
func (s *StarExpr) End() token.Pos { return s.EndPos }

// BinaryOp enumerates the dialect's binary operators.
type BinaryOp int

const (
	OpEq BinaryOp = iota
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpLike
	OpAnd
	OpOr
)

func (op BinaryOp) String() string {
	switch op {
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpLike:
		return "LIKE"
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return "?"
	}
}

// BinaryExpr is a two-operand expression: comparison, AND, OR, LIKE.
type BinaryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       BinaryOp
	Left     Expr
	Right    Expr
}

func (*BinaryExpr) exprNode()        {}
func (b *BinaryExpr) Pos() token.Pos { return b.StartPos }
func (b *BinaryExpr) End() token.Pos { return b.EndPos }

// UnaryOp enumerates the dialect's unary operators.
type UnaryOp int

const (
	OpNot UnaryOp = iota
	OpIsNull
	OpIsNotNull
)

func (op UnaryOp) String() string {
	switch op {
	case OpNot:
		return "NOT"
	case OpIsNull:
		return "IS NULL"
	case OpIsNotNull:
		return "IS NOT NULL"
	default:
		return "?"
	}
}

// UnaryExpr is NOT expr, expr IS NULL, or expr IS NOT NULL.
// For IS [NOT] NULL, Operand holds the tested expression.
type UnaryExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Op       UnaryOp
	Operand  Expr
}

func (*UnaryExpr) exprNode()        {}
func (u *UnaryExpr) Pos() token.Pos { return u.StartPos }
func (u *UnaryExpr) End() token.Pos { return u.EndPos }

// ParenExpr is a parenthesized expression, kept so formatting round-trips
// distinguish `(a OR b) AND c` from `a OR b AND c`.
type ParenExpr struct {
	StartPos token.Pos
	EndPos   token.Pos
	Expr     Expr
}

func (*ParenExpr) exprNode()        {}
func (p *ParenExpr) Pos() token.Pos { return p.StartPos }
func (p *ParenExpr) End() token.Pos { return p.EndPos }

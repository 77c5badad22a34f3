package ast

import "github.com/miniql/miniql/token"

// ColumnDef is one column in a CREATE TABLE column list.
type ColumnDef struct {
	Name       string
	DataType   string // raw type spelling, e.g. "INTEGER", "VARCHAR"
	PrimaryKey bool
	Unique     bool
	NotNull    bool
}

// CreateTableStmt is `CREATE TABLE [IF NOT EXISTS] name (col_def, ...)`.
type CreateTableStmt struct {
	StartPos    token.Pos
	EndPos      token.Pos
	IfNotExists bool
	Table       string
	Columns     []*ColumnDef
}

func (*CreateTableStmt) statementNode()   {}
func (s *CreateTableStmt) Pos() token.Pos { return s.StartPos }
func (s *CreateTableStmt) End() token.Pos { return s.EndPos }

// DropTableStmt is `DROP TABLE [IF EXISTS] name`.
type DropTableStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	IfExists bool
	Table    string
}

func (*DropTableStmt) statementNode()   {}
func (s *DropTableStmt) Pos() token.Pos { return s.StartPos }
func (s *DropTableStmt) End() token.Pos { return s.EndPos }

// InsertStmt is `INSERT INTO name [(col, ...)] VALUES (expr, ...) [, (...)]`.
type InsertStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Columns  []string // explicit column list; nil means schema order
	Values   [][]Expr // one slice of expressions per VALUES row
}

func (*InsertStmt) statementNode()   {}
func (s *InsertStmt) Pos() token.Pos { return s.StartPos }
func (s *InsertStmt) End() token.Pos { return s.EndPos }

// TableRef is a table name with an optional alias, used in FROM and JOIN.
type TableRef struct {
	StartPos token.Pos
	EndPos   token.Pos
	Name     string
	Alias    string // empty when no alias given
}

func (t *TableRef) Pos() token.Pos { return t.StartPos }
func (t *TableRef) End() token.Pos { return t.EndPos }

// EffectiveName returns the alias if set, else the table name.
func (t *TableRef) EffectiveName() string {
	if t.Alias != "" {
		return t.Alias
	}
	return t.Name
}

// JoinType enumerates the supported join kinds.
type JoinType int

const (
	JoinInner JoinType = iota
	JoinLeft
	JoinRight
	JoinCross
)

func (j JoinType) String() string {
	switch j {
	case JoinInner:
		return "INNER"
	case JoinLeft:
		return "LEFT"
	case JoinRight:
		return "RIGHT"
	case JoinCross:
		return "CROSS"
	default:
		return "?"
	}
}

// JoinClause is one `[INNER|LEFT|RIGHT|CROSS] JOIN table_ref [ON expr]`.
type JoinClause struct {
	StartPos  token.Pos
	EndPos    token.Pos
	Type      JoinType
	Table     *TableRef
	Condition Expr // nil when ON was omitted (treated as always-true)
}

func (j *JoinClause) Pos() token.Pos { return j.StartPos }
func (j *JoinClause) End() token.Pos { return j.EndPos }

// FromClause is the base table plus zero or more joins.
type FromClause struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    *TableRef
	Joins    []*JoinClause
}

func (f *FromClause) Pos() token.Pos { return f.StartPos }
func (f *FromClause) End() token.Pos { return f.EndPos }

// OrderDirection is ASC or DESC.
type OrderDirection int

const (
	Ascending OrderDirection = iota
	Descending
)

// OrderByItem is one key of an ORDER BY list.
type OrderByItem struct {
	Expr      Expr
	Direction OrderDirection
}

// SelectStmt is the full SELECT pipeline statement.
type SelectStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Columns  []Expr // select list; *, table.*, table.col, col, or any expr
	From     *FromClause // nil for a FROM-less constant SELECT
	Where    Expr
	OrderBy  []*OrderByItem
	Limit    *int64 // nil means unspecified (all remaining rows)
	Offset   *int64 // nil means unspecified (no rows dropped)
}

func (*SelectStmt) statementNode()   {}
func (s *SelectStmt) Pos() token.Pos { return s.StartPos }
func (s *SelectStmt) End() token.Pos { return s.EndPos }

// UpdateExpr is one `col = expr` assignment in SET.
type UpdateExpr struct {
	Column string
	Expr   Expr
}

// UpdateStmt is `UPDATE name SET col = expr, ... [WHERE expr]`.
type UpdateStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Set      []*UpdateExpr
	Where    Expr
}

func (*UpdateStmt) statementNode()   {}
func (s *UpdateStmt) Pos() token.Pos { return s.StartPos }
func (s *UpdateStmt) End() token.Pos { return s.EndPos }

// DeleteStmt is `DELETE FROM name [WHERE expr]`.
type DeleteStmt struct {
	StartPos token.Pos
	EndPos   token.Pos
	Table    string
	Where    Expr
}

func (*DeleteStmt) statementNode()   {}
func (s *DeleteStmt) Pos() token.Pos { return s.StartPos }
func (s *DeleteStmt) End() token.Pos { return s.EndPos }

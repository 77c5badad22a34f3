// Package format renders AST nodes back to SQL text, supporting the
// parse-format-reparse round trip the engine's tests rely on.
package format

import (
	"strconv"
	"strings"

	"github.com/miniql/miniql/ast"
)

// String formats any AST node (statement or expression) as SQL text.
func String(n ast.Node) string {
	var b strings.Builder
	write(&b, n)
	return b.String()
}

func write(b *strings.Builder, n ast.Node) {
	switch v := n.(type) {
	case *ast.CreateTableStmt:
		writeCreateTable(b, v)
	case *ast.DropTableStmt:
		writeDropTable(b, v)
	case *ast.InsertStmt:
		writeInsert(b, v)
	case *ast.SelectStmt:
		writeSelect(b, v)
	case *ast.UpdateStmt:
		writeUpdate(b, v)
	case *ast.DeleteStmt:
		writeDelete(b, v)
	case *ast.Literal:
		writeLiteral(b, v)
	case *ast.ColumnRef:
		writeColumnRef(b, v)
	case *ast.StarExpr:
		writeStar(b, v)
	case *ast.BinaryExpr:
		writeBinary(b, v)
	case *ast.UnaryExpr:
		writeUnary(b, v)
	case *ast.ParenExpr:
		b.WriteByte('(')
		write(b, v.Expr)
		b.WriteByte(')')
	default:
		b.WriteString("<?>")
	}
}

func writeCreateTable(b *strings.Builder, s *ast.CreateTableStmt) {
	b.WriteString("CREATE TABLE ")
	if s.IfNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(s.Table)
	b.WriteString(" (")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Name)
		b.WriteByte(' ')
		b.WriteString(c.DataType)
		if c.PrimaryKey {
			b.WriteString(" PRIMARY KEY")
		} else {
			if c.Unique {
				b.WriteString(" UNIQUE")
			}
			if c.NotNull {
				b.WriteString(" NOT NULL")
			}
		}
	}
	b.WriteByte(')')
}

func writeDropTable(b *strings.Builder, s *ast.DropTableStmt) {
	b.WriteString("DROP TABLE ")
	if s.IfExists {
		b.WriteString("IF EXISTS ")
	}
	b.WriteString(s.Table)
}

func writeInsert(b *strings.Builder, s *ast.InsertStmt) {
	b.WriteString("INSERT INTO ")
	b.WriteString(s.Table)
	if len(s.Columns) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(s.Columns, ", "))
		b.WriteByte(')')
	}
	b.WriteString(" VALUES ")
	for i, row := range s.Values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, e := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			write(b, e)
		}
		b.WriteByte(')')
	}
}

func writeSelect(b *strings.Builder, s *ast.SelectStmt) {
	b.WriteString("SELECT ")
	for i, c := range s.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		write(b, c)
	}
	if s.From != nil {
		b.WriteString(" FROM ")
		writeTableRef(b, s.From.Table)
		for _, j := range s.From.Joins {
			b.WriteByte(' ')
			b.WriteString(j.Type.String())
			b.WriteString(" JOIN ")
			writeTableRef(b, j.Table)
			if j.Condition != nil {
				b.WriteString(" ON ")
				write(b, j.Condition)
			}
		}
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		write(b, s.Where)
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		for i, o := range s.OrderBy {
			if i > 0 {
				b.WriteString(", ")
			}
			write(b, o.Expr)
			if o.Direction == ast.Descending {
				b.WriteString(" DESC")
			} else {
				b.WriteString(" ASC")
			}
		}
	}
	if s.Limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.FormatInt(*s.Limit, 10))
	}
	if s.Offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(strconv.FormatInt(*s.Offset, 10))
	}
}

func writeTableRef(b *strings.Builder, t *ast.TableRef) {
	b.WriteString(t.Name)
	if t.Alias != "" {
		b.WriteString(" AS ")
		b.WriteString(t.Alias)
	}
}

func writeUpdate(b *strings.Builder, s *ast.UpdateStmt) {
	b.WriteString("UPDATE ")
	b.WriteString(s.Table)
	b.WriteString(" SET ")
	for i, u := range s.Set {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(u.Column)
		b.WriteString(" = ")
		write(b, u.Expr)
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		write(b, s.Where)
	}
}

func writeDelete(b *strings.Builder, s *ast.DeleteStmt) {
	b.WriteString("DELETE FROM ")
	b.WriteString(s.Table)
	if s.Where != nil {
		b.WriteString(" WHERE ")
		write(b, s.Where)
	}
}

func writeLiteral(b *strings.Builder, l *ast.Literal) {
	switch l.Kind {
	case ast.LiteralNull:
		b.WriteString("NULL")
	case ast.LiteralString:
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(l.Value, "'", "''"))
		b.WriteByte('\'')
	default:
		b.WriteString(l.Value)
	}
}

func writeColumnRef(b *strings.Builder, c *ast.ColumnRef) {
	if c.Table != "" {
		b.WriteString(c.Table)
		b.WriteByte('.')
	}
	b.WriteString(c.Column)
}

func writeStar(b *strings.Builder, s *ast.StarExpr) {
	if s.Table != "" {
		b.WriteString(s.Table)
		b.WriteByte('.')
	}
	b.WriteByte('*')
}

func writeBinary(b *strings.Builder, e *ast.BinaryExpr) {
	write(b, e.Left)
	b.WriteByte(' ')
	b.WriteString(e.Op.String())
	b.WriteByte(' ')
	write(b, e.Right)
}

func writeUnary(b *strings.Builder, e *ast.UnaryExpr) {
	switch e.Op {
	case ast.OpNot:
		b.WriteString("NOT ")
		write(b, e.Operand)
	case ast.OpIsNull:
		write(b, e.Operand)
		b.WriteString(" IS NULL")
	case ast.OpIsNotNull:
		write(b, e.Operand)
		b.WriteString(" IS NOT NULL")
	}
}

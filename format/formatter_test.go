package format_test

import (
	"testing"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/format"
	"github.com/miniql/miniql/parser"
)

func roundTrip(t *testing.T, sql string) (ast.Statement, ast.Statement) {
	t.Helper()
	p1 := parser.New(sql)
	first, err := p1.Parse()
	if err != nil {
		t.Fatalf("first parse of %q: %v", sql, err)
	}
	rendered := format.String(first)
	p2 := parser.New(rendered)
	second, err := p2.Parse()
	if err != nil {
		t.Fatalf("reparse of rendered %q (from %q): %v", rendered, sql, err)
	}
	return first, second
}

func TestRoundTripCreateTable(t *testing.T) {
	first, second := roundTrip(t, `CREATE TABLE IF NOT EXISTS users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`)
	a := first.(*ast.CreateTableStmt)
	b := second.(*ast.CreateTableStmt)
	if a.Table != b.Table || len(a.Columns) != len(b.Columns) {
		t.Fatalf("mismatch: %+v vs %+v", a, b)
	}
	for i := range a.Columns {
		if a.Columns[i].Name != b.Columns[i].Name || a.Columns[i].DataType != b.Columns[i].DataType ||
			a.Columns[i].PrimaryKey != b.Columns[i].PrimaryKey || a.Columns[i].Unique != b.Columns[i].Unique ||
			a.Columns[i].NotNull != b.Columns[i].NotNull {
			t.Fatalf("column %d mismatch: %+v vs %+v", i, a.Columns[i], b.Columns[i])
		}
	}
}

func TestRoundTripSelectWithJoinAndOrder(t *testing.T) {
	first, second := roundTrip(t, `SELECT u.name, o.total FROM users u LEFT JOIN orders o ON u.id = o.user_id WHERE o.total > 100 AND u.name LIKE 'A%' ORDER BY o.total DESC LIMIT 5 OFFSET 2`)
	a := first.(*ast.SelectStmt)
	b := second.(*ast.SelectStmt)
	if len(a.Columns) != len(b.Columns) {
		t.Fatalf("column count mismatch")
	}
	if a.From.Table.Name != b.From.Table.Name || a.From.Table.Alias != b.From.Table.Alias {
		t.Fatalf("from mismatch: %+v vs %+v", a.From.Table, b.From.Table)
	}
	if len(a.From.Joins) != len(b.From.Joins) || a.From.Joins[0].Type != b.From.Joins[0].Type {
		t.Fatalf("join mismatch")
	}
	if (a.Limit == nil) != (b.Limit == nil) || *a.Limit != *b.Limit {
		t.Fatalf("limit mismatch")
	}
	if (a.Offset == nil) != (b.Offset == nil) || *a.Offset != *b.Offset {
		t.Fatalf("offset mismatch")
	}
	if len(a.OrderBy) != len(b.OrderBy) || a.OrderBy[0].Direction != b.OrderBy[0].Direction {
		t.Fatalf("order by mismatch")
	}
}

func TestRoundTripInsert(t *testing.T) {
	first, second := roundTrip(t, `INSERT INTO users (id, name) VALUES (1, 'Alice''s'), (2, NULL)`)
	a := first.(*ast.InsertStmt)
	b := second.(*ast.InsertStmt)
	if len(a.Values) != len(b.Values) || len(a.Columns) != len(b.Columns) {
		t.Fatalf("mismatch: %+v vs %+v", a, b)
	}
}

func TestRoundTripUpdateDelete(t *testing.T) {
	roundTrip(t, `UPDATE users SET name = 'Bob' WHERE id = 1`)
	roundTrip(t, `DELETE FROM users WHERE id IS NULL`)
}

func TestFormatStringEscapesQuotes(t *testing.T) {
	stmt := &ast.InsertStmt{
		Table:  "t",
		Values: [][]ast.Expr{{&ast.Literal{Kind: ast.LiteralString, Value: "it's"}}},
	}
	out := format.String(stmt)
	want := `INSERT INTO t VALUES ('it''s')`
	if out != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}

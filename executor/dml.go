package executor

import (
	"fmt"
	"log/slog"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/types"
)

func (e *Executor) executeInsert(stmt *ast.InsertStmt) (*Result, error) {
	table, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}
	schema := table.Schema()

	columns := stmt.Columns
	if len(columns) == 0 {
		columns = schema.ColumnNames()
	}

	inserted := 0
	for _, row := range stmt.Values {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("column count (%d) doesn't match value count (%d)", len(columns), len(row))
		}
		values := make(map[string]types.Value, len(columns))
		for i, colName := range columns {
			v, err := evaluate(row[i], nil, nil)
			if err != nil {
				return nil, err
			}
			values[colName] = v
		}
		if _, err := table.Insert(values); err != nil {
			return nil, err
		}
		inserted++
	}

	slog.Info("rows inserted", "stmt", "INSERT", "table", stmt.Table, "rows_affected", inserted)
	return &Result{Affected: inserted, Message: fmt.Sprintf("inserted %d row(s)", inserted)}, nil
}

func (e *Executor) executeUpdate(stmt *ast.UpdateStmt) (*Result, error) {
	table, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}

	s := newScope(e.db)
	s.tables[normalizedName(stmt.Table)] = table
	s.order = []string{normalizedName(stmt.Table)}
	prefix := normalizedName(stmt.Table)

	updated := 0
	for _, row := range table.Scan() {
		wr := rowToWorkingRow(row, prefix)

		if stmt.Where != nil {
			v, err := evaluate(stmt.Where, s, wr)
			if err != nil {
				return nil, err
			}
			if !truthy(v) {
				continue
			}
		}

		updates := make(map[string]types.Value, len(stmt.Set))
		for _, assign := range stmt.Set {
			v, err := evaluate(assign.Expr, s, wr)
			if err != nil {
				return nil, err
			}
			updates[assign.Column] = v
		}
		if _, err := table.Update(row.RowID, updates); err != nil {
			return nil, err
		}
		updated++
	}

	slog.Info("rows updated", "stmt", "UPDATE", "table", stmt.Table, "rows_affected", updated)
	return &Result{Affected: updated, Message: fmt.Sprintf("updated %d row(s)", updated)}, nil
}

func (e *Executor) executeDelete(stmt *ast.DeleteStmt) (*Result, error) {
	table, err := e.db.GetTable(stmt.Table)
	if err != nil {
		return nil, err
	}

	s := newScope(e.db)
	prefix := normalizedName(stmt.Table)
	s.tables[prefix] = table
	s.order = []string{prefix}

	var toDelete []int64
	for _, row := range table.Scan() {
		wr := rowToWorkingRow(row, prefix)
		if stmt.Where != nil {
			v, err := evaluate(stmt.Where, s, wr)
			if err != nil {
				return nil, err
			}
			if !truthy(v) {
				continue
			}
		}
		toDelete = append(toDelete, row.RowID)
	}

	for _, id := range toDelete {
		table.Delete(id)
	}

	slog.Info("rows deleted", "stmt", "DELETE", "table", stmt.Table, "rows_affected", len(toDelete))
	return &Result{Affected: len(toDelete), Message: fmt.Sprintf("deleted %d row(s)", len(toDelete))}, nil
}

package executor

import (
	"fmt"
	"log/slog"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

func (e *Executor) executeCreateTable(stmt *ast.CreateTableStmt) (*Result, error) {
	if stmt.IfNotExists && e.db.HasTable(stmt.Table) {
		slog.Debug("create table skipped, already exists", "stmt", "CREATE TABLE", "table", stmt.Table)
		return &Result{Message: fmt.Sprintf("table %q already exists", stmt.Table)}, nil
	}

	columns := make([]storage.Column, len(stmt.Columns))
	for i, cd := range stmt.Columns {
		dt, ok := types.ParseDataType(cd.DataType)
		if !ok {
			return nil, &errs.DataTypeError{Expected: "a known data type", Actual: cd.DataType, Column: cd.Name}
		}
		columns[i] = storage.Column{
			Name:       cd.Name,
			DataType:   dt,
			PrimaryKey: cd.PrimaryKey,
			Unique:     cd.Unique,
			NotNull:    cd.NotNull,
		}
	}

	schema := storage.NewTableSchema(stmt.Table, columns)
	if _, err := e.db.CreateTable(schema); err != nil {
		slog.Error("create table failed", "stmt", "CREATE TABLE", "table", stmt.Table, "error", err)
		return nil, err
	}
	slog.Info("table created", "stmt", "CREATE TABLE", "table", stmt.Table)
	return &Result{Message: fmt.Sprintf("table %q created", stmt.Table)}, nil
}

func (e *Executor) executeDropTable(stmt *ast.DropTableStmt) (*Result, error) {
	if stmt.IfExists && !e.db.HasTable(stmt.Table) {
		slog.Debug("drop table skipped, does not exist", "stmt", "DROP TABLE", "table", stmt.Table)
		return &Result{Message: fmt.Sprintf("table %q does not exist", stmt.Table)}, nil
	}
	if err := e.db.DropTable(stmt.Table); err != nil {
		slog.Error("drop table failed", "stmt", "DROP TABLE", "table", stmt.Table, "error", err)
		return nil, err
	}
	slog.Info("table dropped", "stmt", "DROP TABLE", "table", stmt.Table)
	return &Result{Message: fmt.Sprintf("table %q dropped", stmt.Table)}, nil
}

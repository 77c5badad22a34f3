// Package executor runs parsed statements against storage: DDL against
// the catalog, DML against table rows, and SELECT through a scan / join /
// filter / order / offset / limit / project pipeline.
package executor

import (
	"fmt"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

// Result is the outcome of executing one statement. SELECT populates
// Columns and Rows; DDL/DML populate Affected and Message.
type Result struct {
	Columns  []string
	Rows     [][]types.Value
	Affected int
	Message  string
}

// Executor runs statements against a single database.
type Executor struct {
	db *storage.Database
}

// New creates an executor over db. A nil db gets a fresh, empty database.
func New(db *storage.Database) *Executor {
	if db == nil {
		db = storage.NewDatabase()
	}
	return &Executor{db: db}
}

// DB returns the executor's underlying database.
func (e *Executor) DB() *storage.Database { return e.db }

// Execute dispatches stmt to the handler for its concrete type.
func (e *Executor) Execute(stmt ast.Statement) (*Result, error) {
	switch s := stmt.(type) {
	case *ast.CreateTableStmt:
		return e.executeCreateTable(s)
	case *ast.DropTableStmt:
		return e.executeDropTable(s)
	case *ast.InsertStmt:
		return e.executeInsert(s)
	case *ast.SelectStmt:
		return e.executeSelect(s)
	case *ast.UpdateStmt:
		return e.executeUpdate(s)
	case *ast.DeleteStmt:
		return e.executeDelete(s)
	default:
		return nil, fmt.Errorf("executor: unknown statement type %T", stmt)
	}
}

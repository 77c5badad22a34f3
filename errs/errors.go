// Package errs defines the engine's closed error taxonomy: syntax errors
// from the parser, semantic errors from name resolution, constraint
// violations from the storage layer, and data type errors from value
// coercion. Each is a concrete type with structured fields so callers can
// inspect them with errors.As instead of parsing messages.
package errs

import (
	"fmt"

	"github.com/miniql/miniql/token"
)

// SemanticError is raised when SQL is syntactically valid but refers to
// something that does not exist or is ambiguous.
type SemanticError struct {
	Message string
}

func (e *SemanticError) Error() string { return e.Message }

// TableNotFound reports a reference to a table that does not exist.
type TableNotFound struct {
	Table string
}

func (e *TableNotFound) Error() string {
	return fmt.Sprintf("table %q does not exist", e.Table)
}

// TableExists reports CREATE TABLE against a name already in the catalog.
type TableExists struct {
	Table string
}

func (e *TableExists) Error() string {
	return fmt.Sprintf("table %q already exists", e.Table)
}

// ColumnNotFound reports a reference to a column that does not exist,
// optionally scoped to a table.
type ColumnNotFound struct {
	Column string
	Table  string // empty when the reference was unqualified
}

func (e *ColumnNotFound) Error() string {
	if e.Table != "" {
		return fmt.Sprintf("column %q does not exist in table %q", e.Column, e.Table)
	}
	return fmt.Sprintf("column %q does not exist", e.Column)
}

// AmbiguousColumn reports an unqualified column reference that matches
// more than one table in a join's scope.
type AmbiguousColumn struct {
	Column string
}

func (e *AmbiguousColumn) Error() string {
	return fmt.Sprintf("ambiguous column reference: %q", e.Column)
}

// ConstraintViolation is the base shape shared by the three constraint
// violation kinds below; it is not itself returned but documents the
// family.
type ConstraintViolation struct {
	Message string
}

func (e *ConstraintViolation) Error() string { return e.Message }

// PrimaryKeyViolation reports a duplicate primary key value on insert or
// update.
type PrimaryKeyViolation struct {
	Column string
	Value  string
}

func (e *PrimaryKeyViolation) Error() string {
	return fmt.Sprintf("PRIMARY KEY violation: duplicate value %q for column %q", e.Value, e.Column)
}

// UniqueViolation reports a duplicate value in a UNIQUE column.
type UniqueViolation struct {
	Column string
	Value  string
}

func (e *UniqueViolation) Error() string {
	return fmt.Sprintf("UNIQUE constraint violation: duplicate value %q for column %q", e.Value, e.Column)
}

// NotNullViolation reports a NULL written to a NOT NULL column.
type NotNullViolation struct {
	Column string
}

func (e *NotNullViolation) Error() string {
	return fmt.Sprintf("NOT NULL constraint violation: column %q cannot be NULL", e.Column)
}

// DataTypeError reports a value that cannot be coerced to a column's
// declared type.
type DataTypeError struct {
	Expected string
	Actual   string // textual rendering of the offending value
	Column   string // empty when no column context is available
}

func (e *DataTypeError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("type error for column %q: expected %s, got %s", e.Column, e.Expected, e.Actual)
	}
	return fmt.Sprintf("type error: expected %s, got %s", e.Expected, e.Actual)
}

// SyntaxError reports a lexical or grammatical error at a specific source
// position. It has the same Pos and Message fields as the parser's own
// ParseError; the parser itself returns parser.ParseError, not this type.
type SyntaxError struct {
	Pos     token.Pos
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

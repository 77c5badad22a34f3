// Package storage implements the catalog, row storage, and constraint
// enforcement for the engine's tables.
package storage

import (
	"strings"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/types"
)

// Column describes one column of a table schema.
type Column struct {
	Name       string
	DataType   types.DataType
	PrimaryKey bool
	Unique     bool
	NotNull    bool
}

// normalize applies the primary-key-implies-unique-and-not-null rule.
func (c Column) normalize() Column {
	if c.PrimaryKey {
		c.Unique = true
		c.NotNull = true
	}
	return c
}

// TableSchema is the column layout of one table, with lookup structures
// built once at creation time.
type TableSchema struct {
	Name          string
	Columns       []Column
	columnIndex   map[string]int // lower-cased name -> index in Columns
	primaryKey    *Column
	uniqueColumns map[string]bool
}

// NewTableSchema builds a schema, applying the primary-key-implies-unique
// rule and indexing columns case-insensitively.
func NewTableSchema(name string, columns []Column) *TableSchema {
	s := &TableSchema{
		Name:          name,
		columnIndex:   make(map[string]int, len(columns)),
		uniqueColumns: make(map[string]bool),
	}
	for i, col := range columns {
		col = col.normalize()
		columns[i] = col
		key := strings.ToLower(col.Name)
		s.columnIndex[key] = i
		if col.PrimaryKey {
			pk := col
			s.primaryKey = &pk
		}
		if col.Unique {
			s.uniqueColumns[key] = true
		}
	}
	s.Columns = columns
	return s
}

// GetColumn looks up a column by name, case-insensitively.
func (s *TableSchema) GetColumn(name string) (Column, error) {
	i, ok := s.columnIndex[strings.ToLower(name)]
	if !ok {
		return Column{}, &errs.ColumnNotFound{Column: name, Table: s.Name}
	}
	return s.Columns[i], nil
}

// HasColumn reports whether name is a column of this schema.
func (s *TableSchema) HasColumn(name string) bool {
	_, ok := s.columnIndex[strings.ToLower(name)]
	return ok
}

// PrimaryKey returns the primary key column, or nil if the table has
// none.
func (s *TableSchema) PrimaryKey() *Column { return s.primaryKey }

// IsUnique reports whether name carries a UNIQUE (or PRIMARY KEY)
// constraint.
func (s *TableSchema) IsUnique(name string) bool {
	return s.uniqueColumns[strings.ToLower(name)]
}

// ColumnNames returns the column names in declaration order.
func (s *TableSchema) ColumnNames() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// Catalog is the registry of table schemas, keyed case-insensitively.
type Catalog struct {
	tables map[string]*TableSchema
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*TableSchema)}
}

func (c *Catalog) CreateTable(schema *TableSchema) error {
	key := strings.ToLower(schema.Name)
	if _, exists := c.tables[key]; exists {
		return &errs.TableExists{Table: schema.Name}
	}
	c.tables[key] = schema
	return nil
}

func (c *Catalog) DropTable(name string) error {
	key := strings.ToLower(name)
	if _, exists := c.tables[key]; !exists {
		return &errs.TableNotFound{Table: name}
	}
	delete(c.tables, key)
	return nil
}

func (c *Catalog) GetTable(name string) (*TableSchema, error) {
	key := strings.ToLower(name)
	s, ok := c.tables[key]
	if !ok {
		return nil, &errs.TableNotFound{Table: name}
	}
	return s, nil
}

func (c *Catalog) HasTable(name string) bool {
	_, ok := c.tables[strings.ToLower(name)]
	return ok
}

func (c *Catalog) ListTables() []string {
	out := make([]string, 0, len(c.tables))
	for _, s := range c.tables {
		out = append(out, s.Name)
	}
	return out
}

func (c *Catalog) Clear() {
	c.tables = make(map[string]*TableSchema)
}

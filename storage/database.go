package storage

import "strings"

// Database aggregates a catalog of schemas with the row storage for each
// table.
type Database struct {
	Catalog    *Catalog
	tables     map[string]*Table
	indexOrder int
}

// NewDatabase returns an empty database whose tables build indexes at the
// default B-tree order.
func NewDatabase() *Database {
	return NewDatabaseWithIndexOrder(defaultIndexOrder)
}

// NewDatabaseWithIndexOrder is like NewDatabase but lets the caller tune
// the branching factor used for every index the database's tables create
// (see config.EngineConfig.BTreeOrder).
func NewDatabaseWithIndexOrder(indexOrder int) *Database {
	return &Database{Catalog: NewCatalog(), tables: make(map[string]*Table), indexOrder: indexOrder}
}

// CreateTable registers schema in the catalog and allocates its storage.
func (d *Database) CreateTable(schema *TableSchema) (*Table, error) {
	if err := d.Catalog.CreateTable(schema); err != nil {
		return nil, err
	}
	table := NewTableWithIndexOrder(schema, d.indexOrder)
	d.tables[strings.ToLower(schema.Name)] = table
	return table, nil
}

// DropTable removes a table's schema and storage.
func (d *Database) DropTable(name string) error {
	if err := d.Catalog.DropTable(name); err != nil {
		return err
	}
	delete(d.tables, strings.ToLower(name))
	return nil
}

// GetTable returns the storage for an existing table.
func (d *Database) GetTable(name string) (*Table, error) {
	if _, err := d.Catalog.GetTable(name); err != nil {
		return nil, err
	}
	return d.tables[strings.ToLower(name)], nil
}

// HasTable reports whether name is a known table.
func (d *Database) HasTable(name string) bool { return d.Catalog.HasTable(name) }

// ListTables returns all table names.
func (d *Database) ListTables() []string { return d.Catalog.ListTables() }

// GetSchema returns the schema for a table.
func (d *Database) GetSchema(name string) (*TableSchema, error) { return d.Catalog.GetTable(name) }

// Clear removes every table from the database.
func (d *Database) Clear() {
	d.Catalog.Clear()
	d.tables = make(map[string]*Table)
}

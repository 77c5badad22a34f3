package storage

import (
	"sort"
	"strings"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/index"
	"github.com/miniql/miniql/types"
)

// Row is one stored record: a row ID plus its column values, keyed
// case-insensitively.
type Row struct {
	RowID int64
	data  map[string]types.Value
}

func newRow(rowID int64) *Row {
	return &Row{RowID: rowID, data: make(map[string]types.Value)}
}

// Get returns the value of column, and whether it was present at all
// (columns always have an entry once a row is inserted, so false means
// the column name is unknown to this row).
func (r *Row) Get(column string) (types.Value, bool) {
	v, ok := r.data[strings.ToLower(column)]
	return v, ok
}

func (r *Row) set(column string, v types.Value) {
	r.data[strings.ToLower(column)] = v
}

// Columns returns the row's column names (lower-cased storage keys).
func (r *Row) Columns() []string {
	out := make([]string, 0, len(r.data))
	for k := range r.data {
		out = append(out, k)
	}
	return out
}

// Copy returns a shallow copy of the row, safe to mutate independently.
func (r *Row) Copy() *Row {
	cp := newRow(r.RowID)
	for k, v := range r.data {
		cp.data[k] = v
	}
	return cp
}

// defaultIndexOrder is used for every index the table creates
// automatically for primary-key and unique columns.
const defaultIndexOrder = 32

// Table is in-memory row storage for one table, with constraint
// enforcement and secondary indexes on its primary key and unique
// columns.
type Table struct {
	schema       *TableSchema
	rows         map[int64]*Row
	nextRowID    int64
	indexes      *index.Manager
	uniqueValues map[string]map[types.Value]bool // lower column name -> seen values
	indexOrder   int
}

// NewTable creates empty storage for schema, with indexes pre-built at
// the default B-tree order on its primary key and unique columns.
func NewTable(schema *TableSchema) *Table {
	return NewTableWithIndexOrder(schema, defaultIndexOrder)
}

// NewTableWithIndexOrder is like NewTable but lets the caller tune the
// branching factor of the indexes it creates (see config.EngineConfig).
func NewTableWithIndexOrder(schema *TableSchema, indexOrder int) *Table {
	t := &Table{
		schema:       schema,
		rows:         make(map[int64]*Row),
		nextRowID:    1,
		indexes:      index.NewManager(),
		uniqueValues: make(map[string]map[types.Value]bool),
		indexOrder:   indexOrder,
	}
	if pk := schema.PrimaryKey(); pk != nil {
		t.indexes.CreateIndex(pk.Name, t.indexOrder)
	}
	for _, col := range schema.Columns {
		if col.Unique && !col.PrimaryKey {
			t.indexes.CreateIndex(col.Name, t.indexOrder)
		}
		if col.Unique {
			t.uniqueValues[strings.ToLower(col.Name)] = make(map[types.Value]bool)
		}
	}
	return t
}

// Schema returns the table's schema.
func (t *Table) Schema() *TableSchema { return t.schema }

// Indexes returns the table's index manager.
func (t *Table) Indexes() *index.Manager { return t.indexes }

// Insert validates values against the schema (type coercion, NOT NULL,
// UNIQUE/PRIMARY KEY), then stores and indexes a new row. values is keyed
// by column name, case-insensitively; columns absent from values are
// stored as NULL.
func (t *Table) Insert(values map[string]types.Value) (*Row, error) {
	normalized := normalizeKeys(values)

	rowData := make(map[string]types.Value, len(t.schema.Columns))
	for _, col := range t.schema.Columns {
		key := strings.ToLower(col.Name)
		value, present := normalized[key]
		if !present {
			value = types.Null
		}

		if value.IsNull() && col.NotNull {
			return nil, &errs.NotNullViolation{Column: col.Name}
		}

		if !value.IsNull() {
			coerced, err := types.ValidateAndCoerce(value, col.DataType, col.Name)
			if err != nil {
				return nil, err
			}
			value = coerced
		}

		if col.Unique && !value.IsNull() {
			if t.uniqueValues[key][value] {
				if col.PrimaryKey {
					return nil, &errs.PrimaryKeyViolation{Column: col.Name, Value: value.String()}
				}
				return nil, &errs.UniqueViolation{Column: col.Name, Value: value.String()}
			}
		}

		rowData[key] = value
	}

	rowID := t.nextRowID
	t.nextRowID++
	row := &Row{RowID: rowID, data: rowData}
	t.rows[rowID] = row

	for _, col := range t.schema.Columns {
		key := strings.ToLower(col.Name)
		if col.Unique {
			if v := rowData[key]; !v.IsNull() {
				t.uniqueValues[key][v] = true
			}
		}
	}
	for col, value := range rowData {
		if !value.IsNull() {
			t.indexes.Insert(col, value, rowID)
		}
	}

	return row, nil
}

// Update applies values to the row with the given ID, re-validating
// constraints and maintaining unique-value tracking and indexes. Returns
// nil, nil if the row does not exist.
func (t *Table) Update(rowID int64, values map[string]types.Value) (*Row, error) {
	row, ok := t.rows[rowID]
	if !ok {
		return nil, nil
	}
	normalized := normalizeKeys(values)

	coercedUpdates := make(map[string]types.Value, len(normalized))
	for key, newValue := range normalized {
		col, err := t.schema.GetColumn(key)
		if err != nil {
			return nil, err
		}
		oldValue := row.data[key]

		if newValue.IsNull() && col.NotNull {
			return nil, &errs.NotNullViolation{Column: col.Name}
		}
		if !newValue.IsNull() {
			coerced, err := types.ValidateAndCoerce(newValue, col.DataType, col.Name)
			if err != nil {
				return nil, err
			}
			newValue = coerced
		}
		if col.Unique && !newValue.IsNull() && !newValue.Equal(oldValue) {
			if t.uniqueValues[key][newValue] {
				if col.PrimaryKey {
					return nil, &errs.PrimaryKeyViolation{Column: col.Name, Value: newValue.String()}
				}
				return nil, &errs.UniqueViolation{Column: col.Name, Value: newValue.String()}
			}
		}
		coercedUpdates[key] = newValue
	}

	for key, newValue := range coercedUpdates {
		col, _ := t.schema.GetColumn(key)
		oldValue := row.data[key]

		if col.Unique {
			if !oldValue.IsNull() {
				delete(t.uniqueValues[key], oldValue)
			}
			if !newValue.IsNull() {
				t.uniqueValues[key][newValue] = true
			}
		}
		if !oldValue.IsNull() {
			t.indexes.Delete(key, oldValue, rowID)
		}
		if !newValue.IsNull() {
			t.indexes.Insert(key, newValue, rowID)
		}
		row.data[key] = newValue
	}

	return row, nil
}

// Delete removes the row with the given ID, releasing its unique values
// and index entries. Returns nil if the row does not exist.
func (t *Table) Delete(rowID int64) *Row {
	row, ok := t.rows[rowID]
	if !ok {
		return nil
	}
	delete(t.rows, rowID)

	for _, col := range t.schema.Columns {
		key := strings.ToLower(col.Name)
		if col.Unique {
			if v := row.data[key]; !v.IsNull() {
				delete(t.uniqueValues[key], v)
			}
		}
	}
	for col, value := range row.data {
		if !value.IsNull() {
			t.indexes.Delete(col, value, rowID)
		}
	}
	return row
}

// Get returns the row with the given ID, or nil if absent.
func (t *Table) Get(rowID int64) *Row { return t.rows[rowID] }

// FindByIndex returns rows whose column value equals value, using the
// column's index when one exists and falling back to a full scan
// otherwise.
func (t *Table) FindByIndex(column string, value types.Value) []*Row {
	rowIDs, hasIndex := t.indexes.Search(column, value)
	if !hasIndex {
		var out []*Row
		key := strings.ToLower(column)
		for _, row := range t.rows {
			if v, ok := row.data[key]; ok && v.Equal(value) {
				out = append(out, row)
			}
		}
		return out
	}
	out := make([]*Row, 0, len(rowIDs))
	for _, id := range rowIDs {
		if row, ok := t.rows[id]; ok {
			out = append(out, row)
		}
	}
	return out
}

// Scan returns every row in the table in insertion order, stable across
// repeated calls as long as the table isn't mutated in between. Row IDs
// are assigned monotonically and restart at 1 only when Clear has emptied
// the table, so sorting by RowID recovers insertion order without
// tracking a separate index.
func (t *Table) Scan() []*Row {
	out := make([]*Row, 0, len(t.rows))
	for _, row := range t.rows {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RowID < out[j].RowID })
	return out
}

// Count returns the number of rows in the table.
func (t *Table) Count() int { return len(t.rows) }

// Clear removes all rows and rebuilds the table's indexes.
func (t *Table) Clear() {
	t.rows = make(map[int64]*Row)
	t.nextRowID = 1
	for key := range t.uniqueValues {
		t.uniqueValues[key] = make(map[types.Value]bool)
	}
	t.indexes.Clear()
	if pk := t.schema.PrimaryKey(); pk != nil {
		t.indexes.CreateIndex(pk.Name, t.indexOrder)
	}
	for _, col := range t.schema.Columns {
		if col.Unique && !col.PrimaryKey {
			t.indexes.CreateIndex(col.Name, t.indexOrder)
		}
	}
}

func normalizeKeys(values map[string]types.Value) map[string]types.Value {
	out := make(map[string]types.Value, len(values))
	for k, v := range values {
		out[strings.ToLower(k)] = v
	}
	return out
}

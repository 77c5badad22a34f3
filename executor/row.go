package executor

import (
	"strings"

	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

func normalizedName(name string) string { return strings.ToLower(name) }

// rowToWorkingRow lifts a stored row into a prefixed working row so it can
// flow through WHERE/join/order evaluation uniformly with joined rows.
func rowToWorkingRow(row *storage.Row, prefix string) *workingRow {
	wr := newWorkingRow()
	for _, col := range row.Columns() {
		if v, ok := row.Get(col); ok {
			wr.set(prefix, strings.ToLower(col), v)
		}
	}
	wr.rowIDs[prefix] = row.RowID
	return wr
}

// colKey identifies a column binding within a working row by the
// lower-cased table prefix (alias or table name) it came from and its
// lower-cased column name. Using a struct key instead of a concatenated
// "prefix.column" string avoids ambiguity when an alias or column name
// itself contains a dot-like separator, and lets lookups skip string
// splitting entirely.
type colKey struct {
	prefix string
	col    string
}

// workingRow is one row flowing through the SELECT pipeline: scan
// produces one per stored row, joins merge two into one, filtering tests
// one at a time, and projection reads out of the final set.
type workingRow struct {
	bindings map[colKey]types.Value
	// rowIDs records the storage row ID contributed by each table prefix
	// and is carried through merges. No handler reads it: UPDATE and
	// DELETE take row IDs directly from the table scan.
	rowIDs map[string]int64
}

func newWorkingRow() *workingRow {
	return &workingRow{bindings: make(map[colKey]types.Value), rowIDs: make(map[string]int64)}
}

func (r *workingRow) get(prefix, col string) (types.Value, bool) {
	v, ok := r.bindings[colKey{prefix: prefix, col: col}]
	return v, ok
}

func (r *workingRow) set(prefix, col string, v types.Value) {
	r.bindings[colKey{prefix: prefix, col: col}] = v
}

// merge returns a new working row combining r and other; other's bindings
// and row IDs take precedence on key collision (there should never be
// one, since join prefixes are distinct).
func (r *workingRow) merge(other *workingRow) *workingRow {
	out := newWorkingRow()
	for k, v := range r.bindings {
		out.bindings[k] = v
	}
	for k, v := range other.bindings {
		out.bindings[k] = v
	}
	for k, v := range r.rowIDs {
		out.rowIDs[k] = v
	}
	for k, v := range other.rowIDs {
		out.rowIDs[k] = v
	}
	return out
}

// prefixes returns the set of table prefixes with at least one binding in
// this row.
func (r *workingRow) prefixes() map[string]bool {
	out := make(map[string]bool)
	for k := range r.bindings {
		out[k.prefix] = true
	}
	return out
}

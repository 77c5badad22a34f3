// Package index manages the set of secondary indexes maintained for a
// table, keyed case-insensitively by column name.
package index

import (
	"strings"

	"github.com/miniql/miniql/btree"
	"github.com/miniql/miniql/types"
)

// Manager owns zero or more B-tree indexes, one per indexed column.
type Manager struct {
	indexes map[string]*btree.BTree
}

// NewManager returns an empty index manager.
func NewManager() *Manager {
	return &Manager{indexes: make(map[string]*btree.BTree)}
}

// CreateIndex creates an index on column if one does not already exist,
// returning the (possibly pre-existing) B-tree. Idempotent by design:
// re-creating an index on the same column is a no-op, not an error.
func (m *Manager) CreateIndex(column string, order int) *btree.BTree {
	key := strings.ToLower(column)
	if existing, ok := m.indexes[key]; ok {
		return existing
	}
	idx := btree.New(order)
	m.indexes[key] = idx
	return idx
}

// HasIndex reports whether column is indexed.
func (m *Manager) HasIndex(column string) bool {
	_, ok := m.indexes[strings.ToLower(column)]
	return ok
}

// GetIndex returns the index for column, or nil if none exists.
func (m *Manager) GetIndex(column string) *btree.BTree {
	return m.indexes[strings.ToLower(column)]
}

// DropIndex removes the index on column, reporting whether one existed.
func (m *Manager) DropIndex(column string) bool {
	key := strings.ToLower(column)
	if _, ok := m.indexes[key]; !ok {
		return false
	}
	delete(m.indexes, key)
	return true
}

// ListIndexes returns the indexed column names in no particular order.
func (m *Manager) ListIndexes() []string {
	out := make([]string, 0, len(m.indexes))
	for col := range m.indexes {
		out = append(out, col)
	}
	return out
}

// Insert records key -> rowID in column's index, if one exists.
func (m *Manager) Insert(column string, key types.Value, rowID int64) {
	if idx := m.GetIndex(column); idx != nil {
		idx.Insert(key, rowID)
	}
}

// Delete removes key -> rowID from column's index, if one exists.
func (m *Manager) Delete(column string, key types.Value, rowID int64) {
	if idx := m.GetIndex(column); idx != nil {
		idx.Delete(key, rowID)
	}
}

// Search returns the row IDs under key in column's index. The second
// return value is false when column has no index at all (as distinct
// from an index with no matching rows).
func (m *Manager) Search(column string, key types.Value) ([]int64, bool) {
	idx := m.GetIndex(column)
	if idx == nil {
		return nil, false
	}
	return idx.Search(key), true
}

// Clear removes all indexes.
func (m *Manager) Clear() {
	m.indexes = make(map[string]*btree.BTree)
}

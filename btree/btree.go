// Package btree implements the engine's secondary index structure: a
// B-tree keyed on types.Value, with each key mapping to the list of row
// IDs that hold it (supporting non-unique indexes).
package btree

import "github.com/miniql/miniql/types"

// DefaultOrder is the branching factor used when a caller does not need
// to tune it.
const DefaultOrder = 32

const minOrder = 3

// node is a B-tree node. keys[i] corresponds to rowIDs[i]; for internal
// nodes, children[i] holds keys less than keys[i] and children[i+1] holds
// keys greater than keys[i].
type node struct {
	leaf     bool
	keys     []types.Value
	rowIDs   [][]int64
	children []*node
}

// BTree is an order-parameterized B-tree supporting duplicate keys.
// Deletion does not rebalance underflowed nodes after removal; this
// matches the structure's original design and only affects lookup
// performance after heavy deletion, never correctness, since search and
// range_search still visit every remaining key.
type BTree struct {
	order int
	root  *node
	size  int
}

// New creates a B-tree with the given order (clamped to a minimum of 3).
func New(order int) *BTree {
	if order < minOrder {
		order = minOrder
	}
	return &BTree{order: order, root: &node{leaf: true}}
}

func (t *BTree) minKeys() int { return (t.order - 1) / 2 }
func (t *BTree) maxKeys() int { return t.order - 1 }

// Len reports the number of key/row-id pairs stored in the tree.
func (t *BTree) Len() int { return t.size }

// Insert adds rowID under key, appending to the existing row-id list if
// key is already present.
func (t *BTree) Insert(key types.Value, rowID int64) {
	if len(t.root.keys) == t.maxKeys() {
		newRoot := &node{leaf: false, children: []*node{t.root}}
		t.splitChild(newRoot, 0)
		t.root = newRoot
	}
	t.insertNonFull(t.root, key, rowID)
	t.size++
}

func (t *BTree) insertNonFull(n *node, key types.Value, rowID int64) {
	i := len(n.keys) - 1

	if n.leaf {
		for i >= 0 && compare(key, n.keys[i]) < 0 {
			i--
		}
		if i >= 0 && compare(key, n.keys[i]) == 0 {
			n.rowIDs[i] = append(n.rowIDs[i], rowID)
			return
		}
		n.keys = insertValueAt(n.keys, i+1, key)
		n.rowIDs = insertRowIDsAt(n.rowIDs, i+1, []int64{rowID})
		return
	}

	for i >= 0 && compare(key, n.keys[i]) < 0 {
		i--
	}
	if i >= 0 && compare(key, n.keys[i]) == 0 {
		n.rowIDs[i] = append(n.rowIDs[i], rowID)
		return
	}
	i++

	if len(n.children[i].keys) == t.maxKeys() {
		t.splitChild(n, i)
		switch c := compare(key, n.keys[i]); {
		case c == 0:
			n.rowIDs[i] = append(n.rowIDs[i], rowID)
			return
		case c > 0:
			i++
		}
	}
	t.insertNonFull(n.children[i], key, rowID)
}

func (t *BTree) splitChild(parent *node, index int) {
	child := parent.children[index]
	mid := len(child.keys) / 2

	newNode := &node{leaf: child.leaf}
	newNode.keys = append([]types.Value{}, child.keys[mid+1:]...)
	newNode.rowIDs = append([][]int64{}, child.rowIDs[mid+1:]...)

	midKey := child.keys[mid]
	midRowIDs := child.rowIDs[mid]

	child.keys = child.keys[:mid]
	child.rowIDs = child.rowIDs[:mid]

	if !child.leaf {
		newNode.children = append([]*node{}, child.children[mid+1:]...)
		child.children = child.children[:mid+1]
	}

	parent.keys = insertValueAt(parent.keys, index, midKey)
	parent.rowIDs = insertRowIDsAt(parent.rowIDs, index, midRowIDs)
	parent.children = insertNodeAt(parent.children, index+1, newNode)
}

// Search returns all row IDs stored under key, or nil if key is absent.
func (t *BTree) Search(key types.Value) []int64 {
	return search(t.root, key)
}

func search(n *node, key types.Value) []int64 {
	i := 0
	for i < len(n.keys) && compare(key, n.keys[i]) > 0 {
		i++
	}
	if i < len(n.keys) && compare(key, n.keys[i]) == 0 {
		if len(n.rowIDs[i]) == 0 {
			return nil
		}
		out := make([]int64, len(n.rowIDs[i]))
		copy(out, n.rowIDs[i])
		return out
	}
	if n.leaf {
		return nil
	}
	return search(n.children[i], key)
}

// Contains reports whether key has at least one row ID.
func (t *BTree) Contains(key types.Value) bool {
	return len(t.Search(key)) > 0
}

// Delete removes a single (key, rowID) pair. It reports whether the pair
// was found. No underflow rebalancing is performed after removal.
func (t *BTree) Delete(key types.Value, rowID int64) bool {
	deleted := deleteFrom(t.root, key, rowID)
	if len(t.root.keys) == 0 && !t.root.leaf {
		t.root = t.root.children[0]
	}
	if deleted {
		t.size--
	}
	return deleted
}

func deleteFrom(n *node, key types.Value, rowID int64) bool {
	i := 0
	for i < len(n.keys) && compare(key, n.keys[i]) > 0 {
		i++
	}

	if n.leaf {
		if i < len(n.keys) && compare(key, n.keys[i]) == 0 {
			return removeRowID(n, i, rowID)
		}
		return false
	}

	if i < len(n.keys) && compare(key, n.keys[i]) == 0 {
		return removeRowID(n, i, rowID)
	}
	return deleteFrom(n.children[i], key, rowID)
}

func removeRowID(n *node, i int, rowID int64) bool {
	idx := -1
	for j, id := range n.rowIDs[i] {
		if id == rowID {
			idx = j
			break
		}
	}
	if idx == -1 {
		return false
	}
	n.rowIDs[i] = append(n.rowIDs[i][:idx], n.rowIDs[i][idx+1:]...)
	// An internal separator whose list empties stays in place with no row
	// IDs, so both of its neighbouring children stay reachable.
	if len(n.rowIDs[i]) == 0 && n.leaf {
		n.keys = append(n.keys[:i], n.keys[i+1:]...)
		n.rowIDs = append(n.rowIDs[:i], n.rowIDs[i+1:]...)
	}
	return true
}

// KeyRowID is one (key, rowID) pair returned by RangeSearch.
type KeyRowID struct {
	Key   types.Value
	RowID int64
}

// RangeSearch returns every (key, rowID) pair with min <= key <= max.
// When hasMin (or hasMax) is false, min (or max) is ignored and that
// side of the range is unbounded.
func (t *BTree) RangeSearch(min types.Value, hasMin bool, max types.Value, hasMax bool) []KeyRowID {
	var out []KeyRowID
	rangeSearch(t.root, min, hasMin, max, hasMax, &out)
	return out
}

func rangeSearch(n *node, min types.Value, hasMin bool, max types.Value, hasMax bool, out *[]KeyRowID) {
	for i, key := range n.keys {
		if !n.leaf {
			if !hasMin || compare(key, min) >= 0 {
				rangeSearch(n.children[i], min, hasMin, max, hasMax, out)
			}
		}
		if (!hasMin || compare(key, min) >= 0) && (!hasMax || compare(key, max) <= 0) {
			for _, id := range n.rowIDs[i] {
				*out = append(*out, KeyRowID{Key: key, RowID: id})
			}
		}
	}
	if !n.leaf && len(n.children) > len(n.keys) {
		if !hasMax || len(n.keys) == 0 || compare(n.keys[len(n.keys)-1], max) <= 0 {
			rangeSearch(n.children[len(n.children)-1], min, hasMin, max, hasMax, out)
		}
	}
}

func compare(a, b types.Value) int { return types.CompareValues(a, b) }

func insertValueAt(s []types.Value, i int, v types.Value) []types.Value {
	s = append(s, types.Value{})
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertRowIDsAt(s [][]int64, i int, v []int64) [][]int64 {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func insertNodeAt(s []*node, i int, v *node) []*node {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

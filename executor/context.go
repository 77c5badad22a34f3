package executor

import (
	"strings"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

// scope tracks which tables are in play for a query (keyed by their
// effective name: alias if given, else table name) so column references
// and star-expansion can resolve against the right schema.
type scope struct {
	db     *storage.Database
	order  []string // effective names in FROM/JOIN order, for `SELECT *`
	tables map[string]*storage.Table
}

func newScope(db *storage.Database) *scope {
	return &scope{db: db, tables: make(map[string]*storage.Table)}
}

func (s *scope) addTable(ref *ast.TableRef) (*storage.Table, error) {
	table, err := s.db.GetTable(ref.Name)
	if err != nil {
		return nil, err
	}
	name := strings.ToLower(ref.EffectiveName())
	s.tables[name] = table
	s.order = append(s.order, name)
	return table, nil
}

func (s *scope) getTable(name string) (*storage.Table, error) {
	t, ok := s.tables[strings.ToLower(name)]
	if !ok {
		return nil, &errs.TableNotFound{Table: name}
	}
	return t, nil
}

// resolveColumn finds the (possibly unqualified) column reference's value
// in row, enforcing unqualified-reference ambiguity across joined tables.
func (s *scope) resolveColumn(ref *ast.ColumnRef, row *workingRow) (types.Value, error) {
	col := strings.ToLower(ref.Column)

	if ref.Table != "" {
		prefix := strings.ToLower(ref.Table)
		if _, ok := s.tables[prefix]; !ok {
			return types.Value{}, &errs.TableNotFound{Table: ref.Table}
		}
		v, ok := row.get(prefix, col)
		if !ok {
			return types.Value{}, &errs.ColumnNotFound{Column: ref.Column, Table: ref.Table}
		}
		return v, nil
	}

	var matchPrefix string
	matches := 0
	for prefix := range row.prefixes() {
		if _, ok := row.get(prefix, col); ok {
			matches++
			matchPrefix = prefix
		}
	}
	if matches == 0 {
		return types.Value{}, &errs.ColumnNotFound{Column: ref.Column}
	}
	if matches > 1 {
		return types.Value{}, &errs.AmbiguousColumn{Column: ref.Column}
	}
	v, _ := row.get(matchPrefix, col)
	return v, nil
}

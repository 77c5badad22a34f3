package executor

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/miniql/miniql/ast"
	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

func (e *Executor) executeSelect(stmt *ast.SelectStmt) (*Result, error) {
	if stmt.From == nil {
		return e.executeConstantSelect(stmt)
	}

	baseName := stmt.From.Table.EffectiveName()
	s := newScope(e.db)
	baseTable, err := s.addTable(stmt.From.Table)
	if err != nil {
		return nil, err
	}
	basePrefix := strings.ToLower(stmt.From.Table.EffectiveName())

	rows := tableToWorkingRows(baseTable, basePrefix)

	for _, join := range stmt.From.Joins {
		joinTable, err := s.addTable(join.Table)
		if err != nil {
			return nil, err
		}
		joinPrefix := strings.ToLower(join.Table.EffectiveName())
		rows, err = e.executeJoin(rows, joinTable, joinPrefix, join, s)
		if err != nil {
			return nil, err
		}
	}

	if stmt.Where != nil {
		rows, err = filterRows(rows, stmt.Where, s)
		if err != nil {
			return nil, err
		}
	}

	if len(stmt.OrderBy) > 0 {
		if err := orderRows(rows, stmt.OrderBy, s); err != nil {
			return nil, err
		}
	}

	if stmt.Offset != nil {
		off := int(*stmt.Offset)
		if off > len(rows) {
			off = len(rows)
		}
		rows = rows[off:]
	}
	if stmt.Limit != nil {
		lim := int(*stmt.Limit)
		if lim < len(rows) {
			rows = rows[:lim]
		}
	}

	result, err := projectColumns(stmt.Columns, rows, s)
	if err != nil {
		return nil, err
	}
	slog.Info("select executed", "stmt", "SELECT", "table", baseName, "rows_affected", len(result.Rows))
	return result, nil
}

func (e *Executor) executeConstantSelect(stmt *ast.SelectStmt) (*Result, error) {
	wr := newWorkingRow()
	names := make([]string, len(stmt.Columns))
	values := make([]types.Value, len(stmt.Columns))
	for i, expr := range stmt.Columns {
		v, err := evaluate(expr, nil, wr)
		if err != nil {
			return nil, err
		}
		names[i] = columnLabel(expr)
		values[i] = v
	}
	return &Result{Columns: names, Rows: [][]types.Value{values}}, nil
}

func tableToWorkingRows(table *storage.Table, prefix string) []*workingRow {
	rows := table.Scan()
	out := make([]*workingRow, len(rows))
	for i, row := range rows {
		out[i] = rowToWorkingRow(row, prefix)
	}
	return out
}

func (e *Executor) executeJoin(left []*workingRow, rightTable *storage.Table, rightPrefix string, join *ast.JoinClause, s *scope) ([]*workingRow, error) {
	right := tableToWorkingRows(rightTable, rightPrefix)

	if join.Type == ast.JoinCross {
		out := make([]*workingRow, 0, len(left)*len(right))
		for _, l := range left {
			for _, r := range right {
				out = append(out, l.merge(r))
			}
		}
		return out, nil
	}

	nullRight := nullWorkingRow(rightTable, rightPrefix)

	var out []*workingRow
	for _, l := range left {
		matched := false
		for _, r := range right {
			merged := l.merge(r)
			ok, err := matchesCondition(join.Condition, merged, s)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merged)
				matched = true
			}
		}
		if !matched && join.Type == ast.JoinLeft {
			out = append(out, l.merge(nullRight))
		}
	}

	if join.Type == ast.JoinRight {
		for _, r := range right {
			matched := false
			for _, l := range left {
				merged := l.merge(r)
				ok, err := matchesCondition(join.Condition, merged, s)
				if err != nil {
					return nil, err
				}
				if ok {
					matched = true
					break
				}
			}
			if !matched {
				nullLeft := nullWorkingRowFromSample(left)
				out = append(out, nullLeft.merge(r))
			}
		}
	}

	return out, nil
}

func matchesCondition(cond ast.Expr, row *workingRow, s *scope) (bool, error) {
	if cond == nil {
		return true, nil
	}
	v, err := evaluate(cond, s, row)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// nullWorkingRow builds an all-NULL working row for table's columns under
// prefix, used for the unmatched side of an outer join.
func nullWorkingRow(table *storage.Table, prefix string) *workingRow {
	wr := newWorkingRow()
	for _, col := range table.Schema().Columns {
		wr.set(prefix, strings.ToLower(col.Name), types.Null)
	}
	return wr
}

// nullWorkingRowFromSample builds an all-NULL row covering every prefix
// seen in left's rows (used for RIGHT JOIN's unmatched right-hand rows,
// where left may itself already be the product of earlier joins).
func nullWorkingRowFromSample(left []*workingRow) *workingRow {
	wr := newWorkingRow()
	if len(left) == 0 {
		return wr
	}
	for k := range left[0].bindings {
		wr.bindings[colKey{prefix: k.prefix, col: k.col}] = types.Null
	}
	return wr
}

func filterRows(rows []*workingRow, where ast.Expr, s *scope) ([]*workingRow, error) {
	out := rows[:0:0]
	for _, r := range rows {
		v, err := evaluate(where, s, r)
		if err != nil {
			return nil, err
		}
		if truthy(v) {
			out = append(out, r)
		}
	}
	return out, nil
}

func orderRows(rows []*workingRow, orderBy []*ast.OrderByItem, s *scope) error {
	var sortErr error
	sort.SliceStable(rows, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		for _, item := range orderBy {
			vi, err := evaluate(item.Expr, s, rows[i])
			if err != nil {
				sortErr = err
				return false
			}
			vj, err := evaluate(item.Expr, s, rows[j])
			if err != nil {
				sortErr = err
				return false
			}
			cmp := compareOrderKeys(vi, vj, item.Direction)
			if cmp == 0 {
				continue
			}
			return cmp < 0
		}
		return false
	})
	return sortErr
}

// compareOrderKeys compares two ORDER BY values, placing NULLs last for
// ASC and first for DESC, matching nullRank below. Non-NULL values are
// compared with types.CompareValues, negated for DESC.
func compareOrderKeys(a, b types.Value, direction ast.OrderDirection) int {
	aRank, bRank := nullRank(a, direction), nullRank(b, direction)
	if aRank != bRank {
		return aRank - bRank
	}
	if a.IsNull() && b.IsNull() {
		return 0
	}
	cmp := types.CompareValues(a, b)
	if direction == ast.Descending {
		return -cmp
	}
	return cmp
}

// nullRank orders NULL after non-NULL values for ASC, and before them for
// DESC, so that ORDER BY puts NULLs last ascending and first descending.
func nullRank(v types.Value, direction ast.OrderDirection) int {
	switch {
	case v.IsNull() && direction == ast.Descending:
		return 0
	case v.IsNull():
		return 1
	case direction == ast.Descending:
		return 1
	default:
		return 0
	}
}

func columnLabel(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.ColumnRef:
		if e.Table != "" {
			return e.Table + "." + e.Column
		}
		return e.Column
	case *ast.Literal:
		return e.Value
	default:
		return "?column?"
	}
}

func projectColumns(columns []ast.Expr, rows []*workingRow, s *scope) (*Result, error) {
	var labels []string
	type projector func(*workingRow) (types.Value, error)
	var projectors []projector

	for _, expr := range columns {
		star, ok := expr.(*ast.StarExpr)
		if !ok {
			label := columnLabel(expr)
			captured := expr
			labels = append(labels, label)
			projectors = append(projectors, func(r *workingRow) (types.Value, error) {
				return evaluate(captured, s, r)
			})
			continue
		}

		if star.Table != "" {
			prefix := strings.ToLower(star.Table)
			table, err := s.getTable(star.Table)
			if err != nil {
				return nil, err
			}
			for _, col := range table.Schema().Columns {
				labels = append(labels, star.Table+"."+col.Name)
				colName := strings.ToLower(col.Name)
				projectors = append(projectors, func(r *workingRow) (types.Value, error) {
					v, _ := r.get(prefix, colName)
					return v, nil
				})
			}
			continue
		}

		for _, prefix := range s.order {
			table, err := s.getTable(prefix)
			if err != nil {
				return nil, err
			}
			for _, col := range table.Schema().Columns {
				labels = append(labels, prefix+"."+col.Name)
				p := prefix
				colName := strings.ToLower(col.Name)
				projectors = append(projectors, func(r *workingRow) (types.Value, error) {
					v, _ := r.get(p, colName)
					return v, nil
				})
			}
		}
	}

	resultRows := make([][]types.Value, len(rows))
	for i, r := range rows {
		values := make([]types.Value, len(projectors))
		for j, proj := range projectors {
			v, err := proj(r)
			if err != nil {
				return nil, err
			}
			values[j] = v
		}
		resultRows[i] = values
	}

	return &Result{Columns: labels, Rows: resultRows}, nil
}

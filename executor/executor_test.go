package executor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/executor"
	"github.com/miniql/miniql/parser"
)

func run(t *testing.T, e *executor.Executor, sql string) *executor.Result {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.Parse()
	require.NoError(t, err, "parse %q", sql)
	res, err := e.Execute(stmt)
	require.NoError(t, err, "execute %q", sql)
	return res
}

func runErr(t *testing.T, e *executor.Executor, sql string) error {
	t.Helper()
	p := parser.New(sql)
	stmt, err := p.Parse()
	require.NoError(t, err, "parse %q", sql)
	_, err = e.Execute(stmt)
	return err
}

func setupUsersOrders(t *testing.T) *executor.Executor {
	e := executor.New(nil)
	run(t, e, `CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL, age INTEGER)`)
	run(t, e, `CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER, total REAL)`)
	run(t, e, `INSERT INTO users (id, name, age) VALUES (1, 'Alice', 30), (2, 'Bob', 25), (3, 'Carol', NULL)`)
	run(t, e, `INSERT INTO orders (id, user_id, total) VALUES (1, 1, 100.0), (2, 1, 50.0), (3, 2, 75.0)`)
	return e
}

func TestCreateTableAndInsertSelect(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT name FROM users WHERE age > 26`)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice", res.Rows[0][0].Text())
}

func TestCreateTableIfNotExistsIsNoop(t *testing.T) {
	e := executor.New(nil)
	run(t, e, `CREATE TABLE t (id INTEGER PRIMARY KEY)`)
	res := run(t, e, `CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY)`)
	assert.Equal(t, 0, res.Affected)
}

func TestSelectStarExpandsColumns(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT * FROM users WHERE id = 1`)
	require.Len(t, res.Columns, 3)
	require.Len(t, res.Rows[0], 3)
}

func TestInnerJoin(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT u.name, o.total FROM users u JOIN orders o ON u.id = o.user_id ORDER BY o.total ASC`)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, 50.0, res.Rows[0][1].Real())
}

func TestLeftJoinIncludesUnmatchedWithNulls(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT u.name, o.total FROM users u LEFT JOIN orders o ON u.id = o.user_id ORDER BY u.name ASC`)
	// Alice(2 orders), Bob(1 order), Carol(0 orders, NULL row) = 4 rows.
	require.Len(t, res.Rows, 4)
	lastRow := res.Rows[len(res.Rows)-1]
	assert.Equal(t, "Carol", lastRow[0].Text())
	assert.True(t, lastRow[1].IsNull())
}

func TestRightJoinIncludesUnmatchedRightWithNulls(t *testing.T) {
	e := setupUsersOrders(t)
	run(t, e, `INSERT INTO orders (id, user_id, total) VALUES (4, 99, 10.0)`)
	res := run(t, e, `SELECT u.name, o.total FROM users u RIGHT JOIN orders o ON u.id = o.user_id`)
	found := false
	for _, row := range res.Rows {
		if row[1].Real() == 10.0 && row[0].IsNull() {
			found = true
		}
	}
	assert.True(t, found, "expected an orphan order row with NULL user name: %+v", res.Rows)
}

func TestCrossJoinCartesianProduct(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT * FROM users CROSS JOIN orders`)
	assert.Len(t, res.Rows, 9) // 3 users * 3 orders
}

func TestUpdateAndDelete(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `UPDATE users SET age = 31 WHERE name = 'Alice'`)
	assert.Equal(t, 1, res.Affected)

	sel := run(t, e, `SELECT age FROM users WHERE name = 'Alice'`)
	require.Len(t, sel.Rows, 1)
	assert.Equal(t, int64(31), sel.Rows[0][0].Int())

	del := run(t, e, `DELETE FROM users WHERE name = 'Bob'`)
	assert.Equal(t, 1, del.Affected)

	remaining := run(t, e, `SELECT id FROM users`)
	assert.Len(t, remaining.Rows, 2)
}

func TestLikePattern(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT name FROM users WHERE name LIKE 'A%'`)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Alice", res.Rows[0][0].Text())
}

func TestLikeEscapesRegexMetacharacters(t *testing.T) {
	e := executor.New(nil)
	run(t, e, `CREATE TABLE t (label TEXT)`)
	run(t, e, `INSERT INTO t (label) VALUES ('50% off'), ('5. off'), ('50 off')`)

	res := run(t, e, `SELECT label FROM t WHERE label LIKE '50% off'`)
	assert.Len(t, res.Rows, 2, "'50%% off' matches literally, '50 off' matches the %% wildcard")

	dot := run(t, e, `SELECT label FROM t WHERE label LIKE '5._off'`)
	require.Len(t, dot.Rows, 1)
	assert.Equal(t, "5. off", dot.Rows[0][0].Text(), "expected literal-dot pattern to match only '5. off'")
}

func TestThreeValuedLogicWithNull(t *testing.T) {
	e := setupUsersOrders(t)
	// Carol has NULL age; "age > 10" is NULL (neither true nor false), so that
	// branch alone would exclude her and only the IS NULL branch keeps her.
	res := run(t, e, `SELECT name FROM users WHERE age > 10 OR age IS NULL`)
	names := map[string]bool{}
	for _, r := range res.Rows {
		names[r[0].Text()] = true
	}
	assert.True(t, names["Carol"], "expected Carol via IS NULL branch")
}

func TestOrderByNullsLastAscending(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT name FROM users ORDER BY age ASC`)
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, "Carol", res.Rows[len(res.Rows)-1][0].Text(), "expected NULL age (Carol) to sort last ascending")
}

func TestOrderByNullsFirstDescending(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT name FROM users ORDER BY age DESC`)
	require.NotEmpty(t, res.Rows)
	assert.Equal(t, "Carol", res.Rows[0][0].Text(), "expected NULL age (Carol) to sort first descending")
}

func TestLimitOffset(t *testing.T) {
	e := setupUsersOrders(t)
	res := run(t, e, `SELECT id FROM users ORDER BY id ASC LIMIT 1 OFFSET 1`)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(2), res.Rows[0][0].Int())
}

func TestAmbiguousColumnError(t *testing.T) {
	e := setupUsersOrders(t)
	err := runErr(t, e, `SELECT id FROM users JOIN orders ON users.id = orders.user_id`)
	assert.Error(t, err)
}

func TestSelectWithoutFromEvaluatesConstants(t *testing.T) {
	e := executor.New(nil)
	res := run(t, e, `SELECT 1`)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, int64(1), res.Rows[0][0].Int())
}

func TestConstraintViolationPropagates(t *testing.T) {
	e := setupUsersOrders(t)
	err := runErr(t, e, `INSERT INTO users (id, name) VALUES (1, 'Dup')`)
	assert.Error(t, err, "expected primary key violation")
}

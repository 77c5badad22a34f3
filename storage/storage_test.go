package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniql/miniql/errs"
	"github.com/miniql/miniql/storage"
	"github.com/miniql/miniql/types"
)

func usersSchema() *storage.TableSchema {
	return storage.NewTableSchema("users", []storage.Column{
		{Name: "id", DataType: types.Integer, PrimaryKey: true},
		{Name: "name", DataType: types.Text, NotNull: true},
		{Name: "email", DataType: types.Text, Unique: true},
	})
}

func TestSchemaPrimaryKeyImpliesUniqueAndNotNull(t *testing.T) {
	s := usersSchema()
	col, err := s.GetColumn("id")
	require.NoError(t, err)
	assert.True(t, col.Unique, "primary key should imply unique")
	assert.True(t, col.NotNull, "primary key should imply not null")
}

func TestCatalogCreateDuplicateTableFails(t *testing.T) {
	c := storage.NewCatalog()
	require.NoError(t, c.CreateTable(usersSchema()))
	err := c.CreateTable(usersSchema())
	require.Error(t, err)
	assert.IsType(t, &errs.TableExists{}, err)
}

func TestCatalogDropUnknownTableFails(t *testing.T) {
	c := storage.NewCatalog()
	err := c.DropTable("ghost")
	require.Error(t, err)
	assert.IsType(t, &errs.TableNotFound{}, err)
}

func TestInsertAssignsRowIDsAndNullsMissingColumns(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	row, err := tbl.Insert(map[string]types.Value{
		"id":    types.NewInt(1),
		"name":  types.NewText("Alice"),
		"email": types.NewText("alice@example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.RowID)

	second, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(2), "name": types.NewText("Bob")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.RowID)

	v, _ := second.Get("email")
	assert.True(t, v.IsNull(), "expected NULL email, got %v", v)
}

func TestInsertNotNullViolation(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1)})
	require.Error(t, err)
	assert.IsType(t, &errs.NotNullViolation{}, err)
}

func TestInsertPrimaryKeyViolation(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice")})
	require.NoError(t, err)

	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Eve")})
	require.Error(t, err)
	assert.IsType(t, &errs.PrimaryKeyViolation{}, err)
}

func TestInsertUniqueViolation(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice"), "email": types.NewText("a@x.com")})
	require.NoError(t, err)

	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(2), "name": types.NewText("Bob"), "email": types.NewText("a@x.com")})
	require.Error(t, err)
	assert.IsType(t, &errs.UniqueViolation{}, err)
}

func TestUpdateMaintainsUniqueTrackingAndIndexes(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice"), "email": types.NewText("a@x.com")})
	require.NoError(t, err)
	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(2), "name": types.NewText("Bob"), "email": types.NewText("b@x.com")})
	require.NoError(t, err)

	// Updating row 1's email to row 2's email should fail.
	_, err = tbl.Update(1, map[string]types.Value{"email": types.NewText("b@x.com")})
	require.Error(t, err)
	assert.IsType(t, &errs.UniqueViolation{}, err)

	// But freeing up row 2's email first, then reusing it, should work.
	_, err = tbl.Update(2, map[string]types.Value{"email": types.NewText("b2@x.com")})
	require.NoError(t, err)
	_, err = tbl.Update(1, map[string]types.Value{"email": types.NewText("b@x.com")})
	require.NoError(t, err)

	found := tbl.FindByIndex("email", types.NewText("b@x.com"))
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].RowID)
}

func TestDeleteFreesUniqueValueAndIndex(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice"), "email": types.NewText("a@x.com")})
	require.NoError(t, err)
	tbl.Delete(1)

	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(2), "name": types.NewText("Eve"), "email": types.NewText("a@x.com")})
	assert.NoError(t, err, "expected reinsertion of freed unique value to succeed")
	assert.Nil(t, tbl.Get(1))
}

func TestFindByIndexFallsBackToScanWithoutIndex(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice")})
	require.NoError(t, err)
	found := tbl.FindByIndex("name", types.NewText("Alice"))
	assert.Len(t, found, 1)
}

func TestScanReturnsInsertionOrder(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(3), "name": types.NewText("Carol")})
	require.NoError(t, err)
	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice")})
	require.NoError(t, err)
	_, err = tbl.Insert(map[string]types.Value{"id": types.NewInt(2), "name": types.NewText("Bob")})
	require.NoError(t, err)

	want := []string{"Carol", "Alice", "Bob"}
	for attempt := 0; attempt < 3; attempt++ {
		rows := tbl.Scan()
		require.Len(t, rows, len(want))
		for i, row := range rows {
			name, _ := row.Get("name")
			assert.Equal(t, want[i], name.Text(), "attempt %d, row %d", attempt, i)
		}
	}
}

func TestClearResetsRowIDSequenceAndIndexes(t *testing.T) {
	tbl := storage.NewTable(usersSchema())
	_, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Alice")})
	require.NoError(t, err)
	tbl.Clear()
	require.Equal(t, 0, tbl.Count())

	row, err := tbl.Insert(map[string]types.Value{"id": types.NewInt(1), "name": types.NewText("Bob")})
	require.NoError(t, err)
	assert.Equal(t, int64(1), row.RowID, "expected row ids to restart at 1")
}

func TestDatabaseCreateGetDropTable(t *testing.T) {
	db := storage.NewDatabase()
	_, err := db.CreateTable(usersSchema())
	require.NoError(t, err)
	assert.True(t, db.HasTable("USERS"), "expected case-insensitive HasTable")

	tbl, err := db.GetTable("users")
	require.NoError(t, err)
	require.NotNil(t, tbl)

	require.NoError(t, db.DropTable("users"))
	assert.False(t, db.HasTable("users"), "expected table to be gone after drop")
}

package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTableColumns(t *testing.T) {
	cfg := Config{
		Driver: "sqlite",
		Name:   ":memory:",
	}
	db, err := Connect(cfg)
	require.NoError(t, err)
	assert.NotNil(t, db)

	err = db.Exec("CREATE TABLE test_items (id INTEGER PRIMARY KEY, item_code TEXT, rarity_level INTEGER)").Error
	assert.NoError(t, err)

	columns, err := GetTableColumns(db, "test_items")
	assert.NoError(t, err)
	assert.Len(t, columns, 3)

	colMap := make(map[string]string)
	for _, col := range columns {
		colMap[col.Field] = col.Type
	}

	assert.Equal(t, "integer", colMap["id"])
	assert.Equal(t, "text", colMap["item_code"])
	assert.Equal(t, "integer", colMap["rarity_level"])

	// PRAGMA table_info returns no rows for an unknown table
	cols, err := GetTableColumns(db, "non_existent")
	assert.NoError(t, err)
	assert.Empty(t, cols)
}

func TestVerifyColumns(t *testing.T) {
	db, err := Connect(Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE item_templates (id INTEGER PRIMARY KEY, item_code TEXT)").Error)

	t.Run("Satisfied", func(t *testing.T) {
		err := VerifyColumns(db, map[string][]string{"item_templates": {"id", "ITEM_CODE"}})
		assert.NoError(t, err)
	})

	t.Run("Missing table and column", func(t *testing.T) {
		err := VerifyColumns(db, map[string][]string{
			"item_templates":       {"item_code", "rarity_level"},
			"character_pool_entry": {"id"},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "column item_templates.rarity_level is missing")
		assert.Contains(t, err.Error(), "table character_pool_entry is missing")
	})
}

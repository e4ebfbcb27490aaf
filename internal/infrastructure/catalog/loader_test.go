package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recyclemart/internal/domain/entity"
)

func TestLoadEmbedded(t *testing.T) {
	items, err := Load("")
	require.NoError(t, err)
	require.NotEmpty(t, items)

	seen := make(map[string]bool)
	categories := make(map[entity.Category]bool)
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate id %s", item.ID)
		seen[item.ID] = true
		assert.True(t, item.Category.Valid(), item.ID)
		assert.GreaterOrEqual(t, item.UnitPrice, 0.0, item.ID)
		categories[item.Category] = true
	}

	for _, c := range entity.Categories() {
		assert.True(t, categories[c], "no items in %s", c)
	}
}

func TestParseCanonicalizesCategories(t *testing.T) {
	items, err := Parse([]byte(`
items:
  - id: a
    name: Milk Jug
    category: glass & plastic
    unit_price: 2
  - id: b
    name: Tin Sheets
    category: metal_and_steel
    unit_price: 30
`))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, entity.CategoryGlassAndPlastic, items[0].Category)
	assert.Equal(t, entity.UnitPieces, items[0].Unit().Kind)
	assert.Equal(t, entity.CategoryMetalAndSteel, items[1].Category)
}

func TestParseRejectsUnknownCategory(t *testing.T) {
	_, err := Parse([]byte("items:\n  - id: a\n    name: Log\n    category: wood\n"))
	assert.Error(t, err)
}

func TestLoadFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: x\n    name: X\n    category: Others\n    unit_price: 1\n"), 0o600))

	items, err := Load(path)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "x", items[0].ID)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

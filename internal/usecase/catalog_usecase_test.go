package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recyclemart/internal/domain/entity"
	"recyclemart/pkg/errors"
)

func TestCatalogOrdering(t *testing.T) {
	items := []entity.CatalogItem{
		{ID: "brass-a", Name: "Brass A", Category: entity.CategoryBrass, UnitPrice: 300},
		{ID: "paper-b", Name: "Paper B", Category: entity.CategoryPaper, UnitPrice: 12},
		{ID: "paper-a", Name: "Paper A", Category: entity.CategoryPaper, UnitPrice: 10},
	}
	uc, err := NewCatalogUseCase(items)
	require.NoError(t, err)

	var ids []string
	for _, item := range uc.ListAll() {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"paper-b", "paper-a", "brass-a"}, ids)

	paper := uc.ListByCategory(entity.CategoryPaper)
	require.Len(t, paper, 2)
	assert.Equal(t, "paper-b", paper[0].ID)
	assert.Empty(t, uc.ListByCategory(entity.CategoryEwaste))

	item, err := uc.Get("brass-a")
	require.NoError(t, err)
	assert.Equal(t, "Brass A", item.Name)

	_, err = uc.Get("gold")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestCatalogValidation(t *testing.T) {
	tests := []struct {
		name  string
		items []entity.CatalogItem
	}{
		{"empty id", []entity.CatalogItem{{Name: "x", Category: entity.CategoryPaper}}},
		{"reserved prefix", []entity.CatalogItem{{ID: entity.CustomItemPrefix + "x", Name: "x", Category: entity.CategoryPaper}}},
		{"empty name", []entity.CatalogItem{{ID: "x", Category: entity.CategoryPaper}}},
		{"unknown category", []entity.CatalogItem{{ID: "x", Name: "x", Category: "Gold"}}},
		{"negative price", []entity.CatalogItem{{ID: "x", Name: "x", Category: entity.CategoryPaper, UnitPrice: -1}}},
		{"duplicate", []entity.CatalogItem{
			{ID: "x", Name: "x", Category: entity.CategoryPaper},
			{ID: "x", Name: "y", Category: entity.CategoryBrass},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalogUseCase(tt.items)
			assert.Error(t, err)
		})
	}
}

func TestCatalogCategories(t *testing.T) {
	uc, err := NewCatalogUseCase(testItems)
	require.NoError(t, err)

	cats := uc.Categories()
	require.Len(t, cats, len(entity.Categories()))
	assert.Equal(t, entity.CategoryPaper, cats[0].Category)
	assert.Equal(t, 1, cats[0].ItemCount)
	assert.Equal(t, entity.CategoryOthers, cats[len(cats)-1].Category)
	assert.Equal(t, 0, cats[len(cats)-1].ItemCount)
}

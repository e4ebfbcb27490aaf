package usecase

import (
	"fmt"
	"sort"
	"strings"

	"recyclemart/internal/domain/entity"
	"recyclemart/pkg/errors"
)

// CatalogUseCase is the read-only item catalog.
type CatalogUseCase struct {
	items      []entity.CatalogItem
	byID       map[string]int
	byCategory map[entity.Category][]int
}

// NewCatalogUseCase validates and indexes items. ListAll orders by category
// declaration order and keeps the given order within a category.
func NewCatalogUseCase(items []entity.CatalogItem) (*CatalogUseCase, error) {
	sorted := make([]entity.CatalogItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Category.Rank() < sorted[j].Category.Rank()
	})

	uc := &CatalogUseCase{
		items:      sorted,
		byID:       make(map[string]int, len(sorted)),
		byCategory: make(map[entity.Category][]int),
	}

	for i, item := range sorted {
		switch {
		case strings.TrimSpace(item.ID) == "":
			return nil, fmt.Errorf("catalog item %d has no id", i)
		case strings.HasPrefix(item.ID, entity.CustomItemPrefix):
			return nil, fmt.Errorf("catalog item %q uses the reserved %q prefix", item.ID, entity.CustomItemPrefix)
		case strings.TrimSpace(item.Name) == "":
			return nil, fmt.Errorf("catalog item %q has no name", item.ID)
		case !item.Category.Valid():
			return nil, fmt.Errorf("catalog item %q has unknown category %q", item.ID, item.Category)
		case item.UnitPrice < 0:
			return nil, fmt.Errorf("catalog item %q has negative unit price", item.ID)
		}
		if _, dup := uc.byID[item.ID]; dup {
			return nil, fmt.Errorf("catalog item %q is declared twice", item.ID)
		}
		uc.byID[item.ID] = i
		uc.byCategory[item.Category] = append(uc.byCategory[item.Category], i)
	}

	return uc, nil
}

func (uc *CatalogUseCase) Get(id string) (entity.CatalogItem, error) {
	i, ok := uc.byID[id]
	if !ok {
		return entity.CatalogItem{}, errors.NotFound("Catalog item", nil)
	}
	return uc.items[i], nil
}

func (uc *CatalogUseCase) ListByCategory(category entity.Category) []entity.CatalogItem {
	idx := uc.byCategory[category]
	out := make([]entity.CatalogItem, 0, len(idx))
	for _, i := range idx {
		out = append(out, uc.items[i])
	}
	return out
}

func (uc *CatalogUseCase) ListAll() []entity.CatalogItem {
	out := make([]entity.CatalogItem, len(uc.items))
	copy(out, uc.items)
	return out
}

// CategoryInfo describes a category and how many catalog items it holds.
type CategoryInfo struct {
	Category  entity.Category     `json:"category"`
	ItemCount int                 `json:"item_count"`
	Unit      entity.QuantityUnit `json:"default_unit"`
}

func (uc *CatalogUseCase) Categories() []CategoryInfo {
	cats := entity.Categories()
	out := make([]CategoryInfo, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryInfo{
			Category:  c,
			ItemCount: len(uc.byCategory[c]),
			Unit:      entity.InferUnit(c, ""),
		})
	}
	return out
}

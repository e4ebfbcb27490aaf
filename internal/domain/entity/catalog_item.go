package entity

import (
	"strings"
	"unicode"
)

type Category string

const (
	CategoryPaper           Category = "Paper"
	CategoryGlassAndPlastic Category = "GlassAndPlastic"
	CategoryMetalAndSteel   Category = "MetalAndSteel"
	CategoryEwaste          Category = "Ewaste"
	CategoryBrass           Category = "Brass"
	CategoryOthers          Category = "Others"
)

// categoryOrder is the declaration order used for every catalog listing.
var categoryOrder = []Category{
	CategoryPaper,
	CategoryGlassAndPlastic,
	CategoryMetalAndSteel,
	CategoryEwaste,
	CategoryBrass,
	CategoryOthers,
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// Rank is the position of the category in declaration order, or -1 when unknown.
func (c Category) Rank() int {
	for i, known := range categoryOrder {
		if c == known {
			return i
		}
	}
	return -1
}

func (c Category) Valid() bool {
	return c.Rank() >= 0
}

// ParseCategory matches loosely: "glass & plastic", "E-waste" and "metal_and_steel"
// all resolve to their canonical category.
func ParseCategory(s string) (Category, bool) {
	needle := normalizeCategory(s)
	if needle == "" {
		return "", false
	}
	for _, c := range categoryOrder {
		if normalizeCategory(string(c)) == needle {
			return c, true
		}
	}
	return "", false
}

func normalizeCategory(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return strings.ReplaceAll(b.String(), "and", "")
}

// CatalogItem is static reference data loaded once at startup.
type CatalogItem struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	UnitPrice   float64  `json:"unit_price" yaml:"unit_price"`
	Description string   `json:"description,omitempty" yaml:"description"`
}

// Unit is the quantity unit inferred for this item.
func (i CatalogItem) Unit() QuantityUnit {
	return InferUnit(i.Category, i.Name)
}

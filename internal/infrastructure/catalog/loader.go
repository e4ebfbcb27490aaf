package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"recyclemart/internal/domain/entity"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

type document struct {
	Items []entity.CatalogItem `yaml:"items"`
}

// Load reads the catalog at path, or the embedded catalog when path is empty.
func Load(path string) ([]entity.CatalogItem, error) {
	if path == "" {
		return Parse(embeddedCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a catalog document and canonicalizes category spellings.
func Parse(data []byte) ([]entity.CatalogItem, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	for i, item := range doc.Items {
		category, ok := entity.ParseCategory(string(item.Category))
		if !ok {
			return nil, fmt.Errorf("catalog item %q: unknown category %q", item.ID, item.Category)
		}
		doc.Items[i].Category = category
	}
	return doc.Items, nil
}

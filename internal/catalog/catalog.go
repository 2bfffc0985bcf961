// Package catalog holds the job categories candidates can opt into.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go-candidate-feed/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed categories.yaml
var defaultCatalog []byte

type Catalog struct {
	categories []domain.JobCategory
	index      map[string]struct{}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded categories are invalid: %v", err))
	}
	return c
}

// Load reads a catalog from path, or returns Default when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var cats []domain.JobCategory
	if err := yaml.Unmarshal(raw, &cats); err != nil {
		return nil, fmt.Errorf("failed to parse categories: %w", err)
	}
	if len(cats) == 0 {
		return nil, errors.New("categories: catalog is empty")
	}

	c := &Catalog{categories: cats, index: make(map[string]struct{}, len(cats))}
	for _, cat := range cats {
		name := strings.TrimSpace(cat.Category)
		if name == "" {
			return nil, errors.New("categories: entry without a name")
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("categories: duplicate category %q", name)
		}
		c.index[name] = struct{}{}
	}
	return c, nil
}

func (c *Catalog) Categories() []domain.JobCategory {
	out := make([]domain.JobCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Has(tag string) bool {
	_, ok := c.index[tag]
	return ok
}

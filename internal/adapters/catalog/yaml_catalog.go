package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"pickup-route-service/internal/domain"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

type partDoc struct {
	Part string  `yaml:"part"`
	CX   float64 `yaml:"cx"`
	CY   float64 `yaml:"cy"`
}

type productDoc struct {
	ID      int64     `yaml:"id"`
	Product string    `yaml:"product"`
	Parts   []partDoc `yaml:"parts"`
}

// YAMLCatalog is an in-memory catalog parsed from a products.yaml document.
//
// Parts are identified by name. A part's ID is the position of its first
// appearance in the document, and the coordinates of that first appearance
// are kept. Listing a part more than once in a product adds to its quantity.
// YAMLCatalog is read-only after loading and safe for concurrent use.
type YAMLCatalog struct {
	products map[int64]domain.Product
	parts    []domain.Part
}

// LoadYAML reads a catalog from a products.yaml file.
func LoadYAML(path string) (*YAMLCatalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: open %q: %w", path, err)
	}
	defer f.Close()

	c, err := ParseYAML(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %q: %w", path, err)
	}
	return c, nil
}

// ParseYAML reads a catalog from a products.yaml document.
func ParseYAML(r io.Reader) (*YAMLCatalog, error) {
	var docs []productDoc
	if err := yaml.NewDecoder(r).Decode(&docs); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c := &YAMLCatalog{products: make(map[int64]domain.Product, len(docs))}
	partIDs := make(map[string]int64)

	for i, d := range docs {
		if _, ok := c.products[d.ID]; ok {
			return nil, fmt.Errorf("parse catalog: product #%d: duplicate product id %d", i+1, d.ID)
		}

		parts := make(map[int64]int, len(d.Parts))
		for j, p := range d.Parts {
			name := strings.TrimSpace(p.Part)
			if name == "" {
				return nil, fmt.Errorf("parse catalog: product %d part #%d: name cannot be empty", d.ID, j+1)
			}

			id, ok := partIDs[name]
			if !ok {
				id = int64(len(c.parts))
				partIDs[name] = id
				c.parts = append(c.parts, domain.Part{
					PartID:   id,
					Name:     name,
					Location: domain.Point{X: p.CX, Y: p.CY},
				})
			}
			parts[id]++
		}

		c.products[d.ID] = domain.Product{
			ProductID: d.ID,
			Name:      d.Product,
			Parts:     parts,
		}
	}

	return c, nil
}

func (c *YAMLCatalog) Product(_ context.Context, productID int64) (domain.Product, error) {
	p, ok := c.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("product %d: %w", productID, domain.ErrUnknownProduct)
	}
	return p, nil
}

func (c *YAMLCatalog) Part(_ context.Context, partID int64) (domain.Part, error) {
	if partID < 0 || partID >= int64(len(c.parts)) {
		return domain.Part{}, fmt.Errorf("part %d: %w", partID, domain.ErrUnknownPart)
	}
	return c.parts[partID], nil
}

// Products returns every product sorted by ID.
func (c *YAMLCatalog) Products() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Product) int {
		switch {
		case a.ProductID < b.ProductID:
			return -1
		case a.ProductID > b.ProductID:
			return 1
		}
		return 0
	})
	return out
}

// Parts returns every part sorted by ID.
func (c *YAMLCatalog) Parts() []domain.Part {
	return slices.Clone(c.parts)
}

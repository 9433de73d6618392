package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed products.json
var productsJSON []byte

// ImageSet holds the responsive variants of a product image.
type ImageSet struct {
	Mobile  string `json:"mobile"`
	Tablet  string `json:"tablet"`
	Desktop string `json:"desktop"`
}

// BoxItem is one entry of a product's "in the box" list.
type BoxItem struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// RelatedRef references another product by slug, not by ownership.
type RelatedRef struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

type Product struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Name        string       `json:"name"`
	ShortName   string       `json:"short_name"`
	Category    string       `json:"category"`
	IsNew       bool         `json:"is_new"`
	Price       float64      `json:"price"`
	Description string       `json:"description"`
	Features    string       `json:"features"`
	Images      ImageSet     `json:"images"`
	Includes    []BoxItem    `json:"includes"`
	Others      []RelatedRef `json:"others"`
}

// Catalog is a read-only product lookup loaded once at process start.
type Catalog struct {
	products []Product
	bySlug   map[string]*Product
	byID     map[string]*Product
}

func New() (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(productsJSON, &products); err != nil {
		return nil, fmt.Errorf("failed to parse embedded product data: %w", err)
	}

	c := &Catalog{
		products: products,
		bySlug:   make(map[string]*Product, len(products)),
		byID:     make(map[string]*Product, len(products)),
	}
	for i := range c.products {
		p := &c.products[i]
		if p.Price < 0 {
			return nil, fmt.Errorf("product %q has negative price", p.ID)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		if _, dup := c.bySlug[p.Slug]; dup {
			return nil, fmt.Errorf("duplicate product slug %q", p.Slug)
		}
		c.byID[p.ID] = p
		c.bySlug[p.Slug] = p
	}
	return c, nil
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByCategory returns the products of one category, preserving catalog order.
func (c *Catalog) ByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) BySlug(slug string) (*Product, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

func (c *Catalog) ByID(id string) (*Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Related resolves a product's "others" references to full product records.
// References to unknown slugs are skipped.
func (c *Catalog) Related(p *Product) []Product {
	var out []Product
	for _, ref := range p.Others {
		if rel, ok := c.bySlug[ref.Slug]; ok {
			out = append(out, *rel)
		}
	}
	return out
}

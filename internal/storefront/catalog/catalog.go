package catalog

import (
	"context"
	"fmt"
)

// Rating is the aggregate review score attached to a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// Product is a catalog entry as served by the remote product service.
// The storefront never mutates products; they are snapshotted into the
// cart at add time instead.
type Product struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Category    string  `json:"category"`
	Rating      Rating  `json:"rating"`
}

// Source provides products from the remote catalog service.
type Source interface {
	Products(ctx context.Context) ([]Product, error)
	ProductsByCategory(ctx context.Context, category string) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

// Catalog holds the product collection fetched for the current view.
// It is loaded once and read-only afterwards.
type Catalog struct {
	products []Product
}

// Load fetches the full product collection from src.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	products, err := src.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return &Catalog{products: products}, nil
}

// LoadCategory fetches only the products of a single category.
func LoadCategory(ctx context.Context, src Source, category string) (*Catalog, error) {
	products, err := src.ProductsByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog for category %q: %w", category, err)
	}
	return &Catalog{products: products}, nil
}

// Products returns the loaded collection in catalog order. The returned
// slice is a copy; callers may reorder it freely.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// PriceBounds returns the observed min and max price of the loaded
// collection. Bounds are recomputed from the current load, never carried
// over from a previous one. ok is false for an empty catalog.
func (c *Catalog) PriceBounds() (min, max float64, ok bool) {
	if len(c.products) == 0 {
		return 0, 0, false
	}
	min, max = c.products[0].Price, c.products[0].Price
	for _, p := range c.products[1:] {
		if p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max, true
}

package filter

import (
	"errors"
	"sort"
	"strings"

	"github.com/glutt28/ecommerce-prototype/internal/storefront/catalog"
)

// ErrInvalidPriceRange reports a Spec whose PriceMin exceeds PriceMax.
// That is a bug in the caller building the spec, so Apply fails loudly
// instead of silently returning an empty result.
var ErrInvalidPriceRange = errors.New("price range: min must not exceed max")

// SortKey selects the ordering applied after all filters.
type SortKey string

const (
	SortDefault    SortKey = "default"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRatingDesc SortKey = "rating-desc"
	SortNameAsc    SortKey = "name-asc"
)

// Spec is the set of user-chosen constraints applied to a catalog.
// It is transient view state and is never persisted.
//
// The price bounds are always applied; callers that want "no price
// filter" pass the catalog's observed bounds (see catalog.PriceBounds).
type Spec struct {
	SearchText string
	Category   string
	PriceMin   float64
	PriceMax   float64
	MinRating  float64
	SortKey    SortKey
}

// Apply filters and orders products according to spec. It is a pure
// function: the input slice is not modified and applying the same spec
// twice yields the same result.
//
// Filters run in a fixed order (category, text, price, rating), then the
// sort runs last. The sort is stable: products with an equal sort key keep
// their relative catalog order.
func Apply(products []catalog.Product, spec Spec) ([]catalog.Product, error) {
	if spec.PriceMin > spec.PriceMax {
		return nil, ErrInvalidPriceRange
	}

	out := make([]catalog.Product, 0, len(products))
	search := strings.ToLower(spec.SearchText)
	for _, p := range products {
		if spec.Category != "" && p.Category != spec.Category {
			continue
		}
		if search != "" && !matchesText(p, search) {
			continue
		}
		if p.Price < spec.PriceMin || p.Price > spec.PriceMax {
			continue
		}
		if spec.MinRating > 0 && p.Rating.Rate < spec.MinRating {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, spec.SortKey)
	return out, nil
}

func matchesText(p catalog.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}

func sortProducts(products []catalog.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRatingDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating.Rate > products[j].Rating.Rate
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Title) < strings.ToLower(products[j].Title)
		})
	}
	// SortDefault and unknown keys leave catalog order unchanged.
}

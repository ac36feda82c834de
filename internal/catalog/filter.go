// Package catalog holds pure, client-side transformations over fetched
// product lists. Filtering and sorting are reapplied in full on every call;
// there is no incremental index.
package catalog

import (
	"sort"

	"github.com/google/uuid"
	"github.com/uandc/arena-market/internal/models"
)

type SortKey string

const (
	// SortNewest keeps the upstream order: fetches are already ordered by
	// creation time descending.
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
)

// Filter describes the browse controls. A nil CategoryID means "all
// categories"; the price range is inclusive on both ends.
type Filter struct {
	CategoryID *uuid.UUID
	MinPrice   *int64
	MaxPrice   *int64
	Sort       SortKey
}

// Apply filters by category equality, then by price range, then stable-sorts
// by the chosen key. The input slice is not modified.
func Apply(products []models.Product, f Filter) []models.Product {
	result := make([]models.Product, 0, len(products))

	for _, p := range products {
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}

		if f.MinPrice != nil && p.Price < *f.MinPrice {
			continue
		}

		if f.MaxPrice != nil && p.Price > *f.MaxPrice {
			continue
		}

		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortNameAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}

	return result
}

func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc:
		return SortKey(s)
	default:
		return SortNewest
	}
}

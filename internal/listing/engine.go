package listing

import (
	"sort"
	"strconv"
	"strings"

	"stylesphere/storefront/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Apply filters and orders the view-model list. It is a pure function:
// the input slice is never mutated.
//
// The filter is the AND of all active clauses: search (case-insensitive
// substring over name, category and stringified id), category set
// (case-insensitive equality) and size (exact case membership). Price
// bounds are intentionally NOT re-checked here: they are sent to the
// catalog API as request parameters, and re-filtering locally would
// double-apply them.
//
// Sorting is stable: products comparing equal keep their input order, so
// applying the same filter and key twice yields the same list.
func Apply(products []domain.Product, filters domain.FilterState, key domain.SortKey) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, filters) {
			out = append(out, p)
		}
	}
	sortProducts(out, key)
	return out
}

func matches(p domain.Product, f domain.FilterState) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) &&
			!strings.Contains(strconv.Itoa(p.ID), q) {
			return false
		}
	}

	if len(f.Categories) > 0 {
		found := false
		for _, cat := range f.Categories {
			if strings.EqualFold(p.Category, cat) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.Size != "" {
		found := false
		for _, s := range p.AvailableSizes {
			if s == f.Size {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func sortProducts(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortNameAsc, domain.SortNameDesc:
		// Collators carry internal buffers, so build one per call
		col := collate.New(language.English)
		desc := key == domain.SortNameDesc
		sort.SliceStable(products, func(i, j int) bool {
			cmp := col.CompareString(products[i].Name, products[j].Name)
			if desc {
				return cmp > 0
			}
			return cmp < 0
		})
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].LastModified.After(products[j].LastModified)
		})
	case domain.SortOldest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].LastModified.Before(products[j].LastModified)
		})
	default:
		// Unknown or empty key keeps the input order
	}
}

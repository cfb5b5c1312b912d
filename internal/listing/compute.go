package listing

import "stylesphere/storefront/internal/domain"

// Listing is one rendered page of the filtered, ordered product list
type Listing struct {
	Products   []domain.Product
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Compute is the whole client-side pipeline as one pure function:
// normalize → filter/sort → clamp → slice. Fetching stays imperative (see
// Controller); everything downstream of the raw records is derived state
// and testable without a UI harness.
func Compute(raw []domain.RawProduct, filters domain.FilterState, key domain.SortKey, page, pageSize int) Listing {
	filtered := Apply(Normalize(raw), filters, key)

	totalPages := TotalPages(len(filtered), pageSize)
	page = ClampPage(page, totalPages)

	return Listing{
		Products:   Slice(filtered, page, pageSize),
		Page:       page,
		PageSize:   pageSize,
		TotalItems: len(filtered),
		TotalPages: totalPages,
	}
}

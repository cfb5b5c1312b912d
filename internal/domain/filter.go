package domain

// FilterState is the full set of active listing filters. The zero value
// means "no filters": all categories, unbounded price, any size, no search.
type FilterState struct {
	// Categories is a set of category names; empty matches everything
	Categories []string
	// PriceMin/PriceMax are nullable bounds; nil means unbounded. They are
	// sent to the catalog API as request parameters and are NOT re-applied
	// client-side (see listing.Apply).
	PriceMin *float64
	PriceMax *float64
	// Size is a single size; empty matches any
	Size string
	// Search is freeform search text
	Search string
}

// SortKey selects the listing order
type SortKey string

const (
	SortNone      SortKey = ""
	SortNameAsc   SortKey = "name-asc"
	SortNameDesc  SortKey = "name-desc"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
	SortOldest    SortKey = "oldest"
)

// ParseSortKey maps a string to a SortKey; unknown values fall back to
// SortNone, which keeps the input order.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc, SortNewest, SortOldest:
		return SortKey(s)
	default:
		return SortNone
	}
}

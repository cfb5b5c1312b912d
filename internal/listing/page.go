package listing

import "stylesphere/storefront/internal/domain"

// TotalPages returns ceil(totalItems/pageSize), 0 when the list is empty
func TotalPages(totalItems, pageSize int) int {
	if totalItems <= 0 || pageSize <= 0 {
		return 0
	}
	return (totalItems + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages]. An empty list still yields
// page 1 so the caller always has a valid current page.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages >= 1 && page > totalPages {
		return totalPages
	}
	return page
}

// Slice returns the window items[(page-1)*pageSize : page*pageSize].
// Out-of-range pages return an empty slice rather than erroring.
func Slice(items []domain.Product, page, pageSize int) []domain.Product {
	if page < 1 || pageSize < 1 {
		return nil
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

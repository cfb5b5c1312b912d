package listing

import (
	"time"

	"stylesphere/storefront/internal/domain"
)

// PlaceholderImage is shown for products whose first attribute carries no image
const PlaceholderImage = "/images/product-placeholder.png"

var modifiedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize maps raw catalog records into the flat view model. It is a pure
// mapping with no I/O and never fails: a product with zero attributes
// normalizes to price 0, placeholder image and an empty size list.
func Normalize(raw []domain.RawProduct) []domain.Product {
	products := make([]domain.Product, 0, len(raw))
	for _, r := range raw {
		products = append(products, normalizeOne(r))
	}
	return products
}

func normalizeOne(r domain.RawProduct) domain.Product {
	p := domain.Product{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.CategoryName,
		Status:       r.Status,
		Image:        PlaceholderImage,
		LastModified: parseModifiedDate(r.LastModifiedDate),
		Attributes:   r.Attributes,
	}

	if len(r.Attributes) > 0 {
		first := r.Attributes[0]
		p.Price = first.Price
		p.Size = first.Size
		if first.ProductImage != "" {
			p.Image = first.ProductImage
		}
	}

	p.AvailableSizes = distinctSizes(r.Attributes)
	return p
}

// distinctSizes deduplicates attribute sizes preserving first-seen order
func distinctSizes(attributes []domain.Attribute) []string {
	sizes := make([]string, 0, len(attributes))
	seen := make(map[string]struct{}, len(attributes))
	for _, a := range attributes {
		if a.Size == "" {
			continue
		}
		if _, ok := seen[a.Size]; ok {
			continue
		}
		seen[a.Size] = struct{}{}
		sizes = append(sizes, a.Size)
	}
	return sizes
}

func parseModifiedDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range modifiedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

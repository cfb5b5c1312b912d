package domain

import "time"

// Recognized clothing sizes. Attribute sizes outside this set are kept as-is
// but never offered by the size filter.
const (
	SizeXS  = "XS"
	SizeS   = "S"
	SizeM   = "M"
	SizeL   = "L"
	SizeXL  = "XL"
	SizeXXL = "XXL"
)

var Sizes = []string{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

// Attribute is one purchasable variant of a product (size + price + SKU)
type Attribute struct {
	Size         string  `json:"size"`
	Price        float64 `json:"price"`
	SKU          string  `json:"sku"`
	ProductImage string  `json:"productImage"`
}

// RawProduct is a product record exactly as the catalog API returns it
type RawProduct struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	CategoryName     string      `json:"categoryName"`
	Status           string      `json:"status"`
	LastModifiedDate string      `json:"lastModifiedDate"`
	Attributes       []Attribute `json:"attributes"`
}

// Product is the UI-ready view model derived from a RawProduct. It is
// immutable per fetch and recomputed whenever the raw list changes.
type Product struct {
	ID             int
	Name           string
	Price          float64
	Image          string
	Category       string
	Size           string
	AvailableSizes []string
	Status         string
	LastModified   time.Time
	// Raw attributes retained for later size/price lookup
	Attributes []Attribute
}

// AttributeForSize returns the attribute matching the given size (exact case)
func (p Product) AttributeForSize(size string) (Attribute, bool) {
	for _, a := range p.Attributes {
		if a.Size == size {
			return a, true
		}
	}
	return Attribute{}, false
}

// PriceForSize returns the price of the given size, or 0 when the product
// has no such size.
func (p Product) PriceForSize(size string) float64 {
	a, ok := p.AttributeForSize(size)
	if !ok {
		return 0
	}
	return a.Price
}

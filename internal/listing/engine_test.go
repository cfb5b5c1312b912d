package listing

import (
	"testing"
	"time"

	"stylesphere/storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Blue Shirt", Price: 500, Category: "Shirts", AvailableSizes: []string{"S", "M"},
			LastModified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, Name: "Red Hat", Price: 200, Category: "Accessories", AvailableSizes: []string{"M"},
			LastModified: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func names(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestApply_SortPriceAsc(t *testing.T) {
	result := Apply(testProducts(), domain.FilterState{}, domain.SortPriceAsc)

	require.Len(t, result, 2)
	assert.Equal(t, []string{"Red Hat", "Blue Shirt"}, names(result))
}

func TestApply_SearchShirt(t *testing.T) {
	result := Apply(testProducts(), domain.FilterState{Search: "shirt"}, domain.SortNone)

	require.Len(t, result, 1)
	assert.Equal(t, "Blue Shirt", result[0].Name)
}

func TestApply_SearchMatchesCategoryAndID(t *testing.T) {
	byCategory := Apply(testProducts(), domain.FilterState{Search: "ACCESSORIES"}, domain.SortNone)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Red Hat", byCategory[0].Name)

	byID := Apply(testProducts(), domain.FilterState{Search: "2"}, domain.SortNone)
	require.Len(t, byID, 1)
	assert.Equal(t, "Red Hat", byID[0].Name)
}

func TestApply_CategoryFilterCaseInsensitive(t *testing.T) {
	result := Apply(testProducts(), domain.FilterState{Categories: []string{"shirts"}}, domain.SortNone)

	require.Len(t, result, 1)
	assert.Equal(t, "Blue Shirt", result[0].Name)
}

func TestApply_SizeFilterExactCase(t *testing.T) {
	result := Apply(testProducts(), domain.FilterState{Size: "S"}, domain.SortNone)
	require.Len(t, result, 1)
	assert.Equal(t, "Blue Shirt", result[0].Name)

	// Sizes match exact case only
	result = Apply(testProducts(), domain.FilterState{Size: "s"}, domain.SortNone)
	assert.Empty(t, result)
}

func TestApply_EmptyFiltersKeepEverything(t *testing.T) {
	result := Apply(testProducts(), domain.FilterState{}, domain.SortNone)

	assert.Equal(t, []string{"Blue Shirt", "Red Hat"}, names(result))
}

func TestApply_SortKeys(t *testing.T) {
	tests := []struct {
		key  domain.SortKey
		want []string
	}{
		{domain.SortNameAsc, []string{"Blue Shirt", "Red Hat"}},
		{domain.SortNameDesc, []string{"Red Hat", "Blue Shirt"}},
		{domain.SortPriceAsc, []string{"Red Hat", "Blue Shirt"}},
		{domain.SortPriceDesc, []string{"Blue Shirt", "Red Hat"}},
		{domain.SortNewest, []string{"Red Hat", "Blue Shirt"}},
		{domain.SortOldest, []string{"Blue Shirt", "Red Hat"}},
		{domain.SortNone, []string{"Blue Shirt", "Red Hat"}},
		{domain.SortKey("garbage"), []string{"Blue Shirt", "Red Hat"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			result := Apply(testProducts(), domain.FilterState{}, tt.key)
			assert.Equal(t, tt.want, names(result))
		})
	}
}

func TestApply_StableForEqualKeys(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "A", Price: 100},
		{ID: 2, Name: "B", Price: 100},
		{ID: 3, Name: "C", Price: 100},
		{ID: 4, Name: "D", Price: 50},
	}

	result := Apply(products, domain.FilterState{}, domain.SortPriceAsc)

	assert.Equal(t, []string{"D", "A", "B", "C"}, names(result))
}

func TestApply_Idempotent(t *testing.T) {
	filters := domain.FilterState{Search: "a", Size: ""}

	for _, key := range []domain.SortKey{domain.SortNameAsc, domain.SortPriceDesc, domain.SortNone} {
		once := Apply(testProducts(), filters, key)
		twice := Apply(once, filters, key)
		assert.Equal(t, once, twice, "key %s", key)
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	products := testProducts()
	Apply(products, domain.FilterState{}, domain.SortPriceAsc)

	assert.Equal(t, []string{"Blue Shirt", "Red Hat"}, names(products))
}

func TestApply_PriceBoundsNotReapplied(t *testing.T) {
	// Price bounds are request parameters; nothing should drop out locally
	min, max := 300.0, 400.0
	result := Apply(testProducts(), domain.FilterState{PriceMin: &min, PriceMax: &max}, domain.SortNone)

	assert.Len(t, result, 2)
}

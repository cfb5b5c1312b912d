package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stylesphere/storefront/internal/listing"
	"stylesphere/storefront/internal/pricing"
	"stylesphere/storefront/internal/service"
)

// formatPrice renders a rupee amount with en-IN digit grouping
// (₹1,23,456), rounded to whole rupees.
func formatPrice(v float64) string {
	n := int64(math.Round(v))
	negative := n < 0
	if negative {
		n = -n
	}

	s := strconv.FormatInt(n, 10)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}

	if negative {
		s = "-" + s
	}
	return "₹" + s
}

func printListing(l listing.Listing) {
	if l.TotalItems == 0 {
		fmt.Println("No products found.")
		return
	}

	fmt.Printf("%-6s %-32s %-10s %-16s %s\n", "ID", "NAME", "PRICE", "CATEGORY", "SIZES")
	for _, p := range l.Products {
		fmt.Printf("%-6d %-32s %-10s %-16s %s\n",
			p.ID, truncate(p.Name, 32), formatPrice(p.Price), truncate(p.Category, 16), strings.Join(p.AvailableSizes, ","))
	}
	fmt.Printf("\nPage %d of %d (%d products)\n", l.Page, l.TotalPages, l.TotalItems)
}

func printProduct(v service.ProductView) {
	p := v.Product
	fmt.Printf("%s (#%d)\n", p.Name, p.ID)
	fmt.Printf("Category: %s\n", p.Category)
	fmt.Printf("Sizes:    %s\n", strings.Join(p.AvailableSizes, ", "))
	if v.SelectedSize != "" {
		fmt.Printf("Selected: %s (SKU %s)\n", v.SelectedSize, v.SKU)
	}
	fmt.Printf("Price:    %s  now %s (%d%% off)\n", formatPrice(v.UnitPrice), formatPrice(v.DiscountedPrice), pricing.DisplayDiscountPercent)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"stylesphere/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ListParams are the server-side listing parameters. Price bounds and search
// text are applied by the backend; category/size/sort refinement happens
// client-side in the listing package.
type ListParams struct {
	Search     string
	CategoryID int
	MinPrice   *float64
	MaxPrice   *float64
	Page       int
	Size       int
	Status     string
}

func (p ListParams) queryParams() map[string]string {
	q := map[string]string{
		"page": strconv.Itoa(p.Page),
		"size": strconv.Itoa(p.Size),
	}
	if p.Status != "" {
		q["status"] = p.Status
	}
	if p.Search != "" {
		q["search"] = p.Search
	}
	if p.CategoryID > 0 {
		q["categoryId"] = strconv.Itoa(p.CategoryID)
	}
	if p.MinPrice != nil {
		q["minPrice"] = strconv.FormatFloat(*p.MinPrice, 'f', -1, 64)
	}
	if p.MaxPrice != nil {
		q["maxPrice"] = strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64)
	}
	return q
}

// Key is a canonical form of the fetch-affecting parameters, used by the
// listing controller to detect when a re-fetch is actually needed.
func (p ListParams) Key() string {
	var b strings.Builder
	b.WriteString("search=")
	b.WriteString(p.Search)
	b.WriteString("&status=")
	b.WriteString(p.Status)
	b.WriteString("&categoryId=")
	b.WriteString(strconv.Itoa(p.CategoryID))
	b.WriteString("&minPrice=")
	if p.MinPrice != nil {
		b.WriteString(strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	b.WriteString("&maxPrice=")
	if p.MaxPrice != nil {
		b.WriteString(strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	return b.String()
}

// ProductPage is the canonical page shape regardless of which of the two
// response formats the backend produced.
type ProductPage struct {
	Products   []domain.RawProduct
	TotalCount int
	TotalPages int
}

// pagedResponse is the wrapped-object response shape
type pagedResponse struct {
	Products          []domain.RawProduct `json:"products"`
	TotalProductCount int                 `json:"totalProductCount"`
	TotalPages        int                 `json:"totalPages"`
}

// ListProducts fetches one page of products. The backend answers either a
// wrapped object or a bare array; both are normalized here so consumers see
// a single shape.
func (c *Client) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	url := "/products"

	resp, err := c.newRequest(ctx).
		SetQueryParams(params.queryParams()).
		Get(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	page, err := decodeProductPage([]byte(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode products response: %w", err)
	}

	log.Debugf("Fetched product page %d with %d items (%d total)", params.Page, len(page.Products), page.TotalCount)
	return page, nil
}

// decodeProductPage detects the response shape as an explicit parsing step
// rather than branching in consumers.
func decodeProductPage(data []byte) (*ProductPage, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var products []domain.RawProduct
		if err := json.Unmarshal(data, &products); err != nil {
			return nil, err
		}
		totalPages := 0
		if len(products) > 0 {
			totalPages = 1
		}
		return &ProductPage{Products: products, TotalCount: len(products), TotalPages: totalPages}, nil
	}

	var wrapped pagedResponse
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Products == nil {
		wrapped.Products = []domain.RawProduct{}
	}
	return &ProductPage{
		Products:   wrapped.Products,
		TotalCount: wrapped.TotalProductCount,
		TotalPages: wrapped.TotalPages,
	}, nil
}

// ListAllProducts fetches every page matching params, fanning out over the
// remaining pages after the first. The listing pipeline filters and sorts
// locally, so it needs the full matching corpus.
func (c *Client) ListAllProducts(ctx context.Context, params ListParams) ([]domain.RawProduct, error) {
	params.Page = 1
	first, err := c.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch first page: %w", err)
	}

	if first.TotalPages <= 1 {
		return first.Products, nil
	}

	pages := make([][]domain.RawProduct, first.TotalPages+1)
	pages[1] = first.Products

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)

	for pageNum := 2; pageNum <= first.TotalPages; pageNum++ {
		pageNum := pageNum
		g.Go(func() error {
			pageParams := params
			pageParams.Page = pageNum
			page, err := c.ListProducts(ctx, pageParams)
			if err != nil {
				return fmt.Errorf("failed to fetch page %d: %w", pageNum, err)
			}
			pages[pageNum] = page.Products
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]domain.RawProduct, 0, first.TotalCount)
	for _, page := range pages {
		all = append(all, page...)
	}

	log.Debugf("Fetched %d products across %d pages", len(all), first.TotalPages)
	return all, nil
}

// GetProduct fetches a single raw product by ID
func (c *Client) GetProduct(ctx context.Context, id int) (*domain.RawProduct, error) {
	url := fmt.Sprintf("/products/%d", id)

	var product domain.RawProduct
	resp, err := c.newRequest(ctx).
		SetResult(&product).
		Get(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	return &product, nil
}

// ListCategories fetches the category list
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	url := "/categories"

	var categories []domain.Category
	resp, err := c.newRequest(ctx).
		SetResult(&categories).
		Get(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	return categories, nil
}

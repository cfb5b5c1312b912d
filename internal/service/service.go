package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/config"
	"stylesphere/storefront/internal/domain"
	"stylesphere/storefront/internal/listing"
	"stylesphere/storefront/internal/pricing"
	"stylesphere/storefront/internal/session"
	"stylesphere/storefront/internal/state"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNotAuthenticated is returned by operations that need a logged-in customer
var ErrNotAuthenticated = errors.New("not logged in")

// Service ties the storefront flows together: browsing, product detail,
// account and cart.
type Service struct {
	client *client.Client
	guard  *session.Guard
	store  state.Store
	cfg    config.ListingConfig
	theme  string
}

func New(apiClient *client.Client, guard *session.Guard, store state.Store, cfg config.ListingConfig, defaultTheme string) *Service {
	return &Service{
		client: apiClient,
		guard:  guard,
		store:  store,
		cfg:    cfg,
		theme:  defaultTheme,
	}
}

// Guard exposes the session guard for route decisions
func (s *Service) Guard() *session.Guard {
	return s.guard
}

// BrowseOptions are one-shot listing parameters, as arriving from the CLI
type BrowseOptions struct {
	Search     string
	Categories []string
	Size       string
	MinPrice   *float64
	MaxPrice   *float64
	Sort       string
	Page       int
}

// BrowseListing fetches categories and the matching product corpus
// concurrently, then runs the pure listing pipeline over the result.
func (s *Service) BrowseListing(ctx context.Context, opts BrowseOptions) (listing.Listing, []domain.Category, error) {
	filters := domain.FilterState{
		Categories: opts.Categories,
		Size:       opts.Size,
		Search:     opts.Search,
		PriceMin:   opts.MinPrice,
		PriceMax:   opts.MaxPrice,
	}

	var (
		raw        []domain.RawProduct
		categories []domain.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raw, err = s.client.ListAllProducts(gctx, client.ListParams{
			Search:   filters.Search,
			MinPrice: filters.PriceMin,
			MaxPrice: filters.PriceMax,
			Size:     s.cfg.FetchSize,
			Status:   s.cfg.Status,
		})
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.client.ListCategories(gctx)
		if err != nil {
			// The listing still renders without the category panel
			log.Warnf("Failed to fetch categories: %v", err)
			categories = nil
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return listing.Listing{}, nil, err
	}

	result := listing.Compute(raw, filters, domain.ParseSortKey(opts.Sort), opts.Page, s.cfg.PageSize)
	log.Infof("Listing page %d/%d: %d of %d products", result.Page, result.TotalPages, len(result.Products), result.TotalItems)
	return result, categories, nil
}

// NewListingController builds an interactive listing controller wired to
// the API client and the configured defaults.
func (s *Service) NewListingController() *listing.Controller {
	return listing.NewController(s.client, listing.Options{
		PageSize:  s.cfg.PageSize,
		FetchSize: s.cfg.FetchSize,
		Status:    s.cfg.Status,
		Debounce:  time.Duration(s.cfg.DebounceMS) * time.Millisecond,
	})
}

// ProductView is the product detail page model: the view-model product with
// one size selected and its display pricing resolved.
type ProductView struct {
	Product         domain.Product
	SelectedSize    string
	SKU             string
	UnitPrice       float64
	DiscountedPrice float64
}

// ShowProduct fetches a product and resolves price/SKU for the selected
// size; an empty size selects the first attribute.
func (s *Service) ShowProduct(ctx context.Context, id int, size string) (ProductView, error) {
	raw, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return ProductView{}, err
	}

	products := listing.Normalize([]domain.RawProduct{*raw})
	product := products[0]

	view := ProductView{
		Product:      product,
		SelectedSize: product.Size,
		UnitPrice:    product.Price,
	}
	if len(product.Attributes) > 0 {
		view.SKU = product.Attributes[0].SKU
	}

	if size != "" {
		attr, ok := product.AttributeForSize(size)
		if !ok {
			return ProductView{}, &client.ValidationError{Field: "size", Message: fmt.Sprintf("size %s is not available for this product", size)}
		}
		view.SelectedSize = attr.Size
		view.SKU = attr.SKU
		view.UnitPrice = attr.Price
	}

	view.DiscountedPrice = pricing.DiscountedPrice(view.UnitPrice)
	return view, nil
}

// AddToCart builds the cart payload for the logged-in customer and submits it
func (s *Service) AddToCart(ctx context.Context, productID int, size string, quantity int) (*domain.CartLine, error) {
	user, ok := s.guard.User()
	if !ok {
		return nil, ErrNotAuthenticated
	}
	if size == "" {
		return nil, &client.ValidationError{Field: "size", Message: "please select a size"}
	}
	if quantity < 1 {
		return nil, &client.ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}

	view, err := s.ShowProduct(ctx, productID, size)
	if err != nil {
		return nil, err
	}

	discount, finalPrice := pricing.CartLine(view.UnitPrice, quantity)
	return s.client.AddToCart(ctx, domain.CartRequest{
		UserID:     user.ID,
		ProductID:  productID,
		SKU:        view.SKU,
		Size:       view.SelectedSize,
		Quantity:   quantity,
		UnitPrice:  view.UnitPrice,
		Discount:   discount,
		FinalPrice: finalPrice,
	})
}

// Login authenticates and establishes the session
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	return s.guard.Login(ctx, email, password)
}

// Signup registers a new account; it does not log in
func (s *Service) Signup(ctx context.Context, form client.SignupForm) (string, error) {
	result, err := s.client.Signup(ctx, form)
	if err != nil {
		return "", err
	}
	return result.Message, nil
}

// Logout drops the session
func (s *Service) Logout(ctx context.Context) {
	s.guard.Logout(ctx)
}

// Theme returns the stored theme preference, falling back to the default
func (s *Service) Theme(ctx context.Context) string {
	theme, err := s.store.Get(ctx, state.KeyTheme)
	if err != nil {
		log.Warnf("Failed to read theme preference: %v", err)
		return s.theme
	}
	if theme == "" {
		return s.theme
	}
	return theme
}

// SetTheme stores the theme preference, overwriting the previous value
func (s *Service) SetTheme(ctx context.Context, theme string) error {
	if theme != "light" && theme != "dark" {
		return &client.ValidationError{Field: "theme", Message: "theme must be light or dark"}
	}
	return s.store.Set(ctx, state.KeyTheme, theme)
}

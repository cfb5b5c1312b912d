package listing

import (
	"context"
	"strings"
	"sync"
	"time"

	"stylesphere/storefront/internal/client"
	"stylesphere/storefront/internal/debounce"
	"stylesphere/storefront/internal/domain"

	"github.com/benbjohnson/clock"
	log "github.com/sirupsen/logrus"
)

// Catalog is the slice of the API client the controller depends on
type Catalog interface {
	ListAllProducts(ctx context.Context, params client.ListParams) ([]domain.RawProduct, error)
}

const searchHistorySize = 5

// Options tune the controller; zero values fall back to the storefront
// defaults (12 items per page, 300ms debounce, active products).
type Options struct {
	PageSize  int
	FetchSize int
	Status    string
	Debounce  time.Duration
	Clock     clock.Clock
}

func (o *Options) fill() {
	if o.PageSize < 1 {
		o.PageSize = 12
	}
	if o.FetchSize < 1 {
		o.FetchSize = 100
	}
	if o.Status == "" {
		o.Status = "active"
	}
	if o.Debounce <= 0 {
		o.Debounce = 300 * time.Millisecond
	}
	if o.Clock == nil {
		o.Clock = clock.New()
	}
}

// Controller owns the listing page state: filters, sort key, current page
// and the fetched raw product corpus. Fetches are keyed by the normalized
// request parameters; responses belonging to a superseded request are
// discarded so an older reply can never overwrite newer state.
type Controller struct {
	catalog Catalog
	opts    Options

	deb       *debounce.Debouncer
	updates   chan struct{}
	done      chan struct{}
	closeOnce sync.Once

	mu         sync.Mutex
	ctx        context.Context
	filters    domain.FilterState
	sortKey    domain.SortKey
	page       int
	raw        []domain.RawProduct
	fetched    bool
	fetchedKey string
	listing    Listing
	loading    bool
	err        error
	seq        uint64
	history    []string
}

func NewController(catalog Catalog, opts Options) *Controller {
	opts.fill()
	return &Controller{
		catalog: catalog,
		opts:    opts,
		deb:     debounce.NewWithClock(opts.Debounce, opts.Clock),
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
		ctx:     context.Background(),
		page:    1,
	}
}

// Start performs the initial fetch and begins consuming settled search
// values from the debouncer.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.done:
				return
			case q := <-c.deb.C():
				c.applySearch(q)
			}
		}
	}()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked()
}

// Close cancels any pending debounce emission and stops the controller.
// Nothing is emitted or applied after Close returns.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.deb.Stop()
		close(c.done)
	})
}

// SetSearchInput feeds one raw keystroke's worth of search text. The value
// only reaches the filters once it has been stable for the quiet interval.
func (c *Controller) SetSearchInput(value string) {
	c.deb.Set(value)
}

func (c *Controller) applySearch(value string) {
	value = strings.TrimSpace(value)

	c.mu.Lock()
	defer c.mu.Unlock()

	if value == c.filters.Search {
		return
	}
	c.filters.Search = value
	c.page = 1
	c.recordHistoryLocked(value)
	c.syncLocked()
}

// SetCategories replaces the category filter set
func (c *Controller) SetCategories(categories []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Categories = categories
	c.page = 1
	c.syncLocked()
}

// SetSize replaces the size filter; empty means any size
func (c *Controller) SetSize(size string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.Size = size
	c.page = 1
	c.syncLocked()
}

// SetPriceBounds replaces the price bounds; nil means unbounded. Bounds are
// request parameters, so changing them forces a re-fetch.
func (c *Controller) SetPriceBounds(min, max *float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters.PriceMin = min
	c.filters.PriceMax = max
	c.page = 1
	c.syncLocked()
}

// SetSort replaces the sort key
func (c *Controller) SetSort(key domain.SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortKey = key
	c.page = 1
	c.syncLocked()
}

// SetPage moves to another page of the current result set
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = page
	c.syncLocked()
}

// ClearFilters resets every filter and the search text to defaults
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filters = domain.FilterState{}
	c.page = 1
	c.syncLocked()
}

// Refresh forces a re-fetch with the current parameters
func (c *Controller) Refresh() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked()
}

// Listing returns the current rendered page
func (c *Controller) Listing() Listing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listing
}

// Loading reports whether a fetch for the current parameters is in flight
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the page-level error from the last completed fetch, if any
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Filters returns a snapshot of the active filter state
func (c *Controller) Filters() domain.FilterState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SearchHistory returns the last settled queries, most recent first
func (c *Controller) SearchHistory() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.history))
	copy(out, c.history)
	return out
}

// Updates signals state changes; at most one notification is buffered
func (c *Controller) Updates() <-chan struct{} {
	return c.updates
}

func (c *Controller) params() client.ListParams {
	return client.ListParams{
		Search:   c.filters.Search,
		MinPrice: c.filters.PriceMin,
		MaxPrice: c.filters.PriceMax,
		Page:     1,
		Size:     c.opts.FetchSize,
		Status:   c.opts.Status,
	}
}

// syncLocked re-fetches when the request parameters changed, otherwise
// recomputes the listing from the corpus already in hand.
func (c *Controller) syncLocked() {
	if !c.fetched || c.params().Key() != c.fetchedKey {
		c.dispatchLocked()
		return
	}
	c.recomputeLocked()
	c.notify()
}

func (c *Controller) dispatchLocked() {
	c.seq++
	seq := c.seq
	params := c.params()
	ctx := c.ctx

	c.loading = true
	c.notify()

	go func() {
		raw, err := c.catalog.ListAllProducts(ctx, params)

		c.mu.Lock()
		defer c.mu.Unlock()

		if seq != c.seq {
			log.Debugf("Discarding stale product response (request %d superseded by %d)", seq, c.seq)
			return
		}

		// The loading flag is cleared on every path for the current request
		c.loading = false
		if err != nil {
			log.Errorf("Failed to fetch products: %v", err)
			c.err = err
			c.raw = nil
		} else {
			c.err = nil
			c.raw = raw
		}
		c.fetched = true
		c.fetchedKey = params.Key()
		c.recomputeLocked()
		c.notify()
	}()
}

func (c *Controller) recomputeLocked() {
	c.listing = Compute(c.raw, c.filters, c.sortKey, c.page, c.opts.PageSize)
	c.page = c.listing.Page
}

func (c *Controller) recordHistoryLocked(query string) {
	if query == "" {
		return
	}
	for _, h := range c.history {
		if h == query {
			return
		}
	}
	c.history = append([]string{query}, c.history...)
	if len(c.history) > searchHistorySize {
		c.history = c.history[:searchHistorySize]
	}
}

func (c *Controller) notify() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

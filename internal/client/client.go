package client

import (
	"context"
	"sync"
	"time"

	"stylesphere/storefront/internal/config"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// Client talks to the StyleSphere catalog/cart/auth API. It is a thin
// request/response mapper: no caching, no automatic retries; every call
// re-fetches.
type Client struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	baseURL    string
	maxWorkers int

	mu             sync.RWMutex
	authToken      string
	onUnauthorized func()
}

func New(cfg config.APIConfig) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.Timeout) * time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	maxWorkers := cfg.MaxWorkers
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	return &Client{
		rl:         rl,
		httpClient: httpClient,
		baseURL:    cfg.BaseURL,
		maxWorkers: maxWorkers,
	}
}

// SetAuthToken attaches a bearer token to every subsequent request
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// ClearAuthToken removes the bearer token
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = ""
}

// OnUnauthorized registers a hook invoked whenever the API answers 401.
// The session guard uses it to invalidate the stored credential.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) newRequest(ctx context.Context) *resty.Request {
	c.rl.Take()

	req := c.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", uuid.NewString())

	c.mu.RLock()
	if c.authToken != "" {
		req.SetAuthToken(c.authToken)
	}
	c.mu.RUnlock()

	return req
}

// checkResponse maps a completed call to the error taxonomy: transport
// failures become *NetworkError, non-2xx responses become *ServerError.
func (c *Client) checkResponse(url string, resp *resty.Response, err error) error {
	if err != nil {
		log.Debugf("Transport failure for %s: %v", url, err)
		return &NetworkError{URL: url, Err: err}
	}

	if resp.IsError() {
		if resp.StatusCode() == 401 {
			c.mu.RLock()
			fn := c.onUnauthorized
			c.mu.RUnlock()
			if fn != nil {
				fn()
			}
		}
		log.Debugf("Server error for %s: %s", url, resp.Status())
		return &ServerError{URL: url, Status: resp.StatusCode()}
	}

	return nil
}

package client

import (
	"context"

	"stylesphere/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
)

// AddToCart creates a cart line via POST /cart/add
func (c *Client) AddToCart(ctx context.Context, req domain.CartRequest) (*domain.CartLine, error) {
	url := "/cart/add"

	var line domain.CartLine
	resp, err := c.newRequest(ctx).
		SetBody(req).
		SetResult(&line).
		Post(url)
	if err := c.checkResponse(url, resp, err); err != nil {
		return nil, err
	}

	log.Debugf("Added product %d (size %s, qty %d) to cart for user %d", req.ProductID, req.Size, req.Quantity, req.UserID)
	return &line, nil
}

// internal/adapters/rest/orders.go
package rest

import (
	"context"
	"net/http"

	"github.com/mahabubulhasibshawon/glamour-storefront/internal/domain"
)

func (c *Client) CreateOrder(ctx context.Context, order *domain.OrderSubmission) (*domain.OrderReceipt, error) {
	resp, err := c.fetch(ctx, request{
		endpoint: "orders.create",
		method:   http.MethodPost,
		url:      c.apiBase + "/orders/create",
		body:     order,
	})
	if err != nil {
		return nil, err
	}
	var env orderEnvelope
	if err := decode("orders.create", resp, &env); err != nil {
		return nil, err
	}
	return env.receipt(), nil
}

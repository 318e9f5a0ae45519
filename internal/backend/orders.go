package backend

import (
	"context"
	"net/http"
	"net/url"

	"anilink/internal/domain/order"
)

var _ order.Upstream = (*Client)(nil)

func (c *Client) ListOrders(ctx context.Context, status string) ([]order.Order, error) {
	var out []order.Order
	err := c.DoJSON(ctx, http.MethodGet, withQuery("/orders", url.Values{"status": {status}}), nil, &out)
	return out, err
}

func (c *Client) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	var out *order.Order
	err := c.DoJSON(ctx, http.MethodGet, pathID("/orders", id), nil, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, req order.CreateOrderRequest) (*order.Order, error) {
	var out order.Order
	if err := c.DoJSON(ctx, http.MethodPost, "/orders", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelOrder(ctx context.Context, id string) (*order.Order, error) {
	var out order.Order
	if err := c.DoJSON(ctx, http.MethodPut, pathID("/orders", id, "cancel"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSellerOrders(ctx context.Context, statusFilter string) ([]order.SellerOrder, error) {
	var out []order.SellerOrder
	path := withQuery("/seller/orders", url.Values{"status_filter": {statusFilter}})
	err := c.DoJSON(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

func (c *Client) UpdateSellerOrderStatus(ctx context.Context, id, status string) (*order.SellerOrder, error) {
	var out order.SellerOrder
	body := map[string]string{"status": status}
	if err := c.DoJSON(ctx, http.MethodPatch, pathID("/seller/orders", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

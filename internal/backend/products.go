package backend

import (
	"context"
	"net/http"

	"anilink/internal/domain/product"
)

var _ product.Upstream = (*Client)(nil)

func (c *Client) ListSellerProducts(ctx context.Context) ([]product.SellerProduct, error) {
	var out []product.SellerProduct
	err := c.DoJSON(ctx, http.MethodGet, "/seller/products", nil, &out)
	return out, err
}

func (c *Client) GetSellerProduct(ctx context.Context, id string) (*product.SellerProduct, error) {
	var out *product.SellerProduct
	err := c.DoJSON(ctx, http.MethodGet, pathID("/seller/products", id), nil, &out)
	return out, err
}

func (c *Client) CreateSellerProduct(ctx context.Context, req product.CreateProductRequest) (*product.SellerProduct, error) {
	var out product.SellerProduct
	if err := c.DoJSON(ctx, http.MethodPost, "/seller/products", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSellerProduct(ctx context.Context, id string, req product.UpdateProductRequest) (*product.SellerProduct, error) {
	var out product.SellerProduct
	if err := c.DoJSON(ctx, http.MethodPatch, pathID("/seller/products", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMarketplaceProducts(ctx context.Context) ([]product.MarketplaceProduct, error) {
	var out []product.MarketplaceProduct
	err := c.DoJSON(ctx, http.MethodGet, "/marketplace/products", nil, &out)
	return out, err
}

func (c *Client) GetMarketplaceProduct(ctx context.Context, id string) (*product.MarketplaceProduct, error) {
	var out *product.MarketplaceProduct
	err := c.DoJSON(ctx, http.MethodGet, pathID("/marketplace/products", id), nil, &out)
	return out, err
}

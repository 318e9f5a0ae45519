package product

import "context"

type Upstream interface {
	ListSellerProducts(ctx context.Context) ([]SellerProduct, error)
	GetSellerProduct(ctx context.Context, id string) (*SellerProduct, error)
	CreateSellerProduct(ctx context.Context, req CreateProductRequest) (*SellerProduct, error)
	UpdateSellerProduct(ctx context.Context, id string, req UpdateProductRequest) (*SellerProduct, error)

	ListMarketplaceProducts(ctx context.Context) ([]MarketplaceProduct, error)
	GetMarketplaceProduct(ctx context.Context, id string) (*MarketplaceProduct, error)
}

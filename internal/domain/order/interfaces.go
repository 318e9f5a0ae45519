package order

import "context"

// Upstream is the slice of the backend the order service depends on.
type Upstream interface {
	ListOrders(ctx context.Context, status string) ([]Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error)
	CancelOrder(ctx context.Context, id string) (*Order, error)
	ListSellerOrders(ctx context.Context, statusFilter string) ([]SellerOrder, error)
	UpdateSellerOrderStatus(ctx context.Context, id, status string) (*SellerOrder, error)
}

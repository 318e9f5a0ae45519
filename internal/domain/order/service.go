package order

import (
	"context"
	"net/url"

	"anilink/internal/cache"
	"anilink/internal/pkg/apierror"
)

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

// List returns the buyer's orders, optionally filtered by status.
func (s *Service) List(ctx context.Context, cc *cache.Coordinator, status string) (*ListResponse, error) {
	if status != "" && !IsKnownStatus(status) {
		return nil, ErrInvalidStatus
	}
	status = string(normalize(status))

	key := cache.ListKey(cache.Orders, url.Values{"status": {status}})
	res, err := cache.Load(ctx, cc, key, func(ctx context.Context) ([]Order, error) {
		return s.upstream.ListOrders(ctx, status)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load orders")
	}

	views := make([]View, 0, len(res.Data))
	for _, o := range res.Data {
		views = append(views, NewView(o))
	}
	return &ListResponse{Orders: views, Meta: res.Meta()}, nil
}

func (s *Service) Get(ctx context.Context, cc *cache.Coordinator, id string) (*DetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.Orders, id), func(ctx context.Context) (*Order, error) {
		return s.upstream.GetOrder(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load order")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return &DetailResponse{Order: NewView(*res.Data), Meta: res.Meta()}, nil
}

func (s *Service) Create(ctx context.Context, cc *cache.Coordinator, req CreateOrderRequest) (*View, error) {
	o, err := s.upstream.CreateOrder(ctx, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to place order")
	}
	cc.AfterMutation(cache.CreateOrder, o.ID)
	v := NewView(*o)
	return &v, nil
}

func (s *Service) Cancel(ctx context.Context, cc *cache.Coordinator, id string) (*View, error) {
	o, err := s.upstream.CancelOrder(ctx, id)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to cancel")
	}
	cc.AfterMutation(cache.CancelOrder, id)
	v := NewView(*o)
	return &v, nil
}

// ListSeller returns orders containing the seller's products.
func (s *Service) ListSeller(ctx context.Context, cc *cache.Coordinator, statusFilter string) (*SellerListResponse, error) {
	if statusFilter != "" && !IsKnownStatus(statusFilter) {
		return nil, ErrInvalidStatus
	}
	statusFilter = string(normalize(statusFilter))

	key := cache.ListKey(cache.SellerOrders, url.Values{"status_filter": {statusFilter}})
	res, err := cache.Load(ctx, cc, key, func(ctx context.Context) ([]SellerOrder, error) {
		return s.upstream.ListSellerOrders(ctx, statusFilter)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load orders")
	}
	return &SellerListResponse{Orders: res.Data, Meta: res.Meta()}, nil
}

// UpdateSellerStatus moves an order along the fulfilment pipeline.
func (s *Service) UpdateSellerStatus(ctx context.Context, cc *cache.Coordinator, id, status string) (*SellerOrder, error) {
	if !IsSellerSettable(status) {
		return nil, ErrInvalidStatus
	}
	o, err := s.upstream.UpdateSellerOrderStatus(ctx, id, string(normalize(status)))
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to update")
	}
	cc.AfterMutation(cache.UpdateSellerOrderStatus, id)
	return o, nil
}

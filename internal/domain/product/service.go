package product

import (
	"context"
	"sort"
	"strings"

	"anilink/internal/cache"
	"anilink/internal/pkg/apierror"
)

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

func (s *Service) ListSeller(ctx context.Context, cc *cache.Coordinator) (*SellerListResponse, error) {
	res, err := cache.Load(ctx, cc, cache.ListKey(cache.SellerProducts, nil), s.upstream.ListSellerProducts)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load products")
	}
	return &SellerListResponse{Products: res.Data, Meta: res.Meta()}, nil
}

func (s *Service) GetSeller(ctx context.Context, cc *cache.Coordinator, id string) (*SellerDetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.SellerProducts, id), func(ctx context.Context) (*SellerProduct, error) {
		return s.upstream.GetSellerProduct(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load product")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return &SellerDetailResponse{Product: *res.Data, Meta: res.Meta()}, nil
}

func (s *Service) Create(ctx context.Context, cc *cache.Coordinator, req CreateProductRequest) (*SellerProduct, error) {
	p, err := s.upstream.CreateSellerProduct(ctx, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to add product")
	}
	cc.AfterMutation(cache.CreateSellerProduct, p.ID)
	return p, nil
}

func (s *Service) Update(ctx context.Context, cc *cache.Coordinator, id string, req UpdateProductRequest) (*SellerProduct, error) {
	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}
	p, err := s.upstream.UpdateSellerProduct(ctx, id, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to update")
	}
	cc.AfterMutation(cache.UpdateSellerProduct, id)
	return p, nil
}

// ListMarketplace loads the full listing once and filters it locally, so
// every filter combination is served from the same cache entry.
func (s *Service) ListMarketplace(ctx context.Context, cc *cache.Coordinator, f MarketplaceFilter) (*MarketplaceListResponse, error) {
	res, err := cache.Load(ctx, cc, cache.ListKey(cache.MarketplaceProducts, nil), s.upstream.ListMarketplaceProducts)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load products")
	}

	products := filterMarketplace(res.Data, f)
	return &MarketplaceListResponse{
		Products:   products,
		Total:      len(products),
		Categories: categories(res.Data),
		Meta:       res.Meta(),
	}, nil
}

func (s *Service) GetMarketplace(ctx context.Context, cc *cache.Coordinator, id string) (*MarketplaceDetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.MarketplaceProducts, id), func(ctx context.Context) (*MarketplaceProduct, error) {
		return s.upstream.GetMarketplaceProduct(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load product")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return &MarketplaceDetailResponse{Product: *res.Data, Meta: res.Meta()}, nil
}

func filterMarketplace(all []MarketplaceProduct, f MarketplaceFilter) []MarketplaceProduct {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]MarketplaceProduct, 0, len(all))
	for _, p := range all {
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.VerifiedOnly && !p.IsVerified {
			continue
		}
		if f.InStockOnly && !p.InStock() {
			continue
		}
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p MarketplaceProduct, query string) bool {
	if strings.Contains(strings.ToLower(p.Title), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.SellerName), query) {
		return true
	}
	return p.Description != nil && strings.Contains(strings.ToLower(*p.Description), query)
}

func categories(all []MarketplaceProduct) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, p := range all {
		c := strings.ToLower(strings.TrimSpace(p.Category))
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

package medcase

import (
	"context"
	"net/url"
	"strings"

	"anilink/internal/cache"
	"anilink/internal/domain"
	"anilink/internal/pkg/apierror"
)

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

// ResolveScope picks the listing scope. Vets see their assigned cases unless
// they ask otherwise; everyone else sees their own.
func ResolveScope(role domain.UserRole, scope string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(scope)) {
	case "":
		if role == domain.RoleVet {
			return ScopeVet, nil
		}
		return ScopeOwner, nil
	case ScopeOwner:
		return ScopeOwner, nil
	case ScopeVet:
		return ScopeVet, nil
	default:
		return "", ErrInvalidScope
	}
}

func (s *Service) List(ctx context.Context, cc *cache.Coordinator, role domain.UserRole, f ListFilter) (*ListResponse, error) {
	scope, err := ResolveScope(role, f.Scope)
	if err != nil {
		return nil, err
	}
	f.Scope = scope
	f.Status = strings.ToLower(strings.TrimSpace(f.Status))

	key := cache.ListKey(cache.Cases, url.Values{
		"animal_id": {f.AnimalID},
		"status":    {f.Status},
		"scope":     {f.Scope},
	})
	res, err := cache.Load(ctx, cc, key, func(ctx context.Context) ([]Case, error) {
		return s.upstream.ListCases(ctx, f)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load cases")
	}
	return &ListResponse{Cases: res.Data, Scope: scope, Meta: res.Meta()}, nil
}

func (s *Service) Get(ctx context.Context, cc *cache.Coordinator, id string) (*DetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.Cases, id), func(ctx context.Context) (*Case, error) {
		return s.upstream.GetCase(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load case")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return &DetailResponse{Case: *res.Data, Meta: res.Meta()}, nil
}

func (s *Service) Create(ctx context.Context, cc *cache.Coordinator, req CreateCaseRequest) (*Case, error) {
	out, err := s.upstream.CreateCase(ctx, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to create case")
	}
	cc.AfterMutation(cache.CreateCase, out.ID)
	return out, nil
}

// Close closes a case. A case the cache already knows is closed is refused
// without a backend round trip.
func (s *Service) Close(ctx context.Context, cc *cache.Coordinator, id string) (*Case, error) {
	if e, ok := cc.Get(cache.DetailKey(cache.Cases, id)); ok && e.Status == cache.Fresh {
		if known, ok := e.Data.(*Case); ok && known != nil && known.IsClosed() {
			return nil, ErrAlreadyClosed
		}
	}

	out, err := s.upstream.CloseCase(ctx, id)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to close case")
	}
	cc.AfterMutation(cache.CloseCase, id)
	return out, nil
}

package animal

import (
	"context"

	"anilink/internal/cache"
	"anilink/internal/pkg/apierror"
)

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

func (s *Service) List(ctx context.Context, cc *cache.Coordinator) (*ListResponse, error) {
	res, err := cache.Load(ctx, cc, cache.ListKey(cache.Animals, nil), s.upstream.ListAnimals)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load animals")
	}
	return &ListResponse{Animals: res.Data, Meta: res.Meta()}, nil
}

func (s *Service) Get(ctx context.Context, cc *cache.Coordinator, id string) (*DetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.Animals, id), func(ctx context.Context) (*Animal, error) {
		return s.upstream.GetAnimal(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load animal")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	return &DetailResponse{Animal: *res.Data, Meta: res.Meta()}, nil
}

// Create adds an animal. The new record shows up in the cached list right
// away; the list is still invalidated so the next read reconciles.
func (s *Service) Create(ctx context.Context, cc *cache.Coordinator, req CreateAnimalRequest) (*Animal, error) {
	a, err := s.upstream.CreateAnimal(ctx, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to add animal")
	}
	cache.Prepend(cc, cache.Animals, *a, animalID)
	cc.AfterMutation(cache.CreateAnimal, a.ID)
	return a, nil
}

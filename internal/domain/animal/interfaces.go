package animal

import "context"

type Upstream interface {
	ListAnimals(ctx context.Context) ([]Animal, error)
	GetAnimal(ctx context.Context, id string) (*Animal, error)
	CreateAnimal(ctx context.Context, req CreateAnimalRequest) (*Animal, error)
}

package medcase

import "context"

type Upstream interface {
	ListCases(ctx context.Context, f ListFilter) ([]Case, error)
	GetCase(ctx context.Context, id string) (*Case, error)
	CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error)
	CloseCase(ctx context.Context, id string) (*Case, error)
}

package backend

import (
	"context"
	"net/http"

	"anilink/internal/domain/animal"
)

var _ animal.Upstream = (*Client)(nil)

func (c *Client) ListAnimals(ctx context.Context) ([]animal.Animal, error) {
	var out []animal.Animal
	err := c.DoJSON(ctx, http.MethodGet, "/animals", nil, &out)
	return out, err
}

func (c *Client) GetAnimal(ctx context.Context, id string) (*animal.Animal, error) {
	var out *animal.Animal
	err := c.DoJSON(ctx, http.MethodGet, pathID("/animals", id), nil, &out)
	return out, err
}

func (c *Client) CreateAnimal(ctx context.Context, req animal.CreateAnimalRequest) (*animal.Animal, error) {
	var out animal.Animal
	if err := c.DoJSON(ctx, http.MethodPost, "/animals", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package animal

import "anilink/internal/cache"

type CreateAnimalRequest struct {
	Name        string `json:"name" binding:"required"`
	Type        string `json:"type" binding:"required"`
	Breed       string `json:"breed,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Color       string `json:"color,omitempty"`
	TagNumber   string `json:"tagNumber,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type ListResponse struct {
	Animals []Animal   `json:"animals"`
	Meta    cache.Meta `json:"meta"`
}

type DetailResponse struct {
	Animal Animal     `json:"animal"`
	Meta   cache.Meta `json:"meta"`
}

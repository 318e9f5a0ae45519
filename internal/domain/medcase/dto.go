package medcase

import "anilink/internal/cache"

// CreateCaseRequest mirrors the multipart form the backend accepts.
type CreateCaseRequest struct {
	AnimalType string `form:"animal_type" binding:"required"`
	Symptoms   string `form:"symptoms" binding:"required"`
	Notes      string `form:"notes"`
	Location   string `form:"location"`
	District   string `form:"district"`
	AnimalID   string `form:"animal_id"`

	Images []Attachment `form:"-"`
}

type ListResponse struct {
	Cases []Case     `json:"cases"`
	Scope string     `json:"scope"`
	Meta  cache.Meta `json:"meta"`
}

type DetailResponse struct {
	Case Case       `json:"case"`
	Meta cache.Meta `json:"meta"`
}

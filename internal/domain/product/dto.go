package product

import "anilink/internal/cache"

type CreateProductRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description,omitempty"`
	Category    string   `json:"category" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	ImageURLs   []string `json:"imageUrls,omitempty" binding:"omitempty,dive,url"`
	Stock       *int     `json:"stock,omitempty" binding:"omitempty,min=0"`
}

// UpdateProductRequest is a partial update; nil fields are left unchanged.
type UpdateProductRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURLs   []string `json:"imageUrls,omitempty" validate:"omitempty,dive,url"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,min=0"`
}

func (r UpdateProductRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Category == nil &&
		r.Price == nil && r.ImageURLs == nil && r.Stock == nil
}

// MarketplaceFilter narrows the cached marketplace listing.
type MarketplaceFilter struct {
	Category     string `form:"category"`
	Query        string `form:"q"`
	VerifiedOnly bool   `form:"verified"`
	InStockOnly  bool   `form:"in_stock"`
}

type SellerListResponse struct {
	Products []SellerProduct `json:"products"`
	Meta     cache.Meta      `json:"meta"`
}

type SellerDetailResponse struct {
	Product SellerProduct `json:"product"`
	Meta    cache.Meta    `json:"meta"`
}

type MarketplaceListResponse struct {
	Products   []MarketplaceProduct `json:"products"`
	Total      int                  `json:"total"`
	Categories []string             `json:"categories"`
	Meta       cache.Meta           `json:"meta"`
}

type MarketplaceDetailResponse struct {
	Product MarketplaceProduct `json:"product"`
	Meta    cache.Meta         `json:"meta"`
}

package product

import (
	"errors"
	"net/http"

	"anilink/internal/pkg/response"
	"anilink/internal/pkg/validator"
	"anilink/internal/session"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListSellerProducts returns the seller's own catalogue.
// @Summary		List my products
// @Tags		Seller
// @Security	BearerAuth
// @Success		200	{object}	SellerListResponse
// @Router		/seller/products [GET]
func (h *Handler) ListSellerProducts(c *gin.Context) {
	out, err := h.service.ListSeller(c.Request.Context(), session.From(c))
	if err != nil {
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load products")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetSellerProduct
// @Summary		Get my product
// @Tags		Seller
// @Security	BearerAuth
// @Param		id	path	string	true	"Product ID"
// @Success		200	{object}	SellerDetailResponse
// @Router		/seller/products/{id} [GET]
func (h *Handler) GetSellerProduct(c *gin.Context) {
	out, err := h.service.GetSeller(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load product")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateSellerProduct
// @Summary		Add product
// @Tags		Seller
// @Security	BearerAuth
// @Param		request	body	CreateProductRequest	true	"Product"
// @Success		201	{object}	SellerProduct
// @Failure		400	{object}	map[string]interface{}
// @Router		/seller/products [POST]
func (h *Handler) CreateSellerProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	p, err := h.service.Create(c.Request.Context(), session.From(c), req)
	if err != nil {
		response.Upstream(c, err, "CREATE_FAILED", "Failed to add product")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"product": p})
}

// UpdateSellerProduct applies a partial update.
// @Summary		Update product
// @Tags		Seller
// @Security	BearerAuth
// @Param		id		path	string					true	"Product ID"
// @Param		request	body	UpdateProductRequest	true	"Fields to change"
// @Success		200	{object}	SellerProduct
// @Failure		400	{object}	map[string]interface{}
// @Router		/seller/products/{id} [PUT]
func (h *Handler) UpdateSellerProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), session.From(c), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, ErrEmptyUpdate) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Nothing to update")
			return
		}
		response.Upstream(c, err, "UPDATE_FAILED", "Failed to update")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"product": p})
}

// ListMarketplaceProducts
// @Summary		Browse marketplace
// @Tags		Marketplace
// @Security	BearerAuth
// @Param		category	query	string	false	"Category"
// @Param		q			query	string	false	"Search text"
// @Param		verified	query	bool	false	"Verified sellers only"
// @Param		in_stock	query	bool	false	"In stock only"
// @Success		200	{object}	MarketplaceListResponse
// @Router		/marketplace/products [GET]
func (h *Handler) ListMarketplaceProducts(c *gin.Context) {
	var f MarketplaceFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid filter", validator.Fields(err))
		return
	}

	out, err := h.service.ListMarketplace(c.Request.Context(), session.From(c), f)
	if err != nil {
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load products")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetMarketplaceProduct
// @Summary		Marketplace product
// @Tags		Marketplace
// @Security	BearerAuth
// @Param		id	path	string	true	"Product ID"
// @Success		200	{object}	MarketplaceDetailResponse
// @Router		/marketplace/products/{id} [GET]
func (h *Handler) GetMarketplaceProduct(c *gin.Context) {
	out, err := h.service.GetMarketplace(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Product not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load product")
		return
	}
	response.Success(c, http.StatusOK, out)
}

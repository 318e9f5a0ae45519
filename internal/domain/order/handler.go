package order

import (
	"errors"
	"net/http"
	"strings"

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

// ListOrders returns the buyer's orders.
// @Summary		List my orders
// @Tags		Orders
// @Security	BearerAuth
// @Param		status	query	string	false	"pending|confirmed|packed|dispatched|delivered|cancelled"
// @Success		200	{object}	ListResponse
// @Failure		400	{object}	map[string]interface{}
// @Failure		502	{object}	map[string]interface{}
// @Router		/orders [GET]
func (h *Handler) ListOrders(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), session.From(c), c.Query("status"))
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load orders")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetOrder returns one order.
// @Summary		Get order
// @Tags		Orders
// @Security	BearerAuth
// @Param		id	path	string	true	"Order ID"
// @Success		200	{object}	DetailResponse
// @Failure		404	{object}	map[string]interface{}
// @Router		/orders/{id} [GET]
func (h *Handler) GetOrder(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load order")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateOrder places an order (checkout).
// @Summary		Place order
// @Tags		Orders
// @Security	BearerAuth
// @Param		request	body	CreateOrderRequest	true	"Order"
// @Success		201	{object}	View
// @Failure		400	{object}	map[string]interface{}
// @Router		/orders [POST]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	v, err := h.service.Create(c.Request.Context(), session.From(c), req)
	if err != nil {
		response.Upstream(c, err, "CREATE_FAILED", "Failed to place order")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"order": v})
}

// CancelOrder cancels a pending or confirmed order.
// @Summary		Cancel order
// @Tags		Orders
// @Security	BearerAuth
// @Param		id	path	string	true	"Order ID"
// @Success		200	{object}	View
// @Router		/orders/{id}/cancel [PUT]
func (h *Handler) CancelOrder(c *gin.Context) {
	v, err := h.service.Cancel(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		response.Upstream(c, err, "CANCEL_FAILED", "Failed to cancel")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": v})
}

// ListSellerOrders returns orders containing the seller's products.
// @Summary		List seller orders
// @Tags		Seller
// @Security	BearerAuth
// @Param		status	query	string	false	"Status filter"
// @Success		200	{object}	SellerListResponse
// @Router		/seller/orders [GET]
func (h *Handler) ListSellerOrders(c *gin.Context) {
	status := c.Query("status")
	if status == "" {
		status = c.Query("status_filter")
	}
	out, err := h.service.ListSeller(c.Request.Context(), session.From(c), status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown order status")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load orders")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// UpdateSellerOrder sets the fulfilment status of an order.
// @Summary		Update seller order status
// @Tags		Seller
// @Security	BearerAuth
// @Param		id		path	string				true	"Order ID"
// @Param		request	body	SellerStatusRequest	true	"confirmed|packed|dispatched|delivered"
// @Success		200	{object}	SellerOrder
// @Failure		400	{object}	map[string]interface{}
// @Router		/seller/orders/{id} [PATCH]
func (h *Handler) UpdateSellerOrder(c *gin.Context) {
	var req SellerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}
	req.Status = strings.ToLower(strings.TrimSpace(req.Status))
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "INVALID_STATUS", "Sellers can set confirmed, packed, dispatched or delivered", errs)
		return
	}

	o, err := h.service.UpdateSellerStatus(c.Request.Context(), session.From(c), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Sellers can set confirmed, packed, dispatched or delivered")
			return
		}
		response.Upstream(c, err, "UPDATE_FAILED", "Failed to update")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

package order

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.PUT("/:id/cancel", h.CancelOrder)
	}
}

// RegisterSellerRoutes mounts the seller fulfilment endpoints behind guards.
func (h *Handler) RegisterSellerRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	seller := rg.Group("/seller/orders", guards...)
	{
		seller.GET("", h.ListSellerOrders)
		seller.PATCH("/:id", h.UpdateSellerOrder)
	}
}

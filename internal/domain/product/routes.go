package product

import "github.com/gin-gonic/gin"

// RegisterSellerRoutes mounts the seller catalogue; guards run before every handler.
func (h *Handler) RegisterSellerRoutes(rg *gin.RouterGroup, guards ...gin.HandlerFunc) {
	seller := rg.Group("/seller/products", guards...)
	{
		seller.GET("", h.ListSellerProducts)
		seller.POST("", h.CreateSellerProduct)
		seller.GET("/:id", h.GetSellerProduct)
		seller.PUT("/:id", h.UpdateSellerProduct)
		seller.PATCH("/:id", h.UpdateSellerProduct)
	}
}

func (h *Handler) RegisterMarketplaceRoutes(rg *gin.RouterGroup) {
	market := rg.Group("/marketplace/products")
	{
		market.GET("", h.ListMarketplaceProducts)
		market.GET("/:id", h.GetMarketplaceProduct)
	}
}

package medcase

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	cases := rg.Group("/cases")
	{
		cases.GET("", h.ListCases)
		cases.POST("", h.CreateCase)
		cases.GET("/:id", h.GetCase)
		cases.PUT("/:id/close", h.CloseCase)
	}
}

package animal

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	animals := rg.Group("/animals")
	{
		animals.GET("", h.ListAnimals)
		animals.POST("", h.CreateAnimal)
		animals.GET("/:id", h.GetAnimal)
	}
}

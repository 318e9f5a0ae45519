package animal

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

// ListAnimals returns the owner's animals.
// @Summary		List animals
// @Tags		Animals
// @Security	BearerAuth
// @Success		200	{object}	ListResponse
// @Router		/animals [GET]
func (h *Handler) ListAnimals(c *gin.Context) {
	out, err := h.service.List(c.Request.Context(), session.From(c))
	if err != nil {
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load animals")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetAnimal returns one animal.
// @Summary		Get animal
// @Tags		Animals
// @Security	BearerAuth
// @Param		id	path	string	true	"Animal ID"
// @Success		200	{object}	DetailResponse
// @Failure		404	{object}	map[string]interface{}
// @Router		/animals/{id} [GET]
func (h *Handler) GetAnimal(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Animal not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load animal")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateAnimal registers a new animal.
// @Summary		Add animal
// @Tags		Animals
// @Security	BearerAuth
// @Param		request	body	CreateAnimalRequest	true	"Animal"
// @Success		201	{object}	Animal
// @Failure		400	{object}	map[string]interface{}
// @Router		/animals [POST]
func (h *Handler) CreateAnimal(c *gin.Context) {
	var req CreateAnimalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	a, err := h.service.Create(c.Request.Context(), session.From(c), req)
	if err != nil {
		response.Upstream(c, err, "CREATE_FAILED", "Failed to add animal")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"animal": a})
}

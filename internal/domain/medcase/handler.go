package medcase

import (
	"errors"
	"net/http"

	"anilink/internal/domain"
	"anilink/internal/pkg/response"
	"anilink/internal/pkg/validator"
	"anilink/internal/session"

	"github.com/gin-gonic/gin"
)

// maxCaseForm caps the whole multipart body: every image plus the text fields.
const maxCaseForm = MaxImages*MaxImageSize + 1<<20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListCases returns cases, optionally filtered by animal and status.
// @Summary		List cases
// @Tags		Cases
// @Security	BearerAuth
// @Param		animal_id	query	string	false	"Animal ID"
// @Param		status		query	string	false	"Case status"
// @Param		scope		query	string	false	"owner or vet"
// @Success		200	{object}	ListResponse
// @Failure		400	{object}	map[string]interface{}
// @Router		/cases [GET]
func (h *Handler) ListCases(c *gin.Context) {
	f := ListFilter{
		AnimalID: c.Query("animal_id"),
		Status:   c.Query("status"),
		Scope:    c.Query("scope"),
	}
	role := domain.ParseRole(c.GetString("role"))

	out, err := h.service.List(c.Request.Context(), session.From(c), role, f)
	if err != nil {
		if errors.Is(err, ErrInvalidScope) {
			response.Error(c, http.StatusBadRequest, "INVALID_SCOPE", "Scope must be owner or vet")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load cases")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetCase returns one case.
// @Summary		Get case
// @Tags		Cases
// @Security	BearerAuth
// @Param		id	path	string	true	"Case ID"
// @Success		200	{object}	DetailResponse
// @Failure		404	{object}	map[string]interface{}
// @Router		/cases/{id} [GET]
func (h *Handler) GetCase(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Case not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load case")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// CreateCase reports a new case with optional images.
// @Summary		Create case
// @Tags		Cases
// @Accept		multipart/form-data
// @Security	BearerAuth
// @Param		animal_type	formData	string	true	"Animal type"
// @Param		symptoms	formData	string	true	"Symptoms"
// @Param		images		formData	file	false	"Images"
// @Success		201	{object}	Case
// @Failure		400,413	{object}	map[string]interface{}
// @Router		/cases [POST]
func (h *Handler) CreateCase(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxCaseForm)

	var req CreateCaseRequest
	if err := c.ShouldBind(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid case form", validator.Fields(err))
		return
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		images, err := ReadAttachments(form.File["images"])
		if err != nil {
			switch {
			case errors.Is(err, ErrFileTooLarge):
				response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
			case errors.Is(err, ErrTooManyImages), errors.Is(err, ErrInvalidMimeType), errors.Is(err, ErrEmptyFile):
				response.Error(c, http.StatusBadRequest, "INVALID_IMAGE", err.Error())
			default:
				response.Error(c, http.StatusBadRequest, "INVALID_IMAGE", "Could not read image")
			}
			return
		}
		req.Images = images
	}

	out, err := h.service.Create(c.Request.Context(), session.From(c), req)
	if err != nil {
		response.Upstream(c, err, "CREATE_FAILED", "Failed to create case")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"case": out})
}

// CloseCase closes an open case.
// @Summary		Close case
// @Tags		Cases
// @Security	BearerAuth
// @Param		id	path	string	true	"Case ID"
// @Success		200	{object}	Case
// @Failure		409	{object}	map[string]interface{}
// @Router		/cases/{id}/close [PUT]
func (h *Handler) CloseCase(c *gin.Context) {
	out, err := h.service.Close(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrAlreadyClosed) {
			response.Error(c, http.StatusConflict, "ALREADY_CLOSED", "Case is already closed")
			return
		}
		response.Upstream(c, err, "CLOSE_FAILED", "Failed to close case")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"case": out})
}

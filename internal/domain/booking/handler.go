package booking

import (
	"errors"
	"net/http"

	"anilink/internal/domain"
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

// ListBookings returns the caller's bookings grouped for the appointments screen.
// @Summary		List bookings
// @Description	Owners filter by owner tab (pending, upcoming, past, cancelled); vets by vet tab (all, requested, confirmed, completed).
// @Tags		Bookings
// @Security	BearerAuth
// @Param		tab	query	string	false	"Tab to filter by"
// @Success		200	{object}	ListResponse
// @Failure		400	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		502	{object}	map[string]interface{}
// @Router		/bookings [GET]
func (h *Handler) ListBookings(c *gin.Context) {
	role := domain.ParseRole(c.GetString("role"))

	out, err := h.service.List(c.Request.Context(), session.From(c), role, c.Query("tab"))
	if err != nil {
		if errors.Is(err, ErrInvalidTab) {
			response.Error(c, http.StatusBadRequest, "INVALID_TAB", "Unknown booking tab")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load bookings")
		return
	}

	response.Success(c, http.StatusOK, out)
}

// GetBooking returns a single booking.
// @Summary		Get booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	string	true	"Booking ID"
// @Success		200	{object}	DetailResponse
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings/{id} [GET]
func (h *Handler) GetBooking(c *gin.Context) {
	out, err := h.service.Get(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
			return
		}
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load booking")
		return
	}

	response.Success(c, http.StatusOK, out)
}

// CreateBooking requests an appointment with a vet.
// @Summary		Create booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"Booking"
// @Success		201	{object}	View
// @Failure		400	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	v, err := h.service.Create(c.Request.Context(), session.From(c), req)
	if err != nil {
		response.Upstream(c, err, "CREATE_FAILED", "Failed to create booking")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": v})
}

// UpdateBookingStatus changes a booking's status.
// @Summary		Update booking status
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id		path	string				true	"Booking ID"
// @Param		request	body	UpdateStatusRequest	true	"New status"
// @Success		200	{object}	View
// @Failure		400	{object}	map[string]interface{}
// @Router		/bookings/{id}/status [PUT]
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Fields(err))
		return
	}

	v, err := h.service.UpdateStatus(c.Request.Context(), session.From(c), c.Param("id"), req.Status)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			response.Error(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown booking status")
			return
		}
		response.Upstream(c, err, "UPDATE_FAILED", "Failed to update booking status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": v})
}

// CancelBooking cancels the caller's booking.
// @Summary		Cancel booking
// @Tags		Bookings
// @Security	BearerAuth
// @Param		id	path	string	true	"Booking ID"
// @Success		200	{object}	View
// @Router		/bookings/{id}/cancel [PUT]
func (h *Handler) CancelBooking(c *gin.Context) {
	v, err := h.service.Cancel(c.Request.Context(), session.From(c), c.Param("id"))
	if err != nil {
		response.Upstream(c, err, "CANCEL_FAILED", "Failed to cancel")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": v})
}

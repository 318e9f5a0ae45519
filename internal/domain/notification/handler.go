package notification

import (
	"errors"
	"net/http"

	"anilink/internal/domain"
	"anilink/internal/pkg/apierror"
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

// GetNotifications returns the caller's notifications with resolved links.
// @Summary		List notifications
// @Description	Each item carries href and canView; items without a destination have canView=false. Supports limit/offset paging.
// @Tags		Notifications
// @Security	BearerAuth
// @Param		limit	query	int		false	"Page size (default 20, max 100)"
// @Param		offset	query	int		false	"Offset"
// @Param		unread	query	bool	false	"Only unread"
// @Success		200	{object}	ListResponse
// @Failure		401	{object}	map[string]interface{}
// @Router		/notifications [GET]
func (h *Handler) GetNotifications(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query", validator.Fields(err))
		return
	}
	role := domain.ParseRole(c.GetString("role"))

	out, err := h.service.List(c.Request.Context(), session.From(c), role, q)
	if err != nil {
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load notifications")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// GetUnreadCount
// @Summary		Unread count
// @Tags		Notifications
// @Security	BearerAuth
// @Success		200	{object}	UnreadCountResponse
// @Router		/notifications/unread-count [GET]
func (h *Handler) GetUnreadCount(c *gin.Context) {
	out, err := h.service.UnreadCount(c.Request.Context(), session.From(c))
	if err != nil {
		response.Upstream(c, err, "FETCH_FAILED", "Failed to load notifications")
		return
	}
	response.Success(c, http.StatusOK, out)
}

// MarkAsRead
// @Summary		Mark notification read
// @Tags		Notifications
// @Security	BearerAuth
// @Param		id	path	string	true	"Notification ID"
// @Success		200	{object}	map[string]interface{}
// @Router		/notifications/{id}/read [POST]
func (h *Handler) MarkAsRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), session.From(c), c.Param("id")); err != nil {
		response.Upstream(c, err, "UPDATE_FAILED", "Failed to mark as read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllAsRead marks every unread notification read.
// @Summary		Mark all read
// @Description	Partial failures answer 502 with the counts in error details.
// @Tags		Notifications
// @Security	BearerAuth
// @Success		200	{object}	MarkAllResult
// @Failure		502	{object}	map[string]interface{}
// @Router		/notifications/read-all [POST]
func (h *Handler) MarkAllAsRead(c *gin.Context) {
	out, err := h.service.MarkAllRead(c.Request.Context(), session.From(c))
	if err != nil {
		var ue *apierror.UserError
		if out != nil && errors.As(err, &ue) {
			_ = c.Error(err)
			response.ErrorWithDetails(c, ue.Status, "PARTIAL_FAILURE", ue.Message, out)
			return
		}
		response.Upstream(c, err, "UPDATE_FAILED", "Failed to mark all as read")
		return
	}
	response.Success(c, http.StatusOK, out)
}

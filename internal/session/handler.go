package session

import (
	"context"
	"log"
	"net/http"

	"anilink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// Upstream ends the backend session.
type Upstream interface {
	Logout(ctx context.Context) error
}

type Handler struct {
	registry *Registry
	upstream Upstream
}

func NewHandler(registry *Registry, upstream Upstream) *Handler {
	return &Handler{registry: registry, upstream: upstream}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/session/sign-out", h.SignOut)
}

// SignOut drops the caller's cached collections and snapshots.
// @Summary		Sign out
// @Description	Logs out upstream (best effort) and clears every cached collection of the session.
// @Tags		Session
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{}
// @Failure		401	{object}	map[string]interface{}
// @Failure		500	{object}	map[string]interface{}
// @Router		/session/sign-out [POST]
func (h *Handler) SignOut(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
		return
	}

	if h.upstream != nil {
		if err := h.upstream.Logout(c.Request.Context()); err != nil {
			log.Printf("session_upstream_logout_failed user_id=%s error=%q", userID, err.Error())
		}
	}

	if err := h.registry.SignOut(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "SIGN_OUT_FAILED", "Failed to clear session")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "signed_out"})
}

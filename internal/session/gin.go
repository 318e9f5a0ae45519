package session

import (
	"net/http"

	"anilink/internal/cache"
	"anilink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const contextKey = "session_cache"

// Attach binds the caller's coordinator to the request. It must run after
// authentication has set user_id.
func Attach(reg *Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		if userID == "" {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User not authenticated")
			return
		}
		c.Set(contextKey, reg.Get(userID))
		c.Next()
	}
}

// From returns the coordinator bound by Attach.
func From(c *gin.Context) *cache.Coordinator {
	v, ok := c.Get(contextKey)
	if !ok {
		return nil
	}
	coord, _ := v.(*cache.Coordinator)
	return coord
}

// Set binds coord directly; used by handler tests.
func Set(c *gin.Context, coord *cache.Coordinator) {
	c.Set(contextKey, coord)
}

package middleware

import (
	"net/http"

	"anilink/internal/domain"
	"anilink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through when the caller has one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("role")
		if !exists {
			response.CustomError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			return
		}

		s, _ := raw.(string)
		role := domain.ParseRole(s)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}

		response.CustomError(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
	}
}

// SellerOnly admits sellers and admins.
func SellerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleSeller, domain.RoleAdmin)
}

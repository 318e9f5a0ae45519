package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultAllowedOrigins are the local SPA dev servers.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://127.0.0.1:3000",
	"http://127.0.0.1:5173",
}

func CORS(extra []string) gin.HandlerFunc {
	allowedOrigins := make(map[string]bool, len(DefaultAllowedOrigins)+len(extra))
	for _, o := range DefaultAllowedOrigins {
		allowedOrigins[o] = true
	}
	for _, o := range extra {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o != "" {
			allowedOrigins[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		// Reflect the origin only when allowed; credentials require an exact match.
		if origin != "" && allowedOrigins[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Authorization, Accept, Origin, X-Requested-With, "+RefreshTokenHeader+", "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods",
			"GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Expose-Headers",
			AccessTokenHeader+", "+RefreshTokenHeader+", "+RequestIDHeader)
		c.Writer.Header().Set("Access-Control-Max-Age", "600")

		// Preflight ends here, before JWT and role checks.
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

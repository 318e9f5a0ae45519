package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"anilink/internal/backend"
	"anilink/internal/pkg/jwt"
	"anilink/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	RefreshTokenHeader = "X-Refresh-Token"
	AccessTokenHeader  = "X-Access-Token"
)

// Refresher exchanges a refresh token for a new pair upstream.
type Refresher interface {
	RefreshTokens(ctx context.Context, tokens *backend.Tokens) error
}

// JWTAuth verifies the bearer token and exposes the caller to handlers as
// "user_id" and "role". The raw tokens are attached to the request context
// for the upstream client. An expired access token must be refreshed before
// the request goes any further, and the caller is taken from the new token.
// Rotated tokens are echoed back in the response headers.
func JWTAuth(jwtService *jwt.Service, refresher Refresher) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			response.CustomError(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be: Bearer <token>")
			return
		}
		raw = strings.TrimSpace(raw)
		refresh := strings.TrimSpace(c.GetHeader(RefreshTokenHeader))

		tokens := backend.NewTokens(raw, refresh)
		tokens.OnRotate(func(access, refresh string) {
			c.Header(AccessTokenHeader, access)
			c.Header(RefreshTokenHeader, refresh)
		})

		claims, err := jwtService.ValidateToken(raw)
		switch {
		case errors.Is(err, jwt.ErrExpiredToken) && refresh != "" && refresher != nil:
			if rerr := refresher.RefreshTokens(c.Request.Context(), tokens); rerr != nil {
				response.CustomError(c, http.StatusUnauthorized, "REFRESH_FAILED", "Session expired, please sign in again")
				return
			}
			// The refresh token may belong to someone else; trust only the new access token.
			claims, err = jwtService.ValidateToken(tokens.Access())
			if err != nil {
				response.CustomError(c, http.StatusUnauthorized, "REFRESH_FAILED", "Session expired, please sign in again")
				return
			}
		case errors.Is(err, jwt.ErrExpiredToken):
			response.CustomError(c, http.StatusUnauthorized, "TOKEN_EXPIRED", "Access token has expired")
			return
		case err != nil:
			response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or malformed token")
			return
		}

		c.Request = c.Request.WithContext(backend.WithTokens(c.Request.Context(), tokens))

		c.Set("user_id", claims.UserID())
		c.Set("role", claims.Role)
		c.Next()
	}
}

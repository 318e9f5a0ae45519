package backend

import (
	"context"
	"net/http"

	"anilink/internal/session"
)

var _ session.Upstream = (*Client)(nil)

// Logout revokes the caller's refresh token upstream.
func (c *Client) Logout(ctx context.Context) error {
	var body any
	if t := TokensFrom(ctx); t != nil && t.Refresh() != "" {
		body = map[string]string{"refreshToken": t.Refresh()}
	}
	return c.DoJSON(ctx, http.MethodPost, "/auth/logout", body, nil)
}

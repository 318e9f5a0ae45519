package backend

import (
	"context"
	"net/http"

	"anilink/internal/domain/notification"
)

var _ notification.Upstream = (*Client)(nil)

func (c *Client) ListNotifications(ctx context.Context) ([]notification.Notification, error) {
	var out []notification.Notification
	err := c.DoJSON(ctx, http.MethodGet, "/notifications", nil, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.DoJSON(ctx, http.MethodPost, pathID("/notifications", id, "read"), nil, nil)
}

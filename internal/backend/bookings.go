package backend

import (
	"context"
	"net/http"
	"net/url"

	"anilink/internal/domain/booking"
)

var _ booking.Upstream = (*Client)(nil)

func (c *Client) ListBookings(ctx context.Context, status string) ([]booking.Booking, error) {
	var out []booking.Booking
	err := c.DoJSON(ctx, http.MethodGet, withQuery("/bookings", url.Values{"status": {status}}), nil, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, id string) (*booking.Booking, error) {
	var out *booking.Booking
	err := c.DoJSON(ctx, http.MethodGet, pathID("/bookings", id), nil, &out)
	return out, err
}

func (c *Client) CreateBooking(ctx context.Context, req booking.CreateBookingRequest) (*booking.Booking, error) {
	var out booking.Booking
	if err := c.DoJSON(ctx, http.MethodPost, "/bookings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id, status string) (*booking.Booking, error) {
	var out booking.Booking
	body := map[string]string{"status": status}
	if err := c.DoJSON(ctx, http.MethodPut, pathID("/bookings", id, "status"), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

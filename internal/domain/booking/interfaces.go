package booking

import "context"

// Upstream is the slice of the backend the booking service depends on.
type Upstream interface {
	ListBookings(ctx context.Context, status string) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*Booking, error)
	UpdateBookingStatus(ctx context.Context, id, status string) (*Booking, error)
}

package booking

import (
	"context"
	"log"

	"anilink/internal/cache"
	"anilink/internal/domain"
	"anilink/internal/pkg/apierror"
)

type Service struct {
	upstream Upstream
}

func NewService(upstream Upstream) *Service {
	return &Service{upstream: upstream}
}

// List returns the session's bookings filtered by tab. Vets filter by vet tab
// (unknown tabs show everything); everyone else by owner tab.
func (s *Service) List(ctx context.Context, cc *cache.Coordinator, role domain.UserRole, tab string) (*ListResponse, error) {
	isVet := role == domain.RoleVet

	var ownerTab OwnerTab
	var vetTab VetTab
	if isVet {
		vetTab = ParseVetTab(tab)
	} else {
		t, ok := ParseOwnerTab(tab)
		if !ok {
			return nil, ErrInvalidTab
		}
		ownerTab = t
	}

	res, err := cache.Load(ctx, cc, cache.ListKey(cache.Bookings, nil), func(ctx context.Context) ([]Booking, error) {
		return s.upstream.ListBookings(ctx, "")
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load bookings")
	}

	out := &ListResponse{Bookings: make([]View, 0, len(res.Data)), Counts: map[string]int{}, Meta: res.Meta()}
	for _, b := range res.Data {
		warnUnmapped(b)
		v := NewView(b)
		if isVet {
			out.Counts[string(VetTabAll)]++
			if v.VetTab != "" {
				out.Counts[string(v.VetTab)]++
			}
			if VetTabMatches(vetTab, b.Status) {
				out.Bookings = append(out.Bookings, v)
			}
			continue
		}
		out.Counts[string(v.OwnerTab)]++
		if ownerTab == "" || v.OwnerTab == ownerTab {
			out.Bookings = append(out.Bookings, v)
		}
	}

	if isVet {
		out.Tab = string(vetTab)
	} else {
		out.Tab = string(ownerTab)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, cc *cache.Coordinator, id string) (*DetailResponse, error) {
	res, err := cache.Load(ctx, cc, cache.DetailKey(cache.Bookings, id), func(ctx context.Context) (*Booking, error) {
		return s.upstream.GetBooking(ctx, id)
	})
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to load booking")
	}
	if res.Data == nil {
		return nil, ErrNotFound
	}
	warnUnmapped(*res.Data)
	return &DetailResponse{Booking: NewView(*res.Data), Meta: res.Meta()}, nil
}

func (s *Service) Create(ctx context.Context, cc *cache.Coordinator, req CreateBookingRequest) (*View, error) {
	b, err := s.upstream.CreateBooking(ctx, req)
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to create booking")
	}
	cc.AfterMutation(cache.CreateBooking, b.ID)
	v := NewView(*b)
	return &v, nil
}

// UpdateStatus forwards a status change. Only statuses the backend is known to
// accept are sent.
func (s *Service) UpdateStatus(ctx context.Context, cc *cache.Coordinator, id, status string) (*View, error) {
	if !IsKnownStatus(status) {
		return nil, ErrInvalidStatus
	}
	b, err := s.upstream.UpdateBookingStatus(ctx, id, string(normalize(status)))
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to update booking status")
	}
	cc.AfterMutation(cache.UpdateBookingStatus, id)
	v := NewView(*b)
	return &v, nil
}

func (s *Service) Cancel(ctx context.Context, cc *cache.Coordinator, id string) (*View, error) {
	b, err := s.upstream.UpdateBookingStatus(ctx, id, string(StatusCancelled))
	if err != nil {
		return nil, apierror.Wrap(err, "Failed to cancel")
	}
	cc.AfterMutation(cache.CancelBooking, id)
	v := NewView(*b)
	return &v, nil
}

func warnUnmapped(b Booking) {
	if !IsKnownStatus(b.Status) {
		log.Printf("booking_status_unmapped booking_id=%s status=%q tab=%s", b.ID, b.Status, OwnerTabPending)
	}
}

package notification

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"

	"anilink/internal/cache"
	"anilink/internal/domain"
	"anilink/internal/pkg/apierror"

	"golang.org/x/sync/errgroup"
)

// markAllConcurrency caps parallel mark-read calls against the backend.
const markAllConcurrency = 8

type Service struct {
	upstream Upstream
	router   *Router
}

func NewService(upstream Upstream, router *Router) *Service {
	return &Service{upstream: upstream, router: router}
}

func (s *Service) load(ctx context.Context, cc *cache.Coordinator) (cache.Result[[]Notification], error) {
	res, err := cache.Load(ctx, cc, cache.ListKey(cache.Notifications, nil), s.upstream.ListNotifications)
	if err != nil {
		return res, apierror.Wrap(err, "Failed to load notifications")
	}
	return res, nil
}

// NewView resolves the deep link for role.
func (s *Service) NewView(n Notification, role domain.UserRole) View {
	href, ok := s.router.Href(n, string(role))
	return View{Notification: n, Href: href, CanView: ok}
}

func (s *Service) List(ctx context.Context, cc *cache.Coordinator, role domain.UserRole, q ListQuery) (*ListResponse, error) {
	res, err := s.load(ctx, cc)
	if err != nil {
		return nil, err
	}
	q = q.normalized()

	matching := res.Data
	if q.UnreadOnly {
		matching = make([]Notification, 0, len(res.Data))
		for _, n := range res.Data {
			if !n.IsRead {
				matching = append(matching, n)
			}
		}
	}

	page := []View{}
	if q.Offset < len(matching) {
		end := q.Offset + q.Limit
		if end > len(matching) {
			end = len(matching)
		}
		page = make([]View, 0, end-q.Offset)
		for _, n := range matching[q.Offset:end] {
			page = append(page, s.NewView(n, role))
		}
	}

	return &ListResponse{
		Notifications: page,
		UnreadCount:   CountUnread(res.Data),
		Total:         len(matching),
		Meta:          res.Meta(),
	}, nil
}

func (s *Service) UnreadCount(ctx context.Context, cc *cache.Coordinator) (*UnreadCountResponse, error) {
	res, err := s.load(ctx, cc)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{UnreadCount: CountUnread(res.Data), Meta: res.Meta()}, nil
}

func (s *Service) MarkRead(ctx context.Context, cc *cache.Coordinator, id string) error {
	if err := s.upstream.MarkNotificationRead(ctx, id); err != nil {
		return apierror.Wrap(err, "Failed to mark as read")
	}
	cc.AfterMutation(cache.MarkNotificationRead, id)
	return nil
}

// MarkAllRead marks every unread notification read, one backend call per id.
// All calls settle before it returns and the notifications list is
// invalidated whatever the outcome, so partially applied runs show up on
// the next read.
func (s *Service) MarkAllRead(ctx context.Context, cc *cache.Coordinator) (*MarkAllResult, error) {
	res, err := s.load(ctx, cc)
	if err != nil {
		return nil, err
	}
	ids := UnreadIDs(res.Data)
	out := &MarkAllResult{Requested: len(ids)}
	if len(ids) == 0 {
		return out, nil
	}

	// A plain Group: one failure must not cancel the remaining calls.
	var (
		failed atomic.Int32
		g      errgroup.Group
	)
	g.SetLimit(markAllConcurrency)
	for _, id := range ids {
		g.Go(func() error {
			if err := s.upstream.MarkNotificationRead(ctx, id); err != nil {
				failed.Add(1)
				log.Printf("notification_mark_read_failed owner=%s id=%s error=%v", cc.Owner(), id, err)
				return fmt.Errorf("mark notification %s read: %w", id, err)
			}
			return nil
		})
	}
	firstErr := g.Wait()

	cc.AfterMutation(cache.MarkAllNotificationsRead, "")

	out.Failed = int(failed.Load())
	if out.Failed > 0 {
		return out, &apierror.UserError{
			Status:  http.StatusBadGateway,
			Message: fmt.Sprintf("Failed to mark %d of %d notifications as read", out.Failed, out.Requested),
			Err:     firstErr,
		}
	}
	return out, nil
}

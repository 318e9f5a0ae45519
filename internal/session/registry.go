package session

import (
	"context"
	"log"
	"sync"
	"time"

	"anilink/internal/cache"
)

// Publisher fans session events out to connected clients.
type Publisher interface {
	Publish(userID string, targets []cache.Target)
	SignedOut(userID string)
}

// DefaultMaxAge bounds how long a cached collection is served without
// refetching. Writes by other users only become visible through ageing.
const DefaultMaxAge = 5 * time.Second

type entry struct {
	coord    *cache.Coordinator
	lastSeen time.Time
}

// Registry holds one cache coordinator per signed-in user.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	snapshots cache.SnapshotStore
	publisher Publisher
	maxAge    time.Duration
	idleTTL   time.Duration
	now       func() time.Time
}

type Option func(*Registry)

func WithSnapshots(s cache.SnapshotStore) Option {
	return func(r *Registry) { r.snapshots = s }
}

func WithPublisher(p Publisher) Option {
	return func(r *Registry) { r.publisher = p }
}

// WithMaxAge ages cached entries out after d. Zero disables ageing.
func WithMaxAge(d time.Duration) Option {
	return func(r *Registry) { r.maxAge = d }
}

// WithIdleTTL drops sessions not touched for d. Zero keeps them forever.
func WithIdleTTL(d time.Duration) Option {
	return func(r *Registry) { r.idleTTL = d }
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		maxAge:   DefaultMaxAge,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type publishListener struct {
	userID    string
	publisher Publisher
}

func (l publishListener) Invalidated(targets []cache.Target) {
	l.publisher.Publish(l.userID, targets)
}

// Get returns the coordinator for userID, creating it on first use.
func (r *Registry) Get(userID string) *cache.Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.sessions[userID]; ok {
		e.lastSeen = r.now()
		return e.coord
	}

	opts := []cache.Option{cache.WithClock(r.now), cache.WithMaxAge(r.maxAge)}
	if r.snapshots != nil {
		opts = append(opts, cache.WithSnapshots(r.snapshots))
	}
	if r.publisher != nil {
		opts = append(opts, cache.WithListener(publishListener{userID: userID, publisher: r.publisher}))
	}
	coord := cache.New(userID, opts...)
	r.sessions[userID] = &entry{coord: coord, lastSeen: r.now()}
	return coord
}

// SignOut clears every cached collection of userID and its persisted snapshots.
func (r *Registry) SignOut(ctx context.Context, userID string) error {
	r.mu.Lock()
	e, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mu.Unlock()

	if ok {
		e.coord.Reset()
	}
	if r.publisher != nil {
		r.publisher.SignedOut(userID)
	}
	if r.snapshots != nil {
		if err := r.snapshots.DeleteSnapshots(ctx, userID); err != nil {
			return err
		}
	}
	log.Printf("session_signed_out user_id=%s had_cache=%t", userID, ok)
	return nil
}

// Sweep drops sessions idle for longer than the idle TTL and returns how many
// were dropped. Snapshots survive so a returning user still has fallback data.
func (r *Registry) Sweep() int {
	if r.idleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()
	dropped := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 || r.idleTTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				log.Printf("session_sweep dropped=%d remaining=%d", n, r.Len())
			}
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Status is the validity of a cached entry.
type Status int

const (
	Fresh Status = iota
	Stale
)

func (s Status) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// ErrSnapshotNotFound is returned by a SnapshotStore with nothing saved for a key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// Entry is a copy of one cached result.
type Entry struct {
	Status               Status
	Data                 any
	UpdatedAt            time.Time
	LastRefetchStartedAt time.Time
}

// Ticket is handed out when a refetch starts and presented when it completes.
// Tickets are totally ordered by Seq in issue order.
type Ticket struct {
	Key       Key
	Seq       uint64
	StartedAt time.Time
}

// Listener observes invalidations, e.g. to push them to connected clients.
type Listener interface {
	Invalidated(targets []Target)
}

// SnapshotStore persists the last applied result per key so a cold cache can
// still serve fallback data when the backend is unreachable.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, owner, key string, data []byte, fetchedAt time.Time) error
	LoadSnapshot(ctx context.Context, owner, key string) ([]byte, time.Time, error)
	DeleteSnapshots(ctx context.Context, owner string) error
}

type entry struct {
	status        Status
	data          any
	updatedAt     time.Time
	refetchedAt   time.Time
	appliedTicket uint64
}

// Coordinator owns the cached collections of one authenticated session.
type Coordinator struct {
	mu         sync.Mutex
	entries    map[Key]*entry
	watermarks map[Target]uint64
	seq        uint64
	resetSeq   uint64

	owner     string
	maxAge    time.Duration
	now       func() time.Time
	listener  Listener
	snapshots SnapshotStore
}

type Option func(*Coordinator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithMaxAge treats fresh entries older than d as stale. Zero disables ageing.
func WithMaxAge(d time.Duration) Option {
	return func(c *Coordinator) { c.maxAge = d }
}

func WithListener(l Listener) Option {
	return func(c *Coordinator) { c.listener = l }
}

func WithSnapshots(s SnapshotStore) Option {
	return func(c *Coordinator) { c.snapshots = s }
}

// New returns an empty coordinator for the session identified by owner.
func New(owner string, opts ...Option) *Coordinator {
	c := &Coordinator{
		entries:    make(map[Key]*entry),
		watermarks: make(map[Target]uint64),
		owner:      owner,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) Owner() string { return c.owner }

// Get returns a copy of the entry for key.
func (c *Coordinator) Get(key Key) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return Entry{}, false
	}
	return c.snapshotLocked(e), true
}

func (c *Coordinator) snapshotLocked(e *entry) Entry {
	status := e.status
	if status == Fresh && c.maxAge > 0 && c.now().Sub(e.updatedAt) > c.maxAge {
		status = Stale
	}
	return Entry{
		Status:               status,
		Data:                 e.data,
		UpdatedAt:            e.updatedAt,
		LastRefetchStartedAt: e.refetchedAt,
	}
}

// BeginRefetch issues the ticket for a refetch of key.
func (c *Coordinator) BeginRefetch(key Key) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	t := Ticket{Key: key, Seq: c.seq, StartedAt: c.now()}
	if e, ok := c.entries[key]; ok {
		e.refetchedAt = t.StartedAt
	}
	return t
}

// Set stores the result of the refetch identified by t. It returns false and
// leaves the entry untouched if a newer refetch of the same key was already
// applied, or if the cache was reset after t was issued.
//
// A result whose refetch started before the latest matching invalidation is
// kept as data but stays stale.
func (c *Coordinator) Set(t Ticket, data any) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.Seq <= c.resetSeq {
		return false
	}

	e, ok := c.entries[t.Key]
	if ok && t.Seq <= e.appliedTicket {
		return false
	}
	if !ok {
		e = &entry{}
		c.entries[t.Key] = e
	}

	e.data = data
	e.updatedAt = c.now()
	e.appliedTicket = t.Seq
	if e.refetchedAt.Before(t.StartedAt) {
		e.refetchedAt = t.StartedAt
	}
	if t.Seq <= c.watermarkLocked(t.Key) {
		e.status = Stale
	} else {
		e.status = Fresh
	}
	return true
}

func (c *Coordinator) watermarkLocked(k Key) uint64 {
	w := c.watermarks[Target{Collection: k.Collection}]
	if k.ID != "" {
		if d := c.watermarks[Target{Collection: k.Collection, ID: k.ID}]; d > w {
			w = d
		}
	}
	return w
}

// Invalidate marks every entry selected by targets stale. Refetches already in
// flight for those entries will not make them fresh again.
func (c *Coordinator) Invalidate(targets ...Target) {
	if len(targets) == 0 {
		return
	}

	c.mu.Lock()
	for _, t := range targets {
		c.watermarks[t] = c.seq
		for k, e := range c.entries {
			if t.matches(k) {
				e.status = Stale
			}
		}
	}
	l := c.listener
	c.mu.Unlock()

	if l != nil {
		l.Invalidated(targets)
	}
}

// AfterMutation invalidates what a successful mutation made stale and returns
// the targets it touched.
func (c *Coordinator) AfterMutation(m Mutation, id string) []Target {
	targets := Invalidations(m, id)
	c.Invalidate(targets...)
	return targets
}

// Reset drops every entry, returning the session to an uninitialized state.
// Results of refetches started before the reset are discarded.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*entry)
	c.watermarks = make(map[Target]uint64)
	c.resetSeq = c.seq
}

// Keys lists the keys currently cached.
func (c *Coordinator) Keys() []Key {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]Key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of cached entries.
func (c *Coordinator) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// DeleteSnapshots removes persisted fallback data for this session.
func (c *Coordinator) DeleteSnapshots(ctx context.Context) error {
	if c.snapshots == nil {
		return nil
	}
	return c.snapshots.DeleteSnapshots(ctx, c.owner)
}

// Prepend inserts item at the head of the unfiltered list entry of coll
// without waiting for a refetch. An item whose id is already present is not
// inserted again. The entry keeps its current status; callers invalidate
// afterwards so the next read reconciles with the backend.
func Prepend[T any](c *Coordinator, coll Collection, item T, id func(T) string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := Key{Collection: coll}
	e, ok := c.entries[key]
	if !ok {
		c.entries[key] = &entry{
			status:    Stale,
			data:      []T{item},
			updatedAt: c.now(),
		}
		return
	}

	list, _ := e.data.([]T)
	itemID := id(item)
	for _, existing := range list {
		if id(existing) == itemID {
			return
		}
	}

	next := make([]T, 0, len(list)+1)
	next = append(next, item)
	next = append(next, list...)
	e.data = next
	e.updatedAt = c.now()
}

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"
)

// Result is what a read path hands back to its caller.
type Result[T any] struct {
	Data      T
	Status    Status
	UpdatedAt time.Time
	// Fallback is set when Data is retained data served because the refetch failed.
	Fallback bool
	// RefetchErr is the refetch failure behind a fallback result.
	RefetchErr error
}

// Meta describes how far a read result can be trusted.
type Meta struct {
	Status    string    `json:"status"`
	Fallback  bool      `json:"fallback,omitempty"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r Result[T]) Meta() Meta {
	return Meta{Status: r.Status.String(), Fallback: r.Fallback, UpdatedAt: r.UpdatedAt}
}

// Load is the read-through path shared by every resource: fresh cached data is
// returned as-is, anything else triggers a refetch. When the refetch fails the
// retained in-memory data, or the persisted snapshot when memory is cold, is
// returned as fallback. Only a failure with nothing to fall back on is an error.
func Load[T any](ctx context.Context, c *Coordinator, key Key, fetch func(context.Context) (T, error)) (Result[T], error) {
	cached, hasCached := c.Get(key)
	if hasCached {
		if data, ok := cached.Data.(T); ok && cached.Status == Fresh {
			return Result[T]{Data: data, Status: Fresh, UpdatedAt: cached.UpdatedAt}, nil
		}
	}

	ticket := c.BeginRefetch(key)
	data, err := fetch(ctx)
	if err != nil {
		if hasCached {
			if retained, ok := cached.Data.(T); ok {
				return Result[T]{Data: retained, Status: Stale, UpdatedAt: cached.UpdatedAt, Fallback: true, RefetchErr: err}, nil
			}
		}
		if snap, at, ok := loadSnapshot[T](ctx, c, key); ok {
			return Result[T]{Data: snap, Status: Stale, UpdatedAt: at, Fallback: true, RefetchErr: err}, nil
		}
		var zero T
		return Result[T]{Data: zero}, err
	}

	if !c.Set(ticket, data) {
		// A newer refetch already landed; it is the source of truth.
		if current, ok := c.Get(key); ok {
			if newer, ok := current.Data.(T); ok {
				return Result[T]{Data: newer, Status: current.Status, UpdatedAt: current.UpdatedAt}, nil
			}
		}
		return Result[T]{Data: data, Status: Stale, UpdatedAt: time.Now()}, nil
	}

	saveSnapshot(ctx, c, key, data)

	entry, _ := c.Get(key)
	return Result[T]{Data: data, Status: entry.Status, UpdatedAt: entry.UpdatedAt}, nil
}

func saveSnapshot(ctx context.Context, c *Coordinator, key Key, data any) {
	if c.snapshots == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		log.Printf("cache_snapshot_encode_failed owner=%s key=%s error=%q", c.owner, key, err.Error())
		return
	}
	if err := c.snapshots.SaveSnapshot(ctx, c.owner, key.String(), raw, c.now()); err != nil {
		log.Printf("cache_snapshot_save_failed owner=%s key=%s error=%q", c.owner, key, err.Error())
	}
}

func loadSnapshot[T any](ctx context.Context, c *Coordinator, key Key) (T, time.Time, bool) {
	var out T
	if c.snapshots == nil {
		return out, time.Time{}, false
	}
	raw, at, err := c.snapshots.LoadSnapshot(ctx, c.owner, key.String())
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) {
			log.Printf("cache_snapshot_load_failed owner=%s key=%s error=%q", c.owner, key, err.Error())
		}
		return out, time.Time{}, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Printf("cache_snapshot_decode_failed owner=%s key=%s error=%q", c.owner, key, err.Error())
		return out, time.Time{}, false
	}
	return out, at, true
}

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSnapshots struct {
	mu   sync.Mutex
	data map[string][]byte
	at   map[string]time.Time
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{data: map[string][]byte{}, at: map[string]time.Time{}}
}

func (m *memSnapshots) SaveSnapshot(_ context.Context, owner, key string, data []byte, fetchedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[owner+"|"+key] = data
	m.at[owner+"|"+key] = fetchedAt
	return nil
}

func (m *memSnapshots) LoadSnapshot(_ context.Context, owner, key string) ([]byte, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[owner+"|"+key]
	if !ok {
		return nil, time.Time{}, ErrSnapshotNotFound
	}
	return raw, m.at[owner+"|"+key], nil
}

func (m *memSnapshots) DeleteSnapshots(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.data {
		if len(k) > len(owner) && k[:len(owner)+1] == owner+"|" {
			delete(m.data, k)
			delete(m.at, k)
		}
	}
	return nil
}

var errBackendDown = errors.New("backend down")

func TestLoad_FetchesOnceWhileFresh(t *testing.T) {
	c := New("u1")
	key := ListKey(Animals, nil)
	calls := 0
	fetch := func(context.Context) ([]animal, error) {
		calls++
		return []animal{{ID: "a1", Name: "Bella"}}, nil
	}

	res, err := Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, Fresh, res.Status)
	assert.Len(t, res.Data, 1)

	_, err = Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestLoad_MaxAgePicksUpChangesFromOtherActors(t *testing.T) {
	clock := newFakeClock()
	c := New("u1", WithClock(clock.Now), WithMaxAge(5*time.Second))
	key := ListKey(Notifications, nil)
	upstream := []string{"n1"}
	fetch := func(context.Context) ([]string, error) {
		return append([]string(nil), upstream...), nil
	}

	res, err := Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, res.Data)

	// The backend creates a notification; nothing in this session mutated.
	upstream = append(upstream, "n2")

	res, err = Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, res.Data, "still within max age")

	clock.Advance(6 * time.Second)
	res, err = Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, Fresh, res.Status)
	assert.Equal(t, []string{"n1", "n2"}, res.Data)
}

func TestLoad_RefetchesAfterInvalidation(t *testing.T) {
	c := New("u1")
	key := ListKey(Orders, nil)
	calls := 0
	fetch := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	_, err := Load(context.Background(), c, key, fetch)
	require.NoError(t, err)

	c.AfterMutation(CancelOrder, "abc123")

	res, err := Load(context.Background(), c, key, fetch)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, res.Data)
	assert.Equal(t, Fresh, res.Status)
}

func TestLoad_FallsBackToRetainedData(t *testing.T) {
	c := New("u1")
	key := ListKey(Bookings, nil)
	fill(c, key, []string{"b1"})
	c.Invalidate(Target{Collection: Bookings})

	res, err := Load(context.Background(), c, key, func(context.Context) ([]string, error) {
		return nil, errBackendDown
	})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, Stale, res.Status)
	assert.Equal(t, []string{"b1"}, res.Data)
	assert.ErrorIs(t, res.RefetchErr, errBackendDown)
}

func TestLoad_FallsBackToSnapshot(t *testing.T) {
	store := newMemSnapshots()
	clock := newFakeClock()
	key := ListKey(Animals, nil)

	warm := New("u1", WithSnapshots(store), WithClock(clock.Now))
	_, err := Load(context.Background(), warm, key, func(context.Context) ([]animal, error) {
		return []animal{{ID: "a1", Name: "Bella"}}, nil
	})
	require.NoError(t, err)

	cold := New("u1", WithSnapshots(store))
	res, err := Load(context.Background(), cold, key, func(context.Context) ([]animal, error) {
		return nil, errBackendDown
	})
	require.NoError(t, err)
	assert.True(t, res.Fallback)
	assert.Equal(t, []animal{{ID: "a1", Name: "Bella"}}, res.Data)
	assert.Equal(t, clock.Now(), res.UpdatedAt)
}

func TestLoad_FailsWithNothingToServe(t *testing.T) {
	c := New("u1", WithSnapshots(newMemSnapshots()))
	_, err := Load(context.Background(), c, ListKey(Cases, nil), func(context.Context) ([]string, error) {
		return nil, errBackendDown
	})
	assert.ErrorIs(t, err, errBackendDown)
}

func TestLoad_SnapshotsAreScopedToOwner(t *testing.T) {
	store := newMemSnapshots()
	key := ListKey(Orders, nil)

	_, err := Load(context.Background(), New("u1", WithSnapshots(store)), key, func(context.Context) ([]string, error) {
		return []string{"mine"}, nil
	})
	require.NoError(t, err)

	_, err = Load(context.Background(), New("u2", WithSnapshots(store)), key, func(context.Context) ([]string, error) {
		return nil, errBackendDown
	})
	assert.ErrorIs(t, err, errBackendDown)

	require.NoError(t, New("u1", WithSnapshots(store)).DeleteSnapshots(context.Background()))
	_, err = Load(context.Background(), New("u1", WithSnapshots(store)), key, func(context.Context) ([]string, error) {
		return nil, errBackendDown
	})
	assert.ErrorIs(t, err, errBackendDown)
}

func TestLoad_NewerResultWins(t *testing.T) {
	c := New("u1")
	key := ListKey(Bookings, nil)

	res, err := Load(context.Background(), c, key, func(context.Context) (string, error) {
		// A second refetch issued and applied while this one is in flight.
		fill(c, key, "newer")
		return "older", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "newer", res.Data)
}

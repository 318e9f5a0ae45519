package animal

import (
	"context"
	"errors"
	"testing"

	"anilink/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) ListAnimals(ctx context.Context) ([]Animal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Animal), args.Error(1)
}

func (m *MockUpstream) GetAnimal(ctx context.Context, id string) (*Animal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Animal), args.Error(1)
}

func (m *MockUpstream) CreateAnimal(ctx context.Context, req CreateAnimalRequest) (*Animal, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Animal), args.Error(1)
}

func TestService_Create_OptimisticInsert(t *testing.T) {
	up := new(MockUpstream)
	daisy := Animal{ID: "a0", Name: "Daisy", Type: "cow"}
	bella := Animal{ID: "a1", Name: "Bella", Type: "goat"}
	req := CreateAnimalRequest{Name: "Bella", Type: "goat"}
	up.On("ListAnimals", mock.Anything).Return([]Animal{daisy}, nil).Once()
	up.On("CreateAnimal", mock.Anything, req).Return(&bella, nil).Twice()
	up.On("ListAnimals", mock.Anything).Return(nil, errors.New("backend down")).Once()
	svc := NewService(up)
	cc := cache.New("u1")
	ctx := context.Background()

	_, err := svc.List(ctx, cc)
	require.NoError(t, err)
	cc.Set(cc.BeginRefetch(cache.ListKey(cache.Cases, nil)), []string{})

	_, err = svc.Create(ctx, cc, req)
	require.NoError(t, err)

	e, ok := cc.Get(cache.ListKey(cache.Animals, nil))
	require.True(t, ok)
	assert.Equal(t, []Animal{bella, daisy}, e.Data, "new animal is visible before any refetch")
	assert.Equal(t, cache.Stale, e.Status)

	cases, _ := cc.Get(cache.ListKey(cache.Cases, nil))
	assert.Equal(t, cache.Stale, cases.Status)

	// A duplicate create response must not duplicate the row.
	_, err = svc.Create(ctx, cc, req)
	require.NoError(t, err)
	e, _ = cc.Get(cache.ListKey(cache.Animals, nil))
	assert.Len(t, e.Data.([]Animal), 2)

	// Backend outage: the optimistic list is served as fallback.
	out, err := svc.List(ctx, cc)
	require.NoError(t, err)
	assert.True(t, out.Meta.Fallback)
	assert.Equal(t, []Animal{bella, daisy}, out.Animals)
	up.AssertExpectations(t)
}

func TestService_Create_FailureDoesNotInsert(t *testing.T) {
	up := new(MockUpstream)
	req := CreateAnimalRequest{Name: "Bella", Type: "goat"}
	up.On("CreateAnimal", mock.Anything, req).Return(nil, errors.New("boom"))
	cc := cache.New("u1")

	_, err := NewService(up).Create(context.Background(), cc, req)
	assert.Error(t, err)
	assert.Equal(t, 0, cc.Len())
}

func TestService_Get_NotFound(t *testing.T) {
	up := new(MockUpstream)
	up.On("GetAnimal", mock.Anything, "zz").Return(nil, nil)

	_, err := NewService(up).Get(context.Background(), cache.New("u1"), "zz")
	assert.ErrorIs(t, err, ErrNotFound)
}

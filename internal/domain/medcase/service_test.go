package medcase

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"anilink/internal/cache"
	"anilink/internal/domain"
	"anilink/internal/pkg/apierror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUpstream struct {
	mock.Mock
}

func (m *MockUpstream) ListCases(ctx context.Context, f ListFilter) ([]Case, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Case), args.Error(1)
}

func (m *MockUpstream) GetCase(ctx context.Context, id string) (*Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Case), args.Error(1)
}

func (m *MockUpstream) CreateCase(ctx context.Context, req CreateCaseRequest) (*Case, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Case), args.Error(1)
}

func (m *MockUpstream) CloseCase(ctx context.Context, id string) (*Case, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Case), args.Error(1)
}

func TestResolveScope(t *testing.T) {
	tests := []struct {
		role    domain.UserRole
		in      string
		want    string
		wantErr bool
	}{
		{domain.RoleOwner, "", ScopeOwner, false},
		{domain.RoleVet, "", ScopeVet, false},
		{domain.RoleVet, "Owner", ScopeOwner, false},
		{domain.RoleSeller, "vet", ScopeVet, false},
		{domain.RoleOwner, "everyone", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveScope(tt.role, tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidScope)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestService_List_FiltersKeySeparately(t *testing.T) {
	up := new(MockUpstream)
	all := ListFilter{Scope: ScopeOwner}
	forAnimal := ListFilter{AnimalID: "a1", Status: "open", Scope: ScopeOwner}
	up.On("ListCases", mock.Anything, all).Return([]Case{{ID: "c1"}, {ID: "c2"}}, nil).Once()
	up.On("ListCases", mock.Anything, forAnimal).Return([]Case{{ID: "c1"}}, nil).Once()
	svc := NewService(up)
	cc := cache.New("u1")
	ctx := context.Background()

	out, err := svc.List(ctx, cc, domain.RoleOwner, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, out.Cases, 2)

	out, err = svc.List(ctx, cc, domain.RoleOwner, ListFilter{AnimalID: "a1", Status: "OPEN"})
	require.NoError(t, err)
	assert.Len(t, out.Cases, 1)

	// Served from cache.
	_, err = svc.List(ctx, cc, domain.RoleOwner, ListFilter{AnimalID: "a1", Status: "open"})
	require.NoError(t, err)

	_, ok := cc.Get(cache.ListKey(cache.Cases, url.Values{"animal_id": {"a1"}, "status": {"open"}, "scope": {"owner"}}))
	assert.True(t, ok)
	up.AssertExpectations(t)
}

func TestService_Create_InvalidatesCasesAndAnimals(t *testing.T) {
	up := new(MockUpstream)
	req := CreateCaseRequest{AnimalType: "goat", Symptoms: "cough"}
	up.On("CreateCase", mock.Anything, req).Return(&Case{ID: "c9", Status: StatusOpen}, nil)
	cc := cache.New("u1")
	filtered := cache.ListKey(cache.Cases, url.Values{"scope": {"owner"}})
	cc.Set(cc.BeginRefetch(filtered), []Case{})
	cc.Set(cc.BeginRefetch(cache.ListKey(cache.Animals, nil)), []string{})
	cc.Set(cc.BeginRefetch(cache.ListKey(cache.Orders, nil)), []string{})

	out, err := NewService(up).Create(context.Background(), cc, req)
	require.NoError(t, err)
	assert.Equal(t, "c9", out.ID)

	e, _ := cc.Get(filtered)
	assert.Equal(t, cache.Stale, e.Status, "filtered list keys share the collection prefix")
	e, _ = cc.Get(cache.ListKey(cache.Animals, nil))
	assert.Equal(t, cache.Stale, e.Status)
	e, _ = cc.Get(cache.ListKey(cache.Orders, nil))
	assert.Equal(t, cache.Fresh, e.Status)
}

func TestService_Close(t *testing.T) {
	up := new(MockUpstream)
	up.On("GetCase", mock.Anything, "c1").Return(&Case{ID: "c1", Status: "OPEN"}, nil).Once()
	up.On("CloseCase", mock.Anything, "c1").Return(&Case{ID: "c1", Status: "closed"}, nil).Once()
	up.On("GetCase", mock.Anything, "c1").Return(&Case{ID: "c1", Status: "closed"}, nil).Once()
	svc := NewService(up)
	cc := cache.New("u1")
	ctx := context.Background()

	_, err := svc.Get(ctx, cc, "c1")
	require.NoError(t, err)

	closed, err := svc.Close(ctx, cc, "c1")
	require.NoError(t, err)
	assert.True(t, closed.IsClosed())

	detail, err := svc.Get(ctx, cc, "c1")
	require.NoError(t, err)
	assert.True(t, detail.Case.IsClosed())

	_, err = svc.Close(ctx, cc, "c1")
	assert.ErrorIs(t, err, ErrAlreadyClosed)
	up.AssertExpectations(t)
}

func TestService_Close_FailureKeepsCache(t *testing.T) {
	up := new(MockUpstream)
	up.On("CloseCase", mock.Anything, "c1").Return(nil, errors.New("reset"))
	cc := cache.New("u1")
	cc.Set(cc.BeginRefetch(cache.ListKey(cache.Cases, nil)), []Case{{ID: "c1"}})

	_, err := NewService(up).Close(context.Background(), cc, "c1")
	assert.Equal(t, "Failed to close case", apierror.Message(err, "x"))

	e, _ := cc.Get(cache.ListKey(cache.Cases, nil))
	assert.Equal(t, cache.Fresh, e.Status)
}

package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) List(ctx context.Context, search string) ([]domain.Client, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, c *domain.Client, year int) error {
	args := m.Called(ctx, c, year)
	if args.Error(0) == nil {
		c.ID = 11
		c.ExternalID = "CLT-2025-0011"
	}
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, c *domain.Client) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) List(ctx context.Context, search string) ([]domain.Venue, error) {
	args := m.Called(ctx, search)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) Create(ctx context.Context, v *domain.Venue, year int) error {
	return m.Called(ctx, v, year).Error(0)
}

func (m *MockVenueRepository) Update(ctx context.Context, v *domain.Venue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newTestService() (*Service, *MockClientRepository, *MockVenueRepository) {
	clients := new(MockClientRepository)
	venues := new(MockVenueRepository)
	svc := NewService(clients, venues)
	svc.now = func() time.Time { return time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, clients, venues
}

func TestService_CreateClient_Success(t *testing.T) {
	svc, clients, _ := newTestService()
	clients.On("Create", mock.Anything, mock.AnythingOfType("*domain.Client"), 2025).Return(nil)

	c, err := svc.CreateClient(context.Background(), ClientRequest{Name: "  Rossi Eventi "})

	require.NoError(t, err)
	assert.Equal(t, "Rossi Eventi", c.Name)
	assert.Len(t, c.UID, 36)
	assert.Equal(t, "CLT-2025-0011", c.ExternalID)
	clients.AssertExpectations(t)
}

func TestService_CreateClient_Invalid(t *testing.T) {
	svc, clients, _ := newTestService()
	bad := "not-an-email"

	_, err := svc.CreateClient(context.Background(), ClientRequest{Email: &bad})

	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "required", fe["nome"])
	assert.Equal(t, "email", fe["email"])
	clients.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_UpdateClient_NotFound(t *testing.T) {
	svc, clients, _ := newTestService()
	clients.On("GetByID", mock.Anything, int64(5)).Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateClient(context.Background(), 5, ClientRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_DeleteClient_InUse(t *testing.T) {
	svc, clients, _ := newTestService()
	clients.On("Delete", mock.Anything, int64(3)).Return(repository.ErrInUse)

	assert.ErrorIs(t, svc.DeleteClient(context.Background(), 3), ErrInUse)
}

func TestService_CreateVenue_Distances(t *testing.T) {
	svc, _, venues := newTestService()
	venues.On("Create", mock.Anything, mock.AnythingOfType("*domain.Venue"), 2025).Return(nil)

	km := decimal.RequireFromString("42.5")
	v, err := svc.CreateVenue(context.Background(), VenueRequest{Name: "Cascina", DistanceKm: &km})

	require.NoError(t, err)
	assert.True(t, v.DistanceKm.Equal(km))
	assert.True(t, v.DistanceKmRound.IsZero())
}

func TestService_CreateVenue_NegativeDistance(t *testing.T) {
	svc, _, venues := newTestService()
	km := decimal.NewFromInt(-1)

	_, err := svc.CreateVenue(context.Background(), VenueRequest{Name: "Cascina", DistanceKmRound: &km})

	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "gte", fe["distanza_km_ar"])
	venues.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ListVenues_PropagatesError(t *testing.T) {
	svc, _, venues := newTestService()
	boom := errors.New("db down")
	venues.On("List", mock.Anything, "villa").Return([]domain.Venue(nil), boom)

	_, err := svc.ListVenues(context.Background(), "villa")
	assert.ErrorIs(t, err, boom)
}

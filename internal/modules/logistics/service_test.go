package logistics

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/validator"
	"eventhire/internal/repository"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) List(ctx context.Context, activeOnly bool) ([]domain.Vehicle, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	return m.Called(ctx, v).Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockTechnicianRepository struct {
	mock.Mock
}

func (m *MockTechnicianRepository) List(ctx context.Context) ([]domain.Technician, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) GetByID(ctx context.Context, id int64) (*domain.Technician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Technician), args.Error(1)
}

func (m *MockTechnicianRepository) Create(ctx context.Context, t *domain.Technician) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTechnicianRepository) Update(ctx context.Context, t *domain.Technician) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTechnicianRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventReader struct {
	mock.Mock
}

func (m *MockEventReader) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestService_CreateVehicle(t *testing.T) {
	vehicles := new(MockVehicleRepository)
	svc := NewService(vehicles, new(MockTechnicianRepository), new(MockEventReader))
	vehicles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Vehicle")).Return(nil).Once()

	cost := dec("0.9")
	v, err := svc.CreateVehicle(context.Background(), VehicleRequest{Plate: " ab123cd ", CostPerKm: &cost})
	require.NoError(t, err)
	assert.Equal(t, "AB123CD", v.Plate)
	assert.True(t, v.Active)
	assert.True(t, cost.Equal(v.CostPerKm))

	vehicles.On("Create", mock.Anything, mock.AnythingOfType("*domain.Vehicle")).Return(repository.ErrDuplicate).Once()
	_, err = svc.CreateVehicle(context.Background(), VehicleRequest{Plate: "AB123CD"})
	assert.ErrorIs(t, err, ErrDuplicatePlate)

	_, err = svc.CreateVehicle(context.Background(), VehicleRequest{})
	var fe validator.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "required", fe["targa"])
}

func TestService_UpdateTechnician_NotFound(t *testing.T) {
	techs := new(MockTechnicianRepository)
	svc := NewService(new(MockVehicleRepository), techs, new(MockEventReader))
	techs.On("GetByID", mock.Anything, int64(4)).Return(nil, repository.ErrNotFound)

	_, err := svc.UpdateTechnician(context.Background(), 4, TechnicianRequest{Name: "Luca"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Preview(t *testing.T) {
	vehicles, techs, events := new(MockVehicleRepository), new(MockTechnicianRepository), new(MockEventReader)
	svc := NewService(vehicles, techs, events)

	venue := &domain.Venue{DistanceKm: dec("40")}
	events.On("GetByID", mock.Anything, int64(1)).Return(&domain.Event{ID: 1, Venue: venue}, nil)
	own := dec("25")
	events.On("GetByID", mock.Anything, int64(2)).Return(&domain.Event{ID: 2, Venue: venue, DistanceKm: &own}, nil)
	events.On("GetByID", mock.Anything, int64(3)).Return(nil, repository.ErrNotFound)
	vehicles.On("List", mock.Anything, true).Return([]domain.Vehicle{
		{ID: 1, Plate: "AA111AA", Description: "Furgone", CostPerKm: dec("0.75")},
	}, nil)
	techs.On("List", mock.Anything).Return([]domain.Technician{
		{ID: 1, Name: "Luca", Role: "Fonico", CostPerKm: dec("0.3")},
		{ID: 2, Name: "Sara", CostPerKm: dec("0.2")},
	}, nil)

	p, err := svc.Preview(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.True(t, dec("40").Equal(p.DistanceKm))
	assert.Equal(t, "AA111AA (Furgone)", p.Vehicles[0].Name)
	assert.Equal(t, "30.00", p.VehiclesTotal.StringFixed(2))
	assert.Equal(t, "20.00", p.TechniciansTotal.StringFixed(2))
	assert.Equal(t, "50.00", p.Total.StringFixed(2))

	p, err = svc.Preview(context.Background(), 2, nil)
	require.NoError(t, err)
	assert.True(t, own.Equal(p.DistanceKm))

	override := dec("10")
	p, err = svc.Preview(context.Background(), 2, &override)
	require.NoError(t, err)
	assert.Equal(t, "12.50", p.Total.StringFixed(2))

	_, err = svc.Preview(context.Background(), 3, nil)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

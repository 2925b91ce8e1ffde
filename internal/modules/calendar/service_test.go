package calendar

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) UsedOn(ctx context.Context, day dates.Date) ([]int, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockSlotRepository) Between(ctx context.Context, from, to dates.Date) ([]repository.SlotBooking, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]repository.SlotBooking), args.Error(1)
}

func TestService_Availability(t *testing.T) {
	slots := new(MockSlotRepository)
	svc := NewService(slots, 4)
	day := dates.New(2025, 8, 2)

	slots.On("UsedOn", mock.Anything, day).Return([]int{1, 3}, nil).Once()
	out, err := svc.Availability(context.Background(), day)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, out.Used)
	assert.Equal(t, []int{2, 4}, out.Free)
	require.NotNil(t, out.Suggested)
	assert.Equal(t, 2, *out.Suggested)

	slots.On("UsedOn", mock.Anything, day).Return([]int{1, 2, 3, 4}, nil).Once()
	out, err = svc.Availability(context.Background(), day)
	require.NoError(t, err)
	assert.Empty(t, out.Free)
	assert.Nil(t, out.Suggested)
}

func TestService_LocationCalendar(t *testing.T) {
	slots := new(MockSlotRepository)
	svc := NewService(slots, 8)

	from, to := dates.YearBounds(2024)
	slots.On("Between", mock.Anything, from, to).Return([]repository.SlotBooking{
		{Date: dates.New(2024, 3, 1), LocationIndex: 2, EventID: 5, Status: domain.EventConfirmed, Title: "Gala", ClientName: "Rossi", VenueName: "Sala A"},
		{Date: dates.New(2024, 3, 1), LocationIndex: 2, EventID: 6, Status: domain.EventDraft},
		{Date: dates.New(2024, 3, 2), LocationIndex: 1, EventID: 7, Status: domain.EventDraft},
	}, nil)

	grid, err := svc.LocationCalendar(context.Background(), 2024)
	require.NoError(t, err)
	assert.Equal(t, 2024, grid.Year)
	assert.Len(t, grid.Days, 366)
	assert.Equal(t, "2024-01-01", grid.Days[0])
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, grid.Slots)
	require.Len(t, grid.Bookings, 2)
	assert.Equal(t, SlotBooking{
		EventID: 5, Date: "2024-03-01", Slot: 2, Count: 2,
		Status: domain.EventConfirmed, Title: "Gala", ClientName: "Rossi", VenueName: "Sala A",
	}, grid.Bookings[0])
}

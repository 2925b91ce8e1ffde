package calendar

import (
	"context"

	"eventhire/internal/availability"
	"eventhire/internal/pkg/dates"
)

type Service struct {
	slots        SlotRepository
	numLocations int
}

func NewService(slots SlotRepository, numLocations int) *Service {
	return &Service{slots: slots, numLocations: numLocations}
}

// Availability reports which location slots are held on day and suggests
// the lowest free one.
func (s *Service) Availability(ctx context.Context, day dates.Date) (*DayAvailability, error) {
	used, err := s.slots.UsedOn(ctx, day)
	if err != nil {
		return nil, err
	}
	if used == nil {
		used = []int{}
	}
	free := availability.FreeSlots(used, s.numLocations)
	out := &DayAvailability{Date: day.String(), Used: used, Free: free}
	if len(free) > 0 {
		out.Suggested = &free[0]
	}
	return out, nil
}

// LocationCalendar lists every day and slot of year with the events
// holding them. Cancelled events hold no slot.
func (s *Service) LocationCalendar(ctx context.Context, year int) (*YearGrid, error) {
	from, to := dates.YearBounds(year)
	rows, err := s.slots.Between(ctx, from, to)
	if err != nil {
		return nil, err
	}

	slots := make([]int, s.numLocations)
	for i := range slots {
		slots[i] = i + 1
	}

	type key struct {
		day  dates.Date
		slot int
	}
	index := map[key]int{}
	bookings := make([]SlotBooking, 0, len(rows))
	for _, r := range rows {
		k := key{r.Date, r.LocationIndex}
		if i, ok := index[k]; ok {
			bookings[i].Count++
			continue
		}
		index[k] = len(bookings)
		bookings = append(bookings, SlotBooking{
			EventID:    r.EventID,
			Date:       r.Date.String(),
			Slot:       r.LocationIndex,
			Count:      1,
			Status:     r.Status,
			Title:      r.Title,
			ClientName: r.ClientName,
			VenueName:  r.VenueName,
		})
	}

	return &YearGrid{
		Year:     year,
		Days:     dates.Strings(dates.Range(from, to)),
		Slots:    slots,
		Bookings: bookings,
	}, nil
}

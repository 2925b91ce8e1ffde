package warehouse

import (
	"context"
	"errors"
	"sort"

	"eventhire/internal/availability"
	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
	"eventhire/internal/repository"
)

type Service struct {
	materials MaterialRepository
	bookings  BookingReader
	engine    availability.Engine
}

func NewService(materials MaterialRepository, bookings BookingReader, engine availability.Engine) *Service {
	return &Service{materials: materials, bookings: bookings, engine: engine}
}

// Status computes the daily usage of each material over [from, to]. With no
// ids every non-archived material is reported; unknown ids are skipped.
func (s *Service) Status(ctx context.Context, from, to dates.Date, ids []int64) (*StatusGrid, error) {
	w := availability.NewWindow(from, to)

	mats, err := s.selectMaterials(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := &StatusGrid{
		Days:      dates.Strings(w.Days()),
		Materials: make([]MaterialStatus, 0, len(mats)),
	}
	if len(mats) == 0 {
		return out, nil
	}

	lines, err := s.bookings.BookedLines(ctx, w.From, w.To, materialIDs(mats))
	if err != nil {
		return nil, err
	}
	grouped := availability.GroupByMaterial(intervals(lines))

	for _, m := range mats {
		out.Materials = append(out.Materials, MaterialStatus{
			ID:    m.ID,
			Name:  m.Name,
			Stock: m.Stock,
			ByDay: s.engine.Daily(m.Stock, grouped[m.ID], w),
		})
	}
	return out, nil
}

func (s *Service) selectMaterials(ctx context.Context, ids []int64) ([]domain.Material, error) {
	if len(ids) == 0 {
		return s.materials.List(ctx, repository.MaterialFilter{})
	}
	found, err := s.materials.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Material, 0, len(found))
	for _, id := range ids {
		if m, ok := found[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

// Bookings summarizes how much of a material is committed over [from, to].
// on picks the day reported as prenotato; without it the peak is used.
func (s *Service) Bookings(ctx context.Context, materialID int64, from, to dates.Date, on *dates.Date) (*MaterialBookings, error) {
	m, err := s.material(ctx, materialID)
	if err != nil {
		return nil, err
	}
	w := availability.NewWindow(from, to)

	lines, err := s.bookings.BookedLines(ctx, w.From, w.To, []int64{m.ID})
	if err != nil {
		return nil, err
	}

	ivs := make([]availability.Interval, 0, len(lines))
	rows := make([]BookingRow, 0, len(lines))
	for _, l := range lines {
		ivs = append(ivs, l.Interval())
		start, end := l.Span()
		rows = append(rows, BookingRow{
			EventID:       l.EventID,
			Title:         l.Title,
			Status:        l.Status,
			ClientName:    l.ClientName,
			From:          start.String(),
			To:            end.String(),
			Qty:           l.Qty,
			LocationIndex: l.LocationIndex,
		})
	}

	perDay := make(map[string]int, w.Len())
	for i, u := range availability.Usage(ivs, w) {
		perDay[w.From.AddDays(i).String()] = u
	}

	return &MaterialBookings{
		MaterialID: m.ID,
		Summary:    availability.Summarize(m.Stock, ivs, w, on),
		PerDay:     perDay,
		Rows:       rows,
	}, nil
}

// YearCalendar spreads every booked line over the days of year, one entry
// per material and day with the summed quantity.
func (s *Service) YearCalendar(ctx context.Context, year int) (*YearCalendar, error) {
	from, to := dates.YearBounds(year)
	w := availability.NewWindow(from, to)

	mats, err := s.materials.List(ctx, repository.MaterialFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(mats, func(i, j int) bool {
		ci, cj := mats[i].CategoryName(), mats[j].CategoryName()
		if ci != cj {
			return ci < cj
		}
		return mats[i].Name < mats[j].Name
	})

	out := &YearCalendar{
		Year:      year,
		Days:      dates.Strings(w.Days()),
		Materials: make([]CalendarMaterial, 0, len(mats)),
		Bookings:  []CalendarBooking{},
	}
	for _, m := range mats {
		category := m.CategoryName()
		if category == "" {
			category = NoCategory
		}
		out.Materials = append(out.Materials, CalendarMaterial{ID: m.ID, Name: m.Name, Category: category, Stock: m.Stock})
	}

	lines, err := s.bookings.BookedLines(ctx, w.From, w.To, nil)
	if err != nil {
		return nil, err
	}
	grouped := availability.GroupByMaterial(intervals(lines))

	ids := make([]int64, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		for i, qty := range availability.Usage(grouped[id], w) {
			if qty == 0 {
				continue
			}
			out.Bookings = append(out.Bookings, CalendarBooking{
				MaterialID: id,
				Date:       w.From.AddDays(i).String(),
				Qty:        qty,
			})
		}
	}
	return out, nil
}

// DayDetail lists the events drawing on a material on day, ordered by start
// date then title.
func (s *Service) DayDetail(ctx context.Context, materialID int64, day dates.Date) (*DayDetail, error) {
	m, err := s.material(ctx, materialID)
	if err != nil {
		return nil, err
	}
	lines, err := s.bookings.BookedLines(ctx, day, day, []int64{m.ID})
	if err != nil {
		return nil, err
	}

	items := make([]DetailItem, 0, len(lines))
	for _, l := range lines {
		start, end := l.Span()
		items = append(items, DetailItem{
			EventID:       l.EventID,
			Title:         l.Title,
			ClientName:    l.ClientName,
			VenueName:     l.VenueName,
			LocationIndex: l.LocationIndex,
			Status:        l.Status,
			From:          start.String(),
			To:            end.String(),
			Qty:           l.Qty,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].From != items[j].From {
			return items[i].From < items[j].From
		}
		return items[i].Title < items[j].Title
	})

	return &DayDetail{
		Material: DetailMaterial{ID: m.ID, Name: m.Name, Stock: m.Stock},
		Day:      day.String(),
		Items:    items,
	}, nil
}

func (s *Service) material(ctx context.Context, id int64) (*domain.Material, error) {
	m, err := s.materials.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMaterialNotFound
	}
	return m, err
}

func intervals(lines []repository.BookedLine) []availability.MaterialInterval {
	out := make([]availability.MaterialInterval, len(lines))
	for i, l := range lines {
		out[i] = availability.MaterialInterval{MaterialID: l.MaterialID, Interval: l.Interval()}
	}
	return out
}

func materialIDs(mats []domain.Material) []int64 {
	ids := make([]int64, len(mats))
	for i, m := range mats {
		ids[i] = m.ID
	}
	return ids
}

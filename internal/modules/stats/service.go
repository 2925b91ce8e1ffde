package stats

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

const (
	topMaterials      = 10
	logisticsCategory = "logistica"
)

var statusOrder = []domain.EventStatus{
	domain.EventCancelled, domain.EventDraft, domain.EventConfirmed, domain.EventInvoiced,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Month aggregates the events starting in year/month. Revenue figures skip
// cancelled events; the status breakdown counts them.
func (s *Service) Month(ctx context.Context, year int, month time.Month) (*Month, error) {
	from, to := dates.MonthBounds(year, month)

	events, err := s.repo.Events(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	lines, err := s.repo.Lines(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load lines: %w", err)
	}

	out := &Month{Month: fmt.Sprintf("%04d-%02d", year, int(month))}

	counts := map[domain.EventStatus]int{}
	var drafts, confirmed int
	for _, e := range events {
		counts[e.Status]++
		switch e.Status {
		case domain.EventDraft:
			drafts++
		case domain.EventConfirmed, domain.EventInvoiced:
			confirmed++
		}
	}
	out.KPIs.Events = len(events) - counts[domain.EventCancelled]
	out.KPIs.Conversion = math.Round(float64(confirmed)/float64(max(1, drafts+confirmed))*1000) / 10
	for _, st := range statusOrder {
		out.Statuses = append(out.Statuses, StatusCount{Label: string(st), Count: counts[st]})
	}

	byDay := map[dates.Date]decimal.Decimal{}
	byCategory := map[string]decimal.Decimal{}
	qtyByMaterial := map[int64]*MaterialQty{}
	for _, l := range lines {
		out.KPIs.Lines += l.Qty
		out.KPIs.Revenue = out.KPIs.Revenue.Add(l.Amount)
		if strings.EqualFold(l.Category, logisticsCategory) {
			out.KPIs.LogisticsCost = out.KPIs.LogisticsCost.Add(l.Amount)
		}
		byDay[l.StartDate] = byDay[l.StartDate].Add(l.Amount)

		category := l.Category
		if category == "" {
			category = "-"
		}
		byCategory[category] = byCategory[category].Add(l.Amount)

		mq, ok := qtyByMaterial[l.MaterialID]
		if !ok {
			mq = &MaterialQty{Name: l.MaterialName}
			qtyByMaterial[l.MaterialID] = mq
		}
		mq.Qty += l.Qty
	}
	out.KPIs.TotalCost = out.KPIs.Revenue

	out.RevenueByDay = make([]DayRevenue, 0, len(byDay))
	for d, rev := range byDay {
		out.RevenueByDay = append(out.RevenueByDay, DayRevenue{Date: d.String(), Revenue: rev})
	}
	sort.Slice(out.RevenueByDay, func(i, j int) bool { return out.RevenueByDay[i].Date < out.RevenueByDay[j].Date })

	out.RevenueByCategory = make([]CategoryRevenue, 0, len(byCategory))
	for c, rev := range byCategory {
		out.RevenueByCategory = append(out.RevenueByCategory, CategoryRevenue{Category: c, Revenue: rev})
	}
	sort.Slice(out.RevenueByCategory, func(i, j int) bool {
		a, b := out.RevenueByCategory[i], out.RevenueByCategory[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.Category < b.Category
	})

	out.TopMaterials = make([]MaterialQty, 0, len(qtyByMaterial))
	for _, mq := range qtyByMaterial {
		out.TopMaterials = append(out.TopMaterials, *mq)
	}
	sort.Slice(out.TopMaterials, func(i, j int) bool {
		a, b := out.TopMaterials[i], out.TopMaterials[j]
		if a.Qty != b.Qty {
			return a.Qty > b.Qty
		}
		return a.Name < b.Name
	})
	if len(out.TopMaterials) > topMaterials {
		out.TopMaterials = out.TopMaterials[:topMaterials]
	}

	return out, nil
}

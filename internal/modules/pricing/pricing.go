package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

var (
	one = decimal.NewFromInt(1)

	peakFactor     = decimal.RequireFromString("1.15")
	shoulderFactor = decimal.RequireFromString("1.05")
	weekendFactor  = decimal.RequireFromString("1.10")
)

type qtyTier struct {
	min    int64
	factor decimal.Decimal
}

// descending by min
var qtyTiers = []qtyTier{
	{50, decimal.RequireFromString("0.90")},
	{20, decimal.RequireFromString("0.94")},
	{10, decimal.RequireFromString("0.97")},
}

// Round2 rounds half away from zero to cents.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

func SeasonFactor(d dates.Date) decimal.Decimal {
	switch d.Month {
	case time.June, time.July, time.August, time.September, time.December:
		return peakFactor
	case time.May, time.October, time.November:
		return shoulderFactor
	default:
		return one
	}
}

func WeekdayFactor(d dates.Date) decimal.Decimal {
	switch d.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return weekendFactor
	default:
		return one
	}
}

func QtyFactor(qty decimal.Decimal) decimal.Decimal {
	for _, t := range qtyTiers {
		if qty.GreaterThanOrEqual(decimal.NewFromInt(t.min)) {
			return t.factor
		}
	}
	return one
}

// UnitPrice is the suggested price of one unit on day d.
func UnitPrice(base, qty decimal.Decimal, d dates.Date) decimal.Decimal {
	return Round2(base.Mul(SeasonFactor(d)).Mul(WeekdayFactor(d)).Mul(QtyFactor(qty)))
}

// Logistics is the call-out fee plus the per-km cost over km.
func Logistics(v *domain.Vehicle, km decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return Round2(v.CallOutCost.Add(v.TripCost(km)))
}

// Line is a priced input row.
type Line struct {
	MaterialID int64
	Name       string
	Qty        decimal.Decimal
	BasePrice  decimal.Decimal
}

// Compute prices every line for day d and adds the vehicle logistics over
// km, when a vehicle is given.
func Compute(lines []Line, d dates.Date, km decimal.Decimal, vehicle *domain.Vehicle) Quote {
	season, weekday := SeasonFactor(d), WeekdayFactor(d)

	q := Quote{
		Lines:   make([]QuoteLine, 0, len(lines)),
		Factors: DayFactors{Season: season, Weekday: weekday},
	}
	subtotal := decimal.Zero
	for _, l := range lines {
		qf := QtyFactor(l.Qty)
		pu := Round2(l.BasePrice.Mul(season).Mul(weekday).Mul(qf))
		amount := Round2(pu.Mul(l.Qty))
		subtotal = subtotal.Add(amount)
		q.Lines = append(q.Lines, QuoteLine{
			MaterialID:     l.MaterialID,
			Name:           l.Name,
			Qty:            l.Qty,
			BasePrice:      l.BasePrice,
			SuggestedPrice: pu,
			Factors:        LineFactors{Season: season, Weekday: weekday, Quantity: qf},
			Amount:         amount,
		})
	}

	logistics := Logistics(vehicle, km)
	q.Totals = Totals{
		Materials: subtotal,
		Logistics: logistics,
		Total:     Round2(subtotal.Add(logistics)),
	}
	return q
}

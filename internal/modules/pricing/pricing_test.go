package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"eventhire/internal/domain"
	"eventhire/internal/pkg/dates"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFactors(t *testing.T) {
	tests := []struct {
		name    string
		day     dates.Date
		season  string
		weekday string
	}{
		{"summer saturday", dates.New(2025, 6, 14), "1.15", "1.10"},
		{"december wednesday", dates.New(2025, 12, 3), "1.15", "1.00"},
		{"october friday", dates.New(2025, 10, 10), "1.05", "1.10"},
		{"march wednesday", dates.New(2025, 3, 5), "1.00", "1.00"},
		{"january sunday", dates.New(2025, 1, 5), "1.00", "1.10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, dec(tt.season).Equal(SeasonFactor(tt.day)), SeasonFactor(tt.day).String())
			assert.True(t, dec(tt.weekday).Equal(WeekdayFactor(tt.day)), WeekdayFactor(tt.day).String())
		})
	}
}

func TestQtyFactor(t *testing.T) {
	for qty, want := range map[string]string{
		"1": "1.00", "9.5": "1.00", "10": "0.97", "19": "0.97", "20": "0.94", "49": "0.94", "50": "0.90", "500": "0.90",
	} {
		assert.True(t, dec(want).Equal(QtyFactor(dec(qty))), "qty %s", qty)
	}
}

func TestUnitPrice_RoundsHalfUp(t *testing.T) {
	assert.Equal(t, "1.58", UnitPrice(dec("1.5"), dec("1"), dates.New(2025, 5, 7)).StringFixed(2))
	assert.Equal(t, "11.89", UnitPrice(dec("10"), dec("20"), dates.New(2025, 6, 14)).StringFixed(2))
}

func TestLogistics(t *testing.T) {
	van := &domain.Vehicle{CallOutCost: dec("50"), CostPerKm: dec("0.80")}
	assert.Equal(t, "146.40", Logistics(van, dec("120.5")).StringFixed(2))
	assert.True(t, Logistics(nil, dec("100")).IsZero())
}

func TestCompute(t *testing.T) {
	van := &domain.Vehicle{CallOutCost: dec("50"), CostPerKm: dec("1")}
	q := Compute([]Line{
		{MaterialID: 1, Name: "Sedia", Qty: dec("20"), BasePrice: dec("10")},
		{MaterialID: 2, Name: "Palco", Qty: dec("1"), BasePrice: dec("100")},
	}, dates.New(2025, 6, 14), dec("30"), van)

	assert.Len(t, q.Lines, 2)
	assert.Equal(t, "237.80", q.Lines[0].Amount.StringFixed(2))
	assert.Equal(t, "0.94", q.Lines[0].Factors.Quantity.StringFixed(2))
	assert.Equal(t, "126.50", q.Lines[1].SuggestedPrice.StringFixed(2))
	assert.Equal(t, "364.30", q.Totals.Materials.StringFixed(2))
	assert.Equal(t, "80.00", q.Totals.Logistics.StringFixed(2))
	assert.Equal(t, "444.30", q.Totals.Total.StringFixed(2))
	assert.Equal(t, "1.15", q.Factors.Season.StringFixed(2))
}

func TestCompute_Empty(t *testing.T) {
	q := Compute(nil, dates.New(2025, 2, 3), decimal.Zero, nil)
	assert.Empty(t, q.Lines)
	assert.True(t, q.Totals.Total.IsZero())
}

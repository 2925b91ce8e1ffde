package dates

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse(" 2025-02-28 ")
	require.NoError(t, err)
	assert.Equal(t, New(2025, 2, 28), d)

	_, err = Parse("28/02/2025")
	assert.Error(t, err)
}

func TestParseLenient(t *testing.T) {
	for _, s := range []string{"2025-03-01", "2025/03/01", "2025.03.01", "01/03/2025", "01-03-2025"} {
		d, ok := ParseLenient(s)
		assert.True(t, ok, s)
		assert.Equal(t, New(2025, 3, 1), d, s)
	}
	_, ok := ParseLenient("")
	assert.False(t, ok)
	_, ok = ParseLenient("tomorrow")
	assert.False(t, ok)
}

func TestParseOr(t *testing.T) {
	def := New(2024, 1, 1)
	assert.Equal(t, def, ParseOr("", def))
	assert.Equal(t, def, ParseOr("garbage", def))
	assert.Equal(t, New(2024, 5, 6), ParseOr("2024-05-06", def))
}

func TestRange(t *testing.T) {
	days := Range(New(2024, 2, 27), New(2024, 3, 1))
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, Strings(days))
	assert.Nil(t, Range(New(2024, 3, 2), New(2024, 3, 1)))
}

func TestScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2025-07-04"))
	assert.Equal(t, New(2025, 7, 4), d)

	require.NoError(t, d.Scan([]byte("2025-07-05T00:00:00Z")))
	assert.Equal(t, New(2025, 7, 5), d)

	require.NoError(t, d.Scan(time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, New(2025, 7, 6), d)

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestValue(t *testing.T) {
	v, err := Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = New(2025, 12, 31).Value()
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", v)
}

func TestJSON(t *testing.T) {
	type payload struct {
		From Date  `json:"from"`
		To   *Date `json:"to"`
	}
	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"from":"2025-01-10","to":null}`), &p))
	assert.Equal(t, New(2025, 1, 10), p.From)
	assert.Nil(t, p.To)

	out, err := json.Marshal(payload{From: New(2025, 1, 10), To: New(2025, 1, 12).Ptr()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"2025-01-10","to":"2025-01-12"}`, string(out))
}

func TestMonthBounds(t *testing.T) {
	from, to := MonthBounds(2024, time.February)
	assert.Equal(t, New(2024, 2, 1), from)
	assert.Equal(t, New(2024, 2, 29), to)

	from, to = MonthBounds(2025, time.December)
	assert.Equal(t, New(2025, 12, 1), from)
	assert.Equal(t, New(2025, 12, 31), to)
}

func TestParseMonth(t *testing.T) {
	y, m, err := ParseMonth("2025-09")
	require.NoError(t, err)
	assert.Equal(t, 2025, y)
	assert.Equal(t, time.September, m)

	_, _, err = ParseMonth("09/2025")
	assert.Error(t, err)
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, time.Saturday, New(2025, 6, 14).Weekday())
}

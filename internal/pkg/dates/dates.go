// Package dates wraps civil (timezone-less) dates so they can travel through
// JSON, query strings and SQL columns without picking up a time of day.
package dates

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const layout = "2006-01-02"

// Date is a calendar day. The zero value is "no date".
type Date struct {
	civil.Date
}

func New(year int, month time.Month, day int) Date {
	return Of(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Of returns the calendar day of t in t's own location.
func Of(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

func Today() Date {
	return Of(time.Now())
}

// Parse accepts only the ISO layout YYYY-MM-DD.
func Parse(s string) (Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{d}, nil
}

var lenientLayouts = []string{"2006-01-02", "2006/01/02", "2006.01.02", "02/01/2006", "02-01-2006"}

// ParseLenient tries the ISO layout first, then the day-first layouts users
// type into the calendar pickers.
func ParseLenient(s string) (Date, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, false
	}
	for _, l := range lenientLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return Of(t), true
		}
	}
	return Date{}, false
}

// ParseOr parses s and falls back to def when s is empty or malformed.
func ParseOr(s string, def Date) Date {
	if d, err := Parse(s); err == nil {
		return d
	}
	return def
}

func (d Date) AddDays(n int) Date { return Date{d.Date.AddDays(n)} }

func (d Date) Before(o Date) bool { return d.Date.Before(o.Date) }

func (d Date) After(o Date) bool { return d.Date.After(o.Date) }

// DaysSince returns the signed number of days from o to d.
func (d Date) DaysSince(o Date) int { return d.Date.DaysSince(o.Date) }

func (d Date) Weekday() time.Weekday { return d.In(time.UTC).Weekday() }

func (d Date) Ptr() *Date { return &d }

// Value stores the date as an ISO string, which both postgres DATE columns and
// sqlite text columns compare correctly.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = Of(v.UTC())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("dates: cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) >= len(layout) {
		s = s[:len(layout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func Min(a, b Date) Date {
	if b.Before(a) {
		return b
	}
	return a
}

func Max(a, b Date) Date {
	if b.After(a) {
		return b
	}
	return a
}

// Range lists every day from from to to, both included. It returns nil when
// to is before from.
func Range(from, to Date) []Date {
	if to.Before(from) {
		return nil
	}
	out := make([]Date, 0, to.DaysSince(from)+1)
	for cur := from; !cur.After(to); cur = cur.AddDays(1) {
		out = append(out, cur)
	}
	return out
}

// Strings formats a list of days as ISO strings.
func Strings(days []Date) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = d.String()
	}
	return out
}

func MonthBounds(year int, month time.Month) (Date, Date) {
	start := New(year, month, 1)
	end := Of(time.Date(year, month+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
	return start, end
}

// ParseMonth reads a YYYY-MM string.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

func YearBounds(year int) (Date, Date) {
	return New(year, time.January, 1), New(year, time.December, 31)
}

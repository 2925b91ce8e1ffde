// Package availability computes per-day stock usage from date-ranged demand.
//
// Every warehouse, catalog and calendar view reduces to the same question:
// given a stock level and a set of inclusive [start, end] intervals carrying a
// quantity, how much is used and how much is left on each day of a window.
// The package is pure; callers load intervals from storage and pass them in.
package availability

import (
	"eventhire/internal/pkg/dates"
)

type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusKO   Status = "ko"
)

// DefaultWarnThreshold is the highest free quantity still reported as warn.
const DefaultWarnThreshold = 3

// Interval is demand of Qty units on every day from Start to End inclusive.
type Interval struct {
	Start dates.Date
	End   dates.Date
	Qty   int
}

// Window is an inclusive range of days.
type Window struct {
	From dates.Date
	To   dates.Date
}

// NewWindow builds a window, collapsing it to the single day from when to
// precedes from.
func NewWindow(from, to dates.Date) Window {
	if to.IsZero() || to.Before(from) {
		to = from
	}
	return Window{From: from, To: to}
}

func (w Window) Days() []dates.Date {
	return dates.Range(w.From, w.To)
}

func (w Window) Len() int {
	return w.To.DaysSince(w.From) + 1
}

func (w Window) Contains(d dates.Date) bool {
	return !d.Before(w.From) && !d.After(w.To)
}

// Clip intersects iv with the window. ok is false when they do not overlap.
func (w Window) Clip(iv Interval) (Interval, bool) {
	if iv.End.Before(iv.Start) || !Overlaps(iv.Start, iv.End, w.From, w.To) {
		return Interval{}, false
	}
	iv.Start = dates.Max(iv.Start, w.From)
	iv.End = dates.Min(iv.End, w.To)
	return iv, true
}

// Overlaps reports whether the inclusive ranges [aStart, aEnd] and
// [bStart, bEnd] share at least one day.
func Overlaps(aStart, aEnd, bStart, bEnd dates.Date) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}

// Resolve returns the inclusive span blocked by a booking line.
//
// The explicit range on the event wins. Without an explicit end the span
// covers coverageDays days from the start, and a missing start falls back to
// the event date.
func Resolve(eventDate dates.Date, from, to *dates.Date, coverageDays int) (dates.Date, dates.Date) {
	start := eventDate
	if from != nil && !from.IsZero() {
		start = *from
	}
	var end dates.Date
	if to != nil && !to.IsZero() {
		end = *to
	} else {
		if coverageDays < 1 {
			coverageDays = 1
		}
		end = start.AddDays(coverageDays - 1)
	}
	if end.Before(start) {
		end = start
	}
	return start, end
}

// DayUsage is the state of one material on one day.
type DayUsage struct {
	Date   dates.Date `json:"date"`
	Used   int        `json:"used"`
	Free   int        `json:"free"`
	Status Status     `json:"status"`
}

// Summary condenses a window of usage for a single material.
type Summary struct {
	Stock     int `json:"scorta"`
	BookedOn  int `json:"prenotato"`
	BookedMax int `json:"prenotato_max"`
	Available int `json:"disponibile"`
}

type Engine struct {
	warnThreshold int
}

func New(warnThreshold int) Engine {
	if warnThreshold < 0 {
		warnThreshold = DefaultWarnThreshold
	}
	return Engine{warnThreshold: warnThreshold}
}

func (e Engine) WarnThreshold() int {
	return e.warnThreshold
}

func (e Engine) StatusFor(free int) Status {
	switch {
	case free <= 0:
		return StatusKO
	case free <= e.warnThreshold:
		return StatusWarn
	default:
		return StatusOK
	}
}

// Usage returns the used quantity for every day of w, indexed from w.From.
func Usage(intervals []Interval, w Window) []int {
	n := w.Len()
	if n <= 0 {
		return nil
	}
	diff := make([]int, n+1)
	for _, iv := range intervals {
		if iv.Qty <= 0 {
			continue
		}
		c, ok := w.Clip(iv)
		if !ok {
			continue
		}
		diff[c.Start.DaysSince(w.From)] += c.Qty
		diff[c.End.DaysSince(w.From)+1] -= c.Qty
	}
	used := make([]int, n)
	run := 0
	for i := 0; i < n; i++ {
		run += diff[i]
		used[i] = run
	}
	return used
}

// UsageByDay is Usage keyed by day, omitting days with no demand.
func UsageByDay(intervals []Interval, w Window) map[dates.Date]int {
	out := make(map[dates.Date]int)
	for i, u := range Usage(intervals, w) {
		if u > 0 {
			out[w.From.AddDays(i)] = u
		}
	}
	return out
}

// Daily computes used, free and status for every day of w.
func (e Engine) Daily(stock int, intervals []Interval, w Window) []DayUsage {
	used := Usage(intervals, w)
	out := make([]DayUsage, len(used))
	for i, u := range used {
		free := stock - u
		if free < 0 {
			free = 0
		}
		out[i] = DayUsage{
			Date:   w.From.AddDays(i),
			Used:   u,
			Free:   free,
			Status: e.StatusFor(free),
		}
	}
	return out
}

// Summarize reports peak demand over w and what is left at the peak. on
// selects the day reported as BookedOn; when nil the peak is used.
func Summarize(stock int, intervals []Interval, w Window, on *dates.Date) Summary {
	used := Usage(intervals, w)
	peak := 0
	for _, u := range used {
		if u > peak {
			peak = u
		}
	}
	s := Summary{Stock: stock, BookedMax: peak, BookedOn: peak}
	if on != nil {
		s.BookedOn = 0
		if w.Contains(*on) {
			s.BookedOn = used[on.DaysSince(w.From)]
		}
	}
	s.Available = stock - peak
	if s.Available < 0 {
		s.Available = 0
	}
	return s
}

// MaterialInterval tags demand with the material it draws on.
type MaterialInterval struct {
	MaterialID int64
	Interval
}

// GroupByMaterial splits tagged demand into per-material interval lists.
func GroupByMaterial(items []MaterialInterval) map[int64][]Interval {
	out := make(map[int64][]Interval)
	for _, it := range items {
		out[it.MaterialID] = append(out[it.MaterialID], it.Interval)
	}
	return out
}

// FreeSlots lists the location indexes in 1..n not present in used.
func FreeSlots(used []int, n int) []int {
	taken := make(map[int]bool, len(used))
	for _, u := range used {
		taken[u] = true
	}
	free := make([]int, 0, n)
	for i := 1; i <= n; i++ {
		if !taken[i] {
			free = append(free, i)
		}
	}
	return free
}

// Package availability computes the bookable time of an instructor from weekly
// windows, whole-day time off and already occupied intervals.
package availability

import (
	"sort"
	"time"
)

// Interval is a half-open span [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (i Interval) Empty() bool {
	return !i.End.After(i.Start)
}

func (i Interval) Contains(start, end time.Time) bool {
	return !start.Before(i.Start) && !end.After(i.End)
}

func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// Window is a recurring weekly slot expressed as offsets from local midnight.
type Window struct {
	Weekday time.Weekday
	Start   time.Duration
	End     time.Duration
}

// Date is a calendar day blocked in full.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Span returns the full 24 hour span of the date in loc.
func (d Date) Span(loc *time.Location) Interval {
	return Interval{
		Start: time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc),
		End:   time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, loc),
	}
}

// Input is everything Resolve needs about one instructor.
type Input struct {
	Windows  []Window
	TimeOff  []Date
	Occupied []Interval
	Location *time.Location
}

// Resolve returns the maximal bookable sub-intervals of [from, to), ascending and
// non-overlapping. A zero-length or inverted range yields nil.
func Resolve(in Input, from, to time.Time) []Interval {
	if !to.After(from) || len(in.Windows) == 0 {
		return nil
	}
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	free := merge(project(in.Windows, from, to, loc))
	for _, d := range in.TimeOff {
		free = subtract(free, d.Span(loc))
	}
	for _, busy := range in.Occupied {
		free = subtract(free, busy)
	}
	return free
}

// project anchors every matching window onto each local day touched by [from, to).
func project(windows []Window, from, to time.Time, loc *time.Location) []Interval {
	var out []Interval
	y, m, d := from.In(loc).Date()
	for day := time.Date(y, m, d, 0, 0, 0, 0, loc); day.Before(to); {
		dy, dm, dd := day.Date()
		for _, w := range windows {
			if w.Weekday != day.Weekday() || w.End <= w.Start {
				continue
			}
			iv := Interval{
				Start: at(dy, dm, dd, w.Start, loc),
				End:   at(dy, dm, dd, w.End, loc),
			}
			if iv.Start.Before(from) {
				iv.Start = from
			}
			if iv.End.After(to) {
				iv.End = to
			}
			if !iv.Empty() {
				out = append(out, iv)
			}
		}
		day = time.Date(dy, dm, dd+1, 0, 0, 0, 0, loc)
	}
	return out
}

// at builds a wall-clock time so DST shifts do not move the window.
func at(y int, m time.Month, d int, offset time.Duration, loc *time.Location) time.Time {
	h := int(offset / time.Hour)
	offset -= time.Duration(h) * time.Hour
	mi := int(offset / time.Minute)
	offset -= time.Duration(mi) * time.Minute
	s := int(offset / time.Second)
	offset -= time.Duration(s) * time.Second
	return time.Date(y, m, d, h, mi, s, int(offset), loc)
}

// merge returns the union of intervals. Adjacent intervals are joined.
func merge(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	out := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &out[len(out)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		out = append(out, iv)
	}
	return out
}

// subtract removes block from a sorted, disjoint list.
func subtract(free []Interval, block Interval) []Interval {
	if block.Empty() {
		return free
	}
	out := make([]Interval, 0, len(free)+1)
	for _, iv := range free {
		if !iv.Overlaps(block) {
			out = append(out, iv)
			continue
		}
		if iv.Start.Before(block.Start) {
			out = append(out, Interval{Start: iv.Start, End: block.Start})
		}
		if iv.End.After(block.End) {
			out = append(out, Interval{Start: block.End, End: iv.End})
		}
	}
	return out
}

// Covers reports whether a single interval fully contains [start, end).
func Covers(free []Interval, start, end time.Time) bool {
	for _, iv := range free {
		if iv.Contains(start, end) {
			return true
		}
	}
	return false
}

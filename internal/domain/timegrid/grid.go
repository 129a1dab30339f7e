package timegrid

import (
	"math"
	"time"

	"salon-scheduler/internal/pkg/errs"
)

var ErrInvalidBusinessHours = errs.New("business close hour must be after open hour")

// Grid maps wall-clock times onto a business day rendered as a [0,1) strip.
// All functions clamp out-of-hours input to the open/close boundary.
type Grid struct {
	openHour  int
	closeHour int
	loc       *time.Location
}

func NewGrid(openHour, closeHour int, loc *time.Location) (Grid, error) {
	if openHour < 0 || closeHour > 24 || closeHour <= openHour {
		return Grid{}, errs.Wrapf(ErrInvalidBusinessHours, "open=%d close=%d", openHour, closeHour)
	}
	if loc == nil {
		loc = time.UTC
	}
	return Grid{openHour: openHour, closeHour: closeHour, loc: loc}, nil
}

func (g Grid) OpenHour() int {
	return g.openHour
}

func (g Grid) CloseHour() int {
	return g.closeHour
}

func (g Grid) Location() *time.Location {
	return g.loc
}

func (g Grid) SpanMinutes() int {
	return (g.closeHour - g.openHour) * 60
}

func (g Grid) span() float64 {
	return float64(g.SpanMinutes())
}

func (g Grid) spanDuration() time.Duration {
	return time.Duration(g.SpanMinutes()) * time.Minute
}

// OpenAt returns business open on date's calendar day in the grid location.
func (g Grid) OpenAt(date time.Time) time.Time {
	d := date.In(g.loc)
	return time.Date(d.Year(), d.Month(), d.Day(), g.openHour, 0, 0, 0, g.loc)
}

func (g Grid) CloseAt(date time.Time) time.Time {
	return g.OpenAt(date).Add(g.spanDuration())
}

// Clamp pins t into [open, close] of its own calendar day.
func (g Grid) Clamp(t time.Time) time.Time {
	open := g.OpenAt(t)
	if t.Before(open) {
		return open
	}
	if end := g.CloseAt(t); t.After(end) {
		return end
	}
	return t
}

// OffsetMinutes is the whole number of minutes between open and t, clamped to [0, span].
func (g Grid) OffsetMinutes(t time.Time) int {
	return int(g.Clamp(t).Sub(g.OpenAt(t)) / time.Minute)
}

// PositionFraction maps t to [0,1). Times at or after close map to the largest value below 1.
func (g Grid) PositionFraction(t time.Time) float64 {
	elapsed := g.Clamp(t).Sub(g.OpenAt(t)).Minutes()
	f := elapsed / g.span()
	if f >= 1 {
		return math.Nextafter(1, 0)
	}
	return f
}

// TimeFromPosition inverts PositionFraction on date, rounding to the nearest snap boundary.
// A non-positive snap means minute resolution.
func (g Grid) TimeFromPosition(fraction float64, date time.Time, snapMinutes int) time.Time {
	if math.IsNaN(fraction) || fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if snapMinutes <= 0 {
		snapMinutes = 1
	}
	snap := float64(snapMinutes)
	minutes := math.Floor(fraction*g.span()/snap+0.5) * snap
	if minutes > g.span() {
		minutes = g.span()
	}
	return g.OpenAt(date).Add(time.Duration(minutes) * time.Minute)
}

// Placement returns the left offset and width of [start, end) as fractions of the day.
func (g Grid) Placement(start, end time.Time) (left, width float64) {
	s := g.OffsetMinutes(start)
	e := g.OffsetMinutes(end)
	if !end.Before(g.CloseAt(start)) || !sameDay(start, end, g.loc) {
		e = g.SpanMinutes()
	}
	if e < s {
		e = s
	}
	return float64(s) / g.span(), float64(e-s) / g.span()
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

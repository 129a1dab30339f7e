package schedule

import (
	"sort"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/timegrid"

	"github.com/google/uuid"
)

// Reason explains a negative placement decision.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonHoliday Reason = "holiday"
	ReasonOverlap Reason = "overlap"
)

type Decision struct {
	Reason       Reason
	ConflictWith *uuid.UUID
}

func (d Decision) OK() bool {
	return d.Reason == ReasonNone
}

// Overridable reports whether a confirmed override may bypass this decision.
// Holidays are never overridable.
func (d Decision) Overridable() bool {
	return d.Reason == ReasonOverlap
}

// Day is one staff member's active appointments on one calendar date.
type Day struct {
	staffID      uuid.UUID
	date         time.Time
	holiday      bool
	appointments []*appointment.Appointment
}

// NewDay keeps only active appointments of staffID, ordered by start.
func NewDay(staffID uuid.UUID, date time.Time, holiday bool, appts []*appointment.Appointment) *Day {
	active := make([]*appointment.Appointment, 0, len(appts))
	for _, a := range appts {
		if a == nil || !a.IsActive() || a.StaffID() != staffID {
			continue
		}
		active = append(active, a)
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].Slot().Start().Before(active[j].Slot().Start())
	})
	return &Day{staffID: staffID, date: date, holiday: holiday, appointments: active}
}

func (d *Day) StaffID() uuid.UUID {
	return d.staffID
}

func (d *Day) Date() time.Time {
	return d.date
}

func (d *Day) Appointments() []*appointment.Appointment {
	return d.appointments
}

func (d *Day) IsStaffUnavailable() bool {
	return d.holiday
}

// CanPlace evaluates the holiday block first, then half-open overlap against every
// active appointment except exclude. The earliest conflicting appointment is reported.
func (d *Day) CanPlace(slot appointment.TimeSlot, exclude *uuid.UUID) Decision {
	if d.holiday {
		return Decision{Reason: ReasonHoliday}
	}
	for _, a := range d.appointments {
		if exclude != nil && a.ID() == *exclude {
			continue
		}
		if a.Slot().Overlaps(slot) {
			id := a.ID()
			return Decision{Reason: ReasonOverlap, ConflictWith: &id}
		}
	}
	return Decision{}
}

// Place returns a decision that the caller may persist: ok, or an overlap the caller
// confirmed with allowOverlap. The second value reports whether an override was used.
func (d *Day) Place(slot appointment.TimeSlot, exclude *uuid.UUID, allowOverlap bool) (Decision, bool) {
	decision := d.CanPlace(slot, exclude)
	if decision.OK() {
		return decision, false
	}
	if allowOverlap && decision.Overridable() {
		return decision, true
	}
	return decision, false
}

type Gap struct {
	Start           time.Time
	DurationMinutes int
}

func (g Gap) End() time.Time {
	return g.Start.Add(time.Duration(g.DurationMinutes) * time.Minute)
}

// FreeSlots lists maximal gaps of at least minDuration between business open, the
// active appointments and business close. A holiday has no free slots.
func (d *Day) FreeSlots(grid timegrid.Grid, minDuration time.Duration) []Gap {
	if d.holiday {
		return nil
	}
	open := grid.OpenAt(d.date)
	closeAt := grid.CloseAt(d.date)

	var gaps []Gap
	cursor := open
	add := func(from, to time.Time) {
		if to.Sub(from) >= minDuration && to.After(from) {
			gaps = append(gaps, Gap{Start: from, DurationMinutes: int(to.Sub(from) / time.Minute)})
		}
	}

	for _, a := range d.appointments {
		start := a.Slot().Start()
		end := a.Slot().End()
		if !end.After(open) || !start.Before(closeAt) {
			continue
		}
		if start.After(cursor) {
			add(cursor, start)
		}
		if end.After(cursor) {
			cursor = end
		}
	}
	if cursor.After(closeAt) {
		cursor = closeAt
	}
	add(cursor, closeAt)
	return gaps
}

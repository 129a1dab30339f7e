package appointment

import (
	"time"

	"salon-scheduler/internal/pkg/errs"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusCompleted, StatusCancelled:
		return Status(s), nil
	default:
		return "", errs.Wrapf(ErrInvalidStatus, "status=%q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// TimeSlot is the half-open interval [start, end).
type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if start.IsZero() || end.IsZero() {
		return TimeSlot{}, errs.Wrap(ErrInvalidTimeSlot, "start and end are required")
	}
	if !end.After(start) {
		return TimeSlot{}, errs.Wrapf(ErrInvalidTimeSlot, "end %s is not after start %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return TimeSlot{start: start, end: end}, nil
}

func SlotFor(start time.Time, duration time.Duration) (TimeSlot, error) {
	if duration <= 0 {
		return TimeSlot{}, errs.Wrapf(ErrInvalidDuration, "duration=%s", duration)
	}
	return NewTimeSlot(start, start.Add(duration))
}

func (s TimeSlot) Start() time.Time {
	return s.start
}

func (s TimeSlot) End() time.Time {
	return s.end
}

func (s TimeSlot) Duration() time.Duration {
	return s.end.Sub(s.start)
}

// Overlaps treats touching endpoints as free: 10:00-11:00 and 11:00-12:00 do not overlap.
func (s TimeSlot) Overlaps(o TimeSlot) bool {
	return s.start.Before(o.end) && o.start.Before(s.end)
}

// Shift moves the slot to newStart keeping its duration.
func (s TimeSlot) Shift(newStart time.Time) TimeSlot {
	return TimeSlot{start: newStart, end: newStart.Add(s.Duration())}
}

func (s TimeSlot) IsZero() bool {
	return s.start.IsZero() && s.end.IsZero()
}

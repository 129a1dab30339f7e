package queries

import (
	"context"
	"math"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

// MaxListRange bounds ListAppointments so a single request cannot scan the whole table.
const MaxListRange = 62 * 24 * time.Hour

type ScheduleReadStore interface {
	FindAppointment(ctx context.Context, shopID, id uuid.UUID) (*AppointmentView, error)
	ListAppointments(ctx context.Context, shopID uuid.UUID, staffID *uuid.UUID, from, to time.Time) ([]*AppointmentView, error)
	ListStaff(ctx context.Context, shopID uuid.UUID) ([]StaffView, error)
	StaffHolidays(ctx context.Context, shopID uuid.UUID, date string) (map[uuid.UUID]bool, error)
	ListNotes(ctx context.Context, shopID uuid.UUID, date string) ([]NoteView, error)
}

type ScheduleQueries interface {
	ListAppointments(ctx context.Context, shopID uuid.UUID, staffID *uuid.UUID, from, to time.Time) ([]*AppointmentView, error)
	GetAppointment(ctx context.Context, shopID, id uuid.UUID) (*AppointmentView, error)
	CheckPlacement(ctx context.Context, shopID, staffID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (*PlacementView, error)
	FreeSlots(ctx context.Context, shopID, staffID uuid.UUID, date string) ([]FreeSlotView, error)
	DayBoard(ctx context.Context, shopID uuid.UUID, date string) (*DayBoardView, error)
	ResolveDrop(ctx context.Context, shopID uuid.UUID, fraction float64, date string) (*DropView, error)
	Bulletin(ctx context.Context, shopID uuid.UUID, date string) ([]NoteView, error)
}

type ScheduleSettings struct {
	Grid            timegrid.Grid
	DropSnapMinutes int
	MinFreeSlot     time.Duration
}

type scheduleQueriesImpl struct {
	store    ScheduleReadStore
	settings ScheduleSettings
}

func NewScheduleQueries(store ScheduleReadStore, settings ScheduleSettings) ScheduleQueries {
	return &scheduleQueriesImpl{store: store, settings: settings}
}

func (q *scheduleQueriesImpl) ListAppointments(ctx context.Context, shopID uuid.UUID, staffID *uuid.UUID, from, to time.Time) ([]*AppointmentView, error) {
	if !to.After(from) {
		return nil, shared.ValidationErrorf("range end %s must be after start %s", to.Format(time.RFC3339), from.Format(time.RFC3339))
	}
	if to.Sub(from) > MaxListRange {
		return nil, shared.ValidationErrorf("range may not exceed %d days", int(MaxListRange/(24*time.Hour)))
	}
	rows, err := q.store.ListAppointments(ctx, shopID, staffID, from, to)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return rows, nil
}

func (q *scheduleQueriesImpl) GetAppointment(ctx context.Context, shopID, id uuid.UUID) (*AppointmentView, error) {
	v, err := q.store.FindAppointment(ctx, shopID, id)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return v, nil
}

func (q *scheduleQueriesImpl) CheckPlacement(ctx context.Context, shopID, staffID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (*PlacementView, error) {
	slot, err := appointment.NewTimeSlot(start, end)
	if err != nil {
		return nil, shared.Classify(err)
	}
	day, err := q.loadDay(ctx, shopID, staffID, pgconv.DateKey(start, q.settings.Grid.Location()))
	if err != nil {
		return nil, err
	}

	decision := day.CanPlace(slot, exclude)
	return &PlacementView{
		OK:           decision.OK(),
		Reason:       string(decision.Reason),
		ConflictWith: decision.ConflictWith,
		Overridable:  decision.Overridable(),
	}, nil
}

func (q *scheduleQueriesImpl) FreeSlots(ctx context.Context, shopID, staffID uuid.UUID, date string) ([]FreeSlotView, error) {
	day, err := q.loadDay(ctx, shopID, staffID, date)
	if err != nil {
		return nil, err
	}
	return toFreeSlotViews(day.FreeSlots(q.settings.Grid, q.settings.MinFreeSlot)), nil
}

func (q *scheduleQueriesImpl) DayBoard(ctx context.Context, shopID uuid.UUID, date string) (*DayBoardView, error) {
	day, err := q.parseDate(date)
	if err != nil {
		return nil, err
	}
	staff, err := q.store.ListStaff(ctx, shopID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	holidays, err := q.store.StaffHolidays(ctx, shopID, date)
	if err != nil {
		return nil, shared.Classify(err)
	}
	from, to := clock.DayBounds(day, q.settings.Grid.Location())
	appts, err := q.store.ListAppointments(ctx, shopID, nil, from, to)
	if err != nil {
		return nil, shared.Classify(err)
	}

	notes, err := q.store.ListNotes(ctx, shopID, date)
	if err != nil {
		return nil, shared.Classify(err)
	}
	byStaff := make(map[uuid.UUID][]*AppointmentView, len(staff))
	for _, a := range appts {
		byStaff[a.StaffID] = append(byStaff[a.StaffID], a)
	}

	grid := q.settings.Grid
	board := &DayBoardView{
		Date:     date,
		OpensAt:  grid.OpenAt(day),
		ClosesAt: grid.CloseAt(day),
		Rows:     make([]BoardRow, 0, len(staff)),
		Notes:    nonNil(notes),
	}
	for _, s := range staff {
		views := byStaff[s.ID]
		domainDay, err := buildDay(s.ID, day, holidays[s.ID], views)
		if err != nil {
			return nil, err
		}

		row := BoardRow{
			Staff:     s,
			Holiday:   holidays[s.ID],
			Cards:     make([]BoardCard, 0, len(views)),
			FreeSlots: toFreeSlotViews(domainDay.FreeSlots(grid, q.settings.MinFreeSlot)),
		}
		for _, v := range views {
			left, width := grid.Placement(v.StartTime, v.EndTime)
			row.Cards = append(row.Cards, BoardCard{
				AppointmentView: *v,
				Left:            percent(left),
				Width:           percent(width),
			})
		}
		board.Rows = append(board.Rows, row)
	}
	return board, nil
}

func (q *scheduleQueriesImpl) ResolveDrop(_ context.Context, _ uuid.UUID, fraction float64, date string) (*DropView, error) {
	if math.IsNaN(fraction) || math.IsInf(fraction, 0) {
		return nil, shared.ValidationErrorf("fraction must be a finite number")
	}
	day, err := q.parseDate(date)
	if err != nil {
		return nil, err
	}
	start := q.settings.Grid.TimeFromPosition(fraction, day, q.settings.DropSnapMinutes)
	return &DropView{
		Start:    start,
		Fraction: q.settings.Grid.PositionFraction(start),
	}, nil
}

func (q *scheduleQueriesImpl) Bulletin(ctx context.Context, shopID uuid.UUID, date string) ([]NoteView, error) {
	if _, err := q.parseDate(date); err != nil {
		return nil, err
	}
	notes, err := q.store.ListNotes(ctx, shopID, date)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return nonNil(notes), nil
}

func (q *scheduleQueriesImpl) parseDate(date string) (time.Time, error) {
	day, err := pgconv.ParseDateKey(date, q.settings.Grid.Location())
	if err != nil {
		return time.Time{}, shared.ValidationErrorf("date %q must be YYYY-MM-DD", date)
	}
	return day, nil
}

func (q *scheduleQueriesImpl) loadDay(ctx context.Context, shopID, staffID uuid.UUID, date string) (*schedule.Day, error) {
	day, err := q.parseDate(date)
	if err != nil {
		return nil, err
	}
	holidays, err := q.store.StaffHolidays(ctx, shopID, date)
	if err != nil {
		return nil, shared.Classify(err)
	}
	from, to := clock.DayBounds(day, q.settings.Grid.Location())
	views, err := q.store.ListAppointments(ctx, shopID, &staffID, from, to)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return buildDay(staffID, day, holidays[staffID], views)
}

func buildDay(staffID uuid.UUID, date time.Time, holiday bool, views []*AppointmentView) (*schedule.Day, error) {
	appts := make([]*appointment.Appointment, 0, len(views))
	for _, v := range views {
		a, err := toDomain(v)
		if err != nil {
			return nil, err
		}
		appts = append(appts, a)
	}
	return schedule.NewDay(staffID, date, holiday, appts), nil
}

func toDomain(v *AppointmentView) (*appointment.Appointment, error) {
	slot, err := appointment.NewTimeSlot(v.StartTime, v.EndTime)
	if err != nil {
		return nil, errs.Wrapf(err, "stored appointment %s", v.ID)
	}
	status, err := appointment.ParseStatus(v.Status)
	if err != nil {
		return nil, errs.Wrapf(err, "stored appointment %s", v.ID)
	}
	return appointment.Reconstruct(
		v.ID, v.ShopID, v.StaffID, v.CustomerID, v.CustomerName, v.ServiceID, v.MenuName,
		slot, status, v.Override, v.Version, v.CreatedAt, v.UpdatedAt,
	), nil
}

func toFreeSlotViews(gaps []schedule.Gap) []FreeSlotView {
	out := make([]FreeSlotView, len(gaps))
	for i, g := range gaps {
		out[i] = FreeSlotView{Start: g.Start, End: g.End(), DurationMinutes: g.DurationMinutes}
	}
	return out
}

func percent(f float64) float64 {
	return math.Round(f*10000) / 100
}

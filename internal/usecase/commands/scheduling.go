package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/domain/schedule"
	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/metrics"
	"salon-scheduler/internal/pkg/patch"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

type CreateAppointmentParams struct {
	StaffID      uuid.UUID
	ServiceID    uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	Start        time.Time
	AllowOverlap bool
}

type RescheduleParams struct {
	ID           uuid.UUID
	StaffID      *uuid.UUID
	Start        time.Time
	AllowOverlap bool
	// Version is the optimistic token the client read; nil skips the check.
	Version *int
}

type AppointmentResult struct {
	ID         uuid.UUID
	Version    int
	Overridden bool
}

type SchedulingCommands interface {
	CreateAppointment(ctx context.Context, shopID uuid.UUID, p CreateAppointmentParams) (*AppointmentResult, error)
	RescheduleAppointment(ctx context.Context, shopID uuid.UUID, p RescheduleParams) (*AppointmentResult, error)
	CancelAppointment(ctx context.Context, shopID, id uuid.UUID) error
	MarkHoliday(ctx context.Context, shopID, staffID uuid.UUID, date time.Time, force bool) error
	ClearHoliday(ctx context.Context, shopID, staffID uuid.UUID, date time.Time) error
	PostNote(ctx context.Context, shopID uuid.UUID, date time.Time, content string) (uuid.UUID, error)
}

type schedulingUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog shared.CatalogReads
	grid    timegrid.Grid
	clock   clock.Clock
	metrics *metrics.SchedulingMetrics
}

func NewSchedulingUseCase(
	uow shared.UnitOfWork,
	catalog shared.CatalogReads,
	grid timegrid.Grid,
	clk clock.Clock,
	m *metrics.SchedulingMetrics,
) SchedulingCommands {
	return &schedulingUseCaseImpl{
		uow:     uow,
		catalog: catalog,
		grid:    grid,
		clock:   clk,
		metrics: m,
	}
}

type appointmentEvent struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Override      bool      `json:"override"`
	Version       int       `json:"version"`
}

func (uc *schedulingUseCaseImpl) CreateAppointment(ctx context.Context, shopID uuid.UUID, p CreateAppointmentParams) (_ *AppointmentResult, err error) {
	ctx, span := tracer.Start(ctx, "scheduling.CreateAppointment")
	defer func() {
		uc.metrics.ObserveAppointmentWrite("create", err)
		endSpan(span, err)
	}()
	span.SetAttributes(
		attribute.String("salon.shop_id", shopID.String()),
		attribute.String("salon.staff_id", p.StaffID.String()),
	)

	if p.Start.IsZero() {
		return nil, shared.ValidationErrorf("start time is required")
	}
	if p.ServiceID == uuid.Nil {
		return nil, errs.Mark(appointment.ErrServiceRequired, shared.ErrValidation)
	}
	svc, err := uc.catalog.ServiceSnapshot(ctx, shopID, p.ServiceID)
	if err != nil {
		return nil, shared.Classify(errs.Wrap(err, "resolve service"))
	}
	slot, err := appointment.SlotFor(p.Start, svc.Duration())
	if err != nil {
		return nil, shared.Classify(err)
	}
	params := appointment.NewParams{
		ShopID:       shopID,
		StaffID:      p.StaffID,
		CustomerID:   p.CustomerID,
		CustomerName: p.CustomerName,
		ServiceID:    svc.ID,
		MenuName:     svc.Name,
		Slot:         slot,
	}
	// Validate once before opening a transaction.
	if _, err = appointment.New(params, uc.clock.Now()); err != nil {
		return nil, shared.Classify(err)
	}

	var result AppointmentResult
	err = runWithConcurrencyRetry(ctx, "create appointment", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Catalog().StaffByID(ctx, tx.DB(), shopID, p.StaffID); err != nil {
				return err
			}
			loc := uc.grid.Location()
			if err := lockDays(ctx, tx, shopID, dayLock{staffID: p.StaffID, date: dateKey(slot.Start(), loc)}); err != nil {
				return err
			}
			overridden, err := uc.placeInTx(ctx, tx, shopID, p.StaffID, slot, nil, p.AllowOverlap)
			if err != nil {
				return err
			}

			attempt := params
			attempt.Override = overridden
			if attempt.CustomerID == nil {
				customerID, err := tx.Customers().Create(ctx, tx.DB(), shopID, strings.TrimSpace(p.CustomerName))
				if err != nil {
					return err
				}
				attempt.CustomerID = &customerID
			} else {
				ok, err := tx.Customers().Exists(ctx, tx.DB(), shopID, *attempt.CustomerID)
				if err != nil {
					return err
				}
				if !ok {
					return shared.NotFoundErrorf("customer %s not found", *attempt.CustomerID)
				}
			}
			appt, err := appointment.New(attempt, uc.clock.Now())
			if err != nil {
				return err
			}
			if err := tx.Appointments().Create(ctx, tx.DB(), appt); err != nil {
				return err
			}
			if err := enqueue(ctx, tx, shopID, shared.EventAppointmentCreated, eventOf(appt), uc.clock.Now()); err != nil {
				return err
			}

			result = AppointmentResult{ID: appt.ID(), Version: appt.Version(), Overridden: overridden}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "appointment created",
		"shop_id", shopID, "appointment_id", result.ID, "staff_id", p.StaffID,
		"start", slot.Start(), "end", slot.End(), "override", result.Overridden)
	return &result, nil
}

func (uc *schedulingUseCaseImpl) RescheduleAppointment(ctx context.Context, shopID uuid.UUID, p RescheduleParams) (_ *AppointmentResult, err error) {
	ctx, span := tracer.Start(ctx, "scheduling.RescheduleAppointment")
	defer func() {
		uc.metrics.ObserveAppointmentWrite("reschedule", err)
		endSpan(span, err)
	}()
	span.SetAttributes(attribute.String("salon.appointment_id", p.ID.String()))

	if p.Start.IsZero() {
		return nil, shared.ValidationErrorf("start time is required")
	}
	if p.StaffID != nil && *p.StaffID == uuid.Nil {
		return nil, errs.Mark(appointment.ErrStaffRequired, shared.ErrValidation)
	}

	var result AppointmentResult
	var from appointment.TimeSlot
	err = runWithConcurrencyRetry(ctx, "reschedule appointment", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			appt, err := tx.Appointments().FindByIDForUpdate(ctx, tx.DB(), shopID, p.ID)
			if err != nil {
				return err
			}
			if !appt.IsActive() {
				return errs.Wrapf(appointment.ErrNotActive, "status=%s", appt.Status())
			}
			if patch.Changed(p.Version, appt.Version()) {
				return errs.Mark(errs.Newf("appointment %s version %d is stale, current %d", p.ID, *p.Version, appt.Version()), shared.ErrConcurrency)
			}

			staffID := appt.StaffID()
			if patch.Changed(p.StaffID, staffID) {
				if _, err := tx.Catalog().StaffByID(ctx, tx.DB(), shopID, *p.StaffID); err != nil {
					return err
				}
				staffID = *p.StaffID
			}
			from = appt.Slot()
			to := appt.Slot().Shift(p.Start)

			loc := uc.grid.Location()
			if err := lockDays(ctx, tx, shopID,
				dayLock{staffID: appt.StaffID(), date: dateKey(from.Start(), loc)},
				dayLock{staffID: staffID, date: dateKey(to.Start(), loc)},
			); err != nil {
				return err
			}

			id := appt.ID()
			overridden, err := uc.placeInTx(ctx, tx, shopID, staffID, to, &id, p.AllowOverlap)
			if err != nil {
				return err
			}

			prevVersion := appt.Version()
			if err := appt.Move(staffID, p.Start, overridden, uc.clock.Now()); err != nil {
				return err
			}
			if err := tx.Appointments().Update(ctx, tx.DB(), appt, prevVersion); err != nil {
				return err
			}
			event := eventOf(appt)
			event.Version = prevVersion + 1
			if err := enqueue(ctx, tx, shopID, shared.EventAppointmentRescheduled, event, uc.clock.Now()); err != nil {
				return err
			}

			result = AppointmentResult{ID: id, Version: prevVersion + 1, Overridden: overridden}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "appointment rescheduled",
		"shop_id", shopID, "appointment_id", p.ID,
		"from", from.Start(), "to", p.Start, "override", result.Overridden, "version", result.Version)
	return &result, nil
}

func (uc *schedulingUseCaseImpl) CancelAppointment(ctx context.Context, shopID, id uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "scheduling.CancelAppointment")
	defer func() {
		uc.metrics.ObserveAppointmentWrite("cancel", err)
		endSpan(span, err)
	}()
	span.SetAttributes(attribute.String("salon.appointment_id", id.String()))

	err = runWithConcurrencyRetry(ctx, "cancel appointment", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			appt, err := tx.Appointments().FindByIDForUpdate(ctx, tx.DB(), shopID, id)
			if err != nil {
				return err
			}
			prevVersion := appt.Version()
			if err := appt.Cancel(uc.clock.Now()); err != nil {
				return err
			}
			if err := tx.Appointments().Update(ctx, tx.DB(), appt, prevVersion); err != nil {
				return err
			}
			event := eventOf(appt)
			event.Version = prevVersion + 1
			return enqueue(ctx, tx, shopID, shared.EventAppointmentCancelled, event, uc.clock.Now())
		})
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "appointment cancelled", "shop_id", shopID, "appointment_id", id)
	return nil
}

func (uc *schedulingUseCaseImpl) MarkHoliday(ctx context.Context, shopID, staffID uuid.UUID, date time.Time, force bool) (err error) {
	ctx, span := tracer.Start(ctx, "scheduling.MarkHoliday")
	defer func() {
		uc.metrics.ObserveAppointmentWrite("mark_holiday", err)
		endSpan(span, err)
	}()

	if date.IsZero() {
		return shared.ValidationErrorf("date is required")
	}
	loc := uc.grid.Location()
	dayStart, dayEnd := clock.DayBounds(date, loc)
	key := dateKey(dayStart, loc)

	err = runWithConcurrencyRetry(ctx, "mark holiday", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			if _, err := tx.Catalog().StaffByID(ctx, tx.DB(), shopID, staffID); err != nil {
				return err
			}
			if err := lockDays(ctx, tx, shopID, dayLock{staffID: staffID, date: key}); err != nil {
				return err
			}
			booked, err := tx.Appointments().ListActiveForStaffDay(ctx, tx.DB(), shopID, staffID, dayStart, dayEnd)
			if err != nil {
				return err
			}
			if len(booked) > 0 && !force {
				id := booked[0].ID()
				return shared.NewConflictError(&id, false)
			}
			if err := tx.Holidays().Mark(ctx, tx.DB(), shopID, staffID, key); err != nil {
				return err
			}
			return enqueue(ctx, tx, shopID, shared.EventHolidayMarked, map[string]any{
				"staff_id":            staffID,
				"date":                key,
				"active_appointments": len(booked),
			}, uc.clock.Now())
		})
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "staff holiday marked", "shop_id", shopID, "staff_id", staffID, "date", key, "forced", force)
	return nil
}

func (uc *schedulingUseCaseImpl) ClearHoliday(ctx context.Context, shopID, staffID uuid.UUID, date time.Time) (err error) {
	ctx, span := tracer.Start(ctx, "scheduling.ClearHoliday")
	defer func() {
		uc.metrics.ObserveAppointmentWrite("clear_holiday", err)
		endSpan(span, err)
	}()

	if date.IsZero() {
		return shared.ValidationErrorf("date is required")
	}
	key := dateKey(clock.StartOfDay(date, uc.grid.Location()), uc.grid.Location())

	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := lockDays(ctx, tx, shopID, dayLock{staffID: staffID, date: key}); err != nil {
			return err
		}
		return tx.Holidays().Clear(ctx, tx.DB(), shopID, staffID, key)
	}))
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "staff holiday cleared", "shop_id", shopID, "staff_id", staffID, "date", key)
	return nil
}

// PostNote appends a note to the day's bulletin. Notes are never edited.
func (uc *schedulingUseCaseImpl) PostNote(ctx context.Context, shopID uuid.UUID, date time.Time, content string) (_ uuid.UUID, err error) {
	ctx, span := tracer.Start(ctx, "scheduling.PostNote")
	defer func() { endSpan(span, err) }()

	if date.IsZero() {
		return uuid.Nil, errs.Mark(bulletin.ErrDateRequired, shared.ErrValidation)
	}
	loc := uc.grid.Location()
	key := dateKey(clock.StartOfDay(date, loc), loc)
	note, err := bulletin.NewNote(shopID, key, content, uc.clock.Now())
	if err != nil {
		return uuid.Nil, shared.Classify(err)
	}

	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Bulletin().Post(ctx, tx.DB(), note)
	}))
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "bulletin note posted", "shop_id", shopID, "note_id", note.ID(), "date", key)
	return note.ID(), nil
}

// placeInTx reloads the staff day inside the transaction and decides the placement
// against fresh data. It returns whether a confirmed overlap override was used.
func (uc *schedulingUseCaseImpl) placeInTx(
	ctx context.Context,
	tx shared.Tx,
	shopID, staffID uuid.UUID,
	slot appointment.TimeSlot,
	exclude *uuid.UUID,
	allowOverlap bool,
) (bool, error) {
	loc := uc.grid.Location()
	dayStart, dayEnd := clock.DayBounds(slot.Start(), loc)
	if slot.End().After(dayEnd) {
		dayEnd = slot.End()
	}

	holiday, err := tx.Holidays().IsHoliday(ctx, tx.DB(), shopID, staffID, dateKey(dayStart, loc))
	if err != nil {
		return false, err
	}
	booked, err := tx.Appointments().ListActiveForStaffDay(ctx, tx.DB(), shopID, staffID, dayStart, dayEnd)
	if err != nil {
		return false, err
	}

	day := schedule.NewDay(staffID, dayStart, holiday, booked)
	decision, overridden := day.Place(slot, exclude, allowOverlap)
	if decision.OK() {
		return false, nil
	}
	uc.metrics.ObserveConflict(string(decision.Reason), overridden)
	if overridden {
		slog.InfoContext(ctx, "overlap override confirmed",
			"shop_id", shopID, "staff_id", staffID, "conflict_with", decision.ConflictWith)
		return true, nil
	}
	return false, shared.NewConflictError(decision.ConflictWith, decision.Reason == schedule.ReasonHoliday)
}

func eventOf(a *appointment.Appointment) appointmentEvent {
	return appointmentEvent{
		AppointmentID: a.ID(),
		StaffID:       a.StaffID(),
		Start:         a.Slot().Start(),
		End:           a.Slot().End(),
		Override:      a.Override(),
		Version:       a.Version(),
	}
}

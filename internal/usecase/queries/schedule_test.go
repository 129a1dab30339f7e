//go:build unit

package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"salon-scheduler/internal/domain/timegrid"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/usecase/queries"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"
	queriesmock "salon-scheduler/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const boardDate = "2025-03-14"

type scheduleFixture struct {
	store   *queriesmock.MockScheduleReadStore
	queries queries.ScheduleQueries
	shopID  uuid.UUID
	staffA  uuid.UUID
	staffB  uuid.UUID
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	grid, err := timegrid.NewGrid(9, 21, builder.SalonZone)
	require.NoError(t, err)

	store := queriesmock.NewMockScheduleReadStore(gomock.NewController(t))
	return &scheduleFixture{
		store: store,
		queries: queries.NewScheduleQueries(store, queries.ScheduleSettings{
			Grid:            grid,
			DropSnapMinutes: 30,
			MinFreeSlot:     30 * time.Minute,
		}),
		shopID: uuid.New(),
		staffA: uuid.New(),
		staffB: uuid.New(),
	}
}

func (f *scheduleFixture) view(staffID uuid.UUID, sh, sm, eh, em int) *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:           uuid.New(),
		ShopID:       f.shopID,
		StaffID:      staffID,
		CustomerName: "Hanako Yamada",
		ServiceID:    uuid.New(),
		MenuName:     "Cut",
		StartTime:    builder.At(sh, sm),
		EndTime:      builder.At(eh, em),
		Status:       "active",
		Version:      1,
		CreatedAt:    builder.At(8, 0),
		UpdatedAt:    builder.At(8, 0),
	}
}

func (f *scheduleFixture) expectDay(staffID uuid.UUID, holidays map[uuid.UUID]bool, views ...*queries.AppointmentView) {
	f.store.EXPECT().StaffHolidays(gomock.Any(), f.shopID, boardDate).Return(holidays, nil)
	f.store.EXPECT().ListAppointments(gomock.Any(), f.shopID, &staffID, gomock.Any(), gomock.Any()).Return(views, nil)
}

func TestCheckPlacement(t *testing.T) {
	t.Run("overlap is reported with the conflicting appointment", func(t *testing.T) {
		f := newScheduleFixture(t)
		existing := f.view(f.staffA, 10, 0, 11, 0)
		f.expectDay(f.staffA, nil, existing)

		got, err := f.queries.CheckPlacement(context.Background(), f.shopID, f.staffA, builder.At(10, 30), builder.At(11, 30), nil)
		require.NoError(t, err)
		assert.False(t, got.OK)
		assert.Equal(t, "overlap", got.Reason)
		assert.Equal(t, &existing.ID, got.ConflictWith)
		assert.True(t, got.Overridable)
	})

	t.Run("back-to-back slot is free", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.expectDay(f.staffA, nil, f.view(f.staffA, 10, 0, 11, 0))

		got, err := f.queries.CheckPlacement(context.Background(), f.shopID, f.staffA, builder.At(11, 0), builder.At(12, 0), nil)
		require.NoError(t, err)
		assert.True(t, got.OK)
		assert.Nil(t, got.ConflictWith)
	})

	t.Run("moving an appointment ignores itself", func(t *testing.T) {
		f := newScheduleFixture(t)
		existing := f.view(f.staffA, 10, 0, 11, 0)
		f.expectDay(f.staffA, nil, existing)

		got, err := f.queries.CheckPlacement(context.Background(), f.shopID, f.staffA, builder.At(10, 30), builder.At(11, 30), &existing.ID)
		require.NoError(t, err)
		assert.True(t, got.OK)
	})

	t.Run("holiday cannot be overridden", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.expectDay(f.staffA, map[uuid.UUID]bool{f.staffA: true})

		got, err := f.queries.CheckPlacement(context.Background(), f.shopID, f.staffA, builder.At(10, 0), builder.At(11, 0), nil)
		require.NoError(t, err)
		assert.False(t, got.OK)
		assert.Equal(t, "holiday", got.Reason)
		assert.False(t, got.Overridable)
	})

	t.Run("empty slot is a validation error", func(t *testing.T) {
		f := newScheduleFixture(t)

		_, err := f.queries.CheckPlacement(context.Background(), f.shopID, f.staffA, builder.At(10, 0), builder.At(10, 0), nil)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func TestFreeSlots(t *testing.T) {
	t.Run("gaps between appointments", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.expectDay(f.staffA, nil, f.view(f.staffA, 13, 0, 14, 30), f.view(f.staffA, 10, 0, 11, 0))

		got, err := f.queries.FreeSlots(context.Background(), f.shopID, f.staffA, boardDate)
		require.NoError(t, err)
		assert.Equal(t, []queries.FreeSlotView{
			{Start: builder.At(9, 0), End: builder.At(10, 0), DurationMinutes: 60},
			{Start: builder.At(11, 0), End: builder.At(13, 0), DurationMinutes: 120},
			{Start: builder.At(14, 30), End: builder.At(21, 0), DurationMinutes: 390},
		}, got)
	})

	t.Run("gaps shorter than the minimum are dropped", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.expectDay(f.staffA, nil, f.view(f.staffA, 9, 20, 20, 45))

		got, err := f.queries.FreeSlots(context.Background(), f.shopID, f.staffA, boardDate)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("holiday has no free slots", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.expectDay(f.staffA, map[uuid.UUID]bool{f.staffA: true})

		got, err := f.queries.FreeSlots(context.Background(), f.shopID, f.staffA, boardDate)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("malformed date", func(t *testing.T) {
		f := newScheduleFixture(t)

		_, err := f.queries.FreeSlots(context.Background(), f.shopID, f.staffA, "14/03/2025")
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func TestDayBoard(t *testing.T) {
	f := newScheduleFixture(t)
	morning := f.view(f.staffA, 9, 0, 12, 0)

	f.store.EXPECT().ListStaff(gomock.Any(), f.shopID).Return([]queries.StaffView{
		{ID: f.staffA, Name: "Aoi", Role: "stylist"},
		{ID: f.staffB, Name: "Ren", Role: "assistant"},
	}, nil)
	f.store.EXPECT().StaffHolidays(gomock.Any(), f.shopID, boardDate).Return(map[uuid.UUID]bool{f.staffB: true}, nil)
	f.store.EXPECT().ListAppointments(gomock.Any(), f.shopID, nil, gomock.Any(), gomock.Any()).
		Return([]*queries.AppointmentView{morning}, nil)
	note := queries.NoteView{ID: uuid.New(), Date: boardDate, Content: "towels arrive at noon"}
	f.store.EXPECT().ListNotes(gomock.Any(), f.shopID, boardDate).Return([]queries.NoteView{note}, nil)

	board, err := f.queries.DayBoard(context.Background(), f.shopID, boardDate)
	require.NoError(t, err)

	assert.Equal(t, boardDate, board.Date)
	assert.True(t, board.OpensAt.Equal(builder.At(9, 0)))
	assert.True(t, board.ClosesAt.Equal(builder.At(21, 0)))
	require.Len(t, board.Rows, 2)

	a := board.Rows[0]
	assert.Equal(t, "Aoi", a.Staff.Name)
	assert.False(t, a.Holiday)
	require.Len(t, a.Cards, 1)
	assert.Equal(t, morning.ID, a.Cards[0].ID)
	assert.InDelta(t, 0.0, a.Cards[0].Left, 1e-9)
	assert.InDelta(t, 25.0, a.Cards[0].Width, 1e-9)
	assert.Equal(t, []queries.FreeSlotView{
		{Start: builder.At(12, 0), End: builder.At(21, 0), DurationMinutes: 540},
	}, a.FreeSlots)

	b := board.Rows[1]
	assert.True(t, b.Holiday)
	assert.Empty(t, b.Cards)
	assert.Empty(t, b.FreeSlots)

	assert.Equal(t, []queries.NoteView{note}, board.Notes)
}

func TestBulletin(t *testing.T) {
	t.Run("empty day renders as an empty list", func(t *testing.T) {
		f := newScheduleFixture(t)
		f.store.EXPECT().ListNotes(gomock.Any(), f.shopID, boardDate).Return(nil, nil)

		notes, err := f.queries.Bulletin(context.Background(), f.shopID, boardDate)
		require.NoError(t, err)
		assert.NotNil(t, notes)
		assert.Empty(t, notes)
	})

	t.Run("malformed date never reaches the store", func(t *testing.T) {
		f := newScheduleFixture(t)
		_, err := f.queries.Bulletin(context.Background(), f.shopID, "14/03/2025")
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func TestResolveDrop(t *testing.T) {
	testCases := []struct {
		name     string
		fraction float64
		want     time.Time
	}{
		{name: "midpoint", fraction: 0.5, want: builder.At(15, 0)},
		{name: "rounds down to the nearest half hour", fraction: 0.52, want: builder.At(15, 0)},
		{name: "rounds up to the nearest half hour", fraction: 0.53, want: builder.At(15, 30)},
		{name: "left of the timeline clamps to open", fraction: -0.2, want: builder.At(9, 0)},
		{name: "right of the timeline clamps to close", fraction: 1.5, want: builder.At(21, 0)},
	}

	f := newScheduleFixture(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.queries.ResolveDrop(context.Background(), f.shopID, tc.fraction, boardDate)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got.Start), "want %s, got %s", tc.want, got.Start)
		})
	}

	t.Run("non-finite fraction", func(t *testing.T) {
		_, err := f.queries.ResolveDrop(context.Background(), f.shopID, math.NaN(), boardDate)
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func TestListAppointments(t *testing.T) {
	t.Run("passes the staff filter through", func(t *testing.T) {
		f := newScheduleFixture(t)
		want := []*queries.AppointmentView{f.view(f.staffA, 10, 0, 11, 0)}
		from, to := builder.At(0, 0), builder.At(0, 0).AddDate(0, 0, 7)
		f.store.EXPECT().ListAppointments(gomock.Any(), f.shopID, &f.staffA, from, to).Return(want, nil)

		got, err := f.queries.ListAppointments(context.Background(), f.shopID, &f.staffA, from, to)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("inverted range", func(t *testing.T) {
		f := newScheduleFixture(t)
		_, err := f.queries.ListAppointments(context.Background(), f.shopID, nil, builder.At(12, 0), builder.At(9, 0))
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})

	t.Run("range too wide", func(t *testing.T) {
		f := newScheduleFixture(t)
		from := builder.At(0, 0)
		_, err := f.queries.ListAppointments(context.Background(), f.shopID, nil, from, from.Add(queries.MaxListRange+time.Hour))
		assert.True(t, errs.Is(err, shared.ErrValidation))
	})
}

func TestGetAppointment_NotFound(t *testing.T) {
	f := newScheduleFixture(t)
	id := uuid.New()
	f.store.EXPECT().FindAppointment(gomock.Any(), f.shopID, id).
		Return(nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound))

	_, err := f.queries.GetAppointment(context.Background(), f.shopID, id)
	assert.True(t, errs.Is(err, shared.ErrNotFound))
}

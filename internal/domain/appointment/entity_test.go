//go:build unit

package appointment_test

import (
	"strings"
	"testing"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.AppointmentBuilder)
	errIs  error
}

func TestAppointment_New(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewAppointmentBuilder().BuildNew()
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, appointment.StatusActive, actual.Status())
		assert.Equal(t, time.Hour, actual.Slot().Duration())
		assert.Equal(t, 1, actual.Version())
		assert.False(t, actual.Override())
		assert.Equal(t, actual.CreatedAt(), actual.UpdatedAt())
	})

	runCases(t, []testCase{
		{name: "missing shop", mutate: func(b *builder.AppointmentBuilder) { b.ShopID = uuid.Nil }, errIs: appointment.ErrShopRequired},
		{name: "missing staff", mutate: func(b *builder.AppointmentBuilder) { b.StaffID = uuid.Nil }, errIs: appointment.ErrStaffRequired},
		{name: "missing service", mutate: func(b *builder.AppointmentBuilder) { b.ServiceID = uuid.Nil }, errIs: appointment.ErrServiceRequired},
		{name: "blank customer without id", mutate: func(b *builder.AppointmentBuilder) { b.CustomerName = "   " }, errIs: appointment.ErrCustomerRequired},
		{
			name: "existing customer without name",
			mutate: func(b *builder.AppointmentBuilder) {
				id := uuid.New()
				b.CustomerID = &id
				b.CustomerName = ""
			},
		},
		{name: "customer name too long", mutate: func(b *builder.AppointmentBuilder) { b.CustomerName = strings.Repeat("あ", 101) }, errIs: appointment.ErrCustomerNameLong},
		{name: "end before start", mutate: func(b *builder.AppointmentBuilder) { b.End = b.Start.Add(-time.Minute) }, errIs: appointment.ErrInvalidTimeSlot},
		{name: "zero length", mutate: func(b *builder.AppointmentBuilder) { b.End = b.Start }, errIs: appointment.ErrInvalidTimeSlot},
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewAppointmentBuilder().With(tc.mutate).BuildNew()
			if tc.errIs != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.errIs), "expected %v, got %v", tc.errIs, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestTimeSlot_Overlaps(t *testing.T) {
	slot := func(sh, sm, eh, em int) appointment.TimeSlot {
		s, err := appointment.NewTimeSlot(builder.At(sh, sm), builder.At(eh, em))
		require.NoError(t, err)
		return s
	}
	existing := slot(10, 0, 11, 0)

	testCases := []struct {
		name      string
		candidate appointment.TimeSlot
		expected  bool
	}{
		{name: "partial overlap at tail", candidate: slot(10, 30, 11, 30), expected: true},
		{name: "partial overlap at head", candidate: slot(9, 30, 10, 30), expected: true},
		{name: "contained", candidate: slot(10, 15, 10, 45), expected: true},
		{name: "containing", candidate: slot(9, 0, 12, 0), expected: true},
		{name: "identical", candidate: slot(10, 0, 11, 0), expected: true},
		{name: "back to back after", candidate: slot(11, 0, 12, 0), expected: false},
		{name: "back to back before", candidate: slot(9, 0, 10, 0), expected: false},
		{name: "disjoint", candidate: slot(13, 0, 14, 0), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, existing.Overlaps(tc.candidate))
			assert.Equal(t, tc.expected, tc.candidate.Overlaps(existing))
		})
	}
}

func TestSlotFor(t *testing.T) {
	s, err := appointment.SlotFor(builder.At(10, 0), 90*time.Minute)
	require.NoError(t, err)
	assert.True(t, builder.At(11, 30).Equal(s.End()))

	_, err = appointment.SlotFor(builder.At(10, 0), 0)
	assert.True(t, errs.Is(err, appointment.ErrInvalidDuration))
}

func TestAppointment_Move(t *testing.T) {
	t.Run("preserves duration", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().WithSlot(builder.At(10, 0), builder.At(11, 30)).BuildDomain()
		newStaff := uuid.New()

		require.NoError(t, a.Move(newStaff, builder.At(14, 15), false, builder.At(9, 0)))

		assert.Equal(t, newStaff, a.StaffID())
		assert.True(t, builder.At(14, 15).Equal(a.Slot().Start()))
		assert.True(t, builder.At(15, 45).Equal(a.Slot().End()))
		assert.Equal(t, 90*time.Minute, a.Slot().Duration())
	})

	t.Run("records override", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().BuildDomain()
		require.NoError(t, a.Move(a.StaffID(), builder.At(12, 0), true, builder.At(9, 0)))
		assert.True(t, a.Override())
	})

	t.Run("terminal appointment cannot move", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().WithStatus(appointment.StatusCompleted).BuildDomain()
		err := a.Move(a.StaffID(), builder.At(12, 0), false, builder.At(9, 0))
		assert.True(t, errs.Is(err, appointment.ErrNotActive))
	})

	t.Run("staff is required", func(t *testing.T) {
		a := builder.NewAppointmentBuilder().BuildDomain()
		err := a.Move(uuid.Nil, builder.At(12, 0), false, builder.At(9, 0))
		assert.True(t, errs.Is(err, appointment.ErrStaffRequired))
	})
}

func TestAppointment_Transitions(t *testing.T) {
	testCases := []struct {
		name     string
		from     appointment.Status
		act      func(*appointment.Appointment) error
		expected appointment.Status
		errIs    error
	}{
		{name: "active to completed", from: appointment.StatusActive, act: func(a *appointment.Appointment) error { return a.Complete(builder.At(12, 0)) }, expected: appointment.StatusCompleted},
		{name: "active to cancelled", from: appointment.StatusActive, act: func(a *appointment.Appointment) error { return a.Cancel(builder.At(12, 0)) }, expected: appointment.StatusCancelled},
		{name: "completed twice", from: appointment.StatusCompleted, act: func(a *appointment.Appointment) error { return a.Complete(builder.At(12, 0)) }, expected: appointment.StatusCompleted, errIs: appointment.ErrNotActive},
		{name: "cancel completed", from: appointment.StatusCompleted, act: func(a *appointment.Appointment) error { return a.Cancel(builder.At(12, 0)) }, expected: appointment.StatusCompleted, errIs: appointment.ErrNotActive},
		{name: "complete cancelled", from: appointment.StatusCancelled, act: func(a *appointment.Appointment) error { return a.Complete(builder.At(12, 0)) }, expected: appointment.StatusCancelled, errIs: appointment.ErrNotActive},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a := builder.NewAppointmentBuilder().WithStatus(tc.from).BuildDomain()
			err := tc.act(a)
			if tc.errIs != nil {
				assert.True(t, errs.Is(err, tc.errIs))
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.expected, a.Status())
		})
	}
}

func TestParseStatus(t *testing.T) {
	s, err := appointment.ParseStatus("completed")
	require.NoError(t, err)
	assert.True(t, s.IsTerminal())

	_, err = appointment.ParseStatus("deleted")
	assert.True(t, errs.Is(err, appointment.ErrInvalidStatus))
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/ptr"
	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/shared"
	"salon-scheduler/tests/common/builder"
	"salon-scheduler/tests/common/memuow"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	*fixture
	appt    *appointment.Appointment
	shampoo *catalog.Product
}

func newCheckoutFixture(t *testing.T, stock int) *checkoutFixture {
	t.Helper()
	f := newFixture(t)
	shampoo, err := catalog.NewProduct(uuid.New(), f.shopID, "Shampoo", 3300, tax.MustParseRate("0.10"), stock, "hair care")
	require.NoError(t, err)
	f.uow.AddProduct(shampoo)

	return &checkoutFixture{
		fixture: f,
		appt:    f.book(t, f.staffA, 10, 0, 11, 0),
		shampoo: shampoo,
	}
}

func (f *checkoutFixture) checkout() commands.CheckoutCommands {
	return commands.NewCheckoutUseCase(f.uow, f.reads, f.clock, nil)
}

func (f *checkoutFixture) params() commands.CheckoutParams {
	return commands.CheckoutParams{
		AppointmentID: f.appt.ID(),
		Lines: []commands.CheckoutLine{
			{Type: catalog.ItemService, ItemID: f.cut.ID(), Quantity: 1},
			{Type: catalog.ItemProduct, ItemID: f.shampoo.ID(), Quantity: 2},
		},
		PaymentMethod: "cash",
		Memo:          "prefers short layers",
	}
}

// assertUntouched checks that a failed checkout left no trace.
func (f *checkoutFixture) assertUntouched(t *testing.T, stock int) {
	t.Helper()
	assert.Empty(t, f.uow.Sales())
	assert.Equal(t, stock, f.uow.Product(f.shampoo.ID()).Stock())
	stored, _ := f.uow.Appointment(f.appt.ID())
	assert.Equal(t, appointment.StatusActive, stored.Status())
	assert.Empty(t, f.uow.Events())
}

func TestCheckout_Success(t *testing.T) {
	f := newCheckoutFixture(t, 5)

	receipt, err := f.checkout().Checkout(f.ctx, f.shopID, f.params())
	require.NoError(t, err)

	assert.Equal(t, int64(12100), receipt.Total)
	assert.Equal(t, int64(11000), receipt.Net)
	assert.Equal(t, int64(1100), receipt.Tax)
	assert.Equal(t, sale.PaymentCash, receipt.PaymentMethod)
	assert.Equal(t, map[uuid.UUID]int{f.shampoo.ID(): 3}, receipt.StockAfter)
	require.Len(t, receipt.Lines, 2)
	assert.Equal(t, int64(6600), receipt.Lines[1].LineTotal)

	assert.Equal(t, 3, f.uow.Product(f.shampoo.ID()).Stock())
	stored, _ := f.uow.Appointment(f.appt.ID())
	assert.Equal(t, appointment.StatusCompleted, stored.Status())

	sales := f.uow.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, receipt.SaleID, sales[0].ID())
	assert.Equal(t, "Cut", sales[0].MenuName())
	assert.Equal(t, "prefers short layers", sales[0].Memo())
	assert.Len(t, f.uow.LineItems(receipt.SaleID), 2)

	require.Len(t, f.uow.Events(), 1)
	assert.Equal(t, shared.EventSaleCompleted, f.uow.Events()[0].Kind)
	assert.Equal(t, []uuid.UUID{f.shampoo.ID()}, f.reads.Invalidated)
}

func TestCheckout_StockFloorsAtZero(t *testing.T) {
	f := newCheckoutFixture(t, 1)

	receipt, err := f.checkout().Checkout(f.ctx, f.shopID, f.params())
	require.NoError(t, err)
	assert.Equal(t, 0, receipt.StockAfter[f.shampoo.ID()])
	assert.Equal(t, 0, f.uow.Product(f.shampoo.ID()).Stock())
	assert.Equal(t, int64(12100), receipt.Total, "truncation never changes the charged amount")
}

func TestCheckout_UnitPriceOverride(t *testing.T) {
	f := newCheckoutFixture(t, 5)
	p := f.params()
	p.Lines = p.Lines[:1]
	p.Lines[0].UnitPrice = ptr.Of(int64(4400))

	receipt, err := f.checkout().Checkout(f.ctx, f.shopID, p)
	require.NoError(t, err)
	assert.Equal(t, int64(4400), receipt.Total)
	assert.Equal(t, int64(400), receipt.Tax)
	assert.Empty(t, receipt.StockAfter)
}

func TestCheckout_ValidationBeforeAnyWrite(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(p *commands.CheckoutParams)
	}{
		{name: "empty cart", mutate: func(p *commands.CheckoutParams) { p.Lines = nil }},
		{name: "zero quantity", mutate: func(p *commands.CheckoutParams) { p.Lines[1].Quantity = 0 }},
		{name: "unknown item type", mutate: func(p *commands.CheckoutParams) { p.Lines[0].Type = "gift" }},
		{name: "unknown payment method", mutate: func(p *commands.CheckoutParams) { p.PaymentMethod = "voucher" }},
		{name: "negative unit price", mutate: func(p *commands.CheckoutParams) { p.Lines[0].UnitPrice = ptr.Of(int64(-1)) }},
		{name: "quantity above limit", mutate: func(p *commands.CheckoutParams) { p.Lines[1].Quantity = sale.MaxQuantity + 1 }},
		{name: "unit price above limit", mutate: func(p *commands.CheckoutParams) { p.Lines[1].UnitPrice = ptr.Of(sale.MaxUnitPrice + 1) }},
		{name: "unit price that would wrap the total", mutate: func(p *commands.CheckoutParams) {
			p.Lines[1].UnitPrice = ptr.Of(int64(1 << 62))
			p.Lines[1].Quantity = 4
		}},
		{name: "missing appointment", mutate: func(p *commands.CheckoutParams) { p.AppointmentID = uuid.Nil }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t, 5)
			p := f.params()
			tc.mutate(&p)

			_, err := f.checkout().Checkout(f.ctx, f.shopID, p)
			assert.True(t, errs.Is(err, shared.ErrValidation), "got %v", err)
			assert.Zero(t, f.uow.Commits+f.uow.Rollbacks, "no transaction may be opened")
			f.assertUntouched(t, 5)
		})
	}
}

func TestCheckout_AlreadyCompleted(t *testing.T) {
	f := newCheckoutFixture(t, 5)
	_, err := f.checkout().Checkout(f.ctx, f.shopID, f.params())
	require.NoError(t, err)

	_, err = f.checkout().Checkout(f.ctx, f.shopID, f.params())
	assert.True(t, errs.Is(err, shared.ErrAlreadyCompleted))
	assert.Len(t, f.uow.Sales(), 1)
	assert.Equal(t, 3, f.uow.Product(f.shampoo.ID()).Stock(), "second attempt must not decrement again")
}

func TestCheckout_NotFound(t *testing.T) {
	t.Run("appointment", func(t *testing.T) {
		f := newCheckoutFixture(t, 5)
		p := f.params()
		p.AppointmentID = uuid.New()
		_, err := f.checkout().Checkout(f.ctx, f.shopID, p)
		assert.True(t, errs.Is(err, shared.ErrNotFound))
	})

	t.Run("product", func(t *testing.T) {
		f := newCheckoutFixture(t, 5)
		p := f.params()
		p.Lines[1].ItemID = uuid.New()
		_, err := f.checkout().Checkout(f.ctx, f.shopID, p)
		assert.True(t, errs.Is(err, shared.ErrNotFound))
		f.assertUntouched(t, 5)
	})
}

func TestCheckout_RollsBackOnStepFailure(t *testing.T) {
	steps := map[string]string{
		"sale insertion": memuow.OpSaleInsert,
		"line items":     memuow.OpSaleLines,
		"stock":          memuow.OpDecrementStock,
		"complete":       memuow.OpAppointmentUpdate,
		"outbox":         memuow.OpOutbox,
	}

	for name, op := range steps {
		t.Run(name, func(t *testing.T) {
			f := newCheckoutFixture(t, 5)
			boom := infra.WrapRepoErr("connection reset", errors.New("boom"), infra.KindDBFailure)
			f.uow.FailOn[op] = []error{boom}

			_, err := f.checkout().Checkout(f.ctx, f.shopID, f.params())
			require.Error(t, err)
			assert.False(t, errs.Is(err, shared.ErrPartialCommit))
			assert.True(t, infra.IsKind(err, infra.KindDBFailure))
			f.assertUntouched(t, 5)
		})
	}
}

func TestCheckout_UnknownCommitOutcome(t *testing.T) {
	f := newCheckoutFixture(t, 5)
	f.uow.CommitErr = errors.New("connection lost during commit")

	_, err := f.checkout().Checkout(f.ctx, f.shopID, f.params())
	require.Error(t, err)
	assert.True(t, errs.Is(err, shared.ErrPartialCommit))

	var partial *shared.PartialCommitError
	require.True(t, errs.As(err, &partial))
	assert.NotEqual(t, uuid.Nil, partial.SaleID)
	assert.Equal(t, []string{
		commands.StepValidate,
		commands.StepLockAppointment,
		commands.StepResolveLines,
		commands.StepComputeTotals,
		commands.StepInsertSale,
		commands.StepInsertLineItems,
		commands.StepDecrementStock,
		commands.StepCompleteAppointment,
		commands.StepEnqueueEvent,
		commands.StepCommit,
	}, partial.Steps)
}

func TestCheckout_Cancelled(t *testing.T) {
	f := newCheckoutFixture(t, 5)
	ctx, cancel := context.WithCancel(f.ctx)
	cancel()
	_, err := f.checkout().Checkout(ctx, f.shopID, f.params())
	require.Error(t, err)
	assert.True(t, errs.Is(err, context.Canceled))
	f.assertUntouched(t, 5)
}

func TestCheckout_UsesAppointmentSnapshot(t *testing.T) {
	f := newCheckoutFixture(t, 5)
	customerID := uuid.New()
	a := builder.NewAppointmentBuilder().
		WithShop(f.shopID).
		WithStaff(f.staffB).
		WithSlot(builder.At(15, 0), builder.At(16, 0)).
		With(func(b *builder.AppointmentBuilder) {
			b.CustomerID = &customerID
			b.CustomerName = "Taro Sato"
		}).
		BuildDomain()
	f.uow.AddAppointment(a)

	p := f.params()
	p.AppointmentID = a.ID()
	receipt, err := f.checkout().Checkout(f.ctx, f.shopID, p)
	require.NoError(t, err)

	sales := f.uow.Sales()
	require.Len(t, sales, 1)
	assert.Equal(t, receipt.SaleID, sales[0].ID())
	assert.Equal(t, f.staffB, sales[0].StaffID())
	assert.Equal(t, "Taro Sato", sales[0].CustomerName())
	assert.Equal(t, &customerID, sales[0].CustomerID())
}

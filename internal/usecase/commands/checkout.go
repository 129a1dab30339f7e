package commands

import (
	"context"
	"log/slog"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/errs"
	"salon-scheduler/internal/pkg/metrics"
	"salon-scheduler/internal/pkg/patch"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// Checkout step names, reported in logs and partial commit errors.
const (
	StepValidate            = "validate"
	StepLockAppointment     = "lock_appointment"
	StepResolveLines        = "resolve_lines"
	StepComputeTotals       = "compute_totals"
	StepInsertSale          = "insert_sale"
	StepInsertLineItems     = "insert_line_items"
	StepDecrementStock      = "decrement_stock"
	StepCompleteAppointment = "complete_appointment"
	StepEnqueueEvent        = "enqueue_event"
	StepCommit              = "commit"
)

type CheckoutLine struct {
	Type   catalog.ItemType
	ItemID uuid.UUID
	// UnitPrice overrides the catalog price when set.
	UnitPrice *int64
	Quantity  int
}

type CheckoutParams struct {
	AppointmentID uuid.UUID
	Lines         []CheckoutLine
	PaymentMethod string
	Memo          string
}

type ReceiptLine struct {
	ItemType  catalog.ItemType
	ItemID    uuid.UUID
	Name      string
	UnitPrice int64
	Quantity  int
	TaxRate   string
	LineTotal int64
}

type SaleReceipt struct {
	SaleID        uuid.UUID
	AppointmentID uuid.UUID
	Total         int64
	Net           int64
	Tax           int64
	PaymentMethod sale.PaymentMethod
	Lines         []ReceiptLine
	StockAfter    map[uuid.UUID]int
}

type CheckoutCommands interface {
	Checkout(ctx context.Context, shopID uuid.UUID, p CheckoutParams) (*SaleReceipt, error)
}

type checkoutUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog shared.CatalogReads
	clock   clock.Clock
	metrics *metrics.SchedulingMetrics
}

func NewCheckoutUseCase(uow shared.UnitOfWork, catalog shared.CatalogReads, clk clock.Clock, m *metrics.SchedulingMetrics) CheckoutCommands {
	return &checkoutUseCaseImpl{uow: uow, catalog: catalog, clock: clk, metrics: m}
}

type saleCompletedEvent struct {
	SaleID        uuid.UUID `json:"sale_id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	StaffID       uuid.UUID `json:"staff_id"`
	Total         int64     `json:"total"`
	Tax           int64     `json:"tax"`
	PaymentMethod string    `json:"payment_method"`
}

func (uc *checkoutUseCaseImpl) Checkout(ctx context.Context, shopID uuid.UUID, p CheckoutParams) (_ *SaleReceipt, err error) {
	ctx, span := tracer.Start(ctx, "checkout.Checkout")
	began := time.Now()
	var receipt *SaleReceipt
	methodLabel := "invalid"
	defer func() {
		var total int64
		if receipt != nil {
			total = receipt.Total
		}
		uc.metrics.ObserveCheckout(methodLabel, total, time.Since(began).Seconds(), err)
		endSpan(span, err)
	}()
	span.SetAttributes(
		attribute.String("salon.shop_id", shopID.String()),
		attribute.String("salon.appointment_id", p.AppointmentID.String()),
		attribute.Int("salon.checkout.lines", len(p.Lines)),
	)

	method, err := validateCheckout(p)
	if err != nil {
		return nil, shared.Classify(err)
	}
	methodLabel = string(method)

	var (
		steps  []string
		saleID uuid.UUID
	)
	err = runWithConcurrencyRetry(ctx, "checkout", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			steps = []string{StepValidate}
			saleID = uuid.Nil
			run := func(name string, fn func() error) error {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return errs.Wrapf(ctxErr, "checkout interrupted before %s", name)
				}
				if err := fn(); err != nil {
					return errs.Wrap(err, name)
				}
				steps = append(steps, name)
				return nil
			}

			r, err := uc.checkoutInTx(ctx, tx, shopID, p, method, run, &saleID)
			if err != nil {
				return err
			}
			receipt = r
			return nil
		})
	})

	if err != nil {
		receipt = nil
		if errs.Is(err, shared.ErrTxCommit) {
			slog.ErrorContext(ctx, "checkout commit outcome unknown, reconcile manually",
				"shop_id", shopID,
				"appointment_id", p.AppointmentID,
				"sale_id", saleID,
				"steps", steps,
				"error", err.Error())
			return nil, shared.NewPartialCommitError(saleID, append(steps, StepCommit), err)
		}
		slog.WarnContext(ctx, "checkout rolled back",
			"shop_id", shopID,
			"appointment_id", p.AppointmentID,
			"steps", steps,
			"error", err.Error())
		return nil, err
	}

	for productID := range receipt.StockAfter {
		if invErr := uc.catalog.InvalidateProduct(ctx, shopID, productID); invErr != nil {
			slog.WarnContext(ctx, "failed to invalidate product cache", "product_id", productID, "error", invErr.Error())
		}
	}

	slog.InfoContext(ctx, "checkout completed",
		"shop_id", shopID,
		"appointment_id", p.AppointmentID,
		"sale_id", receipt.SaleID,
		"total", receipt.Total,
		"tax", receipt.Tax,
		"payment_method", receipt.PaymentMethod)
	return receipt, nil
}

func (uc *checkoutUseCaseImpl) checkoutInTx(
	ctx context.Context,
	tx shared.Tx,
	shopID uuid.UUID,
	p CheckoutParams,
	method sale.PaymentMethod,
	run func(name string, fn func() error) error,
	saleID *uuid.UUID,
) (*SaleReceipt, error) {
	now := uc.clock.Now()

	var appt *appointment.Appointment
	if err := run(StepLockAppointment, func() error {
		found, ferr := tx.Appointments().FindByIDForUpdate(ctx, tx.DB(), shopID, p.AppointmentID)
		appt = found
		return ferr
	}); err != nil {
		return nil, err
	}
	if !appt.IsActive() {
		return nil, errs.Mark(errs.Newf("appointment %s is %s", p.AppointmentID, appt.Status()), shared.ErrAlreadyCompleted)
	}

	var cart sale.Cart
	if err := run(StepResolveLines, func() error {
		resolved, rerr := uc.resolveLines(ctx, tx, shopID, p.Lines)
		cart = resolved
		return rerr
	}); err != nil {
		return nil, err
	}

	var s *sale.Sale
	if err := run(StepComputeTotals, func() error {
		built, berr := sale.New(sale.NewParams{
			ShopID:        shopID,
			AppointmentID: appt.ID(),
			CustomerID:    appt.CustomerID(),
			CustomerName:  appt.CustomerName(),
			StaffID:       appt.StaffID(),
			PaymentMethod: method,
			Memo:          p.Memo,
		}, cart, now)
		s = built
		return berr
	}); err != nil {
		return nil, err
	}
	*saleID = s.ID()

	if err := run(StepInsertSale, func() error {
		if ierr := tx.Sales().Insert(ctx, tx.DB(), s); ierr != nil {
			if infra.IsKind(ierr, infra.KindDuplicateKey) {
				return errs.Mark(ierr, shared.ErrAlreadyCompleted)
			}
			return ierr
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := run(StepInsertLineItems, func() error {
		return tx.Sales().InsertLineItems(ctx, tx.DB(), s.ID(), s.Lines())
	}); err != nil {
		return nil, err
	}

	stockAfter := make(map[uuid.UUID]int)
	if err := run(StepDecrementStock, func() error {
		for _, line := range cart.ProductLines() {
			change, derr := tx.Catalog().DecrementStock(ctx, tx.DB(), shopID, line.ItemID, line.Quantity)
			if derr != nil {
				return derr
			}
			if change.Truncated() {
				uc.metrics.ObserveStockTruncation()
				slog.WarnContext(ctx, "stock floored at zero",
					"product_id", line.ItemID,
					"product", line.Name,
					"requested", change.Requested,
					"before", change.Before,
					"after", change.After)
			}
			stockAfter[line.ItemID] = change.After
		}
		return nil
	}); err != nil {
		return nil, err
	}

	if err := run(StepCompleteAppointment, func() error {
		prevVersion := appt.Version()
		if cerr := appt.Complete(now); cerr != nil {
			return cerr
		}
		return tx.Appointments().Update(ctx, tx.DB(), appt, prevVersion)
	}); err != nil {
		return nil, err
	}

	amounts := s.Amounts()
	if err := run(StepEnqueueEvent, func() error {
		return enqueue(ctx, tx, shopID, shared.EventSaleCompleted, saleCompletedEvent{
			SaleID:        s.ID(),
			AppointmentID: s.AppointmentID(),
			StaffID:       s.StaffID(),
			Total:         amounts.Total,
			Tax:           amounts.Tax,
			PaymentMethod: string(s.PaymentMethod()),
		}, now)
	}); err != nil {
		return nil, err
	}

	lines := make([]ReceiptLine, len(s.Lines()))
	for i, l := range s.Lines() {
		lines[i] = ReceiptLine{
			ItemType:  l.ItemType,
			ItemID:    l.ItemID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			TaxRate:   l.TaxRate.String(),
			LineTotal: l.LineTotal,
		}
	}
	return &SaleReceipt{
		SaleID:        s.ID(),
		AppointmentID: s.AppointmentID(),
		Total:         amounts.Total,
		Net:           amounts.Net,
		Tax:           amounts.Tax,
		PaymentMethod: s.PaymentMethod(),
		Lines:         lines,
		StockAfter:    stockAfter,
	}, nil
}

func (uc *checkoutUseCaseImpl) resolveLines(ctx context.Context, tx shared.Tx, shopID uuid.UUID, in []CheckoutLine) (sale.Cart, error) {
	cart := make(sale.Cart, 0, len(in))
	for _, l := range in {
		line := sale.CartLine{ItemType: l.Type, ItemID: l.ItemID, Quantity: l.Quantity}
		switch l.Type {
		case catalog.ItemService:
			svc, err := tx.Catalog().ServiceByID(ctx, tx.DB(), shopID, l.ItemID)
			if err != nil {
				return nil, err
			}
			line.Name, line.UnitPrice, line.TaxRate = svc.Name(), svc.Price(), svc.TaxRate()
		case catalog.ItemProduct:
			prod, err := tx.Catalog().ProductByID(ctx, tx.DB(), shopID, l.ItemID)
			if err != nil {
				return nil, err
			}
			line.Name, line.UnitPrice, line.TaxRate = prod.Name(), prod.Price(), prod.TaxRate()
		default:
			return nil, errs.Wrapf(catalog.ErrInvalidItemType, "type=%q", l.Type)
		}
		line.UnitPrice = patch.Coalesce(l.UnitPrice, line.UnitPrice)
		cart = append(cart, line)
	}
	return cart, nil
}

func validateCheckout(p CheckoutParams) (sale.PaymentMethod, error) {
	if p.AppointmentID == uuid.Nil {
		return "", sale.ErrAppointmentRequired
	}
	if len(p.Lines) == 0 {
		return "", sale.ErrEmptyCart
	}
	for i, l := range p.Lines {
		if _, err := catalog.ParseItemType(string(l.Type)); err != nil {
			return "", errs.Wrapf(err, "line %d", i+1)
		}
		if l.ItemID == uuid.Nil {
			return "", errs.Wrapf(sale.ErrInvalidLine, "line %d: item id is required", i+1)
		}
		if l.Quantity <= 0 || l.Quantity > sale.MaxQuantity {
			return "", errs.Wrapf(sale.ErrInvalidLine, "line %d: quantity %d", i+1, l.Quantity)
		}
		if l.UnitPrice != nil && (*l.UnitPrice < 0 || *l.UnitPrice > sale.MaxUnitPrice) {
			return "", errs.Wrapf(sale.ErrInvalidLine, "line %d: unit price %d", i+1, *l.UnitPrice)
		}
	}
	if len([]rune(p.Memo)) > sale.MaxMemoRunes {
		return "", sale.ErrMemoTooLong
	}
	return sale.ParsePaymentMethod(p.PaymentMethod)
}

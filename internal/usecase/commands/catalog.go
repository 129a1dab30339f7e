package commands

import (
	"context"
	"log/slog"
	"strings"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/pkg/clock"
	"salon-scheduler/internal/pkg/metrics"
	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultTaxRate applies to new catalog items created without an explicit rate.
const DefaultTaxRate = "0.10"

// maxStockDelta keeps a single manual adjustment inside the stock column range.
const maxStockDelta = catalog.MaxStock

var maxTaxRate = decimal.NewFromInt(1)

type CreateStaffParams struct {
	Name string
	Role string
}

type CreateServiceParams struct {
	Name            string
	Price           int64
	DurationMinutes int
	TaxRate         string
}

type CreateProductParams struct {
	Name     string
	Price    int64
	TaxRate  string
	Stock    int
	Category string
}

type StockAdjustment struct {
	ProductID uuid.UUID
	Before    int
	After     int
	// Truncated is set when a decrement hit the zero floor.
	Truncated bool
}

type CatalogCommands interface {
	CreateStaff(ctx context.Context, shopID uuid.UUID, p CreateStaffParams) (uuid.UUID, error)
	RenameStaff(ctx context.Context, shopID, staffID uuid.UUID, name string) error
	CreateService(ctx context.Context, shopID uuid.UUID, p CreateServiceParams) (uuid.UUID, error)
	CreateProduct(ctx context.Context, shopID uuid.UUID, p CreateProductParams) (uuid.UUID, error)
	// AdjustStock applies a signed manual correction. Decrements floor at zero.
	AdjustStock(ctx context.Context, shopID, productID uuid.UUID, delta int) (*StockAdjustment, error)
}

type catalogUseCaseImpl struct {
	uow     shared.UnitOfWork
	catalog shared.CatalogReads
	clock   clock.Clock
	metrics *metrics.SchedulingMetrics
}

func NewCatalogUseCase(uow shared.UnitOfWork, catalog shared.CatalogReads, clk clock.Clock, m *metrics.SchedulingMetrics) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, catalog: catalog, clock: clk, metrics: m}
}

type stockAdjustedEvent struct {
	ProductID uuid.UUID `json:"product_id"`
	Delta     int       `json:"delta"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
}

func (uc *catalogUseCaseImpl) CreateStaff(ctx context.Context, shopID uuid.UUID, p CreateStaffParams) (_ uuid.UUID, err error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateStaff")
	defer func() {
		uc.metrics.ObserveCatalogWrite("create_staff", err)
		endSpan(span, err)
	}()

	staff, err := catalog.NewStaff(uuid.New(), shopID, p.Name, p.Role)
	if err != nil {
		return uuid.Nil, shared.Classify(err)
	}
	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().CreateStaff(ctx, tx.DB(), staff)
	}))
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "staff created", "shop_id", shopID, "staff_id", staff.ID, "role", staff.Role)
	return staff.ID, nil
}

func (uc *catalogUseCaseImpl) RenameStaff(ctx context.Context, shopID, staffID uuid.UUID, name string) (err error) {
	ctx, span := tracer.Start(ctx, "catalog.RenameStaff")
	defer func() {
		uc.metrics.ObserveCatalogWrite("rename_staff", err)
		endSpan(span, err)
	}()
	span.SetAttributes(attribute.String("salon.staff_id", staffID.String()))

	// Reject bad names before touching the database.
	if _, err = catalog.NewStaff(staffID, shopID, name, ""); err != nil {
		return shared.Classify(err)
	}

	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		staff, err := tx.Catalog().StaffByID(ctx, tx.DB(), shopID, staffID)
		if err != nil {
			return err
		}
		if err := staff.Rename(name); err != nil {
			return err
		}
		return tx.Catalog().UpdateStaff(ctx, tx.DB(), staff)
	}))
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "staff renamed", "shop_id", shopID, "staff_id", staffID)
	return nil
}

func (uc *catalogUseCaseImpl) CreateService(ctx context.Context, shopID uuid.UUID, p CreateServiceParams) (_ uuid.UUID, err error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateService")
	defer func() {
		uc.metrics.ObserveCatalogWrite("create_service", err)
		endSpan(span, err)
	}()

	rate, err := parseCatalogRate(p.TaxRate)
	if err != nil {
		return uuid.Nil, err
	}
	svc, err := catalog.NewService(uuid.New(), shopID, p.Name, p.Price, p.DurationMinutes, rate)
	if err != nil {
		return uuid.Nil, shared.Classify(err)
	}
	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().CreateService(ctx, tx.DB(), svc)
	}))
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "service created",
		"shop_id", shopID, "service_id", svc.ID(), "price", svc.Price(), "duration_minutes", svc.DurationMinutes())
	return svc.ID(), nil
}

func (uc *catalogUseCaseImpl) CreateProduct(ctx context.Context, shopID uuid.UUID, p CreateProductParams) (_ uuid.UUID, err error) {
	ctx, span := tracer.Start(ctx, "catalog.CreateProduct")
	defer func() {
		uc.metrics.ObserveCatalogWrite("create_product", err)
		endSpan(span, err)
	}()

	rate, err := parseCatalogRate(p.TaxRate)
	if err != nil {
		return uuid.Nil, err
	}
	prod, err := catalog.NewProduct(uuid.New(), shopID, p.Name, p.Price, rate, p.Stock, p.Category)
	if err != nil {
		return uuid.Nil, shared.Classify(err)
	}
	err = shared.Classify(uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Catalog().CreateProduct(ctx, tx.DB(), prod)
	}))
	if err != nil {
		return uuid.Nil, err
	}

	slog.InfoContext(ctx, "product created",
		"shop_id", shopID, "product_id", prod.ID(), "price", prod.Price(), "stock", prod.Stock())
	return prod.ID(), nil
}

func (uc *catalogUseCaseImpl) AdjustStock(ctx context.Context, shopID, productID uuid.UUID, delta int) (_ *StockAdjustment, err error) {
	ctx, span := tracer.Start(ctx, "catalog.AdjustStock")
	defer func() {
		uc.metrics.ObserveCatalogWrite("adjust_stock", err)
		endSpan(span, err)
	}()
	span.SetAttributes(
		attribute.String("salon.product_id", productID.String()),
		attribute.Int("salon.stock.delta", delta),
	)

	if delta == 0 {
		return nil, shared.ValidationErrorf("stock delta must not be zero")
	}
	if delta > maxStockDelta || delta < -maxStockDelta {
		return nil, shared.ValidationErrorf("stock delta %d is out of range", delta)
	}

	var change catalog.StockChange
	err = runWithConcurrencyRetry(ctx, "adjust stock", func() error {
		return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			prod, err := tx.Catalog().ProductByIDForUpdate(ctx, tx.DB(), shopID, productID)
			if err != nil {
				return err
			}
			c, err := prod.Adjust(delta)
			if err != nil {
				return err
			}
			if err := tx.Catalog().SetStock(ctx, tx.DB(), shopID, productID, c.After); err != nil {
				return err
			}
			change = c
			return enqueue(ctx, tx, shopID, shared.EventStockAdjusted, stockAdjustedEvent{
				ProductID: productID,
				Delta:     delta,
				Before:    c.Before,
				After:     c.After,
			}, uc.clock.Now())
		})
	})
	if err != nil {
		return nil, err
	}

	if invErr := uc.catalog.InvalidateProduct(ctx, shopID, productID); invErr != nil {
		slog.WarnContext(ctx, "failed to invalidate product cache", "product_id", productID, "error", invErr.Error())
	}
	if change.Truncated() {
		uc.metrics.ObserveStockTruncation()
	}

	slog.InfoContext(ctx, "stock adjusted",
		"shop_id", shopID, "product_id", productID, "delta", delta,
		"before", change.Before, "after", change.After, "truncated", change.Truncated())
	return &StockAdjustment{
		ProductID: productID,
		Before:    change.Before,
		After:     change.After,
		Truncated: change.Truncated(),
	}, nil
}

// parseCatalogRate accepts rates in [0, 1] with at most four decimal places, the
// precision of the tax_rate columns.
func parseCatalogRate(raw string) (tax.Rate, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultTaxRate
	}
	rate, err := tax.ParseRate(raw)
	if err != nil {
		return tax.Rate{}, shared.Classify(err)
	}
	d := rate.Decimal()
	if d.GreaterThan(maxTaxRate) {
		return tax.Rate{}, shared.ValidationErrorf("tax rate %s exceeds 1", raw)
	}
	if !d.Equal(d.Truncate(4)) {
		return tax.Rate{}, shared.ValidationErrorf("tax rate %s has more than four decimal places", raw)
	}
	return rate, nil
}

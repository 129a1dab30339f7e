package readstore

import (
	"context"
	"time"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const saleListColumns = `id, appointment_id, customer_name, staff_id, menu_name, total_amount, tax_amount,
	payment_method, created_at`

const (
	findSaleSQL = `
		SELECT id, appointment_id, customer_id, customer_name, staff_id, menu_name,
		       total_amount, net_amount, tax_amount, payment_method, memo, created_at
		FROM sales
		WHERE shop_id = $1 AND id = $2`

	saleLinesSQL = `
		SELECT id, item_type, item_id, item_name, unit_price, quantity, tax_rate::text, line_total
		FROM sale_line_items
		WHERE sale_id = $1
		ORDER BY item_type DESC, item_name, id`

	listSalesFirstPageSQL = `
		SELECT ` + saleListColumns + `
		FROM sales
		WHERE shop_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	listSalesKeysetSQL = `
		SELECT ` + saleListColumns + `
		FROM sales
		WHERE shop_id = $1 AND created_at >= $2 AND created_at < $3
		  AND (created_at, id) < ($4, $5)
		ORDER BY created_at DESC, id DESC
		LIMIT $6`

	lastVisitSQL = `
		SELECT customer_id, id, staff_id, menu_name, memo, created_at
		FROM sales
		WHERE shop_id = $1 AND customer_id = $2
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
)

type SaleReadStore struct {
	db db.DBTX
}

func NewSaleReadStore(db db.DBTX) *SaleReadStore {
	return &SaleReadStore{db: db}
}

func (r *SaleReadStore) FindByID(ctx context.Context, shopID, id uuid.UUID) (*queries.SaleView, error) {
	var v queries.SaleView
	err := r.db.QueryRow(ctx, findSaleSQL, shopID, id).Scan(
		&v.ID, &v.AppointmentID, &v.CustomerID, &v.CustomerName, &v.StaffID, &v.MenuName,
		&v.TotalAmount, &v.NetAmount, &v.TaxAmount, &v.PaymentMethod, &v.Memo, &v.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sale not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get sale", err)
	}

	rows, err := r.db.Query(ctx, saleLinesSQL, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get sale lines", err)
	}
	v.Lines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.SaleLineView, error) {
		var l queries.SaleLineView
		err := row.Scan(&l.ID, &l.ItemType, &l.ItemID, &l.ItemName, &l.UnitPrice, &l.Quantity, &l.TaxRate, &l.LineTotal)
		return l, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan sale lines", err)
	}
	for i := range v.Lines {
		v.Lines[i].TaxRate = normalizeSaleRate(v.Lines[i].TaxRate)
	}
	return &v, nil
}

func (r *SaleReadStore) ListFirstPage(ctx context.Context, shopID uuid.UUID, from, to time.Time, limit int32) ([]*queries.SaleListItem, error) {
	rows, err := r.db.Query(ctx, listSalesFirstPageSQL, shopID, from, to, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get sales first page", err)
	}
	return collectSaleItems(rows)
}

func (r *SaleReadStore) ListKeyset(ctx context.Context, shopID uuid.UUID, from, to time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.SaleListItem, error) {
	rows, err := r.db.Query(ctx, listSalesKeysetSQL, shopID, from, to, lastCreatedAt, lastID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to get sales keyset page", err)
	}
	return collectSaleItems(rows)
}

func (r *SaleReadStore) LastVisit(ctx context.Context, shopID, customerID uuid.UUID) (*queries.LastVisitView, error) {
	var v queries.LastVisitView
	err := r.db.QueryRow(ctx, lastVisitSQL, shopID, customerID).Scan(
		&v.CustomerID, &v.SaleID, &v.StaffID, &v.MenuName, &v.Memo, &v.VisitedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer has no visits", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get last visit", err)
	}
	return &v, nil
}

func collectSaleItems(rows pgx.Rows) ([]*queries.SaleListItem, error) {
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*queries.SaleListItem, error) {
		var it queries.SaleListItem
		err := row.Scan(&it.ID, &it.AppointmentID, &it.CustomerName, &it.StaffID, &it.MenuName,
			&it.TotalAmount, &it.TaxAmount, &it.PaymentMethod, &it.CreatedAt)
		return &it, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan sales", err)
	}
	return items, nil
}

// normalizeSaleRate trims numeric(5,4) padding so "0.1000" reads as "0.1".
func normalizeSaleRate(s string) string {
	d, err := pgconv.DecimalFromText(s)
	if err != nil {
		return s
	}
	return d.String()
}

package repository

import (
	"context"

	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const insertSaleSQL = `
	INSERT INTO sales (id, shop_id, appointment_id, customer_id, customer_name, staff_id, menu_name,
		total_amount, net_amount, tax_amount, payment_method, memo, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

var lineItemColumns = []string{
	"id", "sale_id", "item_type", "item_id", "item_name", "unit_price", "quantity", "tax_rate", "line_total",
}

type SaleRepository struct{}

func NewSaleRepository() *SaleRepository {
	return &SaleRepository{}
}

// Insert fails with KindDuplicateKey when the appointment already has a sale.
func (r *SaleRepository) Insert(ctx context.Context, tx db.DBTX, s *sale.Sale) error {
	amounts := s.Amounts()
	_, err := tx.Exec(ctx, insertSaleSQL,
		s.ID(), s.ShopID(), s.AppointmentID(), s.CustomerID(), s.CustomerName(), s.StaffID(), s.MenuName(),
		amounts.Total, amounts.Net, amounts.Tax, string(s.PaymentMethod()), s.Memo(), s.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert sale", err)
	}
	return nil
}

// InsertLineItems bulk loads the lines with COPY inside the caller's transaction.
func (r *SaleRepository) InsertLineItems(ctx context.Context, tx db.DBTX, saleID uuid.UUID, lines []sale.LineItem) error {
	if len(lines) == 0 {
		return nil
	}
	rows := make([][]any, len(lines))
	for i, l := range lines {
		rows[i] = []any{
			l.ID, saleID, string(l.ItemType), l.ItemID, l.Name, l.UnitPrice, l.Quantity, pgconv.NumericFromDecimal(l.TaxRate.Decimal()), l.LineTotal,
		}
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{"sale_line_items"}, lineItemColumns, pgx.CopyFromRows(rows))
	if err != nil {
		return infra.WrapRepoErr("failed to insert sale line items", err)
	}
	if int(n) != len(lines) {
		return infra.WrapRepoErr("sale line items partially copied", nil, infra.KindDBFailure)
	}
	return nil
}

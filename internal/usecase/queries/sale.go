package queries

import (
	"context"
	"time"

	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type SaleReadStore interface {
	FindByID(ctx context.Context, shopID, id uuid.UUID) (*SaleView, error)
	ListFirstPage(ctx context.Context, shopID uuid.UUID, from, to time.Time, limit int32) ([]*SaleListItem, error)
	ListKeyset(ctx context.Context, shopID uuid.UUID, from, to time.Time, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*SaleListItem, error)
	LastVisit(ctx context.Context, shopID, customerID uuid.UUID) (*LastVisitView, error)
}

type SaleQueries interface {
	GetSale(ctx context.Context, shopID, id uuid.UUID) (*SaleView, error)
	ListSales(ctx context.Context, shopID uuid.UUID, from, to time.Time, cursor *Cursor, limit int) ([]*SaleListItem, *Cursor, error)
	LastVisit(ctx context.Context, shopID, customerID uuid.UUID) (*LastVisitView, error)
}

type saleQueriesImpl struct {
	store SaleReadStore
}

func NewSaleQueries(store SaleReadStore) SaleQueries {
	return &saleQueriesImpl{store: store}
}

func (q *saleQueriesImpl) GetSale(ctx context.Context, shopID, id uuid.UUID) (*SaleView, error) {
	v, err := q.store.FindByID(ctx, shopID, id)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return v, nil
}

// ListSales pages newest first. The returned cursor is nil on the last page.
func (q *saleQueriesImpl) ListSales(ctx context.Context, shopID uuid.UUID, from, to time.Time, cursor *Cursor, limit int) ([]*SaleListItem, *Cursor, error) {
	if !to.After(from) {
		return nil, nil, shared.ValidationErrorf("range end must be after start")
	}

	limit = ValidateLimit(limit)
	var rows []*SaleListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.store.ListFirstPage(ctx, shopID, from, to, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, derr
		}
		rows, err = q.store.ListKeyset(ctx, shopID, from, to, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, shared.Classify(err)
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}

func (q *saleQueriesImpl) LastVisit(ctx context.Context, shopID, customerID uuid.UUID) (*LastVisitView, error) {
	v, err := q.store.LastVisit(ctx, shopID, customerID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return v, nil
}

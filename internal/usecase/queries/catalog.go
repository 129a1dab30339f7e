package queries

import (
	"context"

	"salon-scheduler/internal/usecase/shared"

	"github.com/google/uuid"
)

type CatalogReadStore interface {
	ListStaff(ctx context.Context, shopID uuid.UUID) ([]StaffView, error)
	ListServices(ctx context.Context, shopID uuid.UUID) ([]ServiceView, error)
	ListProducts(ctx context.Context, shopID uuid.UUID) ([]ProductView, error)
}

type CatalogQueries interface {
	ListStaff(ctx context.Context, shopID uuid.UUID) ([]StaffView, error)
	ListServices(ctx context.Context, shopID uuid.UUID) ([]ServiceView, error)
	ListProducts(ctx context.Context, shopID uuid.UUID) ([]ProductView, error)
	GetService(ctx context.Context, shopID, id uuid.UUID) (*ServiceView, error)
	GetProduct(ctx context.Context, shopID, id uuid.UUID) (*ProductView, error)
}

// Lists always hit the database. Single items go through the cached
// CatalogReads so a lookup right after checkout sees the invalidated stock.
type catalogQueriesImpl struct {
	store   CatalogReadStore
	catalog shared.CatalogReads
}

func NewCatalogQueries(store CatalogReadStore, catalog shared.CatalogReads) CatalogQueries {
	return &catalogQueriesImpl{store: store, catalog: catalog}
}

func (q *catalogQueriesImpl) ListStaff(ctx context.Context, shopID uuid.UUID) ([]StaffView, error) {
	out, err := q.store.ListStaff(ctx, shopID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return nonNil(out), nil
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context, shopID uuid.UUID) ([]ServiceView, error) {
	out, err := q.store.ListServices(ctx, shopID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return nonNil(out), nil
}

func (q *catalogQueriesImpl) ListProducts(ctx context.Context, shopID uuid.UUID) ([]ProductView, error) {
	out, err := q.store.ListProducts(ctx, shopID)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return nonNil(out), nil
}

func (q *catalogQueriesImpl) GetService(ctx context.Context, shopID, id uuid.UUID) (*ServiceView, error) {
	s, err := q.catalog.ServiceSnapshot(ctx, shopID, id)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return &ServiceView{
		ID:              s.ID,
		Name:            s.Name,
		Price:           s.Price,
		DurationMinutes: s.DurationMinutes,
		TaxRate:         s.TaxRate,
	}, nil
}

func (q *catalogQueriesImpl) GetProduct(ctx context.Context, shopID, id uuid.UUID) (*ProductView, error) {
	p, err := q.catalog.ProductSnapshot(ctx, shopID, id)
	if err != nil {
		return nil, shared.Classify(err)
	}
	return &ProductView{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		TaxRate:  p.TaxRate,
		Stock:    p.Stock,
		Category: p.Category,
	}, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

package readstore

import (
	"context"

	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	listStaffByHireSQL = `
		SELECT id, name, role
		FROM staff
		WHERE shop_id = $1
		ORDER BY created_at, id`

	listServicesSQL = `
		SELECT id, name, price, duration_minutes, tax_rate::text
		FROM services
		WHERE shop_id = $1
		ORDER BY price, name, id`

	listProductsSQL = `
		SELECT id, name, price, tax_rate::text, stock, category
		FROM products
		WHERE shop_id = $1
		ORDER BY name, id`
)

// CatalogReadStore lists the management views of staff, services and products.
type CatalogReadStore struct {
	db db.DBTX
}

func NewCatalogReadStore(db db.DBTX) *CatalogReadStore {
	return &CatalogReadStore{db: db}
}

// ListStaff returns staff in hiring order, unlike the board which sorts by name.
func (r *CatalogReadStore) ListStaff(ctx context.Context, shopID uuid.UUID) ([]queries.StaffView, error) {
	rows, err := r.db.Query(ctx, listStaffByHireSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list staff", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.StaffView, error) {
		var s queries.StaffView
		err := row.Scan(&s.ID, &s.Name, &s.Role)
		return s, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan staff", err)
	}
	return out, nil
}

func (r *CatalogReadStore) ListServices(ctx context.Context, shopID uuid.UUID) ([]queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, listServicesSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.ServiceView, error) {
		var (
			s    queries.ServiceView
			rate string
		)
		if err := row.Scan(&s.ID, &s.Name, &s.Price, &s.DurationMinutes, &rate); err != nil {
			return s, err
		}
		s.TaxRate, err = normalizeRate(rate)
		return s, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan services", err)
	}
	return out, nil
}

func (r *CatalogReadStore) ListProducts(ctx context.Context, shopID uuid.UUID) ([]queries.ProductView, error) {
	rows, err := r.db.Query(ctx, listProductsSQL, shopID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (queries.ProductView, error) {
		var (
			p    queries.ProductView
			rate string
		)
		if err := row.Scan(&p.ID, &p.Name, &p.Price, &rate, &p.Stock, &p.Category); err != nil {
			return p, err
		}
		p.TaxRate, err = normalizeRate(rate)
		return p, err
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan products", err)
	}
	return out, nil
}

// normalizeRate renders NUMERIC text ("0.1000") the way cached snapshots do.
func normalizeRate(raw string) (string, error) {
	r, err := tax.ParseRate(raw)
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

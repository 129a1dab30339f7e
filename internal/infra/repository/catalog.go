package repository

import (
	"context"

	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/tax"
	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	selectStaffSQL = `
		SELECT id, shop_id, name, role
		FROM staff
		WHERE shop_id = $1 AND id = $2`

	selectServiceSQL = `
		SELECT id, shop_id, name, price, duration_minutes, tax_rate::text
		FROM services
		WHERE shop_id = $1 AND id = $2`

	selectProductSQL = `
		SELECT id, shop_id, name, price, tax_rate::text, stock, category
		FROM products
		WHERE shop_id = $1 AND id = $2`

	selectProductForUpdateSQL = selectProductSQL + `
		FOR UPDATE`

	setStockSQL = `
		UPDATE products
		SET stock = $3
		WHERE shop_id = $1 AND id = $2`

	insertStaffSQL = `
		INSERT INTO staff (id, shop_id, name, role)
		VALUES ($1, $2, $3, $4)`

	updateStaffSQL = `
		UPDATE staff
		SET name = $3, role = $4
		WHERE shop_id = $1 AND id = $2`

	insertServiceSQL = `
		INSERT INTO services (id, shop_id, name, price, duration_minutes, tax_rate)
		VALUES ($1, $2, $3, $4, $5, $6::numeric)`

	insertProductSQL = `
		INSERT INTO products (id, shop_id, name, price, tax_rate, stock, category)
		VALUES ($1, $2, $3, $4, $5::numeric, $6, $7)`

	// The CTE row lock keeps before and after consistent under concurrent checkouts.
	decrementStockSQL = `
		WITH locked AS (
			SELECT id, stock FROM products
			WHERE shop_id = $1 AND id = $2
			FOR UPDATE
		)
		UPDATE products p
		SET stock = GREATEST(p.stock - $3, 0)
		FROM locked
		WHERE p.id = locked.id
		RETURNING locked.stock, p.stock`
)

type CatalogRepository struct{}

func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

func (r *CatalogRepository) StaffByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Staff, error) {
	var s catalog.Staff
	if err := tx.QueryRow(ctx, selectStaffSQL, shopID, id).Scan(&s.ID, &s.ShopID, &s.Name, &s.Role); err != nil {
		return nil, infra.WrapRepoErr("failed to get staff", err)
	}
	return &s, nil
}

func (r *CatalogRepository) ServiceByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Service, error) {
	var (
		sid, sshop uuid.UUID
		name, rate string
		price      int64
		duration   int
	)
	if err := tx.QueryRow(ctx, selectServiceSQL, shopID, id).Scan(&sid, &sshop, &name, &price, &duration, &rate); err != nil {
		return nil, infra.WrapRepoErr("failed to get service", err)
	}
	taxRate, err := tax.ParseRate(rate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored service tax rate is invalid", err, infra.KindDBFailure)
	}
	svc, err := catalog.NewService(sid, sshop, name, price, duration, taxRate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored service is invalid", err, infra.KindDBFailure)
	}
	return svc, nil
}

func (r *CatalogRepository) ProductByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error) {
	return scanProduct(tx.QueryRow(ctx, selectProductSQL, shopID, id))
}

func (r *CatalogRepository) ProductByIDForUpdate(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error) {
	return scanProduct(tx.QueryRow(ctx, selectProductForUpdateSQL, shopID, id))
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var (
		pid, pshop uuid.UUID
		name, rate string
		category   string
		price      int64
		stock      int
	)
	if err := row.Scan(&pid, &pshop, &name, &price, &rate, &stock, &category); err != nil {
		return nil, infra.WrapRepoErr("failed to get product", err)
	}
	taxRate, err := tax.ParseRate(rate)
	if err != nil {
		return nil, infra.WrapRepoErr("stored product tax rate is invalid", err, infra.KindDBFailure)
	}
	p, err := catalog.NewProduct(pid, pshop, name, price, taxRate, stock, category)
	if err != nil {
		return nil, infra.WrapRepoErr("stored product is invalid", err, infra.KindDBFailure)
	}
	return p, nil
}

func (r *CatalogRepository) DecrementStock(ctx context.Context, tx db.DBTX, shopID, productID uuid.UUID, qty int) (catalog.StockChange, error) {
	if qty <= 0 {
		return catalog.StockChange{}, catalog.ErrInvalidQuantity
	}
	change := catalog.StockChange{ProductID: productID, Requested: qty}
	if err := tx.QueryRow(ctx, decrementStockSQL, shopID, productID, qty).Scan(&change.Before, &change.After); err != nil {
		return catalog.StockChange{}, infra.WrapRepoErr("failed to decrement stock", err)
	}
	return change, nil
}

func (r *CatalogRepository) SetStock(ctx context.Context, tx db.DBTX, shopID, productID uuid.UUID, stock int) error {
	tag, err := tx.Exec(ctx, setStockSQL, shopID, productID, stock)
	if err != nil {
		return infra.WrapRepoErr("failed to set stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("product not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CatalogRepository) CreateStaff(ctx context.Context, tx db.DBTX, s *catalog.Staff) error {
	if _, err := tx.Exec(ctx, insertStaffSQL, s.ID, s.ShopID, s.Name, s.Role); err != nil {
		return infra.WrapRepoErr("failed to create staff", err)
	}
	return nil
}

func (r *CatalogRepository) UpdateStaff(ctx context.Context, tx db.DBTX, s *catalog.Staff) error {
	tag, err := tx.Exec(ctx, updateStaffSQL, s.ShopID, s.ID, s.Name, s.Role)
	if err != nil {
		return infra.WrapRepoErr("failed to update staff", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("staff not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CatalogRepository) CreateService(ctx context.Context, tx db.DBTX, s *catalog.Service) error {
	if _, err := tx.Exec(ctx, insertServiceSQL,
		s.ID(), s.ShopID(), s.Name(), s.Price(), s.DurationMinutes(), s.TaxRate().String(),
	); err != nil {
		return infra.WrapRepoErr("failed to create service", err)
	}
	return nil
}

func (r *CatalogRepository) CreateProduct(ctx context.Context, tx db.DBTX, p *catalog.Product) error {
	if _, err := tx.Exec(ctx, insertProductSQL,
		p.ID(), p.ShopID(), p.Name(), p.Price(), p.TaxRate().String(), p.Stock(), p.Category(),
	); err != nil {
		return infra.WrapRepoErr("failed to create product", err)
	}
	return nil
}

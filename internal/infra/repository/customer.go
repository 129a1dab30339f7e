package repository

import (
	"context"
	"strings"

	"salon-scheduler/internal/infra"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

const (
	insertCustomerSQL = `
		INSERT INTO customers (shop_id, name)
		VALUES ($1, $2)
		RETURNING id`

	customerExistsSQL = `
		SELECT EXISTS (
			SELECT 1 FROM customers
			WHERE shop_id = $1 AND id = $2
		)`
)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

func (r *CustomerRepository) Create(ctx context.Context, tx db.DBTX, shopID uuid.UUID, name string) (uuid.UUID, error) {
	var id uuid.UUID
	if err := tx.QueryRow(ctx, insertCustomerSQL, shopID, strings.TrimSpace(name)).Scan(&id); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create customer", err)
	}
	return id, nil
}

func (r *CustomerRepository) Exists(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (bool, error) {
	var ok bool
	if err := tx.QueryRow(ctx, customerExistsSQL, shopID, id).Scan(&ok); err != nil {
		return false, infra.WrapRepoErr("failed to look up customer", err)
	}
	return ok, nil
}

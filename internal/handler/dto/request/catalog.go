package request

import (
	"salon-scheduler/internal/usecase/commands"
)

type CreateStaffRequest struct {
	Name string `json:"name" binding:"required"`
	Role string `json:"role"`
}

func (r CreateStaffRequest) ToParams() commands.CreateStaffParams {
	return commands.CreateStaffParams{Name: r.Name, Role: r.Role}
}

type RenameStaffRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateServiceRequest takes a tax-inclusive price in minor units. An empty
// tax_rate falls back to the default rate.
type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required"`
	Price           *int64 `json:"price" binding:"required"`
	DurationMinutes int    `json:"duration_minutes" binding:"required"`
	TaxRate         string `json:"tax_rate"`
}

func (r CreateServiceRequest) ToParams() commands.CreateServiceParams {
	return commands.CreateServiceParams{
		Name:            r.Name,
		Price:           *r.Price,
		DurationMinutes: r.DurationMinutes,
		TaxRate:         r.TaxRate,
	}
}

type CreateProductRequest struct {
	Name     string `json:"name" binding:"required"`
	Price    *int64 `json:"price" binding:"required"`
	TaxRate  string `json:"tax_rate"`
	Stock    int    `json:"stock"`
	Category string `json:"category"`
}

func (r CreateProductRequest) ToParams() commands.CreateProductParams {
	return commands.CreateProductParams{
		Name:     r.Name,
		Price:    *r.Price,
		TaxRate:  r.TaxRate,
		Stock:    r.Stock,
		Category: r.Category,
	}
}

// AdjustStockRequest carries a signed correction, e.g. +1 on restock or -1 on breakage.
type AdjustStockRequest struct {
	Delta *int `json:"delta" binding:"required"`
}

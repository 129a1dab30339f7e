package shared

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/catalog"

	"github.com/google/uuid"
)

// CatalogReads serves catalog lookups outside write transactions, typically cached.
type CatalogReads interface {
	ServiceSnapshot(ctx context.Context, shopID, id uuid.UUID) (*ServiceSnapshot, error)
	ProductSnapshot(ctx context.Context, shopID, id uuid.UUID) (*ProductSnapshot, error)
	InvalidateProduct(ctx context.Context, shopID, id uuid.UUID) error
}

type ServiceSnapshot struct {
	ID              uuid.UUID `json:"id"`
	ShopID          uuid.UUID `json:"shop_id"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	TaxRate         string    `json:"tax_rate"`
}

func (s ServiceSnapshot) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

type ProductSnapshot struct {
	ID       uuid.UUID `json:"id"`
	ShopID   uuid.UUID `json:"shop_id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	TaxRate  string    `json:"tax_rate"`
	Stock    int       `json:"stock"`
	Category string    `json:"category"`
}

func ServiceSnapshotOf(s *catalog.Service) *ServiceSnapshot {
	return &ServiceSnapshot{
		ID:              s.ID(),
		ShopID:          s.ShopID(),
		Name:            s.Name(),
		Price:           s.Price(),
		DurationMinutes: s.DurationMinutes(),
		TaxRate:         s.TaxRate().String(),
	}
}

func ProductSnapshotOf(p *catalog.Product) *ProductSnapshot {
	return &ProductSnapshot{
		ID:       p.ID(),
		ShopID:   p.ShopID(),
		Name:     p.Name(),
		Price:    p.Price(),
		TaxRate:  p.TaxRate().String(),
		Stock:    p.Stock(),
		Category: p.Category(),
	}
}

// Outbox event kinds written alongside the state change they describe.
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentRescheduled = "appointment.rescheduled"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventSaleCompleted          = "sale.completed"
	EventHolidayMarked          = "staff.holiday_marked"
	EventStockAdjusted          = "product.stock_adjusted"
)

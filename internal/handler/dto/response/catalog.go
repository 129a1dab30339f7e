package response

import (
	"time"

	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type StaffResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	TaxRate         string    `json:"tax_rate"`
}

type ProductResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	TaxRate  string    `json:"tax_rate"`
	Stock    int       `json:"stock"`
	Category string    `json:"category"`
}

type StockAdjustmentResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Before    int       `json:"before"`
	After     int       `json:"after"`
	Truncated bool      `json:"truncated"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

type NoteResponse struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func FromStaffViews(v []queries.StaffView) []StaffResponse {
	res := make([]StaffResponse, len(v))
	_ = copier.Copy(&res, &v)
	return res
}

func FromServiceViews(v []queries.ServiceView) []ServiceResponse {
	res := make([]ServiceResponse, len(v))
	_ = copier.Copy(&res, &v)
	return res
}

func FromServiceView(v *queries.ServiceView) *ServiceResponse {
	var res ServiceResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromProductViews(v []queries.ProductView) []ProductResponse {
	res := make([]ProductResponse, len(v))
	_ = copier.Copy(&res, &v)
	return res
}

func FromProductView(v *queries.ProductView) *ProductResponse {
	var res ProductResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromStockAdjustment(a *commands.StockAdjustment) *StockAdjustmentResponse {
	return &StockAdjustmentResponse{
		ProductID: a.ProductID,
		Before:    a.Before,
		After:     a.After,
		Truncated: a.Truncated,
	}
}

func FromNoteViews(v []queries.NoteView) []NoteResponse {
	res := make([]NoteResponse, len(v))
	_ = copier.Copy(&res, &v)
	return res
}

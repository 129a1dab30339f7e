package response

import (
	"time"

	"salon-scheduler/internal/usecase/commands"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type SaleLineResponse struct {
	ID        uuid.UUID `json:"id,omitempty"`
	ItemType  string    `json:"item_type"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	TaxRate   string    `json:"tax_rate"`
	LineTotal int64     `json:"line_total"`
}

type SaleResponse struct {
	ID            uuid.UUID          `json:"id"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	CustomerID    *uuid.UUID         `json:"customer_id,omitempty"`
	CustomerName  string             `json:"customer_name"`
	StaffID       uuid.UUID          `json:"staff_id"`
	MenuName      string             `json:"menu_name"`
	TotalAmount   int64              `json:"total_amount"`
	NetAmount     int64              `json:"net_amount"`
	TaxAmount     int64              `json:"tax_amount"`
	PaymentMethod string             `json:"payment_method"`
	Memo          string             `json:"memo"`
	CreatedAt     time.Time          `json:"created_at"`
	Lines         []SaleLineResponse `json:"lines"`
}

type SaleListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	CustomerName  string    `json:"customer_name"`
	StaffID       uuid.UUID `json:"staff_id"`
	MenuName      string    `json:"menu_name"`
	TotalAmount   int64     `json:"total_amount"`
	TaxAmount     int64     `json:"tax_amount"`
	PaymentMethod string    `json:"payment_method"`
	CreatedAt     time.Time `json:"created_at"`
}

// ReceiptResponse is returned by checkout; stock_after maps product id to remaining stock.
type ReceiptResponse struct {
	SaleID        uuid.UUID          `json:"sale_id"`
	AppointmentID uuid.UUID          `json:"appointment_id"`
	Total         int64              `json:"total"`
	Net           int64              `json:"net"`
	Tax           int64              `json:"tax"`
	PaymentMethod string             `json:"payment_method"`
	Lines         []SaleLineResponse `json:"lines"`
	StockAfter    map[string]int     `json:"stock_after"`
}

type LastVisitResponse struct {
	CustomerID uuid.UUID `json:"customer_id"`
	SaleID     uuid.UUID `json:"sale_id"`
	StaffID    uuid.UUID `json:"staff_id"`
	MenuName   string    `json:"menu_name"`
	Memo       string    `json:"memo"`
	VisitedAt  time.Time `json:"visited_at"`
}

func FromSaleView(v *queries.SaleView) *SaleResponse {
	var res SaleResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromSaleList(items []*queries.SaleListItem) []*SaleListItemResponse {
	res := make([]*SaleListItemResponse, len(items))
	for i, it := range items {
		var item SaleListItemResponse
		_ = copier.Copy(&item, it)
		res[i] = &item
	}
	return res
}

func FromReceipt(r *commands.SaleReceipt) *ReceiptResponse {
	res := &ReceiptResponse{
		SaleID:        r.SaleID,
		AppointmentID: r.AppointmentID,
		Total:         r.Total,
		Net:           r.Net,
		Tax:           r.Tax,
		PaymentMethod: string(r.PaymentMethod),
		Lines:         make([]SaleLineResponse, len(r.Lines)),
		StockAfter:    make(map[string]int, len(r.StockAfter)),
	}
	for i, l := range r.Lines {
		res.Lines[i] = SaleLineResponse{
			ItemType:  string(l.ItemType),
			ItemID:    l.ItemID,
			ItemName:  l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			TaxRate:   l.TaxRate,
			LineTotal: l.LineTotal,
		}
	}
	for id, stock := range r.StockAfter {
		res.StockAfter[id.String()] = stock
	}
	return res
}

func FromLastVisitView(v *queries.LastVisitView) *LastVisitResponse {
	var res LastVisitResponse
	_ = copier.Copy(&res, v)
	return &res
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentView represents read-optimized appointment data
type AppointmentView struct {
	ID           uuid.UUID  `json:"id"`
	ShopID       uuid.UUID  `json:"shop_id"`
	StaffID      uuid.UUID  `json:"staff_id"`
	StaffName    string     `json:"staff_name"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name"`
	ServiceID    uuid.UUID  `json:"service_id"`
	MenuName     string     `json:"menu_name"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      time.Time  `json:"end_time"`
	Status       string     `json:"status"`
	Override     bool       `json:"overlap_override"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type StaffView struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Role string    `json:"role"`
}

type ServiceView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Price           int64     `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	TaxRate         string    `json:"tax_rate"`
}

type ProductView struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    int64     `json:"price"`
	TaxRate  string    `json:"tax_rate"`
	Stock    int       `json:"stock"`
	Category string    `json:"category"`
}

// PlacementView is the advisory answer to "can this slot be booked".
type PlacementView struct {
	OK           bool       `json:"ok"`
	Reason       string     `json:"reason,omitempty"`
	ConflictWith *uuid.UUID `json:"conflict_with,omitempty"`
	Overridable  bool       `json:"overridable"`
}

type FreeSlotView struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	DurationMinutes int       `json:"duration_minutes"`
}

// BoardCard is an appointment positioned on the day timeline, in percent of the business span.
type BoardCard struct {
	AppointmentView
	Left  float64 `json:"left"`
	Width float64 `json:"width"`
}

type BoardRow struct {
	Staff     StaffView      `json:"staff"`
	Holiday   bool           `json:"holiday"`
	Cards     []BoardCard    `json:"cards"`
	FreeSlots []FreeSlotView `json:"free_slots"`
}

type DayBoardView struct {
	Date     string     `json:"date"`
	OpensAt  time.Time  `json:"opens_at"`
	ClosesAt time.Time  `json:"closes_at"`
	Rows     []BoardRow `json:"rows"`
	Notes    []NoteView `json:"notes"`
}

// NoteView is one bulletin entry, oldest first within a day.
type NoteView struct {
	ID        uuid.UUID `json:"id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type DropView struct {
	Start    time.Time `json:"start"`
	Fraction float64   `json:"fraction"`
}

type SaleLineView struct {
	ID        uuid.UUID `json:"id"`
	ItemType  string    `json:"item_type"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	TaxRate   string    `json:"tax_rate"`
	LineTotal int64     `json:"line_total"`
}

// SaleView represents read-optimized sale data including its line items
type SaleView struct {
	ID            uuid.UUID      `json:"id"`
	AppointmentID uuid.UUID      `json:"appointment_id"`
	CustomerID    *uuid.UUID     `json:"customer_id,omitempty"`
	CustomerName  string         `json:"customer_name"`
	StaffID       uuid.UUID      `json:"staff_id"`
	MenuName      string         `json:"menu_name"`
	TotalAmount   int64          `json:"total_amount"`
	NetAmount     int64          `json:"net_amount"`
	TaxAmount     int64          `json:"tax_amount"`
	PaymentMethod string         `json:"payment_method"`
	Memo          string         `json:"memo"`
	CreatedAt     time.Time      `json:"created_at"`
	Lines         []SaleLineView `json:"lines"`
}

type SaleListItem struct {
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

// LastVisitView is the most recent sale of a customer, shown while preparing the day.
type LastVisitView struct {
	CustomerID uuid.UUID `json:"customer_id"`
	SaleID     uuid.UUID `json:"sale_id"`
	StaffID    uuid.UUID `json:"staff_id"`
	MenuName   string    `json:"menu_name"`
	Memo       string    `json:"memo"`
	VisitedAt  time.Time `json:"visited_at"`
}

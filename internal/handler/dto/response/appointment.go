package response

import (
	"time"

	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AppointmentResponse struct {
	ID           uuid.UUID  `json:"id"`
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

// AppointmentWriteResponse reports whether the write was accepted as a deliberate double booking.
type AppointmentWriteResponse struct {
	Appointment *AppointmentResponse `json:"appointment"`
	Overridden  bool                 `json:"overridden"`
}

func FromAppointmentView(v *queries.AppointmentView) *AppointmentResponse {
	var res AppointmentResponse
	_ = copier.Copy(&res, v)
	return &res
}

func FromAppointmentList(items []*queries.AppointmentView) []*AppointmentResponse {
	res := make([]*AppointmentResponse, len(items))
	for i, it := range items {
		res[i] = FromAppointmentView(it)
	}
	return res
}

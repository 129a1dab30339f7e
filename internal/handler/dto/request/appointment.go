package request

import (
	"strings"
	"time"

	"salon-scheduler/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	StaffID      uuid.UUID  `json:"staff_id" binding:"required"`
	ServiceID    uuid.UUID  `json:"service_id" binding:"required"`
	CustomerID   *uuid.UUID `json:"customer_id,omitempty"`
	CustomerName string     `json:"customer_name" binding:"required"`
	StartTime    time.Time  `json:"start_time" binding:"required"`
	AllowOverlap bool       `json:"allow_overlap"`
}

func (r CreateAppointmentRequest) ToParams() commands.CreateAppointmentParams {
	return commands.CreateAppointmentParams{
		StaffID:      r.StaffID,
		ServiceID:    r.ServiceID,
		CustomerID:   r.CustomerID,
		CustomerName: strings.TrimSpace(r.CustomerName),
		Start:        r.StartTime,
		AllowOverlap: r.AllowOverlap,
	}
}

// RescheduleAppointmentRequest moves an appointment, optionally to another staff member.
type RescheduleAppointmentRequest struct {
	StaffID      *uuid.UUID `json:"staff_id,omitempty"`
	StartTime    time.Time  `json:"start_time" binding:"required"`
	AllowOverlap bool       `json:"allow_overlap"`
	Version      *int       `json:"version,omitempty"`
}

func (r RescheduleAppointmentRequest) ToParams(id uuid.UUID) commands.RescheduleParams {
	return commands.RescheduleParams{
		ID:           id,
		StaffID:      r.StaffID,
		Start:        r.StartTime,
		AllowOverlap: r.AllowOverlap,
		Version:      r.Version,
	}
}

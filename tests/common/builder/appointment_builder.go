//go:build unit || e2e

package builder

import (
	"time"

	"salon-scheduler/internal/domain/appointment"
	reqdto "salon-scheduler/internal/handler/dto/request"
	"salon-scheduler/internal/usecase/queries"

	"github.com/google/uuid"
)

var SalonZone = time.FixedZone("JST", 9*60*60)

// At returns hour:minute on the fixed test business day.
func At(hour, minute int) time.Time {
	return time.Date(2025, 3, 14, hour, minute, 0, 0, SalonZone)
}

type AppointmentBuilder struct {
	ID           uuid.UUID
	ShopID       uuid.UUID
	StaffID      uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	ServiceID    uuid.UUID
	MenuName     string
	Start        time.Time
	End          time.Time
	Status       appointment.Status
	Override     bool
	Version      int
	CreatedAt    time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	return &AppointmentBuilder{
		ID:           uuid.New(),
		ShopID:       uuid.New(),
		StaffID:      uuid.New(),
		CustomerName: "Hanako Yamada",
		ServiceID:    uuid.New(),
		MenuName:     "Cut",
		Start:        At(10, 0),
		End:          At(11, 0),
		Status:       appointment.StatusActive,
		Version:      1,
		CreatedAt:    At(8, 0),
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) WithSlot(start, end time.Time) *AppointmentBuilder {
	b.Start, b.End = start, end
	return b
}

func (b *AppointmentBuilder) WithStaff(id uuid.UUID) *AppointmentBuilder {
	b.StaffID = id
	return b
}

func (b *AppointmentBuilder) WithShop(id uuid.UUID) *AppointmentBuilder {
	b.ShopID = id
	return b
}

func (b *AppointmentBuilder) WithStatus(s appointment.Status) *AppointmentBuilder {
	b.Status = s
	return b
}

// BuildNew goes through the validating constructor.
func (b *AppointmentBuilder) BuildNew() (*appointment.Appointment, error) {
	slot, err := appointment.NewTimeSlot(b.Start, b.End)
	if err != nil {
		return nil, err
	}
	return appointment.New(appointment.NewParams{
		ShopID:       b.ShopID,
		StaffID:      b.StaffID,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		ServiceID:    b.ServiceID,
		MenuName:     b.MenuName,
		Slot:         slot,
		Override:     b.Override,
	}, b.CreatedAt)
}

// BuildDomain reconstructs a stored appointment with the builder's id and status.
func (b *AppointmentBuilder) BuildDomain() *appointment.Appointment {
	slot, err := appointment.NewTimeSlot(b.Start, b.End)
	if err != nil {
		panic(err)
	}
	return appointment.Reconstruct(
		b.ID, b.ShopID, b.StaffID, b.CustomerID, b.CustomerName, b.ServiceID, b.MenuName,
		slot, b.Status, b.Override, b.Version, b.CreatedAt, b.CreatedAt,
	)
}

func (b *AppointmentBuilder) BuildView() *queries.AppointmentView {
	return &queries.AppointmentView{
		ID:           b.ID,
		ShopID:       b.ShopID,
		StaffID:      b.StaffID,
		StaffName:    "Aoi",
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		ServiceID:    b.ServiceID,
		MenuName:     b.MenuName,
		StartTime:    b.Start,
		EndTime:      b.End,
		Status:       string(b.Status),
		Override:     b.Override,
		Version:      b.Version,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.CreatedAt,
	}
}

func (b *AppointmentBuilder) BuildCreateRequestDTO() reqdto.CreateAppointmentRequest {
	return reqdto.CreateAppointmentRequest{
		StaffID:      b.StaffID,
		ServiceID:    b.ServiceID,
		CustomerID:   b.CustomerID,
		CustomerName: b.CustomerName,
		StartTime:    b.Start,
	}
}

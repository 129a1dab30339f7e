package appointment

import (
	"strings"
	"time"

	"salon-scheduler/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot  = errs.New("invalid time slot")
	ErrInvalidDuration  = errs.New("appointment duration must be positive")
	ErrInvalidStatus    = errs.New("invalid appointment status")
	ErrShopRequired     = errs.New("shop is required")
	ErrStaffRequired    = errs.New("staff is required")
	ErrServiceRequired  = errs.New("service is required")
	ErrCustomerRequired = errs.New("customer id or customer name is required")
	ErrNotActive        = errs.New("appointment is not active")
	ErrCustomerNameLong = errs.New("customer name is too long")
)

const MaxCustomerNameRunes = 100

type Appointment struct {
	id           uuid.UUID
	shopID       uuid.UUID
	staffID      uuid.UUID
	customerID   *uuid.UUID
	customerName string
	serviceID    uuid.UUID
	menuName     string
	slot         TimeSlot
	status       Status
	override     bool
	version      int
	createdAt    time.Time
	updatedAt    time.Time
}

type NewParams struct {
	ShopID       uuid.UUID
	StaffID      uuid.UUID
	CustomerID   *uuid.UUID
	CustomerName string
	ServiceID    uuid.UUID
	MenuName     string
	Slot         TimeSlot
	Override     bool
}

// New creates an Active appointment. The slot must already carry the service duration.
func New(p NewParams, now time.Time) (*Appointment, error) {
	if p.ShopID == uuid.Nil {
		return nil, ErrShopRequired
	}
	if p.StaffID == uuid.Nil {
		return nil, ErrStaffRequired
	}
	if p.ServiceID == uuid.Nil {
		return nil, ErrServiceRequired
	}
	name := strings.TrimSpace(p.CustomerName)
	if name == "" && (p.CustomerID == nil || *p.CustomerID == uuid.Nil) {
		return nil, ErrCustomerRequired
	}
	if len([]rune(name)) > MaxCustomerNameRunes {
		return nil, ErrCustomerNameLong
	}
	if p.Slot.IsZero() {
		return nil, ErrInvalidTimeSlot
	}

	return &Appointment{
		id:           uuid.New(),
		shopID:       p.ShopID,
		staffID:      p.StaffID,
		customerID:   p.CustomerID,
		customerName: name,
		serviceID:    p.ServiceID,
		menuName:     strings.TrimSpace(p.MenuName),
		slot:         p.Slot,
		status:       StatusActive,
		override:     p.Override,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds an aggregate from storage without validation.
func Reconstruct(
	id, shopID, staffID uuid.UUID,
	customerID *uuid.UUID,
	customerName string,
	serviceID uuid.UUID,
	menuName string,
	slot TimeSlot,
	status Status,
	override bool,
	version int,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:           id,
		shopID:       shopID,
		staffID:      staffID,
		customerID:   customerID,
		customerName: customerName,
		serviceID:    serviceID,
		menuName:     menuName,
		slot:         slot,
		status:       status,
		override:     override,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (a *Appointment) ID() uuid.UUID {
	return a.id
}

func (a *Appointment) ShopID() uuid.UUID {
	return a.shopID
}

func (a *Appointment) StaffID() uuid.UUID {
	return a.staffID
}

func (a *Appointment) CustomerID() *uuid.UUID {
	return a.customerID
}

func (a *Appointment) CustomerName() string {
	return a.customerName
}

func (a *Appointment) ServiceID() uuid.UUID {
	return a.serviceID
}

func (a *Appointment) MenuName() string {
	return a.menuName
}

func (a *Appointment) Slot() TimeSlot {
	return a.slot
}

func (a *Appointment) Status() Status {
	return a.status
}

func (a *Appointment) IsActive() bool {
	return a.status == StatusActive
}

func (a *Appointment) Override() bool {
	return a.override
}

func (a *Appointment) Version() int {
	return a.version
}

func (a *Appointment) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Appointment) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Appointment) AttachCustomer(id uuid.UUID) {
	a.customerID = &id
}

// Move relocates the appointment to staffID at newStart. Duration is preserved.
func (a *Appointment) Move(staffID uuid.UUID, newStart time.Time, override bool, now time.Time) error {
	if !a.IsActive() {
		return errs.Wrapf(ErrNotActive, "status=%s", a.status)
	}
	if staffID == uuid.Nil {
		return ErrStaffRequired
	}
	if newStart.IsZero() {
		return ErrInvalidTimeSlot
	}
	a.staffID = staffID
	a.slot = a.slot.Shift(newStart)
	a.override = override
	a.updatedAt = now
	return nil
}

func (a *Appointment) Complete(now time.Time) error {
	return a.transition(StatusCompleted, now)
}

func (a *Appointment) Cancel(now time.Time) error {
	return a.transition(StatusCancelled, now)
}

func (a *Appointment) transition(to Status, now time.Time) error {
	if !a.IsActive() {
		return errs.Wrapf(ErrNotActive, "cannot move from %s to %s", a.status, to)
	}
	a.status = to
	a.updatedAt = now
	return nil
}

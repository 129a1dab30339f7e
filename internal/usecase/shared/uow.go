package shared

import (
	"context"
	"time"

	"salon-scheduler/internal/domain/appointment"
	"salon-scheduler/internal/domain/bulletin"
	"salon-scheduler/internal/domain/catalog"
	"salon-scheduler/internal/domain/sale"
	"salon-scheduler/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
}

type Tx interface {
	Appointments() AppointmentRepository
	Holidays() HolidayRepository
	Catalog() CatalogRepository
	Customers() CustomerRepository
	Sales() SaleRepository
	Outbox() OutboxRepository
	Bulletin() BulletinRepository
	Locks() ScheduleLocker
	DB() db.DBTX
}

type AppointmentRepository interface {
	Create(ctx context.Context, tx db.DBTX, a *appointment.Appointment) error
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*appointment.Appointment, error)
	// ListActiveForStaffDay returns active appointments of staffID intersecting [from, to).
	ListActiveForStaffDay(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, from, to time.Time) ([]*appointment.Appointment, error)
	// Update persists a only while the stored version equals expectedVersion and the row is still active.
	Update(ctx context.Context, tx db.DBTX, a *appointment.Appointment, expectedVersion int) error
}

// HolidayRepository keys days by their "2006-01-02" date in the business time zone.
type HolidayRepository interface {
	IsHoliday(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) (bool, error)
	Mark(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error
	Clear(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error
}

type CatalogRepository interface {
	StaffByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Staff, error)
	ServiceByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Service, error)
	ProductByID(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error)
	// ProductByIDForUpdate row-locks the product until the transaction ends.
	ProductByIDForUpdate(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (*catalog.Product, error)
	// DecrementStock lowers stock by qty, flooring at zero.
	DecrementStock(ctx context.Context, tx db.DBTX, shopID, productID uuid.UUID, qty int) (catalog.StockChange, error)
	SetStock(ctx context.Context, tx db.DBTX, shopID, productID uuid.UUID, stock int) error
	CreateStaff(ctx context.Context, tx db.DBTX, s *catalog.Staff) error
	UpdateStaff(ctx context.Context, tx db.DBTX, s *catalog.Staff) error
	CreateService(ctx context.Context, tx db.DBTX, s *catalog.Service) error
	CreateProduct(ctx context.Context, tx db.DBTX, p *catalog.Product) error
}

type CustomerRepository interface {
	Create(ctx context.Context, tx db.DBTX, shopID uuid.UUID, name string) (uuid.UUID, error)
	// Exists reports whether id is a customer of shopID.
	Exists(ctx context.Context, tx db.DBTX, shopID, id uuid.UUID) (bool, error)
}

type BulletinRepository interface {
	Post(ctx context.Context, tx db.DBTX, n *bulletin.Note) error
}

type SaleRepository interface {
	Insert(ctx context.Context, tx db.DBTX, s *sale.Sale) error
	InsertLineItems(ctx context.Context, tx db.DBTX, saleID uuid.UUID, lines []sale.LineItem) error
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, tx db.DBTX, shopID uuid.UUID, kind, topic string, payload []byte, runAt time.Time) error
}

// ScheduleLocker serialises writers on one staff member's day.
type ScheduleLocker interface {
	LockStaffDay(ctx context.Context, tx db.DBTX, shopID, staffID uuid.UUID, date string) error
}
